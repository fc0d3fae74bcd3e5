package erply

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "agegate/pkg/domain-errors"
)

func TestLookupProduct(t *testing.T) {
	t.Run("resolves a barcode to a normalized product", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "getProducts", r.Form.Get("request"))
			assert.Equal(t, "555123", r.Form.Get("code2"))
			assert.Equal(t, "store1", r.Form.Get("clientCode"))
			assert.Equal(t, "sess-key", r.Form.Get("sessionKey"))

			w.Write([]byte(`{
				"status": {"responseStatus": "ok", "errorCode": 0},
				"records": [{
					"code": "P-001",
					"code2": "555123",
					"name": "Tall Can IPA",
					"groupName": "Tall Cans Beer/Seltzer",
					"description": "16oz single"
				}]
			}`))
		}))
		defer server.Close()

		client := New(server.URL, "store1", "sess-key", time.Second)
		product, err := client.LookupProduct(context.Background(), "555123")
		require.NoError(t, err)
		assert.Equal(t, "555123", product.Code)
		assert.Equal(t, "Tall Can IPA", product.Name)
		assert.Equal(t, "Tall Cans Beer/Seltzer", product.Group)
	})

	t.Run("unknown barcode is not_found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"status": {"responseStatus": "ok", "errorCode": 0}, "records": []}`))
		}))
		defer server.Close()

		client := New(server.URL, "store1", "sess-key", time.Second)
		_, err := client.LookupProduct(context.Background(), "000000")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("rejected session key is unauthorized", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"status": {"responseStatus": "error", "errorCode": 1054}, "records": []}`))
		}))
		defer server.Close()

		client := New(server.URL, "store1", "stale-key", time.Second)
		_, err := client.LookupProduct(context.Background(), "555123")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("unreachable endpoint is unavailable", func(t *testing.T) {
		client := New("http://127.0.0.1:1", "store1", "sess-key", 100*time.Millisecond)
		_, err := client.LookupProduct(context.Background(), "555123")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
	})
}

func TestCurrentSale(t *testing.T) {
	t.Run("open sale reports id and row count", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "getSalesDocuments", r.Form.Get("request"))
			assert.Equal(t, "0", r.Form.Get("confirmed"))

			w.Write([]byte(`{
				"status": {"responseStatus": "ok", "errorCode": 0},
				"records": [{
					"id": 90210,
					"rows": [{"productID": 1}, {"productID": 2}, {"productID": 3}]
				}]
			}`))
		}))
		defer server.Close()

		client := New(server.URL, "store1", "sess-key", time.Second)
		sale, err := client.CurrentSale(context.Background())
		require.NoError(t, err)
		require.NotNil(t, sale)
		assert.Equal(t, "90210", string(sale.TransactionID))
		assert.Equal(t, 3, sale.ItemCount)
	})

	t.Run("no open sale returns nil without error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"status": {"responseStatus": "ok", "errorCode": 0}, "records": []}`))
		}))
		defer server.Close()

		client := New(server.URL, "store1", "sess-key", time.Second)
		sale, err := client.CurrentSale(context.Background())
		require.NoError(t, err)
		assert.Nil(t, sale)
	})
}
