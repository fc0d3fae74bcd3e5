package console

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"agegate/internal/catalog"
	"agegate/internal/credential"
)

func TestPresenter(t *testing.T) {
	ctx := context.Background()

	t.Run("prompt names the triggering item", func(t *testing.T) {
		var buf bytes.Buffer
		p := New(WithWriter(&buf))

		p.PromptForCredential(ctx, catalog.Product{Code: "750123", Name: "Pinot Noir", Group: "Wine"})

		out := buf.String()
		assert.Contains(t, out, "ID CHECK REQUIRED")
		assert.Contains(t, out, "Pinot Noir")
		assert.Contains(t, out, "Wine")
	})

	t.Run("denial rings the bell", func(t *testing.T) {
		var buf bytes.Buffer
		p := New(WithWriter(&buf))

		cred := &credential.Credential{
			DateOfBirth: time.Date(2010, 6, 15, 0, 0, 0, 0, time.UTC),
			FirstName:   "Alex",
			LastName:    "Doe",
		}
		p.VerificationDenied(ctx, 15, 21, cred)

		out := buf.String()
		assert.Contains(t, out, "\a")
		assert.Contains(t, out, "SALE NOT ALLOWED")
		assert.Contains(t, out, "Alex Doe")
		assert.Contains(t, out, "15")
		assert.Contains(t, out, "21")
	})

	t.Run("approval shows age without a bell", func(t *testing.T) {
		var buf bytes.Buffer
		p := New(WithWriter(&buf))

		p.VerificationApproved(ctx, 30, &credential.Credential{FullName: "JANE DOE"})

		out := buf.String()
		assert.Contains(t, out, "AGE VERIFIED")
		assert.Contains(t, out, "JANE DOE")
		assert.NotContains(t, out, "\a")
	})

	t.Run("credential error suggests the manual path", func(t *testing.T) {
		var buf bytes.Buffer
		p := New(WithWriter(&buf))

		p.CredentialError(ctx, "payload too short to be an ID barcode")

		out := buf.String()
		assert.Contains(t, out, "COULD NOT READ ID")
		assert.Contains(t, out, "YYYYMMDD")
	})
}
