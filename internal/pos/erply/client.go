// Package erply talks to the Erply point-of-sale API for the terminal this
// sidecar serves: product lookups by barcode and a snapshot of the sale
// currently open on the register.
package erply

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"agegate/internal/catalog"
	id "agegate/pkg/domain"
	dErrors "agegate/pkg/domain-errors"
)

// Client calls the Erply JSON API. All requests are form-encoded POSTs to a
// single endpoint with a "request" parameter naming the operation, per the
// Erply API convention.
type Client struct {
	baseURL    string
	clientCode string
	sessionKey string
	httpClient *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates an Erply API client. The session key is expected to be
// provisioned out of band; this client never performs a login.
func New(baseURL, clientCode, sessionKey string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		clientCode: clientCode,
		sessionKey: sessionKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Sale is the register's currently open sales document, reduced to what the
// transaction monitor needs.
type Sale struct {
	TransactionID id.TransactionID
	ItemCount     int
}

// apiEnvelope is the outer structure of every Erply API response.
type apiEnvelope struct {
	Status struct {
		ResponseStatus string `json:"responseStatus"`
		ErrorCode      int    `json:"errorCode"`
	} `json:"status"`
	Records json.RawMessage `json:"records"`
}

// productRecord is an Erply getProducts record, reduced to the fields the
// classifier consumes.
type productRecord struct {
	Code        string `json:"code"`
	Code2       string `json:"code2"`
	Name        string `json:"name"`
	GroupName   string `json:"groupName"`
	Description string `json:"description"`
}

// saleRecord is an Erply getSalesDocuments record.
type saleRecord struct {
	ID   json.Number `json:"id"`
	Rows []struct {
		ProductID json.Number `json:"productID"`
	} `json:"rows"`
}

// LookupProduct resolves a scanned barcode to a product record. The barcode
// is matched against code2 (the EAN/UPC field on Erply products).
func (c *Client) LookupProduct(ctx context.Context, code string) (*catalog.Product, error) {
	records, err := c.call(ctx, "getProducts", url.Values{
		"code2": {code},
	})
	if err != nil {
		return nil, err
	}

	var products []productRecord
	if err := json.Unmarshal(records, &products); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "malformed getProducts response")
	}
	if len(products) == 0 {
		return nil, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("no product with code %s", code))
	}

	rec := products[0]
	barcode := rec.Code2
	if barcode == "" {
		barcode = rec.Code
	}
	return &catalog.Product{
		Code:        barcode,
		Name:        rec.Name,
		Group:       catalog.NormalizeGroup(rec.GroupName),
		Description: rec.Description,
	}, nil
}

// CurrentSale returns the open (unconfirmed) sales document on this register,
// or nil when no sale is in progress.
func (c *Client) CurrentSale(ctx context.Context) (*Sale, error) {
	records, err := c.call(ctx, "getSalesDocuments", url.Values{
		"confirmed": {"0"},
		"getRowsForAllInvoices": {"1"},
	})
	if err != nil {
		return nil, err
	}

	var sales []saleRecord
	if err := json.Unmarshal(records, &sales); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "malformed getSalesDocuments response")
	}
	if len(sales) == 0 {
		return nil, nil
	}

	rec := sales[0]
	return &Sale{
		TransactionID: id.TransactionID(rec.ID.String()),
		ItemCount:     len(rec.Rows),
	}, nil
}

// call executes one Erply API request and returns the raw records array.
func (c *Client) call(ctx context.Context, request string, params url.Values) (json.RawMessage, error) {
	form := url.Values{
		"request":    {request},
		"clientCode": {c.clientCode},
		"sessionKey": {c.sessionKey},
	}
	for key, values := range params {
		form[key] = values
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "pos api request timed out")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "pos api unreachable")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read pos api response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, dErrors.New(dErrors.CodeUnavailable, fmt.Sprintf("pos api returned status %d", resp.StatusCode))
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "malformed pos api envelope")
	}
	if envelope.Status.ResponseStatus != "ok" {
		if envelope.Status.ErrorCode == 1054 || envelope.Status.ErrorCode == 1055 {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "pos api session key rejected")
		}
		return nil, dErrors.New(dErrors.CodeUnavailable, fmt.Sprintf("pos api error code %d", envelope.Status.ErrorCode))
	}

	return envelope.Records, nil
}
