// Package client is the HTTP adapter for the sales-invoicing API. It
// translates CRUD intents into calls against the server contract and
// normalizes every envelope or transport failure into an *APIError. The
// adapter performs no retries and enforces no timeout of its own; both are
// the injected transport's concern, and cancellation is driven solely by the
// caller's context.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gstinvoice/invoice"
)

const basePath = "/sales-invoices"

// Client calls the sales-invoicing API.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
	metrics *Metrics
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient injects the transport. Timeouts and connection pooling are
// configured there, not on the adapter.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLogger attaches a structured logger for per-call logging.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithMetrics attaches Prometheus instrumentation to every call.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New builds a Client for the given API base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errors.New("client: base url is required")
	}
	c := &Client{
		baseURL: trimmed,
		http:    http.DefaultClient,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// envelope is the server's uniform response shape.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// List fetches invoices matching the filters.
func (c *Client) List(ctx context.Context, filters invoice.Filters) ([]invoice.Invoice, error) {
	raw, err := c.call(ctx, http.MethodGet, basePath, filterQuery(filters), nil,
		CodeFetchInvoices, "Failed to fetch invoices")
	if err != nil {
		return nil, err
	}
	return decodeData[[]invoice.Invoice](raw, CodeFetchInvoices)
}

// ListPaginated fetches one page of invoices.
func (c *Client) ListPaginated(ctx context.Context, page, pageSize int, filters invoice.Filters) (invoice.Page, error) {
	query := filterQuery(filters)
	query.Set("page", strconv.Itoa(page))
	query.Set("pageSize", strconv.Itoa(pageSize))
	raw, err := c.call(ctx, http.MethodGet, basePath+"/paginated", query, nil,
		CodeFetchPaginatedInvoices, "Failed to fetch paginated invoices")
	if err != nil {
		return invoice.Page{}, err
	}
	return decodeData[invoice.Page](raw, CodeFetchPaginatedInvoices)
}

// Get fetches a single invoice by ID.
func (c *Client) Get(ctx context.Context, id int64) (invoice.Invoice, error) {
	raw, err := c.call(ctx, http.MethodGet, invoicePath(id), nil, nil,
		CodeGetInvoice, "Failed to fetch invoice")
	if err != nil {
		return invoice.Invoice{}, err
	}
	return decodeData[invoice.Invoice](raw, CodeGetInvoice)
}

// Create submits a new invoice and returns the server's authoritative record.
func (c *Client) Create(ctx context.Context, data invoice.CreateInvoiceData) (invoice.Invoice, error) {
	raw, err := c.call(ctx, http.MethodPost, basePath, nil, data,
		CodeCreateInvoice, "Failed to create invoice")
	if err != nil {
		return invoice.Invoice{}, err
	}
	return decodeData[invoice.Invoice](raw, CodeCreateInvoice)
}

// Update overwrites an existing invoice and returns the updated record.
func (c *Client) Update(ctx context.Context, id int64, data invoice.UpdateInvoiceData) (invoice.Invoice, error) {
	raw, err := c.call(ctx, http.MethodPut, invoicePath(id), nil, data,
		CodeUpdateInvoice, "Failed to update invoice")
	if err != nil {
		return invoice.Invoice{}, err
	}
	return decodeData[invoice.Invoice](raw, CodeUpdateInvoice)
}

// Delete removes an invoice.
func (c *Client) Delete(ctx context.Context, id int64) error {
	_, err := c.call(ctx, http.MethodDelete, invoicePath(id), nil, nil,
		CodeDeleteInvoice, "Failed to delete invoice")
	return err
}

// Search fetches invoices matching a free-text query.
func (c *Client) Search(ctx context.Context, query string) ([]invoice.Invoice, error) {
	values := url.Values{}
	values.Set("q", query)
	raw, err := c.call(ctx, http.MethodGet, basePath+"/search", values, nil,
		CodeSearchInvoices, "Failed to search invoices")
	if err != nil {
		return nil, err
	}
	return decodeData[[]invoice.Invoice](raw, CodeSearchInvoices)
}

// Stats fetches aggregate invoice statistics.
func (c *Client) Stats(ctx context.Context) (invoice.Stats, error) {
	raw, err := c.call(ctx, http.MethodGet, basePath+"/stats", nil, nil,
		CodeGetStats, "Failed to fetch statistics")
	if err != nil {
		return invoice.Stats{}, err
	}
	return decodeData[invoice.Stats](raw, CodeGetStats)
}

// Send asks the server to email the invoice to the customer. An empty email
// lets the server use the customer's address on record.
func (c *Client) Send(ctx context.Context, id int64, email string) error {
	body := map[string]string{}
	if email != "" {
		body["email"] = email
	}
	_, err := c.call(ctx, http.MethodPost, invoicePath(id)+"/send", nil, body,
		CodeSendInvoice, "Failed to send invoice")
	return err
}

// GenerateNumber asks the server for the next free invoice number.
func (c *Client) GenerateNumber(ctx context.Context) (string, error) {
	raw, err := c.call(ctx, http.MethodGet, basePath+"/generate-number", nil, nil,
		CodeGenerateNumber, "Failed to generate invoice number")
	if err != nil {
		return "", err
	}
	payload, err := decodeData[struct {
		InvoiceNumber string `json:"invoiceNumber"`
	}](raw, CodeGenerateNumber)
	if err != nil {
		return "", err
	}
	if payload.InvoiceNumber == "" {
		return "", newAPIError("Failed to generate invoice number", CodeGenerateNumber, http.StatusInternalServerError, nil)
	}
	return payload.InvoiceNumber, nil
}

// ValidateNumber checks invoice-number uniqueness server-side. Any failure is
// reported as not-valid rather than an error, matching the upstream
// contract's best-effort semantics.
func (c *Client) ValidateNumber(ctx context.Context, invoiceNumber string, excludeID int64) bool {
	values := url.Values{}
	values.Set("invoiceNumber", invoiceNumber)
	if excludeID != 0 {
		values.Set("excludeId", strconv.FormatInt(excludeID, 10))
	}
	raw, err := c.call(ctx, http.MethodGet, basePath+"/validate-number", values, nil,
		CodeValidateNumber, "Failed to validate invoice number")
	if err != nil {
		return false
	}
	payload, err := decodeData[struct {
		IsValid bool `json:"isValid"`
	}](raw, CodeValidateNumber)
	if err != nil {
		return false
	}
	return payload.IsValid
}

// ExportFormat selects the export payload type.
type ExportFormat string

// Export formats understood by the server.
const (
	ExportPDF   ExportFormat = "pdf"
	ExportExcel ExportFormat = "excel"
)

// Export downloads the filtered invoice list as a binary document. The bytes
// are produced server-side and passed through untouched.
func (c *Client) Export(ctx context.Context, format ExportFormat, filters invoice.Filters) ([]byte, error) {
	query := filterQuery(filters)
	query.Set("format", string(format))
	return c.callRaw(ctx, basePath+"/export", query,
		CodeExportInvoices, "Failed to export invoices")
}

// DownloadPDF downloads the rendered PDF for a single invoice.
func (c *Client) DownloadPDF(ctx context.Context, id int64) ([]byte, error) {
	return c.callRaw(ctx, invoicePath(id)+"/pdf", nil,
		CodeDownloadPDF, "Failed to download invoice PDF")
}

func invoicePath(id int64) string {
	return fmt.Sprintf("%s/%d", basePath, id)
}

// call performs one enveloped API request and returns the raw data payload.
// Every failure mode (transport error, non-2xx, success=false) comes back as
// an *APIError carrying the operation code.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body any, code, fallbackMsg string) (json.RawMessage, error) {
	respBody, status, err := c.roundTrip(ctx, method, path, query, body, code, fallbackMsg)
	if err != nil {
		return nil, err
	}

	var env envelope
	if decodeErr := json.Unmarshal(respBody, &env); decodeErr != nil {
		return nil, newAPIError(fallbackMsg, code, status, decodeErr)
	}
	if status < 200 || status >= 300 || !env.Success {
		message := env.Message
		if message == "" {
			message = fallbackMsg
		}
		return nil, newAPIError(message, code, status, nil)
	}
	return env.Data, nil
}

// callRaw performs a GET returning an opaque binary payload (no envelope).
func (c *Client) callRaw(ctx context.Context, path string, query url.Values, code, fallbackMsg string) ([]byte, error) {
	respBody, status, err := c.roundTrip(ctx, http.MethodGet, path, query, nil, code, fallbackMsg)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, newAPIError(fallbackMsg, code, status, nil)
	}
	return respBody, nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body any, code, fallbackMsg string) ([]byte, int, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, 0, newAPIError(fallbackMsg, code, http.StatusInternalServerError, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, 0, newAPIError(fallbackMsg, code, http.StatusInternalServerError, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.observe(method, path, code, 0, duration, requestID, err)
		return nil, 0, newAPIError(fallbackMsg, code, http.StatusInternalServerError, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(method, path, code, resp.StatusCode, duration, requestID, err)
		return nil, 0, newAPIError(fallbackMsg, code, resp.StatusCode, err)
	}
	c.observe(method, path, code, resp.StatusCode, duration, requestID, nil)
	return data, resp.StatusCode, nil
}

func (c *Client) observe(method, path, op string, status int, duration time.Duration, requestID string, err error) {
	evt := c.log.Debug()
	if err != nil {
		evt = c.log.Warn().Err(err)
	}
	evt.Str("method", method).
		Str("path", path).
		Str("op", op).
		Int("status", status).
		Int64("duration_ms", duration.Milliseconds()).
		Str("request_id", requestID).
		Msg("api_call")
	if c.metrics != nil {
		c.metrics.observe(method, op, status, duration)
	}
}

func decodeData[T any](raw json.RawMessage, code string) (T, error) {
	var out T
	if len(raw) == 0 || string(raw) == "null" {
		return out, newAPIError("An unexpected error occurred", code, http.StatusInternalServerError, errors.New("missing data payload"))
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		var zero T
		return zero, newAPIError("An unexpected error occurred", code, http.StatusInternalServerError, err)
	}
	return out, nil
}
