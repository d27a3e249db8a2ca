package client

import (
	"errors"
	"net/http"
)

// Operation error codes, one per API call, carried on every normalized
// failure so callers can branch without string matching.
const (
	CodeFetchInvoices          = "FETCH_INVOICES_ERROR"
	CodeFetchPaginatedInvoices = "FETCH_PAGINATED_INVOICES_ERROR"
	CodeGetInvoice             = "GET_INVOICE_ERROR"
	CodeCreateInvoice          = "CREATE_INVOICE_ERROR"
	CodeUpdateInvoice          = "UPDATE_INVOICE_ERROR"
	CodeDeleteInvoice          = "DELETE_INVOICE_ERROR"
	CodeSearchInvoices         = "SEARCH_INVOICES_ERROR"
	CodeGetStats               = "GET_STATS_ERROR"
	CodeSendInvoice            = "SEND_INVOICE_ERROR"
	CodeGenerateNumber         = "GENERATE_NUMBER_ERROR"
	CodeValidateNumber         = "VALIDATE_NUMBER_ERROR"
	CodeExportInvoices         = "EXPORT_INVOICES_ERROR"
	CodeDownloadPDF            = "DOWNLOAD_PDF_ERROR"
	CodeUnknown                = "UNKNOWN_ERROR"
)

// APIError is the single normalized shape every transport or envelope
// failure is converted to before it leaves this package.
type APIError struct {
	Message string         `json:"message"`
	Code    string         `json:"code"`
	Status  int            `json:"status"`
	Details map[string]any `json:"details,omitempty"`
	Err     error          `json:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// Unwrap exposes the underlying transport error, if any.
func (e *APIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// AsAPIError extracts the normalized error from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var target *APIError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// IsNotFound reports whether the error is a 404-class API error.
func IsNotFound(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == http.StatusNotFound
}

func newAPIError(message, code string, status int, err error) *APIError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	if code == "" {
		code = CodeUnknown
	}
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return &APIError{Message: message, Code: code, Status: status, Err: err}
}
