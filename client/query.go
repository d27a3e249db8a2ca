package client

import (
	"net/url"
	"strconv"

	"github.com/noah-isme/gstinvoice/invoice"
)

// filterQuery encodes listing filters as query parameters. Zero-valued
// criteria are omitted so the server applies no constraint for them.
func filterQuery(f invoice.Filters) url.Values {
	values := url.Values{}
	for _, status := range f.Statuses {
		values.Add("status", string(status))
	}
	if f.CustomerID != 0 {
		values.Set("customerId", strconv.FormatInt(f.CustomerID, 10))
	}
	if !f.DateFrom.IsZero() {
		values.Set("dateFrom", f.DateFrom.String())
	}
	if !f.DateTo.IsZero() {
		values.Set("dateTo", f.DateTo.String())
	}
	if f.Search != "" {
		values.Set("search", f.Search)
	}
	if f.PaymentTerms != "" {
		values.Set("paymentTerms", string(f.PaymentTerms))
	}
	if !f.MinAmount.IsZero() {
		values.Set("minAmount", f.MinAmount.String())
	}
	if !f.MaxAmount.IsZero() {
		values.Set("maxAmount", f.MaxAmount.String())
	}
	return values
}
