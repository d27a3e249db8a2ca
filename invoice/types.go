// Package invoice contains the sales-invoice domain model together with the
// tax calculation, validation and display-formatting engines. Everything in
// this package is pure: no I/O, no clocks beyond overdue checks, no
// goroutines.
package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The invoicing API speaks bare JSON numbers for monetary fields.
	decimal.MarshalJSONWithoutQuotes = true
}

// Status is the invoice lifecycle state.
type Status string

// Invoice lifecycle states.
const (
	StatusDraft     Status = "draft"
	StatusSent      Status = "sent"
	StatusPaid      Status = "paid"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
)

// IsValid reports whether the status is one of the known lifecycle states.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCancelled:
		return true
	}
	return false
}

// Label returns the display label for the status.
func (s Status) Label() string {
	switch s {
	case StatusDraft:
		return "Draft"
	case StatusSent:
		return "Sent"
	case StatusPaid:
		return "Paid"
	case StatusOverdue:
		return "Overdue"
	case StatusCancelled:
		return "Cancelled"
	}
	return string(s)
}

// PaymentTerms encodes when payment falls due relative to the invoice date.
type PaymentTerms string

// Supported payment terms.
const (
	TermsDueOnReceipt PaymentTerms = "due_on_receipt"
	TermsNet15        PaymentTerms = "net_15"
	TermsNet30        PaymentTerms = "net_30"
	TermsNet60        PaymentTerms = "net_60"
)

// IsValid reports whether the payment terms value is known.
func (p PaymentTerms) IsValid() bool {
	switch p {
	case TermsDueOnReceipt, TermsNet15, TermsNet30, TermsNet60:
		return true
	}
	return false
}

// Days returns the number of calendar days the terms add to the invoice date.
func (p PaymentTerms) Days() int {
	switch p {
	case TermsNet15:
		return 15
	case TermsNet30:
		return 30
	case TermsNet60:
		return 60
	}
	return 0
}

// Label returns the display label for the payment terms.
func (p PaymentTerms) Label() string {
	switch p {
	case TermsDueOnReceipt:
		return "Due on Receipt"
	case TermsNet15:
		return "Net 15 Days"
	case TermsNet30:
		return "Net 30 Days"
	case TermsNet60:
		return "Net 60 Days"
	}
	return string(p)
}

// DiscountType distinguishes percentage discounts from flat amounts.
type DiscountType string

// Discount types.
const (
	DiscountPercentage DiscountType = "percentage"
	DiscountAmount     DiscountType = "amount"
)

// IsValid reports whether the discount type is known.
func (d DiscountType) IsValid() bool {
	return d == DiscountPercentage || d == DiscountAmount
}

// Standard GST slabs. Line items must carry one of these rates.
var taxRates = []int64{0, 5, 12, 18, 28}

// ValidTaxRate reports whether the rate is one of the standard GST slabs.
func ValidTaxRate(rate decimal.Decimal) bool {
	for _, r := range taxRates {
		if rate.Equal(decimal.NewFromInt(r)) {
			return true
		}
	}
	return false
}

// TaxRates returns the standard GST slabs as decimals.
func TaxRates() []decimal.Decimal {
	out := make([]decimal.Decimal, len(taxRates))
	for i, r := range taxRates {
		out[i] = decimal.NewFromInt(r)
	}
	return out
}

// LineItem is one row of an invoice. Amount is a derived cache of the row
// total (taxable amount plus tax) and is refreshed by UpdateLineItemAmount
// whenever quantity, price, discount or tax rate change.
type LineItem struct {
	ID           int64           `json:"id,omitempty"`
	ProductID    int64           `json:"productId,omitempty"`
	ProductName  string          `json:"productName"`
	Description  string          `json:"description,omitempty"`
	HSNCode      string          `json:"hsnCode,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit,omitempty"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Discount     decimal.Decimal `json:"discount"`
	DiscountType DiscountType    `json:"discountType"`
	TaxRate      decimal.Decimal `json:"taxRate"`
	Amount       decimal.Decimal `json:"amount"`
}

// DefaultLineItem returns a blank row with the conventional defaults:
// quantity 1, zero price, no discount, 18% GST.
func DefaultLineItem() LineItem {
	return LineItem{
		Quantity:     decimal.NewFromInt(1),
		UnitPrice:    decimal.Zero,
		Discount:     decimal.Zero,
		DiscountType: DiscountPercentage,
		TaxRate:      decimal.NewFromInt(18),
		Amount:       decimal.Zero,
	}
}

// AddressType distinguishes billing from shipping addresses.
type AddressType string

// Address types.
const (
	AddressBilling  AddressType = "billing"
	AddressShipping AddressType = "shipping"
)

// CustomerAddress is a postal address attached to a customer.
type CustomerAddress struct {
	ID           int64       `json:"id,omitempty"`
	CustomerID   int64       `json:"customerId"`
	AddressType  AddressType `json:"addressType"`
	AddressLine1 string      `json:"addressLine1"`
	AddressLine2 string      `json:"addressLine2,omitempty"`
	City         string      `json:"city"`
	State        string      `json:"state"`
	PostalCode   string      `json:"postalCode"`
	Country      string      `json:"country"`
	IsDefault    bool        `json:"isDefault"`
}

// CustomerType distinguishes individuals from businesses.
type CustomerType string

// Customer types.
const (
	CustomerIndividual CustomerType = "individual"
	CustomerBusiness   CustomerType = "business"
)

// Customer is a party an invoice is billed to.
type Customer struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	Email        string            `json:"email,omitempty"`
	Phone        string            `json:"phone,omitempty"`
	GSTIN        string            `json:"gstin,omitempty"`
	CustomerType CustomerType      `json:"customerType"`
	Addresses    []CustomerAddress `json:"addresses,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// Invoice is the full sales-invoice record as returned by the API. The six
// monetary aggregates (Subtotal through RoundOff) are projections of the
// line items and must only be produced by CalculateInvoiceTotals.
type Invoice struct {
	ID            int64  `json:"id"`
	InvoiceNumber string `json:"invoiceNumber"`
	InvoiceDate   Date   `json:"invoiceDate"`
	DueDate       Date   `json:"dueDate"`

	CustomerID      int64  `json:"customerId"`
	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail,omitempty"`
	CustomerPhone   string `json:"customerPhone,omitempty"`
	CustomerGSTIN   string `json:"customerGSTIN,omitempty"`
	CustomerAddress string `json:"customerAddress,omitempty"`
	BillingAddress  string `json:"billingAddress,omitempty"`
	ShippingAddress string `json:"shippingAddress,omitempty"`

	Status        Status       `json:"status"`
	PaymentTerms  PaymentTerms `json:"paymentTerms"`
	PlaceOfSupply string       `json:"placeOfSupply"`

	LineItems []LineItem `json:"lineItems"`

	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalDiscount decimal.Decimal `json:"totalDiscount"`
	TaxableAmount decimal.Decimal `json:"taxableAmount"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
	IGST          decimal.Decimal `json:"igst"`
	TotalTax      decimal.Decimal `json:"totalTax"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	RoundOff      decimal.Decimal `json:"roundOff"`

	Notes              string `json:"notes,omitempty"`
	TermsAndConditions string `json:"termsAndConditions,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	CreatedBy string    `json:"createdBy,omitempty"`
	UpdatedBy string    `json:"updatedBy,omitempty"`
}

// CreateInvoiceData is the payload for creating an invoice. InvoiceNumber is
// optional; the server assigns the next number when it is empty.
type CreateInvoiceData struct {
	InvoiceNumber   string       `json:"invoiceNumber,omitempty"`
	InvoiceDate     Date         `json:"invoiceDate"`
	DueDate         Date         `json:"dueDate"`
	CustomerID      int64        `json:"customerId"`
	CustomerName    string       `json:"customerName"`
	CustomerEmail   string       `json:"customerEmail,omitempty"`
	CustomerPhone   string       `json:"customerPhone,omitempty"`
	CustomerGSTIN   string       `json:"customerGSTIN,omitempty"`
	CustomerAddress string       `json:"customerAddress,omitempty"`
	BillingAddress  string       `json:"billingAddress,omitempty"`
	ShippingAddress string       `json:"shippingAddress,omitempty"`
	PaymentTerms    PaymentTerms `json:"paymentTerms"`
	PlaceOfSupply   string       `json:"placeOfSupply"`
	LineItems       []LineItem   `json:"lineItems"`

	Notes              string `json:"notes,omitempty"`
	TermsAndConditions string `json:"termsAndConditions,omitempty"`
}

// UpdateInvoiceData is the payload for updating an invoice. It mirrors
// CreateInvoiceData and can additionally move the invoice to a new status.
type UpdateInvoiceData struct {
	CreateInvoiceData
	Status Status `json:"status,omitempty"`
}

// Filters narrow invoice listings.
type Filters struct {
	Statuses     []Status
	CustomerID   int64
	DateFrom     Date
	DateTo       Date
	Search       string
	PaymentTerms PaymentTerms
	MinAmount    decimal.Decimal
	MaxAmount    decimal.Decimal
}

// IsZero reports whether no filter criteria are set.
func (f Filters) IsZero() bool {
	return len(f.Statuses) == 0 && f.CustomerID == 0 && f.DateFrom.IsZero() &&
		f.DateTo.IsZero() && f.Search == "" && f.PaymentTerms == "" &&
		f.MinAmount.IsZero() && f.MaxAmount.IsZero()
}

// Stats is the aggregate view returned by the stats endpoint.
type Stats struct {
	TotalInvoices     int             `json:"totalInvoices"`
	DraftCount        int             `json:"draftCount"`
	SentCount         int             `json:"sentCount"`
	PaidCount         int             `json:"paidCount"`
	OverdueCount      int             `json:"overdueCount"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`
}

// Page is one page of a paginated invoice listing.
type Page struct {
	Data       []Invoice `json:"data"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	TotalPages int       `json:"totalPages"`
}

// TaxCalculation is the aggregate monetary projection of an invoice.
type TaxCalculation struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalDiscount decimal.Decimal `json:"totalDiscount"`
	TaxableAmount decimal.Decimal `json:"taxableAmount"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
	IGST          decimal.Decimal `json:"igst"`
	TotalTax      decimal.Decimal `json:"totalTax"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	RoundOff      decimal.Decimal `json:"roundOff"`
}

// LineItemCalculation is the per-row monetary breakdown. Amount is the base
// amount (quantity times unit price) before discount and tax.
type LineItemCalculation struct {
	Amount         decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxableAmount  decimal.Decimal
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal
}

// GstBreakdown is the tax split for a single ad-hoc amount.
type GstBreakdown struct {
	CGST     decimal.Decimal
	SGST     decimal.Decimal
	IGST     decimal.Decimal
	TotalTax decimal.Decimal
}
