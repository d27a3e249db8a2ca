package invoice

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Wire-contract patterns shared with the upstream API. Messages below are
// fixed strings surfaced verbatim in the UI, so they must not be reworded.
var (
	invoiceNumberPattern = regexp.MustCompile(`^INV-\d{4,}$`)
	gstinPattern         = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z]{1}[1-9A-Z]{1}Z[0-9A-Z]{1}$`)
	emailPattern         = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern         = regexp.MustCompile(`^[6-9]\d{9}$`)
)

const (
	msgInvoiceNumber   = "Invoice number must be in format INV-XXXX"
	msgCustomerName    = "Customer name is required (2-100 characters)"
	msgEmail           = "Invalid email format"
	msgPhone           = "Phone number must be 10 digits starting with 6-9"
	msgGstin           = "Invalid GSTIN format"
	msgDateRequired    = "Date is required"
	msgDateRange       = "Due date must be after invoice date"
	msgPlaceOfSupply   = "Place of supply is required"
	msgLineItems       = "At least one line item is required"
	msgLineItemsFix    = "Please fix errors in line items"
	msgProductName     = "Product name is required (2-200 characters)"
	msgQuantity        = "Quantity must be between 0.01 and 999999"
	msgUnitPrice       = "Unit price must be between 0 and 9999999"
	msgDiscountRange   = "Discount must be between 0 and 100"
	msgDiscountNeg     = "Discount cannot be negative"
	msgDiscountExceeds = "Discount amount cannot exceed base amount"
)

var (
	minQuantity  = decimal.NewFromFloat(0.01)
	maxQuantity  = decimal.NewFromInt(999999)
	maxUnitPrice = decimal.NewFromInt(9999999)
)

// FormErrors carries one optional message per invoice form field. An empty
// string means the field is valid.
type FormErrors struct {
	InvoiceNumber string
	InvoiceDate   string
	DueDate       string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	CustomerGSTIN string
	PlaceOfSupply string
	LineItems     string
}

// HasErrors reports whether any field failed validation.
func (e FormErrors) HasErrors() bool {
	return e != FormErrors{}
}

// Field returns the message for a field by its wire name, or "".
func (e FormErrors) Field(name string) string {
	switch name {
	case "invoiceNumber":
		return e.InvoiceNumber
	case "invoiceDate":
		return e.InvoiceDate
	case "dueDate":
		return e.DueDate
	case "customerName":
		return e.CustomerName
	case "customerEmail":
		return e.CustomerEmail
	case "customerPhone":
		return e.CustomerPhone
	case "customerGSTIN":
		return e.CustomerGSTIN
	case "placeOfSupply":
		return e.PlaceOfSupply
	case "lineItems":
		return e.LineItems
	}
	return ""
}

// Messages lists every non-empty message.
func (e FormErrors) Messages() []string {
	var out []string
	for _, msg := range []string{
		e.InvoiceNumber, e.InvoiceDate, e.DueDate, e.CustomerName,
		e.CustomerEmail, e.CustomerPhone, e.CustomerGSTIN,
		e.PlaceOfSupply, e.LineItems,
	} {
		if msg != "" {
			out = append(out, msg)
		}
	}
	return out
}

// LineItemErrors carries one optional message per line-item field.
type LineItemErrors struct {
	ProductName string
	Quantity    string
	UnitPrice   string
	Discount    string
}

// HasErrors reports whether any line-item field failed validation.
func (e LineItemErrors) HasErrors() bool {
	return e != LineItemErrors{}
}

// Field returns the message for a line-item field by its wire name, or "".
func (e LineItemErrors) Field(name string) string {
	switch name {
	case "productName":
		return e.ProductName
	case "quantity":
		return e.Quantity
	case "unitPrice":
		return e.UnitPrice
	case "discount":
		return e.Discount
	}
	return ""
}

// ValidateInvoiceNumber checks the INV-#### format.
func ValidateInvoiceNumber(invoiceNumber string) string {
	if !invoiceNumberPattern.MatchString(invoiceNumber) {
		return msgInvoiceNumber
	}
	return ""
}

// ValidateCustomerName requires a non-blank name of 2 to 100 characters.
// Length bounds count characters on the untrimmed value.
func ValidateCustomerName(name string) string {
	if strings.TrimSpace(name) == "" {
		return msgCustomerName
	}
	if n := utf8.RuneCountInString(name); n < 2 || n > 100 {
		return msgCustomerName
	}
	return ""
}

// ValidateEmail accepts a blank value as absent; otherwise the address must
// match the loose local@domain pattern of the upstream contract.
func ValidateEmail(email string) string {
	if strings.TrimSpace(email) == "" {
		return ""
	}
	if !emailPattern.MatchString(email) {
		return msgEmail
	}
	return ""
}

// ValidatePhone accepts a blank value as absent; otherwise ten digits
// starting 6-9.
func ValidatePhone(phone string) string {
	if strings.TrimSpace(phone) == "" {
		return ""
	}
	if !phonePattern.MatchString(phone) {
		return msgPhone
	}
	return ""
}

// ValidateGstin accepts a blank value as absent; otherwise the 15-character
// GSTIN pattern.
func ValidateGstin(gstin string) string {
	if strings.TrimSpace(gstin) == "" {
		return ""
	}
	if !gstinPattern.MatchString(gstin) {
		return msgGstin
	}
	return ""
}

// ValidateDate requires a non-zero date.
func ValidateDate(date Date) string {
	if date.IsZero() {
		return msgDateRequired
	}
	return ""
}

// ValidateDateRange requires the due date to be on or after the invoice date.
func ValidateDateRange(invoiceDate, dueDate Date) string {
	if dueDate.Before(invoiceDate) {
		return msgDateRange
	}
	return ""
}

// ValidateProductName requires a non-blank name of 2 to 200 characters.
func ValidateProductName(name string) string {
	if strings.TrimSpace(name) == "" {
		return msgProductName
	}
	if n := utf8.RuneCountInString(name); n < 2 || n > 200 {
		return msgProductName
	}
	return ""
}

// ValidateQuantity requires a quantity in [0.01, 999999].
func ValidateQuantity(quantity decimal.Decimal) string {
	if quantity.LessThan(minQuantity) || quantity.GreaterThan(maxQuantity) {
		return msgQuantity
	}
	return ""
}

// ValidateUnitPrice requires a price in [0, 9999999].
func ValidateUnitPrice(price decimal.Decimal) string {
	if price.IsNegative() || price.GreaterThan(maxUnitPrice) {
		return msgUnitPrice
	}
	return ""
}

// ValidateDiscount checks the discount against its type: percentages may not
// exceed 100 and amount discounts may not exceed the row's base amount.
func ValidateDiscount(discount decimal.Decimal, discountType DiscountType, baseAmount decimal.Decimal) string {
	if discount.IsNegative() {
		return msgDiscountNeg
	}
	if discountType == DiscountPercentage && discount.GreaterThan(hundred) {
		return msgDiscountRange
	}
	if discountType == DiscountAmount && discount.GreaterThan(baseAmount) {
		return msgDiscountExceeds
	}
	return ""
}

// ValidateLineItem checks a single row and returns its per-field errors.
func ValidateLineItem(item LineItem) LineItemErrors {
	baseAmount := item.Quantity.Mul(item.UnitPrice)
	return LineItemErrors{
		ProductName: ValidateProductName(item.ProductName),
		Quantity:    ValidateQuantity(item.Quantity),
		UnitPrice:   ValidateUnitPrice(item.UnitPrice),
		Discount:    ValidateDiscount(item.Discount, item.DiscountType, baseAmount),
	}
}

// ValidateLineItems checks the whole sequence: at least one row, and every
// row individually valid.
func ValidateLineItems(items []LineItem) string {
	if len(items) == 0 {
		return msgLineItems
	}
	for _, item := range items {
		if ValidateLineItem(item).HasErrors() {
			return msgLineItemsFix
		}
	}
	return ""
}

// ValidateInvoiceForm aggregates every field rule into a single typed record.
// The invoice number is only checked when present, since the server assigns
// one on create. The date-range rule runs only when both dates are
// individually valid. Submission requires both this record and every per-row
// record from ValidateLineItem to be empty.
func ValidateInvoiceForm(data CreateInvoiceData) FormErrors {
	errs := FormErrors{
		InvoiceDate:   ValidateDate(data.InvoiceDate),
		DueDate:       ValidateDate(data.DueDate),
		CustomerName:  ValidateCustomerName(data.CustomerName),
		CustomerEmail: ValidateEmail(data.CustomerEmail),
		CustomerPhone: ValidatePhone(data.CustomerPhone),
		CustomerGSTIN: ValidateGstin(data.CustomerGSTIN),
		LineItems:     ValidateLineItems(data.LineItems),
	}
	if data.InvoiceNumber != "" {
		errs.InvoiceNumber = ValidateInvoiceNumber(data.InvoiceNumber)
	}
	if errs.InvoiceDate == "" && errs.DueDate == "" {
		errs.DueDate = ValidateDateRange(data.InvoiceDate, data.DueDate)
	}
	if strings.TrimSpace(data.PlaceOfSupply) == "" {
		errs.PlaceOfSupply = msgPlaceOfSupply
	}
	return errs
}
