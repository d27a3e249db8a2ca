package invoice

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestValidateInvoiceNumber(t *testing.T) {
	t.Parallel()

	require.Empty(t, ValidateInvoiceNumber("INV-0001"))
	require.Empty(t, ValidateInvoiceNumber("INV-202600123"))
	require.NotEmpty(t, ValidateInvoiceNumber("INV-1"))
	require.NotEmpty(t, ValidateInvoiceNumber("INV-001"))
	require.NotEmpty(t, ValidateInvoiceNumber("inv-0001"))
	require.NotEmpty(t, ValidateInvoiceNumber("INV0001"))
	require.NotEmpty(t, ValidateInvoiceNumber(""))
}

func TestValidateCustomerName(t *testing.T) {
	t.Parallel()

	require.Empty(t, ValidateCustomerName("Ab"))
	require.NotEmpty(t, ValidateCustomerName("A"))
	require.NotEmpty(t, ValidateCustomerName(""))

	// Blank means absent regardless of length.
	require.NotEmpty(t, ValidateCustomerName("   "))
	require.NotEmpty(t, ValidateCustomerName("\t\n"))

	require.NotEmpty(t, ValidateCustomerName(strings.Repeat("a", 101)))
	require.Empty(t, ValidateCustomerName(strings.Repeat("a", 100)))

	// Length bounds count characters, not bytes.
	require.Empty(t, ValidateCustomerName(strings.Repeat("म", 100)))
	require.NotEmpty(t, ValidateCustomerName(strings.Repeat("म", 101)))
	require.Empty(t, ValidateCustomerName("रवि"))
}

func TestValidateProductName(t *testing.T) {
	t.Parallel()

	require.Empty(t, ValidateProductName("Steel Rod"))
	require.NotEmpty(t, ValidateProductName(""))
	require.NotEmpty(t, ValidateProductName("   "))
	require.NotEmpty(t, ValidateProductName("X"))
	require.NotEmpty(t, ValidateProductName(strings.Repeat("a", 201)))
	require.Empty(t, ValidateProductName(strings.Repeat("म", 200)))
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	require.Empty(t, ValidateEmail(""))
	require.Empty(t, ValidateEmail("   "))
	require.Empty(t, ValidateEmail("ravi@example.com"))
	require.NotEmpty(t, ValidateEmail("not-an-email"))
	require.NotEmpty(t, ValidateEmail("a b@example.com"))
	require.NotEmpty(t, ValidateEmail("ravi@example"))
}

func TestValidatePhone(t *testing.T) {
	t.Parallel()

	require.Empty(t, ValidatePhone(""))
	require.Empty(t, ValidatePhone("   "))
	require.Empty(t, ValidatePhone("9876543210"))
	require.Empty(t, ValidatePhone("6123456789"))
	require.NotEmpty(t, ValidatePhone("5876543210"))
	require.NotEmpty(t, ValidatePhone("98765"))
	require.NotEmpty(t, ValidatePhone("98765432100"))
}

func TestValidateGstin(t *testing.T) {
	t.Parallel()

	require.Empty(t, ValidateGstin(""))
	require.Empty(t, ValidateGstin("   "))
	require.Empty(t, ValidateGstin("27AAAAA0000A1Z5"))
	require.NotEmpty(t, ValidateGstin("27aaaaa0000a1z5"))
	require.NotEmpty(t, ValidateGstin("27AAAAA0000A1Z"))
	require.NotEmpty(t, ValidateGstin("27AAAAA0000A0Z5"))
}

func TestValidateQuantity(t *testing.T) {
	t.Parallel()

	require.Empty(t, ValidateQuantity(decimal.NewFromFloat(0.01)))
	require.Empty(t, ValidateQuantity(decimal.NewFromInt(999999)))
	require.NotEmpty(t, ValidateQuantity(decimal.Zero))
	require.NotEmpty(t, ValidateQuantity(decimal.NewFromInt(-1)))
	require.NotEmpty(t, ValidateQuantity(decimal.NewFromInt(1000000)))
}

func TestValidateUnitPrice(t *testing.T) {
	t.Parallel()

	require.Empty(t, ValidateUnitPrice(decimal.Zero))
	require.Empty(t, ValidateUnitPrice(decimal.NewFromInt(9999999)))
	require.NotEmpty(t, ValidateUnitPrice(decimal.NewFromInt(-1)))
	require.NotEmpty(t, ValidateUnitPrice(decimal.NewFromInt(10000000)))
}

func TestValidateDiscount(t *testing.T) {
	t.Parallel()

	base := decimal.NewFromInt(100)

	require.Empty(t, ValidateDiscount(decimal.NewFromInt(50), DiscountPercentage, base))
	require.Empty(t, ValidateDiscount(hundred, DiscountPercentage, base))
	require.Equal(t, msgDiscountRange, ValidateDiscount(decimal.NewFromInt(101), DiscountPercentage, base))
	require.Equal(t, msgDiscountNeg, ValidateDiscount(decimal.NewFromInt(-1), DiscountPercentage, base))

	require.Empty(t, ValidateDiscount(base, DiscountAmount, base))
	require.Equal(t, msgDiscountExceeds, ValidateDiscount(decimal.NewFromInt(101), DiscountAmount, base))
	require.Equal(t, msgDiscountNeg, ValidateDiscount(decimal.NewFromInt(-1), DiscountAmount, base))
}

func TestValidateDateRange(t *testing.T) {
	t.Parallel()

	invoiceDate := NewDate(2026, 3, 1)

	require.Empty(t, ValidateDateRange(invoiceDate, invoiceDate))
	require.Empty(t, ValidateDateRange(invoiceDate, NewDate(2026, 3, 31)))
	require.Equal(t, msgDateRange, ValidateDateRange(invoiceDate, NewDate(2026, 2, 28)))
}

func TestValidateLineItem(t *testing.T) {
	t.Parallel()

	clean := ValidateLineItem(LineItem{
		ProductName:  "Steel Rod",
		Quantity:     decimal.NewFromInt(2),
		UnitPrice:    decimal.NewFromInt(100),
		Discount:     decimal.NewFromInt(10),
		DiscountType: DiscountPercentage,
		TaxRate:      decimal.NewFromInt(18),
	})
	require.False(t, clean.HasErrors())

	broken := ValidateLineItem(LineItem{
		ProductName:  "X",
		Quantity:     decimal.Zero,
		UnitPrice:    decimal.NewFromInt(-5),
		Discount:     decimal.NewFromInt(200),
		DiscountType: DiscountPercentage,
	})
	require.True(t, broken.HasErrors())
	require.Equal(t, msgProductName, broken.Field("productName"))
	require.Equal(t, msgQuantity, broken.Field("quantity"))
	require.Equal(t, msgUnitPrice, broken.Field("unitPrice"))
	require.Equal(t, msgDiscountRange, broken.Field("discount"))
}

func TestValidateLineItems(t *testing.T) {
	t.Parallel()

	require.Equal(t, msgLineItems, ValidateLineItems(nil))

	valid := LineItem{
		ProductName:  "Steel Rod",
		Quantity:     decimal.NewFromInt(1),
		UnitPrice:    decimal.NewFromInt(100),
		DiscountType: DiscountPercentage,
	}
	require.Empty(t, ValidateLineItems([]LineItem{valid}))

	invalid := valid
	invalid.ProductName = ""
	require.Equal(t, msgLineItemsFix, ValidateLineItems([]LineItem{valid, invalid}))
}

func TestValidateInvoiceForm(t *testing.T) {
	t.Parallel()

	data := CreateInvoiceData{
		InvoiceDate:   NewDate(2026, 3, 1),
		DueDate:       NewDate(2026, 3, 31),
		CustomerName:  "Acme Traders",
		PlaceOfSupply: "Maharashtra",
		LineItems: []LineItem{{
			ProductName:  "Steel Rod",
			Quantity:     decimal.NewFromInt(1),
			UnitPrice:    decimal.NewFromInt(100),
			DiscountType: DiscountPercentage,
			TaxRate:      decimal.NewFromInt(18),
		}},
	}

	require.False(t, ValidateInvoiceForm(data).HasErrors())

	// The number is optional on create but checked once present.
	withNumber := data
	withNumber.InvoiceNumber = "INV-1"
	require.Equal(t, msgInvoiceNumber, ValidateInvoiceForm(withNumber).Field("invoiceNumber"))
	withNumber.InvoiceNumber = "INV-0001"
	require.False(t, ValidateInvoiceForm(withNumber).HasErrors())
}

func TestValidateInvoiceFormMissingFields(t *testing.T) {
	t.Parallel()

	errs := ValidateInvoiceForm(CreateInvoiceData{})

	require.True(t, errs.HasErrors())
	require.Equal(t, msgDateRequired, errs.InvoiceDate)
	require.Equal(t, msgDateRequired, errs.DueDate)
	require.Equal(t, msgCustomerName, errs.CustomerName)
	require.Equal(t, msgPlaceOfSupply, errs.PlaceOfSupply)
	require.Equal(t, msgLineItems, errs.LineItems)
	require.Empty(t, errs.InvoiceNumber)
	require.Len(t, errs.Messages(), 5)
}

func TestValidateInvoiceFormDateRangeOnlyWhenBothValid(t *testing.T) {
	t.Parallel()

	errs := ValidateInvoiceForm(CreateInvoiceData{
		InvoiceDate: NewDate(2026, 3, 31),
		// DueDate missing; the range rule must not overwrite the
		// required-date message.
	})
	require.Equal(t, msgDateRequired, errs.DueDate)

	errs = ValidateInvoiceForm(CreateInvoiceData{
		InvoiceDate: NewDate(2026, 3, 31),
		DueDate:     NewDate(2026, 3, 1),
	})
	require.Equal(t, msgDateRange, errs.DueDate)
}

func TestValidTaxRate(t *testing.T) {
	t.Parallel()

	for _, rate := range []int64{0, 5, 12, 18, 28} {
		require.True(t, ValidTaxRate(decimal.NewFromInt(rate)))
	}
	require.False(t, ValidTaxRate(decimal.NewFromInt(10)))
	require.False(t, ValidTaxRate(decimal.NewFromFloat(18.5)))
}
