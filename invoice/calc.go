package invoice

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	// Intra-state tax is always split in equal halves between CGST and SGST.
	cgstSgstSplit = decimal.NewFromFloat(0.5)
)

// CalculateLineItem computes the monetary breakdown of one row. The function
// trusts its input: out-of-range values (negative quantity, an amount
// discount larger than the base amount) pass through unclamped and are only
// rejected by the validation engine.
func CalculateLineItem(item LineItem) LineItemCalculation {
	base := item.Quantity.Mul(item.UnitPrice)

	var discount decimal.Decimal
	if item.DiscountType == DiscountPercentage {
		discount = base.Mul(item.Discount).Div(hundred)
	} else {
		discount = item.Discount
	}

	taxable := base.Sub(discount)
	tax := taxable.Mul(item.TaxRate).Div(hundred)

	return LineItemCalculation{
		Amount:         base,
		DiscountAmount: discount,
		TaxableAmount:  taxable,
		TaxAmount:      tax,
		TotalAmount:    taxable.Add(tax),
	}
}

// UpdateLineItemAmount refreshes the row's cached Amount (taxable plus tax,
// rounded to two decimals) and returns the updated row.
func UpdateLineItemAmount(item LineItem) LineItem {
	item.Amount = CalculateLineItem(item).TotalAmount.Round(2)
	return item
}

// CalculateInvoiceTotals aggregates line items into the invoice-level tax
// projection. RoundOff is the delta between the whole-rupee rounded total and
// the unrounded total; it is computed before the per-field two-decimal
// rounding, so it and TotalAmount come from different rounding passes.
func CalculateInvoiceTotals(lineItems []LineItem, isInterState bool) TaxCalculation {
	subtotal := decimal.Zero
	totalDiscount := decimal.Zero
	taxableAmount := decimal.Zero
	totalTax := decimal.Zero

	for _, item := range lineItems {
		calc := CalculateLineItem(item)
		subtotal = subtotal.Add(calc.Amount)
		totalDiscount = totalDiscount.Add(calc.DiscountAmount)
		taxableAmount = taxableAmount.Add(calc.TaxableAmount)
		totalTax = totalTax.Add(calc.TaxAmount)
	}

	cgst := decimal.Zero
	sgst := decimal.Zero
	igst := decimal.Zero
	if isInterState {
		igst = totalTax
	} else {
		// No cent-level reconciliation: an odd-cent tax total leaves each
		// half carrying the fractional half-cent.
		cgst = totalTax.Mul(cgstSgstSplit)
		sgst = totalTax.Mul(cgstSgstSplit)
	}

	totalAmount := taxableAmount.Add(totalTax)
	roundOff := totalAmount.Round(0).Sub(totalAmount)

	return TaxCalculation{
		Subtotal:      subtotal.Round(2),
		TotalDiscount: totalDiscount.Round(2),
		TaxableAmount: taxableAmount.Round(2),
		CGST:          cgst.Round(2),
		SGST:          sgst.Round(2),
		IGST:          igst.Round(2),
		TotalTax:      totalTax.Round(2),
		TotalAmount:   totalAmount.Round(2),
		RoundOff:      roundOff.Round(2),
	}
}

// CalculateGstBreakdown splits the tax on a single ad-hoc amount, independent
// of any line items. Used for previews and summaries.
func CalculateGstBreakdown(amount, taxRate decimal.Decimal, isInterState bool) GstBreakdown {
	tax := amount.Mul(taxRate).Div(hundred)
	if isInterState {
		return GstBreakdown{
			CGST:     decimal.Zero,
			SGST:     decimal.Zero,
			IGST:     tax.Round(2),
			TotalTax: tax.Round(2),
		}
	}
	return GstBreakdown{
		CGST:     tax.Mul(cgstSgstSplit).Round(2),
		SGST:     tax.Mul(cgstSgstSplit).Round(2),
		IGST:     decimal.Zero,
		TotalTax: tax.Round(2),
	}
}

// CalculateDiscount resolves a discount value against a base amount.
func CalculateDiscount(baseAmount, discount decimal.Decimal, discountType DiscountType) decimal.Decimal {
	if discountType == DiscountPercentage {
		return baseAmount.Mul(discount).Div(hundred)
	}
	return discount
}

// CalculateDueDate adds the given number of calendar days to the invoice
// date. No business-day adjustment is applied.
func CalculateDueDate(invoiceDate Date, paymentDays int) Date {
	return invoiceDate.AddDays(paymentDays)
}

// DueDateForTerms derives the due date from the invoice date and payment terms.
func DueDateForTerms(invoiceDate Date, terms PaymentTerms) Date {
	return CalculateDueDate(invoiceDate, terms.Days())
}

// IsInvoiceOverdue reports whether the invoice is past due. Paid and
// cancelled invoices are never overdue; otherwise the due date (date-only,
// local timezone) must be strictly before today.
func IsInvoiceOverdue(dueDate Date, status Status) bool {
	return invoiceOverdueOn(dueDate, status, Today())
}

func invoiceOverdueOn(dueDate Date, status Status, today Date) bool {
	if status == StatusPaid || status == StatusCancelled {
		return false
	}
	if dueDate.IsZero() {
		return false
	}
	return dueDate.Before(today)
}

// DaysOverdue returns how many days past due the date is, or zero when it is
// today or in the future.
func DaysOverdue(dueDate Date) int {
	days := dueDate.DaysUntil(Today())
	if days < 0 {
		return 0
	}
	return days
}

// IsInterState reports whether the supply is inter-state: the place of supply
// differs from the company's home state. Comparison is by trimmed state name,
// not by GSTIN state code.
func IsInterState(placeOfSupply, companyState string) bool {
	supply := strings.TrimSpace(placeOfSupply)
	home := strings.TrimSpace(companyState)
	if supply == "" || home == "" {
		return false
	}
	return supply != home
}

// Percentage returns value as a percentage of total, rounded to two decimals.
// A zero total yields zero.
func Percentage(value, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return value.Div(total).Mul(hundred).Round(2)
}

// RoundToTwo rounds a monetary value to two decimal places, half away from
// zero.
func RoundToTwo(value decimal.Decimal) decimal.Decimal {
	return value.Round(2)
}
