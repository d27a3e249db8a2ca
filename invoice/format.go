package invoice

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// All display output uses the Indian English locale: lakh/crore digit
// grouping and the rupee symbol.
var inPrinter = message.NewPrinter(language.MustParse("en-IN"))

const rupeeSymbol = "₹"

// FormatCurrency renders a monetary value with the rupee symbol and Indian
// digit grouping, e.g. ₹1,23,456.79.
func FormatCurrency(amount decimal.Decimal) string {
	f, _ := amount.Round(2).Float64()
	return rupeeSymbol + inPrinter.Sprintf("%.2f", f)
}

// FormatNumber renders a number with Indian digit grouping and the given
// number of decimal places.
func FormatNumber(value decimal.Decimal, decimals int) string {
	f, _ := value.Round(int32(decimals)).Float64()
	return inPrinter.Sprintf("%.*f", decimals, f)
}

// FormatDate renders DD/MM/YYYY for display.
func FormatDate(d Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format("02/01/2006")
}

// FormatDateForInput renders YYYY-MM-DD for form inputs and the wire.
func FormatDateForInput(d Date) string {
	return d.String()
}

// FormatDateTime renders DD/MM/YYYY HH:mm.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006 15:04")
}

// FormatRelativeDate renders a date relative to today: "Today", "Tomorrow",
// "Yesterday", "in N days" or "N days ago"; distant dates fall back to
// FormatDate.
func FormatRelativeDate(d Date) string {
	days := Today().DaysUntil(d)
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 1:
		return fmt.Sprintf("in %d days", days)
	default:
		return fmt.Sprintf("%d days ago", -days)
	}
}

// FormatDaysRemaining renders the distance to a due date: "Overdue by N
// days", "Due today", "Due tomorrow" or "Due in N days".
func FormatDaysRemaining(dueDate Date) string {
	days := Today().DaysUntil(dueDate)
	switch {
	case days < 0:
		return fmt.Sprintf("Overdue by %d days", -days)
	case days == 0:
		return "Due today"
	case days == 1:
		return "Due tomorrow"
	default:
		return fmt.Sprintf("Due in %d days", days)
	}
}

// FormatStatus renders the display label for a status.
func FormatStatus(s Status) string {
	return s.Label()
}

// FormatTaxRate renders a GST rate as "18%".
func FormatTaxRate(rate decimal.Decimal) string {
	return rate.String() + "%"
}

// FormatPercentage renders a percentage with the given decimal places.
func FormatPercentage(value decimal.Decimal, decimals int) string {
	return value.StringFixed(int32(decimals)) + "%"
}

// FormatPhoneNumber renders a ten-digit Indian mobile number as
// "+91 XXXXX XXXXX". Anything else is returned unchanged.
func FormatPhoneNumber(phone string) string {
	if len(phone) != 10 {
		return phone
	}
	return "+91 " + phone[:5] + " " + phone[5:]
}

// FormatGstin renders a 15-character GSTIN with dashes between its
// jurisdictional segments. Anything else is returned unchanged.
func FormatGstin(gstin string) string {
	if len(gstin) != 15 {
		return gstin
	}
	parts := []string{
		gstin[0:2], gstin[2:7], gstin[7:11], gstin[11:12],
		gstin[12:13], gstin[13:14], gstin[14:15],
	}
	return strings.Join(parts, "-")
}

// TruncateText shortens text to maxLength runes with a trailing ellipsis.
func TruncateText(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return string(runes[:maxLength]) + "..."
}

// Initials derives up to two uppercase initials from a name.
func Initials(name string) string {
	fields := strings.Fields(name)
	switch len(fields) {
	case 0:
		return ""
	case 1:
		runes := []rune(fields[0])
		if len(runes) == 1 {
			return strings.ToUpper(string(runes))
		}
		return strings.ToUpper(string(runes[:2]))
	default:
		first := []rune(fields[0])
		last := []rune(fields[len(fields)-1])
		return strings.ToUpper(string(first[0]) + string(last[0]))
	}
}
