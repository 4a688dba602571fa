package utils

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	inrPrinter   = message.NewPrinter(language.MustParse("en-IN"))
	countPrinter = message.NewPrinter(language.English)
)

// FormatINR renders a rupee amount with Indian digit grouping and no decimals,
// e.g. 12345678 -> "₹1,23,45,678".
func FormatINR(amount float64) string {
	return inrPrinter.Sprintf("₹%d", int64(math.Round(amount)))
}

// FormatCount groups thousands the western way: 12,345.
func FormatCount(n int) string {
	return countPrinter.Sprintf("%d", n)
}

// Percent returns part/total as a percentage with one decimal. A zero total is 0.0%.
func Percent(part, total int) string {
	if total <= 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)*100/float64(total))
}

const (
	DateLayout     = "Jan 02, 2006"
	DateTimeLayout = "Jan 02, 2006 15:04"
	LongLayout     = "January 02, 2006 15:04"
	StampLayout    = "Jan 02, 2006 15:04:05"
)

// FormatTime renders t with layout, or "-" for the zero time.
func FormatTime(t time.Time, layout string) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(layout)
}
