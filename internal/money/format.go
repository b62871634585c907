// Package money formats monetary amounts for display.
package money

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale is the locale the dashboard renders amounts in.
const DefaultLocale = "pt-BR"

const fractionDigits = 2

// nbsp separates the symbol from the number, as browsers do for pt-BR.
const nbsp = "\u00a0"

// Formatter renders amounts for one display locale. The zero value is not usable;
// build it with NewFormatter.
type Formatter struct {
	tag language.Tag
}

// NewFormatter returns a formatter for the given BCP 47 locale.
func NewFormatter(locale string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, err
	}
	return &Formatter{tag: tag}, nil
}

var defaultFormatter = &Formatter{tag: language.BrazilianPortuguese}

// Default returns the pt-BR formatter.
func Default() *Formatter { return defaultFormatter }

// Format renders amount in the given currency with the default locale.
func Format(amount float64, code string) string {
	return defaultFormatter.Format(amount, code)
}

// Locale returns the locale tag of the formatter.
func (f *Formatter) Locale() string { return f.tag.String() }

// Format renders amount with exactly two fraction digits and the currency
// symbol in front. Unknown codes are printed as-is in place of the symbol.
func (f *Formatter) Format(amount float64, code string) string {
	p := message.NewPrinter(f.tag)

	var b strings.Builder
	if amount < 0 {
		b.WriteString("-")
		amount = -amount
	}
	b.WriteString(f.symbol(p, code))
	b.WriteString(nbsp)
	b.WriteString(p.Sprint(number.Decimal(amount, number.Scale(fractionDigits))))
	return b.String()
}

// Symbol returns the display symbol of a currency code in the formatter's locale.
func (f *Formatter) Symbol(code string) string {
	return f.symbol(message.NewPrinter(f.tag), code)
}

func (f *Formatter) symbol(p *message.Printer, code string) string {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return code
	}
	return p.Sprint(currency.Symbol(unit))
}

// FormatPercent renders a percentage with one decimal place ("62.5").
func FormatPercent(p float64) string {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return strconv.FormatFloat(p, 'f', 1, 64)
	}
	return decimal.NewFromFloat(p).StringFixed(1)
}
