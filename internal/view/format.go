package view

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Korean)

// Won formats an amount with Korean digit grouping, e.g. 10,000원
func Won(amount decimal.Decimal) string {
	return printer.Sprintf("%d원", amount.Round(0).IntPart())
}

// Percent renders a fractional rate as a whole percent, e.g. 0.155 -> 16
func Percent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(0)
}
