// Package currency formats BRL amounts the way the publish form shows them
// ("R$ 1.500,50") and turns typed text back into raw centavo digits.
//
// Formatting works on the digit string itself, so arbitrarily long input never
// overflows or picks up float rounding.
package currency

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Windi-Fikriyansyah/serviceconnect/internal/models"
)

const (
	Symbol            = "R$"
	thousandSeparator = "."
	decimalSeparator  = ","
)

var (
	ErrEmpty    = errors.New("currency: no digits")
	ErrOverflow = errors.New("currency: amount too large")
)

// Digits drops every character that is not an ASCII digit.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// Format reads the digits of raw as centavos and renders them in pt-BR.
// Input without digits renders as zero.
func Format(raw string) string {
	d := strings.TrimLeft(Digits(raw), "0")
	for len(d) < 3 {
		d = "0" + d
	}
	intPart, frac := d[:len(d)-2], d[len(d)-2:]
	return Symbol + " " + group(intPart) + decimalSeparator + frac
}

// FormatMoney renders a stored amount.
func FormatMoney(m models.Money) string {
	if m < 0 {
		return "-" + Format(strconv.FormatInt(-int64(m), 10))
	}
	return Format(m.Cents())
}

// Unformat returns the raw centavo digits behind a displayed value. Leading
// zeros are dropped ("R$ 0,05" gives "5", "R$ 0,00" gives "0"); text without
// digits gives "".
func Unformat(display string) string {
	d := Digits(display)
	if d == "" {
		return ""
	}
	d = strings.TrimLeft(d, "0")
	if d == "" {
		return "0"
	}
	return d
}

// ParseMoney accepts either a displayed value or raw digits.
func ParseMoney(s string) (models.Money, error) {
	d := Unformat(s)
	if d == "" {
		return 0, ErrEmpty
	}
	v, err := strconv.ParseInt(d, 10, 64)
	if err != nil {
		return 0, ErrOverflow
	}
	return models.Money(v), nil
}

func group(intPart string) string {
	if len(intPart) <= 3 {
		return intPart
	}
	var b strings.Builder
	head := len(intPart) % 3
	if head > 0 {
		b.WriteString(intPart[:head])
	}
	for i := head; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteString(thousandSeparator)
		}
		b.WriteString(intPart[i : i+3])
	}
	return b.String()
}
