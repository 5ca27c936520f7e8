package models

import (
	"fmt"
	"strconv"
)

// Money is an amount in centavos (BRL minor unit).
type Money int64

func (m Money) Reais() float64 {
	return float64(m) / 100
}

// Cents returns the amount as the raw digit string the currency field works with.
func (m Money) Cents() string {
	return strconv.FormatInt(int64(m), 10)
}

// MarshalJSON writes the amount in reais with two decimals, e.g. 1500.50.
func (m Money) MarshalJSON() ([]byte, error) {
	v := int64(m)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return []byte(fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)), nil
}
