package currency

import "github.com/Windi-Fikriyansyah/serviceconnect/internal/models"

// maxDigits keeps the buffer inside int64 centavos.
const maxDigits = 15

// Field is the typing buffer behind a currency input. It owns the raw centavo
// digits; the displayed text is always derived from them and is never fed back
// into Format, so repeated re-rendering cannot compound.
type Field struct {
	raw string
}

func NewField(raw string) *Field {
	f := &Field{}
	f.Set(raw)
	return f
}

// Set replaces the buffer with the digits of raw.
func (f *Field) Set(raw string) {
	d := Unformat(raw)
	if d == "0" {
		d = ""
	}
	if len(d) > maxDigits {
		d = d[:maxDigits]
	}
	f.raw = d
}

// Input takes the text of the input element after an edit (the previous
// display plus the typed or deleted character) and returns the new display.
func (f *Field) Input(edited string) string {
	f.Set(edited)
	return f.Display()
}

// Clear empties the buffer.
func (f *Field) Clear() {
	f.raw = ""
}

func (f *Field) Raw() string {
	return f.raw
}

func (f *Field) Display() string {
	return Format(f.raw)
}

// Money returns the buffered amount; an empty buffer is zero.
func (f *Field) Money() models.Money {
	m, err := ParseMoney(f.raw)
	if err != nil {
		return 0
	}
	return m
}
