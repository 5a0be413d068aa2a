//go:build go1.18

package cpf

import (
	"testing"

	dErrors "github.com/betafcc/cpf/pkg/domain-errors"
)

// FuzzFrom tests that construction never panics on arbitrary input and
// always returns either a valid CPF or a coded error.
//
// Justification: From is a trust boundary and must handle arbitrary input.
func FuzzFrom(f *testing.F) {
	f.Add("")
	f.Add("453.178.287-91")
	f.Add("45317828791")
	f.Add("453.178.287")
	f.Add("453.178.28")
	f.Add("45317828792")
	f.Add("abc12345")
	f.Add("..--..")
	f.Add(string([]byte{0x00, 0x01, 0x02}))
	f.Add("４５３１７８２８７９１")

	f.Fuzz(func(t *testing.T, input string) {
		c, err := From(input)

		// Invariant 1: either a value or an error, never both
		if err != nil {
			if !c.IsZero() {
				t.Error("error returned alongside a value")
			}
			if dErrors.CodeOf(err) == dErrors.CodeInternal {
				t.Errorf("uncoded error: %v", err)
			}
			return
		}

		// Invariant 2: constructed values validate and round-trip
		if !IsValid(c.Format()) || !IsValid(c.Strip()) {
			t.Errorf("constructed value %q is not valid", c.Format())
		}
		again, err := From(c.Strip())
		if err != nil || !again.Equals(c) {
			t.Errorf("round-trip changed %q", c.Format())
		}
		if format(Strip(c.Format())) != c.Format() {
			t.Errorf("format/strip not idempotent for %q", c.Format())
		}
	})
}

// FuzzIsValid ensures IsValid agrees with From on complete numbers.
//
// Justification: IsValid collapses every From failure into false; the two
// must never disagree about an 11-digit input.
func FuzzIsValid(f *testing.F) {
	f.Add("45317828791")
	f.Add("45317828792")
	f.Add("453.178.287-91")
	f.Add("000.000.000-00")

	f.Fuzz(func(t *testing.T, input string) {
		valid := IsValid(input)
		if len(Strip(input)) != 11 {
			if valid {
				t.Errorf("%q accepted without 11 digits", input)
			}
			return
		}
		_, err := From(input)
		if valid != (err == nil) {
			t.Errorf("IsValid=%v but From error=%v for %q", valid, err, input)
		}
	})
}
