// Package cpf validates, normalizes, builds and generates CPF numbers, the
// Brazilian individual taxpayer identifier.
//
// A CPF has 11 digits: eight base digits, one digit encoding the issuing
// region (see Uf) and two modulo-11 check digits. The canonical rendering is
// DDD.DDD.DDD-DD.
//
// Domain Purity: this package performs no I/O. The only shared state is the
// read-only uf table and, for Random, the process-wide random source.
package cpf

import (
	"regexp"
	"strings"

	dErrors "github.com/betafcc/cpf/pkg/domain-errors"
)

// Cpf is a validated CPF number.
//
// Invariants:
//   - Exactly 11 decimal digits once punctuation is removed
//   - The last two digits are CheckDigits of the first nine
//   - Stored in canonical DDD.DDD.DDD-DD form
//
// The zero value is "no CPF" and is never valid. Values are comparable with ==.
type Cpf struct {
	value string
}

var (
	strippedPattern = regexp.MustCompile(`^\d{11}$`)
	digitsPattern   = regexp.MustCompile(`^\d+$`)
	punctuation     = strings.NewReplacer(".", "", "-", "")
)

// Sentinels for errors.Is; matching is by code, messages are not compared.
var (
	ErrTypeMismatch     = dErrors.New(dErrors.CodeTypeMismatch, "type mismatch")
	ErrInvalidUf        = dErrors.New(dErrors.CodeInvalidRegion, "invalid uf")
	ErrMalformedInput   = dErrors.New(dErrors.CodeMalformedInput, "malformed input")
	ErrInvalidArguments = dErrors.New(dErrors.CodeInvalidArguments, "invalid arguments")
)

// Strip removes every '.' and '-' from raw. Any other character is kept, so
// the result is not necessarily digits only.
func Strip(raw string) string {
	return punctuation.Replace(raw)
}

// IsValid reports whether v is a string holding a valid CPF, punctuated or
// not. Any other type, Cpf included, is false; use IsZero on a Cpf.
//
// Examples:
//
//	IsValid("453.178.287-91") // true
//	IsValid("45317828791")    // true
//	IsValid("45317828792")    // false, check digit
func IsValid(v any) bool {
	switch x := v.(type) {
	case string:
		return isValidStripped(Strip(x))
	default:
		return false
	}
}

func isValidStripped(s string) bool {
	return strippedPattern.MatchString(s) && s[9:] == CheckDigits(s[:9])
}

// format expects exactly 11 digits.
func format(s string) string {
	return s[0:3] + "." + s[3:6] + "." + s[6:9] + "-" + s[9:11]
}

// From builds a Cpf from a complete number or from its first nine digits.
//
// Accepted shapes:
//
//	From("453.178.287-91") // complete, punctuated
//	From("45317828791")    // complete, compact
//	From("453.178.287")    // check digits computed
//
// Eight-digit input needs an uf; use FromUf.
func From(s string) (Cpf, error) {
	return build(s, "", false)
}

// FromUf is From with an uf whose region digit completes eight-digit input:
//
//	FromUf("453.178.28", RJ) // 453.178.287-91
//
// The uf must be valid even when the input already carries a region digit,
// but it is otherwise ignored for nine and eleven digit input.
func FromUf(s string, uf Uf) (Cpf, error) {
	return build(s, uf, true)
}

// FromAny is From for untyped values, such as decoded JSON.
//
// Errors: returns CodeTypeMismatch for anything but a string.
func FromAny(v any) (Cpf, error) {
	s, ok := v.(string)
	if !ok {
		return Cpf{}, dErrors.New(dErrors.CodeTypeMismatch, "first argument must be string")
	}
	return From(s)
}

// MustFrom builds a Cpf, panicking if invalid.
// Use only in tests or when the value is known to be valid.
func MustFrom(s string) Cpf {
	c, err := From(s)
	if err != nil {
		panic(err)
	}
	return c
}

func build(s string, uf Uf, hasUf bool) (Cpf, error) {
	if hasUf && !uf.IsValid() {
		return Cpf{}, invalidUf(uf)
	}

	stripped := Strip(s)
	if !digitsPattern.MatchString(stripped) {
		return Cpf{}, dErrors.New(dErrors.CodeMalformedInput,
			"first argument must contain only numbers, '.' and '-'")
	}

	if len(stripped) == 8 {
		if !hasUf {
			return Cpf{}, dErrors.New(dErrors.CodeTypeMismatch,
				"must provide an uf if first argument has 8 digits")
		}
		stripped += string(ufDigits[uf])
	}
	if len(stripped) == 9 {
		stripped += CheckDigits(stripped)
	}
	if len(stripped) == 11 && isValidStripped(stripped) {
		return Cpf{value: format(stripped)}, nil
	}

	return Cpf{}, dErrors.New(dErrors.CodeInvalidArguments, "invalid arguments")
}

// Equals reports whether both values hold the same number.
func (c Cpf) Equals(other Cpf) bool {
	return c.Format() == other.Format()
}

// Strip returns the 11-digit compact form:
//
//	MustFrom("453.178.287-91").Strip() // "45317828791"
func (c Cpf) Strip() string {
	return Strip(c.value)
}

// Format returns the canonical punctuated form:
//
//	MustFrom("45317828791").Format() // "453.178.287-91"
func (c Cpf) Format() string {
	return c.value
}

// String returns the canonical punctuated form.
func (c Cpf) String() string {
	return c.value
}

// IsZero returns true if this is the zero value (uninitialized).
func (c Cpf) IsZero() bool {
	return c.value == ""
}

// PossibleUfs returns the ufs that may have issued c, sorted alphabetically.
// Several ufs share a region digit, so the result is a set:
//
//	MustFrom("453.178.287-91").PossibleUfs() // [ES RJ]
func (c Cpf) PossibleUfs() []Uf {
	if c.IsZero() {
		return nil
	}
	// index 10 of DDD.DDD.DDD-DD is the ninth digit
	return ufsForDigitByte(c.value[10])
}
