package cpf

import (
	"slices"

	dErrors "github.com/betafcc/cpf/pkg/domain-errors"
)

// Uf is a two-letter Brazilian federative unit code. The ninth digit of a CPF
// encodes the fiscal region where it was issued; Uf maps onto that digit.
//
// Usage: construct via ParseUf at trust boundaries; direct casting bypasses
// validation and is only safe for the constants below.
type Uf string

const (
	AC Uf = "AC"
	AL Uf = "AL"
	AP Uf = "AP"
	AM Uf = "AM"
	BA Uf = "BA"
	CE Uf = "CE"
	DF Uf = "DF"
	ES Uf = "ES"
	GO Uf = "GO"
	MA Uf = "MA"
	MT Uf = "MT"
	MS Uf = "MS"
	MG Uf = "MG"
	PA Uf = "PA"
	PB Uf = "PB"
	PR Uf = "PR"
	PE Uf = "PE"
	PI Uf = "PI"
	RJ Uf = "RJ"
	RN Uf = "RN"
	RS Uf = "RS"
	RO Uf = "RO"
	RR Uf = "RR"
	SC Uf = "SC"
	SP Uf = "SP"
	SE Uf = "SE"
	TO Uf = "TO"
)

// ufOrder is the canonical enumeration order. Random selection indexes into it,
// so reordering changes which uf a seeded generator produces.
var ufOrder = []Uf{
	AC, AL, AP, AM, BA, CE, DF, ES, GO, MA, MT, MS, MG, PA,
	PB, PR, PE, PI, RJ, RN, RS, RO, RR, SC, SP, SE, TO,
}

// ufDigits is the single source of truth for the region digit of each uf.
// See https://janio.sarmento.org/curiosidade-identificacao-de-cpf-conforme-o-estado/
var ufDigits = map[Uf]byte{
	AC: '2', AL: '4', AP: '2', AM: '2', BA: '5', CE: '3', DF: '1',
	ES: '7', GO: '1', MA: '3', MT: '0', MS: '1', MG: '6', PA: '2',
	PB: '4', PR: '9', PE: '4', PI: '3', RJ: '7', RN: '4', RS: '0',
	RO: '2', RR: '2', SC: '9', SP: '8', SE: '5', TO: '1',
}

// ParseUf constructs a Uf from external input. Matching is exact: "rj" is
// rejected.
//
// Errors: returns CodeInvalidRegion when the value is not in the table.
func ParseUf(s string) (Uf, error) {
	u := Uf(s)
	if !u.IsValid() {
		return "", invalidUf(u)
	}
	return u, nil
}

// IsValid reports whether u is one of the 27 enumerated codes.
func (u Uf) IsValid() bool {
	_, ok := ufDigits[u]
	return ok
}

// Digit returns the region digit for u, from 0 to 9.
func (u Uf) Digit() (int, bool) {
	d, ok := ufDigits[u]
	if !ok {
		return 0, false
	}
	return int(d - '0'), true
}

// String returns the string representation of the uf.
func (u Uf) String() string {
	return string(u)
}

// Ufs returns every uf in canonical order.
func Ufs() []Uf {
	return slices.Clone(ufOrder)
}

// UfTable returns a copy of the uf to region digit table.
func UfTable() map[Uf]int {
	table := make(map[Uf]int, len(ufDigits))
	for u, d := range ufDigits {
		table[u] = int(d - '0')
	}
	return table
}

// UfsForDigit returns the ufs sharing region digit d, sorted alphabetically.
// Digits outside 0-9 yield an empty result.
func UfsForDigit(d int) []Uf {
	if d < 0 || d > 9 {
		return nil
	}
	return ufsForDigitByte(byte('0' + d))
}

func ufsForDigitByte(d byte) []Uf {
	var out []Uf
	for u, digit := range ufDigits {
		if digit == d {
			out = append(out, u)
		}
	}
	slices.Sort(out)
	return out
}

func invalidUf(u Uf) error {
	return dErrors.New(dErrors.CodeInvalidRegion, "invalid uf "+string(u))
}
