package testutil

// TestCPFs provides known CPF inputs for tests.
// Valid numbers were checked against the modulo-11 rule by hand.
var TestCPFs = struct {
	Valid          string // 453.178.287-91, region digit 7 (ES, RJ)
	ValidCompact   string
	ValidBase      string // first nine digits of Valid
	ValidRegion2   string // region digit 2 (AC, AM, AP, PA, RO, RR)
	ValidZeroCheck string // both check digits collapse to 0
	BadCheckDigit  string
	Malformed      string
	TooShort       string
}{
	Valid:          "453.178.287-91",
	ValidCompact:   "45317828791",
	ValidBase:      "453.178.287",
	ValidRegion2:   "123.456.782-24",
	ValidZeroCheck: "987.654.321-00",
	BadCheckDigit:  "45317828792",
	Malformed:      "abc12345",
	TooShort:       "4531782879",
}
