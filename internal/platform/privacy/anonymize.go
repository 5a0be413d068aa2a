// Package privacy provides utilities for handling personally identifiable information (PII)
// in an LGPD-compliant manner.
package privacy

import (
	"github.com/betafcc/cpf/pkg/cpf"
)

// MaskCPF hides the leading three digits and both check digits of a CPF,
// keeping only the middle block for correlation in logs
// (e.g., "453.178.287-91" -> "***.178.287-**").
//
// Any accepted input shape is masked in canonical form. Returns "unknown" for
// empty strings and "invalid" for anything that is not a valid CPF; raw
// invalid input is never echoed.
func MaskCPF(s string) string {
	if s == "" {
		return "unknown"
	}
	c, err := cpf.From(s)
	if err != nil {
		return "invalid"
	}
	formatted := c.Format()
	return "***" + formatted[3:11] + "-**"
}
