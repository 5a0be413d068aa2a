package validation

import (
	"fmt"

	dErrors "github.com/betafcc/cpf/pkg/domain-errors"
)

const (
	// MaxGenerate is the most numbers a single generate request may ask for.
	MaxGenerate = 10000

	// MaxBulkInputs is the most inputs a single bulk validation may carry.
	MaxBulkInputs = 100000

	// MaxInputLength bounds one raw input. A punctuated CPF has 14 characters;
	// the slack tolerates stray punctuation.
	MaxInputLength = 64
)

// CheckInputLength rejects raw inputs longer than MaxInputLength.
func CheckInputLength(s string) error {
	if len(s) > MaxInputLength {
		return dErrors.New(dErrors.CodeInvalidInput,
			fmt.Sprintf("input too long: %d characters (max %d)", len(s), MaxInputLength))
	}
	return nil
}

// CheckBulkSize rejects batches with more than MaxBulkInputs entries.
func CheckBulkSize(n int) error {
	if n > MaxBulkInputs {
		return dErrors.New(dErrors.CodeInvalidInput,
			fmt.Sprintf("too many inputs: %d (max %d)", n, MaxBulkInputs))
	}
	return nil
}
