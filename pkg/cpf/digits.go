package cpf

// CheckDigit computes one modulo-11 check digit over digits. Walking from the
// rightmost digit, each digit is weighted 2, 3, 4, ... and the products are
// summed; the result is 11 - sum%11, collapsed to 0 when above 9.
//
// digits must contain only ASCII decimal digits.
func CheckDigit(digits string) int {
	sum := 0
	weight := 2
	for i := len(digits) - 1; i >= 0; i-- {
		sum += int(digits[i]-'0') * weight
		weight++
	}
	n := 11 - sum%11
	if n > 9 {
		return 0
	}
	return n
}

// CheckDigits returns both check digits for a 9-digit base, in order. The
// second digit is computed over the base followed by the first.
//
// Example:
//
//	CheckDigits("453178287") // "91"
func CheckDigits(base string) string {
	a := byte('0' + CheckDigit(base))
	b := byte('0' + CheckDigit(base+string(a)))
	return string([]byte{a, b})
}
