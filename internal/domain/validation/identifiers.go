package validation

import "regexp"

// cpfLength is the number of digits in a CPF including both check digits.
const cpfLength = 11

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail performs a syntactic sanity check on an e-mail address:
// something, an "@", something, a dot, something. It does not check
// deliverability.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidCPF validates a Brazilian taxpayer id (CPF). Punctuation is
// ignored, so "529.982.247-25" and "52998224725" are equivalent.
func IsValidCPF(cpf string) bool {
	digits := make([]int, 0, cpfLength)
	for i := 0; i < len(cpf); i++ {
		if ch := cpf[i]; ch >= '0' && ch <= '9' {
			digits = append(digits, int(ch-'0'))
		}
	}

	if len(digits) != cpfLength {
		return false
	}

	// Repeated digits pass the checksum but are never issued.
	allSame := true
	for _, d := range digits[1:] {
		if d != digits[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return false
	}

	return digits[9] == cpfCheckDigit(digits[:9]) &&
		digits[10] == cpfCheckDigit(digits[:10])
}

// cpfCheckDigit computes the mod-11 check digit over the given prefix with
// weights counting down to 2.
func cpfCheckDigit(prefix []int) int {
	weight := len(prefix) + 1
	sum := 0
	for _, d := range prefix {
		sum += d * weight
		weight--
	}

	remainder := sum % 11
	if remainder < 2 {
		return 0
	}
	return 11 - remainder
}
