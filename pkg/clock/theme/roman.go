package theme

import "strconv"

var romanNumerals = [...]string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X", "XI", "XII"}

// RomanNumeral returns the Roman numeral for a dial position 1–12.
// Other values are rendered in Arabic digits.
func RomanNumeral(n int) string {
	if n < 1 || n > len(romanNumerals) {
		return strconv.Itoa(n)
	}
	return romanNumerals[n-1]
}

// Numeral returns the dial label for position n (1–12) in the theme's style.
func (t Theme) Numeral(n int) string {
	if t.RomanNumerals {
		return RomanNumeral(n)
	}
	return strconv.Itoa(n)
}
