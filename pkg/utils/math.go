package utils

// Clamp limits v to the inclusive range [lo, hi]
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FormatCoins renders an amount with thousands separators, e.g. 1421645 -> "1,421,645"
func FormatCoins(amount int) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := []byte{}
	for i := 0; amount > 0 || i == 0; i++ {
		if i > 0 && i%3 == 0 {
			digits = append(digits, ',')
		}
		digits = append(digits, byte('0'+amount%10))
		amount /= 10
	}

	if negative {
		digits = append(digits, '-')
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}
