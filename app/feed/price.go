package feed

import (
	"math"
	"strconv"
	"strings"
)

const rubleSuffix = " ₽"

// parsePrice returns nil when the text is missing, unparseable or not finite.
func parsePrice(raw *string) *float64 {
	if raw == nil {
		return nil
	}
	text := strings.TrimSpace(*raw)
	if text == "" {
		return nil
	}
	price, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return nil
	}
	return &price
}

// FormatPrice truncates price toward zero and groups thousands with a space:
// 123456.7 -> "123 456 ₽".
func FormatPrice(price float64) string {
	whole := math.Trunc(price)
	if whole == 0 {
		whole = 0 // drops the sign of -0
	}
	digits := strconv.FormatFloat(whole, 'f', 0, 64)

	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	b.WriteString(rubleSuffix)
	return b.String()
}
