// Package numwords renders amounts as Indian-numbering-system words for
// printed invoices ("Seventy Two Thousand Four Hundred Forty Five Only").
package numwords

import (
	"math"
	"strings"
)

var units = [...]string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = [...]string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy",
	"Eighty", "Ninety",
}

var scales = [...]string{"", "Thousand", "Lakh", "Crore"}

// Convert renders the integer part of amount as words under the Indian
// digit-grouping convention: the last three digits form the first group,
// every following group is two digits wide (Thousand, Lakh, Crore). The
// fractional part is discarded; paise are never spelled out. Zero and
// negative amounts yield the empty string.
func Convert(amount float64) string {
	n := int64(math.Floor(amount))
	if n <= 0 {
		return ""
	}
	return convertInt(n) + " Only"
}

func convertInt(n int64) string {
	var parts []string
	for i := 0; n > 0 && i < len(scales); i++ {
		var group int64
		switch {
		case i == 0:
			group = n % 1000
			n /= 1000
		case i == len(scales)-1:
			// The crore group keeps whatever remains and recurses,
			// so 12345 crore reads "Twelve Thousand Three Hundred
			// Forty Five Crore".
			group = n
			n = 0
		default:
			group = n % 100
			n /= 100
		}
		if group == 0 {
			continue
		}
		var words string
		if group > 999 {
			words = convertInt(group)
		} else {
			words = groupWords(group)
		}
		if scales[i] != "" {
			words += " " + scales[i]
		}
		parts = append(parts, words)
	}

	// Groups were collected least-significant first.
	for l, r := 0, len(parts)-1; l < r; l, r = l+1, r-1 {
		parts[l], parts[r] = parts[r], parts[l]
	}
	return strings.Join(parts, " ")
}

// groupWords renders a group of up to three digits.
func groupWords(n int64) string {
	var sb strings.Builder
	if h := n / 100; h > 0 {
		sb.WriteString(units[h])
		sb.WriteString(" Hundred")
	}
	rest := n % 100
	if rest > 0 {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		if rest < 20 {
			sb.WriteString(units[rest])
		} else {
			sb.WriteString(tens[rest/10])
			if rest%10 > 0 {
				sb.WriteByte(' ')
				sb.WriteString(units[rest%10])
			}
		}
	}
	return sb.String()
}
