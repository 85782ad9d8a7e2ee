// Package utils provides shared helpers for text formatting and logging.
package utils

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Truncate returns s cut to maxLen runes, with "..." appended if truncated.
// If maxLen is 0 or negative, returns s unchanged.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen]) + "..."
}

// FormatVector renders v as space-separated components with the given
// precision, eliding the middle when v has more than maxDims components.
func FormatVector(v []float32, precision, maxDims int) string {
	format := func(x float32) string {
		return strconv.FormatFloat(float64(x), 'f', precision, 32)
	}
	var b strings.Builder
	b.WriteByte('[')
	if maxDims <= 0 || len(v) <= maxDims {
		for i, x := range v {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(format(x))
		}
	} else {
		head := (maxDims + 1) / 2
		tail := maxDims - head
		for i := 0; i < head; i++ {
			b.WriteString(format(v[i]))
			b.WriteByte(' ')
		}
		b.WriteString("...")
		for _, x := range v[len(v)-tail:] {
			b.WriteByte(' ')
			b.WriteString(format(x))
		}
	}
	b.WriteByte(']')
	return b.String()
}
