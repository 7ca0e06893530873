package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatAmount renders an integer amount with thousand separators, e.g. 12,500.
func FormatAmount(amount int64) string {
	sign := ""
	mag := uint64(amount)
	if amount < 0 {
		sign = "-"
		mag = -mag
	}
	return fmt.Sprintf("%s%s", sign, formatThousand(mag))
}

func formatThousand(n uint64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatUint(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}
