package usecase

import "strings"

// ValidateLineNumber checks that a scanned barcode value is usable as an
// order line key: non-empty after trimming, printable, bounded length.
func ValidateLineNumber(number string) bool {
	number = strings.TrimSpace(number)
	if number == "" || len(number) > 64 {
		return false
	}
	for _, r := range number {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	return true
}
