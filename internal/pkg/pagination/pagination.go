// Package pagination computes the page summary returned by list endpoints.
package pagination

import "fmt"

// TotalPages is the number of pages of size limit needed for total rows.
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// Showing renders the 1-based row range of page, e.g. "21-40 of 45". A page past the last
// row renders as "0 of N".
func Showing(page, limit int, total int64) string {
	first := int64(page-1)*int64(limit) + 1
	if total <= 0 || page < 1 || limit < 1 || first > total {
		return fmt.Sprintf("0 of %d", max(total, 0))
	}
	last := min(int64(page)*int64(limit), total)
	return fmt.Sprintf("%d-%d of %d", first, last, total)
}
