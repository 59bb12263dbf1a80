package query

import (
	"fmt"
	"strconv"

	"github.com/verdora/verdora-backend/internal/apierr"
)

const (
	DefaultPageSize = 25
)

// Page sizes the UI may request.
var allowedPageSizes = map[int]bool{25: true, 50: true, 100: true}

// Page is a validated 1-indexed pagination request.
type Page struct {
	Number int
	Size   int
}

// NewPage validates a pagination request. Page numbers start at 1 and sizes
// come from a small allowed set; anything else fails with invalid_pagination.
func NewPage(number, size int) (Page, error) {
	if number < 1 {
		return Page{}, apierr.InvalidPagination(fmt.Errorf("page must be >= 1, got %d", number))
	}
	if !allowedPageSizes[size] {
		return Page{}, apierr.InvalidPagination(fmt.Errorf("page size must be one of 25, 50 or 100, got %d", size))
	}
	return Page{Number: number, Size: size}, nil
}

// ParsePage validates string inputs, defaulting absent values to page 1 and
// the default size.
func ParsePage(numberStr, sizeStr string) (Page, error) {
	number := 1
	size := DefaultPageSize
	if numberStr != "" {
		n, err := strconv.Atoi(numberStr)
		if err != nil {
			return Page{}, apierr.InvalidPagination(fmt.Errorf("page must be an integer, got %q", numberStr))
		}
		number = n
	}
	if sizeStr != "" {
		s, err := strconv.Atoi(sizeStr)
		if err != nil {
			return Page{}, apierr.InvalidPagination(fmt.Errorf("per_page must be an integer, got %q", sizeStr))
		}
		size = s
	}
	return NewPage(number, size)
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

func (p Page) CacheKey() string {
	return fmt.Sprintf("page=%d;size=%d", p.Number, p.Size)
}

// PageCount returns ceil(total/size).
func PageCount(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
