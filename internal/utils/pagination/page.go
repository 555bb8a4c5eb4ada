package pagination

import (
	"fmt"
	"strconv"
)

const (
	DefaultLimit = 20
	MaxLimit     = 200
)

// Page is a validated limit/offset pair. Repositories bind both as query
// parameters; they are never spliced into query text.
type Page struct {
	Limit  int
	Offset int
}

// DefaultPage is the first page at the default size.
func DefaultPage() Page {
	return Page{Limit: DefaultLimit}
}

// ParsePage validates raw limit/offset query values. Empty values fall back
// to the defaults; anything else must be a non-negative integer.
func ParsePage(limitStr, offsetStr string) (Page, error) {
	page := DefaultPage()

	if limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return Page{}, fmt.Errorf("invalid limit %q: %w", limitStr, err)
		}
		if limit < 0 {
			return Page{}, fmt.Errorf("limit must be non-negative, got %d", limit)
		}
		if limit > 0 {
			page.Limit = limit
		}
	}
	if page.Limit > MaxLimit {
		page.Limit = MaxLimit
	}

	if offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return Page{}, fmt.Errorf("invalid offset %q: %w", offsetStr, err)
		}
		if offset < 0 {
			return Page{}, fmt.Errorf("offset must be non-negative, got %d", offset)
		}
		page.Offset = offset
	}

	return page, nil
}
