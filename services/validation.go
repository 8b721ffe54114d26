package services

import (
	"math"
	"regexp"
	"strings"

	"github.com/Madhav-Gupta-28/storefront-backend-go/apperr"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var phonePattern = regexp.MustCompile(`^\d{10}$`)

func validPhone(s string) bool {
	return phonePattern.MatchString(s)
}

func parseID(raw, what string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return primitive.NilObjectID, apperr.Validation("Invalid %s ID.", what)
	}
	return id, nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// normalizePage applies the listing defaults: page starts at 1 and a
// missing limit uses the resource's default page size.
func normalizePage(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

// pageOffset returns how many rows precede page. ok is false when the offset
// overflows an int; such a page is always past the end of the data.
func pageOffset(page, limit int) (offset int, ok bool) {
	if page-1 > math.MaxInt/limit {
		return 0, false
	}
	return (page - 1) * limit, true
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return int(pages)
}
