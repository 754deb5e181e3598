package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/phamtheduy/portfolio/internal/models"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// parsePage reads pagination query parameters with clamped defaults
func parsePage(r *http.Request) models.Page {
	page := models.Page{Number: 1, Limit: defaultPageLimit}

	if n, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && n > 0 {
		page.Number = n
	}
	if n, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && n > 0 {
		page.Limit = min(n, maxPageLimit)
	}

	return page
}

// parseID reads the {id} path value
func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", r.PathValue("id"))
	}
	return id, nil
}

// parseDate accepts RFC 3339 timestamps and bare dates
func parseDate(value string) *time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}

func parseBool(value string) bool {
	b, _ := strconv.ParseBool(value)
	return b
}
