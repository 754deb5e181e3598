package models

// Page is a request for one page of a listing
type Page struct {
	Number int
	Limit  int
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// Pagination describes the page a listing returned
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func (p Pagination) PrevPage() int {
	return p.Page - 1
}

func (p Pagination) NextPage() int {
	return p.Page + 1
}

// NewPagination computes the page count for a listing.
// A limit below one is treated as one so the math stays defined.
func NewPagination(page Page, total int) Pagination {
	limit := page.Limit
	if limit <= 0 {
		limit = 1
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	return Pagination{
		Page:       page.Number,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
