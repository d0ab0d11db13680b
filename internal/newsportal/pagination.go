package newsportal

import (
	"github.com/daniilsolovey/news-cms/internal/db"
)

// Normalize clamps page to >= 1 and limit to 1..MaxLimit, using DefaultLimit
// for a missing limit.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}

	switch {
	case p.Limit < 1:
		p.Limit = DefaultLimit
	case p.Limit > MaxLimit:
		p.Limit = MaxLimit
	}

	return p
}

func (p PageRequest) Pager() db.Pager {
	return db.Pager{
		Limit:  p.Limit,
		Offset: (p.Page - 1) * p.Limit,
	}
}

func NewPagination(p PageRequest, total int) Pagination {
	totalPages := 0
	if total > 0 && p.Limit > 0 {
		totalPages = (total + p.Limit - 1) / p.Limit
	}

	return Pagination{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
	}
}
