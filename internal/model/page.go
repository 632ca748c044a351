package model

const DefaultPageSize = 10

// Page describes one page of a listing.
type Page struct {
	ItemCount   int64 `json:"itemCount"`
	PageIndex   int64 `json:"pageIndex"`
	PageSize    int64 `json:"pageSize"`
	PageCount   int64 `json:"pageCount"`
	Offset      int64 `json:"offset"`
	Limit       int64 `json:"limit"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
}

// NewPage computes the page at index (1-based) out of itemCount items.
// An empty listing, or an index past the last page, yields page 1 with a
// zero limit.
func NewPage(itemCount, index, size int64) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	if index < 1 {
		index = 1
	}

	p := Page{ItemCount: itemCount, PageSize: size}
	p.PageCount = itemCount / size
	if itemCount%size > 0 {
		p.PageCount++
	}

	if itemCount == 0 || index > p.PageCount {
		p.PageIndex = 1
		p.Offset = 0
		p.Limit = 0
	} else {
		p.PageIndex = index
		p.Offset = size * (index - 1)
		p.Limit = size
	}

	p.HasNext = p.PageIndex < p.PageCount
	p.HasPrevious = p.PageIndex > 1
	return p
}

// Empty reports whether the page selects no rows.
func (p Page) Empty() bool {
	return p.Limit == 0
}
