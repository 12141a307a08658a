package models

import "math"

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest selects one page of a list; both fields are 1-based and positive.
type PageRequest struct {
	Page     int
	PageSize int
}

// NewPageRequest clamps page and pageSize into their valid ranges.
func NewPageRequest(page, pageSize int) PageRequest {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	// Keep (page-1)*pageSize within int; such a page is always past the end
	if maxPage := math.MaxInt / pageSize; page > maxPage {
		page = maxPage
	}
	return PageRequest{Page: page, PageSize: pageSize}
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type Page[T any] struct {
	Items    []T
	Total    int64
	Page     int
	PageSize int
}

// TotalPages is ceil(Total / PageSize).
func (p *Page[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return int((p.Total + int64(p.PageSize) - 1) / int64(p.PageSize))
}

// Slice pages an already materialized list in memory.
func Slice[T any](all []T, req PageRequest) *Page[T] {
	page := &Page[T]{Total: int64(len(all)), Page: req.Page, PageSize: req.PageSize}
	start := req.Offset()
	if start < 0 || start >= len(all) {
		page.Items = []T{}
		return page
	}
	end := min(start+req.PageSize, len(all))
	page.Items = all[start:end]
	return page
}
