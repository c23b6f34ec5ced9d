package paging

import "math"

const (
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 100
)

type Params struct {
	Page int
	Size int
}

// New clamps page/size into the accepted range, applying defaults for zero values.
func New(page, size int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	return Params{Page: page, Size: size}
}

func (p Params) Offset() int { return (p.Page - 1) * p.Size }

type Meta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func NewMeta(p Params, total int64) Meta {
	pages := 0
	if p.Size > 0 {
		pages = int(math.Ceil(float64(total) / float64(p.Size)))
	}
	return Meta{Page: p.Page, Size: p.Size, Total: total, TotalPages: pages}
}
