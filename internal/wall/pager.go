package wall

import "github.com/parishnet/videowall/internal/core"

// DefaultPageSize is the wall grid: 5 columns by 4 rows.
const DefaultPageSize = 20

// Page is one window over the ordered visible-participant list.
type Page struct {
	Participants []core.Participant
	Index        int
	TotalPages   int
}

// Paginate slices the list into fixed-size pages and clamps the requested
// index into [0, totalPages-1]. TotalPages is at least 1 even for an
// empty list, so an empty wall still has a valid current page.
func Paginate(list []core.Participant, pageSize, index int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	total := (len(list) + pageSize - 1) / pageSize
	if total < 1 {
		total = 1
	}
	if index < 0 {
		index = 0
	}
	if index > total-1 {
		index = total - 1
	}
	start := index * pageSize
	end := start + pageSize
	if start > len(list) {
		start = len(list)
	}
	if end > len(list) {
		end = len(list)
	}
	return Page{Participants: list[start:end], Index: index, TotalPages: total}
}

// Pager tracks the current page index across recomputes. Navigation does
// not wrap, and any shrink of the visible list clamps the index on the
// next Slice rather than failing.
type Pager struct {
	size  int
	index int
}

func NewPager(size int) *Pager {
	if size < 1 {
		size = DefaultPageSize
	}
	return &Pager{size: size}
}

func (p *Pager) Slice(list []core.Participant) Page {
	page := Paginate(list, p.size, p.index)
	p.index = page.Index
	return page
}

func (p *Pager) Next(visibleCount int) {
	total := (visibleCount + p.size - 1) / p.size
	if p.index < total-1 {
		p.index++
	}
}

func (p *Pager) Prev() {
	if p.index > 0 {
		p.index--
	}
}

func (p *Pager) Index() int { return p.index }
