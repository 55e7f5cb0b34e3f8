// Package pagination provides a length-aware paginator whose links and meta
// match what paginated resource responses carry.
package pagination

import (
	"net/url"
	"strconv"
	"strings"
)

// Labels of the previous and next entries in Links.
const (
	PreviousLabel = "&laquo; Previous"
	NextLabel     = "Next &raquo;"
)

// Defaults
const (
	DefaultPath       = "/"
	DefaultPageName   = "page"
	DefaultOnEachSide = 3
)

// Link is one entry of the page link window.
type Link struct {
	URL    *string `json:"url"`
	Label  string  `json:"label"`
	Active bool    `json:"active"`
}

// Paginator is one page of a larger result set whose total is known.
type Paginator struct {
	items       []any
	total       int
	perPage     int
	currentPage int
	path        string
	pageName    string
	onEachSide  int
}

// Option configures a Paginator.
type Option func(*Paginator)

// WithCurrentPage sets the current page. Values below 1 become 1.
func WithCurrentPage(page int) Option {
	return func(p *Paginator) { p.currentPage = page }
}

// WithPath sets the base path page URLs are built from.
func WithPath(path string) Option {
	return func(p *Paginator) { p.path = path }
}

// WithPageName sets the query parameter holding the page number.
func WithPageName(name string) Option {
	return func(p *Paginator) { p.pageName = name }
}

// WithOnEachSide sets how many pages are linked on each side of the current one.
func WithOnEachSide(n int) Option {
	return func(p *Paginator) { p.onEachSide = n }
}

// New creates a paginator over the items of the current page.
func New(items []any, total, perPage int, opts ...Option) *Paginator {
	p := &Paginator{
		items:       items,
		total:       total,
		perPage:     perPage,
		currentPage: 1,
		path:        DefaultPath,
		pageName:    DefaultPageName,
		onEachSide:  DefaultOnEachSide,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.perPage <= 0 {
		p.perPage = 15
	}
	if p.currentPage < 1 {
		p.currentPage = 1
	}
	if p.path != "/" {
		p.path = strings.TrimRight(p.path, "/")
	}
	return p
}

// Items returns the items of the current page.
func (p *Paginator) Items() []any { return p.items }

// Count returns the number of items on the current page.
func (p *Paginator) Count() int { return len(p.items) }

// Total returns the total number of items.
func (p *Paginator) Total() int { return p.total }

// PerPage returns the page size.
func (p *Paginator) PerPage() int { return p.perPage }

// CurrentPage returns the current page number.
func (p *Paginator) CurrentPage() int { return p.currentPage }

// Path returns the base path.
func (p *Paginator) Path() string { return p.path }

// LastPage returns the number of the last page, at least 1.
func (p *Paginator) LastPage() int {
	return max(1, (p.total+p.perPage-1)/p.perPage)
}

// FirstItem returns the 1-based position of the first item on the page, or
// nil when the page is empty.
func (p *Paginator) FirstItem() *int {
	if len(p.items) == 0 {
		return nil
	}
	n := (p.currentPage-1)*p.perPage + 1
	return &n
}

// LastItem returns the 1-based position of the last item on the page, or
// nil when the page is empty.
func (p *Paginator) LastItem() *int {
	first := p.FirstItem()
	if first == nil {
		return nil
	}
	n := *first + len(p.items) - 1
	return &n
}

// HasPages reports whether there is more than one page.
func (p *Paginator) HasPages() bool {
	return p.currentPage != 1 || p.HasMorePages()
}

// HasMorePages reports whether pages follow the current one.
func (p *Paginator) HasMorePages() bool {
	return p.currentPage < p.LastPage()
}

// URL returns the URL of a page: "/?page=2".
func (p *Paginator) URL(page int) string {
	if page <= 0 {
		page = 1
	}
	sep := "?"
	if strings.Contains(p.path, "?") {
		sep = "&"
	}
	q := url.Values{p.pageName: []string{strconv.Itoa(page)}}
	return p.path + sep + q.Encode()
}

// PreviousPageURL returns the URL of the previous page, or nil on the first.
func (p *Paginator) PreviousPageURL() *string {
	if p.currentPage <= 1 {
		return nil
	}
	u := p.URL(p.currentPage - 1)
	return &u
}

// NextPageURL returns the URL of the next page, or nil on the last.
func (p *Paginator) NextPageURL() *string {
	if !p.HasMorePages() {
		return nil
	}
	u := p.URL(p.currentPage + 1)
	return &u
}

// Links returns the link window: previous, the page numbers around the
// current page with "..." gaps, then next.
func (p *Paginator) Links() []Link {
	links := []Link{{URL: p.PreviousPageURL(), Label: PreviousLabel}}

	for _, element := range p.elements() {
		if element == nil {
			links = append(links, Link{Label: "..."})
			continue
		}
		for _, page := range element {
			u := p.URL(page)
			links = append(links, Link{URL: &u, Label: strconv.Itoa(page), Active: page == p.currentPage})
		}
	}

	return append(links, Link{URL: p.NextPageURL(), Label: NextLabel})
}

// elements returns page ranges separated by nil gaps.
func (p *Paginator) elements() [][]int {
	last := p.LastPage()
	side := p.onEachSide

	if last < side*2+8 {
		return [][]int{pages(1, last)}
	}

	window := side + 4
	start := pages(1, 2)
	finish := pages(last-1, last)

	switch {
	case p.currentPage <= window:
		return [][]int{pages(1, window+side), nil, finish}
	case p.currentPage > last-window:
		return [][]int{start, nil, pages(last-(window+(side-1)), last)}
	default:
		return [][]int{start, nil, pages(p.currentPage-side, p.currentPage+side), nil, finish}
	}
}

func pages(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

// Meta returns the "meta" block of a paginated response.
func (p *Paginator) Meta() map[string]any {
	links := p.Links()
	linkMaps := make([]any, len(links))
	for i, l := range links {
		var u any
		if l.URL != nil {
			u = *l.URL
		}
		linkMaps[i] = map[string]any{"url": u, "label": l.Label, "active": l.Active}
	}

	return map[string]any{
		"current_page": p.currentPage,
		"from":         intOrNil(p.FirstItem()),
		"last_page":    p.LastPage(),
		"links":        linkMaps,
		"path":         p.path,
		"per_page":     p.perPage,
		"to":           intOrNil(p.LastItem()),
		"total":        p.total,
	}
}

// LinksMeta returns the top-level "links" block of a paginated response.
func (p *Paginator) LinksMeta() map[string]any {
	return map[string]any{
		"first": p.URL(1),
		"last":  p.URL(p.LastPage()),
		"prev":  stringOrNil(p.PreviousPageURL()),
		"next":  stringOrNil(p.NextPageURL()),
	}
}

func intOrNil(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func stringOrNil(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
