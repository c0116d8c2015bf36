package domain

// PageDescriptor is one numbered entry in the pagination control.
type PageDescriptor struct {
	Number int    `json:"number"`
	Active bool   `json:"active"`
	Link   string `json:"link"`
}

// PageControl is the previous or next affordance. Link is set even when the
// control is disabled so a presenter can render it greyed out.
type PageControl struct {
	Enabled bool   `json:"enabled"`
	Link    string `json:"link"`
}

// Pagination is the full pagination control for one resolved listing.
type Pagination struct {
	Pages    []PageDescriptor `json:"pages"`
	Previous PageControl      `json:"previous"`
	Next     PageControl      `json:"next"`
}

// HasPrevious reports whether the previous control is enabled.
func (p Pagination) HasPrevious() bool { return p.Previous.Enabled }

// HasNext reports whether the next control is enabled.
func (p Pagination) HasNext() bool { return p.Next.Enabled }

// Paginate builds one descriptor per page in [1, totalPages], marking q.Page
// active when it is in range. Links keep every parameter of q and replace only
// the page. totalPages of 0 yields no descriptors and both controls disabled.
func Paginate(q QueryParameters, totalPages int) Pagination {
	page := q.Page
	if page < 1 {
		page = 1
	}
	if totalPages < 0 {
		totalPages = 0
	}

	p := Pagination{
		Pages: make([]PageDescriptor, 0, totalPages),
		Previous: PageControl{
			Enabled: page > 1,
			Link:    q.PageLink(max(page-1, 1)),
		},
		Next: PageControl{
			Enabled: totalPages > 0 && page < totalPages,
			Link:    q.PageLink(min(page, totalPages) + 1),
		},
	}

	for i := 1; i <= totalPages; i++ {
		p.Pages = append(p.Pages, PageDescriptor{
			Number: i,
			Active: i == page,
			Link:   q.PageLink(i),
		})
	}
	return p
}
