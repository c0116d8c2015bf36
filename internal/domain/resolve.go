package domain

// PageSize is the number of outages shown per listing page.
const PageSize = 10

// Result is the outcome of resolving one query against the raw collection.
type Result struct {
	// Filtered holds every outage matching the query, in feed order.
	Filtered []Outage
	// Window is the slice of Filtered shown on Page. It is empty when Page is
	// past the last page.
	Window     []Outage
	Page       int
	PageSize   int
	TotalPages int
	// Province is the decoded province filter, and Sectors that province's
	// sector list from the index. Both are empty without a province filter.
	Province string
	Sectors  []string
}

// Total is the number of outages matching the query.
func (r Result) Total() int {
	return len(r.Filtered)
}

// Empty reports whether the listing has nothing to show on the current page.
func (r Result) Empty() bool {
	return len(r.Window) == 0
}

// Resolve filters outages by q and computes the page window using PageSize.
func Resolve(q QueryParameters, outages []Outage, index ProvinceSectorIndex) Result {
	return ResolveWithPageSize(q, outages, index, PageSize)
}

// ResolveWithPageSize is Resolve with an explicit page size. A non-positive
// size falls back to PageSize.
func ResolveWithPageSize(q QueryParameters, outages []Outage, index ProvinceSectorIndex, size int) Result {
	if size < 1 {
		size = PageSize
	}
	page := q.Page
	if page < 1 {
		page = 1
	}

	res := Result{Page: page, PageSize: size}
	filtered := outages

	if q.Company != "" {
		filtered = keep(filtered, func(o Outage) bool { return o.Company == q.Company })
	}

	if q.Date != "" {
		filtered = keep(filtered, func(o Outage) bool { return o.Day == q.Date })
	}

	if q.Province != "" {
		province := DecodeProvince(q.Province)
		res.Province = province
		res.Sectors = index.Sectors(province)
		filtered = keep(filtered, func(o Outage) bool { return o.Province == province })
	}

	if q.Sector != "" {
		filtered = filterSector(filtered, q.Sector)
	}

	if !q.filters() {
		// Copy so the result never aliases the raw feed.
		filtered = append(make([]Outage, 0, len(outages)), outages...)
	}

	res.Filtered = filtered
	res.TotalPages = TotalPages(len(filtered), size)
	res.Window = PageWindow(filtered, page, size)
	return res
}

// TotalPages is ceil(n / size).
func TotalPages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// PageWindow returns items[(page-1)*size : page*size], clamped to the slice
// bounds. Out-of-range pages yield an empty slice.
func PageWindow(items []Outage, page, size int) []Outage {
	if page < 1 || size < 1 {
		return []Outage{}
	}
	// Compare pages before multiplying so huge page numbers cannot overflow.
	if page > TotalPages(len(items), size) {
		return []Outage{}
	}
	start := (page - 1) * size
	end := min(start+size, len(items))
	return items[start:end:end]
}

func keep(outages []Outage, match func(Outage) bool) []Outage {
	out := make([]Outage, 0, len(outages))
	for _, o := range outages {
		if match(o) {
			out = append(out, o)
		}
	}
	return out
}

// filterSector narrows each outage to the events listing sector, and each of
// those events to the matching sector entries, then drops outages left without
// events. Input outages are never modified.
func filterSector(outages []Outage, sector string) []Outage {
	out := make([]Outage, 0, len(outages))
	for _, o := range outages {
		var events []MaintenanceEvent
		for _, e := range o.Maintenance {
			if e.HasSector(sector) {
				events = append(events, e.onlySector(sector))
			}
		}
		if len(events) == 0 {
			continue
		}
		out = append(out, o.withMaintenance(events))
	}
	return out
}
