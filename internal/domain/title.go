package domain

const listingTitle = "Mantenimientos Programados"

// Title is the listing heading. A sector filter takes precedence over a
// province filter, matching the order in which Resolve applies them.
func (r Result) Title(q QueryParameters) string {
	switch {
	case q.Sector != "":
		return listingTitle + " en " + q.Sector
	case r.Province != "":
		return listingTitle + " en " + r.Province
	default:
		return listingTitle
	}
}
