// Package domain models scheduled utility-service outages and the stateless
// query pipeline that turns a raw outage feed into one page of a listing.
//
// # Data Source
//
// The outage feed is a single JSON array returned by one HTTP GET. Each element
// is one company's scheduled maintenance in one province on one day:
//
//	{
//	  "company":  "EDESUR",
//	  "province": "Santo Domingo",
//	  "day":      "2024-03-01",
//	  "maintenance": [
//	    {"time": "8:00 AM - 5:00 PM", "sectors": ["Los Mina ", "Villa Faro"]}
//	  ]
//	}
//
// Sector names are scraped text and may carry leading or trailing whitespace.
// They are trimmed wherever they are compared or indexed. The "time" field is
// free-form display text and is never parsed.
//
// # Query Parameters
//
// All listing state lives in the URL query string so a view is a shareable link:
//
//	page      positive integer, defaults to 1 when absent or malformed
//	province  province name with every space written as a hyphen
//	sector    exact sector name (compared against trimmed feed values)
//	date      exact match against the feed's "day" string
//	company   exact, case-sensitive company identifier
//
// Province names travel through [EncodeProvince] and [DecodeProvince] so that
// multi-word names such as "Valle del Cauca" round-trip as "Valle-del-Cauca".
//
// # Resolution Order
//
// [Resolve] applies the filters in a fixed order: company, date, province,
// sector. Filters are conjunctive. The sector filter works inside an outage: it
// keeps only the maintenance events listing that sector and drops the outage
// when none remain. Filtering always builds new values and never touches the
// input slice, so the same raw collection can be resolved repeatedly.
//
// Pagination is plain offset arithmetic over the filtered slice with a page
// size of [PageSize]. A page beyond the last one yields an empty window, not an
// error. Every function in this package is total: malformed input degrades to a
// default, never to an error.
package domain
