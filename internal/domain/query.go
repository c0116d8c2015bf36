package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// Query string keys understood by ParseQuery.
const (
	ParamPage     = "page"
	ParamProvince = "province"
	ParamSector   = "sector"
	ParamDate     = "date"
	ParamCompany  = "company"
)

// QueryParameters is the decoded listing state for one resolution. An empty
// string filter means "no constraint". Province holds the URL form; Resolve
// decodes it.
type QueryParameters struct {
	Page     int
	Province string
	Sector   string
	Date     string
	Company  string

	// values keeps the full original query so page links preserve parameters
	// this package does not know about.
	values url.Values
}

// ParseQuery derives QueryParameters from a URL query. It never fails: a
// missing, malformed, or non-positive page becomes 1.
func ParseQuery(v url.Values) QueryParameters {
	q := QueryParameters{
		Page:     ParsePage(v.Get(ParamPage)),
		Province: v.Get(ParamProvince),
		Sector:   v.Get(ParamSector),
		Date:     v.Get(ParamDate),
		Company:  v.Get(ParamCompany),
		values:   cloneValues(v),
	}
	return q
}

// ParsePage normalizes a raw page parameter.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// ProvinceName returns the decoded province display name, or "" when unset.
func (q QueryParameters) ProvinceName() string {
	return DecodeProvince(q.Province)
}

func (q QueryParameters) filters() bool {
	return q.Company != "" || q.Date != "" || q.Province != "" || q.Sector != ""
}

// Values returns the query as URL values, including unknown parameters from
// the original request.
func (q QueryParameters) Values() url.Values {
	v := cloneValues(q.values)
	setOrDelete(v, ParamProvince, q.Province)
	setOrDelete(v, ParamSector, q.Sector)
	setOrDelete(v, ParamDate, q.Date)
	setOrDelete(v, ParamCompany, q.Company)
	if q.Page > 0 {
		v.Set(ParamPage, strconv.Itoa(q.Page))
	}
	return v
}

// PageLink returns a relative link ("?...") to the given page with every other
// parameter preserved.
func (q QueryParameters) PageLink(page int) string {
	v := q.Values()
	v.Set(ParamPage, strconv.Itoa(page))
	return "?" + v.Encode()
}

func setOrDelete(v url.Values, key, value string) {
	if value == "" {
		v.Del(key)
		return
	}
	v.Set(key, value)
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
