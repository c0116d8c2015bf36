package domain

import "strings"

// ProvinceSectorIndex maps each province to the distinct trimmed sector names
// mentioned by any of its maintenance events. Provinces and sectors keep the
// order in which they were first seen in the feed.
//
// An index is built once per load by BuildIndex and never modified afterwards.
type ProvinceSectorIndex struct {
	provinces []string
	sectors   map[string][]string
	seen      map[string]map[string]struct{}
}

// BuildIndex scans the full raw collection once. Sector names are trimmed; a
// whitespace-only name is kept as the empty string.
func BuildIndex(outages []Outage) ProvinceSectorIndex {
	idx := ProvinceSectorIndex{
		sectors: make(map[string][]string),
		seen:    make(map[string]map[string]struct{}),
	}

	for _, o := range outages {
		set, ok := idx.seen[o.Province]
		if !ok {
			set = make(map[string]struct{})
			idx.seen[o.Province] = set
			idx.provinces = append(idx.provinces, o.Province)
		}
		for _, event := range o.Maintenance {
			for _, s := range event.Sectors {
				name := strings.TrimSpace(s)
				if _, dup := set[name]; dup {
					continue
				}
				set[name] = struct{}{}
				idx.sectors[o.Province] = append(idx.sectors[o.Province], name)
			}
		}
	}
	return idx
}

// Len returns the number of distinct provinces.
func (idx ProvinceSectorIndex) Len() int {
	return len(idx.provinces)
}

// Provinces returns the province names in first-seen order.
func (idx ProvinceSectorIndex) Provinces() []string {
	out := make([]string, len(idx.provinces))
	copy(out, idx.provinces)
	return out
}

// HasProvince reports whether the province appeared in the feed.
func (idx ProvinceSectorIndex) HasProvince(province string) bool {
	_, ok := idx.seen[province]
	return ok
}

// Contains reports whether sector (already trimmed) was seen under province.
func (idx ProvinceSectorIndex) Contains(province, sector string) bool {
	_, ok := idx.seen[province][sector]
	return ok
}

// Sectors lists the province's sectors in first-seen order for a selector.
// The empty name produced by whitespace-only feed values is left out.
func (idx ProvinceSectorIndex) Sectors(province string) []string {
	all := idx.sectors[province]
	out := make([]string, 0, len(all))
	for _, s := range all {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
