// Command validate checks an outage feed file for data-quality problems and
// verifies that the listing pipeline behaves on it: index completeness,
// conjunctive filtering, and pagination coverage for every province and
// sector filter the feed makes possible.
//
// Usage:
//
//	go run ./cmd/validate -feed data/mock/outages.json
//	go run ./cmd/validate -feed data/mock/outages.json -strict
package main

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/couchcryptid/outage-listing-service/internal/adapter/feed"
	"github.com/couchcryptid/outage-listing-service/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name     string
	errors   []string
	warnings []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) warnf(format string, args ...any) {
	p.warnings = append(p.warnings, fmt.Sprintf(format, args...))
}

func (p *phase) passed(strict bool) bool {
	return len(p.errors) == 0 && (!strict || len(p.warnings) == 0)
}

func main() {
	feedPath := flag.String("feed", "", "path to an outage feed JSON file")
	strict := flag.Bool("strict", false, "treat data-quality warnings as failures")
	flag.Parse()

	if *feedPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*feedPath, *strict); code != 0 {
		os.Exit(code)
	}
}

func run(feedPath string, strict bool) int {
	fmt.Println("=== Outage Feed Validation ===")
	fmt.Println()

	body, err := os.ReadFile(feedPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read feed: %v\n", err)
		return 1
	}
	outages, err := feed.Decode(body)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	phases := validate(outages)

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed(strict) {
			status = fmt.Sprintf("\033[31mFAIL (%d errors, %d warnings)\033[0m", len(p.errors), len(p.warnings))
			allPassed = false
		} else if len(p.warnings) > 0 {
			status = fmt.Sprintf("\033[33mPASS (%d warnings)\033[0m", len(p.warnings))
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	idx := domain.BuildIndex(outages)
	fmt.Println()
	fmt.Printf("Outages: %d, provinces: %d\n", len(outages), idx.Len())

	for _, p := range phases {
		if len(p.errors) == 0 && len(p.warnings) == 0 {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [E%d] %s\n", i+1, e)
		}
		for i, w := range p.warnings {
			fmt.Printf("  [W%d] %s\n", i+1, w)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func validate(outages []domain.Outage) []*phase {
	idx := domain.BuildIndex(outages)
	return []*phase{
		validateRecords(outages),
		validateIndex(outages, idx),
		validateQueries(outages, idx),
	}
}

// validateRecords reports missing fields as errors and scraped-text artifacts as warnings.
func validateRecords(outages []domain.Outage) *phase {
	p := &phase{name: "Record fields"}
	for i, o := range outages {
		if o.Company == "" {
			p.errorf("outage %d: missing company", i)
		}
		if o.Province == "" {
			p.errorf("outage %d: missing province", i)
		}
		if o.Day == "" {
			p.errorf("outage %d: missing day", i)
		}
		if strings.Contains(o.Province, "-") {
			p.warnf("outage %d: province %q contains a hyphen and will not round-trip through the URL", i, o.Province)
		}
		if len(o.Maintenance) == 0 {
			p.warnf("outage %d (%s, %s): no maintenance events", i, o.Company, o.Province)
		}
		for j, e := range o.Maintenance {
			for _, s := range e.Sectors {
				if strings.TrimSpace(s) == "" {
					p.warnf("outage %d event %d: whitespace-only sector %q", i, j, s)
				}
			}
		}
	}
	return p
}

func validateIndex(outages []domain.Outage, idx domain.ProvinceSectorIndex) *phase {
	p := &phase{name: "Province-sector index completeness"}
	for i, o := range outages {
		if !idx.HasProvince(o.Province) {
			p.errorf("outage %d: province %q missing from index", i, o.Province)
		}
		for _, e := range o.Maintenance {
			for _, s := range e.Sectors {
				if !idx.Contains(o.Province, strings.TrimSpace(s)) {
					p.errorf("outage %d: sector %q missing from %q", i, s, o.Province)
				}
			}
		}
	}
	return p
}

// validateQueries resolves every province and province+sector filter the feed
// offers and checks filtering and page coverage on each.
func validateQueries(outages []domain.Outage, idx domain.ProvinceSectorIndex) *phase {
	p := &phase{name: "Query resolution and pagination"}

	queries := []domain.QueryParameters{{}}
	for _, province := range idx.Provinces() {
		slug := domain.EncodeProvince(province)
		queries = append(queries, domain.QueryParameters{Province: slug})
		for _, sector := range idx.Sectors(province) {
			queries = append(queries, domain.QueryParameters{Province: slug, Sector: sector})
		}
	}

	for _, q := range queries {
		checkQuery(p, q, outages, idx)
	}
	return p
}

func checkQuery(p *phase, q domain.QueryParameters, outages []domain.Outage, idx domain.ProvinceSectorIndex) {
	label := fmt.Sprintf("province=%q sector=%q", q.Province, q.Sector)
	first := domain.Resolve(q, outages, idx)

	if want := (first.Total() + domain.PageSize - 1) / domain.PageSize; first.TotalPages != want {
		p.errorf("%s: total pages %d, want %d", label, first.TotalPages, want)
	}

	for _, o := range first.Filtered {
		if q.Province != "" && o.Province != domain.DecodeProvince(q.Province) {
			p.errorf("%s: outage in province %q leaked through", label, o.Province)
		}
		if len(o.Maintenance) == 0 && q.Sector != "" {
			p.errorf("%s: outage %s/%s survived with no events", label, o.Company, o.Day)
		}
		if q.Sector != "" && !slices.ContainsFunc(o.Maintenance, func(e domain.MaintenanceEvent) bool { return e.HasSector(q.Sector) }) {
			p.errorf("%s: outage %s/%s has no event in the sector", label, o.Company, o.Day)
		}
	}

	var rebuilt []domain.Outage
	for page := 1; page <= first.TotalPages; page++ {
		q.Page = page
		rebuilt = append(rebuilt, domain.Resolve(q, outages, idx).Window...)
	}
	if len(rebuilt) != first.Total() {
		p.errorf("%s: pages cover %d outages, want %d", label, len(rebuilt), first.Total())
		return
	}
	for i := range rebuilt {
		if rebuilt[i].Company != first.Filtered[i].Company || rebuilt[i].Day != first.Filtered[i].Day ||
			rebuilt[i].Province != first.Filtered[i].Province {
			p.errorf("%s: page order differs from filtered order at position %d", label, i)
			return
		}
	}
}
