// Command genmock generates a deterministic mock outage feed for local
// development and tests. The output is a JSON array in the same shape the
// scraper endpoint returns, including the scraped-text artifacts the listing
// has to cope with (padded sector names, whitespace-only sectors).
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/outages.json -count 120
//	go run ./cmd/genmock -count 120 -serve :8091   # then FEED_URL=http://localhost:8091/outages/
//	go run ./cmd/genmock -out data/mock/outages.json -start now
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/couchcryptid/outage-listing-service/internal/domain"
	"github.com/jonboulle/clockwork"
)

// baseDate anchors generated days by default so fixtures are reproducible.
var baseDate = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

var companies = []string{"EDESUR", "EDENORTE", "EDEESTE"}

// provinceSectors lists plausible sectors per province.
var provinceSectors = map[string][]string{
	"Distrito Nacional":    {"Gazcue", "Naco", "Piantini", "Los Prados", "Ciudad Nueva", "Villa Juana"},
	"Santo Domingo":        {"Los Mina", "Villa Faro", "Alma Rosa", "Los Alcarrizos", "Sabana Perdida"},
	"Santiago":             {"Cienfuegos", "Gurabo", "Los Jardines", "Pueblo Nuevo", "Bella Vista"},
	"San Cristóbal":        {"Madre Vieja", "Lavapiés", "Canastica", "Hatillo"},
	"La Vega":              {"Centro", "Villa Rosa", "Pueblo Nuevo", "Río Verde"},
	"Puerto Plata":         {"Centro", "Torre Alta", "Los Ciruelitos"},
	"San Pedro de Macorís": {"Centro", "Villa Velásquez", "Barrio Lindo", "Miramar"},
	"La Romana":            {"Centro", "Villa Verde", "Piedra Linda"},
}

var provinces = []string{
	"Distrito Nacional", "Santo Domingo", "Santiago", "San Cristóbal",
	"La Vega", "Puerto Plata", "San Pedro de Macorís", "La Romana",
}

var windows = []string{"8:00 AM - 12:00 PM", "9:00 AM - 1:00 PM", "1:00 PM - 5:00 PM", "2:00 PM - 6:00 PM"}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the mock feed JSON")
	serve := flag.String("serve", "", "serve the feed at /outages/ on this address instead of exiting")
	count := flag.Int("count", 60, "number of outages to generate")
	days := flag.Int("days", 7, "number of consecutive days to spread outages over")
	seed := flag.Uint64("seed", 42, "random seed")
	start := flag.String("start", baseDate.Format(time.DateOnly), `first generated day (YYYY-MM-DD), or "now" for the current date`)
	flag.Parse()

	if *out == "" && *serve == "" {
		flag.Usage()
		return errors.New("one of -out or -serve is required")
	}
	if *count < 0 || *days < 1 {
		return errors.New("-count must be >= 0 and -days >= 1")
	}

	clock, err := startClock(*start)
	if err != nil {
		return err
	}
	outages := generate(clock, rand.New(rand.NewPCG(*seed, *seed)), *count, *days)

	data, err := json.MarshalIndent(outages, "", "  ")
	if err != nil {
		return fmt.Errorf("encode feed: %w", err)
	}

	if *out != "" {
		if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		if err := os.WriteFile(*out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", *out, err)
		}
		fmt.Printf("wrote %d outages to %s\n", len(outages), *out)
	}

	if *serve != "" {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /outages/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(data)
		})
		fmt.Printf("serving %d outages on %s/outages/\n", len(outages), *serve)
		srv := &http.Server{Addr: *serve, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		return srv.ListenAndServe()
	}
	return nil
}

// startClock returns the clock generated days are counted from: the real clock
// for "now", otherwise a fake clock frozen at the given date.
func startClock(start string) (clockwork.Clock, error) {
	if start == "now" {
		return clockwork.NewRealClock(), nil
	}
	t, err := time.Parse(time.DateOnly, start)
	if err != nil {
		return nil, fmt.Errorf("invalid -start %q: %w", start, err)
	}
	return clockwork.NewFakeClockAt(t), nil
}

// generate builds count outages cycling through provinces and days. Roughly one
// sector in eight is padded with whitespace and one event in twenty carries a
// whitespace-only sector, matching what the scraper emits.
func generate(clock clockwork.Clock, rng *rand.Rand, count, days int) []domain.Outage {
	outages := make([]domain.Outage, 0, count)
	for i := range count {
		province := provinces[rng.IntN(len(provinces))]
		day := clock.Now().AddDate(0, 0, i%days).Format("2006-01-02")

		events := make([]domain.MaintenanceEvent, 1+rng.IntN(3))
		for j := range events {
			events[j] = domain.MaintenanceEvent{
				Time:    windows[rng.IntN(len(windows))],
				Sectors: pickSectors(rng, provinceSectors[province]),
			}
		}

		outages = append(outages, domain.Outage{
			Company:     companies[rng.IntN(len(companies))],
			Province:    province,
			Day:         day,
			Maintenance: events,
		})
	}
	return outages
}

func pickSectors(rng *rand.Rand, pool []string) []string {
	n := 1 + rng.IntN(min(3, len(pool)))
	perm := rng.Perm(len(pool))[:n]

	sectors := make([]string, 0, n+1)
	for _, idx := range perm {
		s := pool[idx]
		if rng.IntN(8) == 0 {
			s = " " + s + " "
		}
		sectors = append(sectors, s)
	}
	if rng.IntN(20) == 0 {
		sectors = append(sectors, "  ")
	}
	return sectors
}
