package http

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/couchcryptid/outage-listing-service/internal/domain"
	"github.com/couchcryptid/outage-listing-service/internal/pipeline"
)

const noResultsMessage = "No se han encontrado resultados para esta busqueda."

//go:embed templates/listing.html
var templateFS embed.FS

var listingTemplate = template.Must(template.ParseFS(templateFS, "templates/listing.html"))

// row is one table line: a single maintenance event of a windowed outage.
type row struct {
	Company  string `json:"company"`
	Province string `json:"province"`
	Day      string `json:"day"`
	DayLabel string `json:"day_label"`
	Time     string `json:"time"`
	Sectors  string `json:"sectors"`
}

type provinceOption struct {
	Name     string
	Slug     string
	Selected bool
}

type listingPage struct {
	Title      string
	ClearLink  string
	Provinces  []provinceOption
	Sectors    []string
	Sector     string
	Date       string
	Company    string
	Rows       []row
	Message    string
	Pagination domain.Pagination
}

func buildRows(window []domain.Outage) []row {
	rows := make([]row, 0, len(window))
	for _, o := range window {
		label := FormatDay(o.Day)
		for _, e := range o.Maintenance {
			rows = append(rows, row{
				Company:  o.Company,
				Province: o.Province,
				Day:      o.Day,
				DayLabel: label,
				Time:     e.Time,
				Sectors:  strings.Join(e.Sectors, ", "),
			})
		}
	}
	return rows
}

func newListingPage(path string, q domain.QueryParameters, view pipeline.View, idx domain.ProvinceSectorIndex) listingPage {
	page := listingPage{
		Title:      view.Title,
		ClearLink:  path,
		Sectors:    view.Result.Sectors,
		Sector:     q.Sector,
		Date:       q.Date,
		Company:    q.Company,
		Rows:       buildRows(view.Result.Window),
		Pagination: view.Pagination,
	}
	for _, p := range idx.Provinces() {
		page.Provinces = append(page.Provinces, provinceOption{
			Name:     p,
			Slug:     domain.EncodeProvince(p),
			Selected: p == view.Result.Province,
		})
	}
	if view.Result.Empty() {
		page.Message = noResultsMessage
	}
	return page
}

var (
	spanishWeekdays = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}
	spanishMonths   = [...]string{"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"}
	dayLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"}
)

// FormatDay renders a feed day as a long Spanish date in UTC, for example
// "viernes, 1 de marzo de 2024". Unparseable values are returned unchanged.
func FormatDay(day string) string {
	for _, layout := range dayLayouts {
		t, err := time.Parse(layout, day)
		if err != nil {
			continue
		}
		t = t.UTC()
		return fmt.Sprintf("%s, %d de %s de %d",
			spanishWeekdays[t.Weekday()], t.Day(), spanishMonths[t.Month()-1], t.Year())
	}
	return day
}
