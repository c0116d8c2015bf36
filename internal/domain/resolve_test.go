package domain

import (
	"math"
	"net/url"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_DefaultPage(t *testing.T) {
	outages := numbered(t, 12, testProvince)
	res := Resolve(QueryParameters{}, outages, BuildIndex(outages))

	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 2, res.TotalPages)
	assert.Equal(t, 12, res.Total())
	require.Len(t, res.Window, 10)
	if diff := cmp.Diff(outages[:10], res.Window); diff != "" {
		t.Fatalf("first window mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_SecondPagePartial(t *testing.T) {
	outages := numbered(t, 12, testProvince)
	res := Resolve(QueryParameters{Page: 2}, outages, BuildIndex(outages))

	assert.Equal(t, []string{"C10", "C11"}, companies(res.Window))
}

func TestResolve_PageOutOfRange(t *testing.T) {
	outages := numbered(t, 12, testProvince)
	res := Resolve(QueryParameters{Page: 99}, outages, BuildIndex(outages))

	assert.Equal(t, 99, res.Page)
	assert.Equal(t, 2, res.TotalPages)
	assert.Empty(t, res.Window)
	assert.True(t, res.Empty())
	assert.Len(t, res.Filtered, 12)
}

func TestResolve_HugePage(t *testing.T) {
	outages := numbered(t, 12, testProvince)
	idx := BuildIndex(outages)

	tests := []struct {
		name       string
		raw        string
		wantPage   int
		wantWindow int
	}{
		{name: "max int", raw: strconv.Itoa(math.MaxInt), wantPage: math.MaxInt, wantWindow: 0},
		{name: "max int over page size", raw: strconv.Itoa(math.MaxInt/PageSize + 1), wantPage: math.MaxInt/PageSize + 1, wantWindow: 0},
		{name: "wider than int", raw: "99999999999999999999999999", wantPage: 1, wantWindow: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ParseQuery(url.Values{ParamPage: {tt.raw}})
			require.Equal(t, tt.wantPage, q.Page)

			var res Result
			require.NotPanics(t, func() { res = Resolve(q, outages, idx) })
			assert.Len(t, res.Window, tt.wantWindow)
			assert.Equal(t, 2, res.TotalPages)

			var p Pagination
			require.NotPanics(t, func() { p = Paginate(q, res.TotalPages) })
			require.Len(t, p.Pages, 2)
			next, err := strconv.Atoi(pageOf(t, p.Next.Link))
			require.NoError(t, err)
			assert.Positive(t, next, "next link never wraps negative")
		})
	}
}

func TestResolve_NonPositivePageDefaults(t *testing.T) {
	outages := numbered(t, 3, testProvince)
	res := Resolve(QueryParameters{Page: -3}, outages, BuildIndex(outages))

	assert.Equal(t, 1, res.Page)
	assert.Len(t, res.Window, 3)
}

func TestResolve_Company(t *testing.T) {
	outages := []Outage{
		outage(testCompany, testProvince, testDay),
		outage("acme", testProvince, testDay),
		outage("Other", testProvince, testDay),
		outage(testCompany, "Risaralda", testDay),
	}
	res := Resolve(QueryParameters{Company: testCompany}, outages, BuildIndex(outages))

	require.Len(t, res.Filtered, 2, "company match is case-sensitive")
	for _, o := range res.Filtered {
		assert.Equal(t, testCompany, o.Company)
	}
}

func TestResolve_CompanyAndDate(t *testing.T) {
	outages := []Outage{
		outage(testCompany, testProvince, testDay),
		outage(testCompany, testProvince, "2024-03-02"),
		outage("Other", testProvince, testDay),
	}
	idx := BuildIndex(outages)

	t.Run("both must match", func(t *testing.T) {
		res := Resolve(QueryParameters{Company: testCompany, Date: testDay}, outages, idx)
		require.Len(t, res.Filtered, 1)
		assert.Equal(t, outages[0], res.Filtered[0])
	})

	t.Run("no match gives zero pages", func(t *testing.T) {
		res := Resolve(QueryParameters{Company: testCompany, Date: "2024-04-01"}, outages, idx)
		assert.Empty(t, res.Filtered)
		assert.Equal(t, 0, res.TotalPages)
		assert.Empty(t, res.Window)
	})
}

func TestResolve_ProvinceDecoding(t *testing.T) {
	outages := []Outage{
		outage("A", testMultiProvince, testDay, event("t", "Cali Sur")),
		outage("B", "Valle", testDay),
		outage("C", "Valle del Cauca Norte", testDay),
		outage("D", testProvince, testDay),
	}
	idx := BuildIndex(outages)

	res := Resolve(QueryParameters{Province: "Valle-del-Cauca"}, outages, idx)

	assert.Equal(t, []string{"A"}, companies(res.Filtered), "substring matches are excluded")
	assert.Equal(t, testMultiProvince, res.Province)
	assert.Equal(t, []string{"Cali Sur"}, res.Sectors)
}

func TestResolve_UnknownProvince(t *testing.T) {
	outages := numbered(t, 4, testProvince)
	res := Resolve(QueryParameters{Province: "Atlántico"}, outages, BuildIndex(outages))

	assert.Empty(t, res.Filtered)
	assert.Empty(t, res.Sectors)
	assert.Equal(t, 0, res.TotalPages)
}

func TestResolve_Sector(t *testing.T) {
	outages := []Outage{
		outage("A", testProvince, testDay,
			event("8:00", "Centro", "Norte"),
			event("14:00", "Sur"),
		),
		outage("B", testProvince, testDay, event("9:00", "Sur")),
		outage("C", testProvince, testDay, event("10:00", " Centro ")),
	}
	idx := BuildIndex(outages)

	res := Resolve(QueryParameters{Sector: "Centro"}, outages, idx)

	require.Equal(t, []string{"A", "C"}, companies(res.Filtered))
	assert.Equal(t, []MaintenanceEvent{event("8:00", "Centro")}, res.Filtered[0].Maintenance,
		"only the matching event survives, narrowed to the matching sector")
	assert.Equal(t, []MaintenanceEvent{event("10:00", " Centro ")}, res.Filtered[1].Maintenance)

	for _, o := range res.Filtered {
		assert.NotEmpty(t, o.Maintenance, "no outage survives with an empty maintenance list")
	}
}

func TestResolve_SectorDoesNotMutateInput(t *testing.T) {
	outages := []Outage{
		outage("A", testProvince, testDay, event("8:00", "Centro"), event("14:00", "Sur")),
	}
	snapshot := []Outage{
		outage("A", testProvince, testDay, event("8:00", "Centro"), event("14:00", "Sur")),
	}
	idx := BuildIndex(outages)

	outages[0].Maintenance[0].Sectors = append(outages[0].Maintenance[0].Sectors, "Norte")
	snapshot[0].Maintenance[0].Sectors = append(snapshot[0].Maintenance[0].Sectors, "Norte")

	first := Resolve(QueryParameters{Sector: "Centro"}, outages, idx)
	assert.Equal(t, []string{"Centro"}, first.Filtered[0].Maintenance[0].Sectors)
	require.Len(t, first.Filtered[0].Maintenance, 1)

	if diff := cmp.Diff(snapshot, outages); diff != "" {
		t.Fatalf("raw collection mutated (-want +got):\n%s", diff)
	}

	second := Resolve(QueryParameters{Sector: "Sur"}, outages, idx)
	require.Len(t, second.Filtered, 1)
	assert.Equal(t, "14:00", second.Filtered[0].Maintenance[0].Time)
}

func TestResolve_UnfilteredDoesNotAliasInput(t *testing.T) {
	outages := numbered(t, 2, testProvince)
	res := Resolve(QueryParameters{}, outages, BuildIndex(outages))

	res.Filtered[0].Company = "changed"
	assert.Equal(t, "C00", outages[0].Company)
}

func TestResolve_AllFiltersConjunctive(t *testing.T) {
	outages := []Outage{
		outage(testCompany, testMultiProvince, testDay, event("8:00", "Centro"), event("9:00", "Sur")),
		outage(testCompany, testMultiProvince, "2024-03-02", event("8:00", "Centro")),
		outage("Other", testMultiProvince, testDay, event("8:00", "Centro")),
		outage(testCompany, testProvince, testDay, event("8:00", "Centro")),
		outage(testCompany, testMultiProvince, testDay, event("8:00", "Norte")),
	}
	q := QueryParameters{Company: testCompany, Date: testDay, Province: "Valle-del-Cauca", Sector: "Centro"}

	res := Resolve(q, outages, BuildIndex(outages))

	require.Len(t, res.Filtered, 1)
	o := res.Filtered[0]
	assert.Equal(t, testCompany, o.Company)
	assert.Equal(t, testDay, o.Day)
	assert.Equal(t, testMultiProvince, o.Province)
	assert.Equal(t, []MaintenanceEvent{event("8:00", "Centro")}, o.Maintenance)
}

func TestResolve_Idempotent(t *testing.T) {
	outages := []Outage{
		outage("A", testProvince, testDay, event("8:00", "Centro"), event("9:00", "Sur")),
		outage("B", testMultiProvince, testDay, event("8:00", "Centro")),
		outage("C", testProvince, testDay, event("8:00", "Centro")),
	}
	idx := BuildIndex(outages)
	queries := []QueryParameters{
		{},
		{Sector: "Centro"},
		{Province: EncodeProvince(testProvince), Page: 1},
		{Sector: "Sur", Page: 2},
	}

	for _, q := range queries {
		a := Resolve(q, outages, idx)
		b := Resolve(q, outages, idx)
		if diff := cmp.Diff(a, b); diff != "" {
			t.Fatalf("resolve not idempotent for %+v (-first +second):\n%s", q, diff)
		}
	}
}

func TestResolve_PaginationCoverage(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 20, 23} {
		outages := numbered(t, n, testProvince)
		idx := BuildIndex(outages)
		first := Resolve(QueryParameters{}, outages, idx)

		assert.Equal(t, (n+PageSize-1)/PageSize, first.TotalPages, "n=%d", n)
		assert.Equal(t, n == 0, first.TotalPages == 0, "n=%d", n)

		var rebuilt []Outage
		for page := 1; page <= first.TotalPages; page++ {
			res := Resolve(QueryParameters{Page: page}, outages, idx)
			rebuilt = append(rebuilt, res.Window...)
		}
		if n == 0 {
			assert.Empty(t, rebuilt)
			continue
		}
		if diff := cmp.Diff(first.Filtered, rebuilt); diff != "" {
			t.Fatalf("n=%d windows do not reconstruct the filtered set (-want +got):\n%s", n, diff)
		}
	}
}

func TestResolveWithPageSize(t *testing.T) {
	outages := numbered(t, 7, testProvince)
	idx := BuildIndex(outages)

	res := ResolveWithPageSize(QueryParameters{Page: 3}, outages, idx, 3)
	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, []string{"C06"}, companies(res.Window))

	fallback := ResolveWithPageSize(QueryParameters{}, outages, idx, 0)
	assert.Equal(t, PageSize, fallback.PageSize)
}

func TestPageWindow(t *testing.T) {
	items := numbered(t, 5, testProvince)

	assert.Len(t, PageWindow(items, 1, 2), 2)
	assert.Len(t, PageWindow(items, 3, 2), 1)
	assert.Empty(t, PageWindow(items, 4, 2))
	assert.Empty(t, PageWindow(items, 0, 2))
	assert.Empty(t, PageWindow(nil, 1, 2))
	assert.Empty(t, PageWindow(items, math.MaxInt, 2))
	assert.Empty(t, PageWindow(items, math.MaxInt/2+1, 2))

	w := PageWindow(items, 1, 2)
	w = append(w, outage("X", testProvince, testDay))
	assert.Equal(t, "C02", items[2].Company, "appending to a window cannot overwrite the next page")
	assert.Len(t, w, 3)
}

func TestResultTitle(t *testing.T) {
	outages := []Outage{outage("A", testMultiProvince, testDay, event("t", "Centro"))}
	idx := BuildIndex(outages)

	tests := []struct {
		name string
		q    QueryParameters
		want string
	}{
		{"no filter", QueryParameters{}, "Mantenimientos Programados"},
		{"province", QueryParameters{Province: "Valle-del-Cauca"}, "Mantenimientos Programados en Valle del Cauca"},
		{"sector wins", QueryParameters{Province: "Valle-del-Cauca", Sector: "Centro"}, "Mantenimientos Programados en Centro"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(tt.q, outages, idx)
			assert.Equal(t, tt.want, res.Title(tt.q))
		})
	}
}
