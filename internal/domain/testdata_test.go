package domain

import (
	"fmt"
	"testing"
)

const (
	testProvince      = "Quindío"
	testMultiProvince = "Valle del Cauca"
	testCompany       = "ACME"
	testDay           = "2024-03-01"
)

func outage(company, province, day string, events ...MaintenanceEvent) Outage {
	return Outage{Company: company, Province: province, Day: day, Maintenance: events}
}

func event(time string, sectors ...string) MaintenanceEvent {
	return MaintenanceEvent{Time: time, Sectors: sectors}
}

// numbered returns n outages in one province whose company names encode their position.
func numbered(t *testing.T, n int, province string) []Outage {
	t.Helper()
	out := make([]Outage, n)
	for i := range out {
		out[i] = outage(fmt.Sprintf("C%02d", i), province, testDay, event("8:00 - 12:00", "Centro"))
	}
	return out
}

func companies(outages []Outage) []string {
	out := make([]string, len(outages))
	for i, o := range outages {
		out[i] = o.Company
	}
	return out
}
