package domain

import "strings"

// Outage is one company's scheduled maintenance in one province on one day.
type Outage struct {
	Company     string             `json:"company"`
	Province    string             `json:"province"`
	Day         string             `json:"day"`
	Maintenance []MaintenanceEvent `json:"maintenance"`
}

// MaintenanceEvent is a single time window within an Outage and the sectors it affects.
type MaintenanceEvent struct {
	Time    string   `json:"time"`
	Sectors []string `json:"sectors"`
}

// HasSector reports whether any of the event's trimmed sector names equals sector.
func (e MaintenanceEvent) HasSector(sector string) bool {
	for _, s := range e.Sectors {
		if strings.TrimSpace(s) == sector {
			return true
		}
	}
	return false
}

// onlySector returns a copy of e listing only the entries whose trimmed name
// equals sector. The entries keep their original spelling.
func (e MaintenanceEvent) onlySector(sector string) MaintenanceEvent {
	var sectors []string
	for _, s := range e.Sectors {
		if strings.TrimSpace(s) == sector {
			sectors = append(sectors, s)
		}
	}
	e.Sectors = sectors
	return e
}

// withMaintenance returns a copy of o carrying only the given events.
func (o Outage) withMaintenance(events []MaintenanceEvent) Outage {
	o.Maintenance = events
	return o
}
