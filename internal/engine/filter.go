package engine

import (
	"strings"

	"ostrack/internal/domain"
)

// Criteria narrows a collection of service orders. Empty fields impose no
// constraint; set fields combine by logical AND.
type Criteria struct {
	// Search matches os_number, client_name or ticket_number.
	Search string
	// Status matches the effective status exactly.
	Status string
	// PAT, Serial and Unit are independent substring matches.
	PAT    string
	Serial string
	Unit   string
	// DateStart and DateEnd bound opening_date inclusively, and apply only
	// to RESOLVIDO orders. Dates compare lexically as YYYY-MM-DD strings.
	DateStart string
	DateEnd   string
}

// Empty reports whether no criterion is set.
func (c Criteria) Empty() bool {
	return c == Criteria{}
}

// Filter returns the orders matching the criteria, preserving input order.
// The input slice and its elements are never modified.
func Filter(orders []domain.ServiceOrder, c Criteria) []domain.ServiceOrder {
	if c.Empty() {
		return orders
	}
	out := make([]domain.ServiceOrder, 0, len(orders))
	for _, o := range orders {
		if Matches(o, c) {
			out = append(out, o)
		}
	}
	return out
}

// Matches reports whether a single order satisfies every set criterion.
func Matches(o domain.ServiceOrder, c Criteria) bool {
	if c.Search != "" {
		if !containsFold(o.OSNumber, c.Search) &&
			!containsFold(o.ClientName, c.Search) &&
			!containsFold(o.TicketNumber, c.Search) {
			return false
		}
	}
	if s := strings.TrimSpace(c.Status); s != "" {
		if domain.EffectiveStatus(o.Status) != s {
			return false
		}
	}
	if c.PAT != "" && !containsFold(o.PAT, c.PAT) {
		return false
	}
	if c.Serial != "" && !containsFold(o.EquipmentSerial, c.Serial) {
		return false
	}
	if c.Unit != "" && !containsFold(o.Unit, c.Unit) {
		return false
	}
	if c.DateStart != "" || c.DateEnd != "" {
		// Resolved orders are period-bound; every other status bypasses
		// the date range regardless of its opening date.
		if domain.DateFiltered(o.Status) {
			if o.OpeningDate == "" {
				return false
			}
			if c.DateStart != "" && o.OpeningDate < c.DateStart {
				return false
			}
			if c.DateEnd != "" && o.OpeningDate > c.DateEnd {
				return false
			}
		}
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
