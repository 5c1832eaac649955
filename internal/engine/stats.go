package engine

import "ostrack/internal/domain"

// Stats holds per-status counts for the dashboard summary tiles.
type Stats struct {
	Total  int            `json:"total"`
	Counts map[string]int `json:"counts"`
}

// Aggregate counts every order by its effective status. Each order lands in
// exactly one bucket; every taxonomy status is present even when zero. The
// caller decides whether to feed it the filtered or unfiltered collection
// (the dashboard uses the unfiltered one so tiles stay stable).
func Aggregate(orders []domain.ServiceOrder) Stats {
	counts := make(map[string]int, len(domain.Statuses))
	for _, s := range domain.Statuses {
		counts[s] = 0
	}
	for _, o := range orders {
		counts[domain.EffectiveStatus(o.Status)]++
	}
	return Stats{Total: len(orders), Counts: counts}
}
