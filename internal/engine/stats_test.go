package engine

import (
	"testing"

	"ostrack/internal/domain"
)

func TestAggregate(t *testing.T) {
	orders := []domain.ServiceOrder{
		{ID: "1", Status: domain.StatusUrgente},
		{ID: "2", Status: domain.StatusResolvido},
		{ID: "3", Status: domain.StatusResolvido},
	}
	got := Aggregate(orders)
	if got.Total != 3 {
		t.Fatalf("total = %d", got.Total)
	}
	if got.Counts[domain.StatusUrgente] != 1 || got.Counts[domain.StatusResolvido] != 2 {
		t.Fatalf("counts = %v", got.Counts)
	}
	for _, s := range domain.Statuses {
		if s == domain.StatusUrgente || s == domain.StatusResolvido {
			continue
		}
		if got.Counts[s] != 0 {
			t.Errorf("status %s expected 0, got %d", s, got.Counts[s])
		}
	}
}

func TestAggregateCountsEveryOrderExactlyOnce(t *testing.T) {
	orders := []domain.ServiceOrder{
		{ID: "1"},
		{ID: "2", Status: domain.StatusEmRota},
		{ID: "3", Status: domain.StatusAberto},
		{ID: "4", Status: domain.StatusSuspenso},
	}
	got := Aggregate(orders)
	sum := 0
	for _, n := range got.Counts {
		sum += n
	}
	if sum != len(orders) || got.Total != len(orders) {
		t.Fatalf("sum=%d total=%d want %d", sum, got.Total, len(orders))
	}
	// Missing status lands in the ABERTO bucket.
	if got.Counts[domain.StatusAberto] != 2 {
		t.Fatalf("ABERTO = %d, want 2", got.Counts[domain.StatusAberto])
	}
}

func TestAggregateEmpty(t *testing.T) {
	got := Aggregate(nil)
	if got.Total != 0 {
		t.Fatalf("total = %d", got.Total)
	}
	if len(got.Counts) != len(domain.Statuses) {
		t.Fatalf("every taxonomy status must be present, got %d buckets", len(got.Counts))
	}
}
