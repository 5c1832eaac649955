package engine

import (
	"reflect"
	"testing"

	"ostrack/internal/domain"
)

func ids(orders []domain.ServiceOrder) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}

func TestFilterNoCriteria(t *testing.T) {
	orders := []domain.ServiceOrder{{ID: "a"}, {ID: "b"}}
	got := Filter(orders, Criteria{})
	if !reflect.DeepEqual(ids(got), []string{"a", "b"}) {
		t.Fatalf("empty criteria changed the collection: %v", ids(got))
	}
}

func TestFilterSearchText(t *testing.T) {
	orders := []domain.ServiceOrder{
		{ID: "a", ClientName: "João Silva"},
		{ID: "b", ClientName: "Maria", TicketNumber: "998877"},
		{ID: "c", OSNumber: "OS-JOAO-7"},
	}
	got := Filter(orders, Criteria{Search: "joão"})
	if !reflect.DeepEqual(ids(got), []string{"a"}) {
		t.Fatalf("search=joão matched %v", ids(got))
	}
	got = Filter(orders, Criteria{Search: "JOAO"})
	if !reflect.DeepEqual(ids(got), []string{"c"}) {
		t.Fatalf("search is not case-insensitive: %v", ids(got))
	}
	got = Filter(orders, Criteria{Search: "9988"})
	if !reflect.DeepEqual(ids(got), []string{"b"}) {
		t.Fatalf("search should also match ticket_number: %v", ids(got))
	}
}

func TestFilterStatusUsesEffectiveStatus(t *testing.T) {
	orders := []domain.ServiceOrder{
		{ID: "blank"},
		{ID: "open", Status: domain.StatusAberto},
		{ID: "done", Status: domain.StatusResolvido},
	}
	got := Filter(orders, Criteria{Status: domain.StatusAberto})
	if !reflect.DeepEqual(ids(got), []string{"blank", "open"}) {
		t.Fatalf("missing status must count as ABERTO: %v", ids(got))
	}
}

func TestFilterDateRangeResolvedOnly(t *testing.T) {
	inMarch := Criteria{DateStart: "2024-03-01", DateEnd: "2024-03-31"}

	resolved := domain.ServiceOrder{ID: "r", Status: domain.StatusResolvido, OpeningDate: "2024-03-15"}
	if got := Filter([]domain.ServiceOrder{resolved}, inMarch); len(got) != 1 {
		t.Error("RESOLVIDO inside the range should be included")
	}
	if got := Filter([]domain.ServiceOrder{resolved}, Criteria{DateEnd: "2024-02-28"}); len(got) != 0 {
		t.Error("RESOLVIDO past the upper bound should be excluded")
	}

	open := domain.ServiceOrder{ID: "o", Status: domain.StatusAberto}
	if got := Filter([]domain.ServiceOrder{open}, inMarch); len(got) != 1 {
		t.Error("non-RESOLVIDO order must bypass the date range even without opening_date")
	}

	resolvedNoDate := domain.ServiceOrder{ID: "n", Status: domain.StatusResolvido}
	if got := Filter([]domain.ServiceOrder{resolvedNoDate}, Criteria{DateStart: "2000-01-01"}); len(got) != 0 {
		t.Error("RESOLVIDO without opening_date fails closed when a bound is set")
	}
	if got := Filter([]domain.ServiceOrder{resolvedNoDate}, Criteria{}); len(got) != 1 {
		t.Error("without bounds the date dimension imposes no constraint")
	}
}

func TestFilterDateBoundsAreInclusive(t *testing.T) {
	o := domain.ServiceOrder{ID: "r", Status: domain.StatusResolvido, OpeningDate: "2024-03-01"}
	if got := Filter([]domain.ServiceOrder{o}, Criteria{DateStart: "2024-03-01", DateEnd: "2024-03-01"}); len(got) != 1 {
		t.Error("bounds are inclusive")
	}
}

func TestFilterVaryingBoundsNeverAffectsOtherStatuses(t *testing.T) {
	for _, s := range domain.Statuses {
		if s == domain.StatusResolvido {
			continue
		}
		o := domain.ServiceOrder{ID: "x", Status: s, OpeningDate: "1999-01-01"}
		for _, c := range []Criteria{
			{},
			{DateStart: "2024-01-01"},
			{DateEnd: "2024-12-31"},
			{DateStart: "2024-01-01", DateEnd: "2024-12-31"},
		} {
			if got := Filter([]domain.ServiceOrder{o}, c); len(got) != 1 {
				t.Errorf("status %s excluded by date criteria %+v", s, c)
			}
		}
	}
}

func TestFilterConjunction(t *testing.T) {
	orders := []domain.ServiceOrder{
		{ID: "a", PAT: "PAT-100", Unit: "Matriz"},
		{ID: "b", PAT: "PAT-100", Unit: "Filial"},
		{ID: "c", PAT: "PAT-200", Unit: "Matriz"},
	}
	got := Filter(orders, Criteria{PAT: "pat-100", Unit: "matriz"})
	if !reflect.DeepEqual(ids(got), []string{"a"}) {
		t.Fatalf("criteria must combine by AND: %v", ids(got))
	}
}

func TestFilterIsOrderPreservingSubsequenceAndIdempotent(t *testing.T) {
	orders := []domain.ServiceOrder{
		{ID: "1", Unit: "A"},
		{ID: "2", Unit: "B"},
		{ID: "3", Unit: "A"},
		{ID: "4", Unit: "AB"},
	}
	c := Criteria{Unit: "a"}
	once := Filter(orders, c)
	if !reflect.DeepEqual(ids(once), []string{"1", "3", "4"}) {
		t.Fatalf("filter result: %v", ids(once))
	}
	twice := Filter(once, c)
	if !reflect.DeepEqual(ids(twice), ids(once)) {
		t.Fatalf("filter not idempotent: %v vs %v", ids(twice), ids(once))
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	orders := []domain.ServiceOrder{{ID: "a", Unit: "X"}, {ID: "b"}}
	_ = Filter(orders, Criteria{Unit: "x"})
	if orders[0].ID != "a" || orders[1].ID != "b" || orders[0].Unit != "X" {
		t.Fatal("input mutated")
	}
}
