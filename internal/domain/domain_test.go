package domain

import "testing"

func TestEffectiveStatus(t *testing.T) {
	if got := EffectiveStatus(""); got != StatusAberto {
		t.Fatalf("expected missing status to default to ABERTO, got %q", got)
	}
	if got := EffectiveStatus(StatusResolvido); got != StatusResolvido {
		t.Fatalf("expected RESOLVIDO to pass through, got %q", got)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range Statuses {
		if !ValidStatus(s) {
			t.Errorf("taxonomy status %q rejected", s)
		}
	}
	if !ValidStatus("") {
		t.Error("empty status should be accepted as implicit default")
	}
	if ValidStatus("FECHADO") {
		t.Error("unknown status accepted")
	}
}

func TestDateFiltered(t *testing.T) {
	if !DateFiltered(StatusResolvido) {
		t.Error("RESOLVIDO must be date-filtered")
	}
	for _, s := range Statuses {
		if s == StatusResolvido {
			continue
		}
		if DateFiltered(s) {
			t.Errorf("status %q should bypass the date filter", s)
		}
	}
	if DateFiltered("") {
		t.Error("missing status defaults to ABERTO and should bypass the date filter")
	}
}

func TestNormalizeVerificationsEmpty(t *testing.T) {
	got := NormalizeVerifications(nil)
	if len(got) != len(ChecklistItems) {
		t.Fatalf("expected %d entries, got %d", len(ChecklistItems), len(got))
	}
	if got[0].Item != "IMPRESSÃO/XEROX" {
		t.Fatalf("catalog must start with IMPRESSÃO/XEROX, got %q", got[0].Item)
	}
	for i, v := range got {
		if v.Item != ChecklistItems[i] {
			t.Errorf("entry %d: expected item %q, got %q", i, ChecklistItems[i], v.Item)
		}
		if v.Status != VerificationNotApplicable {
			t.Errorf("entry %d: expected N/A, got %q", i, v.Status)
		}
		if v.Observation != "" {
			t.Errorf("entry %d: expected empty observation, got %q", i, v.Observation)
		}
	}
}

func TestNormalizeVerificationsPartial(t *testing.T) {
	stored := []Verification{
		{Item: "DIGITALIZAÇÃO", Status: VerificationBad, Observation: "scanner riscado"},
		{Item: "BANDEJA 1/2", Status: VerificationGood},
		{Item: "ITEM INEXISTENTE", Status: VerificationGood},
	}
	got := NormalizeVerifications(stored)
	if len(got) != len(ChecklistItems) {
		t.Fatalf("expected %d entries, got %d", len(ChecklistItems), len(got))
	}
	byItem := map[string]Verification{}
	for _, v := range got {
		byItem[v.Item] = v
	}
	if v := byItem["DIGITALIZAÇÃO"]; v.Status != VerificationBad || v.Observation != "scanner riscado" {
		t.Errorf("stored entry lost: %+v", v)
	}
	if v := byItem["BANDEJA 1/2"]; v.Status != VerificationGood {
		t.Errorf("stored entry lost: %+v", v)
	}
	if _, ok := byItem["ITEM INEXISTENTE"]; ok {
		t.Error("non-catalog item should be dropped")
	}
	// Entries stay in catalog order regardless of stored order.
	for i, v := range got {
		if v.Item != ChecklistItems[i] {
			t.Fatalf("entry %d out of catalog order: %q", i, v.Item)
		}
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	stored := []Verification{{Item: "REDE/USB", Status: ""}}
	o := ServiceOrder{ID: "x", Verifications: stored}
	n := Normalize(o)
	if o.Status != "" {
		t.Error("input status mutated")
	}
	if stored[0].Status != "" {
		t.Error("input verification mutated")
	}
	if n.Status != StatusAberto {
		t.Errorf("normalized status = %q", n.Status)
	}
	if len(n.Verifications) != len(ChecklistItems) {
		t.Errorf("normalized checklist has %d entries", len(n.Verifications))
	}
}
