package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"ostrack/internal/domain"
)

func TestProjectMinimalOrder(t *testing.T) {
	p, err := Project(domain.ServiceOrder{ID: "os-1"})
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if p.Status != domain.StatusAberto {
		t.Errorf("status defaults to %q, got %q", domain.StatusAberto, p.Status)
	}
	if p.EquipmentReplaced != "Não" {
		t.Errorf("equipment_replaced = %q", p.EquipmentReplaced)
	}
	for _, s := range []string{p.TicketNumber, p.ClientName, p.TotalPageCount, p.NextVisit} {
		if s != "" {
			t.Errorf("optional field must default to empty, got %q", s)
		}
	}
	if len(p.Verifications) != len(domain.ChecklistItems) {
		t.Fatalf("checklist has %d entries", len(p.Verifications))
	}
	if !strings.HasPrefix(p.Verifications[0].Item, "IMPRESSÃO/XEROX") {
		t.Errorf("first checklist item = %q", p.Verifications[0].Item)
	}
	for _, v := range p.Verifications {
		if v.Status != domain.VerificationNotApplicable {
			t.Errorf("item %q status = %q", v.Item, v.Status)
		}
	}
}

func TestProjectRequiresID(t *testing.T) {
	if _, err := Project(domain.ServiceOrder{ClientName: "X"}); !errors.Is(err, domain.ErrInvalidRecord) {
		t.Fatalf("expected invalid record, got %v", err)
	}
}

func TestWriteCSV(t *testing.T) {
	orders := []domain.ServiceOrder{
		{
			ID:                "os-1",
			TicketNumber:      "CH-100",
			OSNumber:          "OS-100",
			ClientName:        "Prefeitura, Setor \"A\"",
			Status:            domain.StatusResolvido,
			EquipmentReplaced: true,
		},
		{ID: "os-2"},
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, orders); err != nil {
		t.Fatalf("write: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("row count = %d", len(rows))
	}
	if len(rows[0]) != len(csvHeader) {
		t.Fatalf("header width = %d", len(rows[0]))
	}
	col := func(name string) int {
		for i, h := range rows[0] {
			if h == name {
				return i
			}
		}
		t.Fatalf("missing column %q", name)
		return -1
	}
	first := rows[1]
	if first[col("client_name")] != "Prefeitura, Setor \"A\"" {
		t.Errorf("client_name did not survive quoting: %q", first[col("client_name")])
	}
	if first[col("equipment_replaced")] != "Sim" {
		t.Errorf("equipment_replaced = %q", first[col("equipment_replaced")])
	}
	if first[col("status")] != domain.StatusResolvido {
		t.Errorf("status = %q", first[col("status")])
	}
	second := rows[2]
	if second[col("status")] != domain.StatusAberto {
		t.Errorf("absent status must export as %q, got %q", domain.StatusAberto, second[col("status")])
	}
	if !strings.Contains(second[col("verifications")], "IMPRESSÃO/XEROX") {
		t.Errorf("verifications column = %q", second[col("verifications")])
	}
}

func TestWriteCSVFailsOnMissingID(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []domain.ServiceOrder{{ClientName: "sem id"}})
	if !errors.Is(err, domain.ErrInvalidRecord) {
		t.Fatalf("expected invalid record, got %v", err)
	}
}

func TestWriteXLSX(t *testing.T) {
	data, err := WriteXLSX([]domain.ServiceOrder{
		{ID: "os-1", TicketNumber: "CH-1", OSNumber: "OS-1", PAT: "PAT-9", ClientName: "Câmara", Unit: "Centro", OpeningDate: "2026-02-10", Status: domain.StatusUrgente},
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	const sheet = "Relatório O.S."
	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("row count = %d", len(rows))
	}
	for i, want := range excelHeader {
		if rows[0][i] != want {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], want)
		}
	}
	want := []string{"CH-1", "OS-1", "PAT-9", "Câmara", "Centro", "2026-02-10", domain.StatusUrgente}
	for i, v := range want {
		if rows[1][i] != v {
			t.Errorf("row[%d] = %q, want %q", i, rows[1][i], v)
		}
	}
}

func TestWriteDocument(t *testing.T) {
	var buf bytes.Buffer
	err := WriteDocument(&buf, domain.ServiceOrder{
		ID:              "os-1",
		OSNumber:        "OS-42",
		ClientName:      "Hospital Municipal",
		TechnicalReport: "substituição do cilindro",
		Status:          domain.StatusUrgente,
		Verifications:   []domain.Verification{{Item: domain.ChecklistItems[0], Status: domain.VerificationBad, Observation: "falha intermitente"}},
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	html := buf.String()
	for _, want := range []string{
		"OS-42",
		"Hospital Municipal",
		"substituição do cilindro",
		"falha intermitente",
		"status-orange",
		domain.ChecklistItems[1],
	} {
		if !strings.Contains(html, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestWriteDocumentRequiresID(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDocument(&buf, domain.ServiceOrder{}); !errors.Is(err, domain.ErrInvalidRecord) {
		t.Fatalf("expected invalid record, got %v", err)
	}
}
