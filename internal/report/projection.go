// Package report renders service orders into flat, total projections for
// CSV export, spreadsheet reports and printable documents.
package report

import (
	"strings"

	"ostrack/internal/domain"
)

// Projection is the flat, fully-defaulted view of one order. Every field
// is always present; absent optional fields project to the empty string.
type Projection struct {
	ID                   string
	TicketNumber         string
	OSNumber             string
	PAT                  string
	OpeningDate          string
	ResponsibleOpening   string
	ResponsibleTech      string
	ClientName           string
	Phone                string
	Unit                 string
	ServiceAddress       string
	EquipmentType        string
	EquipmentBrand       string
	EquipmentModel       string
	EquipmentBoardSerial string
	EquipmentSerial      string
	CallInfo             string
	Materials            string
	TechnicalReport      string
	PendingIssues        string
	Observations         string
	TotalPageCount       string
	NextVisit            string
	EquipmentReplaced    string
	Status               string
	Verifications        []domain.Verification
}

// Project flattens an order. It is total apart from the identity check:
// an order without an id fails with domain.ErrInvalidRecord, every other
// missing field degrades to its empty default. The checklist always comes
// back with the full catalog.
func Project(o domain.ServiceOrder) (Projection, error) {
	if o.ID == "" {
		return Projection{}, domain.ErrInvalidRecord
	}
	n := domain.Normalize(o)
	replaced := "Não"
	if n.EquipmentReplaced {
		replaced = "Sim"
	}
	return Projection{
		ID:                   n.ID,
		TicketNumber:         n.TicketNumber,
		OSNumber:             n.OSNumber,
		PAT:                  n.PAT,
		OpeningDate:          n.OpeningDate,
		ResponsibleOpening:   n.ResponsibleOpening,
		ResponsibleTech:      n.ResponsibleTech,
		ClientName:           n.ClientName,
		Phone:                n.Phone,
		Unit:                 n.Unit,
		ServiceAddress:       n.ServiceAddress,
		EquipmentType:        n.EquipmentType,
		EquipmentBrand:       n.EquipmentBrand,
		EquipmentModel:       n.EquipmentModel,
		EquipmentBoardSerial: n.EquipmentBoardSerial,
		EquipmentSerial:      n.EquipmentSerial,
		CallInfo:             n.CallInfo,
		Materials:            n.Materials,
		TechnicalReport:      n.TechnicalReport,
		PendingIssues:        n.PendingIssues,
		Observations:         n.Observations,
		TotalPageCount:       n.TotalPageCount,
		NextVisit:            n.NextVisit,
		EquipmentReplaced:    replaced,
		Status:               n.Status,
		Verifications:        n.Verifications,
	}, nil
}

// checklistSummary is the bounded display-only serialization of the
// checklist used by the tabular export (item=status pairs; observations
// are omitted, so the column does not round-trip).
func checklistSummary(verifications []domain.Verification) string {
	parts := make([]string, 0, len(verifications))
	for _, v := range verifications {
		parts = append(parts, v.Item+"="+v.Status)
	}
	return strings.Join(parts, "; ")
}
