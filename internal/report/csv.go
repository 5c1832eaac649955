package report

import (
	"encoding/csv"
	"io"

	"ostrack/internal/domain"
)

// CSVFilename is the download name suggested by the export endpoint.
const CSVFilename = "relatorio_ordens_servico.csv"

// csvHeader fixes the tabular column order. All order fields appear; the
// trailing verifications column is display-only (see checklistSummary).
var csvHeader = []string{
	"id",
	"ticket_number",
	"os_number",
	"pat",
	"opening_date",
	"responsible_opening",
	"responsible_tech",
	"client_name",
	"phone",
	"unit",
	"service_address",
	"equipment_type",
	"equipment_brand",
	"equipment_model",
	"equipment_board_serial",
	"equipment_serial",
	"call_info",
	"materials",
	"technical_report",
	"pending_issues",
	"observations",
	"total_page_count",
	"next_visit",
	"equipment_replaced",
	"status",
	"verifications",
}

func csvRow(p Projection) []string {
	return []string{
		p.ID,
		p.TicketNumber,
		p.OSNumber,
		p.PAT,
		p.OpeningDate,
		p.ResponsibleOpening,
		p.ResponsibleTech,
		p.ClientName,
		p.Phone,
		p.Unit,
		p.ServiceAddress,
		p.EquipmentType,
		p.EquipmentBrand,
		p.EquipmentModel,
		p.EquipmentBoardSerial,
		p.EquipmentSerial,
		p.CallInfo,
		p.Materials,
		p.TechnicalReport,
		p.PendingIssues,
		p.Observations,
		p.TotalPageCount,
		p.NextVisit,
		p.EquipmentReplaced,
		p.Status,
		checklistSummary(p.Verifications),
	}
}

// WriteCSV streams the tabular export for a collection of orders.
func WriteCSV(w io.Writer, orders []domain.ServiceOrder) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, o := range orders {
		p, err := Project(o)
		if err != nil {
			return err
		}
		if err := cw.Write(csvRow(p)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
