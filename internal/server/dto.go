package server

import (
	"ostrack/internal/domain"
	"ostrack/internal/engine"
)

// Request payloads

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role,omitempty" enum:"ADMIN,USER"`
}

// ServiceOrderRequest carries a full order payload; every field is
// optional and sparse payloads are allowed.
type ServiceOrderRequest struct {
	TicketNumber string `json:"ticket_number,omitempty"`
	OSNumber     string `json:"os_number,omitempty"`
	PAT          string `json:"pat,omitempty"`
	Status       string `json:"status,omitempty"`
	OpeningDate  string `json:"opening_date,omitempty"`

	ResponsibleOpening string `json:"responsible_opening,omitempty"`
	ResponsibleTech    string `json:"responsible_tech,omitempty"`
	Phone              string `json:"phone,omitempty"`

	ClientName     string `json:"client_name,omitempty"`
	Unit           string `json:"unit,omitempty"`
	ServiceAddress string `json:"service_address,omitempty"`

	EquipmentType        string `json:"equipment_type,omitempty"`
	EquipmentBrand       string `json:"equipment_brand,omitempty"`
	EquipmentModel       string `json:"equipment_model,omitempty"`
	EquipmentSerial      string `json:"equipment_serial,omitempty"`
	EquipmentBoardSerial string `json:"equipment_board_serial,omitempty"`

	CallInfo        string `json:"call_info,omitempty"`
	Materials       string `json:"materials,omitempty"`
	TechnicalReport string `json:"technical_report,omitempty"`

	Verifications []domain.Verification `json:"verifications,omitempty"`

	TotalPageCount    string `json:"total_page_count,omitempty"`
	PendingIssues     string `json:"pending_issues,omitempty"`
	NextVisit         string `json:"next_visit,omitempty"`
	EquipmentReplaced bool   `json:"equipment_replaced,omitempty"`

	Observations string `json:"observations,omitempty"`
}

func (r ServiceOrderRequest) toDomain() domain.ServiceOrder {
	return domain.ServiceOrder{
		TicketNumber:         r.TicketNumber,
		OSNumber:             r.OSNumber,
		PAT:                  r.PAT,
		Status:               r.Status,
		OpeningDate:          r.OpeningDate,
		ResponsibleOpening:   r.ResponsibleOpening,
		ResponsibleTech:      r.ResponsibleTech,
		Phone:                r.Phone,
		ClientName:           r.ClientName,
		Unit:                 r.Unit,
		ServiceAddress:       r.ServiceAddress,
		EquipmentType:        r.EquipmentType,
		EquipmentBrand:       r.EquipmentBrand,
		EquipmentModel:       r.EquipmentModel,
		EquipmentSerial:      r.EquipmentSerial,
		EquipmentBoardSerial: r.EquipmentBoardSerial,
		CallInfo:             r.CallInfo,
		Materials:            r.Materials,
		TechnicalReport:      r.TechnicalReport,
		Verifications:        r.Verifications,
		TotalPageCount:       r.TotalPageCount,
		PendingIssues:        r.PendingIssues,
		NextVisit:            r.NextVisit,
		EquipmentReplaced:    r.EquipmentReplaced,
		Observations:         r.Observations,
	}
}

// FilterParams are the list/export query criteria.
type FilterParams struct {
	Search    string `query:"search" doc:"Substring match on os_number, client_name or ticket_number"`
	Status    string `query:"status" doc:"Exact effective-status match"`
	PAT       string `query:"pat"`
	Serial    string `query:"equipment_serial"`
	Unit      string `query:"unit"`
	DateStart string `query:"date_start" doc:"Inclusive ISO lower bound; RESOLVIDO orders only"`
	DateEnd   string `query:"date_end" doc:"Inclusive ISO upper bound; RESOLVIDO orders only"`
}

func (p FilterParams) criteria() engine.Criteria {
	return engine.Criteria{
		Search:    p.Search,
		Status:    p.Status,
		PAT:       p.PAT,
		Serial:    p.Serial,
		Unit:      p.Unit,
		DateStart: p.DateStart,
		DateEnd:   p.DateEnd,
	}
}

// Responses

type TokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type" example:"bearer"`
	User        domain.User `json:"user"`
}

func statsResponse(s engine.Stats) map[string]int {
	out := make(map[string]int, len(s.Counts)+1)
	for status, n := range s.Counts {
		out[status] = n
	}
	out["total"] = s.Total
	return out
}
