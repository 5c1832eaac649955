package domain

import "errors"

// ErrInvalidRecord is returned when a record cannot be identified.
var ErrInvalidRecord = errors.New("record has no id")

type ServiceOrder struct {
	ID string `json:"id"`

	TicketNumber string `json:"ticket_number,omitempty"`
	OSNumber     string `json:"os_number,omitempty"`
	PAT          string `json:"pat,omitempty"`
	Status       string `json:"status,omitempty"`
	OpeningDate  string `json:"opening_date,omitempty" format:"date"`

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

	Verifications []Verification `json:"verifications"`

	TotalPageCount    string `json:"total_page_count,omitempty"`
	PendingIssues     string `json:"pending_issues,omitempty"`
	NextVisit         string `json:"next_visit,omitempty" format:"date"`
	EquipmentReplaced bool   `json:"equipment_replaced"`

	Observations string `json:"observations,omitempty"`

	CreatedBy string `json:"created_by,omitempty"`
	CreatedAt string `json:"created_at,omitempty" format:"date-time"`
	UpdatedAt string `json:"updated_at,omitempty" format:"date-time"`
}

type Verification struct {
	Item        string `json:"item"`
	Status      string `json:"status" enum:"BOA,RUIM,N/A"`
	Observation string `json:"observation,omitempty"`
}

type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role" enum:"ADMIN,USER"`
	CreatedAt string `json:"created_at" format:"date-time"`
}

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Normalize returns a copy of the order ready for display or export:
// effective status filled in and the verification checklist completed to
// the full catalog. The input is not modified.
func Normalize(o ServiceOrder) ServiceOrder {
	o.Status = EffectiveStatus(o.Status)
	o.Verifications = NormalizeVerifications(o.Verifications)
	return o
}
