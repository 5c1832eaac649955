package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"ostrack/internal/domain"
)

const orderColumns = `id,
COALESCE(ticket_number,''), COALESCE(os_number,''), COALESCE(pat,''),
COALESCE(status,''), COALESCE(opening_date,''),
COALESCE(responsible_opening,''), COALESCE(responsible_tech,''), COALESCE(phone,''),
COALESCE(client_name,''), COALESCE(unit,''), COALESCE(service_address,''),
COALESCE(equipment_type,''), COALESCE(equipment_brand,''), COALESCE(equipment_model,''),
COALESCE(equipment_serial,''), COALESCE(equipment_board_serial,''),
COALESCE(call_info,''), COALESCE(materials,''), COALESCE(technical_report,''),
COALESCE(verifications_json,''),
COALESCE(total_page_count,''), COALESCE(pending_issues,''), COALESCE(next_visit,''),
equipment_replaced, COALESCE(observations,''),
created_by, created_at, updated_at`

func scanOrder(scan func(dest ...any) error) (domain.ServiceOrder, error) {
	var o domain.ServiceOrder
	var verificationsJSON string
	var replaced int
	err := scan(&o.ID,
		&o.TicketNumber, &o.OSNumber, &o.PAT,
		&o.Status, &o.OpeningDate,
		&o.ResponsibleOpening, &o.ResponsibleTech, &o.Phone,
		&o.ClientName, &o.Unit, &o.ServiceAddress,
		&o.EquipmentType, &o.EquipmentBrand, &o.EquipmentModel,
		&o.EquipmentSerial, &o.EquipmentBoardSerial,
		&o.CallInfo, &o.Materials, &o.TechnicalReport,
		&verificationsJSON,
		&o.TotalPageCount, &o.PendingIssues, &o.NextVisit,
		&replaced, &o.Observations,
		&o.CreatedBy, &o.CreatedAt, &o.UpdatedAt)
	if err == sql.ErrNoRows {
		return o, ErrNotFound
	}
	if err != nil {
		return o, err
	}
	o.EquipmentReplaced = replaced != 0
	if verificationsJSON != "" {
		if err := json.Unmarshal([]byte(verificationsJSON), &o.Verifications); err != nil {
			return o, fmt.Errorf("decode verifications for order %s: %w", o.ID, err)
		}
	}
	return o, nil
}

func orderArgs(o domain.ServiceOrder) ([]any, error) {
	var verificationsJSON string
	if len(o.Verifications) > 0 {
		b, err := json.Marshal(o.Verifications)
		if err != nil {
			return nil, fmt.Errorf("encode verifications: %w", err)
		}
		verificationsJSON = string(b)
	}
	replaced := 0
	if o.EquipmentReplaced {
		replaced = 1
	}
	return []any{
		nullable(o.TicketNumber), nullable(o.OSNumber), nullable(o.PAT),
		nullable(o.Status), nullable(o.OpeningDate),
		nullable(o.ResponsibleOpening), nullable(o.ResponsibleTech), nullable(o.Phone),
		nullable(o.ClientName), nullable(o.Unit), nullable(o.ServiceAddress),
		nullable(o.EquipmentType), nullable(o.EquipmentBrand), nullable(o.EquipmentModel),
		nullable(o.EquipmentSerial), nullable(o.EquipmentBoardSerial),
		nullable(o.CallInfo), nullable(o.Materials), nullable(o.TechnicalReport),
		nullable(verificationsJSON),
		nullable(o.TotalPageCount), nullable(o.PendingIssues), nullable(o.NextVisit),
		replaced, nullable(o.Observations),
	}, nil
}

func (r Repo) InsertOrder(ctx context.Context, o domain.ServiceOrder) error {
	args, err := orderArgs(o)
	if err != nil {
		return err
	}
	args = append([]any{o.ID}, args...)
	args = append(args, o.CreatedBy, o.CreatedAt, o.UpdatedAt)
	_, err = r.DB.ExecContext(ctx, `INSERT INTO service_orders(
id, ticket_number, os_number, pat, status, opening_date,
responsible_opening, responsible_tech, phone,
client_name, unit, service_address,
equipment_type, equipment_brand, equipment_model,
equipment_serial, equipment_board_serial,
call_info, materials, technical_report, verifications_json,
total_page_count, pending_issues, next_visit,
equipment_replaced, observations,
created_by, created_at, updated_at
) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`, args...)
	return err
}

func (r Repo) GetOrder(ctx context.Context, id string) (domain.ServiceOrder, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM service_orders WHERE id=?`, id)
	return scanOrder(row.Scan)
}

// ListOrders returns all orders in creation order (oldest first).
func (r Repo) ListOrders(ctx context.Context) ([]domain.ServiceOrder, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+orderColumns+` FROM service_orders ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []domain.ServiceOrder
	for rows.Next() {
		o, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		res = append(res, o)
	}
	return res, rows.Err()
}

// UpdateOrder replaces the whole stored record; creation metadata is kept.
func (r Repo) UpdateOrder(ctx context.Context, o domain.ServiceOrder) error {
	args, err := orderArgs(o)
	if err != nil {
		return err
	}
	args = append(args, o.UpdatedAt, o.ID)
	res, err := r.DB.ExecContext(ctx, `UPDATE service_orders SET
ticket_number=?, os_number=?, pat=?, status=?, opening_date=?,
responsible_opening=?, responsible_tech=?, phone=?,
client_name=?, unit=?, service_address=?,
equipment_type=?, equipment_brand=?, equipment_model=?,
equipment_serial=?, equipment_board_serial=?,
call_info=?, materials=?, technical_report=?, verifications_json=?,
total_page_count=?, pending_issues=?, next_visit=?,
equipment_replaced=?, observations=?,
updated_at=?
WHERE id=?`, args...)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r Repo) DeleteOrder(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM service_orders WHERE id=?`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
