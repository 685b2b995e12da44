package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fumigacion-api/internal/domain"
	"github.com/jhoicas/fumigacion-api/internal/domain/entity"
	"github.com/jhoicas/fumigacion-api/internal/domain/repository"
)

var _ repository.OperationRecordRepository = (*OperationRecordRepo)(nil)

// OperationRecordRepo implementación sobre PostgreSQL (usable con pool o tx).
type OperationRecordRepo struct {
	q Querier
}

// NewOperationRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOperationRecordRepository(q Querier) *OperationRecordRepo {
	return &OperationRecordRepo{q: q}
}

const recordColumns = `id, root_id, kind, state, approval, approval_note, client_id, warehouse_id,
	merchandise_id, operator_name, supervisor_id, method, tons, product_amount_used,
	treatment, mode, attachment_url, has_warranty, warranty_expiry, created_at`

// Create persiste un registro de operación.
func (r *OperationRecordRepo) Create(record *entity.OperationRecord) error {
	query := `
		INSERT INTO operation_records (` + recordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	var treatment, mode *string
	if record.Treatment != nil {
		s := string(*record.Treatment)
		treatment = &s
	}
	if record.Mode != nil {
		s := string(*record.Mode)
		mode = &s
	}
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.RootID, string(record.Kind), string(record.State),
		string(record.Approval), record.ApprovalNote, record.ClientID, record.WarehouseID,
		record.MerchandiseID, record.OperatorName, record.SupervisorID, string(record.Method),
		record.Tons, record.ProductAmountUsed, treatment, mode, record.AttachmentURL,
		record.HasWarranty, record.WarrantyExpiry, record.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create operation record: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por ID; nil si no existe.
func (r *OperationRecordRepo) GetByID(id string) (*entity.OperationRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM operation_records WHERE id = $1`
	rec, err := scanRecord(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get operation record: %w", err)
	}
	return rec, nil
}

// GetChain devuelve la cadena completa ordenada por created_at ascendente,
// la línea de tiempo canónica de la operación.
func (r *OperationRecordRepo) GetChain(rootID string) ([]*entity.OperationRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM operation_records
		WHERE id = $1 OR root_id = $1
		ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, rootID)
	if err != nil {
		return nil, fmt.Errorf("get chain: %w", err)
	}
	defer rows.Close()

	var out []*entity.OperationRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan operation record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ActiveRootForWarehouse devuelve el inicial en curso del depósito, o nil.
func (r *OperationRecordRepo) ActiveRootForWarehouse(warehouseID string) (*entity.OperationRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM operation_records
		WHERE warehouse_id = $1 AND kind = 'initial' AND state = 'in_progress'
		LIMIT 1`
	rec, err := scanRecord(r.q.QueryRow(context.Background(), query, warehouseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("active root for warehouse: %w", err)
	}
	return rec, nil
}

// ListRoots lista los registros iniciales, el más reciente primero.
func (r *OperationRecordRepo) ListRoots(limit, offset int) ([]*entity.OperationRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM operation_records
		WHERE kind = 'initial'
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list roots: %w", err)
	}
	defer rows.Close()

	var out []*entity.OperationRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan operation record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// UpdateApproval cambia el estado de revisión de un registro.
func (r *OperationRecordRepo) UpdateApproval(id string, status entity.ApprovalStatus, note string, supervisorID *string) error {
	query := `
		UPDATE operation_records
		SET approval = $2, approval_note = $3, supervisor_id = $4
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, string(status), note, supervisorID)
	if err != nil {
		return fmt.Errorf("update approval: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FinishChain marca state = finished en todos los registros de la cadena.
func (r *OperationRecordRepo) FinishChain(rootID string) error {
	query := `UPDATE operation_records SET state = 'finished' WHERE id = $1 OR root_id = $1`
	if _, err := r.q.Exec(context.Background(), query, rootID); err != nil {
		return fmt.Errorf("finish chain: %w", err)
	}
	return nil
}

// ApprovePendingInChain aprueba con nota automática todo pendiente de la
// cadena, salvo exceptID.
func (r *OperationRecordRepo) ApprovePendingInChain(rootID, exceptID, note string, supervisorID *string) error {
	query := `
		UPDATE operation_records
		SET approval = 'approved', approval_note = $3, supervisor_id = $4
		WHERE (id = $1 OR root_id = $1) AND approval = 'pending' AND id <> $2`
	if _, err := r.q.Exec(context.Background(), query, rootID, exceptID, note, supervisorID); err != nil {
		return fmt.Errorf("approve pending in chain: %w", err)
	}
	return nil
}

// UpdateWarranty fija el resultado de garantía sobre el registro inicial.
func (r *OperationRecordRepo) UpdateWarranty(id string, hasWarranty bool, expiry *time.Time) error {
	query := `UPDATE operation_records SET has_warranty = $2, warranty_expiry = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, hasWarranty, expiry)
	if err != nil {
		return fmt.Errorf("update warranty: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanRecord(row pgx.Row) (*entity.OperationRecord, error) {
	var rec entity.OperationRecord
	var kind, state, approval, method string
	var treatment, mode *string
	err := row.Scan(
		&rec.ID, &rec.RootID, &kind, &state, &approval, &rec.ApprovalNote,
		&rec.ClientID, &rec.WarehouseID, &rec.MerchandiseID, &rec.OperatorName,
		&rec.SupervisorID, &method, &rec.Tons, &rec.ProductAmountUsed,
		&treatment, &mode, &rec.AttachmentURL, &rec.HasWarranty, &rec.WarrantyExpiry, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.Kind = entity.RecordKind(kind)
	rec.State = entity.RecordState(state)
	rec.Approval = entity.ApprovalStatus(approval)
	rec.Method = entity.FumigationMethod(method)
	if treatment != nil {
		t := entity.Treatment(*treatment)
		rec.Treatment = &t
	}
	if mode != nil {
		m := entity.MovementMode(*mode)
		rec.Mode = &m
	}
	return &rec, nil
}
