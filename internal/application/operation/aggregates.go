package operation

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fumigacion-api/internal/application/dto"
	"github.com/jhoicas/fumigacion-api/internal/domain"
	"github.com/jhoicas/fumigacion-api/internal/domain/entity"
)

// Plazos de la garantía de desinsectación.
const (
	// WarrantyDeadlineDays máximo de días entre apertura y cierre para
	// que la operación califique.
	WarrantyDeadlineDays = 5
	// WarrantyValidityDays vigencia de la garantía desde el cierre.
	WarrantyValidityDays = 40
)

// ComputeAggregates deriva los totales de la cadena, el acumulado histórico
// por registro y el estado de garantía. Los registros rechazados quedan fuera
// de todo cálculo. Para cadenas terminadas el resultado de garantía se
// persiste sobre el registro inicial solo si difiere del almacenado, por lo
// que la llamada es idempotente.
func (uc *UseCase) ComputeAggregates(ctx context.Context, rootID string) (*dto.AggregatesResponse, error) {
	chain, err := uc.recordRepo.GetChain(rootID)
	if err != nil {
		return nil, err
	}
	if len(chain) == 0 {
		return nil, domain.ErrNotFound
	}

	var root, finalization *entity.OperationRecord
	active := make([]*entity.OperationRecord, 0, len(chain))
	for _, r := range chain {
		if r.Approval == entity.ApprovalRejected {
			continue // rechazados: fuera de los agregados, nunca del historial
		}
		active = append(active, r)
		if r.IsRoot() {
			root = r
		}
		if r.Kind == entity.KindFinalization {
			finalization = r
		}
	}
	if root == nil {
		return nil, domain.ErrNotFound
	}

	totalTons := decimal.Zero
	totalProduct := decimal.Zero
	for _, r := range active {
		if r.CountsTonnage() && r.Tons != nil {
			totalTons = totalTons.Add(*r.Tons)
		}
		if r.Kind == entity.KindProductApplication && r.ProductAmountUsed != nil {
			totalProduct = totalProduct.Add(*r.ProductAmountUsed)
		}
	}

	// Acumulado al momento de cada registro: suma de toneladas de los
	// registros no rechazados con created_at <= el del registro. Se recalcula
	// en cada lectura, nunca se persiste.
	records := make([]dto.RecordAggregate, 0, len(active))
	for _, r := range active {
		running := decimal.Zero
		for _, prev := range active {
			if prev.CountsTonnage() && prev.Tons != nil && !prev.CreatedAt.After(r.CreatedAt) {
				running = running.Add(*prev.Tons)
			}
		}
		records = append(records, dto.RecordAggregate{
			RecordID:     r.ID,
			Kind:         string(r.Kind),
			CreatedAt:    r.CreatedAt,
			Tons:         r.Tons,
			RunningTotal: running,
		})
	}

	warranty := dto.WarrantyStatus{}
	if root.State == entity.StateFinished && finalization != nil {
		warranty, err = uc.computeWarranty(root, finalization)
		if err != nil {
			return nil, err
		}
	}

	return &dto.AggregatesResponse{
		RootID:       root.ID,
		State:        string(root.State),
		TotalTons:    totalTons,
		TotalProduct: totalProduct,
		Records:      records,
		Warranty:     warranty,
	}, nil
}

// computeWarranty evalúa la garantía de una cadena terminada y persiste el
// resultado sobre el registro inicial solo cuando cambia.
func (uc *UseCase) computeWarranty(root, finalization *entity.OperationRecord) (dto.WarrantyStatus, error) {
	duration := finalization.CreatedAt.Sub(root.CreatedAt)
	meetsDeadline := duration <= WarrantyDeadlineDays*24*time.Hour

	meetsCleaning := false
	cleaning, err := uc.cleaningRepo.LatestForWarehouse(root.WarehouseID)
	if err != nil {
		return dto.WarrantyStatus{}, err
	}
	if cleaning != nil {
		meetsCleaning = !finalization.CreatedAt.After(cleaning.GuaranteeExpiry)
	}

	hasWarranty := meetsDeadline && meetsCleaning
	var expiry *time.Time
	if hasWarranty {
		e := finalization.CreatedAt.AddDate(0, 0, WarrantyValidityDays)
		expiry = &e
	}

	if root.HasWarranty != hasWarranty || !equalTime(root.WarrantyExpiry, expiry) {
		if err := uc.recordRepo.UpdateWarranty(root.ID, hasWarranty, expiry); err != nil {
			return dto.WarrantyStatus{}, err
		}
	}

	return dto.WarrantyStatus{
		Computed:       true,
		MeetsDeadline:  meetsDeadline,
		MeetsCleaning:  meetsCleaning,
		HasWarranty:    hasWarranty,
		WarrantyExpiry: expiry,
	}, nil
}

func equalTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
