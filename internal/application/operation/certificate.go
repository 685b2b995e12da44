package operation

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fumigacion-api/internal/domain"
	"github.com/jhoicas/fumigacion-api/internal/domain/entity"
)

// CertificateData datos ya resueltos para la constancia de fumigación.
type CertificateData struct {
	OperationID     string
	ClientName      string
	WarehouseName   string
	MerchandiseName string
	Method          entity.FumigationMethod
	OperatorName    string
	StartedAt       time.Time
	FinishedAt      time.Time
	TotalTons       decimal.Decimal
	TotalProduct    decimal.Decimal
	HasWarranty     bool
	WarrantyExpiry  *time.Time
	Events          []CertificateEvent
}

// CertificateEvent una línea del detalle de la constancia.
type CertificateEvent struct {
	Kind      entity.RecordKind
	CreatedAt time.Time
	Tons      *decimal.Decimal
}

// CertificatePDFGenerator puerto hacia el generador de PDF.
type CertificatePDFGenerator interface {
	GenerateCertificate(ctx context.Context, data CertificateData) ([]byte, error)
}

// Certificate arma la constancia de una operación terminada y delega el PDF.
// Solo las cadenas cerradas emiten constancia.
func (uc *UseCase) Certificate(ctx context.Context, gen CertificatePDFGenerator, rootID string) ([]byte, error) {
	root, err := uc.resolveRoot(rootID)
	if err != nil {
		return nil, err
	}
	if root.State != entity.StateFinished {
		return nil, domain.ErrConflict
	}

	agg, err := uc.ComputeAggregates(ctx, rootID)
	if err != nil {
		return nil, err
	}
	chain, err := uc.recordRepo.GetChain(rootID)
	if err != nil {
		return nil, err
	}

	data := CertificateData{
		OperationID:    root.ID,
		Method:         root.Method,
		OperatorName:   root.OperatorName,
		StartedAt:      root.CreatedAt,
		TotalTons:      agg.TotalTons,
		TotalProduct:   agg.TotalProduct,
		HasWarranty:    agg.Warranty.HasWarranty,
		WarrantyExpiry: agg.Warranty.WarrantyExpiry,
	}
	for _, r := range chain {
		if r.Approval == entity.ApprovalRejected {
			continue
		}
		if r.Kind == entity.KindFinalization {
			data.FinishedAt = r.CreatedAt
		}
		data.Events = append(data.Events, CertificateEvent{Kind: r.Kind, CreatedAt: r.CreatedAt, Tons: r.Tons})
	}

	if wh, err := uc.warehouseRepo.GetByID(root.WarehouseID); err == nil && wh != nil {
		data.WarehouseName = wh.Name
	}
	if cl, err := uc.clientRepo.GetByID(root.ClientID); err == nil && cl != nil {
		data.ClientName = cl.Name
	}
	if me, err := uc.merchandiseRepo.GetByID(root.MerchandiseID); err == nil && me != nil {
		data.MerchandiseName = me.Name
	}

	return gen.GenerateCertificate(ctx, data)
}
