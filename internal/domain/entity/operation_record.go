package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordKind tipo cerrado para la clase de registro dentro de una operación.
type RecordKind string

const (
	KindInitial            RecordKind = "initial"             // registro raíz que inicia la cadena
	KindProductApplication RecordKind = "product_application" // aplicación de pesticida
	KindMovement           RecordKind = "movement"            // movimiento de mercadería
	KindSampling           RecordKind = "sampling"            // muestreo
	KindFinalization       RecordKind = "finalization"        // cierre de la operación
)

// Valid reporta si el kind es uno de los valores cerrados.
func (k RecordKind) Valid() bool {
	switch k {
	case KindInitial, KindProductApplication, KindMovement, KindSampling, KindFinalization:
		return true
	}
	return false
}

// RecordState estado de la cadena completa. Igual en todos los registros que
// comparten root_id; solo muta por cascada al aprobarse la finalización.
type RecordState string

const (
	StateInProgress RecordState = "in_progress"
	StateFinished   RecordState = "finished"
)

// ApprovalStatus ciclo de revisión por registro.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
	ApprovalNone     ApprovalStatus = "none" // registros que nunca pasan revisión (muestreo)
)

// Treatment régimen de dosificación.
type Treatment string

const (
	TreatmentPreventive Treatment = "preventive"
	TreatmentCurative   Treatment = "curative"
)

// Valid reporta si el tratamiento es uno de los valores cerrados.
func (t Treatment) Valid() bool {
	return t == TreatmentPreventive || t == TreatmentCurative
}

// MovementMode modalidad de un movimiento de mercadería.
type MovementMode string

const (
	ModeUnload   MovementMode = "unload"   // descarga
	ModeTransfer MovementMode = "transfer" // traslado
)

// Valid reporta si la modalidad es una de los valores cerrados.
func (m MovementMode) Valid() bool {
	return m == ModeUnload || m == ModeTransfer
}

// FumigationMethod método de fumigación del root; se copia a cada descendiente.
// Coincide con el tipo de producto que consume del stock.
type FumigationMethod string

const (
	MethodTablets FumigationMethod = "tablets" // pastillas (fosfuro de aluminio)
	MethodLiquid  FumigationMethod = "liquid"
)

// Valid reporta si el método es uno de los valores cerrados.
func (m FumigationMethod) Valid() bool {
	return m == MethodTablets || m == MethodLiquid
}

// OperationRecord un evento del ciclo de vida de una operación de fumigación.
// La cadena completa se identifica por RootID; el registro raíz cumple RootID == ID.
type OperationRecord struct {
	ID            string
	RootID        string
	Kind          RecordKind
	State         RecordState
	Approval      ApprovalStatus
	ApprovalNote  string
	ClientID      string
	WarehouseID   string
	MerchandiseID string
	OperatorName  string
	SupervisorID  *string
	Method        FumigationMethod

	Tons              *decimal.Decimal // product_application y movement
	ProductAmountUsed *decimal.Decimal // pastillas o cm³ según método; solo product_application
	Treatment         *Treatment       // solo product_application
	Mode              *MovementMode    // solo movement
	AttachmentURL     string           // URL opaca del colaborador de archivos (movement/sampling)

	// Garantía: se fija solo sobre el registro inicial cuando la cadena termina.
	HasWarranty    bool
	WarrantyExpiry *time.Time

	CreatedAt time.Time
}

// IsRoot reporta si el registro es el inicial de su cadena.
func (r *OperationRecord) IsRoot() bool {
	return r.Kind == KindInitial && r.RootID == r.ID
}

// CountsTonnage reporta si el registro aporta toneladas a los agregados.
func (r *OperationRecord) CountsTonnage() bool {
	return r.Kind == KindProductApplication || r.Kind == KindMovement
}
