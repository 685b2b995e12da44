package operation

import (
	"context"

	"github.com/jhoicas/fumigacion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el débito de stock, el
// movimiento de consumo y el registro de operación se escriban como una
// sola unidad, y que las cascadas de aprobación sean atómicas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		recordRepo repository.OperationRecordRepository,
		balanceRepo repository.StockBalanceRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}

// Actor identidad del usuario que ejecuta la acción (provista por el JWT).
type Actor struct {
	UserID    string
	Name      string
	Role      string // entity.RoleOperador | RoleSupervisor | RoleAdmin
	ClientIDs []string
}

// CanOperateClient reporta si el actor puede trabajar sobre el cliente.
// Los fumigadores pueden tener una lista acotada de clientes asignados.
func (a Actor) CanOperateClient(clientID string) bool {
	if len(a.ClientIDs) == 0 {
		return true
	}
	for _, id := range a.ClientIDs {
		if id == clientID {
			return true
		}
	}
	return false
}
