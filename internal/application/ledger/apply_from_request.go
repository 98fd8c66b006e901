package ledger

import (
	"context"

	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	domledger "github.com/tu-usuario/stock-ledger/internal/domain/ledger"
)

// ApplyFromRequest adapta el request HTTP al caso de uso ApplyMovement(ctx, input).
// actorID sale del token ya validado por el middleware; nunca del body.
func (uc *UseCase) ApplyFromRequest(ctx context.Context, actorID string, in dto.ApplyMovementRequest) (*dto.ApplyMovementResponse, error) {
	kind, err := domledger.ParseMovementKind(in.Type)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	result, err := uc.ApplyMovement(ctx, ApplyMovementInput{
		ProductID: in.ProductID,
		Kind:      kind,
		Magnitude: in.Quantity,
		Reason:    in.Reason,
		ActorID:   actorID,
	})
	if err != nil {
		return nil, err
	}
	return &dto.ApplyMovementResponse{
		MovementID:  result.MovementID,
		ProductID:   in.ProductID,
		NewQuantity: result.NewQuantity,
	}, nil
}
