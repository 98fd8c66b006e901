// Package ledger implementa el motor de stock: la única escritura de
// current_quantity del sistema y las lecturas puntuales sobre él.
package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	domledger "github.com/tu-usuario/stock-ledger/internal/domain/ledger"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

// UseCase aplica movimientos de stock de forma transaccional y expone las
// lecturas puntuales del ledger (balance actual, historial por producto).
type UseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	balanceRepo  repository.StockBalanceRepository
	movementRepo repository.StockMovementRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	balanceRepo repository.StockBalanceRepository,
	movementRepo repository.StockMovementRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		balanceRepo:  balanceRepo,
		movementRepo: movementRepo,
	}
}

// ApplyMovementInput entrada para aplicar un movimiento.
// ActorID viene ya resuelto por la capa de auth; el ledger no autoriza, solo atribuye.
type ApplyMovementInput struct {
	ProductID string
	Kind      domledger.MovementKind
	Magnitude int64
	Reason    string
	ActorID   string
}

// ApplyMovementResult balance resultante e identificador del movimiento registrado.
type ApplyMovementResult struct {
	NewQuantity int64
	MovementID  string
}

// ApplyMovement valida la entrada, verifica que el producto exista y aplica el
// movimiento dentro de una transacción:
//
//	in:  new = current + magnitude
//	out: new = current - magnitude; ErrInsufficientStock si quedaría negativo
//	set: new = magnitude
//
// La resta usa una actualización condicional atómica en la fila del balance
// (la verificación y la escritura son una sola sentencia), de modo que dos
// salidas concurrentes nunca pueden validar contra un balance obsoleto y
// dejarlo negativo. En éxito queda exactamente un StockMovement nuevo con el
// kind/magnitude/reason/actor aplicados; en fallo no queda ningún efecto.
func (uc *UseCase) ApplyMovement(ctx context.Context, input ApplyMovementInput) (*ApplyMovementResult, error) {
	if !input.Kind.IsValid() || input.Magnitude <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if strings.TrimSpace(input.Reason) == "" || input.ActorID == "" {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	movementID := uuid.New().String()
	var newQuantity int64

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		balanceRepo repository.StockBalanceRepository,
		_ repository.ProductRepository,
	) error {
		var err error
		switch input.Kind {
		case domledger.KindInbound:
			newQuantity, err = balanceRepo.Add(ctx, input.ProductID, input.Magnitude)
		case domledger.KindOutbound:
			newQuantity, err = balanceRepo.SubtractIfEnough(ctx, input.ProductID, input.Magnitude)
		case domledger.KindAbsoluteSet:
			newQuantity, err = balanceRepo.Set(ctx, input.ProductID, input.Magnitude)
		default:
			return domain.ErrInvalidInput
		}
		if err != nil {
			return err
		}
		return movRepo.Create(ctx, &entity.StockMovement{
			ID:        movementID,
			ProductID: input.ProductID,
			Kind:      input.Kind,
			Magnitude: input.Magnitude,
			Reason:    input.Reason,
			ActorID:   input.ActorID,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return &ApplyMovementResult{NewQuantity: newQuantity, MovementID: movementID}, nil
}

// GetBalance devuelve la cantidad actual de un producto. Un producto recién
// creado sin movimientos lee 0 (la fila se siembra al crear el producto);
// un producto desconocido retorna ErrNotFound.
func (uc *UseCase) GetBalance(ctx context.Context, productID string) (int64, error) {
	balance, err := uc.balanceRepo.Get(ctx, productID)
	if err != nil {
		return 0, err
	}
	if balance == nil {
		return 0, domain.ErrNotFound
	}
	return balance.Quantity, nil
}

// ListMovements historial de un producto, más reciente primero, acotado por página.
func (uc *UseCase) ListMovements(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.movementRepo.ListByProduct(ctx, productID, limit, offset)
}
