package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	appledger "github.com/tu-usuario/stock-ledger/internal/application/ledger"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/ledger"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. La cantidad en existencia
// nunca se edita por aquí: nace en 0 junto con el producto y solo cambia vía
// movimientos del ledger.
type ProductUseCase struct {
	txRunner    appledger.TxRunner
	productRepo repository.ProductRepository
	balanceRepo repository.StockBalanceRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	txRunner appledger.TxRunner,
	productRepo repository.ProductRepository,
	balanceRepo repository.StockBalanceRepository,
) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, productRepo: productRepo, balanceRepo: balanceRepo}
}

// Create crea un producto y siembra su fila de balance en 0, en la misma transacción.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if strings.TrimSpace(in.SKU) == "" || strings.TrimSpace(in.Name) == "" || in.MinStockLevel < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.productRepo.GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		SKU:           in.SKU,
		Name:          in.Name,
		Description:   in.Description,
		CategoryID:    in.CategoryID,
		Price:         in.Price,
		Cost:          in.Cost,
		MinStockLevel: in.MinStockLevel,
		Status:        entity.ProductStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err = uc.txRunner.Run(ctx, func(
		_ repository.StockMovementRepository,
		balanceRepo repository.StockBalanceRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		return balanceRepo.Init(ctx, product.ID)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, 0), nil
}

// GetByID obtiene un producto con su existencia actual.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	quantity := int64(0)
	if balance, err := uc.balanceRepo.Get(ctx, id); err != nil {
		return nil, err
	} else if balance != nil {
		quantity = balance.Quantity
	}
	return toProductResponse(product, quantity), nil
}

// Update actualiza atributos descriptivos. No permite tocar la cantidad.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Cost != nil {
		product.Cost = *in.Cost
	}
	if in.MinStockLevel != nil {
		if *in.MinStockLevel < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.MinStockLevel = *in.MinStockLevel
	}
	if in.Status != nil {
		switch *in.Status {
		case entity.ProductStatusActive, entity.ProductStatusInactive, entity.ProductStatusDiscontinued:
			product.Status = *in.Status
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// List lista productos con paginación y existencias resueltas en una sola consulta extra.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.productRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(list))
	for _, p := range list {
		ids = append(ids, p.ID)
	}
	quantities, err := uc.balanceRepo.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p, quantities[p.ID]))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto. La FK de movimientos lo bloquea si ya tiene
// historial (el historial es inmutable).
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.Delete(ctx, id)
}

func toProductResponse(p *entity.Product, quantity int64) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		CategoryID:    p.CategoryID,
		Price:         p.Price,
		Cost:          p.Cost,
		MinStockLevel: p.MinStockLevel,
		Status:        p.Status,
		Quantity:      quantity,
		StockStatus:   string(ledger.StockStatus(quantity, p.MinStockLevel)),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
