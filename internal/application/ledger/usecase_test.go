package ledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	appledger "github.com/tu-usuario/stock-ledger/internal/application/ledger"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	domledger "github.com/tu-usuario/stock-ledger/internal/domain/ledger"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memStore reproduce las garantías del adaptador real: las mutaciones del
// balance son atómicas (verificación y escritura bajo el mismo lock) y el
// TxRunner serializa transacciones con rollback por snapshot si el callback
// falla.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	balances  map[string]int64
	movements []*entity.StockMovement
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[string]*entity.Product),
		balances: make(map[string]int64),
	}
}

// seedProduct crea producto + fila de balance, como hace ProductUseCase.Create.
func (s *memStore) seedProduct(id string, minLevel, quantity int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[id] = &entity.Product{ID: id, SKU: "SKU-" + id, Name: "producto " + id, MinStockLevel: minLevel}
	s.balances[id] = quantity
}

type memBalanceRepo struct{ s *memStore }

func (r *memBalanceRepo) Get(_ context.Context, productID string) (*entity.StockBalance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.balances[productID]
	if !ok {
		return nil, nil
	}
	return &entity.StockBalance{ProductID: productID, Quantity: q}, nil
}

func (r *memBalanceRepo) GetMany(_ context.Context, productIDs []string) (map[string]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[string]int64)
	for _, id := range productIDs {
		if q, ok := r.s.balances[id]; ok {
			out[id] = q
		}
	}
	return out, nil
}

func (r *memBalanceRepo) Init(_ context.Context, productID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.balances[productID]; !ok {
		r.s.balances[productID] = 0
	}
	return nil
}

func (r *memBalanceRepo) Add(_ context.Context, productID string, delta int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.balances[productID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	q += delta
	r.s.balances[productID] = q
	return q, nil
}

// SubtractIfEnough verifica y resta bajo el mismo lock, igual que el UPDATE
// condicional del adaptador real.
func (r *memBalanceRepo) SubtractIfEnough(_ context.Context, productID string, delta int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.balances[productID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if q < delta {
		return 0, domain.ErrInsufficientStock
	}
	q -= delta
	r.s.balances[productID] = q
	return q, nil
}

func (r *memBalanceRepo) Set(_ context.Context, productID string, target int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.balances[productID]; !ok {
		return 0, domain.ErrNotFound
	}
	r.s.balances[productID] = target
	return target, nil
}

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *memMovementRepo) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.StockMovement
	for i := len(r.s.movements) - 1; i >= 0; i-- { // más reciente primero
		if r.s.movements[i].ProductID == productID {
			all = append(all, r.s.movements[i])
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *memMovementRepo) ListByDateRange(_ context.Context, _, _ *time.Time, _, _ int) ([]*entity.StockMovement, error) {
	return nil, nil
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[p.ID] = p
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.products[id], nil
}

func (r *memProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[p.ID] = p
	return nil
}

func (r *memProductRepo) List(_ context.Context, _, _ int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *memProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.products, id)
	return nil
}

// memTxRunner serializa las transacciones y revierte por snapshot si fn falla.
type memTxRunner struct {
	s  *memStore
	mu sync.Mutex
}

func (t *memTxRunner) Run(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	balanceRepo repository.StockBalanceRepository,
	productRepo repository.ProductRepository,
) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.s.mu.Lock()
	snapshot := make(map[string]int64, len(t.s.balances))
	for k, v := range t.s.balances {
		snapshot[k] = v
	}
	nMovements := len(t.s.movements)
	t.s.mu.Unlock()

	err := fn(&memMovementRepo{t.s}, &memBalanceRepo{t.s}, &memProductRepo{t.s})
	if err != nil {
		t.s.mu.Lock()
		t.s.balances = snapshot
		t.s.movements = t.s.movements[:nMovements]
		t.s.mu.Unlock()
	}
	return err
}

func newTestUseCase() (*appledger.UseCase, *memStore) {
	s := newMemStore()
	uc := appledger.NewUseCase(&memTxRunner{s: s}, &memProductRepo{s}, &memBalanceRepo{s}, &memMovementRepo{s})
	return uc, s
}

const testActor = "00000000-0000-0000-0000-0000000000aa"

func apply(uc *appledger.UseCase, productID string, kind domledger.MovementKind, magnitude int64) (*appledger.ApplyMovementResult, error) {
	return uc.ApplyMovement(context.Background(), appledger.ApplyMovementInput{
		ProductID: productID,
		Kind:      kind,
		Magnitude: magnitude,
		Reason:    "test",
		ActorID:   testActor,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de entrada
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_EntradaInvalida(t *testing.T) {
	uc, s := newTestUseCase()
	s.seedProduct("p1", 5, 10)

	cases := []struct {
		name  string
		input appledger.ApplyMovementInput
	}{
		{"magnitud cero", appledger.ApplyMovementInput{ProductID: "p1", Kind: domledger.KindInbound, Magnitude: 0, Reason: "x", ActorID: testActor}},
		{"magnitud negativa", appledger.ApplyMovementInput{ProductID: "p1", Kind: domledger.KindOutbound, Magnitude: -3, Reason: "x", ActorID: testActor}},
		{"tipo desconocido", appledger.ApplyMovementInput{ProductID: "p1", Kind: "adjustment", Magnitude: 1, Reason: "x", ActorID: testActor}},
		{"razón vacía", appledger.ApplyMovementInput{ProductID: "p1", Kind: domledger.KindInbound, Magnitude: 1, Reason: "   ", ActorID: testActor}},
		{"sin actor", appledger.ApplyMovementInput{ProductID: "p1", Kind: domledger.KindInbound, Magnitude: 1, Reason: "x", ActorID: ""}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.ApplyMovement(context.Background(), tc.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	// Nada de lo anterior debe haber tocado el estado.
	q, err := uc.GetBalance(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), q, "las entradas inválidas no deben mutar el balance")
	assert.Empty(t, s.movements, "las entradas inválidas no deben registrar movimientos")
}

func TestApplyMovement_ProductoInexistente(t *testing.T) {
	uc, _ := newTestUseCase()
	_, err := apply(uc, "no-existe", domledger.KindInbound, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Semántica de los tres tipos de movimiento
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_EntradaSumaYRegistra(t *testing.T) {
	uc, s := newTestUseCase()
	s.seedProduct("p1", 5, 10)

	result, err := apply(uc, "p1", domledger.KindInbound, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(17), result.NewQuantity)
	assert.NotEmpty(t, result.MovementID)

	q, err := uc.GetBalance(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(17), q)

	require.Len(t, s.movements, 1, "un éxito registra exactamente un movimiento")
	m := s.movements[0]
	assert.Equal(t, result.MovementID, m.ID)
	assert.Equal(t, domledger.KindInbound, m.Kind)
	assert.Equal(t, int64(7), m.Magnitude)
	assert.Equal(t, testActor, m.ActorID)
}

func TestApplyMovement_SalidaResta(t *testing.T) {
	uc, s := newTestUseCase()
	s.seedProduct("p1", 5, 10)

	result, err := apply(uc, "p1", domledger.KindOutbound, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(6), result.NewQuantity)
}

// La salida puede dejar el balance exactamente en 0; solo quedar negativo es error.
func TestApplyMovement_SalidaHastaCeroEsValida(t *testing.T) {
	uc, s := newTestUseCase()
	s.seedProduct("p1", 5, 10)

	result, err := apply(uc, "p1", domledger.KindOutbound, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.NewQuantity)
}

func TestApplyMovement_SalidaSinFondos_NoDejaEfectos(t *testing.T) {
	uc, s := newTestUseCase()
	s.seedProduct("p1", 5, 5)

	_, err := apply(uc, "p1", domledger.KindOutbound, 10)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El rechazo no deja rastro: mismo balance, cero movimientos.
	q, getErr := uc.GetBalance(context.Background(), "p1")
	require.NoError(t, getErr)
	assert.Equal(t, int64(5), q, "el balance no debe cambiar tras un rechazo")
	assert.Empty(t, s.movements, "un rechazo no debe registrar movimiento")
}

func TestApplyMovement_SetFijaValorAbsoluto(t *testing.T) {
	uc, s := newTestUseCase()
	s.seedProduct("p1", 5, 123)

	// set ignora el valor previo: sirve para corregir tras un conteo físico.
	result, err := apply(uc, "p1", domledger.KindAbsoluteSet, 40)
	require.NoError(t, err)
	assert.Equal(t, int64(40), result.NewQuantity)

	require.Len(t, s.movements, 1)
	assert.Equal(t, domledger.KindAbsoluteSet, s.movements[0].Kind)
	assert.Equal(t, int64(40), s.movements[0].Magnitude, "set registra el valor objetivo, no el delta")
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariantes del ledger
// ──────────────────────────────────────────────────────────────────────────────

// replay reconstruye el balance desde cero aplicando el historial en orden.
func replay(movements []*entity.StockMovement, productID string) int64 {
	var q int64
	for _, m := range movements {
		if m.ProductID != productID {
			continue
		}
		switch m.Kind {
		case domledger.KindInbound:
			q += m.Magnitude
		case domledger.KindOutbound:
			q -= m.Magnitude
		case domledger.KindAbsoluteSet:
			q = m.Magnitude
		}
	}
	return q
}

// El balance almacenado siempre coincide con reproducir el historial desde 0.
func TestApplyMovement_InvarianteDeReplay(t *testing.T) {
	uc, s := newTestUseCase()
	s.seedProduct("p1", 5, 0)

	sequence := []struct {
		kind      domledger.MovementKind
		magnitude int64
	}{
		{domledger.KindInbound, 100},
		{domledger.KindOutbound, 30},
		{domledger.KindInbound, 7},
		{domledger.KindAbsoluteSet, 50},
		{domledger.KindOutbound, 50},
		{domledger.KindInbound, 12},
	}
	for _, step := range sequence {
		_, err := apply(uc, "p1", step.kind, step.magnitude)
		require.NoError(t, err)
	}

	q, err := uc.GetBalance(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, replay(s.movements, "p1"), q,
		"reproducir el historial desde cero debe dar el balance almacenado")
	assert.Len(t, s.movements, len(sequence), "un movimiento registrado por cada éxito")
}

// Los rechazos intercalados no rompen el invariante de replay.
func TestApplyMovement_RechazosNoRompenReplay(t *testing.T) {
	uc, s := newTestUseCase()
	s.seedProduct("p1", 5, 0)

	_, err := apply(uc, "p1", domledger.KindInbound, 10)
	require.NoError(t, err)

	_, err = apply(uc, "p1", domledger.KindOutbound, 25) // rechazado
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = apply(uc, "p1", domledger.KindOutbound, 4)
	require.NoError(t, err)

	q, err := uc.GetBalance(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(6), q)
	assert.Equal(t, replay(s.movements, "p1"), q)
	assert.Len(t, s.movements, 2, "solo los éxitos aparecen en el historial")
}

// Dos salidas concurrentes por el total del balance: exactamente una gana.
func TestApplyMovement_CarreraDeSalidas_SoloUnaGana(t *testing.T) {
	uc, s := newTestUseCase()
	s.seedProduct("p1", 5, 10)

	const workers = 2
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := apply(uc, "p1", domledger.KindOutbound, 10)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, insufficient int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok, "exactamente una salida debe tener éxito")
	assert.Equal(t, 1, insufficient, "la otra debe rechazarse por fondos insuficientes")

	q, err := uc.GetBalance(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), q, "el balance nunca queda negativo")
	assert.Len(t, s.movements, 1, "solo el éxito registra movimiento")
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas del ledger
// ──────────────────────────────────────────────────────────────────────────────

func TestGetBalance_ProductoNuevoLeeCero(t *testing.T) {
	uc, s := newTestUseCase()
	s.seedProduct("p1", 5, 0)

	q, err := uc.GetBalance(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), q, "un producto sin movimientos lee 0, no error")
}

func TestGetBalance_ProductoDesconocido(t *testing.T) {
	uc, _ := newTestUseCase()
	_, err := uc.GetBalance(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListMovements_MasRecientePrimero(t *testing.T) {
	uc, s := newTestUseCase()
	s.seedProduct("p1", 5, 0)
	s.seedProduct("p2", 5, 0)

	_, err := apply(uc, "p1", domledger.KindInbound, 1)
	require.NoError(t, err)
	_, err = apply(uc, "p2", domledger.KindInbound, 99)
	require.NoError(t, err)
	_, err = apply(uc, "p1", domledger.KindInbound, 2)
	require.NoError(t, err)

	movements, err := uc.ListMovements(context.Background(), "p1", 10, 0)
	require.NoError(t, err)
	require.Len(t, movements, 2, "solo los movimientos de p1")
	assert.Equal(t, int64(2), movements[0].Magnitude, "el más reciente primero")
	assert.Equal(t, int64(1), movements[1].Magnitude)
}

func TestListMovements_ProductoDesconocido(t *testing.T) {
	uc, _ := newTestUseCase()
	_, err := uc.ListMovements(context.Background(), "no-existe", 10, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Adaptador de request HTTP
// ──────────────────────────────────────────────────────────────────────────────

func dtoApplyRequest(productID, kind string, quantity int64) dto.ApplyMovementRequest {
	return dto.ApplyMovementRequest{
		ProductID: productID,
		Type:      kind,
		Quantity:  quantity,
		Reason:    "test",
	}
}

func TestApplyFromRequest_TipoInvalido(t *testing.T) {
	uc, s := newTestUseCase()
	s.seedProduct("p1", 5, 10)

	_, err := uc.ApplyFromRequest(context.Background(), testActor, dtoApplyRequest("p1", "adjustment", 3))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyFromRequest_AplicaYDevuelveDTO(t *testing.T) {
	uc, s := newTestUseCase()
	s.seedProduct("p1", 5, 10)

	resp, err := uc.ApplyFromRequest(context.Background(), testActor, dtoApplyRequest("p1", "out", 3))
	require.NoError(t, err)
	assert.Equal(t, "p1", resp.ProductID)
	assert.Equal(t, int64(7), resp.NewQuantity)
	assert.NotEmpty(t, resp.MovementID)
}
