package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pawmarket/petstore-api/internal/core/domain"
	"github.com/pawmarket/petstore-api/internal/core/ports"
)

// --- Stubs ---

// passthroughTx runs the function directly; the conditional updates in the
// stubs below provide the same all-or-nothing guarantees the real
// transaction does for these scenarios.
type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubProductRepo struct {
	products map[string]*domain.Product
}

func newStubProductRepo(products ...*domain.Product) *stubProductRepo {
	r := &stubProductRepo{products: make(map[string]*domain.Product)}
	for _, p := range products {
		clone := *p
		r.products[p.ID] = &clone
	}
	return r
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) error {
	clone := *p
	r.products[p.ID] = &clone
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) List(_ context.Context) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	clone := *p
	r.products[p.ID] = &clone
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) ReserveStock(_ context.Context, id string, qty int) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	if p.Stock < qty {
		return domain.ErrInsufficientStock
	}
	p.Stock -= qty
	return nil
}

func (r *stubProductRepo) ReleaseStock(_ context.Context, id string, qty int) error {
	if p, ok := r.products[id]; ok {
		p.Stock += qty
		p.OwnerID = ""
	}
	return nil
}

func (r *stubProductRepo) SetOwner(_ context.Context, id string, ownerID string) error {
	if p, ok := r.products[id]; ok {
		p.OwnerID = ownerID
	}
	return nil
}

func (r *stubProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

type stubPetRepo struct {
	pets map[string]*domain.Pet
}

func newStubPetRepo(pets ...*domain.Pet) *stubPetRepo {
	r := &stubPetRepo{pets: make(map[string]*domain.Pet)}
	for _, p := range pets {
		clone := *p
		r.pets[p.ID] = &clone
	}
	return r
}

func (r *stubPetRepo) Create(_ context.Context, p *domain.Pet) error {
	clone := *p
	r.pets[p.ID] = &clone
	return nil
}

func (r *stubPetRepo) FindByID(_ context.Context, id string) (*domain.Pet, error) {
	p, ok := r.pets[id]
	if !ok {
		return nil, domain.ErrPetNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPetRepo) List(_ context.Context) ([]*domain.Pet, error) {
	out := make([]*domain.Pet, 0, len(r.pets))
	for _, p := range r.pets {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubPetRepo) Update(_ context.Context, p *domain.Pet) error {
	if _, ok := r.pets[p.ID]; !ok {
		return domain.ErrPetNotFound
	}
	clone := *p
	r.pets[p.ID] = &clone
	return nil
}

func (r *stubPetRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.pets[id]; !ok {
		return domain.ErrPetNotFound
	}
	delete(r.pets, id)
	return nil
}

func (r *stubPetRepo) Reserve(_ context.Context, id string) error {
	p, ok := r.pets[id]
	if !ok {
		return domain.ErrPetNotFound
	}
	if p.Status != domain.PetAvailable {
		return domain.ErrPetUnavailable
	}
	p.Status = domain.PetReserved
	return nil
}

func (r *stubPetRepo) Release(_ context.Context, id string) error {
	if p, ok := r.pets[id]; ok {
		p.Status = domain.PetAvailable
		p.OwnerID = ""
	}
	return nil
}

func (r *stubPetRepo) MarkSold(_ context.Context, id string, ownerID string) error {
	p, ok := r.pets[id]
	if !ok {
		return domain.ErrPetNotFound
	}
	p.Status = domain.PetSold
	p.OwnerID = ownerID
	return nil
}

func (r *stubPetRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.pets)), nil
}

type stubOrderRepo struct {
	orders map[string]*domain.Order
}

func newStubOrderRepo(orders ...*domain.Order) *stubOrderRepo {
	r := &stubOrderRepo{orders: make(map[string]*domain.Order)}
	for _, o := range orders {
		clone := *o
		r.orders[o.ID] = &clone
	}
	return r
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) error {
	clone := *o
	r.orders[o.ID] = &clone
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) FindByIdempotencyKey(_ context.Context, key, clientID string) (*domain.Order, error) {
	for _, o := range r.orders {
		if o.IdempotencyKey == key && o.ClientID == clientID {
			clone := *o
			return &clone, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *stubOrderRepo) List(_ context.Context) ([]*domain.Order, error) {
	out := make([]*domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		clone := *o
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubOrderRepo) ListByClient(_ context.Context, clientID string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range r.orders {
		if o.ClientID == clientID {
			clone := *o
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) ListBySeller(_ context.Context, sellerID string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range r.orders {
		if o.HasSeller(sellerID) {
			clone := *o
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id string, from, to domain.OrderStatus, ts time.Time, actorID string) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if o.Status != from {
		return fmt.Errorf("%w (expected status %s)", domain.ErrInvalidTransition, from)
	}
	o.Status = to
	o.StatusHistory = append(o.StatusHistory, domain.OrderStatusEntry{Status: to, Timestamp: ts, ActorID: actorID})
	return nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id string, current domain.OrderStatus) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if o.Status != current {
		return domain.ErrOrderConflict
	}
	delete(r.orders, id)
	return nil
}

func (r *stubOrderRepo) CountByStatus(_ context.Context) (map[domain.OrderStatus]int64, error) {
	counts := make(map[domain.OrderStatus]int64)
	for _, o := range r.orders {
		counts[o.Status]++
	}
	return counts, nil
}

// staleReadOrderRepo serves every read from a snapshot taken before a
// concurrent writer moved the order, modeling a racing transition that
// validated against a state that no longer holds.
type staleReadOrderRepo struct {
	*stubOrderRepo
	stale *domain.Order
}

func (r *staleReadOrderRepo) FindByID(_ context.Context, _ string) (*domain.Order, error) {
	clone := *r.stale
	return &clone, nil
}

// snapshotTx copies repository state before the function runs and restores
// it when the function fails, the way an aborted transaction would.
type snapshotTx struct {
	products *stubProductRepo
	pets     *stubPetRepo
	orders   *stubOrderRepo
}

func (s snapshotTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	products := make(map[string]*domain.Product, len(s.products.products))
	for id, p := range s.products.products {
		clone := *p
		products[id] = &clone
	}
	pets := make(map[string]*domain.Pet, len(s.pets.pets))
	for id, p := range s.pets.pets {
		clone := *p
		pets[id] = &clone
	}
	orders := make(map[string]*domain.Order, len(s.orders.orders))
	for id, o := range s.orders.orders {
		clone := *o
		orders[id] = &clone
	}

	if err := fn(ctx); err != nil {
		s.products.products = products
		s.pets.pets = pets
		s.orders.orders = orders
		return err
	}
	return nil
}

// --- Fixtures ---

func clientCaller(id string) domain.CallerContext {
	return domain.CallerContext{UserID: id, Role: domain.RoleClient, Permissions: domain.PermissionsFor(domain.RoleClient)}
}

func sellerCaller(id string) domain.CallerContext {
	return domain.CallerContext{UserID: id, Role: domain.RoleSeller, Permissions: domain.PermissionsFor(domain.RoleSeller)}
}

func adminCaller(id string) domain.CallerContext {
	return domain.CallerContext{UserID: id, Role: domain.RoleAdmin, Permissions: domain.PermissionsFor(domain.RoleAdmin)}
}

func newOrderService(orders *stubOrderRepo, products *stubProductRepo, pets *stubPetRepo) *OrderService {
	return NewOrderService(orders, products, pets, passthroughTx{}, zerolog.Nop())
}

func dogFood() *domain.Product {
	return &domain.Product{ID: "p1", Name: "Dog Food", Price: 10, Stock: 5, SellerID: "s1"}
}

func rex() *domain.Pet {
	return &domain.Pet{ID: "pet1", Name: "Rex", Species: "dog", Price: 100, Status: domain.PetAvailable, SellerID: "s2"}
}

// --- Tests ---

func TestOrderService_Create_ComputesTotalAndReserves(t *testing.T) {
	products := newStubProductRepo(dogFood())
	pets := newStubPetRepo(rex())
	orders := newStubOrderRepo()
	svc := newOrderService(orders, products, pets)

	order, err := svc.Create(context.Background(), clientCaller("c1"), ports.CreateOrderInput{
		Products: []ports.ProductOrderItem{{ProductID: "p1", Quantity: 2}},
		PetIDs:   []string{"pet1"},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if order.TotalAmount != 120 {
		t.Fatalf("expected total 120, got %v", order.TotalAmount)
	}
	if order.Status != domain.StatusPending {
		t.Fatalf("expected pending status, got %s", order.Status)
	}
	if len(order.StatusHistory) != 1 || order.StatusHistory[0].Status != domain.StatusPending {
		t.Fatalf("expected initial history entry, got %+v", order.StatusHistory)
	}

	p, _ := products.FindByID(context.Background(), "p1")
	if p.Stock != 3 {
		t.Fatalf("expected stock 3 after reservation, got %d", p.Stock)
	}
	pet, _ := pets.FindByID(context.Background(), "pet1")
	if pet.Status != domain.PetReserved {
		t.Fatalf("expected pet reserved, got %s", pet.Status)
	}

	if !order.HasSeller("s1") || !order.HasSeller("s2") {
		t.Fatalf("expected both sellers recorded, got %v", order.SellerIDs)
	}
}

func TestOrderService_Create_SnapshotsPrices(t *testing.T) {
	products := newStubProductRepo(dogFood())
	pets := newStubPetRepo()
	orders := newStubOrderRepo()
	svc := newOrderService(orders, products, pets)

	order, err := svc.Create(context.Background(), clientCaller("c1"), ports.CreateOrderInput{
		Products: []ports.ProductOrderItem{{ProductID: "p1", Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// Edit the listing after the order is placed; the order keeps the
	// price it was sold at.
	p, _ := products.FindByID(context.Background(), "p1")
	p.Price = 999
	_ = products.Update(context.Background(), p)

	stored, _ := orders.FindByID(context.Background(), order.ID)
	if stored.Products[0].UnitPrice != 10 {
		t.Fatalf("expected snapshotted unit price 10, got %v", stored.Products[0].UnitPrice)
	}
	if stored.TotalAmount != 10 {
		t.Fatalf("expected total 10, got %v", stored.TotalAmount)
	}
}

func TestOrderService_Create_InsufficientStock(t *testing.T) {
	products := newStubProductRepo(dogFood())
	svc := newOrderService(newStubOrderRepo(), products, newStubPetRepo())

	_, err := svc.Create(context.Background(), clientCaller("c1"), ports.CreateOrderInput{
		Products: []ports.ProductOrderItem{{ProductID: "p1", Quantity: 6}},
	})
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
}

func TestOrderService_Create_PetAlreadyReserved(t *testing.T) {
	pet := rex()
	pet.Status = domain.PetReserved
	svc := newOrderService(newStubOrderRepo(), newStubProductRepo(), newStubPetRepo(pet))

	_, err := svc.Create(context.Background(), clientCaller("c1"), ports.CreateOrderInput{
		PetIDs: []string{"pet1"},
	})
	if !errors.Is(err, domain.ErrPetUnavailable) {
		t.Fatalf("expected ErrPetUnavailable, got %v", err)
	}
}

func TestOrderService_Create_OnlyClients(t *testing.T) {
	svc := newOrderService(newStubOrderRepo(), newStubProductRepo(dogFood()), newStubPetRepo())

	for _, caller := range []domain.CallerContext{sellerCaller("s1"), adminCaller("a1")} {
		_, err := svc.Create(context.Background(), caller, ports.CreateOrderInput{
			Products: []ports.ProductOrderItem{{ProductID: "p1", Quantity: 1}},
		})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("role %s: expected ErrForbidden, got %v", caller.Role, err)
		}
	}
}

func TestOrderService_Create_EmptyOrder(t *testing.T) {
	svc := newOrderService(newStubOrderRepo(), newStubProductRepo(), newStubPetRepo())

	if _, err := svc.Create(context.Background(), clientCaller("c1"), ports.CreateOrderInput{}); !errors.Is(err, domain.ErrEmptyOrder) {
		t.Fatalf("expected ErrEmptyOrder, got %v", err)
	}
}

func TestOrderService_Create_NonPositiveQuantity(t *testing.T) {
	svc := newOrderService(newStubOrderRepo(), newStubProductRepo(dogFood()), newStubPetRepo())

	_, err := svc.Create(context.Background(), clientCaller("c1"), ports.CreateOrderInput{
		Products: []ports.ProductOrderItem{{ProductID: "p1", Quantity: 0}},
	})
	if !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestOrderService_Create_IdempotentReplay(t *testing.T) {
	products := newStubProductRepo(dogFood())
	svc := newOrderService(newStubOrderRepo(), products, newStubPetRepo())

	in := ports.CreateOrderInput{
		Products:       []ports.ProductOrderItem{{ProductID: "p1", Quantity: 2}},
		IdempotencyKey: "key-1",
	}

	first, err := svc.Create(context.Background(), clientCaller("c1"), in)
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	second, err := svc.Create(context.Background(), clientCaller("c1"), in)
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected replayed order %s, got %s", first.ID, second.ID)
	}
	p, _ := products.FindByID(context.Background(), "p1")
	if p.Stock != 3 {
		t.Fatalf("replay must not reserve stock again, stock = %d", p.Stock)
	}
}

func TestOrderService_Create_IdempotencyKeyScopedToClient(t *testing.T) {
	products := newStubProductRepo(dogFood())
	orders := newStubOrderRepo()
	svc := newOrderService(orders, products, newStubPetRepo())

	in := ports.CreateOrderInput{
		Products:       []ports.ProductOrderItem{{ProductID: "p1", Quantity: 2}},
		IdempotencyKey: "key-1",
	}

	first, err := svc.Create(context.Background(), clientCaller("c1"), in)
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	// Another client reusing the same key gets their own order, never a
	// replay of someone else's.
	second, err := svc.Create(context.Background(), clientCaller("c2"), in)
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if second.ID == first.ID {
		t.Fatalf("c2 must not receive c1's order")
	}
	if second.ClientID != "c2" {
		t.Fatalf("expected order owned by c2, got %s", second.ClientID)
	}

	p, _ := products.FindByID(context.Background(), "p1")
	if p.Stock != 1 {
		t.Fatalf("both orders reserve stock, expected 1, got %d", p.Stock)
	}
}

func TestOrderService_Create_RollsBackOnFailedLine(t *testing.T) {
	products := newStubProductRepo(dogFood())
	pets := newStubPetRepo(rex())
	orders := newStubOrderRepo()
	tx := snapshotTx{products: products, pets: pets, orders: orders}
	svc := NewOrderService(orders, products, pets, tx, zerolog.Nop())

	// The first lines reserve successfully, then the unknown pet fails the
	// transaction; everything reserved before it must be undone.
	_, err := svc.Create(context.Background(), clientCaller("c1"), ports.CreateOrderInput{
		Products: []ports.ProductOrderItem{{ProductID: "p1", Quantity: 2}},
		PetIDs:   []string{"pet1", "ghost"},
	})
	if !errors.Is(err, domain.ErrPetNotFound) {
		t.Fatalf("expected ErrPetNotFound, got %v", err)
	}

	p, _ := products.FindByID(context.Background(), "p1")
	if p.Stock != 5 {
		t.Fatalf("expected stock back at 5 after rollback, got %d", p.Stock)
	}
	pet, _ := pets.FindByID(context.Background(), "pet1")
	if pet.Status != domain.PetAvailable {
		t.Fatalf("expected pet released after rollback, got %s", pet.Status)
	}
	all, _ := orders.List(context.Background())
	if len(all) != 0 {
		t.Fatalf("no order must survive the rollback, got %d", len(all))
	}
}

func TestOrderService_Transition_CancelReleasesInventory(t *testing.T) {
	products := newStubProductRepo(dogFood())
	pets := newStubPetRepo(rex())
	orders := newStubOrderRepo()
	svc := newOrderService(orders, products, pets)

	order, err := svc.Create(context.Background(), clientCaller("c1"), ports.CreateOrderInput{
		Products: []ports.ProductOrderItem{{ProductID: "p1", Quantity: 2}},
		PetIDs:   []string{"pet1"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Transition(context.Background(), clientCaller("c1"), order.ID, domain.StatusCancelled)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if updated.Status != domain.StatusCancelled {
		t.Fatalf("expected cancelled, got %s", updated.Status)
	}

	p, _ := products.FindByID(context.Background(), "p1")
	if p.Stock != 5 {
		t.Fatalf("expected stock restored to 5, got %d", p.Stock)
	}
	pet, _ := pets.FindByID(context.Background(), "pet1")
	if pet.Status != domain.PetAvailable {
		t.Fatalf("expected pet released, got %s", pet.Status)
	}
}

func TestOrderService_Transition_DeliverTransfersOwnership(t *testing.T) {
	products := newStubProductRepo(dogFood())
	pets := newStubPetRepo(rex())
	orders := newStubOrderRepo()
	svc := newOrderService(orders, products, pets)

	order, err := svc.Create(context.Background(), clientCaller("c1"), ports.CreateOrderInput{
		Products: []ports.ProductOrderItem{{ProductID: "p1", Quantity: 1}},
		PetIDs:   []string{"pet1"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	admin := adminCaller("a1")
	for _, next := range []domain.OrderStatus{domain.StatusProcessing, domain.StatusShipped, domain.StatusDelivered} {
		if _, err := svc.Transition(context.Background(), admin, order.ID, next); err != nil {
			t.Fatalf("transition to %s failed: %v", next, err)
		}
	}

	pet, _ := pets.FindByID(context.Background(), "pet1")
	if pet.Status != domain.PetSold || pet.OwnerID != "c1" {
		t.Fatalf("expected pet sold to c1, got %s/%s", pet.Status, pet.OwnerID)
	}
	p, _ := products.FindByID(context.Background(), "p1")
	if p.OwnerID != "c1" {
		t.Fatalf("expected product owner c1, got %q", p.OwnerID)
	}

	stored, _ := orders.FindByID(context.Background(), order.ID)
	if len(stored.StatusHistory) != 4 {
		t.Fatalf("expected 4 history entries, got %d", len(stored.StatusHistory))
	}
}

func TestOrderService_Transition_ConcurrentCancelReleasesOnce(t *testing.T) {
	products := newStubProductRepo(dogFood())
	pets := newStubPetRepo(rex())
	orders := newStubOrderRepo()
	svc := newOrderService(orders, products, pets)

	order, err := svc.Create(context.Background(), clientCaller("c1"), ports.CreateOrderInput{
		Products: []ports.ProductOrderItem{{ProductID: "p1", Quantity: 2}},
		PetIDs:   []string{"pet1"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	pending, _ := orders.FindByID(context.Background(), order.ID)

	if _, err := svc.Transition(context.Background(), clientCaller("c1"), order.ID, domain.StatusCancelled); err != nil {
		t.Fatalf("first cancel failed: %v", err)
	}

	// A second cancel that validated against the pending state it read
	// before the first one committed must be rejected, not release again.
	stale := &staleReadOrderRepo{stubOrderRepo: orders, stale: pending}
	staleSvc := NewOrderService(stale, products, pets, passthroughTx{}, zerolog.Nop())
	_, err = staleSvc.Transition(context.Background(), clientCaller("c1"), order.ID, domain.StatusCancelled)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	p, _ := products.FindByID(context.Background(), "p1")
	if p.Stock != 5 {
		t.Fatalf("stock released twice, expected 5, got %d", p.Stock)
	}
}

func TestOrderService_Transition_StaleCancelAfterAdvanceRejected(t *testing.T) {
	products := newStubProductRepo(dogFood())
	pets := newStubPetRepo(rex())
	orders := newStubOrderRepo()
	svc := newOrderService(orders, products, pets)

	order, err := svc.Create(context.Background(), clientCaller("c1"), ports.CreateOrderInput{
		Products: []ports.ProductOrderItem{{ProductID: "p1", Quantity: 2}},
		PetIDs:   []string{"pet1"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	pending, _ := orders.FindByID(context.Background(), order.ID)

	if _, err := svc.Transition(context.Background(), adminCaller("a1"), order.ID, domain.StatusProcessing); err != nil {
		t.Fatalf("advance failed: %v", err)
	}

	// A cancel racing the advance, still holding the pending read, must not
	// release inventory out from under the in-flight order.
	stale := &staleReadOrderRepo{stubOrderRepo: orders, stale: pending}
	staleSvc := NewOrderService(stale, products, pets, passthroughTx{}, zerolog.Nop())
	_, err = staleSvc.Transition(context.Background(), clientCaller("c1"), order.ID, domain.StatusCancelled)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	stored, _ := orders.FindByID(context.Background(), order.ID)
	if stored.Status != domain.StatusProcessing {
		t.Fatalf("expected order still processing, got %s", stored.Status)
	}
	p, _ := products.FindByID(context.Background(), "p1")
	if p.Stock != 3 {
		t.Fatalf("expected stock still reserved at 3, got %d", p.Stock)
	}
	pet, _ := pets.FindByID(context.Background(), "pet1")
	if pet.Status != domain.PetReserved {
		t.Fatalf("expected pet still reserved, got %s", pet.Status)
	}
}

func TestOrderService_Transition_InvalidMove(t *testing.T) {
	orders := newStubOrderRepo(&domain.Order{ID: "o1", ClientID: "c1", Status: domain.StatusPending})
	svc := newOrderService(orders, newStubProductRepo(), newStubPetRepo())

	_, err := svc.Transition(context.Background(), adminCaller("a1"), "o1", domain.StatusDelivered)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestOrderService_Transition_TerminalIsFinal(t *testing.T) {
	orders := newStubOrderRepo(&domain.Order{ID: "o1", ClientID: "c1", Status: domain.StatusDelivered})
	svc := newOrderService(orders, newStubProductRepo(), newStubPetRepo())

	_, err := svc.Transition(context.Background(), adminCaller("a1"), "o1", domain.StatusCancelled)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestOrderService_Transition_UnknownStatus(t *testing.T) {
	orders := newStubOrderRepo(&domain.Order{ID: "o1", ClientID: "c1", Status: domain.StatusPending})
	svc := newOrderService(orders, newStubProductRepo(), newStubPetRepo())

	_, err := svc.Transition(context.Background(), adminCaller("a1"), "o1", domain.OrderStatus("returned"))
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestOrderService_Transition_SellerCannotCancel(t *testing.T) {
	orders := newStubOrderRepo(&domain.Order{ID: "o1", ClientID: "c1", Status: domain.StatusPending, SellerIDs: []string{"s1"}})
	svc := newOrderService(orders, newStubProductRepo(), newStubPetRepo())

	_, err := svc.Transition(context.Background(), sellerCaller("s1"), "o1", domain.StatusCancelled)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestOrderService_Transition_ClientCannotAdvance(t *testing.T) {
	orders := newStubOrderRepo(&domain.Order{ID: "o1", ClientID: "c1", Status: domain.StatusPending})
	svc := newOrderService(orders, newStubProductRepo(), newStubPetRepo())

	_, err := svc.Transition(context.Background(), clientCaller("c1"), "o1", domain.StatusProcessing)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestOrderService_Get_Visibility(t *testing.T) {
	orders := newStubOrderRepo(&domain.Order{ID: "o1", ClientID: "c1", SellerIDs: []string{"s1"}})
	svc := newOrderService(orders, newStubProductRepo(), newStubPetRepo())

	if _, err := svc.Get(context.Background(), clientCaller("c1"), "o1"); err != nil {
		t.Fatalf("owning client should read the order: %v", err)
	}
	if _, err := svc.Get(context.Background(), clientCaller("c2"), "o1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for other client, got %v", err)
	}
	if _, err := svc.Get(context.Background(), sellerCaller("s1"), "o1"); err != nil {
		t.Fatalf("seller with line should read the order: %v", err)
	}
	if _, err := svc.Get(context.Background(), clientCaller("c1"), "missing"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderService_List_ScopedByRole(t *testing.T) {
	orders := newStubOrderRepo(
		&domain.Order{ID: "o1", ClientID: "c1", SellerIDs: []string{"s1"}},
		&domain.Order{ID: "o2", ClientID: "c2", SellerIDs: []string{"s2"}},
	)
	svc := newOrderService(orders, newStubProductRepo(), newStubPetRepo())

	own, err := svc.List(context.Background(), clientCaller("c1"))
	if err != nil || len(own) != 1 || own[0].ID != "o1" {
		t.Fatalf("client list: got %v, %v", own, err)
	}

	sales, err := svc.List(context.Background(), sellerCaller("s2"))
	if err != nil || len(sales) != 1 || sales[0].ID != "o2" {
		t.Fatalf("seller list: got %v, %v", sales, err)
	}

	all, err := svc.List(context.Background(), adminCaller("a1"))
	if err != nil || len(all) != 2 {
		t.Fatalf("admin list: got %d orders, %v", len(all), err)
	}
}

func TestOrderService_Delete_StaffOnly(t *testing.T) {
	orders := newStubOrderRepo(&domain.Order{ID: "o1", ClientID: "c1", Status: domain.StatusPending})
	svc := newOrderService(orders, newStubProductRepo(), newStubPetRepo())

	if err := svc.Delete(context.Background(), clientCaller("c1"), "o1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), adminCaller("a1"), "o1"); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if _, err := orders.FindByID(context.Background(), "o1"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("order should be gone, got %v", err)
	}
}

func TestOrderService_Delete_ReleasesOpenInventory(t *testing.T) {
	products := newStubProductRepo(dogFood())
	pets := newStubPetRepo(rex())
	orders := newStubOrderRepo()
	svc := newOrderService(orders, products, pets)

	order, err := svc.Create(context.Background(), clientCaller("c1"), ports.CreateOrderInput{
		Products: []ports.ProductOrderItem{{ProductID: "p1", Quantity: 3}},
		PetIDs:   []string{"pet1"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(context.Background(), adminCaller("a1"), order.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	p, _ := products.FindByID(context.Background(), "p1")
	if p.Stock != 5 {
		t.Fatalf("expected stock restored to 5, got %d", p.Stock)
	}
	pet, _ := pets.FindByID(context.Background(), "pet1")
	if pet.Status != domain.PetAvailable {
		t.Fatalf("expected pet released, got %s", pet.Status)
	}
}

func TestOrderService_Delete_ConcurrentChangeRejected(t *testing.T) {
	pet := rex()
	pet.Status = domain.PetSold
	pet.OwnerID = "c1"
	pets := newStubPetRepo(pet)
	orders := newStubOrderRepo(&domain.Order{
		ID:       "o1",
		ClientID: "c1",
		Status:   domain.StatusDelivered,
		Pets:     []domain.PetLine{{PetID: "pet1", Name: "Rex", Price: 100}},
	})

	// The deleter read the order while it was still pending; by the time the
	// delete runs, a concurrent transition delivered it. The delete must not
	// go through on the stale decision.
	pending := &domain.Order{
		ID:       "o1",
		ClientID: "c1",
		Status:   domain.StatusPending,
		Pets:     []domain.PetLine{{PetID: "pet1", Name: "Rex", Price: 100}},
	}
	stale := &staleReadOrderRepo{stubOrderRepo: orders, stale: pending}
	svc := NewOrderService(stale, newStubProductRepo(), pets, passthroughTx{}, zerolog.Nop())

	if err := svc.Delete(context.Background(), adminCaller("a1"), "o1"); !errors.Is(err, domain.ErrOrderConflict) {
		t.Fatalf("expected ErrOrderConflict, got %v", err)
	}

	if _, err := orders.FindByID(context.Background(), "o1"); err != nil {
		t.Fatalf("order must survive the rejected delete: %v", err)
	}
	stored, _ := pets.FindByID(context.Background(), "pet1")
	if stored.Status != domain.PetSold || stored.OwnerID != "c1" {
		t.Fatalf("delivered sale must stay final, got %s/%s", stored.Status, stored.OwnerID)
	}
}

func TestOrderService_Delete_DeliveredKeepsSale(t *testing.T) {
	pet := rex()
	pet.Status = domain.PetSold
	pet.OwnerID = "c1"
	pets := newStubPetRepo(pet)
	orders := newStubOrderRepo(&domain.Order{
		ID:       "o1",
		ClientID: "c1",
		Status:   domain.StatusDelivered,
		Pets:     []domain.PetLine{{PetID: "pet1", Name: "Rex", Price: 100}},
	})
	svc := newOrderService(orders, newStubProductRepo(), pets)

	if err := svc.Delete(context.Background(), adminCaller("a1"), "o1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	stored, _ := pets.FindByID(context.Background(), "pet1")
	if stored.Status != domain.PetSold || stored.OwnerID != "c1" {
		t.Fatalf("delivered sale must stay final, got %s/%s", stored.Status, stored.OwnerID)
	}
}
