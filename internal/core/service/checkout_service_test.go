package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/easyjatra/marketplace-api/internal/core/domain"
	"github.com/easyjatra/marketplace-api/internal/core/ports"
)

// --- Stubs ---

type stubGateway struct {
	created *ports.GatewaySessionInput
	session ports.GatewaySession
	state   *ports.GatewaySessionState
	getErr  error
}

func (g *stubGateway) CreateSession(_ context.Context, in ports.GatewaySessionInput) (*ports.GatewaySession, error) {
	g.created = &in
	return &g.session, nil
}

func (g *stubGateway) GetSession(_ context.Context, _ string) (*ports.GatewaySessionState, error) {
	if g.getErr != nil {
		return nil, g.getErr
	}
	return g.state, nil
}

type stubTicketRepo struct {
	tickets    map[string]*domain.Ticket
	decrements map[string]int
}

func newStubTicketRepo() *stubTicketRepo {
	return &stubTicketRepo{
		tickets:    make(map[string]*domain.Ticket),
		decrements: make(map[string]int),
	}
}

func (r *stubTicketRepo) List(_ context.Context) ([]domain.Ticket, error) { return nil, nil }

func (r *stubTicketRepo) FindByID(_ context.Context, id string) (*domain.Ticket, error) {
	t, ok := r.tickets[id]
	if !ok {
		return nil, domain.ErrTicketNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTicketRepo) FindByVendorEmail(_ context.Context, _ string) ([]domain.Ticket, error) {
	return nil, nil
}

func (r *stubTicketRepo) Insert(_ context.Context, t *domain.Ticket) (string, error) {
	id := fmt.Sprintf("ticket_%d", len(r.tickets)+1)
	clone := *t
	clone.ID = id
	r.tickets[id] = &clone
	return id, nil
}

func (r *stubTicketRepo) DecrementQuantity(_ context.Context, id string) error {
	t, ok := r.tickets[id]
	if !ok {
		return domain.ErrTicketNotFound
	}
	t.Quantity--
	r.decrements[id]++
	return nil
}

// stubOrderRepo enforces the transactionId uniqueness constraint the real
// Mongo repository provides through its unique index.
type stubOrderRepo struct {
	byTxn   map[string]*domain.Order
	inserts int

	// hideFromLookup makes that many FindByTransactionID calls miss even
	// when the order exists, simulating a concurrent writer that lands
	// between the lookup and the insert.
	hideFromLookup int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{byTxn: make(map[string]*domain.Order)}
}

func (r *stubOrderRepo) Insert(_ context.Context, o *domain.Order) (string, error) {
	if _, exists := r.byTxn[o.TransactionID]; exists {
		return "", domain.ErrDuplicateOrder
	}
	r.inserts++
	clone := *o
	clone.ID = fmt.Sprintf("order_%d", r.inserts)
	r.byTxn[o.TransactionID] = &clone
	return clone.ID, nil
}

func (r *stubOrderRepo) FindByTransactionID(_ context.Context, txn string) (*domain.Order, error) {
	if r.hideFromLookup > 0 {
		r.hideFromLookup--
		return nil, domain.ErrOrderNotFound
	}
	o, ok := r.byTxn[txn]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) FindByCustomer(_ context.Context, _ string) ([]domain.Order, error) {
	return nil, nil
}

func (r *stubOrderRepo) FindByVendorEmail(_ context.Context, _ string) ([]domain.Order, error) {
	return nil, nil
}

type memCache struct {
	m      map[string]ports.ConfirmResult
	getErr error
	putErr error
}

func newMemCache() *memCache {
	return &memCache{m: make(map[string]ports.ConfirmResult)}
}

func (c *memCache) Get(_ context.Context, sessionID string) (*ports.ConfirmResult, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	res, ok := c.m[sessionID]
	if !ok {
		return nil, nil
	}
	clone := res
	return &clone, nil
}

func (c *memCache) Put(_ context.Context, sessionID string, res ports.ConfirmResult) error {
	if c.putErr != nil {
		return c.putErr
	}
	c.m[sessionID] = res
	return nil
}

// --- Fixtures ---

type checkoutFixture struct {
	gateway *stubGateway
	tickets *stubTicketRepo
	orders  *stubOrderRepo
	cache   *memCache
	svc     *CheckoutService
}

func newCheckoutFixture() *checkoutFixture {
	f := &checkoutFixture{
		gateway: &stubGateway{},
		tickets: newStubTicketRepo(),
		orders:  newStubOrderRepo(),
		cache:   newMemCache(),
	}
	f.svc = NewCheckoutService(f.gateway, f.tickets, f.orders, f.cache, "https://shop.example.com", zerolog.Nop())
	return f
}

func (f *checkoutFixture) seedTicket(quantity int64) string {
	id, _ := f.tickets.Insert(context.Background(), &domain.Ticket{
		Name:     "Dhaka to Sylhet",
		Category: "bus",
		Price:    19.95,
		Quantity: quantity,
		Vendor:   domain.Vendor{ID: "v1", Email: "vendor@example.com"},
		Image:    "https://img.example.com/bus.png",
	})
	return id
}

func (f *checkoutFixture) completeSession(ticketID string) {
	f.gateway.state = &ports.GatewaySessionState{
		ID:            "cs_test_1",
		Status:        ports.SessionStatusComplete,
		TransactionID: "pi_123",
		TicketID:      ticketID,
		CustomerEmail: "buyer@example.com",
		AmountTotal:   1995,
	}
}

// --- Session creation ---

func TestCreateSession_ConvertsPriceAndCarriesMetadata(t *testing.T) {
	f := newCheckoutFixture()
	f.gateway.session = ports.GatewaySession{ID: "cs_test_1", URL: "https://pay.example.com/cs_test_1"}

	url, err := f.svc.CreateSession(context.Background(), ports.CreateSessionInput{
		TicketID:      "t1",
		Name:          "Dhaka to Sylhet",
		Image:         "https://img.example.com/bus.png",
		Description:   "AC seat",
		Price:         19.95,
		Quantity:      1,
		CustomerEmail: "buyer@example.com",
	})
	if err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}
	if url != "https://pay.example.com/cs_test_1" {
		t.Fatalf("unexpected url: %s", url)
	}

	in := f.gateway.created
	if in == nil {
		t.Fatalf("gateway never called")
	}
	if in.UnitAmount != 1995 {
		t.Fatalf("expected 1995 cents, got %d", in.UnitAmount)
	}
	if in.TicketID != "t1" || in.CustomerEmail != "buyer@example.com" {
		t.Fatalf("metadata fields not forwarded: %+v", in)
	}
	if in.SuccessURL != "https://shop.example.com/payment-success?session_id={CHECKOUT_SESSION_ID}" {
		t.Fatalf("unexpected success url: %s", in.SuccessURL)
	}
	if in.CancelURL != "https://shop.example.com/ticket/t1" {
		t.Fatalf("unexpected cancel url: %s", in.CancelURL)
	}
}

func TestPriceToCents_Exact(t *testing.T) {
	cases := []struct {
		price float64
		cents int64
	}{
		{0.99, 99},
		{10, 1000},
		{19.95, 1995},
	}
	for _, tc := range cases {
		if got := PriceToCents(tc.price); got != tc.cents {
			t.Fatalf("PriceToCents(%v) = %d, want %d", tc.price, got, tc.cents)
		}
	}
}

// --- Confirmation / materialization ---

func TestConfirm_MaterializesCompletedSession(t *testing.T) {
	f := newCheckoutFixture()
	ticketID := f.seedTicket(5)
	f.completeSession(ticketID)

	res, err := f.svc.Confirm(context.Background(), "cs_test_1")
	if err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}
	if res.TransactionID != "pi_123" {
		t.Fatalf("unexpected transaction id: %s", res.TransactionID)
	}
	if res.OrderID == "" {
		t.Fatalf("expected order id")
	}
	if res.AlreadyExisted {
		t.Fatalf("first confirmation must not be a replay")
	}

	order, err := f.orders.FindByTransactionID(context.Background(), "pi_123")
	if err != nil {
		t.Fatalf("order not persisted: %v", err)
	}
	if order.Quantity != 1 {
		t.Fatalf("order quantity fixed at 1, got %d", order.Quantity)
	}
	if order.Price != 19.95 {
		t.Fatalf("order price from session total, got %v", order.Price)
	}
	if order.Vendor.Email != "vendor@example.com" {
		t.Fatalf("vendor not copied from ticket: %+v", order.Vendor)
	}
	if order.Status != domain.OrderStatusPending {
		t.Fatalf("unexpected order status: %s", order.Status)
	}

	ticket, _ := f.tickets.FindByID(context.Background(), ticketID)
	if ticket.Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", ticket.Quantity)
	}
}

func TestConfirm_IsIdempotent(t *testing.T) {
	f := newCheckoutFixture()
	ticketID := f.seedTicket(5)
	f.completeSession(ticketID)

	first, err := f.svc.Confirm(context.Background(), "cs_test_1")
	if err != nil {
		t.Fatalf("first Confirm: %v", err)
	}
	second, err := f.svc.Confirm(context.Background(), "cs_test_1")
	if err != nil {
		t.Fatalf("second Confirm: %v", err)
	}

	if first.OrderID != second.OrderID {
		t.Fatalf("order ids differ: %s vs %s", first.OrderID, second.OrderID)
	}
	if !second.AlreadyExisted {
		t.Fatalf("second confirmation must report a replay")
	}
	if f.orders.inserts != 1 {
		t.Fatalf("expected exactly one insert, got %d", f.orders.inserts)
	}
	if f.tickets.decrements[ticketID] != 1 {
		t.Fatalf("expected exactly one decrement, got %d", f.tickets.decrements[ticketID])
	}
}

func TestConfirm_IdempotentWithoutCache(t *testing.T) {
	// Even with the replay cache failing, the prior-order lookup keeps
	// confirmation idempotent.
	f := newCheckoutFixture()
	f.cache.getErr = errors.New("redis down")
	f.cache.putErr = errors.New("redis down")
	ticketID := f.seedTicket(2)
	f.completeSession(ticketID)

	first, err := f.svc.Confirm(context.Background(), "cs_test_1")
	if err != nil {
		t.Fatalf("first Confirm: %v", err)
	}
	second, err := f.svc.Confirm(context.Background(), "cs_test_1")
	if err != nil {
		t.Fatalf("second Confirm: %v", err)
	}

	if first.OrderID != second.OrderID {
		t.Fatalf("order ids differ: %s vs %s", first.OrderID, second.OrderID)
	}
	if f.tickets.decrements[ticketID] != 1 {
		t.Fatalf("expected exactly one decrement, got %d", f.tickets.decrements[ticketID])
	}
}

func TestConfirm_ReturnsExistingOrder(t *testing.T) {
	f := newCheckoutFixture()
	ticketID := f.seedTicket(5)
	f.completeSession(ticketID)

	existingID, _ := f.orders.Insert(context.Background(), &domain.Order{
		TicketID:      ticketID,
		TransactionID: "pi_123",
		Customer:      "buyer@example.com",
	})
	f.orders.inserts = 0

	res, err := f.svc.Confirm(context.Background(), "cs_test_1")
	if err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}
	if res.OrderID != existingID {
		t.Fatalf("expected existing order %s, got %s", existingID, res.OrderID)
	}
	if !res.AlreadyExisted {
		t.Fatalf("expected replay result")
	}
	if f.orders.inserts != 0 {
		t.Fatalf("no new insert expected, got %d", f.orders.inserts)
	}
	if f.tickets.decrements[ticketID] != 0 {
		t.Fatalf("no decrement expected, got %d", f.tickets.decrements[ticketID])
	}
}

func TestConfirm_RejectsIncompleteSession(t *testing.T) {
	f := newCheckoutFixture()
	ticketID := f.seedTicket(5)
	f.gateway.state = &ports.GatewaySessionState{
		ID:       "cs_test_1",
		Status:   "open",
		TicketID: ticketID,
	}

	_, err := f.svc.Confirm(context.Background(), "cs_test_1")
	if !errors.Is(err, domain.ErrSessionUnprocessable) {
		t.Fatalf("expected ErrSessionUnprocessable, got %v", err)
	}
	if f.orders.inserts != 0 {
		t.Fatalf("no insert expected for incomplete session")
	}
	if f.tickets.decrements[ticketID] != 0 {
		t.Fatalf("no decrement expected for incomplete session")
	}
}

func TestConfirm_RejectsWhenTicketGone(t *testing.T) {
	f := newCheckoutFixture()
	f.completeSession("deadbeefdeadbeefdeadbeef")

	_, err := f.svc.Confirm(context.Background(), "cs_test_1")
	if !errors.Is(err, domain.ErrSessionUnprocessable) {
		t.Fatalf("expected ErrSessionUnprocessable, got %v", err)
	}
	if f.orders.inserts != 0 {
		t.Fatalf("no insert expected when ticket is gone")
	}
}

func TestConfirm_TicketGoneButOrderExists(t *testing.T) {
	// The purchase already happened; a later ticket deletion must not turn
	// a replayed confirmation into an error.
	f := newCheckoutFixture()
	f.completeSession("deadbeefdeadbeefdeadbeef")

	existingID, _ := f.orders.Insert(context.Background(), &domain.Order{
		TransactionID: "pi_123",
	})

	res, err := f.svc.Confirm(context.Background(), "cs_test_1")
	if err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}
	if res.OrderID != existingID {
		t.Fatalf("expected existing order %s, got %s", existingID, res.OrderID)
	}
}

func TestConfirm_LostInsertRace(t *testing.T) {
	// Simulates the loser of two concurrent confirmations: the prior-order
	// check misses, but Insert hits the unique index.
	f := newCheckoutFixture()
	ticketID := f.seedTicket(5)
	f.completeSession(ticketID)

	winnerID, _ := f.orders.Insert(context.Background(), &domain.Order{TransactionID: "pi_123"})
	f.orders.hideFromLookup = 1

	res, err := f.svc.Confirm(context.Background(), "cs_test_1")
	if err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}
	if res.OrderID != winnerID {
		t.Fatalf("expected winner order %s, got %s", winnerID, res.OrderID)
	}
	if !res.AlreadyExisted {
		t.Fatalf("loser must report a replay")
	}
	if f.tickets.decrements[ticketID] != 0 {
		t.Fatalf("loser must not decrement, got %d", f.tickets.decrements[ticketID])
	}
}

func TestConfirm_GatewayFailurePropagates(t *testing.T) {
	f := newCheckoutFixture()
	f.gateway.getErr = errors.New("gateway unreachable")

	if _, err := f.svc.Confirm(context.Background(), "cs_test_1"); err == nil {
		t.Fatalf("expected error from gateway failure")
	}
}
