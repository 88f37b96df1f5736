package purchase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/google/uuid"
)

type State int

const (
	Idle State = iota
	Confirming
	Reserving
	Recording
	Completed
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Confirming:
		return "confirming"
	case Reserving:
		return "reserving"
	case Recording:
		return "recording"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	}
	return "state(" + strconv.Itoa(int(s)) + ")"
}

// Gateway is the part of the API the sequencer drives.
type Gateway interface {
	UpdateVehicle(ctx context.Context, token string, vehicleID int64, doc json.RawMessage) error
	RecordSale(ctx context.Context, token, idempotencyKey string, sale models.SaleRequest) (models.Sale, error)
}

type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Order is everything needed to buy one vehicle.
type Order struct {
	Vehicle      models.Vehicle
	Services     []models.Service
	CustomerID   int64
	CustomerName string
}

func (o Order) fingerprint() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d/%d", o.CustomerID, o.Vehicle.ID)
	for _, s := range o.Services {
		fmt.Fprintf(&b, ",%d", s.ID)
	}
	return b.String()
}

// Result describes a completed purchase.
type Result struct {
	Order       Order
	Total       int64
	Sale        models.Sale
	CompletedAt time.Time
}

type Option func(*Sequencer)

// WithCompensation makes a failed sale submission release the reservation.
func WithCompensation(on bool) Option { return func(s *Sequencer) { s.compensate = on } }

// WithStrictPrices rejects orders with unparsable service prices.
func WithStrictPrices(on bool) Option { return func(s *Sequencer) { s.strict = on } }

func WithClock(now func() time.Time) Option { return func(s *Sequencer) { s.now = now } }

// WithKeyGenerator replaces the idempotency key source.
func WithKeyGenerator(gen func() string) Option { return func(s *Sequencer) { s.newKey = gen } }

func WithLogger(l logging.Logger) Option { return func(s *Sequencer) { s.log = l } }

// Sequencer runs one purchase at a time. It is safe for concurrent use;
// operations are serialized.
type Sequencer struct {
	api    Gateway
	tokens TokenSource
	log    logging.Logger
	now    func() time.Time
	newKey func() string

	compensate bool
	strict     bool

	mu       sync.Mutex
	state    State
	key      string
	keyOwner string
	result   *Result
	lastErr  error
}

func NewSequencer(api Gateway, tokens TokenSource, opts ...Option) *Sequencer {
	s := &Sequencer{
		api:    api,
		tokens: tokens,
		log:    logging.Nop(),
		now:    time.Now,
		newKey: uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Sequencer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastError returns the error that moved the sequencer to Failed.
func (s *Sequencer) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Result returns the completed purchase, if any.
func (s *Sequencer) Result() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}

// Open starts confirming a purchase. Allowed from Idle and Failed.
func (s *Sequencer) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Idle && s.state != Failed {
		return s.stateErr("open")
	}
	s.state = Confirming
	s.lastErr = nil
	return nil
}

// Cancel abandons confirmation without any remote effect.
func (s *Sequencer) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Confirming {
		return s.stateErr("cancel")
	}
	s.state = Idle
	return nil
}

// Finish closes a completed purchase. The next order gets a fresh
// idempotency key.
func (s *Sequencer) Finish() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Completed {
		return s.stateErr("finish")
	}
	s.state = Idle
	s.result = nil
	s.key = ""
	s.keyOwner = ""
	return nil
}

// Confirm reserves the vehicle and then records the sale. Any validation
// problem is reported before the first remote call. The returned error is
// also kept as LastError.
func (s *Sequencer) Confirm(ctx context.Context, order Order) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Confirming {
		return Result{}, s.stateErr("confirm")
	}

	total, err := Total(order.Vehicle.Price, order.Services, s.strict)
	if err != nil {
		return Result{}, s.fail(err)
	}
	if order.CustomerID == 0 {
		return Result{}, s.fail(ErrMissingCustomer)
	}
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return Result{}, s.fail(err)
	}
	key := s.idempotencyKey(order)

	log := s.log.With("vehicle_id", order.Vehicle.ID, "customer_id", order.CustomerID)

	s.state = Reserving
	reserved, err := order.Vehicle.WithStatus(common.VehicleStatusReserved)
	if err != nil {
		return Result{}, s.fail(err)
	}
	if err := s.api.UpdateVehicle(ctx, token, order.Vehicle.ID, reserved); err != nil {
		log.Warn(ctx, "vehicle reservation failed", "error", err)
		return Result{}, s.fail(fmt.Errorf("reserve vehicle %d: %w", order.Vehicle.ID, err))
	}

	s.state = Recording
	req := models.NewSaleRequest(order.CustomerID, order.Vehicle.ID, order.Vehicle.AgentID(), order.Services, total, s.now())
	sale, err := s.api.RecordSale(ctx, token, key, req)
	if err != nil {
		log.Warn(ctx, "sale submission failed", "error", err, "idempotency_key", key)
		perr := &PartialFailureError{VehicleID: order.Vehicle.ID, Err: err}
		if s.compensate {
			s.release(ctx, token, order.Vehicle, perr)
		}
		return Result{}, s.fail(perr)
	}

	res := Result{Order: order, Total: total, Sale: sale, CompletedAt: s.now()}
	s.state = Completed
	s.result = &res
	s.lastErr = nil
	log.Info(ctx, "purchase completed", "total", total, "sale_id", sale.ID)
	return res, nil
}

// release restores the vehicle's original status after a failed sale.
func (s *Sequencer) release(ctx context.Context, token string, v models.Vehicle, perr *PartialFailureError) {
	perr.Attempted = true
	original := v.StatusID
	if original == 0 {
		original = common.VehicleStatusAvailable
	}
	doc, err := v.WithStatus(original)
	if err == nil {
		err = s.api.UpdateVehicle(ctx, token, v.ID, doc)
	}
	if err != nil {
		s.log.Error(ctx, "releasing reservation failed", "vehicle_id", v.ID, "error", err)
		perr.CompensationErr = fmt.Errorf("release vehicle %d: %w", v.ID, err)
		return
	}
	perr.Compensated = true
}

// idempotencyKey returns the key of order, minting one when the order
// differs from the one the current key was issued for.
func (s *Sequencer) idempotencyKey(order Order) string {
	fp := order.fingerprint()
	if s.key == "" || s.keyOwner != fp {
		s.key = s.newKey()
		s.keyOwner = fp
	}
	return s.key
}

func (s *Sequencer) fail(err error) error {
	s.state = Failed
	s.lastErr = err
	return err
}

func (s *Sequencer) stateErr(op string) error {
	return fmt.Errorf("%w: cannot %s while %s", ErrInvalidState, op, s.state)
}
