package fakeapi

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dmitrijs2005/storefront/internal/common"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalid      = errors.New("invalid request")
	ErrUnauthorized = errors.New("invalid credentials")
)

// Store is the in-memory backend state. All methods are safe for concurrent
// use.
type Store struct {
	mu sync.Mutex

	users     map[string]*user
	brands    []brand
	agents    map[int64]agent
	vehicles  map[int64]vehicle
	services  map[int64]service
	customers map[int64]customer
	sales     []sale

	byIdempotencyKey map[string]int64
	resetTokens      map[string]string

	nextCustomerID int64
	nextSaleID     int64
}

// NewStore returns an empty store. Use Seed for demo data.
func NewStore() *Store {
	return &Store{
		users:            map[string]*user{},
		agents:           map[int64]agent{},
		vehicles:         map[int64]vehicle{},
		services:         map[int64]service{},
		customers:        map[int64]customer{},
		byIdempotencyKey: map[string]int64{},
		resetTokens:      map[string]string{},
		nextCustomerID:   1,
		nextSaleID:       1,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AddUser creates an account bound to a new customer record.
func (s *Store) AddUser(r Registration, agentID int64, mustChangePassword bool) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(r, agentID, mustChangePassword)
}

func (s *Store) addUserLocked(r Registration, agentID int64, mustChangePassword bool) (int64, error) {
	email := normalizeEmail(r.Email)
	if email == "" || r.Password == "" {
		return 0, fmt.Errorf("%w: email and password are required", ErrInvalid)
	}
	if _, ok := s.users[email]; ok {
		return 0, fmt.Errorf("%w: %s is already registered", ErrConflict, email)
	}
	hash, err := hashPassword(r.Password)
	if err != nil {
		return 0, err
	}

	c := customer{
		ID:        s.nextCustomerID,
		Name:      r.Name,
		LastName:  r.LastName,
		Email:     email,
		Telephone: r.Telephone,
	}
	if a, ok := s.agents[agentID]; ok {
		c.Agent = &a
	}
	s.nextCustomerID++
	s.customers[c.ID] = c
	s.users[email] = &user{email: email, passwordHash: hash, customerID: c.ID, mustChangePassword: mustChangePassword}
	return c.ID, nil
}

// Register signs up a new account without an assigned agent.
func (s *Store) Register(r Registration) error {
	_, err := s.AddUser(r, 0, false)
	return err
}

// Authenticate checks the credentials and reports whether the account must
// change its password.
func (s *Store) Authenticate(email, password string) (bool, error) {
	s.mu.Lock()
	var hash string
	var mustChange bool
	u, ok := s.users[normalizeEmail(email)]
	if ok {
		hash, mustChange = u.passwordHash, u.mustChangePassword
	}
	s.mu.Unlock()

	if !ok {
		_ = verifyPassword(password, dummyHash)
		return false, ErrUnauthorized
	}
	if !verifyPassword(password, hash) {
		return false, ErrUnauthorized
	}
	return mustChange, nil
}

// SetPassword replaces the password of email and clears the forced-change
// flag.
func (s *Store) SetPassword(email, password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[normalizeEmail(email)]
	if !ok {
		return fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	u.passwordHash = hash
	u.mustChangePassword = false
	return nil
}

// HasUser reports whether email has an account.
func (s *Store) HasUser(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[normalizeEmail(email)]
	return ok
}

// SetResetToken remembers the last reset token issued for email.
func (s *Store) SetResetToken(email, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetTokens[normalizeEmail(email)] = token
}

// ResetToken returns the last reset token issued for email; it stands in
// for the link a real backend would mail.
func (s *Store) ResetToken(email string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.resetTokens[normalizeEmail(email)]
	return t, ok
}

func (s *Store) addAgent(a agent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agents[a.ID] = a
}

func (s *Store) addBrand(b brand) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brands = append(s.brands, b)
}

func (s *Store) addVehicle(v vehicle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vehicles[v.ID] = v
}

func (s *Store) addService(svc service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[svc.ID] = svc
}

func (s *Store) brandList() []brand {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]brand{}, s.brands...)
}

// vehicleList lists vehicles ordered by id; a non-empty brandName keeps only
// that brand, compared case-insensitively.
func (s *Store) vehicleList(brandName string) []vehicle {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]vehicle, 0, len(s.vehicles))
	for _, v := range s.vehicles {
		if brandName != "" && !strings.EqualFold(v.Brand.Name, brandName) {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) vehicleByID(id int64) (vehicle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vehicles[id]
	return v, ok
}

// replaceVehicle stores v as the new document of vehicle id.
func (s *Store) replaceVehicle(id int64, v vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vehicles[id]; !ok {
		return fmt.Errorf("vehicle %d: %w", id, ErrNotFound)
	}
	v.ID = id
	s.vehicles[id] = v
	return nil
}

func (s *Store) serviceList() []service {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]service, 0, len(s.services))
	for _, svc := range s.services {
		out = append(out, svc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) customerByEmail(email string) (customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[normalizeEmail(email)]
	if !ok {
		return customer{}, false
	}
	c, ok := s.customers[u.customerID]
	return c, ok
}

// recordSale stores a sale of a reserved vehicle and marks it sold. A
// repeated idempotency key returns the sale recorded first, with created
// false.
func (s *Store) recordSale(key string, req saleRequest, date string) (sale, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if key != "" {
		if id, ok := s.byIdempotencyKey[key]; ok {
			return s.sales[id-1], false, nil
		}
	}

	if _, ok := s.customers[req.Customer.ID]; !ok {
		return sale{}, false, fmt.Errorf("%w: unknown customer %d", ErrInvalid, req.Customer.ID)
	}
	v, ok := s.vehicles[req.Vehicle.ID]
	if !ok {
		return sale{}, false, fmt.Errorf("%w: unknown vehicle %d", ErrInvalid, req.Vehicle.ID)
	}
	if v.Status.ID != common.VehicleStatusReserved {
		return sale{}, false, fmt.Errorf("%w: vehicle %d is not reserved", ErrConflict, v.ID)
	}

	out := sale{
		ID:         s.nextSaleID,
		Customer:   req.Customer,
		Vehicle:    v,
		FinalPrice: req.FinalPrice,
		Date:       date,
		Services:   make([]saleService, 0, len(req.Services)),
	}
	if req.Date != "" {
		out.Date = req.Date
	}
	if req.Agent != nil {
		if a, ok := s.agents[req.Agent.ID]; ok {
			out.Agent = &a
		}
	}
	for _, r := range req.Services {
		svc, ok := s.services[r.Service.ID]
		if !ok {
			return sale{}, false, fmt.Errorf("%w: unknown service %d", ErrInvalid, r.Service.ID)
		}
		out.Services = append(out.Services, saleService{Service: svc})
	}
	out.Folio = fmt.Sprintf("%06d", out.ID)

	s.nextSaleID++
	s.sales = append(s.sales, out)
	if key != "" {
		s.byIdempotencyKey[key] = out.ID
	}
	v.Status = ref{ID: common.VehicleStatusSold}
	s.vehicles[v.ID] = v
	return out, true, nil
}

func (s *Store) salesByCustomer(customerID int64) []sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sale, 0)
	for _, sl := range s.sales {
		if sl.Customer.ID == customerID {
			out = append(out, sl)
		}
	}
	return out
}

// VehicleStatus returns the status id of vehicle id.
func (s *Store) VehicleStatus(id int64) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vehicles[id]
	return v.Status.ID, ok
}

// SaleCount is the number of recorded sales.
func (s *Store) SaleCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sales)
}
