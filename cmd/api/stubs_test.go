package main

import (
	"context"
	"sync"
	"testing"

	"estate/internal/auth"
	"estate/internal/db"
	"estate/internal/domain/apartments"
	"estate/internal/domain/bookingstatus"
	"estate/internal/domain/buildings"
	"estate/internal/domain/expenses"
	"estate/internal/domain/lawfirms"
	"estate/internal/domain/payments"
	"estate/internal/domain/rents"
	"estate/internal/domain/storage"
	"estate/internal/domain/users"
	"estate/internal/params"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret-do-not-use"

// calls counts every storage access so tests can prove a rejected request
// never reached the store.
type calls struct {
	mu sync.Mutex
	n  int
}

func (c *calls) hit() {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
}

func (c *calls) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

type stubUsers struct {
	*calls
	mu      sync.Mutex
	byID    map[string]*users.User
	created []*users.User
	filter  users.Filter
}

func (s *stubUsers) List(_ context.Context, _ params.ListQuery, f users.Filter) ([]users.User, int, error) {
	s.hit()
	s.filter = f
	var out []users.User
	for _, u := range s.byID {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (s *stubUsers) GetByID(_ context.Context, id string) (*users.User, error) {
	s.hit()
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.byID[id]; ok {
		return u, nil
	}
	return nil, db.ErrNotFound
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (*users.User, error) {
	s.hit()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, db.ErrNotFound
}

func (s *stubUsers) Create(_ context.Context, u *users.User) error {
	s.hit()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.byID {
		if existing.Email == u.Email {
			return db.ErrConflict
		}
	}
	if u.ID == "" {
		u.ID = "00000000-0000-0000-0000-0000000000ff"
	}
	s.byID[u.ID] = u
	s.created = append(s.created, u)
	return nil
}

func (s *stubUsers) Update(_ context.Context, id string, req users.UpdateUserRequest) (*users.User, error) {
	s.hit()
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	if req.FullName != nil {
		u.FullName = *req.FullName
	}
	if req.Role != nil {
		u.Role = auth.Role(*req.Role)
	}
	return u, nil
}

func (s *stubUsers) Delete(_ context.Context, id string) error {
	s.hit()
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return db.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *stubUsers) UpsertAdmin(context.Context, *users.User) error {
	s.hit()
	return nil
}

type stubLawFirms struct{ *calls }

func (s stubLawFirms) List(context.Context, params.ListQuery) ([]lawfirms.LawFirm, int, error) {
	s.hit()
	return []lawfirms.LawFirm{{ID: 1, Name: "Adeyemi & Co"}}, 1, nil
}
func (s stubLawFirms) GetByID(_ context.Context, id int64) (*lawfirms.LawFirm, error) {
	s.hit()
	return &lawfirms.LawFirm{ID: id, Name: "Adeyemi & Co"}, nil
}
func (s stubLawFirms) Create(_ context.Context, req lawfirms.CreateLawFirmRequest) (*lawfirms.LawFirm, error) {
	s.hit()
	return &lawfirms.LawFirm{ID: 2, Name: req.Name}, nil
}
func (s stubLawFirms) Update(_ context.Context, id int64, _ lawfirms.UpdateLawFirmRequest) (*lawfirms.LawFirm, error) {
	s.hit()
	return &lawfirms.LawFirm{ID: id}, nil
}
func (s stubLawFirms) Delete(context.Context, int64) error {
	s.hit()
	return nil
}

type stubBuildings struct{ *calls }

func (s stubBuildings) List(context.Context, params.ListQuery, buildings.Filter) ([]buildings.Building, int, error) {
	s.hit()
	return []buildings.Building{{ID: 1, Name: "Marina Court", Address: "12 Marina Rd"}}, 1, nil
}
func (s stubBuildings) GetByID(_ context.Context, id int64) (*buildings.Building, error) {
	s.hit()
	if id == 404 {
		return nil, db.ErrNotFound
	}
	return &buildings.Building{ID: id, Name: "Marina Court"}, nil
}
func (s stubBuildings) Create(_ context.Context, req buildings.CreateBuildingRequest) (*buildings.Building, error) {
	s.hit()
	return &buildings.Building{ID: 2, Name: req.Name, Address: req.Address}, nil
}
func (s stubBuildings) Update(_ context.Context, id int64, _ buildings.UpdateBuildingRequest) (*buildings.Building, error) {
	s.hit()
	return &buildings.Building{ID: id}, nil
}
func (s stubBuildings) SetImage(_ context.Context, id int64, url string) (*buildings.Building, error) {
	s.hit()
	return &buildings.Building{ID: id, ImageURL: &url}, nil
}
func (s stubBuildings) Delete(_ context.Context, id int64) error {
	s.hit()
	if id == 409 {
		return db.ErrInUse
	}
	return nil
}

type stubApartments struct{ *calls }

func (s stubApartments) List(context.Context, params.ListQuery, apartments.Filter) ([]apartments.Apartment, int, error) {
	s.hit()
	return []apartments.Apartment{}, 0, nil
}
func (s stubApartments) GetByID(_ context.Context, id int64) (*apartments.Apartment, error) {
	s.hit()
	return &apartments.Apartment{ID: id}, nil
}
func (s stubApartments) Create(context.Context, apartments.CreateApartmentRequest) (*apartments.Apartment, error) {
	s.hit()
	return &apartments.Apartment{ID: 1}, nil
}
func (s stubApartments) Update(_ context.Context, id int64, _ apartments.UpdateApartmentRequest) (*apartments.Apartment, error) {
	s.hit()
	return &apartments.Apartment{ID: id}, nil
}
func (s stubApartments) Delete(context.Context, int64) error {
	s.hit()
	return nil
}

type stubRents struct {
	*calls
	items  []rents.Rent
	filter *rents.Filter
}

func (s stubRents) List(_ context.Context, _ params.ListQuery, f rents.Filter) ([]rents.Rent, int, error) {
	s.hit()
	*s.filter = f
	var out []rents.Rent
	for _, r := range s.items {
		if f.TenantID == "" || r.TenantID == f.TenantID {
			out = append(out, r)
		}
	}
	return out, len(out), nil
}
func (s stubRents) GetByID(_ context.Context, id int64) (*rents.Rent, error) {
	s.hit()
	for _, r := range s.items {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, db.ErrNotFound
}
func (s stubRents) Lock(ctx context.Context, id int64) (*rents.Rent, error) {
	return s.GetByID(ctx, id)
}
func (s stubRents) Create(context.Context, rents.CreateRentRequest) (*rents.Rent, error) {
	s.hit()
	return &rents.Rent{ID: 99}, nil
}
func (s stubRents) Update(_ context.Context, id int64, _ rents.UpdateRentRequest) (*rents.Rent, error) {
	s.hit()
	return &rents.Rent{ID: id}, nil
}
func (s stubRents) Delete(context.Context, int64) error {
	s.hit()
	return nil
}

type stubPayments struct {
	*calls
	items  []payments.Payment
	filter *payments.Filter
}

func (s stubPayments) List(_ context.Context, _ params.ListQuery, f payments.Filter) ([]payments.Payment, int, error) {
	s.hit()
	*s.filter = f
	var out []payments.Payment
	for _, p := range s.items {
		if f.TenantID == "" || p.TenantID == f.TenantID {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}
func (s stubPayments) GetByID(_ context.Context, id int64) (*payments.Payment, error) {
	s.hit()
	for _, p := range s.items {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, db.ErrNotFound
}
func (s stubPayments) Create(_ context.Context, req payments.CreatePaymentRequest) (*payments.Payment, error) {
	s.hit()
	return &payments.Payment{ID: 1, RentID: req.RentID, TenantID: req.TenantID}, nil
}
func (s stubPayments) Update(_ context.Context, id int64, _ payments.UpdatePaymentRequest) (*payments.Payment, error) {
	s.hit()
	return &payments.Payment{ID: id}, nil
}
func (s stubPayments) ReassignTenant(context.Context, int64, string) (int64, error) {
	s.hit()
	return 0, nil
}
func (s stubPayments) Delete(context.Context, int64) error {
	s.hit()
	return nil
}

type stubExpenses struct{ *calls }

func (s stubExpenses) List(context.Context, params.ListQuery, expenses.Filter) ([]expenses.Expense, int, error) {
	s.hit()
	return []expenses.Expense{{ID: 1, Description: "Generator diesel, May", Amount: 125000}}, 1, nil
}
func (s stubExpenses) GetByID(_ context.Context, id int64) (*expenses.Expense, error) {
	s.hit()
	return &expenses.Expense{ID: id}, nil
}
func (s stubExpenses) Create(context.Context, expenses.CreateExpenseRequest) (*expenses.Expense, error) {
	s.hit()
	return &expenses.Expense{ID: 1}, nil
}
func (s stubExpenses) Update(_ context.Context, id int64, _ expenses.UpdateExpenseRequest) (*expenses.Expense, error) {
	s.hit()
	return &expenses.Expense{ID: id}, nil
}
func (s stubExpenses) Delete(context.Context, int64) error {
	s.hit()
	return nil
}

type stubBookingStatus struct{ *calls }

func (s stubBookingStatus) List(context.Context, params.ListQuery) ([]bookingstatus.BookingStatus, int, error) {
	s.hit()
	return []bookingstatus.BookingStatus{{ID: 1, Status: "RESERVED"}}, 1, nil
}
func (s stubBookingStatus) GetByID(_ context.Context, id int64) (*bookingstatus.BookingStatus, error) {
	s.hit()
	return &bookingstatus.BookingStatus{ID: id, Status: "RESERVED"}, nil
}
func (s stubBookingStatus) Create(_ context.Context, status string) (*bookingstatus.BookingStatus, error) {
	s.hit()
	return &bookingstatus.BookingStatus{ID: 2, Status: status}, nil
}
func (s stubBookingStatus) Update(_ context.Context, id int64, status string) (*bookingstatus.BookingStatus, error) {
	s.hit()
	return &bookingstatus.BookingStatus{ID: id, Status: status}, nil
}
func (s stubBookingStatus) Delete(_ context.Context, id int64) (*bookingstatus.BookingStatus, error) {
	s.hit()
	return &bookingstatus.BookingStatus{ID: id, Status: "RESERVED"}, nil
}

type sentMail struct {
	template string
	email    string
}

type stubMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *stubMailer) Send(templateFile, _, email string, _ any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{template: templateFile, email: email})
	return nil
}

const (
	tenantA = "11111111-1111-1111-1111-111111111111"
	tenantB = "22222222-2222-2222-2222-222222222222"
	adminID = "33333333-3333-3333-3333-333333333333"
)

type testEnv struct {
	app        *application
	calls      *calls
	users      *stubUsers
	mail       *stubMailer
	rentFilter *rents.Filter
	payFilter  *payments.Filter
	tokens     *auth.JWTAuthenticator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tokens, err := auth.NewJWTAuthenticator(auth.TokenConfig{Secret: testSecret, Issuer: "estate", Audience: "estate"})
	require.NoError(t, err)

	c := &calls{}
	u := &stubUsers{calls: c, byID: map[string]*users.User{}}
	rentFilter := &rents.Filter{}
	payFilter := &payments.Filter{}

	store := &storage.Container{
		Users:      u,
		LawFirms:   stubLawFirms{c},
		Buildings:  stubBuildings{c},
		Apartments: stubApartments{c},
		Rents: stubRents{calls: c, filter: rentFilter, items: []rents.Rent{
			{ID: 1, TenantID: tenantA, TotalAmount: 1200000},
			{ID: 2, TenantID: tenantB, TotalAmount: 900000},
		}},
		Payments: stubPayments{calls: c, filter: payFilter, items: []payments.Payment{
			{ID: 1, TenantID: tenantA, RentID: 1, AmountPaid: 600000},
			{ID: 2, TenantID: tenantB, RentID: 2, AmountPaid: 900000},
		}},
		Expenses:      stubExpenses{c},
		BookingStatus: stubBookingStatus{c},
	}

	mail := &stubMailer{}

	app := &application{
		config: config{
			Addr:                   ":8080",
			Env:                    "test",
			FrontendURL:            "http://localhost:3000",
			BasicUser:              "ops",
			BasicPass:              "ops-pass",
			LoginRequestsPerMinute: 1000,
		},
		store:         store,
		logger:        zap.NewNop().Sugar(),
		mailer:        mail,
		authenticator: tokens,
		authorizer:    auth.NewAuthorizer(tokens),
	}

	return &testEnv{
		app:        app,
		calls:      c,
		users:      u,
		mail:       mail,
		rentFilter: rentFilter,
		payFilter:  payFilter,
		tokens:     tokens,
	}
}

func (e *testEnv) token(t *testing.T, subject string, role auth.Role) string {
	t.Helper()
	tok, err := e.tokens.GenerateToken(subject, role)
	require.NoError(t, err)
	return tok
}
