package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"ostrack/internal/config"
	"ostrack/internal/domain"
	"ostrack/internal/engine/auth"
	"ostrack/internal/repo"
)

// ErrInvalidCredentials is returned on failed login attempts.
var ErrInvalidCredentials = errors.New("invalid credentials")

type Engine struct {
	DB     *sql.DB
	Repo   repo.Repo
	Config *config.Config
	Now    func() time.Time
}

func New(db *sql.DB, cfg *config.Config) Engine {
	return Engine{
		DB:     db,
		Repo:   repo.Repo{DB: db},
		Config: cfg,
		Now:    time.Now,
	}
}

func (e Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func validateOrder(o domain.ServiceOrder) error {
	if !domain.ValidStatus(o.Status) {
		return fmt.Errorf("invalid status %q", o.Status)
	}
	for _, v := range o.Verifications {
		switch v.Status {
		case "", domain.VerificationGood, domain.VerificationBad, domain.VerificationNotApplicable:
		default:
			return fmt.Errorf("invalid verification status %q for item %q", v.Status, v.Item)
		}
	}
	return nil
}

// CreateOrder stores a new order. All fields besides the id may be empty;
// the id is always server-assigned.
func (e Engine) CreateOrder(ctx context.Context, o domain.ServiceOrder, session auth.Session) (domain.ServiceOrder, error) {
	if err := validateOrder(o); err != nil {
		return domain.ServiceOrder{}, err
	}
	now := e.now().UTC().Format(time.RFC3339)
	o.ID = uuid.NewString()
	o.CreatedBy = session.UserID
	o.CreatedAt = now
	o.UpdatedAt = now
	if err := e.Repo.InsertOrder(ctx, o); err != nil {
		return domain.ServiceOrder{}, fmt.Errorf("insert order: %w", err)
	}
	return domain.Normalize(o), nil
}

// GetOrder returns a single normalized order.
func (e Engine) GetOrder(ctx context.Context, id string) (domain.ServiceOrder, error) {
	o, err := e.Repo.GetOrder(ctx, id)
	if err != nil {
		return domain.ServiceOrder{}, err
	}
	return domain.Normalize(o), nil
}

// ListOrders returns normalized orders matching the criteria. Urgent orders
// come first; within each group creation order is kept. The collection is
// filtered here, server-side, with the same criteria the dashboard uses.
func (e Engine) ListOrders(ctx context.Context, c Criteria) ([]domain.ServiceOrder, error) {
	stored, err := e.Repo.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	orders := make([]domain.ServiceOrder, 0, len(stored))
	for _, o := range stored {
		orders = append(orders, domain.Normalize(o))
	}
	orders = Filter(orders, c)
	return urgentFirst(orders), nil
}

// Stats aggregates the full unfiltered collection.
func (e Engine) Stats(ctx context.Context) (Stats, error) {
	orders, err := e.Repo.ListOrders(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Aggregate(orders), nil
}

// UpdateOrder replaces the stored record wholesale (last write wins).
func (e Engine) UpdateOrder(ctx context.Context, id string, o domain.ServiceOrder) (domain.ServiceOrder, error) {
	if id == "" {
		return domain.ServiceOrder{}, errors.New("order id is required")
	}
	if err := validateOrder(o); err != nil {
		return domain.ServiceOrder{}, err
	}
	existing, err := e.Repo.GetOrder(ctx, id)
	if err != nil {
		return domain.ServiceOrder{}, err
	}
	o.ID = id
	o.CreatedBy = existing.CreatedBy
	o.CreatedAt = existing.CreatedAt
	o.UpdatedAt = e.now().UTC().Format(time.RFC3339)
	if err := e.Repo.UpdateOrder(ctx, o); err != nil {
		return domain.ServiceOrder{}, err
	}
	return domain.Normalize(o), nil
}

// DeleteOrder removes an order outright.
func (e Engine) DeleteOrder(ctx context.Context, id string) error {
	return e.Repo.DeleteOrder(ctx, id)
}

func urgentFirst(orders []domain.ServiceOrder) []domain.ServiceOrder {
	urgent := make([]domain.ServiceOrder, 0, len(orders))
	rest := make([]domain.ServiceOrder, 0, len(orders))
	for _, o := range orders {
		if domain.EffectiveStatus(o.Status) == domain.StatusUrgente {
			urgent = append(urgent, o)
		} else {
			rest = append(rest, o)
		}
	}
	return append(urgent, rest...)
}

// Authenticate checks login credentials and opens a session.
func (e Engine) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	u, hash, err := e.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// CreateUser registers a new login. Administrators only.
func (e Engine) CreateUser(ctx context.Context, session auth.Session, email, name, password, role string) (domain.User, error) {
	if err := auth.RequireAdmin(session, "user creation"); err != nil {
		return domain.User{}, err
	}
	if email == "" {
		return domain.User{}, errors.New("email is required")
	}
	if password == "" {
		return domain.User{}, errors.New("password is required")
	}
	if role == "" {
		role = domain.RoleUser
	}
	if role != domain.RoleAdmin && role != domain.RoleUser {
		return domain.User{}, fmt.Errorf("invalid role %q", role)
	}
	if _, _, err := e.Repo.GetUserByEmail(ctx, email); err == nil {
		return domain.User{}, fmt.Errorf("email %s already registered", email)
	} else if !errors.Is(err, repo.ErrNotFound) {
		return domain.User{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	u := domain.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		Role:      role,
		CreatedAt: e.now().UTC().Format(time.RFC3339),
	}
	if err := e.Repo.InsertUser(ctx, u, string(hash)); err != nil {
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// ListUsers returns all logins. Administrators only.
func (e Engine) ListUsers(ctx context.Context, session auth.Session) ([]domain.User, error) {
	if err := auth.RequireAdmin(session, "user listing"); err != nil {
		return nil, err
	}
	return e.Repo.ListUsers(ctx)
}

// DeleteUser removes a login. Administrators only; removing the session's
// own account is rejected.
func (e Engine) DeleteUser(ctx context.Context, session auth.Session, id string) error {
	if err := auth.RequireAdmin(session, "user deletion"); err != nil {
		return err
	}
	if id == session.UserID {
		return errors.New("cannot delete your own account")
	}
	return e.Repo.DeleteUser(ctx, id)
}

// SeedAdmin creates the configured admin login when the user table is
// empty, so a fresh workspace is usable immediately.
func (e Engine) SeedAdmin(ctx context.Context) (bool, error) {
	n, err := e.Repo.CountUsers(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	password := e.Config.Admin.Password
	if password == "" {
		return false, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	u := domain.User{
		ID:        uuid.NewString(),
		Email:     e.Config.Admin.Email,
		Name:      e.Config.Admin.Name,
		Role:      domain.RoleAdmin,
		CreatedAt: e.now().UTC().Format(time.RFC3339),
	}
	if err := e.Repo.InsertUser(ctx, u, string(hash)); err != nil {
		return false, err
	}
	return true, nil
}
