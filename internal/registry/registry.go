// Package registry is the in-memory account, sales and discount store
// backing the park service. Every mutation rewrites all three persisted
// collections, matching the behaviour of the system this replaces.
package registry

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"parkpass/internal/models"
)

var (
	ErrDuplicateEmail  = errors.New("email already exists")
	ErrAccountNotFound = errors.New("account not found")
)

// Store is the persistence layer for the three registry collections.
type Store interface {
	LoadAccounts() ([]*models.Account, int64, error)
	SaveAccounts(accounts []*models.Account, nextID int64) error
	LoadSales() (map[string]int, error)
	SaveSales(sales map[string]int) error
	LoadDiscounts() (map[string]float64, error)
	SaveDiscounts(discounts map[string]float64) error
}

// Registry owns the mutable collections and is the only writer to their
// backing store. The mutex exists because the HTTP layer serves
// requests concurrently; the operations themselves are plain
// read-modify-write-persist.
type Registry struct {
	mu        sync.Mutex
	store     Store
	accounts  []*models.Account
	nextID    int64
	sales     map[string]int
	discounts map[string]float64
}

func New(store Store) *Registry {
	return &Registry{
		store:     store,
		nextID:    1,
		sales:     make(map[string]int),
		discounts: make(map[string]float64),
	}
}

// Load reads all three collections from the store. A collection whose
// file does not exist yet is left at its empty default.
func (r *Registry) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts, nextID, err := r.store.LoadAccounts()
	if err != nil {
		return fmt.Errorf("load accounts: %w", err)
	}
	sales, err := r.store.LoadSales()
	if err != nil {
		return fmt.Errorf("load ticket sales: %w", err)
	}
	discounts, err := r.store.LoadDiscounts()
	if err != nil {
		return fmt.Errorf("load discounts: %w", err)
	}

	r.accounts = accounts
	r.nextID = nextID
	r.sales = sales
	r.discounts = discounts
	return nil
}

// persist rewrites every collection, not just the one that changed.
// Caller must hold the mutex.
func (r *Registry) persist() error {
	if err := r.store.SaveAccounts(r.accounts, r.nextID); err != nil {
		return err
	}
	if err := r.store.SaveSales(r.sales); err != nil {
		return err
	}
	return r.store.SaveDiscounts(r.discounts)
}

// CreateAccount registers a new visitor. Emails are the natural key:
// creation fails with ErrDuplicateEmail on a case-sensitive match with
// any existing account. Identifiers come from a persisted counter and
// are never reused after a deletion.
func (r *Registry) CreateAccount(name, email, password string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.accounts {
		if a.Email == email {
			return nil, ErrDuplicateEmail
		}
	}

	account := &models.Account{
		ID:        r.nextID,
		Name:      name,
		Email:     email,
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}
	r.nextID++
	r.accounts = append(r.accounts, account)

	if err := r.persist(); err != nil {
		// Roll the in-memory change back so memory and disk agree.
		r.accounts = r.accounts[:len(r.accounts)-1]
		r.nextID--
		return nil, err
	}
	return account, nil
}

// Authenticate scans for an exact email and password match.
func (r *Registry) Authenticate(email, password string) (*models.Account, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.accounts {
		if a.Email == email && a.Password == password {
			copied := *a
			return &copied, true
		}
	}
	return nil, false
}

// AccountByID returns a copy of the account with the given identifier.
func (r *Registry) AccountByID(id int64) (*models.Account, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.accounts {
		if a.ID == id {
			copied := *a
			return &copied, true
		}
	}
	return nil, false
}

// ModifyAccount overwrites name, email and password wholesale. The
// duplicate-email check excludes the account being modified, so keeping
// the same email is always allowed.
func (r *Registry) ModifyAccount(id int64, name, email, password string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var target *models.Account
	for _, a := range r.accounts {
		if a.ID == id {
			target = a
			break
		}
	}
	if target == nil {
		return ErrAccountNotFound
	}
	for _, a := range r.accounts {
		if a.Email == email && a.ID != id {
			return ErrDuplicateEmail
		}
	}

	prev := *target
	target.Name = name
	target.Email = email
	target.Password = password

	if err := r.persist(); err != nil {
		*target = prev
		return err
	}
	return nil
}

// DeleteAccount removes the account if present. Deleting an absent
// account is a no-op; the delete is idempotent.
func (r *Registry) DeleteAccount(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, a := range r.accounts {
		if a.ID == id {
			r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
			return r.persist()
		}
	}
	return nil
}

// RecordTicketSale adds count to the ledger entry for date, creating
// the entry if the date has not been seen before.
func (r *Registry) RecordTicketSale(date string, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sales[date] += count
	if err := r.persist(); err != nil {
		r.sales[date] -= count
		return err
	}
	return nil
}

// SalesForDate returns the ledger count for an exact date string, zero
// if the date was never recorded.
func (r *Registry) SalesForDate(date string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sales[date]
}

// SetDiscount overwrites the discount percentage for a ticket type.
func (r *Registry) SetDiscount(ticketType string, percentage float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, had := r.discounts[ticketType]
	r.discounts[ticketType] = percentage
	if err := r.persist(); err != nil {
		if had {
			r.discounts[ticketType] = prev
		} else {
			delete(r.discounts, ticketType)
		}
		return err
	}
	return nil
}

// Discount returns the discount percentage for a ticket type, zero if
// none has been set.
func (r *Registry) Discount(ticketType string) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.discounts[ticketType]
}

// Accounts returns a copy of every account, for listings and tests.
func (r *Registry) Accounts() []models.Account {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		out = append(out, *a)
	}
	return out
}

// SalesLedger returns a copy of the per-date sales counters.
func (r *Registry) SalesLedger() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]int, len(r.sales))
	for k, v := range r.sales {
		out[k] = v
	}
	return out
}

// Discounts returns a copy of the discount table.
func (r *Registry) Discounts() map[string]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]float64, len(r.discounts))
	for k, v := range r.discounts {
		out[k] = v
	}
	return out
}
