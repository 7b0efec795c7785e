package crm

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// OpenDB opens the sqlite database at path and applies the schema.
func OpenDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?cache=shared&mode=rwc&_journal_mode=WAL", path))
	if err != nil {
		return nil, fmt.Errorf("crm: opening db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// OpenTestDB opens a throwaway migrated database for tests.
func OpenTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening test db: %s", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func migrate(db *sql.DB) error {
	entries, err := migrations.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("crm: listing migrations: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		migration, err := migrations.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return fmt.Errorf("crm: reading migration %s: %w", entry.Name(), err)
		}
		if _, err := db.Exec(string(migration)); err != nil {
			return fmt.Errorf("crm: applying migration %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// Customer is a CRM contact persisted in sqlite.
type Customer struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Age        int       `json:"age"`
	Company    string    `json:"company"`
	JobTitle   string    `json:"jobTitle"`
	Industry   string    `json:"industry"`
	Website    string    `json:"website"`
	Status     string    `json:"status"`
	Priority   string    `json:"priority"`
	Newsletter bool      `json:"newsletter"`
	Created    time.Time `json:"created"`
}

// Record flattens the customer for form prefill, detail, and table rendering.
func (c Customer) Record() map[string]any {
	return map[string]any{
		"id":         c.ID,
		"firstName":  c.FirstName,
		"lastName":   c.LastName,
		"email":      c.Email,
		"phone":      c.Phone,
		"age":        float64(c.Age),
		"company":    c.Company,
		"jobTitle":   c.JobTitle,
		"industry":   c.Industry,
		"website":    c.Website,
		"status":     c.Status,
		"priority":   c.Priority,
		"newsletter": c.Newsletter,
		"created":    c.Created.Format(time.RFC3339),
	}
}

const customerColumns = "id, first_name, last_name, email, phone, age, company, job_title, industry, website, status, priority, newsletter, created"

// CustomerStore persists customers.
type CustomerStore struct {
	db *sql.DB
}

// NewCustomerStore wraps an opened database.
func NewCustomerStore(db *sql.DB) *CustomerStore {
	return &CustomerStore{db: db}
}

// List returns all customers, newest first.
func (s *CustomerStore) List(ctx context.Context) ([]Customer, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+customerColumns+" FROM customers ORDER BY created DESC, id")
	if err != nil {
		return nil, fmt.Errorf("crm: listing customers: %w", err)
	}
	defer rows.Close()

	var out []Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, customer)
	}
	return out, rows.Err()
}

// Get returns one customer by id.
func (s *CustomerStore) Get(ctx context.Context, id string) (Customer, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+customerColumns+" FROM customers WHERE id = $1", id)
	customer, err := scanCustomer(row)
	if err == sql.ErrNoRows {
		return Customer{}, ErrNotFound
	}
	return customer, err
}

// Create inserts a customer and returns it with its generated id.
func (s *CustomerStore) Create(ctx context.Context, customer Customer) (Customer, error) {
	customer.ID = uuid.NewString()
	if customer.Created.IsZero() {
		customer.Created = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO customers (`+customerColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		customer.ID, customer.FirstName, customer.LastName, customer.Email,
		customer.Phone, customer.Age, customer.Company, customer.JobTitle,
		customer.Industry, customer.Website, customer.Status, customer.Priority,
		customer.Newsletter, customer.Created.Unix())
	if err != nil {
		return Customer{}, fmt.Errorf("crm: creating customer: %w", err)
	}
	return customer, nil
}

// Update replaces the mutable attributes of a customer.
func (s *CustomerStore) Update(ctx context.Context, id string, customer Customer) (Customer, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE customers SET
		   first_name = $1, last_name = $2, email = $3, phone = $4, age = $5,
		   company = $6, job_title = $7, industry = $8, website = $9,
		   status = $10, priority = $11, newsletter = $12
		 WHERE id = $13`,
		customer.FirstName, customer.LastName, customer.Email, customer.Phone,
		customer.Age, customer.Company, customer.JobTitle, customer.Industry,
		customer.Website, customer.Status, customer.Priority, customer.Newsletter, id)
	if err != nil {
		return Customer{}, fmt.Errorf("crm: updating customer: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return Customer{}, ErrNotFound
	}
	return s.Get(ctx, id)
}

// Delete removes a customer.
func (s *CustomerStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM customers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("crm: deleting customer: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row scanner) (Customer, error) {
	var c Customer
	var newsletter int
	var created int64
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Age,
		&c.Company, &c.JobTitle, &c.Industry, &c.Website, &c.Status, &c.Priority,
		&newsletter, &created)
	if err != nil {
		return Customer{}, err
	}
	c.Newsletter = newsletter != 0
	c.Created = time.Unix(created, 0).UTC()
	return c, nil
}
