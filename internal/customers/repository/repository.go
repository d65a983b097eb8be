package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"beacon_backend/platform/apperr"
)

const (
	customerNotFoundMessage    = "customer not found"
	stakeholderNotFoundMessage = "stakeholder not found"
)

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new customers repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

const customerColumns = `id, tenant_id, name, domain, description, health_status, mrr_cents, owner_id, renewal_date, created_at, updated_at`

func scanCustomer(row pgx.Row) (Customer, error) {
	var c Customer
	err := row.Scan(
		&c.ID, &c.TenantID, &c.Name, &c.Domain, &c.Description, &c.HealthStatus,
		&c.MRRCents, &c.OwnerID, &c.RenewalDate, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// GetByID retrieves a customer by its ID.
func (r *Repo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE id = $1 AND tenant_id = $2`

	c, err := scanCustomer(r.pool.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Customer{}, apperr.NotFound(customerNotFoundMessage)
		}
		return Customer{}, fmt.Errorf("get customer by id: %w", err)
	}
	return c, nil
}

// List retrieves customers for a tenant with optional narrowing.
func (r *Repo) List(ctx context.Context, tenantID uuid.UUID, params ListCustomersParams) ([]Customer, int, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT ` + customerColumns + `, COUNT(*) OVER () AS total
		FROM customers
		WHERE tenant_id = $1
			AND ($2 = '' OR health_status = $2)
			AND ($3::uuid IS NULL OR owner_id = $3)
		ORDER BY name, id
		LIMIT $4 OFFSET $5`

	rows, err := r.pool.Query(ctx, query, tenantID, params.HealthStatus, params.OwnerID, limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	customers := make([]Customer, 0)
	total := 0
	for rows.Next() {
		var c Customer
		var rowTotal int64
		if err := rows.Scan(
			&c.ID, &c.TenantID, &c.Name, &c.Domain, &c.Description, &c.HealthStatus,
			&c.MRRCents, &c.OwnerID, &c.RenewalDate, &c.CreatedAt, &c.UpdatedAt, &rowTotal,
		); err != nil {
			return nil, 0, fmt.Errorf("scan customer: %w", err)
		}
		total = int(rowTotal)
		customers = append(customers, c)
	}
	if rows.Err() != nil {
		return nil, 0, rows.Err()
	}
	return customers, total, nil
}

// Create inserts a new customer.
func (r *Repo) Create(ctx context.Context, tenantID uuid.UUID, params CreateCustomerParams) (Customer, error) {
	health := params.HealthStatus
	if health == "" {
		health = "healthy"
	}

	query := `
		INSERT INTO customers (tenant_id, name, domain, description, health_status, mrr_cents, owner_id, renewal_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + customerColumns

	c, err := scanCustomer(r.pool.QueryRow(ctx, query,
		tenantID, params.Name, params.Domain, params.Description, health,
		params.MRRCents, params.OwnerID, params.RenewalDate,
	))
	if err != nil {
		return Customer{}, fmt.Errorf("create customer: %w", err)
	}
	return c, nil
}

// Update applies a partial update; nil fields keep their current value.
func (r *Repo) Update(ctx context.Context, tenantID uuid.UUID, params UpdateCustomerParams) (Customer, error) {
	sets := []string{"updated_at = now()"}
	args := []interface{}{params.ID, tenantID}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if params.Name != nil {
		add("name", *params.Name)
	}
	if params.Domain != nil {
		add("domain", *params.Domain)
	}
	if params.Description != nil {
		add("description", *params.Description)
	}
	if params.HealthStatus != nil {
		add("health_status", *params.HealthStatus)
	}
	if params.MRRCents != nil {
		add("mrr_cents", *params.MRRCents)
	}
	if params.OwnerID != nil {
		add("owner_id", *params.OwnerID)
	}
	if params.RenewalDate != nil {
		add("renewal_date", *params.RenewalDate)
	}

	query := `
		UPDATE customers
		SET ` + strings.Join(sets, ", ") + `
		WHERE id = $1 AND tenant_id = $2
		RETURNING ` + customerColumns

	c, err := scanCustomer(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Customer{}, apperr.NotFound(customerNotFoundMessage)
		}
		return Customer{}, fmt.Errorf("update customer: %w", err)
	}
	return c, nil
}

// Delete removes a customer and, through cascade, its dependent records.
func (r *Repo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(customerNotFoundMessage)
	}
	return nil
}

const stakeholderColumns = `id, tenant_id, customer_id, name, email, title, owner_id, created_at, updated_at`

// CreateStakeholder adds a stakeholder to a customer.
func (r *Repo) CreateStakeholder(ctx context.Context, tenantID uuid.UUID, params CreateStakeholderParams) (Stakeholder, error) {
	query := `
		INSERT INTO stakeholders (tenant_id, customer_id, name, email, title, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + stakeholderColumns

	var s Stakeholder
	err := r.pool.QueryRow(ctx, query,
		tenantID, params.CustomerID, params.Name, params.Email, params.Title, params.OwnerID,
	).Scan(&s.ID, &s.TenantID, &s.CustomerID, &s.Name, &s.Email, &s.Title, &s.OwnerID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return Stakeholder{}, fmt.Errorf("create stakeholder: %w", err)
	}
	return s, nil
}

// ListStakeholders retrieves the stakeholders attached to a customer.
func (r *Repo) ListStakeholders(ctx context.Context, tenantID, customerID uuid.UUID) ([]Stakeholder, error) {
	query := `
		SELECT ` + stakeholderColumns + `
		FROM stakeholders
		WHERE tenant_id = $1 AND customer_id = $2
		ORDER BY name, id`

	rows, err := r.pool.Query(ctx, query, tenantID, customerID)
	if err != nil {
		return nil, fmt.Errorf("list stakeholders: %w", err)
	}
	defer rows.Close()

	stakeholders := make([]Stakeholder, 0)
	for rows.Next() {
		var s Stakeholder
		if err := rows.Scan(&s.ID, &s.TenantID, &s.CustomerID, &s.Name, &s.Email, &s.Title, &s.OwnerID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stakeholder: %w", err)
		}
		stakeholders = append(stakeholders, s)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return stakeholders, nil
}

// DeleteStakeholder removes one stakeholder.
func (r *Repo) DeleteStakeholder(ctx context.Context, tenantID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM stakeholders WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("delete stakeholder: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(stakeholderNotFoundMessage)
	}
	return nil
}
