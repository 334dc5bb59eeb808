package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"invsys/go_backend/internal/domain/customer"
	"invsys/go_backend/internal/domain/report"
)

const customerColumns = `id, name, email, phone, address, company, created_at, updated_at`

func scanCustomer(row pgx.Row) (customer.Customer, error) {
	var c customer.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.Company, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return c, ErrNotFound
	}
	return c, err
}

func (db *DB) ListCustomers(ctx context.Context, search string, page, pageSize int) ([]customer.Customer, int, error) {
	where := ""
	args := []any{}
	if search != "" {
		where = `WHERE name ILIKE $1 OR email ILIKE $1 OR company ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	var total int
	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := fmt.Sprintf(`SELECT %s FROM customers %s ORDER BY name LIMIT $%d OFFSET $%d`,
		customerColumns, where, len(args)+1, len(args)+2)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []customer.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

func (db *DB) GetCustomer(ctx context.Context, id int64) (customer.Customer, error) {
	return scanCustomer(db.Pool.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
}

func (db *DB) CreateCustomer(ctx context.Context, c *customer.Customer) error {
	return db.Pool.QueryRow(ctx, `
		INSERT INTO customers (name, email, phone, address, company)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		c.Name, c.Email, c.Phone, c.Address, c.Company,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (db *DB) UpdateCustomer(ctx context.Context, c *customer.Customer) error {
	err := db.Pool.QueryRow(ctx, `
		UPDATE customers
		SET name = $2, email = $3, phone = $4, address = $5, company = $6, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at`,
		c.ID, c.Name, c.Email, c.Phone, c.Address, c.Company,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (db *DB) DeleteCustomer(ctx context.Context, id int64) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) SearchCustomers(ctx context.Context, query string, limit int) ([]customer.Customer, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT `+customerColumns+`
		FROM customers
		WHERE name ILIKE $1 OR email ILIKE $1 OR company ILIKE $1
		ORDER BY name
		LIMIT $2`, "%"+query+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []customer.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (db *DB) CustomerDetails(ctx context.Context, id int64) (report.CustomerDetails, error) {
	var d report.CustomerDetails

	c, err := db.GetCustomer(ctx, id)
	if err != nil {
		return d, err
	}
	d.Customer = c

	err = db.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_amount), 0)::text, COALESCE(SUM(paid_amount), 0)::text
		FROM invoices WHERE customer_id = $1`, id,
	).Scan(&d.TotalInvoiced, &d.TotalPaid)
	if err != nil {
		return d, err
	}
	d.Outstanding = d.TotalInvoiced.Sub(d.TotalPaid)

	if d.RecentInvoices, _, err = db.listInvoices(ctx, invoiceFilter{customerID: id}, 1, 10); err != nil {
		return d, err
	}
	if d.RecentQuotations, _, err = db.listQuotations(ctx, quotationFilter{customerID: id}, 1, 10); err != nil {
		return d, err
	}
	if d.RecentReceipts, _, err = db.listReceipts(ctx, receiptFilter{customerID: id}, 1, 10); err != nil {
		return d, err
	}
	return d, nil
}
