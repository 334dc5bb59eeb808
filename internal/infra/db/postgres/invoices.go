package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"invsys/go_backend/internal/domain/document"
	"invsys/go_backend/internal/domain/invoice"
)

const invoiceColumns = `i.id, i.number, i.customer_id, c.name, i.quotation_id, i.status, i.invoice_date, i.due_date,
	i.tax_rate::text, i.discount_percentage::text, i.discount_amount::text, i.subtotal::text, i.tax_amount::text,
	i.total_amount::text, i.paid_amount::text, i.payment_method, i.notes, i.created_at, i.updated_at`

func scanInvoice(row pgx.Row) (invoice.Invoice, error) {
	var inv invoice.Invoice
	err := row.Scan(&inv.ID, &inv.Number, &inv.CustomerID, &inv.CustomerName, &inv.QuotationID, &inv.Status,
		&inv.InvoiceDate, &inv.DueDate, &inv.TaxRate, &inv.DiscountPercentage, &inv.DiscountAmount,
		&inv.Subtotal, &inv.TaxAmount, &inv.TotalAmount, &inv.PaidAmount, &inv.PaymentMethod, &inv.Notes,
		&inv.CreatedAt, &inv.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return inv, ErrNotFound
	}
	return inv, err
}

type invoiceFilter struct {
	search     string
	status     string
	customerID int64
}

func (f invoiceFilter) clause() (string, []any) {
	where := ""
	var args []any
	and := func(cond string) {
		if where == "" {
			where = "WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}
	if f.search != "" {
		args = append(args, "%"+f.search+"%")
		and(fmt.Sprintf("(i.number ILIKE $%d OR c.name ILIKE $%d)", len(args), len(args)))
	}
	if f.status != "" {
		args = append(args, f.status)
		and(fmt.Sprintf("i.status = $%d", len(args)))
	}
	if f.customerID != 0 {
		args = append(args, f.customerID)
		and(fmt.Sprintf("i.customer_id = $%d", len(args)))
	}
	return where, args
}

func (db *DB) ListInvoices(ctx context.Context, search, status string, page, pageSize int) ([]invoice.Invoice, int, error) {
	return db.listInvoices(ctx, invoiceFilter{search: search, status: status}, page, pageSize)
}

func (db *DB) listInvoices(ctx context.Context, f invoiceFilter, page, pageSize int) ([]invoice.Invoice, int, error) {
	where, args := f.clause()

	var total int
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM invoices i JOIN customers c ON c.id = i.customer_id `+where, args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	q := fmt.Sprintf(`
		SELECT %s FROM invoices i JOIN customers c ON c.id = i.customer_id
		%s ORDER BY i.invoice_date DESC, i.id DESC LIMIT $%d OFFSET $%d`,
		invoiceColumns, where, len(args)+1, len(args)+2)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []invoice.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, inv)
	}
	return out, total, rows.Err()
}

func (db *DB) GetInvoice(ctx context.Context, id int64) (invoice.Invoice, error) {
	inv, err := scanInvoice(db.Pool.QueryRow(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices i JOIN customers c ON c.id = i.customer_id
		WHERE i.id = $1`, id))
	if err != nil {
		return inv, err
	}
	inv.Items, err = db.invoiceItems(ctx, id)
	return inv, err
}

func (db *DB) invoiceItems(ctx context.Context, invoiceID int64) ([]invoice.Item, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, description, quantity::text, unit_price::text, line_total::text
		FROM invoice_items WHERE invoice_id = $1 ORDER BY id`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []invoice.Item
	for rows.Next() {
		var it invoice.Item
		if err := rows.Scan(&it.ID, &it.Description, &it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (db *DB) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	return pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		number, err := nextNumber(ctx, tx, document.KindInvoice)
		if err != nil {
			return err
		}
		inv.Number = number

		err = tx.QueryRow(ctx, `
			INSERT INTO invoices (number, customer_id, quotation_id, status, invoice_date, due_date,
				tax_rate, discount_percentage, discount_amount, subtotal, tax_amount, total_amount,
				paid_amount, payment_method, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 0, $13, $14)
			RETURNING id, created_at, updated_at`,
			inv.Number, inv.CustomerID, inv.QuotationID, inv.Status, inv.InvoiceDate, inv.DueDate,
			inv.TaxRate, inv.DiscountPercentage, inv.DiscountAmount, inv.Subtotal, inv.TaxAmount,
			inv.TotalAmount, inv.PaymentMethod, inv.Notes,
		).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
		if err != nil {
			return err
		}
		return insertInvoiceItems(ctx, tx, inv.ID, inv.Items)
	})
}

func (db *DB) UpdateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	return pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			UPDATE invoices
			SET customer_id = $2, status = $3, invoice_date = $4, due_date = $5, tax_rate = $6,
				discount_percentage = $7, discount_amount = $8, subtotal = $9, tax_amount = $10,
				total_amount = $11, payment_method = $12, notes = $13, updated_at = now()
			WHERE id = $1
			RETURNING number, paid_amount::text, created_at, updated_at`,
			inv.ID, inv.CustomerID, inv.Status, inv.InvoiceDate, inv.DueDate, inv.TaxRate,
			inv.DiscountPercentage, inv.DiscountAmount, inv.Subtotal, inv.TaxAmount,
			inv.TotalAmount, inv.PaymentMethod, inv.Notes,
		).Scan(&inv.Number, &inv.PaidAmount, &inv.CreatedAt, &inv.UpdatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, inv.ID); err != nil {
			return err
		}
		return insertInvoiceItems(ctx, tx, inv.ID, inv.Items)
	})
}

func insertInvoiceItems(ctx context.Context, tx pgx.Tx, invoiceID int64, items []invoice.Item) error {
	for i := range items {
		err := tx.QueryRow(ctx, `
			INSERT INTO invoice_items (invoice_id, description, quantity, unit_price, line_total)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			invoiceID, items[i].Description, items[i].Quantity, items[i].UnitPrice, items[i].LineTotal,
		).Scan(&items[i].ID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (db *DB) DeleteInvoice(ctx context.Context, id int64) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
