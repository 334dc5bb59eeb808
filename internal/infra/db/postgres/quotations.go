package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"invsys/go_backend/internal/domain/document"
	"invsys/go_backend/internal/domain/invoice"
	"invsys/go_backend/internal/domain/quotation"
)

const quotationColumns = `q.id, q.number, q.customer_id, c.name, q.status, q.quotation_date, q.valid_until,
	q.subtotal::text, q.tax_rate::text, q.tax_amount::text, q.total_amount::text, q.notes, q.created_at, q.updated_at`

func scanQuotation(row pgx.Row) (quotation.Quotation, error) {
	var q quotation.Quotation
	err := row.Scan(&q.ID, &q.Number, &q.CustomerID, &q.CustomerName, &q.Status, &q.QuotationDate, &q.ValidUntil,
		&q.Subtotal, &q.TaxRate, &q.TaxAmount, &q.TotalAmount, &q.Notes, &q.CreatedAt, &q.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return q, ErrNotFound
	}
	return q, err
}

type quotationFilter struct {
	search     string
	status     string
	customerID int64
}

func (f quotationFilter) clause() (string, []any) {
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
		and(fmt.Sprintf("(q.number ILIKE $%d OR c.name ILIKE $%d)", len(args), len(args)))
	}
	if f.status != "" {
		args = append(args, f.status)
		and(fmt.Sprintf("q.status = $%d", len(args)))
	}
	if f.customerID != 0 {
		args = append(args, f.customerID)
		and(fmt.Sprintf("q.customer_id = $%d", len(args)))
	}
	return where, args
}

func (db *DB) ListQuotations(ctx context.Context, search, status string, page, pageSize int) ([]quotation.Quotation, int, error) {
	return db.listQuotations(ctx, quotationFilter{search: search, status: status}, page, pageSize)
}

func (db *DB) listQuotations(ctx context.Context, f quotationFilter, page, pageSize int) ([]quotation.Quotation, int, error) {
	where, args := f.clause()

	var total int
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM quotations q JOIN customers c ON c.id = q.customer_id `+where, args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	q := fmt.Sprintf(`
		SELECT %s FROM quotations q JOIN customers c ON c.id = q.customer_id
		%s ORDER BY q.quotation_date DESC, q.id DESC LIMIT $%d OFFSET $%d`,
		quotationColumns, where, len(args)+1, len(args)+2)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []quotation.Quotation
	for rows.Next() {
		qt, err := scanQuotation(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, qt)
	}
	return out, total, rows.Err()
}

func (db *DB) GetQuotation(ctx context.Context, id int64) (quotation.Quotation, error) {
	q, err := scanQuotation(db.Pool.QueryRow(ctx, `
		SELECT `+quotationColumns+`
		FROM quotations q JOIN customers c ON c.id = q.customer_id
		WHERE q.id = $1`, id))
	if err != nil {
		return q, err
	}
	q.Items, err = db.quotationItems(ctx, id)
	return q, err
}

func (db *DB) quotationItems(ctx context.Context, quotationID int64) ([]quotation.Item, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, description, quantity::text, unit_price::text, line_total::text
		FROM quotation_items WHERE quotation_id = $1 ORDER BY id`, quotationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []quotation.Item
	for rows.Next() {
		var it quotation.Item
		if err := rows.Scan(&it.ID, &it.Description, &it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (db *DB) CreateQuotation(ctx context.Context, q *quotation.Quotation) error {
	return pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		number, err := nextNumber(ctx, tx, document.KindQuotation)
		if err != nil {
			return err
		}
		q.Number = number

		err = tx.QueryRow(ctx, `
			INSERT INTO quotations (number, customer_id, status, quotation_date, valid_until,
				subtotal, tax_rate, tax_amount, total_amount, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id, created_at, updated_at`,
			q.Number, q.CustomerID, q.Status, q.QuotationDate, q.ValidUntil,
			q.Subtotal, q.TaxRate, q.TaxAmount, q.TotalAmount, q.Notes,
		).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
		if err != nil {
			return err
		}
		return insertQuotationItems(ctx, tx, q.ID, q.Items)
	})
}

func (db *DB) UpdateQuotation(ctx context.Context, q *quotation.Quotation) error {
	return pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			UPDATE quotations
			SET customer_id = $2, status = $3, quotation_date = $4, valid_until = $5,
				subtotal = $6, tax_rate = $7, tax_amount = $8, total_amount = $9, notes = $10,
				updated_at = now()
			WHERE id = $1
			RETURNING number, created_at, updated_at`,
			q.ID, q.CustomerID, q.Status, q.QuotationDate, q.ValidUntil,
			q.Subtotal, q.TaxRate, q.TaxAmount, q.TotalAmount, q.Notes,
		).Scan(&q.Number, &q.CreatedAt, &q.UpdatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM quotation_items WHERE quotation_id = $1`, q.ID); err != nil {
			return err
		}
		return insertQuotationItems(ctx, tx, q.ID, q.Items)
	})
}

func insertQuotationItems(ctx context.Context, tx pgx.Tx, quotationID int64, items []quotation.Item) error {
	for i := range items {
		err := tx.QueryRow(ctx, `
			INSERT INTO quotation_items (quotation_id, description, quantity, unit_price, line_total)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			quotationID, items[i].Description, items[i].Quantity, items[i].UnitPrice, items[i].LineTotal,
		).Scan(&items[i].ID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (db *DB) DeleteQuotation(ctx context.Context, id int64) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM quotations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ConvertQuotation creates an invoice from a quotation in one transaction:
// items and totals are copied, the invoice gets the next INV number and the
// quotation is marked accepted.
func (db *DB) ConvertQuotation(ctx context.Context, id int64, dueDate time.Time) (invoice.Invoice, error) {
	var inv invoice.Invoice

	err := pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		q, err := scanQuotation(tx.QueryRow(ctx, `
			SELECT `+quotationColumns+`
			FROM quotations q JOIN customers c ON c.id = q.customer_id
			WHERE q.id = $1
			FOR UPDATE OF q`, id))
		if err != nil {
			return err
		}

		number, err := nextNumber(ctx, tx, document.KindInvoice)
		if err != nil {
			return err
		}

		inv = invoice.Invoice{
			Number:       number,
			CustomerID:   q.CustomerID,
			CustomerName: q.CustomerName,
			QuotationID:  &q.ID,
			Status:       invoice.StatusDraft,
			InvoiceDate:  time.Now().UTC().Truncate(24 * time.Hour),
			DueDate:      dueDate,
			TaxRate:      q.TaxRate,
			Subtotal:     q.Subtotal,
			TaxAmount:    q.TaxAmount,
			TotalAmount:  q.TotalAmount,
			Notes:        q.Notes,
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO invoices (number, customer_id, quotation_id, status, invoice_date, due_date,
				tax_rate, discount_percentage, discount_amount, subtotal, tax_amount, total_amount,
				paid_amount, payment_method, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, 0, 0, $8, $9, $10, 0, '', $11)
			RETURNING id, created_at, updated_at`,
			inv.Number, inv.CustomerID, inv.QuotationID, inv.Status, inv.InvoiceDate, inv.DueDate,
			inv.TaxRate, inv.Subtotal, inv.TaxAmount, inv.TotalAmount, inv.Notes,
		).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO invoice_items (invoice_id, description, quantity, unit_price, line_total)
			SELECT $1, description, quantity, unit_price, line_total
			FROM quotation_items WHERE quotation_id = $2 ORDER BY id`, inv.ID, q.ID); err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE quotations SET status = $2, updated_at = now() WHERE id = $1`,
			q.ID, quotation.StatusAccepted)
		return err
	})
	if err != nil {
		return invoice.Invoice{}, err
	}

	inv.Items, err = db.invoiceItems(ctx, inv.ID)
	return inv, err
}
