package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"invsys/go_backend/internal/domain/document"
	"invsys/go_backend/internal/domain/invoice"
	"invsys/go_backend/internal/domain/receipt"
)

const receiptColumns = `r.id, r.number, r.invoice_id, i.number, r.customer_id, c.name, r.amount::text,
	r.payment_method, r.payment_date, r.reference_number, r.notes, r.created_at, r.updated_at`

func scanReceipt(row pgx.Row) (receipt.Receipt, error) {
	var rc receipt.Receipt
	err := row.Scan(&rc.ID, &rc.Number, &rc.InvoiceID, &rc.InvoiceNumber, &rc.CustomerID, &rc.CustomerName,
		&rc.Amount, &rc.PaymentMethod, &rc.PaymentDate, &rc.ReferenceNumber, &rc.Notes, &rc.CreatedAt, &rc.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return rc, ErrNotFound
	}
	return rc, err
}

type receiptFilter struct {
	search     string
	customerID int64
}

func (f receiptFilter) clause() (string, []any) {
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
		and(fmt.Sprintf("(r.number ILIKE $%d OR c.name ILIKE $%d OR i.number ILIKE $%d)", len(args), len(args), len(args)))
	}
	if f.customerID != 0 {
		args = append(args, f.customerID)
		and(fmt.Sprintf("r.customer_id = $%d", len(args)))
	}
	return where, args
}

const receiptFrom = `FROM receipts r
	JOIN invoices i ON i.id = r.invoice_id
	JOIN customers c ON c.id = r.customer_id`

func (db *DB) ListReceipts(ctx context.Context, search string, page, pageSize int) ([]receipt.Receipt, int, error) {
	return db.listReceipts(ctx, receiptFilter{search: search}, page, pageSize)
}

func (db *DB) listReceipts(ctx context.Context, f receiptFilter, page, pageSize int) ([]receipt.Receipt, int, error) {
	where, args := f.clause()

	var total int
	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) `+receiptFrom+` `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := fmt.Sprintf(`SELECT %s %s %s ORDER BY r.payment_date DESC, r.id DESC LIMIT $%d OFFSET $%d`,
		receiptColumns, receiptFrom, where, len(args)+1, len(args)+2)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []receipt.Receipt
	for rows.Next() {
		rc, err := scanReceipt(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, rc)
	}
	return out, total, rows.Err()
}

func (db *DB) GetReceipt(ctx context.Context, id int64) (receipt.Receipt, error) {
	return scanReceipt(db.Pool.QueryRow(ctx,
		`SELECT `+receiptColumns+` `+receiptFrom+` WHERE r.id = $1`, id))
}

func (db *DB) CreateReceipt(ctx context.Context, rc *receipt.Receipt) error {
	return pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		var customerID int64
		var invoiceNumber, customerName string
		err := tx.QueryRow(ctx, `
			SELECT i.customer_id, i.number, c.name
			FROM invoices i JOIN customers c ON c.id = i.customer_id
			WHERE i.id = $1
			FOR UPDATE OF i`, rc.InvoiceID,
		).Scan(&customerID, &invoiceNumber, &customerName)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		rc.CustomerID = customerID
		rc.InvoiceNumber = invoiceNumber
		rc.CustomerName = customerName

		number, err := nextNumber(ctx, tx, document.KindReceipt)
		if err != nil {
			return err
		}
		rc.Number = number

		err = tx.QueryRow(ctx, `
			INSERT INTO receipts (number, invoice_id, customer_id, amount, payment_method,
				payment_date, reference_number, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, created_at, updated_at`,
			rc.Number, rc.InvoiceID, rc.CustomerID, rc.Amount, rc.PaymentMethod,
			rc.PaymentDate, rc.ReferenceNumber, rc.Notes,
		).Scan(&rc.ID, &rc.CreatedAt, &rc.UpdatedAt)
		if err != nil {
			return err
		}
		return settleInvoice(ctx, tx, rc.InvoiceID)
	})
}

func (db *DB) UpdateReceipt(ctx context.Context, rc *receipt.Receipt) error {
	return pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			UPDATE receipts
			SET amount = $2, payment_method = $3, payment_date = $4, reference_number = $5,
				notes = $6, updated_at = now()
			WHERE id = $1
			RETURNING number, invoice_id, customer_id, created_at, updated_at`,
			rc.ID, rc.Amount, rc.PaymentMethod, rc.PaymentDate, rc.ReferenceNumber, rc.Notes,
		).Scan(&rc.Number, &rc.InvoiceID, &rc.CustomerID, &rc.CreatedAt, &rc.UpdatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return settleInvoice(ctx, tx, rc.InvoiceID)
	})
}

func (db *DB) DeleteReceipt(ctx context.Context, id int64) error {
	return pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		var invoiceID int64
		err := tx.QueryRow(ctx, `DELETE FROM receipts WHERE id = $1 RETURNING invoice_id`, id).Scan(&invoiceID)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return settleInvoice(ctx, tx, invoiceID)
	})
}

// settleInvoice recomputes paid_amount from the receipts sum and re-derives
// the invoice status, all inside the caller's transaction. Receipt edits and
// deletes therefore can never leave the invoice ledger stale.
func settleInvoice(ctx context.Context, tx pgx.Tx, invoiceID int64) error {
	var paid, total decimal.Decimal
	var status invoice.Status
	err := tx.QueryRow(ctx, `
		SELECT COALESCE((SELECT SUM(amount) FROM receipts WHERE invoice_id = i.id), 0)::text,
			i.total_amount::text, i.status
		FROM invoices i WHERE i.id = $1`, invoiceID,
	).Scan(&paid, &total, &status)
	if err != nil {
		return err
	}

	inv := invoice.Invoice{Status: status, TotalAmount: total}
	inv.SettlePayment(paid)

	_, err = tx.Exec(ctx, `
		UPDATE invoices SET paid_amount = $2, status = $3, updated_at = now() WHERE id = $1`,
		invoiceID, inv.PaidAmount, inv.Status)
	return err
}
