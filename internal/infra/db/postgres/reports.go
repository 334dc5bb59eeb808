package postgres

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"invsys/go_backend/internal/domain/report"
)

func (db *DB) Dashboard(ctx context.Context, today time.Time) (report.Dashboard, error) {
	var d report.Dashboard

	err := db.Pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM customers),
			(SELECT COUNT(*) FROM invoices),
			(SELECT COUNT(*) FROM quotations),
			(SELECT COUNT(*) FROM receipts),
			(SELECT COUNT(*) FROM invoices WHERE status = 'sent'),
			(SELECT COUNT(*) FROM invoices WHERE status = 'overdue'),
			COALESCE((SELECT SUM(total_amount) FROM invoices), 0)::text,
			COALESCE((SELECT SUM(paid_amount) FROM invoices), 0)::text,
			COALESCE((SELECT SUM(total_amount - paid_amount) FROM invoices
				WHERE status IN ('sent', 'overdue') AND due_date < $1::date - 30), 0)::text`,
		today,
	).Scan(&d.TotalCustomers, &d.TotalInvoices, &d.TotalQuotations, &d.TotalReceipts,
		&d.PendingInvoices, &d.OverdueInvoices, &d.TotalInvoiced, &d.TotalPaid, &d.Overdue30Days)
	if err != nil {
		return d, err
	}
	d.TotalOutstanding = d.TotalInvoiced.Sub(d.TotalPaid)
	d.CollectionRate = report.CollectionRate(d.TotalInvoiced, d.TotalPaid)

	if d.RecentInvoices, _, err = db.listInvoices(ctx, invoiceFilter{}, 1, 5); err != nil {
		return d, err
	}
	if d.RecentQuotations, _, err = db.listQuotations(ctx, quotationFilter{}, 1, 5); err != nil {
		return d, err
	}
	if d.TopOutstanding, err = db.topOutstandingCustomers(ctx, 5); err != nil {
		return d, err
	}
	return d, nil
}

func (db *DB) Analytics(ctx context.Context, today time.Time) (report.Analytics, error) {
	var a report.Analytics

	err := db.Pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM customers),
			(SELECT COUNT(*) FROM invoices),
			(SELECT COUNT(*) FROM quotations),
			(SELECT COUNT(*) FROM receipts),
			COALESCE((SELECT SUM(total_amount) FROM invoices), 0)::text,
			COALESCE((SELECT SUM(paid_amount) FROM invoices), 0)::text`,
	).Scan(&a.TotalCustomers, &a.TotalInvoices, &a.TotalQuotations, &a.TotalReceipts,
		&a.TotalInvoiced, &a.TotalPaid)
	if err != nil {
		return a, err
	}
	a.TotalOutstanding = a.TotalInvoiced.Sub(a.TotalPaid)
	a.CollectionRate = report.CollectionRate(a.TotalInvoiced, a.TotalPaid)

	if a.Aging, err = db.receivablesAging(ctx, today); err != nil {
		return a, err
	}
	if a.PaymentMethods, err = db.paymentMethodStats(ctx); err != nil {
		return a, err
	}
	if a.Monthly, err = db.monthlyTrend(ctx, today); err != nil {
		return a, err
	}
	if a.TopCustomers, err = db.topOutstandingCustomers(ctx, 10); err != nil {
		return a, err
	}
	return a, nil
}

// receivablesAging groups unpaid balances of open invoices by time since
// the due date. Bucketing happens in Go so the boundaries live in exactly
// one place (report.AgeBucket).
func (db *DB) receivablesAging(ctx context.Context, today time.Time) (report.Aging, error) {
	var aging report.Aging

	rows, err := db.Pool.Query(ctx, `
		SELECT due_date, (total_amount - paid_amount)::text
		FROM invoices
		WHERE status IN ('sent', 'overdue')`)
	if err != nil {
		return aging, err
	}
	defer rows.Close()

	for rows.Next() {
		var due time.Time
		var balance decimal.Decimal
		if err := rows.Scan(&due, &balance); err != nil {
			return aging, err
		}
		aging.Add(report.AgeBucket(due, today), balance)
	}
	return aging, rows.Err()
}

func (db *DB) paymentMethodStats(ctx context.Context) ([]report.PaymentMethodStat, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT payment_method, SUM(amount)::text, COUNT(*), AVG(amount)::numeric(10,2)::text
		FROM receipts
		GROUP BY payment_method
		ORDER BY SUM(amount) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []report.PaymentMethodStat
	for rows.Next() {
		var s report.PaymentMethodStat
		if err := rows.Scan(&s.Method, &s.TotalAmount, &s.Count, &s.AvgAmount); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// monthlyTrend returns invoiced vs collected amounts for the last 12
// calendar months, oldest first. Months without activity appear zeroed.
func (db *DB) monthlyTrend(ctx context.Context, today time.Time) ([]report.MonthlyPoint, error) {
	start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -11, 0)

	points := make([]report.MonthlyPoint, 12)
	index := make(map[string]*report.MonthlyPoint, 12)
	for i := range points {
		month := start.AddDate(0, i, 0).Format("2006-01")
		points[i] = report.MonthlyPoint{
			Month:          month,
			InvoicedAmount: decimal.Zero,
			PaidAmount:     decimal.Zero,
		}
		index[month] = &points[i]
	}

	rows, err := db.Pool.Query(ctx, `
		SELECT to_char(date_trunc('month', invoice_date), 'YYYY-MM'), SUM(total_amount)::text, COUNT(*)
		FROM invoices
		WHERE invoice_date >= $1
		GROUP BY 1`, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var month string
		var amount decimal.Decimal
		var count int
		if err := rows.Scan(&month, &amount, &count); err != nil {
			return nil, err
		}
		if p, ok := index[month]; ok {
			p.InvoicedAmount = amount
			p.InvoiceCount = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = db.Pool.Query(ctx, `
		SELECT to_char(date_trunc('month', payment_date), 'YYYY-MM'), SUM(amount)::text, COUNT(*)
		FROM receipts
		WHERE payment_date >= $1
		GROUP BY 1`, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var month string
		var amount decimal.Decimal
		var count int
		if err := rows.Scan(&month, &amount, &count); err != nil {
			return nil, err
		}
		if p, ok := index[month]; ok {
			p.PaidAmount = amount
			p.PaymentCount = count
		}
	}
	return points, rows.Err()
}

func (db *DB) topOutstandingCustomers(ctx context.Context, limit int) ([]report.CustomerBalance, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT c.id, c.name,
			SUM(i.total_amount - i.paid_amount)::text,
			COUNT(i.id) FILTER (WHERE i.total_amount > i.paid_amount)
		FROM customers c
		JOIN invoices i ON i.customer_id = c.id
		GROUP BY c.id, c.name
		HAVING SUM(i.total_amount - i.paid_amount) > 0
		ORDER BY SUM(i.total_amount - i.paid_amount) DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []report.CustomerBalance
	for rows.Next() {
		var b report.CustomerBalance
		if err := rows.Scan(&b.CustomerID, &b.CustomerName, &b.Outstanding, &b.InvoiceCount); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (db *DB) RecentItems(ctx context.Context, limit int) ([]report.ItemSuggestion, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT description, AVG(unit_price)::numeric(10,2)::text, COUNT(*)
		FROM invoice_items
		GROUP BY description
		ORDER BY COUNT(*) DESC, description
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []report.ItemSuggestion
	for rows.Next() {
		var s report.ItemSuggestion
		if err := rows.Scan(&s.Description, &s.UnitPrice, &s.UsageCount); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
