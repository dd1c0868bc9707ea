package repositories

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/turtacn/warrify/internal/domain/warranty"
	"github.com/turtacn/warrify/internal/infrastructure/database/postgres"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/warrify/pkg/errors"
)

const productColumns = `id, user_id, product_name, brand, category, purchase_date, warranty_months, expiry_date,
	purchase_price, invoice_file_url, invoice_text, invoice_number, notes, claim_status, created_at, updated_at`

// upcomingWindowDays is the horizon of the "expiring soon" filter.
const upcomingWindowDays = 30

type postgresProductRepo struct {
	conn     *postgres.Connection
	log      logging.Logger
	executor queryExecutor
}

// NewPostgresProductRepo returns a ProductRepository backed by conn.
func NewPostgresProductRepo(conn *postgres.Connection, log logging.Logger) warranty.ProductRepository {
	return &postgresProductRepo{
		conn:     conn,
		log:      log,
		executor: conn.DB(),
	}
}

func (r *postgresProductRepo) Create(ctx context.Context, p *warranty.Product) error {
	if p.ClaimStatus == "" {
		p.ClaimStatus = warranty.ClaimNone
	}
	query := `
		INSERT INTO products (
			user_id, product_name, brand, category, purchase_date, warranty_months, expiry_date,
			purchase_price, invoice_file_url, invoice_text, invoice_number, notes, claim_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`
	err := r.executor.QueryRowContext(ctx, query,
		p.UserID, p.Name, p.Brand, string(p.Category), p.PurchaseDate, p.WarrantyMonths, p.ExpiryDate,
		p.PurchasePrice, p.InvoiceFileURL, p.InvoiceText, p.InvoiceNumber, p.Notes, string(p.ClaimStatus),
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return mapProductWriteError(err, "failed to create product")
	}
	return nil
}

func (r *postgresProductRepo) GetByID(ctx context.Context, id, userID int64) (*warranty.Product, error) {
	row := r.executor.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1 AND user_id = $2`, id, userID)
	return scanProduct(row)
}

func (r *postgresProductRepo) List(ctx context.Context, userID int64, f warranty.ProductFilter) ([]*warranty.Product, error) {
	query, args := buildListQuery(userID, f)
	return r.queryProducts(ctx, query, args...)
}

// buildListQuery renders the filtered listing. Category "all" means no filter.
func buildListQuery(userID int64, f warranty.ProductFilter) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + productColumns + ` FROM products WHERE user_id = $1`)
	args := []interface{}{userID}
	next := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if s := strings.TrimSpace(f.Search); s != "" {
		ph := next("%" + s + "%")
		fmt.Fprintf(&sb, ` AND (product_name ILIKE %[1]s OR brand ILIKE %[1]s OR category ILIKE %[1]s OR invoice_number ILIKE %[1]s)`, ph)
	}
	if f.Category != "" && f.Category != "all" {
		sb.WriteString(` AND category = ` + next(f.Category))
	}
	if !f.DateFrom.IsZero() {
		sb.WriteString(` AND purchase_date >= ` + next(f.DateFrom))
	}
	if !f.DateTo.IsZero() {
		sb.WriteString(` AND purchase_date <= ` + next(f.DateTo))
	}
	if f.ExpiringSoon {
		from := next(f.Today)
		to := next(f.Today.AddDays(upcomingWindowDays))
		sb.WriteString(` AND expiry_date BETWEEN ` + from + ` AND ` + to)
	}
	sb.WriteString(` ORDER BY created_at DESC, id DESC`)
	return sb.String(), args
}

func (r *postgresProductRepo) ListAll(ctx context.Context, userID int64) ([]*warranty.Product, error) {
	return r.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
}

func (r *postgresProductRepo) Update(ctx context.Context, id, userID int64, patch warranty.ProductPatch) (*warranty.Product, error) {
	query := `
		UPDATE products SET
			product_name = COALESCE($3, product_name),
			brand = COALESCE($4, brand),
			category = COALESCE($5, category),
			purchase_date = COALESCE($6, purchase_date),
			warranty_months = COALESCE($7, warranty_months),
			expiry_date = COALESCE($8, expiry_date),
			purchase_price = COALESCE($9, purchase_price),
			invoice_file_url = COALESCE($10, invoice_file_url),
			invoice_text = COALESCE($11, invoice_text),
			invoice_number = COALESCE($12, invoice_number),
			notes = COALESCE($13, notes),
			claim_status = COALESCE($14, claim_status),
			updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + productColumns
	row := r.executor.QueryRowContext(ctx, query, id, userID,
		optional(patch.Name), optional(patch.Brand), optionalString(patch.Category),
		optional(patch.PurchaseDate), optional(patch.WarrantyMonths), optional(patch.ExpiryDate),
		optional(patch.PurchasePrice), optional(patch.InvoiceFileURL), optional(patch.InvoiceText),
		optional(patch.InvoiceNumber), optional(patch.Notes), optionalString(patch.ClaimStatus),
	)
	p, err := scanProduct(row)
	var appErr *errors.AppError
	if errors.IsCode(err, errors.ErrCodeDatabaseError) && errors.As(err, &appErr) {
		return nil, mapProductWriteError(appErr.Cause, "failed to update product")
	}
	return p, err
}

func (r *postgresProductRepo) Delete(ctx context.Context, id, userID int64) error {
	return r.conn.InTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM notifications WHERE product_id = $1 AND user_id = $2`, id, userID); err != nil {
			return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to delete product notifications")
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = $1 AND user_id = $2`, id, userID)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to delete product")
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return errors.New(errors.ErrCodeProductNotFound, "Product not found")
		}
		return nil
	})
}

func (r *postgresProductRepo) FindByInvoiceNumber(ctx context.Context, userID int64, invoiceNumber string) (*warranty.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE user_id = $1 AND (TRIM(invoice_number) = $2 OR invoice_number = $3)
		ORDER BY id LIMIT 1`
	row := r.executor.QueryRowContext(ctx, query, userID, strings.TrimSpace(invoiceNumber), invoiceNumber)
	return scanProduct(row)
}

func (r *postgresProductRepo) ListExpiringBetween(ctx context.Context, userID int64, from, to warranty.Date) ([]*warranty.Product, error) {
	return r.queryProducts(ctx, `SELECT `+productColumns+` FROM products
		WHERE user_id = $1 AND expiry_date BETWEEN $2 AND $3
		ORDER BY expiry_date ASC, id ASC`, userID, from, to)
}

func (r *postgresProductRepo) ListExpiringOn(ctx context.Context, date warranty.Date) ([]*warranty.Product, error) {
	return r.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products WHERE expiry_date = $1 ORDER BY id ASC`, date)
}

func (r *postgresProductRepo) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.executor, `SELECT COUNT(*) FROM products`)
}

func (r *postgresProductRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	return count(ctx, r.executor, `SELECT COUNT(*) FROM products WHERE user_id = $1`, userID)
}

func (r *postgresProductRepo) CategoryCounts(ctx context.Context) (map[warranty.Category]int64, error) {
	rows, err := r.executor.QueryContext(ctx, `SELECT category, COUNT(*) FROM products GROUP BY category`)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to count categories")
	}
	defer rows.Close()

	out := make(map[warranty.Category]int64)
	for rows.Next() {
		var cat string
		var n int64
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan category count")
		}
		out[warranty.Category(cat)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate category counts")
	}
	return out, nil
}

func (r *postgresProductRepo) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*warranty.Product, error) {
	rows, err := r.executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to query products")
	}
	defer rows.Close()

	products := make([]*warranty.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate products")
	}
	return products, nil
}

func scanProduct(row scanner) (*warranty.Product, error) {
	p := &warranty.Product{}
	var category, claim string
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Brand, &category, &p.PurchaseDate, &p.WarrantyMonths, &p.ExpiryDate,
		&p.PurchasePrice, &p.InvoiceFileURL, &p.InvoiceText, &p.InvoiceNumber, &p.Notes, &claim,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.New(errors.ErrCodeProductNotFound, "Product not found")
		}
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan product")
	}
	p.Category = warranty.Category(category)
	p.ClaimStatus = warranty.ClaimStatus(claim)
	return p, nil
}

// mapProductWriteError turns check-constraint violations into validation errors.
func mapProductWriteError(err error, msg string) error {
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) && pqErr.Code == "23514" {
		return errors.Wrap(err, errors.ErrCodeProductInvalid, "Invalid product fields").WithDetail(pqErr.Constraint)
	}
	return errors.Wrap(err, errors.ErrCodeDatabaseError, msg)
}

func optional[T any](p *T) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func optionalString[T ~string](p *T) interface{} {
	if p == nil {
		return nil
	}
	return string(*p)
}
