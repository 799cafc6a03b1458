package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/rvleeuwen/laadscan/internal/domain/errors"
	"github.com/rvleeuwen/laadscan/internal/domain/model"
	"github.com/rvleeuwen/laadscan/internal/domain/repository"
)

// Pool abstracts the pgxpool operations used by the storage layer so tests
// can substitute a mock pool.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

type orderRepository struct {
	storage *Storage
}

type reportRepository struct {
	storage *Storage
}

type heavyRepository struct {
	storage *Storage
}

type userRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Reports() repository.MissingReportRepository {
	return &reportRepository{storage: s}
}

func (s *Storage) HeavyProducts() repository.HeavyProductRepository {
	return &heavyRepository{storage: s}
}

func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            order_no TEXT NOT NULL DEFAULT '',
            line_number TEXT UNIQUE NOT NULL,
            vehicle TEXT NOT NULL DEFAULT '',
            customer_name TEXT NOT NULL DEFAULT '',
            customer_number TEXT NOT NULL DEFAULT '',
            article_description TEXT NOT NULL DEFAULT '',
            length TEXT NOT NULL DEFAULT '',
            target_quantity TEXT NOT NULL DEFAULT '0',
            scanned_count INT NOT NULL DEFAULT 0,
            reported_missing INT NOT NULL DEFAULT 0,
            completed BOOLEAN NOT NULL DEFAULT FALSE,
            sequence INT NOT NULL DEFAULT 0,
            imported_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS missing_reports (
            id SERIAL PRIMARY KEY,
            line_number TEXT NOT NULL,
            article_description TEXT NOT NULL DEFAULT '',
            reason TEXT NOT NULL,
            amount INT NOT NULL,
            comments TEXT NOT NULL DEFAULT '',
            reported_by TEXT NOT NULL DEFAULT '',
            reported_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS heavy_products (
            id SERIAL PRIMARY KEY,
            name TEXT UNIQUE NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL,
            reset_token TEXT NOT NULL DEFAULT '',
            reset_expires TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_vehicle ON orders(vehicle, sequence DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_missing_reports_line ON missing_reports(line_number, reported_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

const orderColumns = `id, order_no, line_number, vehicle, customer_name, customer_number,
       article_description, length, target_quantity, scanned_count, reported_missing,
       completed, sequence, imported_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.OrderNo, &o.LineNumber, &o.Vehicle, &o.CustomerName, &o.CustomerNumber,
		&o.ArticleDescription, &o.Length, &o.TargetQuantity, &o.ScannedCount, &o.ReportedMissing,
		&o.Completed, &o.Sequence, &o.ImportedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) GetByLineNumber(ctx context.Context, lineNumber, vehicle string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE line_number=$1`
	args := []any{lineNumber}
	if vehicle != "" {
		query += ` AND vehicle=$2`
		args = append(args, vehicle)
	}
	return scanOrder(r.storage.pool.QueryRow(ctx, query, args...))
}

func (r *orderRepository) ListByVehicle(ctx context.Context, vehicle string) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE vehicle=$1 ORDER BY sequence DESC, line_number`
	rows, err := r.storage.pool.Query(ctx, query, vehicle)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) ListVehicles(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT vehicle FROM orders WHERE vehicle <> '' ORDER BY vehicle`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update implements the locked read-mutate-persist cycle. The row lock keeps
// concurrent scans of the same barcode from losing updates; serialization
// failures are retried once by withRetry before surfacing ErrConflict.
func (r *orderRepository) Update(ctx context.Context, lineNumber, vehicle string, fn repository.OrderMutation) (*model.Order, error) {
	var updated *model.Order
	err := r.storage.withRetry(ctx, func(tx pgx.Tx) error {
		query := `SELECT ` + orderColumns + ` FROM orders WHERE line_number=$1`
		args := []any{lineNumber}
		if vehicle != "" {
			query += ` AND vehicle=$2`
			args = append(args, vehicle)
		}
		query += ` FOR UPDATE`

		o, err := scanOrder(tx.QueryRow(ctx, query, args...))
		if err != nil {
			return err
		}

		report, err := fn(o)
		if err != nil {
			return err
		}

		const update = `UPDATE orders SET scanned_count=$1, reported_missing=$2, completed=$3 WHERE id=$4`
		if _, err := tx.Exec(ctx, update, o.ScannedCount, o.ReportedMissing, o.Completed, o.ID); err != nil {
			return err
		}

		if report != nil {
			const insert = `INSERT INTO missing_reports (line_number, article_description, reason, amount, comments, reported_by, reported_at)
                            VALUES ($1, $2, $3, $4, $5, $6, $7)`
			if _, err := tx.Exec(ctx, insert, report.LineNumber, report.ArticleDescription, report.Reason,
				report.Amount, report.Comments, report.ReportedBy, report.ReportedAt); err != nil {
				return err
			}
		}

		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *orderRepository) ReplaceVehicle(ctx context.Context, vehicle string, orders []model.Order) (int, error) {
	inserted := 0
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const progressQuery = `SELECT COUNT(*) FROM orders WHERE vehicle=$1 AND (scanned_count > 0 OR reported_missing > 0)`
		var busy int
		if err := tx.QueryRow(ctx, progressQuery, vehicle).Scan(&busy); err != nil {
			return err
		}
		if busy > 0 {
			return domainErrors.ErrInvalidState
		}

		if _, err := tx.Exec(ctx, `DELETE FROM orders WHERE vehicle=$1`, vehicle); err != nil {
			return err
		}

		const insert = `INSERT INTO orders (order_no, line_number, vehicle, customer_name, customer_number,
                            article_description, length, target_quantity, sequence, imported_at)
                        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
		for _, o := range orders {
			if _, err := tx.Exec(ctx, insert, o.OrderNo, o.LineNumber, vehicle, o.CustomerName, o.CustomerNumber,
				o.ArticleDescription, o.Length, o.TargetQuantity, o.Sequence, o.ImportedAt); err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == "23505" {
					return fmt.Errorf("line %s: %w", o.LineNumber, domainErrors.ErrAlreadyExists)
				}
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// --- MissingReportRepository implementation ---

func (r *reportRepository) ListByVehicle(ctx context.Context, vehicle string) ([]model.MissingReport, error) {
	const query = `SELECT r.id, r.line_number, r.article_description, r.reason, r.amount, r.comments, r.reported_by, r.reported_at
                   FROM missing_reports r
                   JOIN orders o ON o.line_number = r.line_number
                   WHERE o.vehicle=$1
                   ORDER BY r.reported_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, vehicle)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.MissingReport
	for rows.Next() {
		var m model.MissingReport
		if err := rows.Scan(&m.ID, &m.LineNumber, &m.ArticleDescription, &m.Reason, &m.Amount, &m.Comments, &m.ReportedBy, &m.ReportedAt); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- HeavyProductRepository implementation ---

func (r *heavyRepository) Names(ctx context.Context) ([]string, error) {
	const query = `SELECT name FROM heavy_products ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		result = append(result, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *heavyRepository) List(ctx context.Context) ([]model.HeavyProduct, error) {
	const query = `SELECT id, name FROM heavy_products ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.HeavyProduct
	for rows.Next() {
		var hp model.HeavyProduct
		if err := rows.Scan(&hp.ID, &hp.Name); err != nil {
			return nil, err
		}
		result = append(result, hp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *heavyRepository) Create(ctx context.Context, name string) (*model.HeavyProduct, error) {
	const query = `INSERT INTO heavy_products (name) VALUES ($1) RETURNING id`
	var hp model.HeavyProduct
	if err := r.storage.pool.QueryRow(ctx, query, name).Scan(&hp.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	hp.Name = name
	return &hp, nil
}

func (r *heavyRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM heavy_products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.User, error) {
	const query = `INSERT INTO users (login, password_hash, role) VALUES ($1, $2, $3) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash, role).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Login = login
	u.PasswordHash = passwordHash
	u.Role = role
	return &u, nil
}

const userColumns = `id, login, password_hash, role, COALESCE(reset_expires, 'epoch'::timestamptz), created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Role, &u.ResetExpires, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE login=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, login))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) SetResetToken(ctx context.Context, userID int64, token string, expires time.Time) error {
	const query = `UPDATE users SET reset_token=$1, reset_expires=$2 WHERE id=$3`
	tag, err := r.storage.pool.Exec(ctx, query, token, expires, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) GetByResetToken(ctx context.Context, token string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE reset_token=$1 AND reset_token <> ''`
	return scanUser(r.storage.pool.QueryRow(ctx, query, token))
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	const query = `UPDATE users SET password_hash=$1, reset_token='', reset_expires=NULL WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, passwordHash, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// withRetry runs fn in a transaction and retries once on a transient
// serialization or deadlock failure before surfacing ErrConflict.
func (s *Storage) withRetry(ctx context.Context, fn func(pgx.Tx) error) error {
	err := s.WithinTransaction(ctx, fn)
	if err == nil || !isRetryable(err) {
		return err
	}

	s.logger.Warn("transaction conflict, retrying", slog.String("error", err.Error()))
	err = s.WithinTransaction(ctx, fn)
	if err != nil && isRetryable(err) {
		return domainErrors.ErrConflict
	}
	return err
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && (pgErr.Code == "40001" || pgErr.Code == "40P01")
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
