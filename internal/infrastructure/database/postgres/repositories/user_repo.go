package repositories

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/lib/pq"

	"github.com/turtacn/warrify/internal/domain/warranty"
	"github.com/turtacn/warrify/internal/infrastructure/database/postgres"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/warrify/pkg/errors"
)

const userColumns = `id, name, email, password_hash, city, created_at`

type postgresUserRepo struct {
	conn     *postgres.Connection
	log      logging.Logger
	executor queryExecutor
}

// NewPostgresUserRepo returns a UserRepository backed by conn.
func NewPostgresUserRepo(conn *postgres.Connection, log logging.Logger) warranty.UserRepository {
	return &postgresUserRepo{
		conn:     conn,
		log:      log,
		executor: conn.DB(),
	}
}

func (r *postgresUserRepo) Create(ctx context.Context, u *warranty.User) error {
	if u.City == "" {
		u.City = warranty.DefaultCity
	}
	query := `
		INSERT INTO users (name, email, password_hash, city)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.executor.QueryRowContext(ctx, query, u.Name, u.Email, u.PasswordHash, u.City).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return errors.Wrap(err, errors.ErrCodeUserEmailTaken, "Email already exists")
		}
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to create user")
	}
	return nil
}

func (r *postgresUserRepo) GetByID(ctx context.Context, id int64) (*warranty.User, error) {
	row := r.executor.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *postgresUserRepo) GetByEmail(ctx context.Context, email string) (*warranty.User, error) {
	row := r.executor.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *postgresUserRepo) UpdateProfile(ctx context.Context, id int64, patch warranty.ProfilePatch) (*warranty.User, error) {
	query := `
		UPDATE users SET
			name = COALESCE($2, name),
			city = COALESCE($3, city)
		WHERE id = $1
		RETURNING ` + userColumns
	row := r.executor.QueryRowContext(ctx, query, id, nullString(patch.Name), nullString(patch.City))
	return scanUser(row)
}

func (r *postgresUserRepo) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.executor, `SELECT COUNT(*) FROM users`)
}

func scanUser(row scanner) (*warranty.User, error) {
	u := &warranty.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.City, &u.CreatedAt)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.New(errors.ErrCodeUserNotFound, "User not found")
		}
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan user")
	}
	return u, nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !stderrors.As(err, &pqErr) || pqErr.Code != "23505" {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
