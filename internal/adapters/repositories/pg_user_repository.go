package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ride-compare-service/internal/domain"
	"ride-compare-service/internal/ports"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres-backed implementation of the UserRepository port.
type PgUserRepository struct{ DB *sql.DB }

func NewPgUserRepository(db *sql.DB) *PgUserRepository {
	return &PgUserRepository{DB: db}
}

// Create stores a new user. A duplicate email maps to ports.ErrEmailTaken.
func (r *PgUserRepository) Create(ctx context.Context, u domain.User) (domain.User, error) {
	if r.DB == nil {
		return domain.User{}, errors.New("user repository: DB is nil")
	}

	query := `
	INSERT INTO users (first_name, last_name, email, password_hash, phone_number)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING user_id;
	`

	err := r.DB.QueryRowContext(
		ctx, query,
		u.FirstName, u.LastName, u.Email, u.PasswordHash, u.PhoneNumber,
	).Scan(&u.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.User{}, ports.ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("create user: insert row: %w", err)
	}

	return u, nil
}

// FindByEmail retrieves a user by email.
func (r *PgUserRepository) FindByEmail(ctx context.Context, email string) (domain.User, bool, error) {
	if r.DB == nil {
		return domain.User{}, false, errors.New("user repository: DB is nil")
	}

	query := `
	SELECT user_id, first_name, last_name, email, password_hash, phone_number
	FROM users
	WHERE email = $1;
	`

	var u domain.User
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.PhoneNumber,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, fmt.Errorf("find user by email: scan row: %w", err)
	}

	return u, true, nil
}

var _ ports.UserRepository = (*PgUserRepository)(nil)
