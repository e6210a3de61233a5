package repository

import (
	"context"
	"errors"

	"taskboard/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, username, passwordHash, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (username, password_hash, email)
		 VALUES ($1, $2, $3)
		 RETURNING user_id, username, password_hash, email, created_at`,
		username, passwordHash, email,
	).Scan(&u.UserID, &u.Username, &u.PasswordHash, &u.Email, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrUserExists
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT user_id, username, password_hash, email, created_at
		 FROM users
		 WHERE username = $1`,
		username,
	)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT user_id, username, password_hash, email, created_at
		 FROM users
		 WHERE email = $1`,
		email,
	)
	return scanUser(row)
}

func (r *UserRepository) Update(ctx context.Context, id int64, username, passwordHash, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE users
		 SET username = $2, password_hash = $3, email = $4
		 WHERE user_id = $1
		 RETURNING user_id, username, password_hash, email, created_at`,
		id, username, passwordHash, email,
	)
	return scanUser(row)
}

// Delete removes the row and returns its prior values.
func (r *UserRepository) Delete(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`DELETE FROM users
		 WHERE user_id = $1
		 RETURNING user_id, username, password_hash, email, created_at`,
		id,
	)
	return scanUser(row)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.UserID, &u.Username, &u.PasswordHash, &u.Email, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
