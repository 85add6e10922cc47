package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alshadows/product-catalog/internal/core/domain"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (username, password_hash, role, created_at)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		user.Username, user.PasswordHash, string(user.Role), user.CreatedAt.UTC(),
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = strconv.FormatInt(id, 10)
	return &created, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var (
		id        int64
		u         domain.User
		role      string
		createdAt time.Time
	)
	err := r.pool.QueryRow(ctx,
		"SELECT id, username, password_hash, role, created_at FROM users WHERE username = $1",
		username,
	).Scan(&id, &u.Username, &u.PasswordHash, &role, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	u.ID = strconv.FormatInt(id, 10)
	u.Role = domain.Role(role)
	u.CreatedAt = createdAt.UTC()
	return &u, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM users").Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
