package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/redboxrob/strikeoff-admin/internal/domain/model"
)

// UserRepository — доступ к таблице users.
// Учётные записи провиженятся внешним процессом, сервис их только читает.
type UserRepository interface {
	// GetByName возвращает пользователя по имени.
	GetByName(ctx context.Context, name string) (*model.User, error)
	// Create создаёт пользователя (используется в тестах и при провижене).
	Create(ctx context.Context, user *model.User) error
}

// userRepo — реализация UserRepository.
type userRepo struct {
	db DBTX
}

// NewUserRepository создаёт репозиторий пользователей.
func NewUserRepository(db DBTX) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByName(ctx context.Context, name string) (*model.User, error) {
	query := `
		SELECT name, password_hash, created_at
		FROM users
		WHERE name = $1`

	user := &model.User{}
	err := r.db.QueryRow(ctx, query, name).
		Scan(&user.Name, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}
	return user, nil
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (name, password_hash)
		VALUES ($1, $2)
		RETURNING created_at`

	err := r.db.QueryRow(ctx, query, user.Name, user.PasswordHash).
		Scan(&user.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания пользователя: %w", err)
	}
	return nil
}
