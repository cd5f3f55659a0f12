package repository

import (
	"context"
	"database/sql"
	"time"

	"recipebook/internal/models"
)

type Users interface {
	Create(ctx context.Context, email, username, passwordHash string) (int, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
	SetResetToken(ctx context.Context, email, token string, expiresAt time.Time) error
	// ConsumeResetToken atomically sets the password hash and clears the
	// reset token for the user whose unexpired token matches. Returns
	// false when no row matched (unknown, already consumed or expired).
	ConsumeResetToken(ctx context.Context, token, passwordHash string, now time.Time) (bool, error)
	PurgeExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}

type Recipes interface {
	Create(ctx context.Context, r models.Recipe) (int, error)
	GetByID(ctx context.Context, id int) (*models.Recipe, error)
	ListByOwner(ctx context.Context, userID int) ([]models.Recipe, error)
	ListAll(ctx context.Context) ([]models.Recipe, error)
	Update(ctx context.Context, r models.Recipe) error
	Delete(ctx context.Context, id int) error
}

type Repository struct {
	Users   Users
	Recipes Recipes
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:   NewUserRepository(db),
		Recipes: NewRecipeRepository(db),
	}
}
