package service

import (
	"context"
	"time"

	"recipebook/internal/models"
	"recipebook/internal/repository"
)

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// ChangePasswordInput carries the change-password form fields.
type ChangePasswordInput struct {
	OldPassword     string
	NewPassword     string
	ConfirmPassword string
}

// ResetPasswordInput carries the reset-password form fields.
type ResetPasswordInput struct {
	NewPassword     string
	ConfirmPassword string
}

// RecipeInput carries the create/edit recipe form fields.
type RecipeInput struct {
	Title        string
	Description  string
	Ingredients  string
	Instructions string
}

type Authorization interface {
	Register(ctx context.Context, in RegisterInput) (int, error)
	Login(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (int, error)
	ChangePassword(ctx context.Context, userID int, in ChangePasswordInput) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token string, in ResetPasswordInput) error
}

// Recipes exposes recipe CRUD. Update and Delete enforce ownership:
// the actor must be the owning user.
type Recipes interface {
	Create(ctx context.Context, ownerID int, in RecipeInput) (int, error)
	Get(ctx context.Context, id int) (*models.Recipe, error)
	ListOwned(ctx context.Context, ownerID int) ([]models.Recipe, error)
	ListAll(ctx context.Context) ([]models.Recipe, error)
	Update(ctx context.Context, id, actorID int, in RecipeInput) error
	Delete(ctx context.Context, id, actorID int) error
}

// Janitor runs the background loop purging expired reset tokens.
// Stop via context cancellation in main() for graceful shutdown.
type Janitor interface {
	Run(ctx context.Context, tick time.Duration)
}

// Mailer delivers a single message. Implemented by internal/mail;
// injected so auth flows never touch SMTP directly.
type Mailer interface {
	Send(subject, body, to string) error
}

// AuthConfig holds startup-time auth settings. Initialized once in
// main(), never mutated afterwards.
type AuthConfig struct {
	SigningKey string
	SessionTTL time.Duration
	ResetTTL   time.Duration
	// BaseURL is the externally visible origin used in reset links,
	// e.g. "http://localhost:8080".
	BaseURL string
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Authorization
	Recipes
	Janitor
}

// NewService wires the repository layer and mailer into concrete services.
func NewService(repos *repository.Repository, mailer Mailer, cfg AuthConfig) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, mailer, cfg),
		Recipes:       NewRecipeService(repos.Recipes),
		Janitor:       NewJanitorService(repos.Users),
	}
}
