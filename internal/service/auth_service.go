package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"recipebook/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenBytes = 16

// dummyPasswordHash is compared against when the email is unknown, so a
// failed login costs one bcrypt comparison on both paths.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService handles registration, login, session tokens and password
// recovery.
type AuthService struct {
	users  repository.Users
	mailer Mailer
	cfg    AuthConfig
}

func NewAuthService(users repository.Users, mailer Mailer, cfg AuthConfig) *AuthService {
	return &AuthService{users: users, mailer: mailer, cfg: cfg}
}

var _ Authorization = (*AuthService)(nil)

// Claims defines JWT claims for a session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// Register validates the input, rejects duplicate email/username and
// creates the user with a bcrypt-hashed password. Exactly one row is
// inserted on success, none on any failure path.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (int, error) {
	if errs := validateRegistration(in); len(errs) > 0 {
		return 0, errs
	}

	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, ErrEmailTaken
	}

	existing, err = s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, ErrUsernameTaken
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return 0, err
	}
	return s.users.Create(ctx, in.Email, in.Username, hash)
}

// Login verifies credentials and returns a signed session token.
// Unknown email and wrong password both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if u == nil {
		_ = verifyPassword(dummyPasswordHash, password)
		return "", ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.issueToken(u.ID)
}

// ParseToken parses a session token and returns the user id.
func (s *AuthService) ParseToken(accessToken string) (int, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SigningKey), nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}

	return claims.UserID, nil
}

// ChangePassword verifies the old password and overwrites the hash for
// the given user only. Other sessions stay valid.
func (s *AuthService) ChangePassword(ctx context.Context, userID int, in ChangePasswordInput) error {
	if errs := validateNewPassword(in.NewPassword, in.ConfirmPassword); len(errs) > 0 {
		return errs
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil || verifyPassword(u.PasswordHash, in.OldPassword) != nil {
		return ErrWrongOldPassword
	}

	hash, err := hashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}

// ForgotPassword stores a fresh single-use reset token for the account
// and emails a reset link. A prior unconsumed token is overwritten.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrEmailNotFound
	}

	token, err := newResetToken()
	if err != nil {
		return err
	}
	expiresAt := time.Now().Add(s.cfg.ResetTTL)
	if err := s.users.SetResetToken(ctx, email, token, expiresAt); err != nil {
		return err
	}

	link := strings.TrimRight(s.cfg.BaseURL, "/") + "/auth/reset_password/" + token
	body := fmt.Sprintf(`To reset your password, visit the following link:
%s

If you did not make this request, simply ignore this email and no changes will be made.
`, link)
	if err := s.mailer.Send("Password Reset Request", body, email); err != nil {
		return fmt.Errorf("send reset mail to %q: %w", email, err)
	}
	return nil
}

// ResetPassword consumes a reset token: the password update and the
// token clear happen in one atomic statement, so a matched token can
// never be replayed.
func (s *AuthService) ResetPassword(ctx context.Context, token string, in ResetPasswordInput) error {
	if errs := validateNewPassword(in.NewPassword, in.ConfirmPassword); len(errs) > 0 {
		return errs
	}

	hash, err := hashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	ok, err := s.users.ConsumeResetToken(ctx, token, hash, time.Now())
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidResetToken
	}
	return nil
}

// issueToken signs a session token for a user.
func (s *AuthService) issueToken(userID int) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.SessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString([]byte(s.cfg.SigningKey))
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// newResetToken returns a URL-safe random token.
func newResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
