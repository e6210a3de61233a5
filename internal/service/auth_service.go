package service

import (
	"context"
	"errors"
	"time"

	"taskboard/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// UserStore is what the auth service needs from the data layer.
type UserStore interface {
	Create(ctx context.Context, username, passwordHash, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id int64, username, passwordHash, email string) (*domain.User, error)
	Delete(ctx context.Context, id int64) (*domain.User, error)
}

// AuthService handles account CRUD and token issuance. Passwords are stored
// as bcrypt hashes, never verbatim.
type AuthService struct {
	store     UserStore
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(store UserStore, jwtSecret string) *AuthService {
	return &AuthService{
		store:     store,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  24 * time.Hour,
	}
}

func (s *AuthService) Register(ctx context.Context, username, password, email string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.store.Create(ctx, username, string(hash), email)
}

// Login verifies the password against the stored bcrypt hash and returns a
// signed token plus the account.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user.UserID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.store.GetByUsername(ctx, username)
}

func (s *AuthService) UpdateUser(ctx context.Context, id int64, username, password, email string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.store.Update(ctx, id, username, string(hash), email)
}

func (s *AuthService) DeleteUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.store.Delete(ctx, id)
}

func (s *AuthService) GenerateToken(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(s.tokenTTL).Unix(),
		"iat":     now.Unix(),
		"nbf":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) ParseToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errors.New("user_id not found")
	}
	return int64(userID), nil
}
