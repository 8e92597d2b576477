package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"fnp-marketplace/logger"
	"fnp-marketplace/models"
	"fnp-marketplace/repository"
)

// Claims is the payload of the bearer token: sub, role, admin, banned and exp
type Claims struct {
	Role   models.Role `json:"role"`
	Admin  bool        `json:"admin"`
	Banned bool        `json:"banned"`
	jwt.RegisteredClaims
}

// AuthService signs users in and issues/verifies HS256 bearer tokens
type AuthService struct {
	users  repository.UserRepositoryInterface
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(users repository.UserRepositoryInterface, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// SignIn checks the credentials and returns a fresh token
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*models.SignInResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.Banned {
		return nil, ErrBanned
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	logger.Log.Infof("🔑 SignIn: user id=%s role=%s", user.ID, user.Role)
	return &models.SignInResponse{Token: token, User: user}, nil
}

// IssueToken signs a token for user valid for the configured TTL
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		Role:   user.Role,
		Admin:  user.IsAdmin(),
		Banned: user.Banned,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies signature and expiry. It does not reject banned users; callers decide.
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims, nil
}

// Authenticate verifies a bearer token and refreshes its role and ban state from the stored user,
// so a ban or role change takes effect on the next request rather than at token expiry.
// A token whose user no longer exists is invalid.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := s.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, claims.Subject)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: user %s no longer exists", ErrInvalidToken, claims.Subject)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	claims.Role = user.Role
	claims.Admin = user.IsAdmin()
	claims.Banned = user.Banned
	return claims, nil
}

// HashPassword returns the bcrypt hash of password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
