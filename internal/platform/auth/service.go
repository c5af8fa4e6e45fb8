package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("authentication failed")
	ErrInvalidRole        = errors.New("invalid role")
)

type AuthService interface {
	Login(ctx context.Context, id, password string) (string, error)
	Register(ctx context.Context, id, password, role string) error
	Delete(ctx context.Context, id string) error
}

type Service struct {
	store  AccountStore
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(store AccountStore, secret []byte, ttl time.Duration) *Service {
	return &Service{store: store, secret: secret, ttl: ttl, now: time.Now}
}

// Claims carried by admin tokens.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (s *Service) Login(ctx context.Context, id, password string) (string, error) {
	acct, err := s.store.Find(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	// 無効アカウントも存在しない扱い
	if acct.IsDisabled || !CheckPassword(acct.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}
	return IssueToken(s.secret, acct.ID, acct.Role, s.now().Add(s.ttl))
}

// Register creates an enabled account. A taken id is ErrAlreadyExists.
func (s *Service) Register(ctx context.Context, id, password, role string) error {
	id = strings.TrimSpace(id)
	if id == "" || password == "" {
		return ErrInvalidCredentials
	}
	if role != RoleAdmin && role != RoleUser {
		return ErrInvalidRole
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	return s.store.Insert(ctx, Account{
		ID:           id,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    s.now().UTC().Truncate(time.Microsecond),
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Remove(ctx, id)
}

// IssueToken signs an HS256 token for sub with the given role.
func IssueToken(secret []byte, sub, role string, exp time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	return token.SignedString(secret)
}

// ParseToken verifies signature, algorithm and expiry.
func ParseToken(secret []byte, tokenStr string) (*Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return &claims, nil
}

// HashPassword is shared by admin accounts and holder credentials.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	if hash == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
