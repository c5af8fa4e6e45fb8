package holders

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	ulid "github.com/oklog/ulid/v2"

	"loantracker-backend/internal/platform/auth"
)

// -------------- Error model & mapping --------------

type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code
	Message string
}

func (e *APIError) Error() string      { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrInvalid(msg string) *APIError  { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrNotFound(msg string) *APIError { return &APIError{Code: CodeNotFound, Message: msg} }
func ErrConflict(msg string) *APIError { return &APIError{Code: CodeConflict, Message: msg} }
func ErrInternal(msg string) *APIError { return &APIError{Code: CodeInternal, Message: msg} }

func ToHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return http.StatusBadRequest
		case CodeNotFound:
			return http.StatusNotFound
		case CodeConflict:
			return http.StatusConflict
		}
	}
	return http.StatusInternalServerError
}

// -------------- Clock & ID --------------

type Clock interface{ Now() time.Time }
type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

type IDGen interface{ NewULID(t time.Time) string }
type ulidGen struct{}

func (ulidGen) NewULID(t time.Time) string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// -------------- Service --------------

const (
	maxNameLen     = 64
	minPasswordLen = 4
)

type Service struct {
	repo  Repository
	clock Clock
	id    IDGen
	hash  func(string) (string, error)
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: realClock{}, id: ulidGen{}, hash: auth.HashPassword}
}

func (s *Service) List(ctx context.Context) (ListHoldersResult, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return ListHoldersResult{}, err
	}
	items := make([]HolderResponse, 0, len(rows))
	for _, h := range rows {
		items = append(items, toResponse(h))
	}
	return ListHoldersResult{Items: items, Total: len(items)}, nil
}

// POST /holders
func (s *Service) Create(ctx context.Context, in CreateHolderRequest) (HolderResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return HolderResponse{}, ErrInvalid("name required")
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return HolderResponse{}, ErrInvalid(fmt.Sprintf("name longer than %d characters", maxNameLen))
	}
	// | はグループキーの区切り文字
	if strings.Contains(name, "|") {
		return HolderResponse{}, ErrInvalid("name must not contain '|'")
	}
	if utf8.RuneCountInString(in.Password) < minPasswordLen {
		return HolderResponse{}, ErrInvalid(fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return HolderResponse{}, ErrInternal("hash password")
	}

	now := s.clock.Now()
	h := &Holder{
		HolderULID:   s.id.NewULID(now),
		Name:         name,
		Email:        toNullString(in.Email),
		PasswordHash: hash,
		CreatedAt:    now,
	}
	if err := s.repo.Create(ctx, h); err != nil {
		return HolderResponse{}, err
	}
	return toResponse(*h), nil
}

func (s *Service) Get(ctx context.Context, holderULID string) (HolderResponse, error) {
	h, err := s.repo.GetByULID(ctx, holderULID)
	if err != nil {
		return HolderResponse{}, err
	}
	return toResponse(*h), nil
}

func (s *Service) Delete(ctx context.Context, holderULID string) error {
	if strings.TrimSpace(holderULID) == "" {
		return ErrInvalid("holder id required")
	}
	return s.repo.Delete(ctx, holderULID)
}

func toResponse(h Holder) HolderResponse {
	return HolderResponse{
		HolderID:    h.HolderULID,
		Name:        h.Name,
		Email:       nullToPtr(h.Email),
		CreatedAt:   h.CreatedAt,
		ActiveLoans: h.ActiveLoans,
	}
}

// helpers

func toNullString(s *string) (ns sql.NullString) {
	if s != nil && strings.TrimSpace(*s) != "" {
		ns.Valid, ns.String = true, strings.TrimSpace(*s)
	}
	return
}

func nullToPtr(ns sql.NullString) *string {
	if ns.Valid {
		v := ns.String
		return &v
	}
	return nil
}
