package favorites

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
	CodeUnauthorized    Code = "UNAUTHORIZED"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code
	Message string
}

func (e *APIError) Error() string          { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrInvalid(msg string) *APIError      { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrUnauthorized(msg string) *APIError { return &APIError{Code: CodeUnauthorized, Message: msg} }
func ErrNotFound(msg string) *APIError     { return &APIError{Code: CodeNotFound, Message: msg} }
func ErrConflict(msg string) *APIError     { return &APIError{Code: CodeConflict, Message: msg} }

func ToHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return http.StatusBadRequest
		case CodeUnauthorized:
			return http.StatusUnauthorized
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
	maxNameLen  = 64
	maxListSize = 50
)

type Service struct {
	repo  Repository
	clock Clock
	id    IDGen
	check func(hash, password string) bool
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: realClock{}, id: ulidGen{}, check: auth.CheckPassword}
}

func (s *Service) List(ctx context.Context) (ListListsResult, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return ListListsResult{}, err
	}
	items := make([]ListSummary, 0, len(rows))
	for _, l := range rows {
		items = append(items, toSummary(l))
	}
	return ListListsResult{Items: items, Total: len(items)}, nil
}

func (s *Service) Get(ctx context.Context, listULID string) (ListDetail, error) {
	l, err := s.repo.GetByULID(ctx, listULID)
	if err != nil {
		return ListDetail{}, err
	}
	return toDetail(*l), nil
}

// POST /favorites
func (s *Service) Create(ctx context.Context, in CreateListRequest) (ListSummary, error) {
	name, items, err := validate(in.Name, in.ItemIDs, in.HolderPassword)
	if err != nil {
		return ListSummary{}, err
	}
	holderID, hash, err := s.repo.HolderCredential(ctx, strings.TrimSpace(in.HolderID))
	if err != nil {
		return ListSummary{}, err
	}
	if !s.check(hash, in.HolderPassword) {
		return ListSummary{}, ErrUnauthorized("holder credential rejected")
	}

	now := s.clock.Now()
	l := &List{
		ListULID:   s.id.NewULID(now),
		HolderID:   holderID,
		HolderULID: strings.TrimSpace(in.HolderID),
		Name:       name,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, l, items); err != nil {
		return ListSummary{}, err
	}
	return toSummary(*l), nil
}

// PUT /favorites/:list_id
func (s *Service) Update(ctx context.Context, listULID string, in UpdateListRequest) (ListSummary, error) {
	name, items, err := validate(in.Name, in.ItemIDs, in.HolderPassword)
	if err != nil {
		return ListSummary{}, err
	}
	l, err := s.owned(ctx, listULID, in.HolderPassword)
	if err != nil {
		return ListSummary{}, err
	}
	l.Name = name
	l.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, l, items); err != nil {
		return ListSummary{}, err
	}
	return toSummary(*l), nil
}

// Delete removes a list on its owner's credential.
func (s *Service) Delete(ctx context.Context, listULID, password string) error {
	if password == "" {
		return ErrInvalid("holder password required")
	}
	if _, err := s.owned(ctx, listULID, password); err != nil {
		return err
	}
	return s.repo.Delete(ctx, listULID)
}

// ForceDelete removes a list without the owner's credential (admin).
func (s *Service) ForceDelete(ctx context.Context, listULID string) error {
	if strings.TrimSpace(listULID) == "" {
		return ErrInvalid("list id required")
	}
	return s.repo.Delete(ctx, listULID)
}

func (s *Service) owned(ctx context.Context, listULID, password string) (*List, error) {
	l, err := s.repo.GetByULID(ctx, listULID)
	if err != nil {
		return nil, err
	}
	if !s.check(l.HolderHash, password) {
		return nil, ErrUnauthorized("holder credential rejected")
	}
	return l, nil
}

// validate trims the name and drops blank and repeated item ids, keeping order.
func validate(name string, itemIDs []string, password string) (string, []string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil, ErrInvalid("name required")
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "", nil, ErrInvalid(fmt.Sprintf("name longer than %d characters", maxNameLen))
	}
	if password == "" {
		return "", nil, ErrInvalid("holder password required")
	}

	seen := make(map[string]struct{}, len(itemIDs))
	items := make([]string, 0, len(itemIDs))
	for _, id := range itemIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		items = append(items, id)
	}
	if len(items) == 0 {
		return "", nil, ErrInvalid("at least one item required")
	}
	if len(items) > maxListSize {
		return "", nil, ErrInvalid(fmt.Sprintf("a list holds at most %d items", maxListSize))
	}
	return name, items, nil
}

func toSummary(l List) ListSummary {
	return ListSummary{
		ListID:     l.ListULID,
		Name:       l.Name,
		HolderID:   l.HolderULID,
		HolderName: l.HolderName,
		ItemCount:  l.ItemCount,
		UpdatedAt:  l.UpdatedAt,
	}
}

func toDetail(l List) ListDetail {
	d := ListDetail{
		ListID:     l.ListULID,
		Name:       l.Name,
		HolderID:   l.HolderULID,
		HolderName: l.HolderName,
		UpdatedAt:  l.UpdatedAt,
		Items:      make([]ListItem, 0, len(l.Entries)),
	}
	for _, e := range l.Entries {
		d.Items = append(d.Items, ListItem{
			ItemID:       e.ItemULID,
			CategoryCode: e.CategoryCode,
			Name:         e.Name,
			Extra:        nullToPtr(e.Extra),
			OnLoan:       e.OnLoan,
		})
		if !e.OnLoan {
			d.Available++
		}
	}
	return d
}

func nullToPtr(ns sql.NullString) *string {
	if ns.Valid {
		v := ns.String
		return &v
	}
	return nil
}
