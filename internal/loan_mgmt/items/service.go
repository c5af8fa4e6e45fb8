package items

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	ulid "github.com/oklog/ulid/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ===== Error model =====

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

type IDGen interface{ NewULID(t time.Time) string }
type ulidGen struct{}

func (ulidGen) NewULID(t time.Time) string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// ===== Service =====

type Service struct {
	repo Repository
	now  func() time.Time
	id   IDGen
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
		id:   ulidGen{},
	}
}

// category codes are stored lower-case; a Caser is not safe to share
func normalizeCode(code string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(code))
}

func (s *Service) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	cats, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, toCategoryResponse(c))
	}
	return out, nil
}

// GET /categories/:code/items
func (s *Service) ListItems(ctx context.Context, code string) (ListItemsResult, error) {
	code = normalizeCode(code)
	if code == "" {
		return ListItemsResult{}, ErrInvalid("category code required")
	}
	cat, err := s.repo.GetCategoryByCode(ctx, code)
	if err != nil {
		return ListItemsResult{}, err
	}
	rows, err := s.repo.ListItemsByCategory(ctx, cat.CategoryID)
	if err != nil {
		return ListItemsResult{}, err
	}

	res := ListItemsResult{Category: toCategoryResponse(*cat), Items: make([]ItemResponse, 0, len(rows))}
	for _, it := range rows {
		if it.OnLoan {
			res.OnLoan++
		}
		res.Items = append(res.Items, toItemResponse(it))
	}
	res.Total = len(res.Items)
	return res, nil
}

// POST /categories/:code/items
func (s *Service) CreateItem(ctx context.Context, code string, in CreateItemRequest) (ItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return ItemResponse{}, ErrInvalid("name required")
	}
	cat, err := s.repo.GetCategoryByCode(ctx, normalizeCode(code))
	if err != nil {
		return ItemResponse{}, err
	}

	now := s.now()
	it := &Item{
		ItemULID:     s.id.NewULID(now),
		CategoryID:   cat.CategoryID,
		CategoryCode: cat.Code,
		Name:         name,
		Extra:        toNullString(in.Extra),
		CreatedAt:    now,
	}
	if err := s.repo.CreateItem(ctx, it); err != nil {
		return ItemResponse{}, err
	}
	return toItemResponse(*it), nil
}

func (s *Service) DeleteItem(ctx context.Context, itemULID string) error {
	if strings.TrimSpace(itemULID) == "" {
		return ErrInvalid("item id required")
	}
	return s.repo.DeleteItem(ctx, itemULID)
}

func toCategoryResponse(c Category) CategoryResponse {
	return CategoryResponse{Code: c.Code, Name: c.Name, Color: nullToPtr(c.Color)}
}

func toItemResponse(it Item) ItemResponse {
	return ItemResponse{
		ItemID:       it.ItemULID,
		CategoryCode: it.CategoryCode,
		Name:         it.Name,
		Extra:        nullToPtr(it.Extra),
		CreatedAt:    it.CreatedAt,
		OnLoan:       it.OnLoan,
	}
}

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
