package loans

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	ulid "github.com/oklog/ulid/v2"

	"loantracker-backend/internal/history"
)

// -------------- Error model & mapping --------------

type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeUnauthorized    Code = "UNAUTHORIZED"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT" // 貸出中・返却済みなど
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

// DATETIME(6) keeps microseconds; the group key must survive the round trip.
func (realClock) Now() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }

type IDGen interface{ NewULID(t time.Time) string }
type ulidGen struct{}

func (ulidGen) NewULID(t time.Time) string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// -------------- Service --------------

const (
	maxItemsPerLoan  = 50
	maxCommentLength = 500
)

type Service struct {
	repo  Repository
	clock Clock
	id    IDGen
	logf  func(format string, args ...any)
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: realClock{}, id: ulidGen{}, logf: log.Printf}
}

// GET /history
func (s *Service) History(ctx context.Context) ([]history.LoanRecord, error) {
	rows, err := s.repo.ListRecords(ctx, false)
	if err != nil {
		return nil, err
	}
	return toLoanRecords(rows), nil
}

// GET /history/active
func (s *Service) ActiveGroups(ctx context.Context) ([]history.LoanGroup, error) {
	rows, err := s.repo.ListRecords(ctx, true)
	if err != nil {
		return nil, err
	}
	groups, dropped := history.Aggregate(toLoanRecords(rows))
	for _, d := range dropped {
		s.logf("[WARN] loans: active view dropped record %q: %s", d.ID, d.Reason)
	}
	history.SortNewestFirst(groups)
	if groups == nil {
		groups = []history.LoanGroup{}
	}
	return groups, nil
}

// POST /history
func (s *Service) CreateLoan(ctx context.Context, in history.LoanRequest) (history.LoanResult, error) {
	holderID := strings.TrimSpace(in.HolderID)
	if holderID == "" {
		return history.LoanResult{}, ErrInvalid("holder_id required")
	}
	if in.HolderCredential == "" {
		return history.LoanResult{}, ErrInvalid("holder_password required")
	}
	itemIDs, err := uniqueIDs(in.ItemIDs, "item_ids")
	if err != nil {
		return history.LoanResult{}, err
	}
	if len(itemIDs) > maxItemsPerLoan {
		return history.LoanResult{}, ErrInvalid(fmt.Sprintf("at most %d items per loan", maxItemsPerLoan))
	}
	comment := toNullString(in.Comment)
	if utf8.RuneCountInString(comment.String) > maxCommentLength {
		return history.LoanResult{}, ErrInvalid(fmt.Sprintf("comment longer than %d characters", maxCommentLength))
	}

	now := s.clock.Now()
	l := &NewLoan{
		HolderULID: holderID,
		Credential: in.HolderCredential,
		Lines:      make([]LoanLine, 0, len(itemIDs)),
		AcquiredAt: now,
		Comment:    comment,
	}
	recordIDs := make([]string, 0, len(itemIDs))
	for _, item := range itemIDs {
		rid := s.id.NewULID(now)
		l.Lines = append(l.Lines, LoanLine{ItemULID: item, RecordULID: rid})
		recordIDs = append(recordIDs, rid)
	}

	if err := s.repo.ExecCreateLoan(ctx, l); err != nil {
		return history.LoanResult{}, err
	}
	return history.LoanResult{
		RecordIDs: recordIDs,
		Message:   fmt.Sprintf("%d item(s) lent", len(recordIDs)),
	}, nil
}

// PUT /history/return-multiple
func (s *Service) ReturnRecords(ctx context.Context, recordIDs []string, credential string) (history.ReturnResult, error) {
	ids, err := uniqueIDs(recordIDs, "record_ids")
	if err != nil {
		return history.ReturnResult{}, err
	}
	if credential == "" {
		return history.ReturnResult{}, ErrInvalid("holder_password required")
	}

	n, err := s.repo.ExecReturn(ctx, &BatchReturn{
		RecordULIDs: ids,
		Credential:  credential,
		ReturnedAt:  s.clock.Now(),
	})
	if err != nil {
		return history.ReturnResult{}, err
	}
	return history.ReturnResult{Returned: n, Message: fmt.Sprintf("%d item(s) returned", n)}, nil
}

// DELETE /history/:record_id
func (s *Service) DeleteRecord(ctx context.Context, recordID string) error {
	if strings.TrimSpace(recordID) == "" {
		return ErrInvalid("record id required")
	}
	return s.repo.DeleteRecord(ctx, recordID)
}

// DELETE /history
func (s *Service) DeleteAll(ctx context.Context) (DeleteAllResult, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return DeleteAllResult{}, err
	}
	s.logf("[INFO] loans: deleted all %d records", n)
	return DeleteAllResult{Deleted: n}, nil
}

// uniqueIDs trims, rejects blanks and drops repeats keeping first-seen order.
func uniqueIDs(in []string, field string) ([]string, error) {
	if len(in) == 0 {
		return nil, ErrInvalid(field + " must not be empty")
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, ErrInvalid(field + " must not contain blank ids")
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}

func toLoanRecords(rows []Record) []history.LoanRecord {
	out := make([]history.LoanRecord, 0, len(rows))
	for _, r := range rows {
		rec := history.LoanRecord{
			ID:                 r.RecordULID,
			HolderID:           r.HolderULID,
			HolderName:         r.HolderName,
			ItemID:             r.ItemULID,
			ItemName:           r.ItemName,
			ItemExtra:          nullToPtr(r.ItemExtra),
			CategoryID:         r.CategoryCode.String,
			AcquiredAt:         r.AcquiredAt.UTC(),
			Returned:           r.Returned,
			TransactionComment: nullToPtr(r.Comment),
		}
		if r.ReturnedAt.Valid {
			t := r.ReturnedAt.Time.UTC()
			rec.ReturnedAt = &t
		}
		out = append(out, rec)
	}
	return out
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
