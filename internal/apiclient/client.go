// Package apiclient talks to the loan service over HTTP and implements
// history.Backend.
package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"loantracker-backend/internal/history"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxBodyBytes = 8 << 20

type Client struct {
	base  string
	http  *http.Client
	token string
}

var _ history.Backend = (*Client)(nil)

type Option func(*Client)

// WithToken sets the admin bearer token sent with every request.
func WithToken(token string) Option { return func(c *Client) { c.token = token } }

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }

// New expects the API root, e.g. https://host:8443/api/v1.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse api url: unsupported scheme %q", u.Scheme)
	}
	c := &Client{
		base: strings.TrimSuffix(u.String(), "/"),
		http: &http.Client{Timeout: 15 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) FetchAllLoanRecords(ctx context.Context) ([]history.LoanRecord, error) {
	var out []history.LoanRecord
	if err := c.do(ctx, http.MethodGet, "/history", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) FetchActiveLoanGroups(ctx context.Context) ([]history.LoanGroup, error) {
	var out []history.LoanGroup
	if err := c.do(ctx, http.MethodGet, "/history/active", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SubmitLoan(ctx context.Context, req history.LoanRequest) (history.LoanResult, error) {
	var out history.LoanResult
	err := c.do(ctx, http.MethodPost, "/history", req, &out)
	return out, err
}

type returnMultipleRequest struct {
	RecordIDs      []string `json:"record_ids"`
	HolderPassword string   `json:"holder_password"`
}

func (c *Client) SubmitBatchReturn(ctx context.Context, recordIDs []string, holderCredential string) (history.ReturnResult, error) {
	var out history.ReturnResult
	err := c.do(ctx, http.MethodPut, "/history/return-multiple",
		returnMultipleRequest{RecordIDs: recordIDs, HolderPassword: holderCredential}, &out)
	return out, err
}

func (c *Client) DeleteLoanRecord(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/history/"+url.PathEscape(id), nil, nil)
}

func (c *Client) DeleteAllRecords(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/history", nil, nil)
}

// Login exchanges admin credentials for a token and keeps it on the client.
func (c *Client) Login(ctx context.Context, id, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	in := struct {
		ID       string `json:"id"`
		Password string `json:"password"`
	}{id, password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", in, &out); err != nil {
		return "", err
	}
	c.token = out.Token
	return out.Token, nil
}

type Holder struct {
	HolderID    string `json:"holder_id"`
	Name        string `json:"name"`
	ActiveLoans int    `json:"active_loans"`
}

func (c *Client) Holders(ctx context.Context) ([]Holder, error) {
	var out struct {
		Items []Holder `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/holders", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

type Item struct {
	ItemID       string  `json:"item_id"`
	CategoryCode string  `json:"category_code"`
	Name         string  `json:"name"`
	Extra        *string `json:"extra,omitempty"`
	OnLoan       bool    `json:"on_loan"`
}

func (c *Client) Items(ctx context.Context, categoryCode string) ([]Item, error) {
	var out struct {
		Items []Item `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/categories/"+url.PathEscape(categoryCode)+"/items", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

type FavoriteSummary struct {
	ListID     string    `json:"list_id"`
	Name       string    `json:"name"`
	HolderID   string    `json:"holder_id"`
	HolderName string    `json:"holder_name"`
	ItemCount  int       `json:"item_count"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FavoriteInput is the body of a list create or update; HolderID is ignored on update.
type FavoriteInput struct {
	HolderID       string   `json:"holder_id,omitempty"`
	HolderPassword string   `json:"holder_password"`
	Name           string   `json:"name"`
	ItemIDs        []string `json:"item_ids"`
}

func (c *Client) Favorites(ctx context.Context) ([]FavoriteSummary, error) {
	var out struct {
		Items []FavoriteSummary `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/favorites", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) Favorite(ctx context.Context, listID string) (history.FavoriteList, error) {
	var out history.FavoriteList
	err := c.do(ctx, http.MethodGet, "/favorites/"+url.PathEscape(listID), nil, &out)
	return out, err
}

func (c *Client) CreateFavorite(ctx context.Context, in FavoriteInput) (FavoriteSummary, error) {
	var out FavoriteSummary
	err := c.do(ctx, http.MethodPost, "/favorites", in, &out)
	return out, err
}

func (c *Client) UpdateFavorite(ctx context.Context, listID string, in FavoriteInput) (FavoriteSummary, error) {
	in.HolderID = ""
	var out FavoriteSummary
	err := c.do(ctx, http.MethodPut, "/favorites/"+url.PathEscape(listID), in, &out)
	return out, err
}

// DeleteFavorite deletes on the owner's password, or through the admin route
// when holderPassword is empty.
func (c *Client) DeleteFavorite(ctx context.Context, listID, holderPassword string) error {
	if holderPassword == "" {
		return c.do(ctx, http.MethodDelete, "/admin/favorites/"+url.PathEscape(listID), nil, nil)
	}
	in := struct {
		HolderPassword string `json:"holder_password"`
	}{holderPassword}
	return c.do(ctx, http.MethodDelete, "/favorites/"+url.PathEscape(listID), in, nil)
}

// ---------- transport ----------

type errorDTO struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return &history.Error{Kind: history.KindUnknown, Message: "encode request", Err: err}
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return &history.Error{Kind: history.KindUnknown, Message: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &history.Error{Kind: history.KindTransport, Message: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &history.Error{Kind: history.KindTransport, Message: "read response", Err: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return statusError(resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &history.Error{Kind: history.KindTransport, Message: "decode response", Err: err}
	}
	return nil
}

func statusError(status int, raw []byte) error {
	var e errorDTO
	if err := json.Unmarshal(raw, &e); err != nil || e.Error.Code == "" {
		return &history.Error{Kind: kindForStatus(status), Message: http.StatusText(status)}
	}
	return &history.Error{Kind: kindForCode(e.Error.Code), Message: e.Error.Message}
}

func kindForCode(code string) history.Kind {
	switch code {
	case "INVALID_ARGUMENT":
		return history.KindValidation
	case "UNAUTHORIZED", "FORBIDDEN":
		return history.KindAuthorization
	case "CONFLICT", "NOT_FOUND":
		return history.KindConflict
	default:
		return history.KindUnknown
	}
}

// used when the body carries no error code, e.g. a proxy page
func kindForStatus(status int) history.Kind {
	switch status {
	case http.StatusBadRequest:
		return history.KindValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return history.KindAuthorization
	case http.StatusNotFound, http.StatusConflict:
		return history.KindConflict
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return history.KindTransport
	default:
		return history.KindUnknown
	}
}
