package favorites

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type seqID struct{ n int }

func (s *seqID) NewULID(time.Time) string {
	s.n++
	return "F" + string(rune('0'+s.n))
}

type memHolder struct {
	id   uint64
	name string
	hash string
}

type memRepo struct {
	holders map[string]memHolder
	items   map[string]Entry
	lists   []List
	entries map[string][]string
	deleted []string
}

func newMemRepo() *memRepo {
	return &memRepo{
		holders: map[string]memHolder{
			"H-ASH":   {id: 1, name: "Ash", hash: "hash:pikachu123"},
			"H-MISTY": {id: 2, name: "Misty", hash: "hash:togepi"},
		},
		items: map[string]Entry{
			"I-ONIX":    {ItemULID: "I-ONIX", CategoryCode: "orebound", Name: "Onix", OnLoan: true},
			"I-MEW":     {ItemULID: "I-MEW", CategoryCode: "psycraft", Name: "Mew"},
			"I-STARMIE": {ItemULID: "I-STARMIE", CategoryCode: "seavell", Name: "Starmie"},
		},
		entries: map[string][]string{},
	}
}

func (m *memRepo) List(context.Context) ([]List, error) {
	out := make([]List, len(m.lists))
	for i, l := range m.lists {
		l.ItemCount = len(m.entries[l.ListULID])
		out[i] = l
	}
	return out, nil
}

func (m *memRepo) GetByULID(_ context.Context, id string) (*List, error) {
	for _, l := range m.lists {
		if l.ListULID != id {
			continue
		}
		l.HolderHash = m.holders[l.HolderULID].hash
		for _, it := range m.entries[id] {
			l.Entries = append(l.Entries, m.items[it])
		}
		l.ItemCount = len(l.Entries)
		return &l, nil
	}
	return nil, ErrNotFound("list not found")
}

func (m *memRepo) HolderCredential(_ context.Context, id string) (uint64, string, error) {
	h, ok := m.holders[id]
	if !ok {
		return 0, "", ErrNotFound("holder not found")
	}
	return h.id, h.hash, nil
}

func (m *memRepo) checkItems(ids []string) error {
	for _, id := range ids {
		if _, ok := m.items[id]; !ok {
			return ErrNotFound("item not found: " + id)
		}
	}
	return nil
}

func (m *memRepo) Create(_ context.Context, l *List, ids []string) error {
	if err := m.checkItems(ids); err != nil {
		return err
	}
	for _, x := range m.lists {
		if x.HolderID == l.HolderID && x.Name == l.Name {
			return ErrConflict("holder already has a list with this name")
		}
	}
	l.ListID = uint64(len(m.lists) + 1)
	l.HolderName = m.holders[l.HolderULID].name
	l.ItemCount = len(ids)
	m.lists = append(m.lists, *l)
	m.entries[l.ListULID] = ids
	return nil
}

func (m *memRepo) Update(_ context.Context, l *List, ids []string) error {
	if err := m.checkItems(ids); err != nil {
		return err
	}
	for i := range m.lists {
		if m.lists[i].ListULID == l.ListULID {
			m.lists[i].Name = l.Name
			m.lists[i].UpdatedAt = l.UpdatedAt
			m.entries[l.ListULID] = ids
			l.ItemCount = len(ids)
			return nil
		}
	}
	return ErrNotFound("list not found")
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	for i, l := range m.lists {
		if l.ListULID == id {
			m.lists = append(m.lists[:i], m.lists[i+1:]...)
			delete(m.entries, id)
			m.deleted = append(m.deleted, id)
			return nil
		}
	}
	return ErrNotFound("list not found")
}

func newTestService(repo *memRepo) *Service {
	svc := NewService(repo)
	svc.clock = fixedClock{t: t0}
	svc.id = &seqID{}
	svc.check = func(hash, pw string) bool { return pw != "" && hash == "hash:"+pw }
	return svc
}

func codeOf(t *testing.T, err error) Code {
	t.Helper()
	var api *APIError
	require.True(t, errors.As(err, &api), "want *APIError, got %v", err)
	return api.Code
}

func seeded(t *testing.T) (*memRepo, *Service) {
	t.Helper()
	repo := newMemRepo()
	svc := newTestService(repo)
	_, err := svc.Create(context.Background(), CreateListRequest{
		HolderID: "H-ASH", HolderPassword: "pikachu123", Name: "gym team",
		ItemIDs: []string{"I-ONIX", "I-MEW"},
	})
	require.NoError(t, err)
	return repo, svc
}

func Test_Service_Create(t *testing.T) {
	ok := CreateListRequest{HolderID: "H-ASH", HolderPassword: "pikachu123", Name: " gym team ", ItemIDs: []string{"I-ONIX", " ", "I-MEW", "I-ONIX"}}
	testCases := []struct {
		name     string
		mutate   func(*CreateListRequest)
		wantCode Code
	}{
		{name: "ok", mutate: func(*CreateListRequest) {}},
		{name: "blank name", mutate: func(r *CreateListRequest) { r.Name = "  " }, wantCode: CodeInvalidArgument},
		{name: "long name", mutate: func(r *CreateListRequest) { r.Name = strings.Repeat("x", 65) }, wantCode: CodeInvalidArgument},
		{name: "no items", mutate: func(r *CreateListRequest) { r.ItemIDs = []string{" "} }, wantCode: CodeInvalidArgument},
		{name: "no password", mutate: func(r *CreateListRequest) { r.HolderPassword = "" }, wantCode: CodeInvalidArgument},
		{name: "wrong password", mutate: func(r *CreateListRequest) { r.HolderPassword = "charmander" }, wantCode: CodeUnauthorized},
		{name: "unknown holder", mutate: func(r *CreateListRequest) { r.HolderID = "H-GARY" }, wantCode: CodeNotFound},
		{name: "unknown item", mutate: func(r *CreateListRequest) { r.ItemIDs = []string{"I-MISSINGNO"} }, wantCode: CodeNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			repo := newMemRepo()
			svc := newTestService(repo)
			in := ok
			in.ItemIDs = append([]string(nil), ok.ItemIDs...)
			tc.mutate(&in)

			// act
			res, err := svc.Create(context.Background(), in)

			// assert
			if tc.wantCode != "" {
				assert.Equal(t, tc.wantCode, codeOf(t, err))
				assert.Empty(t, repo.lists)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "F1", res.ListID)
			assert.Equal(t, "gym team", res.Name)
			assert.Equal(t, 2, res.ItemCount)
			assert.Equal(t, []string{"I-ONIX", "I-MEW"}, repo.entries["F1"])
		})
	}
}

func Test_Service_CreateSameNameIsConflict(t *testing.T) {
	_, svc := seeded(t)

	_, err := svc.Create(context.Background(), CreateListRequest{
		HolderID: "H-ASH", HolderPassword: "pikachu123", Name: "gym team", ItemIDs: []string{"I-STARMIE"},
	})

	assert.Equal(t, http.StatusConflict, ToHTTPStatus(err))
}

func Test_Service_GetReportsAvailability(t *testing.T) {
	_, svc := seeded(t)

	d, err := svc.Get(context.Background(), "F1")

	require.NoError(t, err)
	assert.Equal(t, "Ash", d.HolderName)
	require.Len(t, d.Items, 2)
	assert.True(t, d.Items[0].OnLoan)
	assert.False(t, d.Items[1].OnLoan)
	assert.Equal(t, 1, d.Available)
}

func Test_Service_UpdateNeedsOwnerCredential(t *testing.T) {
	repo, svc := seeded(t)
	svc.clock = fixedClock{t: t0.Add(time.Hour)}

	_, err := svc.Update(context.Background(), "F1", UpdateListRequest{HolderPassword: "togepi", Name: "x", ItemIDs: []string{"I-MEW"}})
	assert.Equal(t, CodeUnauthorized, codeOf(t, err))
	assert.Equal(t, []string{"I-ONIX", "I-MEW"}, repo.entries["F1"])

	res, err := svc.Update(context.Background(), "F1", UpdateListRequest{HolderPassword: "pikachu123", Name: "water", ItemIDs: []string{"I-STARMIE"}})
	require.NoError(t, err)
	assert.Equal(t, "water", res.Name)
	assert.Equal(t, t0.Add(time.Hour), res.UpdatedAt)
	assert.Equal(t, []string{"I-STARMIE"}, repo.entries["F1"])
}

func Test_Service_Delete(t *testing.T) {
	testCases := []struct {
		name     string
		list     string
		password string
		wantCode Code
	}{
		{name: "owner", list: "F1", password: "pikachu123"},
		{name: "other holder", list: "F1", password: "togepi", wantCode: CodeUnauthorized},
		{name: "no password", list: "F1", wantCode: CodeInvalidArgument},
		{name: "missing list", list: "F9", password: "pikachu123", wantCode: CodeNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, svc := seeded(t)

			err := svc.Delete(context.Background(), tc.list, tc.password)

			if tc.wantCode != "" {
				assert.Equal(t, tc.wantCode, codeOf(t, err))
				assert.Len(t, repo.lists, 1)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, repo.lists)
		})
	}
}

func Test_Handler_Routes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo, svc := seeded(t)
	r := gin.New()
	RegisterRoutes(r, r, svc)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := do(http.MethodGet, "/favorites", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"item_count":2`)

	w = do(http.MethodGet, "/favorites/F1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"available":1`)

	w = do(http.MethodPost, "/favorites", `{"holder_id":"H-MISTY","holder_password":"togepi","name":"water","item_ids":["I-STARMIE"]}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/favorites/F2", w.Header().Get("Location"))

	w = do(http.MethodPut, "/favorites/F1", `{"holder_password":"togepi","name":"x","item_ids":["I-MEW"]}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":{"code":"UNAUTHORIZED","message":"holder credential rejected"}}`, w.Body.String())

	assert.Equal(t, http.StatusBadRequest, do(http.MethodDelete, "/favorites/F1", "{").Code)
	assert.Equal(t, http.StatusNoContent, do(http.MethodDelete, "/favorites/F1", `{"holder_password":"pikachu123"}`).Code)
	assert.Equal(t, http.StatusNoContent, do(http.MethodDelete, "/admin/favorites/F2", "").Code)
	assert.Equal(t, []string{"F1", "F2"}, repo.deleted)
	assert.Equal(t, http.StatusNotFound, do(http.MethodDelete, "/admin/favorites/F2", "").Code)
}
