package shoots

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/AlexWarnes/fStopandGo-api/apperror"
	"github.com/AlexWarnes/fStopandGo-api/auth"
)

// fakeStore is an in-memory Store following the real store's contract:
// owner-filtered writes report zero matches instead of failing.
type fakeStore struct {
	shoots map[int]*Shoot
	nextID int
}

func newFakeStore() *fakeStore {
	return &fakeStore{shoots: make(map[int]*Shoot), nextID: 1}
}

func (f *fakeStore) seed(owner, title string, gear ...string) *Shoot {
	if gear == nil {
		gear = []string{}
	}
	s := &Shoot{ID: f.nextID, Title: title, Owner: owner, GearList: gear, CreatedAt: time.Now()}
	f.shoots[s.ID] = s
	f.nextID++
	return s
}

func (f *fakeStore) CreateShoot(ctx context.Context, shoot *Shoot) (*Shoot, error) {
	shoot.ID = f.nextID
	shoot.CreatedAt = time.Now()
	f.shoots[shoot.ID] = shoot
	f.nextID++
	return shoot, nil
}

func (f *fakeStore) GetShoot(ctx context.Context, id int) (*Shoot, error) {
	s, ok := f.shoots[id]
	if !ok {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("shoot with id %d not found", id), nil)
	}
	return s, nil
}

func (f *fakeStore) ListShootsByOwner(ctx context.Context, owner string) ([]Shoot, error) {
	list := make([]Shoot, 0)
	for id := 1; id < f.nextID; id++ {
		if s, ok := f.shoots[id]; ok && s.Owner == owner {
			list = append(list, *s)
		}
	}
	return list, nil
}

func (f *fakeStore) UpdateShoot(ctx context.Context, id int, owner string, updates []auth.FieldUpdate) (bool, error) {
	s, ok := f.shoots[id]
	if !ok || s.Owner != owner {
		return false, nil
	}
	for _, u := range updates {
		switch u.Column {
		case "title":
			s.Title = u.Value.(string)
		case "location":
			v := u.Value.(string)
			s.Location = &v
		case "description":
			v := u.Value.(string)
			s.Description = &v
		case "gear_list":
			s.GearList = u.Value.([]string)
		}
	}
	return true, nil
}

func (f *fakeStore) DeleteShoot(ctx context.Context, id int, owner string) (bool, error) {
	s, ok := f.shoots[id]
	if !ok || s.Owner != owner {
		return false, nil
	}
	delete(f.shoots, id)
	return true, nil
}

func (f *fakeStore) ShootExists(ctx context.Context, id int) (bool, error) {
	_, ok := f.shoots[id]
	return ok, nil
}

// asUser simulates the JWT middleware by installing claims for the given
// username on every request.
func asUser(username string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := &auth.Claims{User: auth.TokenUser{Username: username}}
			next.ServeHTTP(w, r.WithContext(auth.NewContextWithClaims(r.Context(), claims)))
		})
	}
}

func newRouter(store *fakeStore, authedAs string) http.Handler {
	h := NewShootHandlers(NewShootService(store))
	r := chi.NewRouter()
	r.Route("/api/shoots", func(r chi.Router) {
		if authedAs != "" {
			r.Use(asUser(authedAs))
		}
		r.Get("/", h.HandleListShoots())
		r.Post("/", h.HandleCreateShoot())
		r.Get("/{id}", h.HandleGetShoot())
		r.Put("/{id}", h.HandleUpdateShoot())
		r.Delete("/{id}", h.HandleDeleteShoot())
	})
	return r
}

func do(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCreateShoot(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	router := newRouter(store, "shutterbug")

	rec := do(t, router, "POST", "/api/shoots",
		`{"title":"Golden hour","location":"the pier","gearList":["85mm","tripod","reflector"]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created Shoot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, "Golden hour", created.Title)
	require.Equal(t, "shutterbug", created.Owner)
	require.Equal(t, []string{"85mm", "tripod", "reflector"}, created.GearList)
	require.NotZero(t, created.ID)
}

func TestCreateShoot_OwnerComesFromToken(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	router := newRouter(store, "shutterbug")

	// An owner key in the body is ignored, not honored.
	rec := do(t, router, "POST", "/api/shoots", `{"title":"Golden hour","owner":"somebody-else"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created Shoot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, "shutterbug", created.Owner)
	require.Equal(t, "shutterbug", store.shoots[created.ID].Owner)
}

func TestCreateShoot_Validation(t *testing.T) {
	t.Parallel()

	router := newRouter(newFakeStore(), "shutterbug")

	cases := []struct {
		name     string
		body     string
		status   int
		message  string
		location string
	}{
		{"missing title", `{"location":"the pier"}`, 422, "Missing field", "title"},
		{"padded title", `{"title":" Golden hour"}`, 422, "Cannot start or end with whitespace", "title"},
		{"non-string title", `{"title":7}`, 422, "Incorrect field type: expected string", "title"},
		{"non-array gear list", `{"title":"Golden hour","gearList":"tripod"}`, 422, "Incorrect field type: expected array of strings", "gearList"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := do(t, router, "POST", "/api/shoots", c.body)
			require.Equal(t, c.status, rec.Code, rec.Body.String())
			var resp apperror.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.Equal(t, c.message, resp.Message)
			require.Equal(t, c.location, resp.Location)
		})
	}
}

func TestCreateShoot_EmptyGearListDefaults(t *testing.T) {
	t.Parallel()

	router := newRouter(newFakeStore(), "shutterbug")

	rec := do(t, router, "POST", "/api/shoots", `{"title":"Golden hour"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Always a JSON array, never null.
	require.Contains(t, rec.Body.String(), `"gearList":[]`)
}

func TestListShoots(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.seed("shutterbug", "Pier sunset")
	store.seed("other", "Studio portraits")
	store.seed("shutterbug", "Waterfall hike")
	router := newRouter(store, "shutterbug")

	rec := do(t, router, "GET", "/api/shoots", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, "GET", "/api/shoots?owner=other", "")
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, router, "GET", "/api/shoots?owner=shutterbug", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []Shoot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	require.Equal(t, "Pier sunset", list[0].Title)
	require.Equal(t, "Waterfall hike", list[1].Title)
}

func TestGetShoot(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	mine := store.seed("shutterbug", "Pier sunset", "85mm", "tripod")
	foreign := store.seed("other", "Studio portraits")
	router := newRouter(store, "shutterbug")

	rec := do(t, router, "GET", fmt.Sprintf("/api/shoots/%d", mine.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got Shoot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, []string{"85mm", "tripod"}, got.GearList)

	rec = do(t, router, "GET", fmt.Sprintf("/api/shoots/%d", foreign.ID), "")
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, router, "GET", "/api/shoots/9999", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, "GET", "/api/shoots/abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateShoot(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	mine := store.seed("shutterbug", "Pier sunset")
	foreign := store.seed("other", "Studio portraits")
	router := newRouter(store, "shutterbug")

	// Path and body ids must match.
	rec := do(t, router, "PUT", fmt.Sprintf("/api/shoots/%d", mine.ID),
		fmt.Sprintf(`{"id":%d,"title":"Renamed"}`, mine.ID+100))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Someone else's shoot and a missing shoot look the same.
	rec = do(t, router, "PUT", fmt.Sprintf("/api/shoots/%d", foreign.ID),
		fmt.Sprintf(`{"id":%d,"title":"Renamed"}`, foreign.ID))
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "Studio portraits", store.shoots[foreign.ID].Title)

	rec = do(t, router, "PUT", "/api/shoots/9999", `{"id":9999,"title":"Renamed"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// A provided title is revalidated.
	rec = do(t, router, "PUT", fmt.Sprintf("/api/shoots/%d", mine.ID),
		fmt.Sprintf(`{"id":%d,"title":" padded"}`, mine.ID))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// Successful update, including replacing the gear list.
	rec = do(t, router, "PUT", fmt.Sprintf("/api/shoots/%d", mine.ID),
		fmt.Sprintf(`{"id":%d,"title":"Blue hour","gearList":["24mm"]}`, mine.ID))
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	require.Equal(t, "Blue hour", store.shoots[mine.ID].Title)
	require.Equal(t, []string{"24mm"}, store.shoots[mine.ID].GearList)

	// An explicit empty array clears the list.
	rec = do(t, router, "PUT", fmt.Sprintf("/api/shoots/%d", mine.ID),
		fmt.Sprintf(`{"id":%d,"gearList":[]}`, mine.ID))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, store.shoots[mine.ID].GearList)
	require.Equal(t, "Blue hour", store.shoots[mine.ID].Title, "absent fields stay untouched")
}

func TestUpdateShoot_NoFields(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	mine := store.seed("shutterbug", "Pier sunset")
	foreign := store.seed("other", "Studio portraits")
	router := newRouter(store, "shutterbug")

	// A body carrying only the id still answers with the ownership rule.
	rec := do(t, router, "PUT", fmt.Sprintf("/api/shoots/%d", foreign.ID),
		fmt.Sprintf(`{"id":%d}`, foreign.ID))
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, router, "PUT", "/api/shoots/9999", `{"id":9999}`)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, router, "PUT", fmt.Sprintf("/api/shoots/%d", mine.ID),
		fmt.Sprintf(`{"id":%d}`, mine.ID))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "Pier sunset", store.shoots[mine.ID].Title)
}

func TestDeleteShoot(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	mine := store.seed("shutterbug", "Pier sunset")
	foreign := store.seed("other", "Studio portraits")
	router := newRouter(store, "shutterbug")

	rec := do(t, router, "DELETE", fmt.Sprintf("/api/shoots/%d", foreign.ID), "")
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, store.shoots, foreign.ID, "forbidden delete must not touch the store")

	rec = do(t, router, "DELETE", "/api/shoots/9999", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, "DELETE", fmt.Sprintf("/api/shoots/%d", mine.ID), "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.NotContains(t, store.shoots, mine.ID)

	// A second delete finds nothing.
	rec = do(t, router, "DELETE", fmt.Sprintf("/api/shoots/%d", mine.ID), "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShootRoutesWithoutClaims(t *testing.T) {
	t.Parallel()

	router := newRouter(newFakeStore(), "")

	rec := do(t, router, "GET", "/api/shoots", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
