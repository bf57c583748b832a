package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	model "github.com/yohandiaz/worklog-app/internal/models"
	repository "github.com/yohandiaz/worklog-app/internal/repositories"
	"github.com/yohandiaz/worklog-app/internal/services"
)

func setupTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&model.WorkLog{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.Exec("DELETE FROM worklogs").Error; err != nil {
		t.Fatalf("failed to reset table: %v", err)
	}

	service := services.NewWorkLogService(repository.NewWorkLogRepository(db))

	e := echo.New()
	e.Renderer = NewRenderer()
	Register(e, NewHandler(service))
	return e
}

func doRequest(t *testing.T, e *echo.Echo, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeObject(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestWorkLogAPI_CreateGetDeleteScenario(t *testing.T) {
	e := setupTestServer(t)

	rec := doRequest(t, e, http.MethodPost, "/api/worklogs/", map[string]any{
		"task": "write report",
		"date": "2024-01-10",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	created := decodeObject(t, rec)
	id, ok := created["id"].(float64)
	if !ok || id <= 0 {
		t.Fatalf("expected assigned id, got %v", created["id"])
	}
	if created["description"] != "" {
		t.Errorf("expected empty description, got %v", created["description"])
	}
	if created["is_highlighted"] != false {
		t.Errorf("expected is_highlighted false, got %v", created["is_highlighted"])
	}
	if created["date"] != "2024-01-10" {
		t.Errorf("expected date 2024-01-10, got %v", created["date"])
	}
	if created["inserted_at"] == nil || created["inserted_at"] == "" {
		t.Error("expected inserted_at to be set")
	}

	idPath := "/api/worklogs/" + strconv.Itoa(int(id))

	rec = doRequest(t, e, http.MethodGet, idPath, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := decodeObject(t, rec); !reflect.DeepEqual(got, created) {
		t.Errorf("get returned %v, want %v", got, created)
	}

	rec = doRequest(t, e, http.MethodDelete, idPath, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := decodeObject(t, rec); !reflect.DeepEqual(got, created) {
		t.Errorf("delete returned %v, want %v", got, created)
	}

	rec = doRequest(t, e, http.MethodGet, idPath, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestWorkLogAPI_ValidationErrors(t *testing.T) {
	e := setupTestServer(t)

	cases := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{name: "missing task", method: http.MethodPost, path: "/api/worklogs/", body: map[string]any{"description": "no task"}},
		{name: "blank task", method: http.MethodPost, path: "/api/worklogs/", body: map[string]any{"task": "   "}},
		{name: "malformed JSON", method: http.MethodPost, path: "/api/worklogs/", body: `{"task"`},
		{name: "bad date", method: http.MethodPost, path: "/api/worklogs/", body: map[string]any{"task": "x", "date": "tomorrow"}},
		{name: "bad highlight type", method: http.MethodPost, path: "/api/worklogs/", body: `{"task":"x","is_highlighted":"yes"}`},
		{name: "non-integer id", method: http.MethodGet, path: "/api/worklogs/abc", body: nil},
		{name: "non-integer skip", method: http.MethodGet, path: "/api/worklogs/?skip=abc", body: nil},
		{name: "update missing task", method: http.MethodPut, path: "/api/worklogs/1", body: map[string]any{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, e, tc.method, tc.path, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestWorkLogAPI_NotFound(t *testing.T) {
	e := setupTestServer(t)

	for _, tc := range []struct {
		method string
		body   any
	}{
		{method: http.MethodGet},
		{method: http.MethodPut, body: map[string]any{"task": "x"}},
		{method: http.MethodDelete},
	} {
		rec := doRequest(t, e, tc.method, "/api/worklogs/9999", tc.body)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", tc.method, rec.Code)
		}
	}
}

func TestWorkLogAPI_ListSkipLimit(t *testing.T) {
	e := setupTestServer(t)

	for i := 0; i < 12; i++ {
		rec := doRequest(t, e, http.MethodPost, "/api/worklogs/", map[string]any{"task": "entry"})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
	}

	var page []map[string]any

	rec := doRequest(t, e, http.MethodGet, "/api/worklogs/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(page) != 10 {
		t.Errorf("expected default limit of 10, got %d", len(page))
	}

	rec = doRequest(t, e, http.MethodGet, "/api/worklogs/?skip=10&limit=10", nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(page) != 2 {
		t.Errorf("expected 2 records on second page, got %d", len(page))
	}

	rec = doRequest(t, e, http.MethodGet, "/api/worklogs/?skip=100", nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(page) != 0 {
		t.Errorf("expected empty page past the end, got %d", len(page))
	}
}

func TestWorkLogAPI_UpdateFullReplace(t *testing.T) {
	e := setupTestServer(t)

	rec := doRequest(t, e, http.MethodPost, "/api/worklogs/", map[string]any{
		"task":           "draft",
		"description":    "first pass",
		"is_highlighted": true,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	created := decodeObject(t, rec)
	idPath := "/api/worklogs/" + strconv.Itoa(int(created["id"].(float64)))

	rec = doRequest(t, e, http.MethodPut, idPath, map[string]any{"task": "final"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	updated := decodeObject(t, rec)
	if updated["id"] != created["id"] {
		t.Errorf("expected id %v, got %v", created["id"], updated["id"])
	}
	if updated["inserted_at"] != created["inserted_at"] {
		t.Errorf("expected inserted_at %v, got %v", created["inserted_at"], updated["inserted_at"])
	}
	if updated["task"] != "final" {
		t.Errorf("expected task final, got %v", updated["task"])
	}
	if updated["description"] != "" {
		t.Errorf("expected description reset to empty, got %v", updated["description"])
	}
	if updated["is_highlighted"] != false {
		t.Errorf("expected is_highlighted reset to false, got %v", updated["is_highlighted"])
	}
}

func TestWorkLogAPI_HTMLListing(t *testing.T) {
	e := setupTestServer(t)

	rec := doRequest(t, e, http.MethodPost, "/api/worklogs/", map[string]any{"task": "review <PR>"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	rec = doRequest(t, e, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, echo.MIMETextHTML) {
		t.Errorf("expected HTML content type, got %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "review &lt;PR&gt;") {
		t.Errorf("expected escaped task in page, got:\n%s", body)
	}
}

func TestWorkLogAPI_Index(t *testing.T) {
	e := setupTestServer(t)

	rec := doRequest(t, e, http.MethodGet, "/api/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if msg := decodeObject(t, rec)["message"]; msg == nil || msg == "" {
		t.Error("expected a pointer message")
	}
}
