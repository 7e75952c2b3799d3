package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/agiangrant/esthetic"
	"github.com/agiangrant/esthetic/internal/logging"
)

const page = `<!DOCTYPE html><html><body><form>` +
	`<div class="esthetic"><select name="color">` +
	`<option value="r">Red</option>` +
	`<optgroup label="Cool"><option value="b" selected>Blue</option><option value="g">Green</option></optgroup>` +
	`</select></div>` +
	`<div class="esthetic"><select name="size"><option>S</option><option>M</option></select></div>` +
	`</form></body></html>`

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logging.Discard()
	os.Exit(m.Run())
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New([]byte(page), esthetic.DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func do(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func createSession(t *testing.T, s *Server) string {
	t.Helper()
	rec := do(s, http.MethodGet, "/", "")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("GET / = %d, want 303", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/s/") {
		t.Fatalf("Location = %q", loc)
	}
	return loc
}

func decodeEvent(t *testing.T, rec *httptest.ResponseRecorder) EventResponse {
	t.Helper()
	var resp EventResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return resp
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := esthetic.DefaultConfig()
	cfg.Events = []string{"bad event"}
	if _, err := New([]byte(page), cfg); err == nil {
		t.Fatal("New should fail for an invalid config")
	}
}

func TestSessionPage(t *testing.T) {
	s := newTestServer(t)
	path := createSession(t, s)

	if s.Sessions() != 1 {
		t.Errorf("Sessions() = %d, want 1", s.Sessions())
	}

	rec := do(s, http.MethodGet, path, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s = %d", path, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	if strings.Contains(body, "<select") {
		t.Error("page still contains select elements")
	}
	if !strings.Contains(body, `<button class="esthetic-trigger"><span>Blue</span></button>`) {
		t.Errorf("page missing trigger:\n%s", body)
	}
}

func TestEvents(t *testing.T) {
	s := newTestServer(t)
	path := createSession(t, s)

	rec := do(s, http.MethodPost, path+"/events", `{"widget":1,"type":"mousedown","target":"trigger"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("open = %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeEvent(t, rec)
	if !resp.Handled || len(resp.Widgets) != 2 {
		t.Fatalf("response = %+v", resp)
	}
	if !resp.Widgets[0].Visible || resp.Widgets[1].Visible {
		t.Errorf("visibility = %v/%v, want true/false", resp.Widgets[0].Visible, resp.Widgets[1].Visible)
	}
	if !strings.HasPrefix(resp.Widgets[0].List, "<ul><li") {
		t.Errorf("open list = %q", resp.Widgets[0].List)
	}
	if resp.Widgets[1].List != "" {
		t.Errorf("unopened list = %q, want empty", resp.Widgets[1].List)
	}

	rec = do(s, http.MethodPost, path+"/events", `{"widget":1,"type":"mousedown","target":"item","value":"g"}`)
	resp = decodeEvent(t, rec)
	color := resp.Widgets[0]
	if color.Visible || color.Text != "Green" || color.Value != "g" || color.Name != "color" {
		t.Errorf("after selecting g: %+v", color)
	}

	rec = do(s, http.MethodPost, path+"/events", `{"widget":2,"type":"click","target":"trigger"}`)
	if resp := decodeEvent(t, rec); resp.Handled {
		t.Error("click is not a configured event")
	}

	rec = do(s, http.MethodGet, path+"/form", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("form = %d", rec.Code)
	}
	var form struct {
		Values  map[string]string `json:"values"`
		Encoded string            `json:"encoded"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &form); err != nil {
		t.Fatalf("decode form: %v", err)
	}
	if form.Encoded != "color=g&size=S" || form.Values["color"] != "g" {
		t.Errorf("form = %+v", form)
	}
}

func TestClose(t *testing.T) {
	s := newTestServer(t)
	path := createSession(t, s)

	do(s, http.MethodPost, path+"/events", `{"widget":2,"type":"focusin","target":"trigger"}`)
	rec := do(s, http.MethodPost, path+"/close", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("close = %d", rec.Code)
	}
	for _, w := range decodeEvent(t, rec).Widgets {
		if w.Visible {
			t.Errorf("widget %d still visible", w.ID)
		}
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	s := newTestServer(t)
	a := createSession(t, s)
	b := createSession(t, s)
	if a == b {
		t.Fatal("sessions share an id")
	}

	do(s, http.MethodPost, a+"/events", `{"widget":1,"type":"mousedown","target":"trigger"}`)
	resp := decodeEvent(t, do(s, http.MethodPost, b+"/close", ""))
	if resp.Widgets[0].Visible {
		t.Error("opening in one session leaked into another")
	}
}

func TestErrors(t *testing.T) {
	s := newTestServer(t)
	path := createSession(t, s)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"unknown session", http.MethodGet, "/s/00000000-0000-0000-0000-000000000000", "", http.StatusNotFound},
		{"malformed session id", http.MethodGet, "/s/nope", "", http.StatusNotFound},
		{"events on unknown session", http.MethodPost, "/s/nope/events", `{"widget":1,"type":"mousedown"}`, http.StatusNotFound},
		{"bad json", http.MethodPost, path + "/events", `{"widget":`, http.StatusBadRequest},
		{"missing type", http.MethodPost, path + "/events", `{"widget":1}`, http.StatusBadRequest},
		{"unknown widget", http.MethodPost, path + "/events", `{"widget":42,"type":"mousedown","target":"trigger"}`, http.StatusNotFound},
		{"form of unknown session", http.MethodGet, "/s/nope/form", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(s, tt.method, tt.path, tt.body)
			if rec.Code != tt.want {
				t.Errorf("%s %s = %d, want %d: %s", tt.method, tt.path, rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestDelete(t *testing.T) {
	s := newTestServer(t)
	path := createSession(t, s)

	if rec := do(s, http.MethodDelete, path, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE = %d", rec.Code)
	}
	if s.Sessions() != 0 {
		t.Errorf("Sessions() = %d after delete", s.Sessions())
	}
	if rec := do(s, http.MethodGet, path, ""); rec.Code != http.StatusNotFound {
		t.Errorf("GET after delete = %d, want 404", rec.Code)
	}
	if rec := do(s, http.MethodDelete, path, ""); rec.Code != http.StatusNotFound {
		t.Errorf("second DELETE = %d, want 404", rec.Code)
	}
}
