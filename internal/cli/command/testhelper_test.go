package command

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

const (
	testEmail      = "nurse@clinic.test"
	testPassword   = "pw-123"
	testToken      = "tok-nurse-0001"
	adminEmail     = "admin@clinic.test"
	adminToken     = "tok-admin-0001"
	testPatientID  = "P1A"
	testPatientRow = `{"id":"P1A","name":"Ana Diaz","age":34,"priority":5,"is_emergency":false}`
)

// request is what the mock API saw.
type request struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]any
}

// mockServer is a small stand-in for the clinic API under /api.
type mockServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []request
}

func newMockServer(t *testing.T) *mockServer {
	t.Helper()
	m := &mockServer{}
	mux := http.NewServeMux()

	users := map[string]string{testToken: testEmail, adminToken: adminEmail}

	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			tok := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if _, ok := users[tok]; !ok {
				jsonResponse(w, http.StatusUnauthorized, map[string]any{"error": "Unauthorized"})
				return
			}
			next(w, r)
		}
	}

	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		body := m.lastBody()
		switch {
		case body["email"] == testEmail && body["password"] == testPassword:
			jsonResponse(w, http.StatusOK, map[string]any{
				"token": testToken,
				"user":  map[string]any{"email": testEmail, "name": "Nurse Joy"},
			})
		case body["email"] == adminEmail && body["password"] == testPassword:
			jsonResponse(w, http.StatusOK, map[string]any{
				"token": adminToken,
				"user":  map[string]any{"email": adminEmail},
			})
		default:
			jsonResponse(w, http.StatusUnauthorized, map[string]any{"error": "Invalid credentials"})
		}
	})
	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]any{"message": "Logout successful"})
	})
	mux.HandleFunc("/api/auth/me", authed(func(w http.ResponseWriter, r *http.Request) {
		tok := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		jsonResponse(w, http.StatusOK, map[string]any{"user": map[string]any{"email": users[tok]}})
	}))
	mux.HandleFunc("/api/auth/forgot-password", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]any{"message": "sent", "verification_code": "482913"})
	})
	mux.HandleFunc("/api/admin/access", authed(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+adminToken {
			jsonResponse(w, http.StatusForbidden, map[string]any{"error": "Access Denied", "has_access": false})
			return
		}
		jsonResponse(w, http.StatusOK, map[string]any{"message": "Admin access granted", "has_access": true})
	}))
	mux.HandleFunc("/api/patients", authed(func(w http.ResponseWriter, r *http.Request) {
		var row any
		_ = json.Unmarshal([]byte(testPatientRow), &row)
		jsonResponse(w, http.StatusOK, map[string]any{"patients": []any{row}})
	}))
	mux.HandleFunc("/api/queue/add", authed(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]any{"message": "Patient added to queue"})
	}))
	mux.HandleFunc("/api/queue", authed(func(w http.ResponseWriter, r *http.Request) {
		var row any
		_ = json.Unmarshal([]byte(testPatientRow), &row)
		jsonResponse(w, http.StatusOK, map[string]any{
			"regular_queue":   []any{row},
			"emergency_queue": []any{map[string]any{"item": map[string]any{"id": "P9Z", "name": "Ben"}, "priority": 1}},
			"regular_size":    1,
			"emergency_size":  1,
		})
	}))
	mux.HandleFunc("/api/dashboard/stats", authed(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]any{"stats": map[string]any{"total_patients": 1}})
	}))
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]any{"status": "healthy", "message": "API is running"})
	})

	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := request{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization")}
		_ = json.NewDecoder(r.Body).Decode(&req.Body)
		m.mu.Lock()
		m.requests = append(m.requests, req)
		m.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(m.Close)
	return m
}

func (m *mockServer) lastBody() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return nil
	}
	return m.requests[len(m.requests)-1].Body
}

// find returns the requests made to path.
func (m *mockServer) find(path string) []request {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []request
	for _, r := range m.requests {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// jsonResponse writes a JSON response.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// harness runs medqueue-cli processes against one mock API and one
// isolated home directory.
type harness struct {
	t    *testing.T
	srv  *mockServer
	home string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("MEDQUEUE_STORAGE_DIR", filepath.Join(home, "state"))
	return &harness{t: t, srv: newMockServer(t), home: home}
}

type result struct {
	stdout string
	stderr string
	err    error
}

// run executes one CLI process: a fresh App that is closed afterwards.
func (h *harness) run(stdin string, args ...string) result {
	h.t.Helper()
	var out, errOut bytes.Buffer
	app := NewWithIO(strings.NewReader(stdin), &out, &errOut)

	full := append([]string{"medqueue-cli", "--server", h.srv.URL + "/api"}, args...)
	err := app.Run(context.Background(), full)
	if cerr := app.Close(); cerr != nil {
		h.t.Errorf("Close() error = %v", cerr)
	}
	return result{stdout: out.String(), stderr: errOut.String(), err: err}
}

// mustRun fails the test when the command fails.
func (h *harness) mustRun(args ...string) result {
	h.t.Helper()
	res := h.run("", args...)
	if res.err != nil {
		h.t.Fatalf("%v: %v\nstderr: %s", args, res.err, res.stderr)
	}
	return res
}

func (h *harness) login() {
	h.t.Helper()
	h.mustRun("login", "--email", testEmail, "--password", testPassword)
}
