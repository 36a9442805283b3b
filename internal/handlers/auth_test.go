package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"home_inventory/internal/service"
)

var errDBDown = errors.New("db down")

func postJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	return nil
}

func TestRegister_Success(t *testing.T) {
	auth := &mockAuth{registerID: 42}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	w := postJSON(r, http.MethodPost, "/auth",
		`{"username":"alice","password":"p1","name":"Alice","email":"a@x.com"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Status string         `json:"status"`
		Data   map[string]any `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != "success" || int(resp.Data["id"].(float64)) != 42 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if auth.lastRegister.Username != "alice" || auth.lastRegister.Email != "a@x.com" {
		t.Fatalf("unexpected register input: %+v", auth.lastRegister)
	}
}

func TestRegister_BadBody(t *testing.T) {
	auth := &mockAuth{}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	cases := []string{
		`{"username":"alice"}`,                                                  // missing fields
		`{"username":"alice","password":"p","name":"A","email":"not-an-email"}`, // bad email
		`{"username":1}`, // wrong type
	}
	for _, body := range cases {
		w := postJSON(r, http.MethodPost, "/auth", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, w.Code)
		}
		var resp struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		if resp.Message != msgBadUserData {
			t.Fatalf("body %s: unexpected message %q", body, resp.Message)
		}
	}
	if auth.registerCalls != 0 {
		t.Fatalf("expected no Register calls, got %d", auth.registerCalls)
	}
}

func TestRegister_ConflictAndStorageFailure(t *testing.T) {
	t.Run("conflict", func(t *testing.T) {
		auth := &mockAuth{registerErr: service.ErrConflict}
		r := newTestRouter(&service.Service{Authorization: auth})

		w := postJSON(r, http.MethodPost, "/auth",
			`{"username":"alice","password":"p1","name":"Alice","email":"a@x.com"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("storage failure is 500, not a user error", func(t *testing.T) {
		auth := &mockAuth{registerErr: errDBDown}
		r := newTestRouter(&service.Service{Authorization: auth})

		w := postJSON(r, http.MethodPost, "/auth",
			`{"username":"alice","password":"p1","name":"Alice","email":"a@x.com"}`)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}

func TestLogin_SuccessSetsSessionCookie(t *testing.T) {
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	auth := &mockAuth{loginRes: &service.LoginResult{
		Token:      "tok123",
		ExpiresAt:  expiry,
		Name:       "Alice",
		AdminLevel: 1,
	}}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := postJSON(r, http.MethodPut, "/auth", `{"username":"alice","password":"p1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}

	cookie := sessionCookie(w)
	if cookie == nil {
		t.Fatal("session cookie not set")
	}
	if cookie.Value != "tok123" {
		t.Fatalf("cookie value: got %q", cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Fatal("session cookie must be httpOnly")
	}
	if !cookie.Secure {
		t.Fatal("session cookie must be secure with Secure option set")
	}
	if cookie.MaxAge <= 0 || cookie.MaxAge > 3600 {
		t.Fatalf("cookie MaxAge should track token TTL, got %d", cookie.MaxAge)
	}

	var resp struct {
		Authenticated bool   `json:"authenticated"`
		Name          string `json:"name"`
		AdminLevel    int    `json:"adminlevel"`
		Expiry        int64  `json:"expiry"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Authenticated || resp.Name != "Alice" || resp.AdminLevel != 1 || resp.Expiry != expiry.Unix() {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestLogin_GETIsSupported(t *testing.T) {
	auth := &mockAuth{loginRes: &service.LoginResult{Token: "tok123", ExpiresAt: time.Now().Add(time.Hour)}}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := postJSON(r, http.MethodGet, "/auth", `{"username":"alice","password":"p1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
}

func TestLogin_InvalidCredentialsSetNoCookie(t *testing.T) {
	auth := &mockAuth{loginErr: service.ErrInvalidCredentials}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := postJSON(r, http.MethodPut, "/auth", `{"username":"alice","password":"wrong"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if sessionCookie(w) != nil {
		t.Fatal("no cookie may be set on failed login")
	}

	var resp struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Error != msgInvalidCredentials {
		t.Fatalf("unexpected error message %q", resp.Error)
	}
}

func TestLogin_StorageFailureIs500(t *testing.T) {
	auth := &mockAuth{loginErr: errDBDown}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := postJSON(r, http.MethodPut, "/auth", `{"username":"alice","password":"p1"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if sessionCookie(w) != nil {
		t.Fatal("no cookie may be set on storage failure")
	}
}
