package middlewares

import (
	"beedu/beedu/services/token"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testIssuer() *token.Issuer {
	return token.NewIssuer("test-secret", time.Hour)
}

func TestRequireAuthMissingHeader(t *testing.T) {
	handler := RequireAuth(testIssuer())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run without a token")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Not authenticated") {
		t.Errorf("expected Not authenticated detail, got %s", rr.Body.String())
	}
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	handler := RequireAuth(testIssuer())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run with a malformed header")
	}))

	for _, header := range []string{"Bearer", "Token abc", "abc"} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", header)
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, rr.Code)
		}
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	handler := RequireAuth(testIssuer())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run with an invalid token")
	}))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Invalid token") {
		t.Errorf("expected Invalid token detail, got %s", rr.Body.String())
	}
}

func TestRequireAuthExpiredToken(t *testing.T) {
	expired := token.NewIssuer("test-secret", -time.Minute)
	raw, err := expired.Issue("user-1", "a@x.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	handler := RequireAuth(testIssuer())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run with an expired token")
	}))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}
}

func TestRequireAuthValidToken(t *testing.T) {
	issuer := testIssuer()
	raw, err := issuer.Issue("user-1", "a@x.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	var gotID, gotEmail string
	handler := RequireAuth(issuer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = UserID(r.Context())
		gotEmail, _ = Email(r.Context())
	}))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if gotID != "user-1" {
		t.Errorf("expected user id in context, got %q", gotID)
	}
	if gotEmail != "a@x.com" {
		t.Errorf("expected email in context, got %q", gotEmail)
	}
}

func TestOptionalAuthWithoutToken(t *testing.T) {
	called := false
	handler := OptionalAuth(testIssuer())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if _, ok := UserID(r.Context()); ok {
			t.Error("expected no identity without a token")
		}
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("POST", "/", nil))

	if !called {
		t.Fatal("expected handler to run")
	}
	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
}

func TestOptionalAuthInvalidTokenPassesThrough(t *testing.T) {
	called := false
	handler := OptionalAuth(testIssuer())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if _, ok := UserID(r.Context()); ok {
			t.Error("expected no identity for an invalid token")
		}
	}))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	handler.ServeHTTP(rr, req)

	if !called {
		t.Fatal("expected handler to run despite the bad token")
	}
}

func TestOptionalAuthValidToken(t *testing.T) {
	issuer := testIssuer()
	raw, err := issuer.Issue("user-1", "a@x.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	handler := OptionalAuth(issuer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := UserID(r.Context()); !ok || id != "user-1" {
			t.Errorf("expected identity user-1, got %q (ok=%v)", id, ok)
		}
	}))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
}
