package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"recipebook/internal/models"
	"recipebook/internal/service"
)

func TestSessionResolution(t *testing.T) {
	t.Run("cookie authenticates", func(t *testing.T) {
		auth := &mockAuth{parseID: 7}
		rec := &mockRecipes{owned: []models.Recipe{}}
		r := newTestRouter(&service.Service{Authorization: auth, Recipes: rec})

		w := doForm(r, http.MethodGet, "/recipes", "", "cookie-token")

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if auth.lastParseToken != "cookie-token" {
			t.Fatalf("expected cookie token to be parsed, got %q", auth.lastParseToken)
		}
	})

	t.Run("bearer header authenticates without a cookie", func(t *testing.T) {
		auth := &mockAuth{parseID: 7}
		rec := &mockRecipes{owned: []models.Recipe{}}
		r := newTestRouter(&service.Service{Authorization: auth, Recipes: rec})

		req := httptest.NewRequest(http.MethodGet, "/recipes", nil)
		req.Header.Set("Authorization", "Bearer header-token")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if auth.lastParseToken != "header-token" {
			t.Fatalf("expected header token to be parsed, got %q", auth.lastParseToken)
		}
	})

	t.Run("no token means anonymous", func(t *testing.T) {
		r := newTestRouter(&service.Service{Authorization: &mockAuth{}, Recipes: &mockRecipes{}})

		w := doForm(r, http.MethodGet, "/recipes", "", "")

		if !requireRedirect(w, pathLogin) {
			t.Fatalf("expected redirect to login, got %d %q", w.Code, w.Header().Get("Location"))
		}
	})

	t.Run("rejected token means anonymous", func(t *testing.T) {
		auth := &mockAuth{parseErr: service.ErrInvalidToken}
		r := newTestRouter(&service.Service{Authorization: auth, Recipes: &mockRecipes{}})

		w := doForm(r, http.MethodGet, "/recipes", "", "tampered")

		if !requireRedirect(w, pathLogin) {
			t.Fatalf("expected redirect to login, got %d %q", w.Code, w.Header().Get("Location"))
		}
	})
}

func TestRedirectIfAuthenticated(t *testing.T) {
	auth := &mockAuth{parseID: 7}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := doForm(r, http.MethodGet, "/auth/login", "", "some-session")

	if !requireRedirect(w, pathHome) {
		t.Fatalf("expected redirect home, got %d %q", w.Code, w.Header().Get("Location"))
	}
	if auth.loginCalls != 0 {
		t.Fatalf("login form must not be processed for session holders")
	}
}
