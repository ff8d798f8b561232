package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/selectshop/shop-api/internal/core/domain"
)

type stubTokens struct {
	claims map[string]*domain.Claims
	errs   map[string]error
}

func (s *stubTokens) Issue(subject, role string) (string, error) {
	return subject + "-token", nil
}

func (s *stubTokens) Verify(token string) (*domain.Claims, error) {
	if err, ok := s.errs[token]; ok {
		return nil, err
	}
	if c, ok := s.claims[token]; ok {
		return c, nil
	}
	return nil, domain.ErrTokenMalformed
}

type stubUsers struct {
	users map[string]*domain.User
}

func (s *stubUsers) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := s.users[username]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUsers) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUsers) FindByKakaoID(context.Context, int64) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}

func (s *stubUsers) Save(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}

func fixtures() (*stubTokens, *stubUsers) {
	tokens := &stubTokens{
		claims: map[string]*domain.Claims{
			"alice-token": {Subject: "alice", Role: domain.RoleUser},
			"ghost-token": {Subject: "ghost", Role: domain.RoleUser},
		},
		errs: map[string]error{
			"expired-token": domain.ErrTokenExpired,
			"forged-token":  domain.ErrTokenSignatureInvalid,
		},
	}
	users := &stubUsers{users: map[string]*domain.User{
		"alice": {ID: "1", Username: "alice", Role: domain.RoleUser},
	}}
	return tokens, users
}

func run(t *testing.T, req *http.Request, allow *AllowList) (*httptest.ResponseRecorder, *domain.User, bool) {
	t.Helper()
	tokens, users := fixtures()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *domain.User
	called := false
	mw := Authenticate(tokens, users, allow)
	handler := mw(func(c echo.Context) error {
		called = true
		seen = CurrentUser(c)
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, seen, called
}

func protectedOnly() *AllowList {
	return NewAllowList("/api/user/**")
}

func TestAuthenticate_HeaderCarrier(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/user-info", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer alice-token")

	rec, seen, called := run(t, req, protectedOnly())
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected pass, got code %d", rec.Code)
	}
	if seen == nil || seen.Username != "alice" {
		t.Fatalf("expected alice bound to context, got %+v", seen)
	}
}

func TestAuthenticate_CookieCarrier(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/user-info", nil)
	req.AddCookie(&http.Cookie{Name: CredentialCookie, Value: "alice-token"})

	rec, seen, _ := run(t, req, protectedOnly())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if seen == nil || seen.Username != "alice" {
		t.Fatalf("expected alice bound to context, got %+v", seen)
	}
}

func TestAuthenticate_AbsentPassesThroughUnauthenticated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/user-info", nil)

	rec, seen, called := run(t, req, protectedOnly())
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected unauthenticated pass-through, got code %d", rec.Code)
	}
	if seen != nil {
		t.Fatalf("expected no identity, got %+v", seen)
	}
}

func TestAuthenticate_ExpiredRejected(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/user-info", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer expired-token")

	rec, _, called := run(t, req, protectedOnly())
	if called {
		t.Fatalf("handler must not run with an expired credential")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestAuthenticate_ExpiredOnAllowListedPathPasses(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/user/login", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer expired-token")

	rec, seen, called := run(t, req, protectedOnly())
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("allow-listed path must pass, got code %d", rec.Code)
	}
	if seen != nil {
		t.Fatalf("allow-listed path must not gain an identity, got %+v", seen)
	}
}

func TestAuthenticate_ForgedRejected(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/user-info", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer forged-token")

	rec, _, called := run(t, req, protectedOnly())
	if called || rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d (called=%v)", rec.Code, called)
	}
}

func TestAuthenticate_OrphanedSubjectRejected(t *testing.T) {
	// Valid token whose account has since been deleted.
	req := httptest.NewRequest(http.MethodGet, "/api/user-info", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer ghost-token")

	rec, _, called := run(t, req, protectedOnly())
	if called || rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d (called=%v)", rec.Code, called)
	}
}

func TestAuthenticate_MalformedHeaderRejected(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/user-info", nil)
	req.Header.Set(echo.HeaderAuthorization, "Token alice-token")

	rec, _, called := run(t, req, protectedOnly())
	if called || rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d (called=%v)", rec.Code, called)
	}
}

func TestRequireUser(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/user-info", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := RequireUser()
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without identity, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	SetCurrentUser(c, &domain.User{Username: "alice", Role: domain.RoleUser})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with identity, got %d", rec.Code)
	}
}
