package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"user_id":  "user_bob",
		"username": "bob",
		"role":     "User",
		"exp":      time.Now().Add(15 * time.Minute).Unix(),
	}
}

func runAuth(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, echo.Context, error) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, c, handler(c)
}

func TestAuth_BearerHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, validClaims()))

	rec, c, err := runAuth(t, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if c.Get("user_id") != "user_bob" || c.Get("role") != "User" {
		t.Errorf("claims not injected: user_id=%v role=%v", c.Get("user_id"), c.Get("role"))
	}
}

func TestAuth_CookieFallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: signToken(t, testSecret, validClaims())})

	rec, _, err := runAuth(t, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_Rejections(t *testing.T) {
	cases := []struct {
		name    string
		prepare func(*http.Request)
	}{
		{"no credentials", func(*http.Request) {}},
		{"malformed header", func(r *http.Request) {
			r.Header.Set("Authorization", "Token abc")
		}},
		{"wrong secret", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", validClaims()))
		}},
		{"expired token", func(r *http.Request) {
			claims := validClaims()
			claims["exp"] = time.Now().Add(-time.Minute).Unix()
			r.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, claims))
		}},
		{"unsigned token", func(r *http.Request) {
			token, _ := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims()).SignedString(jwt.UnsafeAllowNoneSignatureType)
			r.Header.Set("Authorization", "Bearer "+token)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tc.prepare(req)

			_, _, err := runAuth(t, req)
			httpErr, ok := err.(*echo.HTTPError)
			if !ok {
				t.Fatalf("expected *echo.HTTPError, got %v", err)
			}
			if httpErr.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", httpErr.Code)
			}
		})
	}
}
