package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

var testConfig = Config{
	Secret: []byte("test-secret"),
	TTL:    7 * 24 * time.Hour,
}

func TestHashPassword(t *testing.T) {
	digest, err := HashPassword("pw1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if digest == "pw1" {
		t.Fatal("digest equals plaintext")
	}

	if !CheckPassword("pw1", digest) {
		t.Error("correct password rejected")
	}
	if CheckPassword("pw2", digest) {
		t.Error("wrong password accepted")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("pw1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	second, err := HashPassword("pw1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password are identical, salt missing")
	}
}

func TestIssueVerifyToken(t *testing.T) {
	a := New(testConfig, nil)

	token, err := a.IssueToken("user-1")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	userID, err := a.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("VerifyToken = %q, want %q", userID, "user-1")
	}
}

func TestVerifyTokenTampered(t *testing.T) {
	a := New(testConfig, nil)

	token, err := a.IssueToken("user-1")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments, want 3", len(parts))
	}
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]

	if _, err := a.VerifyToken(tampered); err != ErrInvalidToken {
		t.Errorf("VerifyToken(tampered) = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	a := New(testConfig, nil)
	other := New(Config{Secret: []byte("other-secret"), TTL: testConfig.TTL}, nil)

	token, err := other.IssueToken("user-1")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	if _, err := a.VerifyToken(token); err != ErrInvalidToken {
		t.Errorf("VerifyToken(foreign token) = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := issued

	a := New(testConfig, func() time.Time { return clock })

	token, err := a.IssueToken("user-1")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	// Still valid just before the 7 day cutoff.
	clock = issued.Add(testConfig.TTL - time.Minute)
	if _, err := a.VerifyToken(token); err != nil {
		t.Errorf("VerifyToken before expiry = %v, want nil", err)
	}

	clock = issued.Add(testConfig.TTL + time.Minute)
	if _, err := a.VerifyToken(token); err != ErrInvalidToken {
		t.Errorf("VerifyToken after expiry = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyTokenMalformed(t *testing.T) {
	a := New(testConfig, nil)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := a.VerifyToken(token); err != ErrInvalidToken {
			t.Errorf("VerifyToken(%q) = %v, want ErrInvalidToken", token, err)
		}
	}
}

func middlewareRouter(a *Auth) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", a.Middleware(), func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c))
	})
	return router
}

func TestMiddleware(t *testing.T) {
	a := New(testConfig, nil)
	router := middlewareRouter(a)

	token, err := a.IssueToken("user-1")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, ""},
		{"no bearer prefix", token, http.StatusUnauthorized, ""},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, ""},
		{"garbage token", "Bearer garbage", http.StatusUnauthorized, ""},
		{"valid token", "Bearer " + token, http.StatusOK, "user-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			if tt.body != "" && w.Body.String() != tt.body {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.body)
			}
		})
	}
}
