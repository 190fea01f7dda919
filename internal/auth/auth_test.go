package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/GokulM8/taskflow/internal/model"
)

func TestBcrypt(t *testing.T) {
	h := Bcrypt{Cost: bcrypt.MinCost}

	hash, err := h.Hash("pw1")
	if err != nil {
		t.Fatalf("failed to hash: %v", err)
	}
	if hash == "pw1" || strings.Contains(hash, "pw1") {
		t.Fatalf("hash leaks plaintext: %q", hash)
	}
	if !h.Verify("pw1", hash) {
		t.Error("expected matching password to verify")
	}
	if h.Verify("pw2", hash) {
		t.Error("expected wrong password to fail")
	}
	if h.Verify("pw1", "not-a-bcrypt-hash") {
		t.Error("expected garbage hash to fail")
	}
}

func TestIssuer_RoundTrip(t *testing.T) {
	iss, err := NewIssuer("secret", time.Hour)
	if err != nil {
		t.Fatalf("failed to create issuer: %v", err)
	}

	token, err := iss.Issue(&model.User{ID: 7, Email: "a@x.com"})
	if err != nil {
		t.Fatalf("failed to issue: %v", err)
	}

	claims, err := iss.Parse(token)
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if claims.UserID != 7 || claims.Email != "a@x.com" || claims.Subject != "7" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestIssuer_Rejects(t *testing.T) {
	iss, _ := NewIssuer("secret", time.Hour)
	other, _ := NewIssuer("other-secret", time.Hour)
	token, _ := iss.Issue(&model.User{ID: 7})
	wrongSecret, _ := other.Issue(&model.User{ID: 7})

	expired, _ := NewIssuer("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	oldToken, _ := expired.Issue(&model.User{ID: 7})

	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 7}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name  string
		token string
	}{
		{"wrong secret", wrongSecret},
		{"expired", oldToken},
		{"tampered", token + "x"},
		{"alg none", none},
		{"garbage", "not.a.token"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := iss.Parse(tt.token); err != ErrInvalidToken {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestNewIssuer_RequiresSecret(t *testing.T) {
	if _, err := NewIssuer("", time.Hour); err == nil {
		t.Error("expected error for empty secret")
	}
}

func TestRequireUser(t *testing.T) {
	if _, err := RequireUser(context.Background()); err != model.ErrNotAuthenticated {
		t.Errorf("expected ErrNotAuthenticated, got %v", err)
	}
	if _, err := RequireUser(WithUser(context.Background(), 0)); err != model.ErrNotAuthenticated {
		t.Errorf("zero id: expected ErrNotAuthenticated, got %v", err)
	}

	id, err := RequireUser(WithUser(context.Background(), 42))
	if err != nil || id != 42 {
		t.Errorf("RequireUser() = %d, %v; want 42, nil", id, err)
	}
}
