package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/resenaapp/resena-server/internal/domain"
)

const testKeyHex = "707172737475767778797a7b7c7d7e7f808182838485868788898a8b8c8d8e8f"

func newTestTokenService(t *testing.T, duration time.Duration) *TokenService {
	t.Helper()
	svc, err := NewTokenService(testKeyHex, duration)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return svc
}

func TestNewTokenServiceRejectsBadKeys(t *testing.T) {
	if _, err := NewTokenService("tooshort", time.Hour); err == nil {
		t.Error("expected error for short key")
	}
	notHex := strings.Repeat("zz", 32)
	if _, err := NewTokenService(notHex, time.Hour); err == nil {
		t.Error("expected error for non-hex key")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)

	user := &domain.User{ID: 7, Username: "alicia"}
	token, err := svc.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if !strings.HasPrefix(token, "v4.local.") {
		t.Errorf("expected a v4.local token, got prefix %q", token[:9])
	}

	claims, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("UserID: got %d, want 7", claims.UserID)
	}
	if claims.Username != "alicia" {
		t.Errorf("Username: got %q, want %q", claims.Username, "alicia")
	}
	if claims.Subject != "7" {
		t.Errorf("Subject: got %q, want %q", claims.Subject, "7")
	}
	if claims.TokenID == "" {
		t.Error("TokenID: expected non-empty jti")
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	svc := newTestTokenService(t, -time.Minute)

	token, err := svc.GenerateToken(&domain.User{ID: 1, Username: "bob"})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := svc.VerifyToken(token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestVerifyTokenRejectsTampered(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)

	token, err := svc.GenerateToken(&domain.User{ID: 1, Username: "bob"})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := svc.VerifyToken(tampered); err == nil {
		t.Error("expected error for tampered token")
	}
	if _, err := svc.VerifyToken("not a token"); err == nil {
		t.Error("expected error for garbage token")
	}
}

func TestVerifyTokenRejectsOtherKey(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)
	otherKeyHex := strings.Repeat("ab", 32)
	other, err := NewTokenService(otherKeyHex, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	token, err := svc.GenerateToken(&domain.User{ID: 1, Username: "bob"})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := other.VerifyToken(token); err == nil {
		t.Error("expected error for token encrypted with a different key")
	}
}
