package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenRoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer(testSecret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	token, expires, err := issuer.GenerateAdminToken("ops")
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}
	if time.Until(expires) <= 0 {
		t.Errorf("expiry %v is not in the future", expires)
	}

	claims, err := issuer.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Role != RoleAdmin || claims.Subject != "ops" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	issuer, _ := NewTokenIssuer(testSecret, time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, _, err := issuer.GenerateAdminToken("ops")
	if err != nil {
		t.Fatal(err)
	}

	issuer.now = time.Now
	if _, err := issuer.ValidateToken(token); err == nil {
		t.Error("expired token accepted")
	}
}

func TestTokenFromOtherSecretRejected(t *testing.T) {
	a, _ := NewTokenIssuer(testSecret, time.Hour)
	b, _ := NewTokenIssuer(strings.Repeat("z", 32), time.Hour)

	token, _, _ := a.GenerateAdminToken("ops")
	if _, err := b.ValidateToken(token); err == nil {
		t.Error("token signed with another secret accepted")
	}
}

func TestNoneAlgorithmRejected(t *testing.T) {
	issuer, _ := NewTokenIssuer(testSecret, time.Hour)

	claims := Claims{Role: RoleAdmin, RegisteredClaims: jwt.RegisteredClaims{Issuer: "universe-builder"}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := issuer.ValidateToken(token); err == nil {
		t.Error("unsigned token accepted")
	}
}

func TestNewTokenIssuerValidation(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		ttl    time.Duration
	}{
		{"empty secret", "", time.Hour},
		{"short secret", "short", time.Hour},
		{"zero ttl", testSecret, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTokenIssuer(tt.secret, tt.ttl); err == nil {
				t.Error("expected error")
			}
		})
	}
}
