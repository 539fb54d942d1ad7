package utils

import (
	"testing"
	"time"
)

func TestJwtRoundTrip(t *testing.T) {
	t.Setenv("API_SECRET", "test-secret")
	t.Setenv("TOKEN_HOUR_LIFESPAN", "2")

	signed, err := JwtGenerate(7, "operator")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	parsed, err := JwtValidate(signed)
	if err != nil || !parsed.Valid {
		t.Fatalf("validate: %v", err)
	}
	claim, ok := parsed.Claims.(*JwtCustomClaim)
	if !ok {
		t.Fatalf("unexpected claims type %T", parsed.Claims)
	}
	if claim.ID != 7 || claim.Username != "operator" {
		t.Fatalf("unexpected claim: %+v", claim)
	}
	if left := time.Until(time.Unix(claim.ExpiresAt, 0)); left > 2*time.Hour || left < time.Hour {
		t.Fatalf("unexpected expiry in %v", left)
	}
}

func TestJwtValidate_RejectsOtherSecret(t *testing.T) {
	t.Setenv("API_SECRET", "one")
	signed, err := JwtGenerate(1, "a")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	t.Setenv("API_SECRET", "two")
	if parsed, err := JwtValidate(signed); err == nil && parsed.Valid {
		t.Fatalf("expected token signed with another secret to be rejected")
	}
}

func TestTokenLifespanDefault(t *testing.T) {
	t.Setenv("TOKEN_HOUR_LIFESPAN", "")
	if got := TokenLifespan(); got != 24*time.Hour {
		t.Fatalf("got %v", got)
	}
}
