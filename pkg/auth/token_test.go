package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/relooped/reloop-backend/pkg/config"
)

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "reloop",
		ExpirationMinutes: 30,
	}
	now := time.Now().UTC()

	payload := AccessTokenPayload{
		UserID:   7,
		Username: "greenmarket",
	}

	token, err := MintAccessToken(cfg, now, payload)
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}

	if claims.UserID != 7 {
		t.Fatalf("expected user_id 7, got %d", claims.UserID)
	}
	if claims.Username != "greenmarket" {
		t.Fatalf("unexpected username %q", claims.Username)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %s, got %s", cfg.Issuer, claims.Issuer)
	}

	exp := now.Add(time.Duration(cfg.ExpirationMinutes) * time.Minute)
	diff := claims.ExpiresAt.Sub(exp)
	if diff < 0 {
		diff = -diff
	}
	if diff >= time.Second {
		t.Fatalf("expected exp roughly %v, got %v (diff %v)", exp.UTC(), claims.ExpiresAt.UTC(), diff)
	}
}

func TestParseAccessTokenInvalidSignature(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "reloop",
		ExpirationMinutes: 10,
	}
	now := time.Now()

	token, err := MintAccessToken(cfg, now, AccessTokenPayload{UserID: 1, Username: "a"})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	other := cfg
	other.Secret = "different"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatal("expected signature mismatch to fail")
	}
}

func TestMintAccessTokenRejectsBadInputs(t *testing.T) {
	now := time.Now()
	base := config.JWTConfig{Secret: "secret", Issuer: "reloop", ExpirationMinutes: 10}

	cases := []struct {
		name    string
		cfg     config.JWTConfig
		payload AccessTokenPayload
	}{
		{name: "missing secret", cfg: config.JWTConfig{Issuer: "reloop", ExpirationMinutes: 10}, payload: AccessTokenPayload{UserID: 1}},
		{name: "missing issuer", cfg: config.JWTConfig{Secret: "secret", ExpirationMinutes: 10}, payload: AccessTokenPayload{UserID: 1}},
		{name: "zero expiration", cfg: config.JWTConfig{Secret: "secret", Issuer: "reloop"}, payload: AccessTokenPayload{UserID: 1}},
		{name: "zero user id", cfg: base, payload: AccessTokenPayload{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := MintAccessToken(tc.cfg, now, tc.payload); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseAccessTokenWrongIssuer(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "reloop", ExpirationMinutes: 10}
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: 1, Username: "a"})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}
	if !strings.Contains(token, ".") {
		t.Fatal("token does not look like a JWT")
	}

	other := cfg
	other.Issuer = "someone-else"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatal("expected issuer mismatch to fail")
	}
}
