package security

import (
	"testing"
	"time"
)

func TestDownloadTokenRoundTrip(t *testing.T) {
	token, err := GenerateDownloadToken(7, "reader@example.com", time.Minute, "secret")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := VerifyDownloadToken(token, "secret")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.MagnetID != 7 || claims.Email != "reader@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestDownloadTokenWrongSecret(t *testing.T) {
	token, err := GenerateDownloadToken(7, "reader@example.com", time.Minute, "secret")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := VerifyDownloadToken(token, "other-secret"); err == nil {
		t.Fatal("expected signature error with wrong secret")
	}
}

func TestDownloadTokenExpired(t *testing.T) {
	token, err := GenerateDownloadToken(7, "reader@example.com", -time.Minute, "secret")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := VerifyDownloadToken(token, "secret"); err == nil {
		t.Fatal("expected expiry error")
	}
}

func TestDownloadTokenMalformed(t *testing.T) {
	for _, token := range []string{"", "abc", "a.b.c", "!!!.???"} {
		if _, err := VerifyDownloadToken(token, "secret"); err == nil {
			t.Fatalf("expected error for malformed token %q", token)
		}
	}
}
