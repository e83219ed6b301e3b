package auth

import (
	"testing"
	"time"
)

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	secret := "super-secret"
	username := "shutterbug"

	tok, expiresAt, err := IssueToken(username, secret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("expiry should be in the future, got %s", expiresAt)
	}

	claims, err := VerifyToken(tok, secret)
	if err != nil {
		t.Fatalf("VerifyToken error: %v", err)
	}
	if claims.User.Username != username {
		t.Fatalf("username claim: got %q want %q", claims.User.Username, username)
	}
	if claims.Subject != username {
		t.Fatalf("subject: got %q want %q", claims.Subject, username)
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	t.Parallel()

	tok, _, err := IssueToken("u1", "secret", -1*time.Second)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	if _, err := VerifyToken(tok, "secret"); err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, _, err := IssueToken("u2", "right-secret", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	if _, err := VerifyToken(tok, "wrong-secret"); err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
}

func TestVerifyToken_MalformedString(t *testing.T) {
	t.Parallel()

	if _, err := VerifyToken("not.a.jwt", "k"); err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatalf("hash must not equal the plaintext")
	}
	if !CheckPassword(hash, "correct horse battery") {
		t.Fatalf("CheckPassword should accept the original password")
	}
	if CheckPassword(hash, "wrong password") {
		t.Fatalf("CheckPassword should reject a different password")
	}
}
