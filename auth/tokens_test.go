package auth

import (
	"errors"
	"testing"
	"time"
)

func TestCodecRoundTrip(t *testing.T) {
	codec := testCodec()

	access, err := codec.IssueAccess("a@x.com")
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}
	claims, err := codec.DecodeAccess(access)
	if err != nil {
		t.Fatalf("decode access: %v", err)
	}
	if claims.Subject != "a@x.com" {
		t.Fatalf("expected subject a@x.com, got %q", claims.Subject)
	}

	refresh, err := codec.IssueRefresh("a@x.com")
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}
	claims, err = codec.DecodeRefresh(refresh)
	if err != nil {
		t.Fatalf("decode refresh: %v", err)
	}
	if claims.Subject != "a@x.com" {
		t.Fatalf("expected subject a@x.com, got %q", claims.Subject)
	}
}

func TestCodecClassesDoNotCrossValidate(t *testing.T) {
	codec := testCodec()

	access, err := codec.IssueAccess("a@x.com")
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}
	if _, err := codec.DecodeRefresh(access); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("access token passed the refresh verifier: %v", err)
	}

	refresh, err := codec.IssueRefresh("a@x.com")
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}
	if _, err := codec.DecodeAccess(refresh); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("refresh token passed the access verifier: %v", err)
	}
}

func TestCodecRejectsExpiredToken(t *testing.T) {
	codec, err := NewCodec("access-secret", "HS256", "refresh-secret", "HS256", -time.Minute, -time.Minute)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	access, err := codec.IssueAccess("a@x.com")
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}
	if _, err := codec.DecodeAccess(access); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential for expired token, got %v", err)
	}
}

func TestCodecRejectsMalformedToken(t *testing.T) {
	codec := testCodec()
	if _, err := codec.DecodeAccess("not-a-token"); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
	if _, err := codec.DecodeRefresh(""); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
}

func TestCodecRejectsTamperedSignature(t *testing.T) {
	codec := testCodec()
	other, err := NewCodec("different-secret", "HS256", "different-secret", "HS384", 15*time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	access, err := other.IssueAccess("a@x.com")
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}
	if _, err := codec.DecodeAccess(access); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential for foreign signature, got %v", err)
	}
}

func TestNewCodecUnknownAlgorithm(t *testing.T) {
	if _, err := NewCodec("s", "NOPE", "s", "HS256", time.Minute, time.Minute); err == nil {
		t.Fatal("expected error for unknown access algorithm")
	}
	if _, err := NewCodec("s", "HS256", "s", "NOPE", time.Minute, time.Minute); err == nil {
		t.Fatal("expected error for unknown refresh algorithm")
	}
}

func TestNewCodecRejectsSharedSigningContext(t *testing.T) {
	if _, err := NewCodec("same", "HS256", "same", "HS256", time.Minute, time.Minute); err == nil {
		t.Fatal("identical secret and method must be rejected")
	}
	// same secret with a different method keeps the classes apart
	if _, err := NewCodec("same", "HS256", "same", "HS384", time.Minute, time.Minute); err != nil {
		t.Fatalf("distinct methods must be accepted: %v", err)
	}
}

func TestIssueRefreshProducesDistinctTokens(t *testing.T) {
	codec := testCodec()
	a, err := codec.IssueRefresh("a@x.com")
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}
	b, err := codec.IssueRefresh("a@x.com")
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}
	if a == b {
		t.Fatal("two refresh tokens issued back to back must differ")
	}
}
