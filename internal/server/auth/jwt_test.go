package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/contentdesk/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := GenerateUploadToken("team", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateUploadToken error: %v", err)
	}

	got, err := ParseUploadToken(tok, secret)
	if err != nil {
		t.Fatalf("ParseUploadToken error: %v", err)
	}
	if got != "team" {
		t.Fatalf("upload type mismatch: got %q want %q", got, "team")
	}
}

func TestGenerateUploadToken_EmptyType(t *testing.T) {
	t.Parallel()

	_, err := GenerateUploadToken("", []byte("k"), time.Hour)
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("expected common.ErrorValidation, got %v", err)
	}
}

func TestParseUploadToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateUploadToken("article", secret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateUploadToken error: %v", err)
	}

	_, err = ParseUploadToken(tok, secret)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestParseUploadToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateUploadToken("team", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateUploadToken error: %v", err)
	}

	_, err = ParseUploadToken(tok, []byte("wrong-secret"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestParseUploadToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := ParseUploadToken("not.a.jwt", []byte("k"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestParseUploadToken_RejectsOtherIssuer(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, UploadClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UploadType: "team",
	}).SignedString(secret)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	if _, err := ParseUploadToken(tok, secret); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}
