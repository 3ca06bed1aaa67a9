// Package auth issues and validates the signed tokens embedded in public
// upload links (/public-upload/:type/:token). A token grants one upload type
// until it expires.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/contentdesk/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "contentdesk"

// UploadClaims are the registered claims plus the granted upload type.
type UploadClaims struct {
	jwt.RegisteredClaims
	UploadType string `json:"upload_type"`
}

func GenerateUploadToken(uploadType string, secretKey []byte, validityDuration time.Duration) (string, error) {
	if uploadType == "" {
		return "", fmt.Errorf("%w: empty upload type", common.ErrorValidation)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, UploadClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UploadType: uploadType,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseUploadToken validates tokenString and returns its upload type.
// Expired tokens yield common.ErrTokenExpired, anything else that fails
// validation yields common.ErrInvalidToken.
func ParseUploadToken(tokenString string, secretKey []byte) (string, error) {
	claims := &UploadClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UploadType == "" {
		return "", common.ErrInvalidToken
	}

	return claims.UploadType, nil
}
