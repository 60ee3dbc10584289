// file: internals/features/users/auth/service/token_service.go
package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"eduhost_backend/internals/configs"
	userModel "eduhost_backend/internals/features/users/user/model"
)

/* ==========================
   Const & small helpers
========================== */

const (
	AccessTTLDefault  = 24 * time.Hour
	RefreshTTLDefault = 7 * 24 * time.Hour
)

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET belum diset")
	}
	return secret, nil
}

func getRefreshSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTRefreshSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_REFRESH_SECRET belum diset")
	}
	return secret, nil
}

// ComputeRefreshHash: HMAC-SHA256 token - yang disimpan di DB cuma hash-nya.
func ComputeRefreshHash(token, secret string) []byte {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(token))
	return m.Sum(nil)
}

/* ==========================
   Claims builders
========================== */

func buildAccessClaims(u *userModel.UserModel, now time.Time) jwt.MapClaims {
	claims := jwt.MapClaims{
		"sub":       u.ID.String(),
		"user_name": u.UserName,
		"email":     u.Email,
		"role":      u.Role,
		"iat":       now.Unix(),
		"exp":       now.Add(AccessTTLDefault).Unix(),
	}
	if u.UserSchoolID != nil {
		claims["school_id"] = u.UserSchoolID.String()
	}
	return claims
}

func buildRefreshClaims(u *userModel.UserModel, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub": u.ID.String(),
		"typ": "refresh",
		"iat": now.Unix(),
		"exp": now.Add(RefreshTTLDefault).Unix(),
	}
}

/* ==========================
   Issuance
========================== */

// IssueAccessToken: satu bearer token opaque per login sukses. Token lama
// milik user TIDAK di-revoke - multi sesi lintas device memang disengaja,
// retensi/revocation jadi kebijakan terpisah.
func IssueAccessToken(u *userModel.UserModel, now time.Time) (string, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return "", err
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, buildAccessClaims(u, now)).
		SignedString([]byte(secret))
}

func IssueRefreshToken(u *userModel.UserModel, now time.Time) (string, error) {
	secret, err := getRefreshSecret()
	if err != nil {
		return "", err
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, buildRefreshClaims(u, now)).
		SignedString([]byte(secret))
}
