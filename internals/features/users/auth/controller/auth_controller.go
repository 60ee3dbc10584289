// file: internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"eduhost_backend/internals/configs"
	"eduhost_backend/internals/constants"
	authModel "eduhost_backend/internals/features/users/auth/model"
	authRepo "eduhost_backend/internals/features/users/auth/repository"
	authService "eduhost_backend/internals/features/users/auth/service"
	userDto "eduhost_backend/internals/features/users/user/dto"
	userModel "eduhost_backend/internals/features/users/user/model"
	helper "eduhost_backend/internals/helpers"
	"eduhost_backend/internals/middlewares/tenancy"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

/* ==========================
   LOGIN
========================== */

// POST /api/auth/login
// Sukses → {token, user}. Tolak admission → 403 {message}, TANPA token dan
// tanpa cookie yang tersisa (session parsial dibatalkan).
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" || input.Password == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Email dan password wajib diisi")
	}

	user, err := authRepo.FindUserByEmail(ctrl.DB, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Email atau password salah"})
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Email atau password salah"})
	}

	// Admission gate - SETELAH kredensial valid, SEBELUM token terbit
	tctx := tenancy.FromLocals(c)
	adm := authService.AdmitPrincipal(authService.PrincipalOf(user), tctx, configs.RequireSubdomainForSchoolUsers)
	if !adm.Allowed {
		clearSessionCookies(c)
		log.Printf("[AUTH] login ditolak user=%s host=%s: %s", user.ID, c.Hostname(), adm.Reason)
		return c.Status(adm.Status).JSON(fiber.Map{"message": adm.Reason})
	}

	now := time.Now().UTC()
	accessToken, err := authService.IssueAccessToken(user, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}
	refreshToken, err := authService.IssueRefreshToken(user, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat refresh token")
	}

	refreshSecret := configs.JWTRefreshSecret
	if err := authRepo.CreateRefreshToken(ctrl.DB, &authModel.RefreshToken{
		UserID:    user.ID,
		TokenHash: authService.ComputeRefreshHash(refreshToken, refreshSecret),
		ExpiresAt: now.Add(authService.RefreshTTLDefault),
		UserAgent: strPtr(c.Get("User-Agent")),
		IP:        strPtr(c.IP()),
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan refresh token")
	}

	setRefreshCookie(c, refreshToken, now.Add(authService.RefreshTTLDefault))

	return c.JSON(fiber.Map{
		"token": accessToken,
		"user":  userDto.ToUserResponse(user),
	})
}

/* ==========================
   REGISTER (public, tenant host)
========================== */

// POST /api/auth/register
// Self-registration student pada subdomain sekolah. Host central → 403
// (akun sekolah dibuat dari konteks sekolahnya).
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	tctx := tenancy.FromLocals(c)
	if !tctx.IsTenant() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Registrasi hanya lewat subdomain sekolah"})
	}

	var input struct {
		UserName string `json:"user_name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}

	schoolID := tctx.School.SchoolID
	user := userModel.UserModel{
		UserName:     strings.TrimSpace(input.UserName),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Password:     input.Password,
		Role:         constants.RoleStudent,
		UserSchoolID: &schoolID,
	}
	if err := user.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal hash password")
	}
	user.Password = string(hashed)

	if err := authRepo.CreateUser(ctrl.DB, &user); err != nil {
		return helper.JsonError(c, fiber.StatusConflict, "Email sudah terdaftar")
	}

	return helper.JsonCreated(c, "Registrasi berhasil", userDto.ToUserResponse(&user))
}

/* ==========================
   LOGOUT
========================== */

// POST /api/auth/logout
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	raw := helper.GetRawAccessToken(c)
	if raw != "" {
		expiredAt := tokenExpiryOrDefault(raw, authService.AccessTTLDefault)
		if err := authRepo.BlacklistToken(ctrl.DB, raw, expiredAt); err != nil {
			log.Printf("[AUTH] gagal blacklist token: %v", err)
		}
	}

	if refresh := helper.GetRefreshTokenFromCookie(c); refresh != "" {
		hash := authService.ComputeRefreshHash(refresh, configs.JWTRefreshSecret)
		if err := authRepo.DeleteRefreshTokenByHash(ctrl.DB, hash); err != nil {
			log.Printf("[AUTH] gagal hapus refresh token: %v", err)
		}
	}

	clearSessionCookies(c)
	return helper.JsonOK(c, "Logout berhasil", nil)
}

/* ==========================
   REFRESH TOKEN
========================== */

// POST /api/auth/refresh-token
// Rotasi: refresh lama dihapus, pasangan baru terbit. Admission di-cek ulang
// dengan tenant context request INI (sekolah bisa saja sudah di-suspend).
func (ctrl *AuthController) RefreshToken(c *fiber.Ctx) error {
	refreshCookie := helper.GetRefreshTokenFromCookie(c)
	if refreshCookie == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak ada")
	}

	refreshSecret := strings.TrimSpace(configs.JWTRefreshSecret)
	if refreshSecret == "" {
		return helper.JsonError(c, fiber.StatusInternalServerError, "JWT_REFRESH_SECRET belum diset")
	}

	tok, err := jwt.Parse(refreshCookie, func(t *jwt.Token) (any, error) {
		return []byte(refreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}

	oldHash := authService.ComputeRefreshHash(refreshCookie, refreshSecret)
	if _, err := authRepo.FindRefreshTokenByHash(ctrl.DB, oldHash); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak dikenal")
	}

	user, err := authRepo.FindUserByID(ctrl.DB, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak ditemukan")
	}

	adm := authService.AdmitPrincipal(authService.PrincipalOf(user), tenancy.FromLocals(c), configs.RequireSubdomainForSchoolUsers)
	if !adm.Allowed {
		clearSessionCookies(c)
		return c.Status(adm.Status).JSON(fiber.Map{"message": adm.Reason})
	}

	// ROTATE
	if err := authRepo.DeleteRefreshTokenByHash(ctrl.DB, oldHash); err != nil {
		log.Printf("[AUTH] delete old refresh hash failed: %v", err)
	}

	now := time.Now().UTC()
	newAccess, err := authService.IssueAccessToken(user, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal buat access baru")
	}
	newRefresh, err := authService.IssueRefreshToken(user, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal buat refresh baru")
	}
	if err := authRepo.CreateRefreshToken(ctrl.DB, &authModel.RefreshToken{
		UserID:    user.ID,
		TokenHash: authService.ComputeRefreshHash(newRefresh, refreshSecret),
		ExpiresAt: now.Add(authService.RefreshTTLDefault),
		UserAgent: strPtr(c.Get("User-Agent")),
		IP:        strPtr(c.IP()),
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal simpan refresh baru")
	}

	setRefreshCookie(c, newRefresh, now.Add(authService.RefreshTTLDefault))

	return c.JSON(fiber.Map{
		"token": newAccess,
		"user":  userDto.ToUserResponse(user),
	})
}

/* ==========================
   ME
========================== */

// GET /api/auth/me
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	userIDStr, _ := c.Locals("user_id").(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	user, err := authRepo.FindUserByID(ctrl.DB, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User tidak ditemukan")
	}
	return helper.JsonOK(c, "OK", userDto.ToUserResponse(user))
}

/* ==========================
   Cookie & token utils
========================== */

func setRefreshCookie(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
		Path:     "/api/auth",
	})
}

func clearSessionCookies(c *fiber.Ctx) {
	for _, name := range []string{"access_token", "refresh_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			Path:     "/",
		})
	}
}

// tokenExpiryOrDefault: ambil exp dari token tanpa verifikasi (buat TTL row
// blacklist saja); gagal parse → pakai TTL default.
func tokenExpiryOrDefault(raw string, ttl time.Duration) time.Time {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, _, err := parser.ParseUnverified(raw, claims); err == nil {
		if exp, ok := claims["exp"].(float64); ok {
			return time.Unix(int64(exp), 0)
		}
	}
	return time.Now().Add(ttl)
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
