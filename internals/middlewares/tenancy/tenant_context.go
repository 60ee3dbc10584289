// file: internals/middlewares/tenancy/tenant_context.go
package tenancy

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"eduhost_backend/internals/configs"
	schoolModel "eduhost_backend/internals/features/schools/school/model"
)

const logPrefix = "[TENANT_CTX]"

/* ==========================
   TenantContext (per-request, tidak pernah dipersist)
========================== */

// TenantContext: hasil resolve host → sekolah. School == nil berarti central
// (tanpa tenant). Hidup satu request saja - directory bisa berubah antar
// request (sekolah di-suspend), jadi JANGAN cache lintas request by host.
type TenantContext struct {
	School *schoolModel.SchoolModel
}

func Central() TenantContext { return TenantContext{} }

func (t TenantContext) IsTenant() bool { return t.School != nil }

func (t TenantContext) SchoolIDString() string {
	if t.School == nil {
		return ""
	}
	return t.School.SchoolID.String()
}

/* ==========================
   SchoolDirectory
========================== */

// SchoolDirectory: lookup sekolah by subdomain (lowercase exact match, hanya
// sekolah aktif). Diimplementasi repository schools; test pakai fake in-memory.
type SchoolDirectory interface {
	FindBySubdomain(ctx context.Context, label string) (*schoolModel.SchoolModel, error)
}

/* ==========================
   Resolve
========================== */

// Resolve: host → TenantContext. Subdomain tidak dikenal ATAU error lookup
// dua-duanya jatuh ke central - request publik di host salah ketik tetap
// jalan, tidak 500.
func Resolve(ctx context.Context, m HostMatcher, dir SchoolDirectory, rawHost string) TenantContext {
	match := m.Match(rawHost)
	if match.Central {
		return Central()
	}
	school, err := dir.FindBySubdomain(ctx, match.Subdomain)
	if err != nil {
		log.Printf("%s lookup subdomain=%s error: %v → treat as central", logPrefix, match.Subdomain, err)
		return Central()
	}
	if school == nil {
		return Central()
	}
	return TenantContext{School: school}
}

/* ==========================
   Middleware
========================== */

// ResolveTenant: resolve sekali di awal request, simpan di Locals. Pemanggil
// berikutnya dalam request yang sama pakai FromLocals (idempoten, satu lookup
// per request).
func ResolveTenant(dir SchoolDirectory) fiber.Handler {
	return func(c *fiber.Ctx) error {
		m := HostMatcher{
			BaseDomain:     configs.BaseTenantDomain,
			CentralDomains: configs.CentralDomains,
		}
		tctx := Resolve(c.UserContext(), m, dir, c.Hostname())
		if tctx.IsTenant() {
			log.Printf("%s host=%s → school_id=%s", logPrefix, c.Hostname(), tctx.SchoolIDString())
		}
		c.Locals(configs.TenantCtxLocalKey, tctx)
		return c.Next()
	}
}

// FromLocals: ambil TenantContext hasil ResolveTenant. Kalau middleware belum
// jalan (mis. route tanpa setup) → central.
func FromLocals(c *fiber.Ctx) TenantContext {
	if v := c.Locals(configs.TenantCtxLocalKey); v != nil {
		if tctx, ok := v.(TenantContext); ok {
			return tctx
		}
	}
	return Central()
}

// RequireTenantMatch: defense in depth untuk route scoped sekolah - principal
// di token harus milik tenant host ini. Keputusan utamanya sudah di
// IdentityGuard saat login; ini menjaga token lama yang dipakai lintas host.
func RequireTenantMatch() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tctx := FromLocals(c)
		if !tctx.IsTenant() {
			return c.Next()
		}
		schoolID, _ := c.Locals("school_id").(string)
		if schoolID == "" || schoolID != tctx.SchoolIDString() {
			return fiber.NewError(fiber.StatusForbidden, "Akun tidak terdaftar pada subdomain ini")
		}
		return c.Next()
	}
}
