package tenancy

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eduhost_backend/internals/configs"
	schoolModel "eduhost_backend/internals/features/schools/school/model"
)

type fakeDirectory struct {
	bySubdomain map[string]*schoolModel.SchoolModel
	err         error
	lookups     int
}

func (f *fakeDirectory) FindBySubdomain(ctx context.Context, label string) (*schoolModel.SchoolModel, error) {
	f.lookups++
	if f.err != nil {
		return nil, f.err
	}
	return f.bySubdomain[label], nil
}

func newFakeDirectory(schools ...*schoolModel.SchoolModel) *fakeDirectory {
	f := &fakeDirectory{bySubdomain: map[string]*schoolModel.SchoolModel{}}
	for _, s := range schools {
		f.bySubdomain[s.SchoolSubdomain] = s
	}
	return f
}

func TestResolve(t *testing.T) {
	alpha := &schoolModel.SchoolModel{
		SchoolID:        uuid.New(),
		SchoolName:      "SMA Alpha",
		SchoolSubdomain: "alpha",
		SchoolIsActive:  true,
	}
	m := HostMatcher{BaseDomain: "eduhost.test"}

	t.Run("subdomain terdaftar → tenant", func(t *testing.T) {
		dir := newFakeDirectory(alpha)
		tctx := Resolve(context.Background(), m, dir, "alpha.eduhost.test")
		require.True(t, tctx.IsTenant())
		assert.Equal(t, alpha.SchoolID, tctx.School.SchoolID)
	})

	t.Run("base domain → central tanpa lookup", func(t *testing.T) {
		dir := newFakeDirectory(alpha)
		tctx := Resolve(context.Background(), m, dir, "EDUHOST.test")
		assert.False(t, tctx.IsTenant())
		assert.Equal(t, 0, dir.lookups)
	})

	t.Run("subdomain tidak dikenal → central", func(t *testing.T) {
		dir := newFakeDirectory(alpha)
		tctx := Resolve(context.Background(), m, dir, "beta.eduhost.test")
		assert.False(t, tctx.IsTenant())
		assert.Equal(t, 1, dir.lookups)
	})

	t.Run("error lookup → central, bukan 500", func(t *testing.T) {
		dir := &fakeDirectory{err: errors.New("db down")}
		tctx := Resolve(context.Background(), m, dir, "alpha.eduhost.test")
		assert.False(t, tctx.IsTenant())
	})
}

func TestResolveTenantMiddleware(t *testing.T) {
	prevBase, prevKey := configs.BaseTenantDomain, configs.TenantCtxLocalKey
	configs.BaseTenantDomain = "eduhost.test"
	configs.TenantCtxLocalKey = "tenant_ctx"
	t.Cleanup(func() {
		configs.BaseTenantDomain = prevBase
		configs.TenantCtxLocalKey = prevKey
	})

	alpha := &schoolModel.SchoolModel{
		SchoolID:        uuid.New(),
		SchoolSubdomain: "alpha",
		SchoolIsActive:  true,
	}
	dir := newFakeDirectory(alpha)

	app := fiber.New()
	app.Use(ResolveTenant(dir))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		tctx := FromLocals(c)
		// FromLocals dipanggil dua kali: tidak boleh nambah lookup
		_ = FromLocals(c)
		if !tctx.IsTenant() {
			return c.SendString("central")
		}
		return c.SendString(tctx.SchoolIDString())
	})

	t.Run("host tenant", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Host = "alpha.eduhost.test"
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		body := readBody(t, resp.Body)
		assert.Equal(t, alpha.SchoolID.String(), body)
		assert.Equal(t, 1, dir.lookups)
	})

	t.Run("host central", func(t *testing.T) {
		before := dir.lookups
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Host = "eduhost.test"
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, "central", readBody(t, resp.Body))
		assert.Equal(t, before, dir.lookups)
	})
}

func readBody(t *testing.T, r io.ReadCloser) string {
	t.Helper()
	defer r.Close()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(b)
}

func TestRequireTenantMatch(t *testing.T) {
	prevKey := configs.TenantCtxLocalKey
	configs.TenantCtxLocalKey = "tenant_ctx"
	t.Cleanup(func() { configs.TenantCtxLocalKey = prevKey })

	alpha := &schoolModel.SchoolModel{SchoolID: uuid.New(), SchoolSubdomain: "alpha"}

	newApp := func(tctx TenantContext, schoolID string) *fiber.App {
		app := fiber.New()
		app.Use(func(c *fiber.Ctx) error {
			c.Locals(configs.TenantCtxLocalKey, tctx)
			if schoolID != "" {
				c.Locals("school_id", schoolID)
			}
			return c.Next()
		})
		app.Use(RequireTenantMatch())
		app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
		return app
	}

	t.Run("host central → lolos", func(t *testing.T) {
		app := newApp(Central(), "")
		resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("school_id cocok → lolos", func(t *testing.T) {
		app := newApp(TenantContext{School: alpha}, alpha.SchoolID.String())
		resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("school_id beda → 403", func(t *testing.T) {
		app := newApp(TenantContext{School: alpha}, uuid.NewString())
		resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("tanpa school_id di token → 403", func(t *testing.T) {
		app := newApp(TenantContext{School: alpha}, "")
		resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}
