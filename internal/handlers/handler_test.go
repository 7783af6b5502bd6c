// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler integration
// tests. Tests are skipped when PostgreSQL or Valkey are unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"shopwright/internal/cache"
	"shopwright/internal/cart"
	"shopwright/internal/database"
	"shopwright/internal/engine"
	"shopwright/internal/middleware"
	"shopwright/internal/session"
	"shopwright/internal/store"
	"shopwright/internal/widgets"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "shopwright")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "shopwright")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		// Clean up test session, cart, and cache keys.
		for _, pattern := range []string{"session:*", "cart:*", "render:*", "tmpl-list:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB            *sql.DB
	Valkey        *redis.Client
	Sessions      *session.Store
	UserStore     *store.UserStore
	TemplateStore *store.TemplateStore
	ProductStore  *store.ProductStore
	TermStore     *store.TermStore
	SettingStore  *store.SiteSettingStore
	Carts         *cart.Store
	RenderCache   *cache.RenderCache
	Manager       *engine.Manager
	Renderer      *engine.Renderer
	Admin         *Admin
	Auth          *Auth
	Public        *Public
}

// newTestEnv creates a complete test environment with all handler dependencies.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	sessions := session.NewStore(vk)
	userStore := store.NewUserStore(db)
	templateStore := store.NewTemplateStore(db)
	productStore := store.NewProductStore(db)
	termStore := store.NewTermStore(db)
	settingStore := store.NewSiteSettingStore(db)
	carts := cart.NewStore(vk, 1*time.Hour)
	renderCache := cache.NewRenderCache(vk, 1*time.Minute)

	manager := engine.NewManager(templateStore, settingStore, vk, 1*time.Minute)
	renderer := engine.NewRenderer(widgets.NewRegistry(), renderCache)

	admin := NewAdmin(templateStore, settingStore, manager, renderCache)
	auth := NewAuth(sessions, userStore)
	public := NewPublic(manager, renderer, productStore, termStore, settingStore, carts)

	return &testEnv{
		DB:            db,
		Valkey:        vk,
		Sessions:      sessions,
		UserStore:     userStore,
		TemplateStore: templateStore,
		ProductStore:  productStore,
		TermStore:     termStore,
		SettingStore:  settingStore,
		Carts:         carts,
		RenderCache:   renderCache,
		Manager:       manager,
		Renderer:      renderer,
		Admin:         admin,
		Auth:          auth,
		Public:        public,
	}
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

// testSession creates a session.Data for testing.
func testSession(userID uuid.UUID, email, role string, twoFADone bool) *session.Data {
	return &session.Data{
		UserID:      userID,
		Email:       email,
		DisplayName: "Test User",
		Role:        role,
		TwoFADone:   twoFADone,
	}
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// cleanTemplates removes test templates by title.
func cleanTemplates(t *testing.T, db *sql.DB, titles ...string) {
	t.Helper()
	for _, title := range titles {
		db.Exec("DELETE FROM templates WHERE title = $1", title)
	}
}

// cleanUsers removes test users by email.
func cleanUsers(t *testing.T, db *sql.DB, emails ...string) {
	t.Helper()
	for _, email := range emails {
		db.Exec("DELETE FROM users WHERE email = $1", email)
	}
}

// cleanProducts removes test products by slug.
func cleanProducts(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, s := range slugs {
		db.Exec("DELETE FROM products WHERE slug = $1", s)
	}
}
