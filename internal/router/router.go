// Package router sets up all HTTP routes and middleware chains for the
// Shopwright server. It organizes routes into storefront and admin API
// groups with appropriate middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shopwright/internal/handlers"
	"shopwright/internal/middleware"
	"shopwright/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, admin *handlers.Admin, auth *handlers.Auth, public *handlers.Public) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check and metrics — no auth, no CSRF.
	r.Get("/health", healthHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Admin API — JSON, CSRF-protected, staff only past login.
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.CSRF)

		// Auth endpoints — accessible without a session. Login is
		// rate-limited to slow down credential stuffing.
		loginLimiter := middleware.NewRateLimiter(10, time.Minute)
		r.With(loginLimiter.Middleware).Post("/login", auth.Login)
		r.Post("/logout", auth.Logout)

		// 2FA — requires auth but NOT completed verification.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/2fa/setup", auth.TwoFASetup)
			r.Post("/2fa/verify", auth.TwoFAVerify)
		})

		// Authenticated + 2FA-verified builder API.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)
			r.Use(middleware.RequireStaff)

			r.Get("/page-types", admin.PageTypes)
			r.Get("/condition-kinds", admin.ConditionKinds)

			r.Route("/templates", func(r chi.Router) {
				r.Get("/", admin.TemplatesList)
				r.Post("/", admin.TemplateCreate)
				r.Get("/{id}", admin.TemplateGet)
				r.Put("/{id}", admin.TemplateUpdate)
				r.Put("/{id}/conditions", admin.TemplateConditions)
				r.Put("/{id}/priority", admin.TemplatePriority)
				r.Put("/{id}/content", admin.TemplateContent)
				r.Post("/{id}/publish", admin.TemplatePublish)
				r.Post("/{id}/unpublish", admin.TemplateUnpublish)
				r.Post("/{id}/duplicate", admin.TemplateDuplicate)
				r.Delete("/{id}", admin.TemplateDelete)
			})

			// Settings — admin only.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/settings", admin.SettingsGet)
				r.Put("/settings", admin.SettingsUpdate)
			})
		})
	})

	// Storefront routes.
	r.Get("/", redirectShop)
	r.Get("/shop", public.Shop)
	r.Get("/product/{slug}", public.Product)
	r.Get("/product-category/{slug}", public.CategoryArchive)
	r.Get("/product-tag/{slug}", public.TagArchive)

	// Cart and checkout posts rely on SameSite cookies rather than CSRF
	// tokens: the widget forms are plain HTML without a token field.
	r.Route("/cart", func(r chi.Router) {
		r.Get("/", public.CartPage)
		r.Post("/add", public.CartAdd)
		r.Post("/update", public.CartUpdate)
		r.Post("/coupon", public.CartCoupon)
	})

	r.Route("/checkout", func(r chi.Router) {
		r.Get("/", public.CheckoutPage)
		r.Post("/", public.CheckoutSubmit)
		r.Get("/order-received/{order}", public.OrderReceived)
	})

	r.Get("/account", public.Account)
	r.Get("/account/{endpoint}", public.Account)

	return r
}

// redirectShop sends the bare root to the shop archive.
func redirectShop(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/shop", http.StatusSeeOther)
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
