package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"parkpass/internal/auth"
)

// Router mounts every handler. Visitor endpoints require a user token,
// admin endpoints an admin token; auth and catalog are public.
func Router(h *Handler) chi.Router {
	secret := []byte(h.Config.Auth.JWTSecret)

	r := chi.NewRouter()
	r.Use(h.requestLogger)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/admin/login", h.AdminLogin)
	})

	r.Get("/catalog", h.ListCatalog)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(secret, auth.RoleUser))
		r.Get("/account", h.GetAccount)
		r.Put("/account", h.UpdateAccount)
		r.Delete("/account", h.DeleteAccount)
		r.Post("/purchase", h.Purchase)
		r.Get("/purchases", h.ListPurchases)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(secret, auth.RoleAdmin))
		r.Get("/admin/sales", h.Sales)
		r.Put("/admin/discounts", h.SetDiscount)
	})

	return r
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Logger == nil {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		next.ServeHTTP(w, r)
		h.Logger.LogAPI(r.Method, r.URL.Path, "done", time.Since(start).String())
	})
}
