// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/beylog/internal/auth"
	"github.com/tomtom215/beylog/internal/authz"
	"github.com/tomtom215/beylog/internal/middleware"
	"github.com/tomtom215/beylog/internal/models"
)

// Router wires handlers behind the Edge Gate and per-route Route Guards.
type Router struct {
	handler       *Handler
	gate          *auth.Gate
	guard         *auth.Guard
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil chiMiddleware uses the defaults.
func NewRouter(handler *Handler, gate *auth.Gate, guard *auth.Guard, chiMiddleware *ChiMiddleware) *Router {
	if chiMiddleware == nil {
		chiMiddleware = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		gate:          gate,
		guard:         guard,
		chiMiddleware: chiMiddleware,
	}
}

// SetupChi configures all HTTP routes.
//
// Every request passes the Edge Gate first, which redirects requests
// without a valid session away from protected paths. Each data route then
// carries its own Route Guard, Authenticated or Require(capability), so a
// route stays closed even if the gate policy admits it. Only logout uses
// Optional.
func (router *Router) SetupChi() http.Handler {
	h := router.handler
	guard := router.guard
	admin := guard.Require

	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Compress(5, "application/json"))
	r.Use(router.chiMiddleware.CORS())
	r.Use(router.gate.Middleware)

	// ========================
	// Operational Endpoints
	// ========================
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.With(router.chiMiddleware.RateLimitHealth(), APISecurityHeaders()).Get("/api/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())

		// ========================
		// Authentication
		// ========================
		r.Route("/auth", func(r chi.Router) {
			r.With(router.chiMiddleware.RateLimitAuth()).Post("/register", h.Register)
			r.With(router.chiMiddleware.RateLimitAuth()).Post("/login", h.Login)
			r.With(guard.Optional).Post("/logout", h.Logout)
			r.With(guard.Authenticated).Get("/me", h.Me)
		})

		// ========================
		// Administration
		// ========================
		r.Route("/admin", func(r chi.Router) {
			r.With(admin(authz.CreateUser)).Post("/register", h.AdminRegister)
			r.With(admin(authz.ReadStats)).Get("/stats", h.AdminStats)
		})
		r.With(admin(authz.SeedCatalog)).Post("/seed", h.SeedCatalog)

		// ========================
		// Beyblades and Collections
		// ========================
		r.Route("/beyblades", func(r chi.Router) {
			r.With(admin(authz.ReadBeyblades)).Get("/", h.ListBeyblades)
			r.With(admin(authz.CreateBeyblade), router.chiMiddleware.RateLimitWrite()).Post("/", h.CreateBeyblade)

			r.Group(func(r chi.Router) {
				r.Use(guard.Authenticated)
				r.Get("/list", h.ListBeyblades)
				r.Get("/last", h.LastBeyblade)
				r.Get("/collection", h.ListCollection)
				r.Post("/collection/add", h.AddToCollection)
				r.Get("/collection/check/{id}", h.CheckCollection)
				r.Delete("/collection/{id}", h.RemoveFromCollection)
				r.Get("/{id}", h.GetBeyblade)
			})

			r.With(admin(authz.UpdateBeyblade), router.chiMiddleware.RateLimitWrite()).Put("/{id}", h.UpdateBeyblade)
			r.With(admin(authz.DeleteBeyblade)).Delete("/{id}", h.DeleteBeyblade)
		})
		r.With(guard.Authenticated).Get("/colecao", h.ListCollection)

		// ========================
		// Combos
		// ========================
		r.Route("/combos", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(guard.Authenticated)
				r.Get("/community", h.CommunityCombos)
				r.Get("/top-day", h.TopDayCombo)
				r.Get("/detail/{id}", h.ComboDetail)
				r.Get("/", h.TopUserCombo)
				r.Post("/", h.CreateCombo)
				r.Post("/add", h.AddCombo)
				r.Get("/user", h.UserCombos)
				r.Put("/{id}", h.UpdateCombo)
				r.Delete("/{id}", h.DeleteCombo)
				r.Post("/{id}/like", h.ToggleLike)
			})
		})

		// ========================
		// Parts Catalog
		// ========================
		r.Route("/parts", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(guard.Authenticated)
				r.Get("/", h.PartCatalog)
				r.Get("/bits", h.PartRefs(models.PartBit))
				r.Get("/ratchets", h.PartRefs(models.PartRatchet))
				r.Get("/{id}/image", h.PartImage)
			})

			r.With(admin(authz.CreatePart), router.chiMiddleware.RateLimitWrite()).Post("/", h.CreatePart)
			r.With(admin(authz.DeletePart)).Delete("/{id}", h.DeletePart)
			r.With(admin(authz.UpdatePart), router.chiMiddleware.RateLimitWrite()).Post("/{id}/image", h.UploadPartImage)
		})

		r.Group(func(r chi.Router) {
			r.Use(guard.Authenticated)
			for _, t := range models.PartTypes {
				r.Get("/"+t.Plural(), h.PartsOfType(t))
				r.Get("/"+t.Plural()+"/{id}/image", h.TypedPartImage(t))
			}
		})
	})

	return r
}
