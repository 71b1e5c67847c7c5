package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/inventory-management/internal/auth"
	"github.com/frahmantamala/inventory-management/internal/catalog"
	"github.com/frahmantamala/inventory-management/internal/group"
	"github.com/frahmantamala/inventory-management/internal/item"
	"github.com/frahmantamala/inventory-management/internal/request"
	"github.com/frahmantamala/inventory-management/internal/transport/middleware"
	"github.com/frahmantamala/inventory-management/internal/transport/swagger"
	"github.com/frahmantamala/inventory-management/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Auth    *auth.Handler
	User    *user.Handler
	Item    *item.Handler
	Request *request.Handler
	Group   *group.Handler
	Catalog *catalog.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, rbac *auth.RBACAuthorization, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.Metrics)

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())
	router.Handle("/metrics", promhttp.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if h.Auth != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", h.Auth.Login)
				sr.Post("/refresh", h.Auth.RefreshToken)
				sr.Post("/logout", h.Auth.Logout)
			})
		}

		if h.Auth == nil {
			return
		}

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			// Current user
			if h.User != nil {
				pr.Get("/users/me", h.User.GetCurrentUser)

				// Account and role administration is owner territory.
				pr.Route("/users", func(ur chi.Router) {
					ur.Group(func(or chi.Router) {
						or.Use(rbac.RequireOwner())
						or.Post("/", h.User.CreateUser)
						or.Get("/", h.User.ListUsers)
						or.Get("/{id}", h.User.GetUser)
						or.Patch("/{id}", h.User.UpdateUser)
						or.Delete("/{id}", h.User.DeleteUser)
						or.Post("/{id}/roles", h.User.GrantRole)
						or.Delete("/{id}/roles", h.User.RevokeRole)
					})
				})
			}

			if h.Item != nil {
				pr.Route("/items", func(ir chi.Router) {
					ir.Get("/", h.Item.ListItems)
					ir.Get("/{id}", h.Item.GetItem)

					ir.Group(func(ar chi.Router) {
						ar.Use(rbac.RequireAdmin())
						ar.Post("/", h.Item.CreateItem)
						ar.Patch("/{id}", h.Item.UpdateItem)
						ar.Delete("/{id}", h.Item.DeleteItem)
						ar.Patch("/{id}/broken", h.Item.MarkBroken)
						ar.Patch("/{id}/repaired", h.Item.MarkRepaired)
						ar.Post("/{id}/photo", h.Item.UploadPhoto)
						ar.Post("/{id}/receipt", h.Item.UploadReceipt)
					})
				})

				pr.Group(func(ar chi.Router) {
					ar.Use(rbac.RequireAdmin())
					ar.Get("/examinations/upcoming", h.Item.UpcomingExaminations)
				})

				pr.Route("/assignments", func(sr chi.Router) {
					sr.Get("/", h.Item.ListAssignments)

					sr.Group(func(ar chi.Router) {
						ar.Use(rbac.RequireAdmin())
						ar.Post("/", h.Item.AssignItem)
						ar.Delete("/{id}", h.Item.UnassignItem)
						ar.Patch("/{id}/reassign", h.Item.ReassignItem)
					})
				})
			}

			if h.Request != nil {
				pr.Route("/requests", func(rr chi.Router) {
					rr.Post("/", h.Request.CreateRequest)
					rr.Get("/", h.Request.ListRequests)
					rr.Get("/{id}", h.Request.GetRequest)
					rr.Patch("/{id}", h.Request.UpdateRequest)
					rr.Delete("/{id}", h.Request.DeleteRequest)

					// Approval decisions are owner-only.
					rr.Group(func(or chi.Router) {
						or.Use(rbac.RequireOwner())
						or.Patch("/{id}/status", h.Request.Transition)
					})
				})
			}

			if h.Group != nil {
				pr.Route("/groups", func(gr chi.Router) {
					gr.Get("/", h.Group.ListGroups)
					gr.Get("/{id}", h.Group.GetGroup)
					gr.Get("/{id}/items", h.Group.ListItems)

					gr.Group(func(ar chi.Router) {
						ar.Use(rbac.RequireAdmin())
						ar.Post("/", h.Group.CreateGroup)
						ar.Delete("/{id}", h.Group.DeleteGroup)
						ar.Post("/{id}/items", h.Group.AddItem)
						ar.Delete("/{id}/items/{itemID}", h.Group.RemoveItem)
					})
				})
			}

			if h.Catalog != nil {
				pr.Route("/categories", func(cr chi.Router) {
					cr.Get("/", h.Catalog.ListCategories)
					cr.Get("/{id}", h.Catalog.GetCategory)

					cr.Group(func(ar chi.Router) {
						ar.Use(rbac.RequireAdmin())
						ar.Post("/", h.Catalog.CreateCategory)
						ar.Patch("/{id}", h.Catalog.UpdateCategory)
						ar.Delete("/{id}", h.Catalog.DeleteCategory)
					})
				})

				pr.Route("/areas", func(cr chi.Router) {
					cr.Get("/", h.Catalog.ListAreas)
					cr.Get("/{id}", h.Catalog.GetArea)

					cr.Group(func(ar chi.Router) {
						ar.Use(rbac.RequireAdmin())
						ar.Post("/", h.Catalog.CreateArea)
						ar.Patch("/{id}", h.Catalog.UpdateArea)
						ar.Delete("/{id}", h.Catalog.DeleteArea)
					})
				})
			}
		})
	})
}
