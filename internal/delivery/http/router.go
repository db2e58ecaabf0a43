package http

import (
	"context"
	"net/http"
	"time"

	"github.com/frontandrew/sales/internal/delivery/http/middleware"
	"github.com/frontandrew/sales/internal/pkg/config"
	"github.com/frontandrew/sales/internal/pkg/logger"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Pinger - зависимость, доступность которой проверяет /health
type Pinger interface {
	Ping(ctx context.Context) error
}

// Router содержит все зависимости для HTTP роутера
type Router struct {
	saleHandler       *SaleHandler
	saleDetailHandler *SaleDetailHandler
	purchaseHandler   *PurchaseHandler
	tokens            middleware.TokenValidator
	db                Pinger
	config            *config.Config
	logger            logger.Logger
}

// NewRouter создает новый HTTP router.
// tokens может быть nil, если авторизация выключена.
func NewRouter(
	saleHandler *SaleHandler,
	saleDetailHandler *SaleDetailHandler,
	purchaseHandler *PurchaseHandler,
	tokens middleware.TokenValidator,
	db Pinger,
	config *config.Config,
	logger logger.Logger,
) *Router {
	return &Router{
		saleHandler:       saleHandler,
		saleDetailHandler: saleDetailHandler,
		purchaseHandler:   purchaseHandler,
		tokens:            tokens,
		db:                db,
		config:            config,
		logger:            logger,
	}
}

// Setup настраивает все маршруты
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	if rt.config.Auth.Enabled && rt.tokens == nil {
		rt.logger.Error("Auth is enabled but token validator is not configured, mutating routes are closed")
	}

	// Глобальные middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RecoveryMiddleware(rt.logger))
	r.Use(middleware.LoggingMiddleware(rt.logger))
	r.Use(middleware.CORSMiddleware(
		rt.config.CORS.AllowedOrigins,
		rt.config.CORS.AllowedMethods,
		rt.config.CORS.AllowedHeaders,
	))

	r.Get("/health", rt.health)

	r.Route("/sales", func(r chi.Router) {
		// Чтение доступно без токена
		r.Get("/getall", rt.saleHandler.GetAll)
		r.Get("/getbyid/{id}", rt.saleHandler.GetByID)
		r.Get("/users/{userId}", rt.saleHandler.GetByUser)

		r.Group(func(r chi.Router) {
			rt.protect(r)
			r.Put("/update/{id}", rt.saleHandler.Update)
			r.Delete("/delete/{id}", rt.saleHandler.Delete)
			r.Post("/addsales", rt.purchaseHandler.AddSales)
		})

		r.Route("/sales-details", func(r chi.Router) {
			r.Get("/getall", rt.saleDetailHandler.GetAll)
			r.Get("/getbyid/{id}", rt.saleDetailHandler.GetByID)
			r.Get("/getbysaleid/{saleId}", rt.saleDetailHandler.GetBySaleID)

			r.Group(func(r chi.Router) {
				rt.protect(r)
				r.Post("/add", rt.saleDetailHandler.Add)
				r.Put("/update/{id}", rt.saleDetailHandler.Update)
				r.Delete("/delete/{id}", rt.saleDetailHandler.Delete)
			})
		})
	})

	return r
}

// protect включает проверку токена на изменяющих маршрутах, если авторизация включена.
// Без валидатора токенов маршруты закрыты.
func (rt *Router) protect(r chi.Router) {
	if !rt.config.Auth.Enabled {
		return
	}
	if rt.tokens == nil {
		r.Use(func(http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				respondError(w, http.StatusServiceUnavailable, "Authorization is not configured")
			})
		})
		return
	}
	r.Use(middleware.AuthMiddleware(rt.tokens))
}

func (rt *Router) health(w http.ResponseWriter, r *http.Request) {
	if rt.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := rt.db.Ping(ctx); err != nil {
			rt.logger.Error("Health check failed", logger.Fields{"error": err})
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
			})
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
