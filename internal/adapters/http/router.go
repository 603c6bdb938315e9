package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newmandigital/catalog/internal/adapters/config"
	"github.com/newmandigital/catalog/internal/adapters/http/controllers"
	"github.com/newmandigital/catalog/internal/adapters/http/handlers"
	"github.com/newmandigital/catalog/internal/adapters/http/middleware"
	"github.com/newmandigital/catalog/internal/core/logger"
	"github.com/swaggo/swag"
)

type Router struct {
	healthController  *controllers.HealthController
	productController *controllers.ProductController
	rateLimiter       middleware.RateLimiter
	rateLimit         config.RateLimitConfig
}

func NewRouter(
	healthController *controllers.HealthController,
	productController *controllers.ProductController,
	rateLimiter middleware.RateLimiter,
	rateLimit config.RateLimitConfig,
) *Router {
	return &Router{
		healthController:  healthController,
		productController: productController,
		rateLimiter:       rateLimiter,
		rateLimit:         rateLimit,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	limited := middleware.RateLimit(r.rateLimiter, r.rateLimit.Limit, r.rateLimit.Window)

	router.GET("/swagger/doc.json", serveOpenAPI)

	apiGroup := router.Group("/api")
	v1Group := apiGroup.Group("/v1")
	{
		v1Group.Use(middleware.LogRequest())
		v1Group.GET("/health", r.healthController.Health)

		v1Group.POST("/products", limited, r.productController.CreateProduct)
		v1Group.GET("/products", r.productController.GetAll)
		v1Group.GET("/products/:id", r.productController.GetByID)
		v1Group.PUT("/products/:id", r.productController.UpdateDetails)
		v1Group.POST("/products/:id/stock", limited, r.productController.AdjustStock)
		v1Group.DELETE("/products/:id", r.productController.Delete)
	}
}

func serveOpenAPI(c *gin.Context) {
	doc, err := swag.ReadDoc()
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
}

func (r *Router) NewEngine() (*gin.Engine, error) {
	if err := handlers.RegisterValidators(); err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	r.SetupRoutes(engine)
	return engine, nil
}

func (r *Router) ListenAndServe(ctx context.Context, config config.HTTPConfig) error {
	engine, err := r.NewEngine()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", config.BindInterface, config.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error(shutdownCtx, "http: graceful shutdown failed", err, nil)
		}
	}()

	logger.Info(ctx, "HTTP server listening", map[string]any{"addr": srv.Addr})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
