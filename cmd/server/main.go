package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"floramia-be/internal/admin"
	"floramia-be/internal/cart"
	"floramia-be/internal/config"
	"floramia-be/internal/contact"
	"floramia-be/internal/content"
	"floramia-be/internal/db"
	"floramia-be/internal/httpx"
	"floramia-be/internal/logger"
	"floramia-be/internal/metrics"
	"floramia-be/internal/middleware"
	"floramia-be/internal/order"
	"floramia-be/internal/payment"
	"floramia-be/internal/payment/webhook"
	"floramia-be/internal/product"
	"floramia-be/internal/promo"
	"floramia-be/internal/review"
	"floramia-be/internal/shipping"
	"floramia-be/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type handlers struct {
	product *product.Handler
	admin   *admin.Handler
	promo   *promo.Handler
	cart    *cart.Handler
	content *content.Handler
	review  *review.Handler
	contact *contact.Handler
	order   *order.Handler
	webhook *webhook.Handler
	quote   http.HandlerFunc
}

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer database.Close()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	uploader, err := storage.NewS3Store(cfg)
	if err != nil {
		log.Fatalf("failed to set up object storage: %v", err)
	}

	gateway := payment.NewPayMongoGateway(cfg)

	productSvc := product.NewService(product.NewRepository(database), uploader)
	adminSvc := admin.NewService(admin.NewRepository(database))
	promoSvc := promo.NewService(promo.NewRepository(database))
	cartSvc := cart.NewService(cart.NewRedisStore(rdb))
	contentSvc := content.NewService(content.NewRepository(database))
	reviewSvc := review.NewService(review.NewRepository(database))
	contactSvc := contact.NewService(contact.NewRepository(database))
	orderSvc := order.NewService(order.NewRepository(database), cartSvc, promoSvc, contentSvc, gateway)

	r := newRouter(handlers{
		product: product.NewHandler(productSvc),
		admin:   admin.NewHandler(adminSvc),
		promo:   promo.NewHandler(promoSvc),
		cart:    cart.NewHandler(cartSvc),
		content: content.NewHandler(contentSvc),
		review:  review.NewHandler(reviewSvc),
		contact: contact.NewHandler(contactSvc),
		order:   order.NewHandler(orderSvc),
		webhook: webhook.NewHandler(orderSvc, gateway),
		quote:   shippingQuote(contentSvc),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.L().Info("server listening", zap.String("port", cfg.AppPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L().Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.L().Error("forced shutdown", zap.Error(err))
	}
}

func newRouter(h handlers) chi.Router {
	r := chi.NewRouter()
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(metrics.Middleware)
	r.Use(middleware.RateLimit)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/metrics", metrics.Handler())

	// public storefront
	r.Get("/products", h.product.List)
	r.Get("/products/{id}", h.product.Get)

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.cart.Get)
		r.Post("/items", h.cart.Add)
		r.Put("/items/{productID}", h.cart.UpdateQuantity)
		r.Delete("/items/{productID}", h.cart.Remove)
		r.Delete("/", h.cart.Clear)
		r.Post("/buy-now", h.cart.StageBuyNow)
	})

	r.Post("/promos/apply", h.promo.Apply)
	r.Post("/shipping/quote", h.quote)

	r.Post("/orders", h.order.Create)
	r.Get("/orders/track", h.order.Track)
	r.Get("/orders/{id}", h.order.Get)
	r.Post("/orders/{id}/payment", h.order.SelectPayment)

	r.Get("/reviews", h.review.List)
	r.Post("/reviews", h.review.Submit)
	r.Get("/stories", h.content.ListStories)
	r.Get("/content/{section}", h.content.GetSection)
	r.Post("/contact", h.contact.SubmitInquiry)
	r.Post("/newsletter/subscribe", h.contact.Subscribe)

	r.Post("/webhooks/payment", h.webhook.Handle)

	// dashboard
	r.Post("/admin/login", h.admin.Login)
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin)

		r.Post("/products", h.product.Create)
		r.Put("/products/{id}", h.product.Update)
		r.Post("/products/{id}/image", h.product.UploadImage)
		r.Put("/products/reorder", h.product.Reorder)
		r.Delete("/products/{id}", h.product.Delete)

		r.Get("/promos", h.promo.List)
		r.Post("/promos", h.promo.Create)
		r.Put("/promos/{id}", h.promo.Update)
		r.Patch("/promos/{id}/active", h.promo.SetActive)
		r.Delete("/promos/{id}", h.promo.Delete)

		r.Get("/orders", h.order.List)
		r.Get("/orders/export", h.order.ExportCSV)
		r.Patch("/orders/{id}/status", h.order.UpdateStatus)

		r.Get("/reviews", h.review.AdminList)
		r.Patch("/reviews/{id}/approved", h.review.SetApproved)
		r.Delete("/reviews/{id}", h.review.Delete)

		r.Get("/content", h.content.ListSections)
		r.Put("/content/{section}", h.content.UpsertSection)

		r.Get("/stories", h.content.AdminListStories)
		r.Post("/stories", h.content.CreateStory)
		r.Put("/stories/{id}", h.content.UpdateStory)
		r.Patch("/stories/{id}/published", h.content.SetStoryPublished)
		r.Delete("/stories/{id}", h.content.DeleteStory)

		r.Get("/inquiries", h.contact.ListInquiries)
		r.Get("/inquiries/export", h.contact.ExportInquiriesCSV)
		r.Patch("/inquiries/{id}/status", h.contact.SetInquiryStatus)
		r.Delete("/inquiries/{id}", h.contact.DeleteInquiry)

		r.Get("/subscribers", h.contact.ListSubscribers)
		r.Get("/subscribers/export", h.contact.ExportSubscribersCSV)
		r.Delete("/subscribers/{id}", h.contact.DeleteSubscriber)
	})

	return r
}

// shippingQuote lets the checkout page show the delivery fee before the
// order is placed.
func shippingQuote(contentSvc content.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Address string `json:"address"`
		}
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.Error(w, http.StatusBadRequest, httpx.CodeBadRequest, "invalid JSON payload")
			return
		}

		cfg, err := contentSvc.ShippingConfig(r.Context())
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, httpx.CodeStore, "failed to load shipping rules")
			return
		}

		httpx.Respond(w, http.StatusOK, map[string]float64{"fee": shipping.Fee(req.Address, cfg)})
	}
}
