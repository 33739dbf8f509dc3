package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	accountdomain "github.com/handyheartslabs/handyhearts/internal/account/domain"
	authdomain "github.com/handyheartslabs/handyhearts/internal/auth/domain"
	bookingdomain "github.com/handyheartslabs/handyhearts/internal/booking/domain"
	catalogdomain "github.com/handyheartslabs/handyhearts/internal/catalog/domain"
	"github.com/handyheartslabs/handyhearts/internal/config"
	inquirydomain "github.com/handyheartslabs/handyhearts/internal/inquiry/domain"
	monitoringdomain "github.com/handyheartslabs/handyhearts/internal/monitoring/domain"
	"github.com/handyheartslabs/handyhearts/internal/observability"
	paymentdomain "github.com/handyheartslabs/handyhearts/internal/payment/domain"
	"github.com/handyheartslabs/handyhearts/internal/receipt"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redisclient "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("server",
	fx.Provide(NewServer),
	fx.Provide(NewEngine),
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	Cfg        config.Config
	Metrics    *observability.Metrics
	Enforcer   *casbin.Enforcer
	Redis      *redisclient.Client `optional:"true"`
	AuthSvc    authdomain.Service
	AccountSvc accountdomain.Service
	CatalogSvc catalogdomain.CatalogService
	BookingSvc bookingdomain.Service
	InquirySvc inquirydomain.Service
	PaymentSvc paymentdomain.Service
	WebhookSvc paymentdomain.WebhookService
	ReceiptSvc receipt.Service
	MonitorSvc monitoringdomain.Service
}

type Server struct {
	db         *gorm.DB
	log        *zap.Logger
	cfg        config.Config
	metrics    *observability.Metrics
	enforcer   *casbin.Enforcer
	redis      *redisclient.Client
	authSvc    authdomain.Service
	accountSvc accountdomain.Service
	catalogSvc catalogdomain.CatalogService
	bookingSvc bookingdomain.Service
	inquirySvc inquirydomain.Service
	paymentSvc paymentdomain.Service
	webhookSvc paymentdomain.WebhookService
	receiptSvc receipt.Service
	monitorSvc monitoringdomain.Service
}

func NewServer(p Params) *Server {
	return &Server{
		db:         p.DB,
		log:        p.Log.Named("server"),
		cfg:        p.Cfg,
		metrics:    p.Metrics,
		enforcer:   p.Enforcer,
		redis:      p.Redis,
		authSvc:    p.AuthSvc,
		accountSvc: p.AccountSvc,
		catalogSvc: p.CatalogSvc,
		bookingSvc: p.BookingSvc,
		inquirySvc: p.InquirySvc,
		paymentSvc: p.PaymentSvc,
		webhookSvc: p.WebhookSvc,
		receiptSvc: p.ReceiptSvc,
		monitorSvc: p.MonitorSvc,
	}
}

func NewEngine(s *Server, cfg config.Config) *gin.Engine {
	if cfg.HTTP.Mode != "" {
		gin.SetMode(cfg.HTTP.Mode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestID())
	engine.Use(s.metrics.Middleware())

	s.RegisterRoutes(engine)
	return engine
}

func (s *Server) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/healthz", s.Healthz)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(
		s.metrics.Registry, promhttp.HandlerOpts{})))

	v1 := engine.Group("/v1")

	// Unauthenticated surface.
	v1.POST("/auth/register", s.Register)
	v1.POST("/auth/login", s.Login)
	v1.POST("/webhooks/stripe", s.StripeWebhook)

	authed := v1.Group("")
	authed.Use(s.SessionRequired())

	authed.POST("/auth/logout", s.Logout)
	authed.GET("/auth/me", s.Me)

	rbac := authed.Group("")
	rbac.Use(s.RBACRequired())

	rbac.GET("/catalog", s.ListCatalog)
	rbac.GET("/catalog/:id", s.GetCatalogService)
	rbac.POST("/quotes", s.CreateQuote)

	rbac.POST("/bookings", s.CreateBooking)
	rbac.GET("/bookings", s.ListBookings)
	rbac.GET("/bookings/:id", s.GetBooking)
	rbac.POST("/bookings/:id/cancel", s.CancelBooking)
	rbac.GET("/bookings/:id/receipt", s.GetBookingReceipt)

	rbac.POST("/inquiries", s.SubmitInquiry)
	rbac.GET("/inquiries", s.ListMyInquiries)

	rbac.POST("/payments/intents", s.CreatePaymentIntent)

	rbac.GET("/provider/bookings", s.ListProviderBookings)
	rbac.POST("/provider/bookings/:id/start", s.StartBooking)
	rbac.POST("/provider/bookings/:id/complete", s.CompleteBooking)
	rbac.GET("/provider/inquiries", s.ListAssignedInquiries)

	rbac.GET("/admin/users", s.ListUsers)
	rbac.POST("/admin/users/:id/approve", s.ApproveUser)
	rbac.POST("/admin/users/:id/ban", s.BanUser)
	rbac.POST("/admin/users/:id/unban", s.UnbanUser)

	rbac.POST("/admin/catalog", s.CreateCatalogService)
	rbac.PATCH("/admin/catalog/:id", s.UpdateCatalogService)
	rbac.POST("/admin/catalog/:id/archive", s.ArchiveCatalogService)

	rbac.GET("/admin/bookings", s.ListAllBookings)
	rbac.POST("/admin/bookings/:id/assign", s.AssignBooking)

	rbac.GET("/admin/inquiries", s.ListAllInquiries)
	rbac.PATCH("/admin/inquiries/:id/status", s.UpdateInquiryStatus)
	rbac.POST("/admin/inquiries/:id/assign", s.AssignInquiryProvider)

	rbac.POST("/admin/monitoring/notes", s.CreateMonitoringNote)
	rbac.GET("/admin/monitoring/notes", s.ListMonitoringNotes)

	rbac.GET("/admin/analytics/summary", s.AnalyticsSummary)
}

// RunHTTP starts the HTTP listener under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTP.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
