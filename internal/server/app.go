package server

import (
	"net/http"
	"time"

	"github.com/marwanedjibo1-droid/facturio/internal/auth"
	"github.com/marwanedjibo1-droid/facturio/internal/handlers"
	"github.com/marwanedjibo1-droid/facturio/internal/httpx"
	"github.com/marwanedjibo1-droid/facturio/internal/logger"
	"github.com/marwanedjibo1-droid/facturio/internal/services"
	"gorm.io/gorm"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux     *http.ServeMux
	db      *gorm.DB
	handler http.Handler
}

// NewApp creates a new application with all routes configured.
func NewApp(conn *gorm.DB) *App {
	app := &App{
		mux: http.NewServeMux(),
		db:  conn,
	}
	app.setupRoutes()
	app.handler = withLogging(auth.Middleware(app.mux))
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	invoiceSvc := services.NewInvoiceService(a.db)
	activitySvc := services.NewActivityService(a.db)

	ah := handlers.NewAuthHandler(a.db)
	ch := handlers.NewClientHandler(a.db, activitySvc)
	ih := handlers.NewInvoiceHandler(a.db, invoiceSvc, activitySvc)
	ph := handlers.NewPaymentHandler(a.db, invoiceSvc, activitySvc)
	sh := handlers.NewSettingsHandler(a.db)
	rh := handlers.NewReportHandler(invoiceSvc)
	acth := handlers.NewActivityHandler(activitySvc)

	// Public routes
	a.mux.HandleFunc("POST /api/auth/register", ah.Register)
	a.mux.HandleFunc("POST /api/auth/login", ah.Login)
	a.mux.HandleFunc("POST /api/auth/logout", ah.Logout)
	a.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Authenticated routes
	a.mux.Handle("GET /api/auth/me", a.requireAuth(http.HandlerFunc(ah.Me)))
	a.mux.Handle("PUT /api/auth/password", a.requireAuth(http.HandlerFunc(ah.ChangePassword)))

	// Clients
	a.mux.Handle("GET /api/clients", a.requireAuth(http.HandlerFunc(ch.List)))
	a.mux.Handle("POST /api/clients", a.requireAuth(http.HandlerFunc(ch.Create)))
	a.mux.Handle("GET /api/clients/{id}", a.requireAuth(http.HandlerFunc(ch.View)))
	a.mux.Handle("PUT /api/clients/{id}", a.requireAuth(http.HandlerFunc(ch.Update)))
	a.mux.Handle("DELETE /api/clients/{id}", a.requireAuth(http.HandlerFunc(ch.Delete)))

	// Invoices
	a.mux.Handle("GET /api/invoices", a.requireAuth(http.HandlerFunc(ih.List)))
	a.mux.Handle("POST /api/invoices", a.requireAuth(http.HandlerFunc(ih.Create)))
	a.mux.Handle("GET /api/invoices/stats", a.requireAuth(http.HandlerFunc(ih.Stats)))
	a.mux.Handle("GET /api/invoices/next-number", a.requireAuth(http.HandlerFunc(ih.NextNumber)))
	a.mux.Handle("GET /api/invoices/{id}", a.requireAuth(http.HandlerFunc(ih.View)))
	a.mux.Handle("PUT /api/invoices/{id}", a.requireAuth(http.HandlerFunc(ih.Update)))
	a.mux.Handle("DELETE /api/invoices/{id}", a.requireAuth(http.HandlerFunc(ih.Delete)))
	a.mux.Handle("GET /api/invoices/{id}/payments", a.requireAuth(http.HandlerFunc(ph.ListForInvoice)))

	// Payments
	a.mux.Handle("POST /api/payments", a.requireAuth(http.HandlerFunc(ph.Create)))

	// Settings
	a.mux.Handle("GET /api/settings", a.requireAuth(http.HandlerFunc(sh.View)))
	a.mux.Handle("PUT /api/settings", a.requireAuth(http.HandlerFunc(sh.Update)))

	// Reports
	a.mux.Handle("GET /api/reports/dashboard", a.requireAuth(http.HandlerFunc(rh.Dashboard)))
	a.mux.Handle("GET /api/reports/sales", a.requireAuth(http.HandlerFunc(rh.Sales)))

	// Activities
	a.mux.Handle("GET /api/activities", a.requireAuth(http.HandlerFunc(acth.List)))
}

// requireAuth wraps a handler to require authentication.
func (a *App) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok || userID == 0 {
			httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging middleware.
func withLogging(next http.Handler) http.Handler {
	log := logger.WithComponent("http")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
