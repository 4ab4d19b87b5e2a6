package server

import (
	"log"
	"net/http"
	"time"

	"github.com/diewo77/commerce-api/internal/handlers"
	"github.com/diewo77/commerce-api/internal/httpx"
	"github.com/diewo77/commerce-api/internal/services"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB) http.Handler {
	r := chi.NewRouter()
	r.Use(withRecover, withLogging)

	// --- Health endpoints ---
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.Success(w, http.StatusOK, "OK", "ok")
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		// Lightweight DB check (SELECT 1)
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.Error(w, http.StatusServiceUnavailable, "Service Unavailable", "degraded")
			return
		}
		httpx.Success(w, http.StatusOK, "OK", "ok")
	})

	ch := handlers.NewClientHandler(db)
	sh := handlers.NewSupplierHandler(db)
	eh := handlers.NewEnterpriseHandler(db)
	ph := handlers.NewProductHandler(db)
	ih := handlers.NewInvoiceHandler(db, services.NewInvoiceService(db))

	r.Route("/api/v1", func(r chi.Router) {
		mountCRUD(r, "client", "clientId", ch.Add, ch.Get, ch.Update, ch.Delete)
		mountCRUD(r, "supplier", "supplierId", sh.Add, sh.Get, sh.Update, sh.Delete)
		mountCRUD(r, "enterprise", "enterpriseId", eh.Add, eh.Get, eh.Update, eh.Delete)
		mountCRUD(r, "product", "productId", ph.Add, ph.Get, ph.Update, ph.Delete)
		mountCRUD(r, "invoice", "invoiceId", ih.Add, ih.Get, ih.Update, ih.Delete)
	})

	return r
}

// mountCRUD wires the four entity routes. The id-less variants exist so
// a request without the path parameter gets the "parameter is required"
// response instead of a bare 404.
func mountCRUD(r chi.Router, entity, param string, add, get, update, del http.HandlerFunc) {
	r.Post("/"+entity+"/add", add)
	r.Get("/"+entity+"/get", get)
	r.Get("/"+entity+"/get/{"+param+"}", get)
	r.Put("/"+entity+"/update", update)
	r.Put("/"+entity+"/update/{"+param+"}", update)
	r.Delete("/"+entity+"/delete", del)
	r.Delete("/"+entity+"/delete/{"+param+"}", del)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.Error(w, http.StatusInternalServerError, "Internal Server Error", "Unexpected server error.")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
