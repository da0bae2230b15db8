package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"dealflow/pkg/logx"
	"dealflow/pkg/middlewarex"
)

const logFieldMaxLen = 4096

func (s Server) RegisterRoutes(r chi.Router) { //nolint:funlen
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			r.Post("/webhooks/deal-ingest", handler(s.postV1DealIngest))

			r.Route("/deals", func(r chi.Router) {
				r.Get("/", handler(s.getV1Deals))
				r.Get("/stream", s.getV1DealStream)
				r.Get("/tier/{tier}", handler(s.getV1DealsByTier))
				r.Get("/{id}", handler(s.getV1Deal))
				r.Get("/{id}/analysis", handler(s.getV1DealAnalysis))
				r.Get("/{id}/matches", handler(s.getV1DealMatches))
			})

			r.Route("/buyers", func(r chi.Router) {
				r.Post("/", handler(s.postV1Buyer))
				r.Get("/", handler(s.getV1Buyers))
				r.Put("/{id}/tier", handler(s.putV1BuyerTier))
				r.Put("/{id}/active", handler(s.putV1BuyerActive))
			})

			r.Get("/kpis", handler(s.getV1KPIs))

			r.Post("/admin/notifications/sweep", handler(s.postV1AdminSweep))
		})
	})
}

// NewRouter builds the HTTP handler with the standard middleware stack.
func NewRouter(s Server, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	masker := logx.NewSensitiveDataMasker()

	r.Use(
		middlewarex.TraceID,
		middlewarex.Recovery,
		cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Trace-Id"},
			ExposedHeaders: []string{"X-Trace-Id"},
			MaxAge:         300,
		}),
		middlewarex.RequestLogging(masker, logFieldMaxLen),
		middlewarex.ResponseLogging(masker, logFieldMaxLen),
	)

	s.RegisterRoutes(r)

	return r
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			replyError(r.Context(), w, err)
		}
	}
}
