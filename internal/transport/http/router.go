package http

import (
	"log/slog"
	"net/http"
	"time"
)

// NewRouter wires the API surface onto a ServeMux using method-qualified
// patterns.
func NewRouter(appts *AppointmentsHandler, services *ServicesHandler, log *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte(`{"status":"ok"}`))
	})

	mux.HandleFunc("POST /api/appointments", appts.Create)
	mux.HandleFunc("GET /api/appointments/{id}", appts.Get)
	mux.HandleFunc("PATCH /api/appointments/{id}", appts.Update)
	mux.HandleFunc("DELETE /api/appointments/{id}", appts.Delete)
	mux.HandleFunc("GET /api/appointments", appts.Events)
	mux.HandleFunc("GET /api/slots", appts.Slots)

	mux.HandleFunc("POST /api/services", services.Create)
	mux.HandleFunc("GET /api/services", services.List)
	mux.HandleFunc("GET /api/services/{id}", services.Get)
	mux.HandleFunc("PUT /api/services/{id}", services.Update)
	mux.HandleFunc("DELETE /api/services/{id}", services.Delete)

	return withRequestLog(mux, log)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func withRequestLog(next http.Handler, log *slog.Logger) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "http"))

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, req)

		log.Info("request",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("elapsed", time.Since(started)),
		)
	})
}
