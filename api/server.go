package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/bridge-verifier/api/handlers"
)

func NewRouter(statusHandler *handlers.StatusHandler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", handlers.HandleHealth).Methods("GET")
	r.HandleFunc("/v1/scenarios", statusHandler.HandleList).Methods("GET")
	r.HandleFunc("/v1/scenarios/{name}", statusHandler.HandleRequest).Methods("GET")
	return r
}

// Serve serves scenario status on addr until the context is done
func Serve(
	ctx context.Context,
	addr string,
	statusHandler *handlers.StatusHandler,
) {
	server := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(statusHandler),
		ReadTimeout:       time.Second * 10,
		ReadHeaderTimeout: time.Second * 2,
	}
	go func() {
		log.Info().Msgf("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Err(err).Msgf("Failed starting server")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		log.Err(err).Msgf("Error shutting down server")
	} else {
		log.Info().Msgf("Server shut down gracefully.")
	}
}
