package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/netlabtools/clabinv/pkg/errors"
	"github.com/netlabtools/clabinv/pkg/pipeline"
)

// newServeCmd creates the serve command: a small HTTP surface exposing the
// same inventory document as the --list contract, for tooling that prefers
// to pull inventories over HTTP.
//
// Each request runs the full pipeline from the topology file on disk, so a
// changed topology is picked up without restarting, and no allocation state
// is ever shared between requests.
func newServeCmd(opts *rootOpts) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the inventory over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			srv := &http.Server{
				Addr:              addr,
				Handler:           newInventoryHandler(*opts, logger),
				ReadHeaderTimeout: 5 * time.Second,
			}

			go func() {
				<-cmd.Context().Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			logger.Info("serving inventory", "addr", addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return errors.Wrap(errors.ErrCodeInternal, err, "serve %s", addr)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}

// newInventoryHandler builds the chi router for the serve command.
func newInventoryHandler(opts rootOpts, logger *charmlog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/inventory", func(w http.ResponseWriter, req *http.Request) {
		result, err := execute(req, opts)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, result.Inventory)
	})

	r.Get("/inventory/hosts/{name}", func(w http.ResponseWriter, req *http.Request) {
		result, err := execute(req, opts)
		if err != nil {
			writeError(w, err)
			return
		}
		name := chi.URLParam(req, "name")
		hv, ok := result.Inventory.Host(name)
		if !ok {
			writeError(w, errors.New(errors.ErrCodeHostNotFound, "host %q is not in the topology", name))
			return
		}
		writeJSON(w, hv)
	})

	return r
}

// execute runs the pipeline with the request-scoped logger.
func execute(req *http.Request, opts rootOpts) (*pipeline.Result, error) {
	runner := pipeline.NewRunner(loggerFromContext(req.Context()))
	return runner.Execute(req.Context(), opts.pipelineOptions())
}

// requestLogger tags every request with an ID, attaches a scoped logger to
// the request context, and logs method, path, and duration.
func requestLogger(logger *charmlog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			id := uuid.NewString()
			reqLogger := logger.With("request_id", id)
			w.Header().Set("X-Request-Id", id)

			start := time.Now()
			next.ServeHTTP(w, req.WithContext(withLogger(req.Context(), reqLogger)))
			reqLogger.Debug("handled request",
				"method", req.Method,
				"path", req.URL.Path,
				"duration", time.Since(start).Round(time.Millisecond))
		})
	}
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// writeError maps structured error codes onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeHostNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeMalformedTopology, errors.ErrCodeUnknownNode,
		errors.ErrCodePoolExhausted, errors.ErrCodeInvalidTopologyFile:
		status = http.StatusUnprocessableEntity
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(errors.GetCode(err)),
	})
}
