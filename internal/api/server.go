package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/51348761z/ai-calendar/internal/domain"
	"github.com/51348761z/ai-calendar/internal/ics"
	"github.com/51348761z/ai-calendar/internal/security"
	"github.com/51348761z/ai-calendar/internal/store"
	"github.com/51348761z/ai-calendar/internal/suggest"
)

type Server struct {
	store     *store.Store
	suggester suggest.Provider
	encoder   *ics.Encoder
	auth      security.BearerAuth
	log       *slog.Logger
	httpSrv   *http.Server
}

type Options struct {
	Store     *store.Store
	Suggester suggest.Provider
	Encoder   *ics.Encoder
	Auth      security.BearerAuth
	Logger    *slog.Logger
}

func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	encoder := opts.Encoder
	if encoder == nil {
		encoder = ics.NewEncoder()
	}
	s := &Server{
		store:     opts.Store,
		suggester: opts.Suggester,
		encoder:   encoder,
		auth:      opts.Auth,
		log:       logger,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/events/create", s.handleCreateEvent)
	mux.HandleFunc("/v1/events/update", s.handleUpdateEvent)
	mux.HandleFunc("/v1/events/delete", s.handleDeleteEvent)
	mux.HandleFunc("/v1/export", s.handleExport)
	mux.HandleFunc("/v1/import", s.handleImport)
	mux.HandleFunc("/v1/suggest", s.handleSuggest)
	s.httpSrv = &http.Server{Handler: s.wrapAuth(mux), ReadHeaderTimeout: 5 * time.Second}
	return s
}

func (s *Server) ServeTCP(ctx context.Context, bind string) error {
	if bind == "" {
		return errors.New("bind required")
	}
	ln, err := net.Listen("tcp", bind)
	if err != nil {
		return err
	}
	go s.shutdownOnContext(ctx)
	return s.httpSrv.Serve(ln)
}

func (s *Server) ServeUnix(ctx context.Context, path string) error {
	if path == "" {
		return errors.New("socket path required")
	}
	_ = os.Remove(path)
	ln, err := net.Listen("unix", path)
	if err != nil {
		return err
	}
	if err := os.Chmod(path, 0o600); err != nil {
		return err
	}
	go s.shutdownOnContext(ctx)
	return s.httpSrv.Serve(ln)
}

func (s *Server) wrapAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/healthz" && !s.auth.Authorize(r) {
			writeErr(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) shutdownOnContext(ctx context.Context) {
	<-ctx.Done()
	timeout, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = s.httpSrv.Shutdown(timeout)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "suggester": s.suggester.Name()})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, s.store.List())
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var in domain.EventInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	event, err := s.store.Create(in)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	s.log.Debug("event created", "id", event.ID)
	writeJSON(w, http.StatusOK, event)
}

type mutationRequest struct {
	EventID string            `json:"event_id"`
	Input   domain.EventInput `json:"input"`
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	s.handleMutation(w, r, func(payload mutationRequest) (any, error) {
		return s.store.Update(payload.EventID, payload.Input)
	})
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	s.handleMutation(w, r, func(payload mutationRequest) (any, error) {
		return map[string]string{"event_id": payload.EventID}, s.store.Delete(payload.EventID)
	})
}

func (s *Server) handleMutation(w http.ResponseWriter, r *http.Request, run func(mutationRequest) (any, error)) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var payload mutationRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	out, err := run(payload)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeErr(w, http.StatusNotFound, err.Error())
			return
		}
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// handleExport is the file-download half of the export flow: it serializes
// the current snapshot and presents it as an attachment.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	doc := s.encoder.Encode(s.store.List())
	w.Header().Set("Content-Type", ics.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename=`+ics.ExportFilename)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	inputs, err := ics.Decode(r.Body)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	imported := s.store.Import(inputs)
	s.log.Info("events imported", "count", len(imported))
	writeJSON(w, http.StatusOK, imported)
}

type suggestRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var payload suggestRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	suggestion, err := s.suggester.Suggest(r.Context(), payload.Title, payload.Description)
	if err != nil {
		// Only context cancellation reaches here; remote failures already
		// degraded to fallback advice inside the provider.
		writeErr(w, http.StatusRequestTimeout, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, suggestion)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
