package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/wishlists/internal/models"
	"github.com/Kerhoff/wishlists/internal/service"
)

const indexText = `Wishlists REST API Service: The Wishlists service allows users to save items they are
interested in but not yet ready to purchase. You can access details about wishlists
(/wishlists) and items (/wishlists/{wishlist_id}/items) within each wishlist.`

// Server provides the HTTP API.
type Server struct {
	svc    *service.Service
	logger *logrus.Logger
	mux    *http.ServeMux
}

// NewServer creates a Server, registers all routes, and returns it.
func NewServer(svc *service.Service, logger *logrus.Logger) *Server {
	s := &Server{svc: svc, logger: logger, mux: http.NewServeMux()}
	s.routes()
	return s
}

// Handler returns the http.Handler that can be passed to http.Server.
// Recovery runs innermost so panicking requests are still logged and counted.
func (s *Server) Handler() http.Handler {
	return s.requestLogger(instrument(s.recoverer(s.mux)))
}

// ---------------------------------------------------------------------------
// Routes
// ---------------------------------------------------------------------------

func (s *Server) routes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)

	// API – Wishlists
	s.mux.HandleFunc("GET /wishlists", s.handleListWishlists)
	s.mux.HandleFunc("POST /wishlists", s.handleCreateWishlist)
	s.mux.HandleFunc("GET /wishlists/{id}", s.handleGetWishlist)
	s.mux.HandleFunc("PUT /wishlists/{id}", s.handleUpdateWishlist)
	s.mux.HandleFunc("DELETE /wishlists/{id}", s.handleDeleteWishlist)

	// API – Items
	s.mux.HandleFunc("GET /wishlists/{id}/items", s.handleListItems)
	s.mux.HandleFunc("POST /wishlists/{id}/items", s.handleCreateItem)
	s.mux.HandleFunc("GET /wishlists/{id}/items/{item_id}", s.handleGetItem)
	s.mux.HandleFunc("PUT /wishlists/{id}/items/{item_id}", s.handleUpdateItem)
	s.mux.HandleFunc("DELETE /wishlists/{id}/items/{item_id}", s.handleDeleteItem)

	s.mux.HandleFunc("/", s.handleNotFound)
}

// ---------------------------------------------------------------------------
// JSON helpers
// ---------------------------------------------------------------------------

type errorResponse struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.logger.WithError(err).Error("failed to encode JSON response")
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, errorResponse{
		Status:  status,
		Error:   http.StatusText(status),
		Message: message,
	})
}

// respondServiceError maps service errors onto HTTP statuses.
func (s *Server) respondServiceError(w http.ResponseWriter, err error) {
	var verr *models.ValidationError
	switch {
	case errors.Is(err, service.ErrWishlistNotFound), errors.Is(err, service.ErrItemNotFound):
		s.respondError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &verr) && verr.Kind == models.KindPersistence:
		s.logger.WithError(err).Error("store failure")
		s.respondError(w, http.StatusInternalServerError, verr.Error())
	case errors.As(err, &verr):
		s.respondError(w, http.StatusBadRequest, verr.Error())
	default:
		s.logger.WithError(err).Error("request failed")
		s.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// requireJSON checks that the request declares an application/json body. It
// writes a 415 response and returns false otherwise.
func (s *Server) requireJSON(w http.ResponseWriter, r *http.Request) bool {
	const want = "application/json"

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		s.logger.Error("No Content-Type specified.")
		s.respondError(w, http.StatusUnsupportedMediaType, "Content-Type must be "+want)
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != want {
		s.logger.Errorf("Invalid Content-Type: %s", contentType)
		s.respondError(w, http.StatusUnsupportedMediaType, "Content-Type must be "+want)
		return false
	}
	return true
}

// decodeJSON reads the request body as a single generic JSON value. An empty
// body decodes to nil; anything after the first value is an error.
func decodeJSON(r *http.Request) (any, error) {
	if r.Body == nil {
		return nil, nil
	}
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var data any
	if err := dec.Decode(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("invalid JSON: unexpected data after the request body")
	}
	return data, nil
}

// pathID extracts a numeric path value.
func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	if raw == "" {
		return 0, fmt.Errorf("missing %s in path", name)
	}
	return strconv.ParseInt(raw, 10, 64)
}

func locationURL(r *http.Request, path string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s%s", scheme, r.Host, path)
}

// ---------------------------------------------------------------------------
// Health & index
// ---------------------------------------------------------------------------

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{"status": http.StatusOK, "message": "Healthy"})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, indexText)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.respondError(w, http.StatusNotFound, fmt.Sprintf("%s %s was not found on this server", r.Method, r.URL.Path))
}
