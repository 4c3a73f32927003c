package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/df07/go-sequential-raytracer/pkg/bench"
)

// Server handles web requests for the sequential raytracer
type Server struct {
	port   int
	router *mux.Router
	log    *logrus.Logger
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	s := &Server{port: port, log: logrus.StandardLogger()}
	s.router = s.buildRouter()
	return s
}

// BenchInfo describes one available bench for the UI
type BenchInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// benchDescriptions gives the UI a one-line summary per bench
var benchDescriptions = map[string]string{
	"singlet": "Collimated beam through a spherical air-glass surface",
	"mirror":  "45 degree flat fold onto a screen",
	"relay":   "Equiconvex lens focusing a collimated beam",
	"tir":     "Total internal reflection at a glass-air interface",
}

func (s *Server) buildRouter() *mux.Router {
	r := mux.NewRouter()

	// API endpoints
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods("GET")
	api.HandleFunc("/benches", s.handleBenches).Methods("GET")
	api.HandleFunc("/system", s.handleSystem).Methods("GET")
	api.HandleFunc("/propagate", s.handlePropagate).Methods("GET")

	// Serve static files. GET only, so unsupported methods on API routes
	// answer 405 instead of falling through to the file server.
	r.PathPrefix("/").Methods("GET").Handler(http.FileServer(http.Dir("static/")))

	return r
}

// Router exposes the route table, mainly for tests
func (s *Server) Router() *mux.Router {
	return s.router
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.log.Infof("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.router)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleBenches lists the available benches
func (s *Server) handleBenches(w http.ResponseWriter, r *http.Request) {
	names := bench.List()
	benches := make([]BenchInfo, 0, len(names))
	for _, name := range names {
		benches = append(benches, BenchInfo{Name: name, Description: benchDescriptions[name]})
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"benches": benches})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Errorf("Encoding response failed: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseBoolParam parses a boolean parameter from URL query ("true" or "1")
func parseBoolParam(values url.Values, key string, defaultValue bool) bool {
	if value := values.Get(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}
