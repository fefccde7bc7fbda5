package web

import (
	"log/slog"
	"net/http"

	"github.com/billed/expense-client/internal/bill"
	"github.com/billed/expense-client/internal/scanning"
)

// Server handles HTTP requests for the expense interface
type Server struct {
	bills   *bill.CollectionService
	newBill *bill.SubmissionService
	scanner scanning.Scanner // nil when scanning is disabled
	mux     *http.ServeMux
}

// NewServer creates a new Server with default mux
func NewServer(bills *bill.CollectionService, newBill *bill.SubmissionService, scanner scanning.Scanner) *Server {
	return NewServerWithMux(bills, newBill, scanner, http.NewServeMux())
}

// NewServerWithMux creates a new Server with a custom mux for testing
func NewServerWithMux(bills *bill.CollectionService, newBill *bill.SubmissionService, scanner scanning.Scanner, mux *http.ServeMux) *Server {
	s := &Server{
		bills:   bills,
		newBill: newBill,
		scanner: scanner,
		mux:     mux,
	}
	s.registerRoutes()
	return s
}

// registerRoutes registers all routes on the server's mux.
// Routes are registered from most specific to least specific.
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /api/bills/file", s.handleFileSelected)
	s.mux.HandleFunc("POST /api/bills/scan", s.handleScan)
	s.mux.HandleFunc("POST /api/bills", s.handleSubmit)

	s.mux.HandleFunc("GET /bills/new", s.handleNewBillPage)
	s.mux.HandleFunc("GET /bills", s.handleBillsPage)
	s.mux.HandleFunc("GET /", s.handleIndex)
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	slog.Info("Starting server", "address", addr)
	return http.ListenAndServe(addr, s.mux)
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
