// Package httpapi exposes the CRM over HTTP: JSON endpoints speaking the
// {success, data, message} envelope plus server-rendered form, detail, and
// table pages.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/goliatone/go-dynamicform/crm"
	"github.com/goliatone/go-dynamicform/pkg/detail"
	"github.com/goliatone/go-dynamicform/pkg/orchestrator"
	"github.com/goliatone/go-dynamicform/pkg/renderers/vanilla"
	"github.com/goliatone/go-dynamicform/pkg/table"
)

// Server routes CRM requests. It implements http.Handler.
type Server struct {
	router    *httprouter.Router
	auth      *crm.AuthService
	users     *crm.UserService
	customers *crm.CustomerStore
	forms     *orchestrator.Orchestrator
	details   *detail.Renderer
	logger    *slog.Logger
}

// Option configures the server.
type Option func(*Server)

// WithLogger replaces the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithOrchestrator replaces the form pipeline, letting callers register extra
// renderers or themes.
func WithOrchestrator(forms *orchestrator.Orchestrator) Option {
	return func(s *Server) {
		if forms != nil {
			s.forms = forms
		}
	}
}

// New wires the full route table.
func New(auth *crm.AuthService, users *crm.UserService, customers *crm.CustomerStore, opts ...Option) *Server {
	s := &Server{
		router:    httprouter.New(),
		auth:      auth,
		users:     users,
		customers: customers,
		forms:     orchestrator.New(),
		details:   detail.New(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router.HandlerFunc("GET", "/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	s.router.HandlerFunc("GET", "/assets/"+vanilla.StylesheetName, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.Write([]byte(vanilla.DefaultStylesheet()))
	})

	s.router.POST("/api/auth/login", s.handleLogin)
	s.router.POST("/api/auth/logout", s.withAuth(s.handleLogout))
	s.router.POST("/api/auth/forgot-password", s.handleForgotPassword)
	s.router.POST("/api/auth/reset-password", s.handleResetPassword)

	s.router.GET("/api/users", s.withAuth(s.handleListUsers))
	s.router.POST("/api/users", s.withAuth(s.handleCreateUser))
	s.router.GET("/api/users/:id", s.withAuth(s.handleGetUser))
	s.router.PUT("/api/users/:id", s.withAuth(s.handleUpdateUser))
	s.router.DELETE("/api/users/:id", s.withAuth(s.handleDeleteUser))

	s.router.GET("/api/customers", s.withAuth(s.handleListCustomers))
	s.router.POST("/api/customers", s.withAuth(s.handleCreateCustomer))
	s.router.GET("/api/customers/:id", s.withAuth(s.handleGetCustomer))
	s.router.PUT("/api/customers/:id", s.withAuth(s.handleUpdateCustomer))
	s.router.DELETE("/api/customers/:id", s.withAuth(s.handleDeleteCustomer))

	s.router.GET("/api/options/:field", s.handleFieldOptions)

	s.router.GET("/login", s.handleLoginPage)
	// httprouter rejects static segments alongside wildcards, so the create
	// form lives under /forms instead of /customers/new.
	s.router.GET("/forms/customer", s.handleCustomerFormPage)
	s.router.GET("/customers", s.handleCustomersPage)
	s.router.GET("/customers/:id/edit", s.handleCustomerEditPage)
	s.router.GET("/customers/:id/detail", s.handleCustomerDetailPage)
	s.router.GET("/users", s.handleUsersPage)
	s.router.GET("/users/:id/detail", s.handleUserDetailPage)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) withAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if _, err := s.auth.Authenticate(r.Context(), token); err != nil {
			s.writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next(w, r, ps)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any, message string) {
	envelope := map[string]any{"success": status < 400}
	if data != nil {
		envelope["data"] = data
	}
	if message != "" {
		envelope["message"] = message
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		s.logger.Error("encoding response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, nil, message)
}

func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, crm.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, crm.ErrInvalidCredentials), errors.Is(err, crm.ErrInvalidToken):
		s.writeError(w, http.StatusUnauthorized, err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(r *http.Request, out any) error {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func (s *Server) writeHTML(w http.ResponseWriter, html []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// buildTable stages filters and pagination from the query string onto a fresh
// table: filter.<column> params feed SetFilter, "page" feeds SetPage.
func buildTable(cfg table.Config, rows []map[string]any, r *http.Request) *table.Table {
	t := table.New(cfg)
	t.SetRows(rows)

	query := r.URL.Query()
	filtered := false
	for key, values := range query {
		column, ok := strings.CutPrefix(key, "filter.")
		if !ok || len(values) == 0 {
			continue
		}
		t.SetFilter(column, values[0])
		filtered = true
	}
	if filtered {
		t.ApplyFilters()
	}
	if page, err := strconv.Atoi(query.Get("page")); err == nil {
		t.SetPage(page)
	}
	return t
}
