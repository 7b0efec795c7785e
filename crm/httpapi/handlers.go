package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/goliatone/go-dynamicform/crm"
	"github.com/goliatone/go-dynamicform/pkg/orchestrator"
	"github.com/goliatone/go-dynamicform/pkg/render"
	"github.com/goliatone/go-dynamicform/pkg/schema"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var creds credentials
	if err := decodeBody(r, &creds); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	session, err := s.auth.Login(r.Context(), creds.Email, creds.Password)
	if err != nil {
		s.writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	s.writeJSON(w, http.StatusOK, session, "Login successful")
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if err := s.auth.Logout(r.Context(), token); err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, nil, "Logged out")
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Email string `json:"email"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// The response is uniform whether or not the account exists. Mail
	// delivery is out of scope; the token rides along for the caller to
	// deliver.
	message := "If the account exists, a reset link has been sent"
	token, err := s.auth.ForgotPassword(r.Context(), body.Email)
	if err != nil {
		s.writeJSON(w, http.StatusOK, nil, message)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"resetToken": token}, message)
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(body.Password) < 8 {
		s.writeError(w, http.StatusUnprocessableEntity, "Password must be at least 8 characters")
		return
	}
	if err := s.auth.ResetPassword(r.Context(), body.Token, body.Password); err != nil {
		s.writeError(w, http.StatusUnauthorized, "Invalid or expired reset token")
		return
	}
	s.writeJSON(w, http.StatusOK, nil, "Password updated")
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.writeJSON(w, http.StatusOK, s.users.List(), "")
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user, ok := s.users.Get(ps.ByName("id"))
	if !ok {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	s.writeJSON(w, http.StatusOK, user, "")
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input crm.UserInput
	if err := decodeBody(r, &input); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := s.validateUser(input, true); errs.Has() {
		s.writeValidationErrors(w, errs)
		return
	}
	user, err := s.users.Create(input)
	if err != nil {
		s.writeError(w, http.StatusConflict, err.Error())
		return
	}
	s.writeJSON(w, http.StatusCreated, user, "User created")
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input crm.UserInput
	if err := decodeBody(r, &input); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := s.validateUser(input, false); errs.Has() {
		s.writeValidationErrors(w, errs)
		return
	}
	user, err := s.users.Update(ps.ByName("id"), input)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, user, "User updated")
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := s.users.Delete(ps.ByName("id")); err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, nil, "User deleted")
}

func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	customers, err := s.customers.List(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if customers == nil {
		customers = []crm.Customer{}
	}
	s.writeJSON(w, http.StatusOK, customers, "")
}

func (s *Server) handleGetCustomer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	customer, err := s.customers.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, customer, "")
}

func (s *Server) handleCreateCustomer(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var customer crm.Customer
	if err := decodeBody(r, &customer); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := s.validateCustomer(customer); errs.Has() {
		s.writeValidationErrors(w, errs)
		return
	}
	created, err := s.customers.Create(r.Context(), customer)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, created, "Customer created")
}

func (s *Server) handleUpdateCustomer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var customer crm.Customer
	if err := decodeBody(r, &customer); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := s.validateCustomer(customer); errs.Has() {
		s.writeValidationErrors(w, errs)
		return
	}
	updated, err := s.customers.Update(r.Context(), ps.ByName("id"), customer)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, updated, "Customer updated")
}

func (s *Server) handleDeleteCustomer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := s.customers.Delete(r.Context(), ps.ByName("id")); err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, nil, "Customer deleted")
}

func (s *Server) validateCustomer(customer crm.Customer) schema.Errors {
	return schema.Build(crm.CustomerFormConfig()).Validate(customer.Record())
}

func (s *Server) validateUser(input crm.UserInput, passwordRequired bool) schema.Errors {
	errs := schema.Build(crm.UserFormConfig()).Validate(map[string]any{
		"name":     input.Name,
		"email":    input.Email,
		"password": input.Password,
		"role":     input.Role,
		"status":   input.Status,
	})
	if !passwordRequired && input.Password == "" {
		delete(errs, "password")
	}
	return errs
}

func (s *Server) writeValidationErrors(w http.ResponseWriter, errs schema.Errors) {
	s.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": errs}, "Validation failed")
}

// handleFieldOptions serves searchable select options for dynamic fields.
func (s *Server) handleFieldOptions(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	catalog, ok := crm.FieldCatalog(ps.ByName("field"))
	if !ok {
		s.writeError(w, http.StatusNotFound, "no options for this field")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	s.writeJSON(w, http.StatusOK, catalog.Search(r.URL.Query().Get("q"), limit), "")
}

// Page handlers render full HTML documents.

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.renderFormPage(w, r, crm.LoginFormConfig(), render.RenderOptions{
		Action:      "/api/auth/login",
		Method:      http.MethodPost,
		SubmitLabel: "Sign In",
	})
}

func (s *Server) handleCustomerFormPage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.renderFormPage(w, r, crm.CustomerFormConfig(), render.RenderOptions{
		Action:     "/api/customers",
		Method:     http.MethodPost,
		ShowCancel: true,
	})
}

func (s *Server) handleCustomerEditPage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	customer, err := s.customers.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	s.renderFormPage(w, r, crm.CustomerFormConfig(), render.RenderOptions{
		Action:     "/api/customers/" + customer.ID,
		Method:     http.MethodPost,
		Values:     customer.Record(),
		Hidden:     render.MergeHiddenFields(nil, render.MethodOverride(http.MethodPut)),
		ShowCancel: true,
	})
}

func (s *Server) renderFormPage(w http.ResponseWriter, r *http.Request, config any, options render.RenderOptions) {
	html, err := s.forms.Generate(r.Context(), orchestrator.Request{
		Config:        config,
		RenderOptions: options,
	})
	if err != nil {
		s.logger.Error("rendering form page", "path", r.URL.Path, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.writeHTML(w, html)
}

func (s *Server) handleCustomerDetailPage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	customer, err := s.customers.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	s.writeHTML(w, []byte(s.details.Render(crm.CustomerDetailConfig(), customer.Record())))
}

func (s *Server) handleUserDetailPage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user, ok := s.users.Get(ps.ByName("id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.writeHTML(w, []byte(s.details.Render(crm.UserDetailConfig(), user.Record())))
}

func (s *Server) handleCustomersPage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	customers, err := s.customers.List(r.Context())
	if err != nil {
		s.logger.Error("listing customers", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	rows := make([]map[string]any, 0, len(customers))
	for _, customer := range customers {
		rows = append(rows, customer.Record())
	}
	s.writeHTML(w, []byte(buildTable(crm.CustomerTableConfig(), rows, r).RenderHTML()))
}

func (s *Server) handleUsersPage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	users := s.users.List()
	rows := make([]map[string]any, 0, len(users))
	for _, user := range users {
		rows = append(rows, user.Record())
	}
	s.writeHTML(w, []byte(buildTable(crm.UserTableConfig(), rows, r).RenderHTML()))
}
