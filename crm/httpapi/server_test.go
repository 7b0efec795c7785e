package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-dynamicform/crm"
)

func newTestServer(t *testing.T) (*httpexpect.Expect, string) {
	t.Helper()

	users := crm.NewUserService()
	_, err := users.Create(crm.UserInput{
		Name: "Ada Lovelace", Email: "ada@example.com",
		Role: "admin", Status: "active", Password: "engine1234",
	})
	require.NoError(t, err)

	auth := crm.NewAuthService(users, crm.NewTokenIssuer([]byte("test-secret")), time.Hour)
	customers := crm.NewCustomerStore(crm.OpenTestDB(t))

	server := httptest.NewServer(New(auth, users, customers))
	t.Cleanup(server.Close)

	e := httpexpect.Default(t, server.URL)

	session := e.POST("/api/auth/login").
		WithJSON(map[string]string{"email": "ada@example.com", "password": "engine1234"}).
		Expect().
		Status(http.StatusOK).JSON().Object()
	session.Value("success").IsEqual(true)
	token := session.Value("data").Object().Value("token").String().NotEmpty().Raw()

	return e, token
}

func validCustomer() map[string]any {
	return map[string]any{
		"firstName":  "Laura",
		"lastName":   "Palmer",
		"email":      "laura@palmer.net",
		"phone":      "+15551234567",
		"age":        24,
		"company":    "Double R Diner",
		"jobTitle":   "Waitress",
		"industry":   "retail",
		"website":    "https://twinpeaks.example.com",
		"status":     "active",
		"priority":   "high",
		"newsletter": true,
	}
}

func TestLoginFailure(t *testing.T) {
	e, _ := newTestServer(t)

	resp := e.POST("/api/auth/login").
		WithJSON(map[string]string{"email": "ada@example.com", "password": "wrong"}).
		Expect().
		Status(http.StatusUnauthorized).JSON().Object()
	resp.Value("success").IsEqual(false)
	resp.Value("message").IsEqual("Invalid email or password")
}

func TestAPIRequiresAuth(t *testing.T) {
	e, _ := newTestServer(t)

	e.GET("/api/customers").
		Expect().
		Status(http.StatusUnauthorized).JSON().Object().
		Value("message").IsEqual("authentication required")
}

func TestCustomerCRUD(t *testing.T) {
	e, token := newTestServer(t)

	// Empty list
	e.GET("/api/customers").
		WithHeader("Authorization", "Bearer "+token).
		Expect().
		Status(http.StatusOK).JSON().Object().
		Value("data").Array().IsEmpty()

	// Validation failure carries dotted field errors
	invalid := validCustomer()
	invalid["email"] = "not-an-email"
	invalid["age"] = 12
	errs := e.POST("/api/customers").
		WithHeader("Authorization", "Bearer "+token).
		WithJSON(invalid).
		Expect().
		Status(http.StatusUnprocessableEntity).JSON().Object().
		Value("data").Object().Value("errors").Object()
	errs.Value("email").IsEqual("Please enter a valid email address")
	errs.Value("age").IsEqual("Must be >= 18")

	// Create
	created := e.POST("/api/customers").
		WithHeader("Authorization", "Bearer "+token).
		WithJSON(validCustomer()).
		Expect().
		Status(http.StatusCreated).JSON().Object()
	created.Value("message").IsEqual("Customer created")
	id := created.Value("data").Object().Value("id").String().NotEmpty().Raw()

	// Read
	e.GET("/api/customers/"+id).
		WithHeader("Authorization", "Bearer "+token).
		Expect().
		Status(http.StatusOK).JSON().Object().
		Value("data").Object().Value("firstName").IsEqual("Laura")

	// Update
	updated := validCustomer()
	updated["status"] = "inactive"
	e.PUT("/api/customers/"+id).
		WithHeader("Authorization", "Bearer "+token).
		WithJSON(updated).
		Expect().
		Status(http.StatusOK).JSON().Object().
		Value("data").Object().Value("status").IsEqual("inactive")

	// Delete
	e.DELETE("/api/customers/"+id).
		WithHeader("Authorization", "Bearer "+token).
		Expect().
		Status(http.StatusOK)

	e.DELETE("/api/customers/"+id).
		WithHeader("Authorization", "Bearer "+token).
		Expect().
		Status(http.StatusNotFound)
}

func TestUserCRUD(t *testing.T) {
	e, token := newTestServer(t)

	created := e.POST("/api/users").
		WithHeader("Authorization", "Bearer "+token).
		WithJSON(map[string]any{
			"name": "Dale Cooper", "email": "coop@fbi.gov",
			"role": "user", "status": "active", "password": "damngood1",
		}).
		Expect().
		Status(http.StatusCreated).JSON().Object()
	id := created.Value("data").Object().Value("id").String().NotEmpty().Raw()

	// Password never serializes
	created.Value("data").Object().NotContainsKey("password")

	e.GET("/api/users").
		WithHeader("Authorization", "Bearer "+token).
		Expect().
		Status(http.StatusOK).JSON().Object().
		Value("data").Array().Length().IsEqual(2)

	// Updates keep the password when the field is blank
	e.PUT("/api/users/"+id).
		WithHeader("Authorization", "Bearer "+token).
		WithJSON(map[string]any{
			"name": "Dale B. Cooper", "email": "coop@fbi.gov",
			"role": "manager", "status": "active",
		}).
		Expect().
		Status(http.StatusOK).JSON().Object().
		Value("data").Object().Value("role").IsEqual("manager")

	e.DELETE("/api/users/"+id).
		WithHeader("Authorization", "Bearer "+token).
		Expect().
		Status(http.StatusOK)
}

func TestPasswordResetEndpoints(t *testing.T) {
	e, _ := newTestServer(t)

	// Unknown accounts get the same answer, without a token
	e.POST("/api/auth/forgot-password").
		WithJSON(map[string]string{"email": "nobody@example.com"}).
		Expect().
		Status(http.StatusOK).JSON().Object().
		NotContainsKey("data")

	reset := e.POST("/api/auth/forgot-password").
		WithJSON(map[string]string{"email": "ada@example.com"}).
		Expect().
		Status(http.StatusOK).JSON().Object().
		Value("data").Object().Value("resetToken").String().NotEmpty().Raw()

	e.POST("/api/auth/reset-password").
		WithJSON(map[string]string{"token": reset, "password": "short"}).
		Expect().
		Status(http.StatusUnprocessableEntity)

	e.POST("/api/auth/reset-password").
		WithJSON(map[string]string{"token": reset, "password": "newpassword1"}).
		Expect().
		Status(http.StatusOK).JSON().Object().
		Value("message").IsEqual("Password updated")

	e.POST("/api/auth/login").
		WithJSON(map[string]string{"email": "ada@example.com", "password": "newpassword1"}).
		Expect().
		Status(http.StatusOK)
}

func TestFieldOptions(t *testing.T) {
	e, _ := newTestServer(t)

	options := e.GET("/api/options/industry").WithQuery("q", "tech").
		Expect().
		Status(http.StatusOK).JSON().Object().
		Value("data").Array()
	options.Length().Gt(0)
	options.Value(0).Object().Value("value").IsEqual("technology")

	e.GET("/api/options/unknown").
		Expect().
		Status(http.StatusNotFound)
}

func TestRenderedPages(t *testing.T) {
	e, token := newTestServer(t)

	id := e.POST("/api/customers").
		WithHeader("Authorization", "Bearer "+token).
		WithJSON(validCustomer()).
		Expect().
		Status(http.StatusCreated).JSON().Object().
		Value("data").Object().Value("id").String().Raw()

	login := e.GET("/login").Expect().Status(http.StatusOK)
	login.Header("Content-Type").Contains("text/html")
	login.Body().Contains(`action="/api/auth/login"`).Contains(`type="password"`)

	form := e.GET("/forms/customer").Expect().Status(http.StatusOK).Body()
	form.Contains(`action="/api/customers"`).Contains(`name="firstName"`)

	edit := e.GET("/customers/" + id + "/edit").Expect().Status(http.StatusOK).Body()
	edit.Contains(`value="Laura"`).Contains(`name="_method"`).Contains(`value="PUT"`)

	detail := e.GET("/customers/" + id + "/detail").Expect().Status(http.StatusOK).Body()
	detail.Contains("Customer Details").Contains(`href="mailto:laura@palmer.net"`)

	table := e.GET("/customers").Expect().Status(http.StatusOK).Body()
	table.Contains("Laura").Contains(`name="filter.email"`)

	// Filters narrow the table
	filtered := e.GET("/customers").WithQuery("filter.email", "nomatch").
		Expect().Status(http.StatusOK).Body()
	filtered.Contains("No results")

	e.GET("/assets/dynamicform.css").Expect().
		Status(http.StatusOK).
		Header("Content-Type").Contains("text/css")
}
