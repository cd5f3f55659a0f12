package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"recipebook/internal/models"
	"recipebook/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerID  int
	registerErr error
	loginToken  string
	loginErr    error
	parseID     int
	parseErr    error
	changeErr   error
	forgotErr   error
	resetErr    error

	registerCalls   int
	lastRegister    service.RegisterInput
	loginCalls      int
	lastLoginEmail  string
	lastLoginPass   string
	lastParseToken  string
	lastChangeUser  int
	lastChange      service.ChangePasswordInput
	lastForgotEmail string
	lastResetToken  string
	lastReset       service.ResetPasswordInput
}

func (m *mockAuth) Register(_ context.Context, in service.RegisterInput) (int, error) {
	m.registerCalls++
	m.lastRegister = in
	return m.registerID, m.registerErr
}

func (m *mockAuth) Login(_ context.Context, email, password string) (string, error) {
	m.loginCalls++
	m.lastLoginEmail = email
	m.lastLoginPass = password
	return m.loginToken, m.loginErr
}

func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

func (m *mockAuth) ChangePassword(_ context.Context, userID int, in service.ChangePasswordInput) error {
	m.lastChangeUser = userID
	m.lastChange = in
	return m.changeErr
}

func (m *mockAuth) ForgotPassword(_ context.Context, email string) error {
	m.lastForgotEmail = email
	return m.forgotErr
}

func (m *mockAuth) ResetPassword(_ context.Context, token string, in service.ResetPasswordInput) error {
	m.lastResetToken = token
	m.lastReset = in
	return m.resetErr
}

type mockRecipes struct {
	createID  int
	createErr error
	getRecipe *models.Recipe
	getErr    error
	owned     []models.Recipe
	ownedErr  error
	all       []models.Recipe
	allErr    error
	updateErr error
	deleteErr error

	lastCreateOwner int
	lastCreateIn    service.RecipeInput
	updateCalls     int
	lastUpdateID    int
	lastUpdateActor int
	lastUpdateIn    service.RecipeInput
	deleteCalls     int
	lastDeleteID    int
	lastDeleteActor int
}

func (m *mockRecipes) Create(_ context.Context, ownerID int, in service.RecipeInput) (int, error) {
	m.lastCreateOwner = ownerID
	m.lastCreateIn = in
	return m.createID, m.createErr
}

func (m *mockRecipes) Get(_ context.Context, id int) (*models.Recipe, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.getRecipe, nil
}

func (m *mockRecipes) ListOwned(_ context.Context, ownerID int) ([]models.Recipe, error) {
	return m.owned, m.ownedErr
}

func (m *mockRecipes) ListAll(_ context.Context) ([]models.Recipe, error) {
	return m.all, m.allErr
}

func (m *mockRecipes) Update(_ context.Context, id, actorID int, in service.RecipeInput) error {
	m.updateCalls++
	m.lastUpdateID = id
	m.lastUpdateActor = actorID
	m.lastUpdateIn = in
	return m.updateErr
}

func (m *mockRecipes) Delete(_ context.Context, id, actorID int) error {
	m.deleteCalls++
	m.lastDeleteID = id
	m.lastDeleteActor = actorID
	return m.deleteErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

// doForm performs a form-encoded request, optionally with a session cookie.
func doForm(r http.Handler, method, path, form, session string) *httptest.ResponseRecorder {
	var req *http.Request
	if form != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(form))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if session != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: session})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func requireRedirect(w *httptest.ResponseRecorder, target string) bool {
	return w.Code == http.StatusFound && w.Header().Get("Location") == target
}
