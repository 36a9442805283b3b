package handlers

import (
	"time"

	"home_inventory/internal/models"
	"home_inventory/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerID  int
	registerErr error
	loginRes    *service.LoginResult
	loginErr    error
	changeErr   error
	deleteErr   error

	lastRegister  service.RegisterInput
	lastLoginUser string
	lastLoginPass string
	lastChangeID  int
	lastChangeOld string
	lastChangeNew string
	lastDeleteID  int
	registerCalls int
	loginCalls    int
	changeCalls   int
	deleteCalls   int
}

func (m *mockAuth) Register(in service.RegisterInput) (int, error) {
	m.registerCalls++
	m.lastRegister = in
	return m.registerID, m.registerErr
}

func (m *mockAuth) Login(username, password string) (*service.LoginResult, error) {
	m.loginCalls++
	m.lastLoginUser = username
	m.lastLoginPass = password
	return m.loginRes, m.loginErr
}

func (m *mockAuth) ChangePassword(userID int, oldPassword, newPassword string) error {
	m.changeCalls++
	m.lastChangeID = userID
	m.lastChangeOld = oldPassword
	m.lastChangeNew = newPassword
	return m.changeErr
}

func (m *mockAuth) DeleteAccount(userID int) error {
	m.deleteCalls++
	m.lastDeleteID = userID
	return m.deleteErr
}

type mockSessions struct {
	issueToken  string
	issueExpiry time.Time
	issueErr    error
	claims      *service.SessionClaims
	verifyErr   error

	lastVerified string
	verifyCalls  int
}

func (m *mockSessions) Issue(userID int, username string) (string, time.Time, error) {
	return m.issueToken, m.issueExpiry, m.issueErr
}

func (m *mockSessions) Verify(accessToken string) (*service.SessionClaims, error) {
	m.verifyCalls++
	m.lastVerified = accessToken
	return m.claims, m.verifyErr
}

func (m *mockSessions) Decode(accessToken string) (*service.SessionClaims, error) {
	return m.claims, m.verifyErr
}

type mockProfiles struct {
	profile   *models.Profile
	getErr    error
	updateErr error

	lastUpdateID int
}

func (m *mockProfiles) Get(userID int) (*models.Profile, error) {
	return m.profile, m.getErr
}

func (m *mockProfiles) Update(userID int, name, email, bio, place string) (*models.Profile, error) {
	m.lastUpdateID = userID
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return &models.Profile{ID: userID, Name: name, Email: email, Bio: bio, Place: place}, nil
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, CookieOptions{Secure: true}, nil)
	return h.InitRoutes()
}

func verifiedClaims(userID int, username string) *service.SessionClaims {
	return &service.SessionClaims{UserID: userID, Username: username}
}
