package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/groupsoftware/minhasfinancas/internal/apperrors"
	"github.com/groupsoftware/minhasfinancas/internal/core/domain"
	"github.com/groupsoftware/minhasfinancas/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type AuthHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockUserService  *MockUserService
	mockTokenService *MockTokenService
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	suite.mockUserService = new(MockUserService)
	suite.mockTokenService = new(MockTokenService)
	suite.router = newTestRouter(suite.mockUserService, new(MockEntryService), suite.mockTokenService, new(MockGoogleOAuthService))
}

func (suite *AuthHandlerTestSuite) postJSON(url string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(http.MethodPost, url, reader)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Register Tests ---

func (suite *AuthHandlerTestSuite) TestRegister_Success() {
	req := dto.RegisterUserRequest{Name: "New User", Email: "new@example.com", Password: "password123"}
	created := &domain.User{UserID: uuid.NewString(), Name: req.Name, Email: req.Email}

	suite.mockUserService.On("RegisterUser", mock.Anything, req).Return(created, nil).Once()

	w := suite.postJSON("/api/v1/auth/register", req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.UserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.UserID, resp.UserID)
	suite.Equal(created.Email, resp.Email)
	suite.NotContains(w.Body.String(), "password")
	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestRegister_DuplicateEmail() {
	req := dto.RegisterUserRequest{Name: "New User", Email: "taken@example.com", Password: "password123"}

	suite.mockUserService.On("RegisterUser", mock.Anything, req).Return(nil, apperrors.ErrDuplicateEmail).Once()

	w := suite.postJSON("/api/v1/auth/register", req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestRegister_InvalidPayload() {
	// Password below the minimum length fails binding before the service runs
	w := suite.postJSON("/api/v1/auth/register", dto.RegisterUserRequest{
		Name:     "New User",
		Email:    "new@example.com",
		Password: "short",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockUserService.AssertNotCalled(suite.T(), "RegisterUser", mock.Anything, mock.Anything)
}

// --- Login Tests ---

func (suite *AuthHandlerTestSuite) TestLogin_Success() {
	user := &domain.User{UserID: uuid.NewString(), Name: "Login User", Email: "login@example.com"}
	accessExpiry := time.Now().Add(time.Hour)
	refreshExpiry := time.Now().Add(7 * 24 * time.Hour)

	suite.mockUserService.On("AuthenticateUser", mock.Anything, user.Email, "password123").Return(user, nil).Once()
	suite.mockTokenService.On("GenerateAccessToken", mock.Anything, user).Return("access-token", accessExpiry, nil).Once()
	suite.mockTokenService.On("GenerateRefreshToken", mock.Anything, user).Return("raw-refresh-token", refreshExpiry, nil).Once()
	suite.mockUserService.On("UpdateRefreshToken", mock.Anything, user.UserID, mock.AnythingOfType("string"), refreshExpiry).Return(nil).Once()

	w := suite.postJSON("/api/v1/auth/login", dto.LoginRequest{Email: user.Email, Password: "password123"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("access-token", resp.Token)
	suite.Equal(user.Name, resp.Name)

	// The refresh cookie carries "userID:rawToken" so refresh can locate the
	// stored hash without a session store.
	cookies := w.Result().Cookies()
	suite.Require().Len(cookies, 1)
	suite.Equal("rtid", cookies[0].Name)
	suite.Equal(user.UserID+":raw-refresh-token", cookies[0].Value)
	suite.True(cookies[0].HttpOnly)

	suite.mockUserService.AssertExpectations(suite.T())
	suite.mockTokenService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestLogin_UnknownEmail() {
	suite.mockUserService.On("AuthenticateUser", mock.Anything, "nobody@example.com", "whatever").
		Return(nil, apperrors.ErrUserNotFound).Once()

	w := suite.postJSON("/api/v1/auth/login", dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), "Invalid email or password")
	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestLogin_WrongPassword() {
	suite.mockUserService.On("AuthenticateUser", mock.Anything, "login@example.com", "wrong").
		Return(nil, apperrors.ErrInvalidCredentials).Once()

	w := suite.postJSON("/api/v1/auth/login", dto.LoginRequest{Email: "login@example.com", Password: "wrong"})

	// Same response as for an unknown email; the endpoint does not reveal
	// which emails are registered.
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), "Invalid email or password")
	suite.mockUserService.AssertExpectations(suite.T())
}

// --- Refresh Tests ---

func (suite *AuthHandlerTestSuite) TestRefresh_Success() {
	user := &domain.User{UserID: uuid.NewString(), Name: "Refresh User", Email: "refresh@example.com"}
	accessExpiry := time.Now().Add(time.Hour)
	refreshExpiry := time.Now().Add(7 * 24 * time.Hour)

	suite.mockTokenService.On("ValidateAndParseRefreshToken", mock.Anything, user.UserID, "old-raw-token").Return(user, nil).Once()
	suite.mockTokenService.On("GenerateAccessToken", mock.Anything, user).Return("new-access-token", accessExpiry, nil).Once()
	suite.mockTokenService.On("GenerateRefreshToken", mock.Anything, user).Return("new-raw-token", refreshExpiry, nil).Once()
	suite.mockUserService.On("UpdateRefreshToken", mock.Anything, user.UserID, mock.AnythingOfType("string"), refreshExpiry).Return(nil).Once()

	w := suite.postJSON("/api/v1/auth/refresh", nil, &http.Cookie{Name: "rtid", Value: user.UserID + ":old-raw-token"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.RefreshTokenResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("new-access-token", resp.Token)

	// The refresh token must rotate on every use
	cookies := w.Result().Cookies()
	suite.Require().Len(cookies, 1)
	suite.True(strings.HasSuffix(cookies[0].Value, ":new-raw-token"))

	suite.mockTokenService.AssertExpectations(suite.T())
	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestRefresh_MissingCookie() {
	w := suite.postJSON("/api/v1/auth/refresh", nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTokenService.AssertNotCalled(suite.T(), "ValidateAndParseRefreshToken", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestRefresh_RejectedToken() {
	userID := uuid.NewString()

	suite.mockTokenService.On("ValidateAndParseRefreshToken", mock.Anything, userID, "stale-token").
		Return(nil, apperrors.ErrTokenExpired).Once()

	w := suite.postJSON("/api/v1/auth/refresh", nil, &http.Cookie{Name: "rtid", Value: userID + ":stale-token"})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTokenService.AssertExpectations(suite.T())
}

// --- Logout Tests ---

func (suite *AuthHandlerTestSuite) TestLogout_ClearsTokenAndCookie() {
	userID := uuid.NewString()

	suite.mockUserService.On("ClearRefreshToken", mock.Anything, userID).Return(nil).Once()

	w := suite.postJSON("/api/v1/auth/logout", nil, &http.Cookie{Name: "rtid", Value: userID + ":some-token"})

	suite.Equal(http.StatusNoContent, w.Code)
	cookies := w.Result().Cookies()
	suite.Require().Len(cookies, 1)
	suite.Empty(cookies[0].Value)
	suite.True(cookies[0].MaxAge < 0)
	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestLogout_WithoutCookie() {
	w := suite.postJSON("/api/v1/auth/logout", nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockUserService.AssertNotCalled(suite.T(), "ClearRefreshToken", mock.Anything, mock.Anything)
}

// --- Run Suite ---
func TestAuthHandler(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
