package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/groupsoftware/minhasfinancas/internal/apperrors"
	"github.com/groupsoftware/minhasfinancas/internal/core/domain"
	portssvc "github.com/groupsoftware/minhasfinancas/internal/core/ports/services"
	"github.com/groupsoftware/minhasfinancas/internal/dto"
	"github.com/groupsoftware/minhasfinancas/internal/handlers"
	"github.com/groupsoftware/minhasfinancas/internal/platform/config"
	"github.com/groupsoftware/minhasfinancas/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}
func (m *MockUserService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) FindOrCreateFromGoogle(ctx context.Context, name, email string) (*domain.User, error) {
	args := m.Called(ctx, name, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
	return args.Error(0)
}
func (m *MockUserService) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockUserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock EntryService ---
type MockEntryService struct {
	mock.Mock
}

func (m *MockEntryService) GetEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}
func (m *MockEntryService) SearchEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.Entry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}
func (m *MockEntryService) BalanceForUser(ctx context.Context, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockEntryService) CreateEntry(ctx context.Context, entry domain.Entry) (*domain.Entry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}
func (m *MockEntryService) UpdateEntry(ctx context.Context, entry domain.Entry) (*domain.Entry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}
func (m *MockEntryService) ChangeEntryStatus(ctx context.Context, entry domain.Entry, rawStatus string) (*domain.Entry, error) {
	args := m.Called(ctx, entry, rawStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}
func (m *MockEntryService) DeleteEntry(ctx context.Context, entry domain.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

var _ portssvc.EntrySvcFacade = (*MockEntryService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockTokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockTokenService) ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error) {
	args := m.Called(ctx, userID, refreshTokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockTokenService) ValidateToken(ctx context.Context, tokenString string) bool {
	args := m.Called(ctx, tokenString)
	return args.Bool(0)
}
func (m *MockTokenService) ParseClaims(ctx context.Context, tokenString string) (*utils.AccessTokenClaims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*utils.AccessTokenClaims), args.Error(1)
}
func (m *MockTokenService) SubjectFromToken(tokenString string) (string, error) {
	args := m.Called(tokenString)
	return args.String(0), args.Error(1)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Mock GoogleOAuthService ---
type MockGoogleOAuthService struct {
	mock.Mock
}

func (m *MockGoogleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
func (m *MockGoogleOAuthService) GetGoogleLoginURL(ctx context.Context, state string) string {
	args := m.Called(ctx, state)
	return args.String(0)
}
func (m *MockGoogleOAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}
func (m *MockGoogleOAuthService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	args := m.Called(ctx, idTokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*idtoken.Payload), args.Error(1)
}

var _ portssvc.GoogleOAuthSvcFacade = (*MockGoogleOAuthService)(nil)

const testJWTSecret = "test-secret-key-that-is-long-enough"

func testConfig() *config.Config {
	return &config.Config{
		Port:                       "8080",
		JWTSecret:                  testJWTSecret,
		JWTExpiryDuration:          time.Hour,
		JWTIssuer:                  "minhasfinancas-test",
		RefreshTokenExpiryDuration: 7 * 24 * time.Hour,
		RefreshTokenCookieName:     "rtid",
		RefreshTokenCookiePath:     "/api/v1/auth",
		FrontendBaseURL:            "http://localhost:3000",
	}
}

// newTestRouter wires a gin engine with the full route table backed by mocks.
func newTestRouter(user *MockUserService, entry *MockEntryService, token *MockTokenService, google *MockGoogleOAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers.RegisterRoutes(r, testConfig(), &portssvc.ServiceContainer{
		User:        user,
		Entry:       entry,
		Token:       token,
		GoogleOAuth: google,
	})
	return r
}

// --- Test Suite ---
type EntryHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockUserService  *MockUserService
	mockEntryService *MockEntryService
	userID           string
	authToken        string
}

func (suite *EntryHandlerTestSuite) SetupTest() {
	suite.mockUserService = new(MockUserService)
	suite.mockEntryService = new(MockEntryService)
	suite.router = newTestRouter(suite.mockUserService, suite.mockEntryService, new(MockTokenService), new(MockGoogleOAuthService))

	suite.userID = uuid.NewString()
	token, err := utils.GenerateJWT("test@example.com", suite.userID, "Test User", testJWTSecret, time.Hour, "minhasfinancas-test")
	suite.Require().NoError(err)
	suite.authToken = token
}

func (suite *EntryHandlerTestSuite) doRequest(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.authToken)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *EntryHandlerTestSuite) storedEntry() *domain.Entry {
	return &domain.Entry{
		EntryID:          uuid.NewString(),
		Description:      "Rent",
		Month:            4,
		Year:             2025,
		Value:            decimal.NewFromInt(1200),
		Type:             domain.Expense,
		Status:           domain.StatusPending,
		OwnerID:          suite.userID,
		RegistrationDate: time.Now(),
	}
}

// --- Test Cases ---

func (suite *EntryHandlerTestSuite) TestCreateEntry_Success() {
	created := suite.storedEntry()

	suite.mockEntryService.On("CreateEntry", mock.Anything, mock.MatchedBy(func(e domain.Entry) bool {
		// The owner always comes from the token, never from the payload.
		return e.OwnerID == suite.userID && e.Description == "Rent"
	})).Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/entries", dto.SaveEntryRequest{
		Description: "Rent",
		Month:       4,
		Year:        2025,
		Value:       decimal.NewFromInt(1200),
		Type:        "EXPENSE",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.EntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.EntryID, resp.EntryID)
	suite.Equal("PENDING", resp.Status)
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestCreateEntry_ValidationError() {
	suite.mockEntryService.On("CreateEntry", mock.Anything, mock.AnythingOfType("domain.Entry")).
		Return(nil, apperrors.ErrInvalidDescription).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/entries", dto.SaveEntryRequest{
		Month: 4,
		Year:  2025,
		Value: decimal.NewFromInt(1200),
		Type:  "EXPENSE",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "description")
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestCreateEntry_BogusEnumFailsBinding() {
	w := suite.doRequest(http.MethodPost, "/api/v1/entries", map[string]any{
		"description": "Rent",
		"month":       4,
		"year":        2025,
		"value":       "1200",
		"type":        "TRANSFER",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockEntryService.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything)
}

func (suite *EntryHandlerTestSuite) TestCreateEntry_Unauthenticated() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/entries", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockEntryService.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything)
}

func (suite *EntryHandlerTestSuite) TestListEntries_FilterFromQuery() {
	expected := []domain.Entry{*suite.storedEntry(), *suite.storedEntry()}

	suite.mockEntryService.On("SearchEntries", mock.Anything, domain.EntryFilter{
		OwnerID:     suite.userID,
		Description: "rent",
		Month:       4,
		Year:        2025,
	}).Return(expected, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/entries?description=rent&month=4&year=2025", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.EntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp, 2)
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestListEntries_NoFiltersMatchesAll() {
	suite.mockEntryService.On("SearchEntries", mock.Anything, domain.EntryFilter{
		OwnerID: suite.userID,
	}).Return([]domain.Entry{}, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/entries", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("[]", w.Body.String())
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestGetEntry_Success() {
	entry := suite.storedEntry()

	suite.mockEntryService.On("GetEntryByID", mock.Anything, entry.EntryID).Return(entry, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/entries/"+entry.EntryID, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.EntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(entry.EntryID, resp.EntryID)
	suite.Equal(entry.RegistrationDate.Format("2006-01-02"), resp.RegistrationDate)
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestGetEntry_NotFound() {
	entryID := uuid.NewString()

	suite.mockEntryService.On("GetEntryByID", mock.Anything, entryID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/entries/"+entryID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestGetEntry_OtherOwnerHiddenAs404() {
	entry := suite.storedEntry()
	entry.OwnerID = uuid.NewString() // someone else's entry

	suite.mockEntryService.On("GetEntryByID", mock.Anything, entry.EntryID).Return(entry, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/entries/"+entry.EntryID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestUpdateEntry_Success() {
	entry := suite.storedEntry()
	updated := *entry
	updated.Description = "Rent (adjusted)"
	updated.Value = decimal.NewFromInt(1300)

	suite.mockEntryService.On("GetEntryByID", mock.Anything, entry.EntryID).Return(entry, nil).Once()
	suite.mockEntryService.On("UpdateEntry", mock.Anything, mock.MatchedBy(func(e domain.Entry) bool {
		return e.EntryID == entry.EntryID &&
			e.Description == "Rent (adjusted)" &&
			e.OwnerID == suite.userID
	})).Return(&updated, nil).Once()

	w := suite.doRequest(http.MethodPut, "/api/v1/entries/"+entry.EntryID, dto.SaveEntryRequest{
		Description: "Rent (adjusted)",
		Month:       entry.Month,
		Year:        entry.Year,
		Value:       decimal.NewFromInt(1300),
		Type:        "EXPENSE",
	})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.EntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Rent (adjusted)", resp.Description)
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestUpdateEntryStatus_Success() {
	entry := suite.storedEntry()
	updated := *entry
	updated.Status = domain.StatusSettled

	suite.mockEntryService.On("GetEntryByID", mock.Anything, entry.EntryID).Return(entry, nil).Once()
	suite.mockEntryService.On("ChangeEntryStatus", mock.Anything, *entry, "SETTLED").Return(&updated, nil).Once()

	w := suite.doRequest(http.MethodPut, fmt.Sprintf("/api/v1/entries/%s/status", entry.EntryID), dto.UpdateEntryStatusRequest{Status: "SETTLED"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.EntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("SETTLED", resp.Status)
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestUpdateEntryStatus_UnknownStatus() {
	entry := suite.storedEntry()

	suite.mockEntryService.On("GetEntryByID", mock.Anything, entry.EntryID).Return(entry, nil).Once()
	suite.mockEntryService.On("ChangeEntryStatus", mock.Anything, *entry, "ARCHIVED").
		Return(nil, apperrors.ErrInvalidStatus).Once()

	w := suite.doRequest(http.MethodPut, fmt.Sprintf("/api/v1/entries/%s/status", entry.EntryID), dto.UpdateEntryStatusRequest{Status: "ARCHIVED"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestDeleteEntry_Success() {
	entry := suite.storedEntry()

	suite.mockEntryService.On("GetEntryByID", mock.Anything, entry.EntryID).Return(entry, nil).Once()
	suite.mockEntryService.On("DeleteEntry", mock.Anything, *entry).Return(nil).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/entries/"+entry.EntryID, nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestDeleteEntry_NotFound() {
	entryID := uuid.NewString()

	suite.mockEntryService.On("GetEntryByID", mock.Anything, entryID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/entries/"+entryID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockEntryService.AssertNotCalled(suite.T(), "DeleteEntry", mock.Anything, mock.Anything)
}

// --- Run Suite ---
func TestEntryHandler(t *testing.T) {
	suite.Run(t, new(EntryHandlerTestSuite))
}
