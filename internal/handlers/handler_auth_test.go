package handlers_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/core/domain"
	"github.com/SscSPs/erp_ledger/internal/dto"
)

func (suite *HandlerTestSuite) testUser() *domain.User {
	return &domain.User{UserID: suite.userID, Username: "alice", Name: "Alice"}
}

func (suite *HandlerTestSuite) TestLogin_Success() {
	user := suite.testUser()
	expiresAt := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.mockUsers.On("AuthenticateUser", mock.Anything, "alice", "correct horse").Return(user, nil).Once()
	suite.mockTokens.On("GenerateAccessToken", mock.Anything, user).Return("signed.jwt.token", expiresAt, nil).Once()
	suite.mockActivity.On("LogActivity", mock.Anything, mock.MatchedBy(func(a domain.ActivityLog) bool {
		return a.Action == domain.ActionLogin && a.UserID == suite.userID && a.EntityType == domain.EntityUser && a.IPAddress != ""
	})).Return(&domain.ActivityLog{ActivityID: 1}, nil).Once()

	w := suite.doPublic(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "alice", Password: "correct horse"})

	suite.Equal(http.StatusOK, w.Code)
	body := suite.decode(w)
	suite.Equal("signed.jwt.token", body["token"])
	suite.Equal("alice", body["user"].(map[string]any)["username"])
}

func (suite *HandlerTestSuite) TestLogin_ActivityFailureDoesNotFailLogin() {
	user := suite.testUser()
	suite.mockUsers.On("AuthenticateUser", mock.Anything, "alice", "pw").Return(user, nil).Once()
	suite.mockTokens.On("GenerateAccessToken", mock.Anything, user).Return("t", time.Now().Add(time.Hour), nil).Once()
	suite.mockActivity.On("LogActivity", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("disk full")).Once()

	w := suite.doPublic(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "alice", Password: "pw"})

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestLogin_BadCredentials() {
	suite.mockUsers.On("AuthenticateUser", mock.Anything, "alice", "wrong").Return(nil, apperrors.ErrUnauthorized).Once()

	w := suite.doPublic(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "alice", Password: "wrong"})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("Invalid username or password", suite.decode(w)["error"])
	suite.mockTokens.AssertNotCalled(suite.T(), "GenerateAccessToken")
	suite.mockActivity.AssertNotCalled(suite.T(), "LogActivity")
}

func (suite *HandlerTestSuite) TestLogin_RateLimited() {
	suite.mockUsers.On("AuthenticateUser", mock.Anything, "alice", "wrong").Return(nil, apperrors.ErrUnauthorized).Times(3)

	var last int
	for i := 0; i < 4; i++ {
		last = suite.doPublic(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "alice", Password: "wrong"}).Code
	}

	suite.Equal(http.StatusTooManyRequests, last)
}

func (suite *HandlerTestSuite) TestRegister() {
	suite.Run("created", func() {
		req := dto.RegisterRequest{Username: "Bob", Name: "Bob", Password: "longenough"}
		suite.mockUsers.On("RegisterUser", mock.Anything, req).
			Return(&domain.User{UserID: "u-2", Username: "bob", Name: "Bob"}, nil).Once()

		w := suite.doPublic(http.MethodPost, "/api/v1/auth/register", req)

		suite.Equal(http.StatusCreated, w.Code)
		suite.Equal("bob", suite.decode(w)["username"])
	})
	suite.Run("taken", func() {
		req := dto.RegisterRequest{Username: "alice", Name: "Alice", Password: "longenough"}
		suite.mockUsers.On("RegisterUser", mock.Anything, req).
			Return(nil, fmt.Errorf("%w: username alice", apperrors.ErrDuplicate)).Once()

		w := suite.doPublic(http.MethodPost, "/api/v1/auth/register", req)

		suite.Equal(http.StatusConflict, w.Code)
	})
	suite.Run("short password", func() {
		w := suite.doPublic(http.MethodPost, "/api/v1/auth/register", dto.RegisterRequest{Username: "carol", Name: "Carol", Password: "short"})
		suite.Equal(http.StatusBadRequest, w.Code)
	})
}

func (suite *HandlerTestSuite) TestUsers() {
	suite.Run("me", func() {
		suite.mockUsers.On("GetUserByID", mock.Anything, suite.userID).Return(suite.testUser(), nil).Once()
		w := suite.do(http.MethodGet, "/api/v1/users/me", nil)
		suite.Equal(http.StatusOK, w.Code)
		suite.Equal(suite.userID, suite.decode(w)["userID"])
	})
	suite.Run("list", func() {
		suite.mockUsers.On("ListUsers", mock.Anything, 20, 0).Return([]domain.User{*suite.testUser()}, nil).Once()
		w := suite.do(http.MethodGet, "/api/v1/users", nil)
		suite.Equal(http.StatusOK, w.Code)
		suite.Len(suite.decode(w)["users"], 1)
	})
	suite.Run("delete someone else", func() {
		suite.mockUsers.On("DeleteUser", mock.Anything, "other", suite.userID).Return(apperrors.ErrForbidden).Once()
		w := suite.do(http.MethodDelete, "/api/v1/users/other", nil)
		suite.Equal(http.StatusForbidden, w.Code)
	})
	suite.Run("delete self", func() {
		suite.mockUsers.On("DeleteUser", mock.Anything, suite.userID, suite.userID).Return(nil).Once()
		w := suite.do(http.MethodDelete, "/api/v1/users/"+suite.userID, nil)
		suite.Equal(http.StatusNoContent, w.Code)
	})
}

func (suite *HandlerTestSuite) TestActivities() {
	suite.Run("list with filter", func() {
		suite.mockActivity.On("ListActivities", mock.Anything, mock.MatchedBy(func(f domain.ActivityFilter) bool {
			return f.EntityType == domain.EntityAccount && f.Action == domain.ActionCreate &&
				f.Limit == 50 && f.To != nil && f.To.Hour() == 23
		})).Return([]domain.ActivityLog{{ActivityID: 3, Action: domain.ActionCreate}}, nil).Once()

		w := suite.do(http.MethodGet, "/api/v1/activities?entityType=Account&action=CREATE&to=2024-05-01", nil)

		suite.Equal(http.StatusOK, w.Code)
		suite.Len(suite.decode(w)["activities"], 1)
	})
	suite.Run("bad date", func() {
		w := suite.do(http.MethodGet, "/api/v1/activities?from=01-05-2024", nil)
		suite.Equal(http.StatusBadRequest, w.Code)
	})
	suite.Run("get", func() {
		suite.mockActivity.On("GetActivityByID", mock.Anything, 3).
			Return(&domain.ActivityLog{ActivityID: 3, Action: domain.ActionDelete}, nil).Once()
		w := suite.do(http.MethodGet, "/api/v1/activities/3", nil)
		suite.Equal(http.StatusOK, w.Code)
		suite.Equal("DELETE", suite.decode(w)["action"])
	})
}

func (suite *HandlerTestSuite) TestActivitySummary() {
	suite.Run("summary", func() {
		suite.mockActivity.On("Summary", mock.Anything).Return(&domain.ActivitySummary{
			TotalActivities:  7,
			Last24Hours:      2,
			ActionCounts:     map[string]int{domain.ActionCreate: 5, domain.ActionLogin: 2},
			EntityTypeCounts: map[string]int{domain.EntityJournalEntry: 5, domain.EntityUser: 2},
			MostActiveUser:   &domain.UserActivityCount{Username: "alice", Count: 6},
			RecentActivity:   []domain.ActivityLog{{ActivityID: 7, Action: domain.ActionLogin}},
		}, nil).Once()

		w := suite.do(http.MethodGet, "/api/v1/activities/summary", nil)

		suite.Equal(http.StatusOK, w.Code)
		body := suite.decode(w)
		suite.EqualValues(7, body["totalActivities"])
		suite.EqualValues(2, body["last24Hours"])
		suite.Equal(map[string]any{"CREATE": float64(5), "LOGIN": float64(2)}, body["actionCounts"])
		suite.Equal("alice", body["mostActiveUser"].(map[string]any)["username"])
		suite.Len(body["recentActivity"], 1)
		suite.mockActivity.AssertNotCalled(suite.T(), "GetActivityByID", mock.Anything, mock.Anything)
	})
	suite.Run("store failure", func() {
		suite.mockActivity.On("Summary", mock.Anything).Return(nil, fmt.Errorf("connection reset")).Once()

		w := suite.do(http.MethodGet, "/api/v1/activities/summary", nil)

		suite.Equal(http.StatusInternalServerError, w.Code)
		suite.Equal("Failed to summarize activities", suite.decode(w)["error"])
	})
}
