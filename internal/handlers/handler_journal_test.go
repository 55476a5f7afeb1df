package handlers_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/core/domain"
	"github.com/SscSPs/erp_ledger/internal/dto"
	"github.com/SscSPs/erp_ledger/internal/utils/accounting"
)

func testEntry() *domain.JournalEntry {
	return &domain.JournalEntry{
		EntryID:     1,
		Number:      "JE001",
		EntryDate:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Description: "Owner investment",
		Lines: []domain.JournalLine{
			{LineID: 1, EntryID: 1, AccountID: 1, Debit: decimal.NewFromInt(1000)},
			{LineID: 2, EntryID: 1, AccountID: 4, Credit: decimal.NewFromInt(1000)},
		},
	}
}

var entryBody = map[string]any{
	"date":        "2024-01-15",
	"description": "Owner investment",
	"lines": []map[string]any{
		{"accountID": 1, "debit": "1000"},
		{"accountID": 4, "credit": "1000"},
	},
}

func (suite *HandlerTestSuite) TestCreateJournalEntry_Success() {
	suite.mockJournals.On("CreateJournalEntry", mock.Anything, mock.MatchedBy(func(req dto.CreateJournalEntryRequest) bool {
		return req.Date == "2024-01-15" && len(req.Lines) == 2 &&
			req.Lines[0].Debit.Equal(decimal.NewFromInt(1000)) && req.Lines[1].Credit.Equal(decimal.NewFromInt(1000))
	}), suite.actorIsCaller()).Return(testEntry(), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", entryBody)

	suite.Equal(http.StatusCreated, w.Code)
	body := suite.decode(w)
	suite.Equal("JE001", body["number"])
	suite.Equal("2024-01-15", body["date"])
	suite.Equal("1000", body["totalDebits"])
	suite.Equal("1000", body["totalCredits"])
	suite.Len(body["lines"], 2)
}

func (suite *HandlerTestSuite) TestCreateJournalEntry_Rejections() {
	tests := []struct {
		name       string
		err        error
		wantKind   string
		wantLine   any
		wantDebits any
	}{
		{
			name:     "insufficient lines",
			err:      &accounting.ValidationError{Kind: accounting.InsufficientLines, LineIndex: -1},
			wantKind: "InsufficientLines",
		},
		{
			name:     "both sides",
			err:      &accounting.ValidationError{Kind: accounting.LineHasBothDebitAndCredit, LineIndex: 1},
			wantKind: "LineHasBothDebitAndCredit",
			wantLine: float64(2),
		},
		{
			name:     "fraction of a cent",
			err:      &accounting.ValidationError{Kind: accounting.AmountTooPrecise, LineIndex: 0},
			wantKind: "AmountTooPrecise",
			wantLine: float64(1),
		},
		{
			name: "unbalanced",
			err: &accounting.ValidationError{
				Kind:         accounting.Unbalanced,
				LineIndex:    -1,
				TotalDebits:  decimal.NewFromInt(1000),
				TotalCredits: decimal.NewFromInt(900),
			},
			wantKind:   "Unbalanced",
			wantDebits: "1000",
		},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.mockJournals.On("CreateJournalEntry", mock.Anything, mock.Anything, mock.Anything).
				Return(nil, tt.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/journal-entries", entryBody)

			suite.Equal(http.StatusBadRequest, w.Code)
			body := suite.decode(w)
			suite.Equal(tt.wantKind, body["kind"])
			suite.Equal(tt.wantLine, body["line"])
			suite.Equal(tt.wantDebits, body["totalDebits"])
		})
	}
}

func (suite *HandlerTestSuite) TestCreateJournalEntry_UnknownAccountIsBadRequest() {
	err := fmt.Errorf("%w: account 42: %w", apperrors.ErrValidation, apperrors.ErrNotFound)
	suite.mockJournals.On("CreateJournalEntry", mock.Anything, mock.Anything, mock.Anything).Return(nil, err).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", entryBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.NotContains(suite.decode(w), "kind")
}

func (suite *HandlerTestSuite) TestCreateJournalEntry_MissingLines() {
	w := suite.do(http.MethodPost, "/api/v1/journal-entries", map[string]any{"date": "2024-01-15", "description": "x"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournals.AssertNotCalled(suite.T(), "CreateJournalEntry")
}

func (suite *HandlerTestSuite) TestCreateJournalEntry_InternalErrorIsHidden() {
	suite.mockJournals.On("CreateJournalEntry", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("connection reset by peer")).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", entryBody)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("Failed to create journal entry", suite.decode(w)["error"])
}

func (suite *HandlerTestSuite) TestListJournalEntries_PassesQuery() {
	token := "20"
	suite.mockJournals.On("ListJournalEntries", mock.Anything, dto.ListJournalEntriesParams{
		Search:    "rent",
		From:      "2024-01-01",
		Limit:     20,
		NextToken: &token,
	}).Return(&dto.ListJournalEntriesResponse{
		Entries: []dto.JournalEntryResponse{dto.ToJournalEntryResponse(testEntry())},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/journal-entries?search=rent&from=2024-01-01&nextToken=20", nil)

	suite.Equal(http.StatusOK, w.Code)
	body := suite.decode(w)
	suite.Len(body["entries"], 1)
	suite.NotContains(body, "nextToken")
}

func (suite *HandlerTestSuite) TestListJournalEntries_LimitTooLarge() {
	w := suite.do(http.MethodGet, "/api/v1/journal-entries?limit=1000", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetJournalEntry_NotFound() {
	suite.mockJournals.On("GetJournalEntryByID", mock.Anything, 7).
		Return(nil, fmt.Errorf("journal entry 7: %w", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/journal-entries/7", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateJournalEntry_HeaderOnly() {
	description := "Owner capital"
	updated := testEntry()
	updated.Description = description
	suite.mockJournals.On("UpdateJournalEntry", mock.Anything, 1, mock.MatchedBy(func(req dto.UpdateJournalEntryRequest) bool {
		return req.Description != nil && *req.Description == description && req.Lines == nil && req.Date == nil
	}), suite.actorIsCaller()).Return(updated, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/journal-entries/1", map[string]any{"description": description})

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(description, suite.decode(w)["description"])
}

func (suite *HandlerTestSuite) TestDeleteJournalEntry() {
	suite.mockJournals.On("DeleteJournalEntry", mock.Anything, 1, suite.actorIsCaller()).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/journal-entries/1", nil)

	suite.Equal(http.StatusNoContent, w.Code)
}
