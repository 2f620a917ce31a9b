package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/general_ledger/internal/apperrors"
	"github.com/SscSPs/general_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/general_ledger/internal/core/ports/services"
	"github.com/SscSPs/general_ledger/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
	now      time.Time
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.now = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	suite.service = services.NewAccountService(suite.mockRepo,
		services.WithAccountClock(func() time.Time { return suite.now }))
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, domain.CreateAccountInput{Name: "  Cash  "})

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal("Cash", account.Name)
	suite.True(account.IsActive)
	suite.Equal(suite.now, account.CreatedAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Inactive() {
	ctx := context.Background()
	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == "Archive" && !a.IsActive
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, domain.CreateAccountInput{Name: "Archive", IsActive: boolPtr(false)})

	suite.Require().NoError(err)
	suite.False(account.IsActive)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Validation() {
	ctx := context.Background()
	long := make([]byte, domain.MaxAccountNameLength+1)
	for i := range long {
		long[i] = 'a'
	}

	for _, name := range []string{"", "   ", string(long)} {
		_, err := suite.service.CreateAccount(ctx, domain.CreateAccountInput{Name: name})
		suite.ErrorIs(err, apperrors.ErrValidation, "name %q", name)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateName() {
	ctx := context.Background()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(apperrors.ErrDuplicateName).Once()

	account, err := suite.service.CreateAccount(ctx, domain.CreateAccountInput{Name: "Cash"})

	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrDuplicateName)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccount_NotUUID() {
	account, err := suite.service.GetAccount(context.Background(), "not-a-uuid")

	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestRenameAccount() {
	ctx := context.Background()
	id := uuid.NewString()
	existing := &domain.Account{AccountID: id, Name: "Cash", IsActive: true, CreatedAt: suite.now}
	suite.mockRepo.On("FindAccountByID", ctx, id).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, id, domain.UpdateAccountInput{Name: strPtr("Petty Cash")}).
		Return(&domain.Account{AccountID: id, Name: "Petty Cash", IsActive: true, CreatedAt: suite.now}, nil).Once()

	account, err := suite.service.RenameAccount(ctx, id, " Petty Cash ")

	suite.Require().NoError(err)
	suite.Equal("Petty Cash", account.Name)
	suite.Equal(suite.now, account.CreatedAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestSetActive_Unchanged() {
	ctx := context.Background()
	id := uuid.NewString()
	suite.mockRepo.On("FindAccountByID", ctx, id).
		Return(&domain.Account{AccountID: id, Name: "Cash", IsActive: true}, nil).Once()

	account, err := suite.service.SetActive(ctx, id, true)

	suite.Require().NoError(err)
	suite.True(account.IsActive)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestSetActive_WritesOnlyStatus() {
	ctx := context.Background()
	id := uuid.NewString()
	suite.mockRepo.On("FindAccountByID", ctx, id).
		Return(&domain.Account{AccountID: id, Name: "Cash", IsActive: true}, nil).Once()
	// The stored row already carries a rename made after the read above.
	suite.mockRepo.On("UpdateAccount", ctx, id, domain.UpdateAccountInput{IsActive: boolPtr(false)}).
		Return(&domain.Account{AccountID: id, Name: "Cash Box", IsActive: false}, nil).Once()

	account, err := suite.service.SetActive(ctx, id, false)

	suite.Require().NoError(err)
	suite.False(account.IsActive)
	suite.Equal("Cash Box", account.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NoFields() {
	_, err := suite.service.UpdateAccount(context.Background(), uuid.NewString(), domain.UpdateAccountInput{})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_RenameToTakenName() {
	ctx := context.Background()
	id := uuid.NewString()
	suite.mockRepo.On("FindAccountByID", ctx, id).
		Return(&domain.Account{AccountID: id, Name: "Cash", IsActive: true}, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, id, domain.UpdateAccountInput{Name: strPtr("Revenue")}).
		Return(nil, apperrors.ErrDuplicateName).Once()

	_, err := suite.service.UpdateAccount(ctx, id, domain.UpdateAccountInput{Name: strPtr("Revenue")})

	suite.ErrorIs(err, apperrors.ErrDuplicateName)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetActiveAccounts() {
	ctx := context.Background()
	accounts := []domain.Account{{AccountID: uuid.NewString(), Name: "Cash", IsActive: true}}
	suite.mockRepo.On("ListActiveAccounts", ctx).Return(accounts, nil).Once()

	got, err := suite.service.GetActiveAccounts(ctx)

	suite.Require().NoError(err)
	suite.Equal(accounts, got)
}

func (suite *AccountServiceTestSuite) TestGetActiveAccounts_RepoError() {
	ctx := context.Background()
	suite.mockRepo.On("ListActiveAccounts", ctx).Return(nil, errors.New("db down")).Once()

	got, err := suite.service.GetActiveAccounts(ctx)

	suite.Nil(got)
	suite.EqualError(err, "db down")
}

func (suite *AccountServiceTestSuite) TestResolve_ByIDThenName() {
	ctx := context.Background()
	id := uuid.NewString()
	byID := &domain.Account{AccountID: id, Name: "Cash", IsActive: true}
	suite.mockRepo.On("FindAccountByID", ctx, id).Return(byID, nil).Once()

	account, err := suite.service.Resolve(ctx, id)
	suite.Require().NoError(err)
	suite.Equal(byID, account)

	// A UUID-shaped name that matches no id falls through to the name lookup.
	other := uuid.NewString()
	byName := &domain.Account{AccountID: uuid.NewString(), Name: other, IsActive: true}
	suite.mockRepo.On("FindAccountByID", ctx, other).Return(nil, apperrors.NewNotFoundError("account")).Once()
	suite.mockRepo.On("FindAccountByName", ctx, other).Return(byName, nil).Once()

	account, err = suite.service.Resolve(ctx, other)
	suite.Require().NoError(err)
	suite.Equal(byName, account)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestResolve_InactiveAccount() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccountByName", ctx, "Old").
		Return(&domain.Account{AccountID: uuid.NewString(), Name: "Old", IsActive: false}, nil).Once()

	account, err := suite.service.Resolve(ctx, "Old")

	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrInactiveAccount)
}

func (suite *AccountServiceTestSuite) TestLookup_InactiveAllowed() {
	ctx := context.Background()
	suite.mockRepo.On("FindAccountByName", ctx, "Old").
		Return(&domain.Account{AccountID: uuid.NewString(), Name: "Old", IsActive: false}, nil).Once()

	account, err := suite.service.Lookup(ctx, "Old")

	suite.Require().NoError(err)
	suite.False(account.IsActive)
}

func (suite *AccountServiceTestSuite) TestLookup_Empty() {
	_, err := suite.service.Lookup(context.Background(), "  ")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Run Test Suite ---

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
