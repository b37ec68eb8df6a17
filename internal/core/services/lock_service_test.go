package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/amaansodagar786/credence_backend/internal/apperrors"
	"github.com/amaansodagar786/credence_backend/internal/core/domain"
	portssvc "github.com/amaansodagar786/credence_backend/internal/core/ports/services"
	"github.com/amaansodagar786/credence_backend/internal/core/services"
	"github.com/amaansodagar786/credence_backend/internal/events"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LockServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	docs    *MockDocumentRepository
	pub     *recordingPublisher
	service portssvc.LockSvcFacade
}

func (suite *LockServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.docs = new(MockDocumentRepository)
	suite.pub = &recordingPublisher{}
	suite.service = services.NewLockService(suite.docs,
		services.WithClock(fixedTime),
		services.WithEventPublisher(suite.pub))
}

func stampedBy(userID string) any {
	return mock.MatchedBy(func(by *string) bool { return by != nil && *by == userID })
}

func stampedAt(at time.Time) any {
	return mock.MatchedBy(func(t *time.Time) bool { return t != nil && t.Equal(at) })
}

func (suite *LockServiceTestSuite) TestLockSalesOnly() {
	sales := domain.CategoryRef{Type: domain.CategorySales}
	after := completeMonth()
	after.Sales.IsLocked = true

	suite.docs.On("FindMonthDocument", suite.ctx, "client-x", march).Return(completeMonth(), nil).Once()
	suite.docs.On("SetCategoryLock", suite.ctx, "client-x", march, sales, true, stampedBy("admin-1"), stampedAt(fixedNow)).Return(nil).Once()
	suite.docs.On("FindMonthDocument", suite.ctx, "client-x", march).Return(after, nil).Once()

	month, err := suite.service.RequestCategoryLock(suite.ctx, adminActor, "client-x", march, sales, true)

	suite.Require().NoError(err)
	suite.Same(after, month, "the re-read month is returned")
	suite.True(month.EffectiveLock(sales))
	suite.False(month.EffectiveLock(domain.CategoryRef{Type: domain.CategoryPurchase}))
	suite.False(month.IsLocked)
	suite.Equal([]events.Type{events.TypeCategoryLockChanged}, suite.pub.types())
	suite.docs.AssertNotCalled(suite.T(), "SetMonthLock", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.docs.AssertExpectations(suite.T())
}

func (suite *LockServiceTestSuite) TestMonthLockLeavesCategoriesAlone() {
	after := completeMonth()
	after.IsLocked = true

	suite.docs.On("FindMonthDocument", suite.ctx, "client-x", march).Return(completeMonth(), nil).Once()
	suite.docs.On("SetMonthLock", suite.ctx, "client-x", march, true, stampedBy("admin-1"), stampedAt(fixedNow)).Return(nil).Once()
	suite.docs.On("FindMonthDocument", suite.ctx, "client-x", march).Return(after, nil).Once()

	month, err := suite.service.RequestMonthLock(suite.ctx, adminActor, "client-x", march, true)

	suite.Require().NoError(err)
	suite.True(month.IsLocked)
	suite.False(month.Sales.IsLocked)
	suite.docs.AssertNotCalled(suite.T(), "SetCategoryLock", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.docs.AssertExpectations(suite.T())
}

func (suite *LockServiceTestSuite) TestMonthUnlockClearsStamp() {
	locked := completeMonth()
	locked.IsLocked = true
	locked.Bank.IsLocked = true

	suite.docs.On("FindMonthDocument", suite.ctx, "client-x", march).Return(locked, nil).Once()
	suite.docs.On("SetMonthLock", suite.ctx, "client-x", march, false, (*string)(nil), (*time.Time)(nil)).Return(nil).Once()
	after := completeMonth()
	after.Bank.IsLocked = true
	suite.docs.On("FindMonthDocument", suite.ctx, "client-x", march).Return(after, nil).Once()

	month, err := suite.service.RequestMonthLock(suite.ctx, adminActor, "client-x", march, false)

	suite.Require().NoError(err)
	suite.False(month.IsLocked)
	suite.True(month.EffectiveLock(domain.CategoryRef{Type: domain.CategoryBank}), "category flag survives a month unlock")
	suite.docs.AssertExpectations(suite.T())
}

func (suite *LockServiceTestSuite) TestMonthAlreadyInState() {
	locked := completeMonth()
	locked.IsLocked = true
	suite.docs.On("FindMonthDocument", suite.ctx, "client-x", march).Return(locked, nil).Once()

	_, err := suite.service.RequestMonthLock(suite.ctx, adminActor, "client-x", march, true)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyInState)
	suite.ErrorIs(err, apperrors.ErrConflict)
	var appErr *apperrors.AppError
	suite.Require().True(errors.As(err, &appErr))
	suite.Equal(http.StatusConflict, appErr.Code)
	suite.Empty(suite.pub.types())
	suite.docs.AssertNotCalled(suite.T(), "SetMonthLock", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LockServiceTestSuite) TestCategoryUnlockUnderMonthLock() {
	locked := completeMonth()
	locked.IsLocked = true
	suite.docs.On("FindMonthDocument", suite.ctx, "client-x", march).Return(locked, nil).Once()

	_, err := suite.service.RequestCategoryLock(suite.ctx, adminActor, "client-x", march, domain.CategoryRef{Type: domain.CategorySales}, false)

	suite.ErrorIs(err, apperrors.ErrAlreadyInState)
	suite.Contains(err.Error(), "month lock")
	suite.docs.AssertNotCalled(suite.T(), "SetCategoryLock", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LockServiceTestSuite) TestCategoryLockUnderMonthLock() {
	locked := completeMonth()
	locked.IsLocked = true
	suite.docs.On("FindMonthDocument", suite.ctx, "client-x", march).Return(locked, nil).Once()

	_, err := suite.service.RequestCategoryLock(suite.ctx, adminActor, "client-x", march, domain.CategoryRef{Type: domain.CategoryPurchase}, true)

	suite.ErrorIs(err, apperrors.ErrAlreadyInState)
}

func (suite *LockServiceTestSuite) TestUnknownMonthOrCategory() {
	suite.docs.On("FindMonthDocument", suite.ctx, "client-x", march).Return(nil, apperrors.ErrNotFound).Once()
	_, err := suite.service.RequestMonthLock(suite.ctx, adminActor, "client-x", march, true)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.docs.On("FindMonthDocument", suite.ctx, "client-x", march).Return(completeMonth(), nil).Once()
	_, err = suite.service.RequestCategoryLock(suite.ctx, adminActor, "client-x", march, domain.CategoryRef{Type: domain.CategoryOther, Name: "Payroll"}, true)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LockServiceTestSuite) TestRejectsNonAdminsAndBadInput() {
	_, err := suite.service.RequestMonthLock(suite.ctx, domain.Actor{}, "client-x", march, true)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	_, err = suite.service.RequestMonthLock(suite.ctx, employeeActor, "client-x", march, true)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	_, err = suite.service.RequestMonthLock(suite.ctx, adminActor, "client-x", domain.Period{Year: 2025, Month: 13}, true)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.RequestCategoryLock(suite.ctx, adminActor, "client-x", march, domain.CategoryRef{Type: domain.CategoryOther}, true)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.docs.AssertNotCalled(suite.T(), "FindMonthDocument", mock.Anything, mock.Anything, mock.Anything)
}

func TestLockServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LockServiceTestSuite))
}
