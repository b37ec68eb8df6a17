package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/amaansodagar786/credence_backend/internal/apperrors"
	"github.com/amaansodagar786/credence_backend/internal/core/domain"
	portssvc "github.com/amaansodagar786/credence_backend/internal/core/ports/services"
	"github.com/amaansodagar786/credence_backend/internal/core/services"
	"github.com/amaansodagar786/credence_backend/internal/dto"
	"github.com/amaansodagar786/credence_backend/internal/events"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type DocumentServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	docs    *MockDocumentRepository
	notes   *MockNoteRepository
	pub     *recordingPublisher
	service portssvc.DocumentSvcFacade
}

func (suite *DocumentServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.docs = new(MockDocumentRepository)
	suite.notes = new(MockNoteRepository)
	suite.pub = &recordingPublisher{}
	suite.service = services.NewDocumentService(suite.docs, suite.notes,
		services.WithClock(fixedTime),
		services.WithEventPublisher(suite.pub))
}

func upload(t domain.CategoryType) dto.UploadDocumentRequest {
	return dto.UploadDocumentRequest{
		Year:     2025,
		Month:    3,
		Type:     t,
		FileName: "march-sales.pdf",
		URL:      "https://files.example.com/march-sales.pdf",
		FileSize: 2048,
		FileType: "application/pdf",
	}
}

func (suite *DocumentServiceTestSuite) TestUpload_LockedCategoryRejected() {
	month := completeMonth()
	month.Sales.IsLocked = true
	suite.docs.On("FindMonthDocument", suite.ctx, "client-x", march).Return(month, nil).Once()

	_, err := suite.service.RecordUpload(suite.ctx, clientActor, upload(domain.CategorySales))

	suite.ErrorIs(err, apperrors.ErrLocked)
	suite.docs.AssertNotCalled(suite.T(), "SaveFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.Empty(suite.pub.types())
}

func (suite *DocumentServiceTestSuite) TestUpload_MonthLockCoversEveryCategory() {
	month := completeMonth()
	month.IsLocked = true
	suite.docs.On("FindMonthDocument", suite.ctx, "client-x", march).Return(month, nil).Once()

	_, err := suite.service.RecordUpload(suite.ctx, clientActor, upload(domain.CategoryBank))

	suite.ErrorIs(err, apperrors.ErrLocked)
}

func (suite *DocumentServiceTestSuite) TestUpload_OtherCategoryStaysOpenWhenSalesLocked() {
	month := completeMonth()
	month.Sales.IsLocked = true
	stored := completeMonth()
	suite.docs.On("FindMonthDocument", suite.ctx, "client-x", march).Return(month, nil).Once()
	suite.docs.On("SaveFile", suite.ctx, "client-x", march, domain.CategoryRef{Type: domain.CategoryPurchase}, mock.Anything).Return(nil).Once()
	suite.docs.On("FindMonthDocument", suite.ctx, "client-x", march).Return(stored, nil).Once()

	result, err := suite.service.RecordUpload(suite.ctx, clientActor, upload(domain.CategoryPurchase))

	suite.Require().NoError(err)
	suite.Same(stored, result.Month)
	suite.Empty(result.Warnings)
	suite.docs.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestUpload_FirstUploadCreatesMonthAndNote() {
	request := upload(domain.CategoryOther)
	request.CategoryName = "Payroll"
	request.Note = "December bonus included"
	ref := domain.CategoryRef{Type: domain.CategoryOther, Name: "Payroll"}

	suite.docs.On("FindMonthDocument", suite.ctx, "client-x", march).Return(nil, apperrors.ErrNotFound).Once()
	suite.docs.On("SaveFile", suite.ctx, "client-x", march, ref, mock.MatchedBy(func(f domain.File) bool {
		return f.FileName == "march-sales.pdf" && f.UploadedBy == "client-x" && f.UploadedAt.Equal(fixedNow) && f.FileID != ""
	})).Return(nil).Once()
	suite.notes.On("SaveNote", suite.ctx, mock.MatchedBy(func(n domain.Note) bool {
		return n.NoteLevel == domain.NoteLevelFile && n.CategoryName == "Payroll" &&
			n.FileName == "march-sales.pdf" && n.IsViewedByClient && !n.IsViewedByAdmin
	})).Return(nil).Once()
	suite.docs.On("FindMonthDocument", suite.ctx, "client-x", march).Return(&domain.MonthDocument{ClientID: "client-x", Year: 2025, Month: 3}, nil).Once()

	_, err := suite.service.RecordUpload(suite.ctx, clientActor, request)

	suite.Require().NoError(err)
	suite.Equal([]events.Type{events.TypeDocumentUploaded}, suite.pub.types())
	suite.docs.AssertExpectations(suite.T())
	suite.notes.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestUpload_NoteFailureIsReportedAsWarning() {
	request := upload(domain.CategorySales)
	request.Note = "see page 2"
	suite.docs.On("FindMonthDocument", suite.ctx, "client-x", march).Return(completeMonth(), nil)
	suite.docs.On("SaveFile", suite.ctx, "client-x", march, mock.Anything, mock.Anything).Return(nil).Once()
	suite.notes.On("SaveNote", suite.ctx, mock.Anything).Return(errors.New("db down")).Once()

	result, err := suite.service.RecordUpload(suite.ctx, clientActor, request)

	suite.Require().NoError(err)
	suite.NotNil(result.Month)
	suite.Require().Len(result.Warnings, 1)
	suite.Contains(result.Warnings[0], "note was not")
	suite.Equal([]events.Type{events.TypeDocumentUploaded}, suite.pub.types())
}

func (suite *DocumentServiceTestSuite) TestUpload_OnlyClients() {
	_, err := suite.service.RecordUpload(suite.ctx, adminActor, upload(domain.CategorySales))
	suite.ErrorIs(err, apperrors.ErrForbidden)

	_, err = suite.service.RecordUpload(suite.ctx, employeeActor, upload(domain.CategorySales))
	suite.ErrorIs(err, apperrors.ErrForbidden)

	_, err = suite.service.RecordUpload(suite.ctx, clientActor, upload(domain.CategoryOther))
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DocumentServiceTestSuite) TestGetMonthDocument() {
	suite.docs.On("FindMonthDocument", suite.ctx, "client-x", march).Return(completeMonth(), nil).Once()
	month, err := suite.service.GetMonthDocument(suite.ctx, clientActor, "client-x", march)
	suite.Require().NoError(err)
	suite.Equal("client-x", month.ClientID)

	_, err = suite.service.GetMonthDocument(suite.ctx, clientActor, "client-y", march)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	suite.docs.On("FindMonthDocument", suite.ctx, "client-y", march).Return(nil, apperrors.ErrNotFound).Once()
	_, err = suite.service.GetMonthDocument(suite.ctx, adminActor, "client-y", march)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestDocumentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentServiceTestSuite))
}
