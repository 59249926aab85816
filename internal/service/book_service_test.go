package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "libraryapi/internal/errors"
	"libraryapi/internal/model"
)

func TestBookService_CreateBook(t *testing.T) {
	tests := []struct {
		name          string
		input         BookInput
		setupMock     func(*MockBookRepository)
		expectedError error
		missingFields []string
	}{
		{
			name:  "successful creation with defaults",
			input: BookInput{Title: strPtr("Dune"), Author: strPtr("Herbert")},
			setupMock: func(m *MockBookRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Book")).Return(nil)
			},
		},
		{
			name: "available in payload is ignored",
			input: BookInput{
				Title:         strPtr("Dune"),
				Author:        strPtr("Herbert"),
				PublishedDate: strPtr("1965-08-01"),
				ISBN:          strPtr("9780441013593"),
				Pages:         intPtr(412),
				Available:     boolPtr(false),
			},
			setupMock: func(m *MockBookRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Book")).Return(nil)
			},
		},
		{
			name:          "missing title and author",
			input:         BookInput{ISBN: strPtr("123")},
			setupMock:     func(m *MockBookRepository) {},
			missingFields: []string{"title", "author"},
		},
		{
			name:  "empty title is present",
			input: BookInput{Title: strPtr(""), Author: strPtr("Herbert")},
			setupMock: func(m *MockBookRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Book")).Return(nil)
			},
		},
		{
			name:          "malformed published date",
			input:         BookInput{Title: strPtr("Dune"), Author: strPtr("Herbert"), PublishedDate: strPtr("August 1965")},
			setupMock:     func(m *MockBookRepository) {},
			expectedError: apperrors.ErrInvalidField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockBookRepository)
			tt.setupMock(mockRepo)

			service := NewBookService(mockRepo, noCache{})
			book, err := service.CreateBook(context.Background(), tt.input)

			switch {
			case tt.missingFields != nil:
				var missing *apperrors.MissingFieldError
				require.ErrorAs(t, err, &missing)
				assert.ElementsMatch(t, tt.missingFields, missing.Fields)
				assert.Nil(t, book)
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, book)
			default:
				require.NoError(t, err)
				assert.Equal(t, *tt.input.Title, book.Title)
				assert.Equal(t, *tt.input.Author, book.Author)
				require.NotNil(t, book.Available)
				assert.True(t, *book.Available)
				assert.Equal(t, tt.input.ISBN, book.ISBN)
				assert.Equal(t, tt.input.Pages, book.Pages)
				assert.Equal(t, tt.input.PublishedDate, FormatDate(book.PublishedDate))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestBookService_GetBook(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockBookRepository)
		mockRepo.On("FindByID", mock.Anything, uint(7)).Return(nil, gorm.ErrRecordNotFound)

		service := NewBookService(mockRepo, noCache{})
		book, err := service.GetBook(context.Background(), 7)

		assert.ErrorIs(t, err, apperrors.ErrBookNotFound)
		assert.Nil(t, book)
		mockRepo.AssertExpectations(t)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		mockRepo := new(MockBookRepository)
		storeErr := errors.New("connection refused")
		mockRepo.On("FindByID", mock.Anything, uint(7)).Return(nil, storeErr)

		service := NewBookService(mockRepo, noCache{})
		_, err := service.GetBook(context.Background(), 7)

		assert.ErrorIs(t, err, storeErr)
		assert.NotErrorIs(t, err, apperrors.ErrBookNotFound)
	})

	t.Run("cache miss populates cache", func(t *testing.T) {
		mockRepo := new(MockBookRepository)
		mockCache := new(MockCache)
		stored := &model.Book{ID: 1, Title: "Dune", Author: "Herbert"}
		mockCache.On("GetJSON", mock.Anything, "book:1", mock.Anything).Return(false)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(stored, nil)
		mockCache.On("SetJSON", mock.Anything, "book:1", stored).Return()

		service := NewBookService(mockRepo, mockCache)
		book, err := service.GetBook(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, "Dune", book.Title)
		mockRepo.AssertExpectations(t)
		mockCache.AssertExpectations(t)
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		mockRepo := new(MockBookRepository)
		mockCache := new(MockCache)
		mockCache.On("GetJSON", mock.Anything, "book:1", mock.Anything).
			Run(func(args mock.Arguments) {
				dst := args.Get(2).(*model.Book)
				*dst = model.Book{ID: 1, Title: "Cached", Author: "Herbert"}
			}).
			Return(true)

		service := NewBookService(mockRepo, mockCache)
		book, err := service.GetBook(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, "Cached", book.Title)
		mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestBookService_UpdateBook(t *testing.T) {
	t.Run("omitted available becomes null", func(t *testing.T) {
		mockRepo := new(MockBookRepository)
		mockCache := new(MockCache)
		existing := &model.Book{ID: 1, Title: "Dune", Author: "Herbert", ISBN: strPtr("9780441013593"), Available: boolPtr(true)}
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(existing, nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(b *model.Book) bool {
			return b.Title == "Dune Messiah" && b.Available == nil && b.ISBN == nil
		})).Return(nil)
		mockCache.On("Delete", mock.Anything, "book:1").Return()

		service := NewBookService(mockRepo, mockCache)
		book, err := service.UpdateBook(context.Background(), 1, BookInput{Title: strPtr("Dune Messiah"), Author: strPtr("Herbert")})

		require.NoError(t, err)
		assert.Nil(t, book.Available)
		mockRepo.AssertExpectations(t)
		mockCache.AssertExpectations(t)
	})

	t.Run("existence is checked before fields", func(t *testing.T) {
		mockRepo := new(MockBookRepository)
		mockRepo.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

		service := NewBookService(mockRepo, noCache{})
		_, err := service.UpdateBook(context.Background(), 9, BookInput{})

		assert.ErrorIs(t, err, apperrors.ErrBookNotFound)
	})

	t.Run("missing author", func(t *testing.T) {
		mockRepo := new(MockBookRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Book{ID: 1}, nil)

		service := NewBookService(mockRepo, noCache{})
		_, err := service.UpdateBook(context.Background(), 1, BookInput{Title: strPtr("Dune")})

		var missing *apperrors.MissingFieldError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{"author"}, missing.Fields)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestBookService_DeleteBook(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(*MockBookRepository)
		expectedError error
	}{
		{
			name: "successful delete",
			setupMock: func(m *MockBookRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(&model.Book{ID: 1}, nil)
				m.On("Delete", mock.Anything, uint(1)).Return(nil)
			},
		},
		{
			name: "not found",
			setupMock: func(m *MockBookRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrBookNotFound,
		},
		{
			name: "referenced by transaction",
			setupMock: func(m *MockBookRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(&model.Book{ID: 1}, nil)
				m.On("Delete", mock.Anything, uint(1)).Return(gorm.ErrForeignKeyViolated)
			},
			expectedError: apperrors.ErrReferenced,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockBookRepository)
			tt.setupMock(mockRepo)

			service := NewBookService(mockRepo, noCache{})
			err := service.DeleteBook(context.Background(), 1)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Nil(t, FormatDate(nil))

	d, err := parseDate("published_date", strPtr("1965-08-01"))
	require.NoError(t, err)
	assert.Equal(t, "1965-08-01", *FormatDate(d))
}
