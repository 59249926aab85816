package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	apperrors "libraryapi/internal/errors"
	"libraryapi/internal/model"
	"libraryapi/internal/repository"
)

// BookInput carries the writable book fields. Title and Author are required;
// a nil optional field is stored as NULL.
type BookInput struct {
	Title         *string `json:"title" validate:"required"`
	Author        *string `json:"author" validate:"required"`
	PublishedDate *string `json:"published_date"`
	ISBN          *string `json:"isbn"`
	Pages         *int    `json:"pages"`
	Available     *bool   `json:"available"`
}

// BookService handles book operations.
type BookService interface {
	ListBooks(ctx context.Context) ([]model.Book, error)
	CreateBook(ctx context.Context, in BookInput) (*model.Book, error)
	GetBook(ctx context.Context, id uint) (*model.Book, error)
	UpdateBook(ctx context.Context, id uint, in BookInput) (*model.Book, error)
	DeleteBook(ctx context.Context, id uint) error
}

type bookService struct {
	repo     repository.BookRepository
	cache    Cache
	validate *validator.Validate
}

// NewBookService creates a new book service.
func NewBookService(repo repository.BookRepository, cache Cache) BookService {
	return &bookService{
		repo:     repo,
		cache:    cache,
		validate: newValidator(),
	}
}

func (s *bookService) cacheKey(id uint) string {
	return fmt.Sprintf("book:%d", id)
}

// ListBooks returns every book in insertion order.
func (s *bookService) ListBooks(ctx context.Context) ([]model.Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// CreateBook validates the input and stores a new, available book. The
// availability flag of the input is ignored on create.
func (s *bookService) CreateBook(ctx context.Context, in BookInput) (*model.Book, error) {
	if err := validateInput(s.validate, in); err != nil {
		return nil, err
	}
	available := true
	in.Available = &available

	book := &model.Book{}
	if err := applyBookInput(book, in); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}
	return book, nil
}

// GetBook retrieves a book by ID with caching.
func (s *bookService) GetBook(ctx context.Context, id uint) (*model.Book, error) {
	var cached model.Book
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	book, err := s.findBook(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.SetJSON(ctx, s.cacheKey(id), book)
	return book, nil
}

// UpdateBook overwrites every mapped field of an existing book. Fields
// absent from the input, availability included, become NULL.
func (s *bookService) UpdateBook(ctx context.Context, id uint, in BookInput) (*model.Book, error) {
	book, err := s.findBook(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateInput(s.validate, in); err != nil {
		return nil, err
	}
	if err := applyBookInput(book, in); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, book); err != nil {
		return nil, fmt.Errorf("update book %d: %w", id, err)
	}
	s.cache.Delete(ctx, s.cacheKey(id))
	return book, nil
}

// DeleteBook hard-deletes an existing book.
func (s *bookService) DeleteBook(ctx context.Context, id uint) error {
	if _, err := s.findBook(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return apperrors.ErrReferenced
		}
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

func (s *bookService) findBook(ctx context.Context, id uint) (*model.Book, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book %d: %w", id, err)
	}
	return book, nil
}

func applyBookInput(book *model.Book, in BookInput) error {
	published, err := parseDate("published_date", in.PublishedDate)
	if err != nil {
		return err
	}
	book.Title = *in.Title
	book.Author = *in.Author
	book.PublishedDate = published
	book.ISBN = in.ISBN
	book.Pages = in.Pages
	book.Available = in.Available
	return nil
}
