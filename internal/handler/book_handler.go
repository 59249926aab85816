package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"libraryapi/internal/errors"
	"libraryapi/internal/service"
)

// BookHandler handles book endpoints.
type BookHandler struct {
	bookService service.BookService
}

// NewBookHandler creates a new book handler.
func NewBookHandler(bookService service.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// ListBooks godoc
// @Summary List books
// @Tags books
// @Produce json
// @Success 200 {array} BookResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /books [get]
func (h *BookHandler) ListBooks(c echo.Context) error {
	books, err := h.bookService.ListBooks(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}

	resp := make([]BookResponse, 0, len(books))
	for i := range books {
		resp = append(resp, newBookResponse(&books[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// CreateBook godoc
// @Summary Add a book
// @Description The new book is always available. The Location header carries its URL.
// @Tags books
// @Accept json
// @Produce json
// @Param request body BookRequest true "Book data"
// @Success 201 {object} MessageResponse
// @Header 201 {string} Location "/books/{id}"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /books [post]
func (h *BookHandler) CreateBook(c echo.Context) error {
	var req BookRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	book, err := h.bookService.CreateBook(c.Request().Context(), req.toInput())
	if err != nil {
		return errorResponse(c, err)
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/books/%d", book.ID))
	return c.JSON(http.StatusCreated, MessageResponse{Message: "Book added!"})
}

// GetBook godoc
// @Summary Get book by id
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} BookResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /books/{id} [get]
func (h *BookHandler) GetBook(c echo.Context) error {
	id, err := parseID(c, errors.ErrBookNotFound)
	if err != nil {
		return errorResponse(c, err)
	}

	book, err := h.bookService.GetBook(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, newBookResponse(book))
}

// UpdateBook godoc
// @Summary Replace a book
// @Description Every field is overwritten. Omitting available stores null.
// @Tags books
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Param request body BookRequest true "Book data"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /books/{id} [put]
func (h *BookHandler) UpdateBook(c echo.Context) error {
	id, err := parseID(c, errors.ErrBookNotFound)
	if err != nil {
		return errorResponse(c, err)
	}

	var req BookRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}

	if _, err := h.bookService.UpdateBook(c.Request().Context(), id, req.toInput()); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Book updated!"})
}

// DeleteBook godoc
// @Summary Delete a book
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /books/{id} [delete]
func (h *BookHandler) DeleteBook(c echo.Context) error {
	id, err := parseID(c, errors.ErrBookNotFound)
	if err != nil {
		return errorResponse(c, err)
	}

	if err := h.bookService.DeleteBook(c.Request().Context(), id); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Book deleted!"})
}
