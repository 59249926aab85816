package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"libraryapi/internal/errors"
	"libraryapi/internal/model"
	"libraryapi/internal/service"
)

// MessageResponse is returned by every write endpoint.
type MessageResponse struct {
	Message string `json:"message"`
}

// BookRequest is the body of POST and PUT /books.
type BookRequest struct {
	Title         *string `json:"title" example:"Dune"`
	Author        *string `json:"author" example:"Frank Herbert"`
	PublishedDate *string `json:"published_date,omitempty" example:"1965-08-01"`
	ISBN          *string `json:"isbn,omitempty" example:"9780441013593"`
	Pages         *int    `json:"pages,omitempty" example:"412"`
	Available     *bool   `json:"available,omitempty"`
}

func (r BookRequest) toInput() service.BookInput {
	return service.BookInput{
		Title:         r.Title,
		Author:        r.Author,
		PublishedDate: r.PublishedDate,
		ISBN:          r.ISBN,
		Pages:         r.Pages,
		Available:     r.Available,
	}
}

// BookResponse is the JSON shape of a book. Absent optionals are null.
type BookResponse struct {
	ID            uint    `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	PublishedDate *string `json:"published_date"`
	ISBN          *string `json:"isbn"`
	Pages         *int    `json:"pages"`
	Available     *bool   `json:"available"`
}

func newBookResponse(b *model.Book) BookResponse {
	return BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		PublishedDate: service.FormatDate(b.PublishedDate),
		ISBN:          b.ISBN,
		Pages:         b.Pages,
		Available:     b.Available,
	}
}

// UserRequest is the body of POST and PUT /users.
type UserRequest struct {
	Name     *string `json:"name" example:"Ann Shelf"`
	Email    *string `json:"email" example:"ann@example.com"`
	Password *string `json:"password" example:"secret"`
}

func (r UserRequest) toInput() service.UserInput {
	return service.UserInput{Name: r.Name, Email: r.Email, Password: r.Password}
}

// UserResponse never carries the password.
type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func newUserResponse(u *model.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

// parseID reads a positive integer path id. Anything else is reported as
// the resource's not-found error, since no such route exists.
func parseID(c echo.Context, notFound error) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, notFound
	}
	return uint(id), nil
}

func errorResponse(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func invalidBody() error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: "invalid request body",
		Code:  "INVALID_REQUEST",
	})
}
