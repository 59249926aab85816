package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"

	apperrors "libraryapi/internal/errors"
	"libraryapi/internal/service"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Result summarises a seeding run.
type Result struct {
	Created int
	Skipped int
}

// LoadCatalogue reads a JSON array of books from a file path or an
// http(s) URL.
func LoadCatalogue(ctx context.Context, source string) ([]service.BookInput, error) {
	var (
		body []byte
		err  error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		body, err = fetch(ctx, source)
	} else {
		body, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, err
	}

	var entries []service.BookInput
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return entries, nil
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalogue: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalogue returned status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// Books creates every entry through the book service. Entries rejected by
// validation are logged and skipped; any other error stops the run.
func Books(ctx context.Context, svc service.BookService, entries []service.BookInput) (Result, error) {
	var res Result
	for i, entry := range entries {
		if _, err := svc.CreateBook(ctx, entry); err != nil {
			var missing *apperrors.MissingFieldError
			if errors.As(err, &missing) || errors.Is(err, apperrors.ErrInvalidField) {
				log.Printf("Skipping catalogue entry %d: %v", i, err)
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("create entry %d: %w", i, err)
		}
		res.Created++
	}
	return res, nil
}
