package repository

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// SchemaError reports a store file whose header row is missing required
// columns. Controllers surface it as a 400.
type SchemaError struct {
	Store   string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s is missing required columns: %s", e.Store, strings.Join(e.Missing, ", "))
}

// IOError reports a store file that could not be read or parsed. Controllers
// surface it as a 500.
type IOError struct {
	Store string
	Err   error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Store, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// StatusFor maps a store error to the HTTP status it should surface as.
func StatusFor(err error) int {
	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
