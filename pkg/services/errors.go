// Package services holds the application services between the HTTP layer
// and the engine, analyzer, and persistence.
package services

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks validation failures so the web layer can map them
// to a 400 response.
var ErrInvalidInput = errors.New("invalid input")

func invalidInput(err error) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
}
