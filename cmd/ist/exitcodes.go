package main

import (
	"errors"

	"github.com/jhoicas/ist-rebalancer/internal/domain"
)

type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string {
	return e.err.Error()
}

func (e *cliError) Unwrap() error {
	return e.err
}

const (
	exitOK         = 0
	exitValidation = 2 // parámetros o planilla inválidos
	exitUsage      = 3
	exitIO         = 4
)

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &cliError{code: code, err: err}
}

// domainCode clasifica errores del caso de uso.
func domainCode(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrSchema),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrUnknownVariant),
		errors.Is(err, domain.ErrUnreadableInput):
		return withCode(exitValidation, err)
	}
	return withCode(exitIO, err)
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	return 1
}
