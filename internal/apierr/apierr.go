// Package apierr carries the error taxonomy surfaced at the HTTP boundary.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeInvalidFilterValue        = "invalid_filter_value"
	CodeInvalidPagination         = "invalid_pagination"
	CodeStoreUnavailable          = "store_unavailable"
	CodeStoreConstraintViolation  = "store_constraint_violation"
	CodeRecommendationUnavailable = "recommendation_unavailable"
	CodeUnauthorized              = "unauthorized"
	CodeNotFound                  = "not_found"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func InvalidFilterValue(err error) *Error {
	return New(http.StatusBadRequest, CodeInvalidFilterValue, err)
}

func InvalidPagination(err error) *Error {
	return New(http.StatusBadRequest, CodeInvalidPagination, err)
}

func StoreUnavailable(err error) *Error {
	return New(http.StatusServiceUnavailable, CodeStoreUnavailable, err)
}

func StoreConstraintViolation(err error) *Error {
	return New(http.StatusConflict, CodeStoreConstraintViolation, err)
}

func RecommendationUnavailable(err error) *Error {
	return New(http.StatusBadGateway, CodeRecommendationUnavailable, err)
}

func Unauthorized(err error) *Error {
	return New(http.StatusUnauthorized, CodeUnauthorized, err)
}

func NotFound(err error) *Error {
	return New(http.StatusNotFound, CodeNotFound, err)
}

// From extracts an *Error from an error chain, or nil.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

// Is reports whether err carries the given taxonomy code.
func Is(err error, code string) bool {
	if e := From(err); e != nil {
		return e.Code == code
	}
	return false
}
