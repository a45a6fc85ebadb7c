package web

import (
	"context"
	"errors"
	"net/http"

	"kaitori/internal/adapters/http/middleware"
	"kaitori/internal/application/orchestrators"
	"kaitori/internal/domain/area"
	"kaitori/internal/domain/blackout"
	"kaitori/internal/domain/calendar"
	"kaitori/internal/domain/reservation"
)

// Request-level errors raised by handlers.
var (
	ErrMalformedJSON = errors.New("リクエストの形式が正しくありません")
	ErrTimeout       = errors.New("リクエストがタイムアウトしました")
	ErrCancelled     = errors.New("リクエストがキャンセルされました")
)

// HTTPErrorInfo contains the HTTP status code and message for an error.
type HTTPErrorInfo struct {
	Status  int
	Message string
}

// ErrorMapping represents a single error to HTTP status/message mapping.
type ErrorMapping struct {
	Error   error
	Status  int
	Message string
}

// ErrorMapper maps domain errors to HTTP status codes and messages.
type ErrorMapper struct {
	mappings       []ErrorMapping
	defaultStatus  int
	defaultMessage string
}

// NewErrorMapper creates an ErrorMapper whose fallback is a generic 500.
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{
		defaultStatus:  http.StatusInternalServerError,
		defaultMessage: middleware.MessageServerError,
	}
}

// WithMapping adds an error mapping to the mapper.
func (m *ErrorMapper) WithMapping(err error, status int, message string) *ErrorMapper {
	m.mappings = append(m.mappings, ErrorMapping{Error: err, Status: status, Message: message})
	return m
}

// WithSentinels maps each sentinel to status, using the sentinel's own text as the message.
func (m *ErrorMapper) WithSentinels(status int, errs ...error) *ErrorMapper {
	for _, err := range errs {
		m.WithMapping(err, status, err.Error())
	}
	return m
}

// Map converts an error to HTTP status and message.
// Wrapped sentinels still report the sentinel's message, never the wrap chain.
func (m *ErrorMapper) Map(err error) HTTPErrorInfo {
	if err == nil {
		return HTTPErrorInfo{Status: http.StatusOK}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return HTTPErrorInfo{Status: http.StatusGatewayTimeout, Message: ErrTimeout.Error()}
	}
	if errors.Is(err, context.Canceled) {
		return HTTPErrorInfo{Status: http.StatusServiceUnavailable, Message: ErrCancelled.Error()}
	}
	for _, mapping := range m.mappings {
		if errors.Is(err, mapping.Error) {
			return HTTPErrorInfo{Status: mapping.Status, Message: mapping.Message}
		}
	}
	return HTTPErrorInfo{Status: m.defaultStatus, Message: m.defaultMessage}
}

// apiErrors is the mapping shared by every handler.
var apiErrors = NewErrorMapper().
	WithSentinels(http.StatusBadRequest,
		ErrMalformedJSON,
		reservation.ErrMissingFields,
		reservation.ErrInvalidDate,
		reservation.ErrInvalidSlot,
		reservation.ErrInvalidLogistics,
		reservation.ErrPastDate,
		area.ErrOutsideArea,
		reservation.ErrDateUnavailable,
		reservation.ErrSlotFull,
		reservation.ErrDayFull,
		reservation.ErrInvalidStatus,
		blackout.ErrEmptyDate,
		blackout.ErrInvalidDate,
		calendar.ErrMissingMonth,
		calendar.ErrInvalidMonth,
		calendar.ErrInvalidRange,
	).
	WithSentinels(http.StatusNotFound, reservation.ErrNotFound).
	WithSentinels(http.StatusUnauthorized, orchestrators.ErrInvalidCredentials)
