package middleware

import (
	"errors"

	"ayunova/internal/delivery/http/dto"
	"ayunova/internal/pkg/jwt"
	"ayunova/internal/pkg/response"
	"ayunova/internal/session"
	"ayunova/internal/usecase"
	useruc "ayunova/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type AppError struct {
	StatusCode int
	Message    string
	Data       any
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, data any, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

type ErrorMiddleware struct {
	logger *zap.Logger
}

func NewErrorMiddleware(logger *zap.Logger) *ErrorMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorMiddleware{logger: logger}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Error("panic recovered", zap.Any("panic", r), zap.String("path", c.Path()))
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		status, msg, data := normalizeError(err)
		if status >= 500 {
			m.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		}
		return response.Error(c, status, msg, data)
	}
}

func normalizeError(err error) (int, string, any) {
	if err == nil {
		return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.StatusCode <= 0 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}

		status := appErr.StatusCode
		msg := appErr.Message
		if msg == "" {
			msg = response.DefaultMessage(status)
		}

		if status >= 500 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}
		return status, msg, appErr.Data
	}

	if status, msg, data, ok := domainError(err); ok {
		return status, msg, data
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		if status <= 0 {
			status = fiber.StatusInternalServerError
		}

		if status >= 500 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}

		msg := fiberErr.Message
		if msg == "" {
			msg = response.DefaultMessage(status)
		}
		return status, msg, nil
	}

	return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
}

// domainError answers the sentinel errors handlers return as they are.
// Order matters: a failed sign-out of an anonymous caller wraps both
// usecase.ErrSignOutFailed and session.ErrNoSession.
func domainError(err error) (int, string, any, bool) {
	failed := dto.SignOutResponse{Notification: usecase.SignOutFailedNotification}

	switch {
	case errors.Is(err, usecase.ErrSignOutFailed) && errors.Is(err, session.ErrNoSession):
		return fiber.StatusUnauthorized, failed.Notification.Description, failed, true
	case errors.Is(err, usecase.ErrSignOutFailed):
		return fiber.StatusInternalServerError, failed.Notification.Description, failed, true
	case errors.Is(err, session.ErrRevoked), errors.Is(err, usecase.ErrSessionRevoked):
		return fiber.StatusUnauthorized, "Session revoked", nil, true
	case errors.Is(err, usecase.ErrRefreshTokenExpired):
		return fiber.StatusUnauthorized, "Refresh token expired", nil, true
	case errors.Is(err, jwt.ErrTokenExpired):
		return fiber.StatusUnauthorized, "Token expired", nil, true
	case errors.Is(err, usecase.ErrInvalidRefreshToken):
		return fiber.StatusUnauthorized, "Invalid refresh token", nil, true
	case errors.Is(err, session.ErrInvalidToken):
		return fiber.StatusUnauthorized, "Invalid token", nil, true
	case errors.Is(err, session.ErrNoSession), errors.Is(err, usecase.ErrUnauthorized):
		return fiber.StatusUnauthorized, "Unauthorized", nil, true
	case errors.Is(err, useruc.ErrNotFound):
		return fiber.StatusNotFound, "User not found", nil, true
	}
	return 0, "", nil, false
}
