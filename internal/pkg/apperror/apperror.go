package apperror

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies a failure for user-facing mapping. Every external-call
// failure must be wrapped into one of these before crossing a component
// boundary; raw provider/store errors never leak upward.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidInput
	KindEmbeddingProvider
	KindNoDocumentsIngested
	KindNoRelevantContext
	KindStore
	KindGeneration
	KindRateLimited
)

type AppError struct {
	Kind    Kind
	Message string // user-facing
	Err     error  // underlying cause, logged but never returned to clients
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func InvalidInput(message string) *AppError {
	return &AppError{Kind: KindInvalidInput, Message: message}
}

func EmbeddingProvider(err error) *AppError {
	return &AppError{
		Kind:    KindEmbeddingProvider,
		Message: "Could not process your question. Please try rephrasing it.",
		Err:     err,
	}
}

func NoDocumentsIngested() *AppError {
	return &AppError{
		Kind:    KindNoDocumentsIngested,
		Message: "No documents found. Please upload a document first.",
	}
}

func NoRelevantContext() *AppError {
	return &AppError{
		Kind:    KindNoRelevantContext,
		Message: "No relevant information found in the documents.",
	}
}

func Store(err error) *AppError {
	return &AppError{
		Kind:    KindStore,
		Message: "Database error occurred. Please try again later.",
		Err:     err,
	}
}

func Generation(err error) *AppError {
	return &AppError{
		Kind:    KindGeneration,
		Message: "Failed to generate response. Please try again.",
		Err:     err,
	}
}

func RateLimited() *AppError {
	return &AppError{
		Kind:    KindRateLimited,
		Message: "Too many requests. Please wait before trying again.",
	}
}

// KindOf extracts the classification from any error in the chain.
// Unclassified errors report KindUnknown and map to a generic 500.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// HTTPStatus maps an error kind to its response status.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindInvalidInput, KindEmbeddingProvider:
		return fiber.StatusBadRequest
	case KindNoDocumentsIngested, KindNoRelevantContext:
		return fiber.StatusNotFound
	case KindRateLimited:
		return fiber.StatusTooManyRequests
	case KindStore, KindGeneration:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}

// UserMessage returns the client-safe message for an error, falling back to a
// generic one for unclassified failures.
func UserMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "An unexpected error occurred. Please try again later."
}
