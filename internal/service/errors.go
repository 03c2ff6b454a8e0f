package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound signals a missing resource id
var ErrNotFound = errors.New("not found")

// ValidationError reports malformed input, keyed by field
type ValidationError struct {
	Fields map[string][]string `json:"fields"`
}

// NewValidationError creates a validation error for a single field
func NewValidationError(field, message string) *ValidationError {
	e := &ValidationError{Fields: map[string][]string{}}
	e.Add(field, message)
	return e
}

// Add appends a message for a field
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.Fields[field], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// ConflictError reports a deletion blocked by a referential guard
type ConflictError struct {
	Message string `json:"message"`
}

func (e *ConflictError) Error() string {
	return e.Message
}

// Shortfall describes one cart item that asked for more than is in stock
type Shortfall struct {
	ProductID    uint   `json:"product_id"`
	ProductTitle string `json:"product_title"`
	Requested    int    `json:"requested"`
	Available    int    `json:"available"`
	Missing      int    `json:"missing"`
}

// InsufficientInventoryError lists every cart item that failed the
// inventory check during order placement
type InsufficientInventoryError struct {
	Items []Shortfall `json:"items"`
}

func (e *InsufficientInventoryError) Error() string {
	parts := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		parts = append(parts, fmt.Sprintf("%s(%d)", item.ProductTitle, item.Missing))
	}
	return "insufficient inventory: " + strings.Join(parts, ", ")
}
