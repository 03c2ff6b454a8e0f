package handler

import (
	"errors"
	"net/http"

	"storefront-service/internal/event"
	"storefront-service/internal/service"
	"storefront-service/pkg/config"
	"storefront-service/pkg/storage"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var (
	imageStore      *storage.ImageStore
	eventBus        *event.Bus
	defaultPageSize = 10
)

// Init wires handler-level collaborators before routes are served
func Init(cfg *config.Config, store *storage.ImageStore, bus *event.Bus) {
	imageStore = store
	eventBus = bus
	if cfg.Store.PageSize > 0 {
		defaultPageSize = cfg.Store.PageSize
	}
}

// Validator adapts go-playground/validator to echo's Validator interface
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates the request validator
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate implements echo.Validator
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// bindAndValidate decodes the request body and runs struct validation
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return service.NewValidationError("body", "invalid request data")
	}
	if err := c.Validate(req); err != nil {
		verr := service.NewValidationError("body", "validation failed")
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			verr = &service.ValidationError{Fields: map[string][]string{}}
			for _, fe := range fieldErrors {
				verr.Add(fe.Field(), "failed on the '"+fe.Tag()+"' rule")
			}
		}
		return verr
	}
	return nil
}

// writeServiceError maps service-layer failures onto the HTTP error
// taxonomy: validation 400, not-found 404, conflict 409, the rest 500
func writeServiceError(c echo.Context, log *zap.Logger, err error) error {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": verr.Fields})
	}

	var inventoryErr *service.InsufficientInventoryError
	if errors.As(err, &inventoryErr) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": inventoryErr.Error(),
			"items": inventoryErr.Items,
		})
	}

	var conflict *service.ConflictError
	if errors.As(err, &conflict) {
		return c.JSON(http.StatusConflict, echo.Map{"error": conflict.Message})
	}

	if errors.Is(err, service.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}

	log.Error("Request failed", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
