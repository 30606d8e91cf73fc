package handler

import (
	"log/slog"
	"net/http"

	"rater/internal/delivery/http/response"
	"rater/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// StoreHandler holds dependencies for store-related handlers.
type StoreHandler struct {
	uc     usecase.StoreUsecase
	logger *slog.Logger
}

// NewStoreHandler is the constructor for StoreHandler, injected by Fx.
func NewStoreHandler(uc usecase.StoreUsecase, logger *slog.Logger) *StoreHandler {
	return &StoreHandler{
		uc:     uc,
		logger: logger,
	}
}

// pathUUID parses the named path parameter as a UUID.
func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.Wrapf(err, "invalid %s", name)
	}

	return id, nil
}

// ListStores returns every store with its derived rating aggregates.
func (h *StoreHandler) ListStores(c echo.Context) error {
	stores, err := h.uc.ListStoresWithRatings(c.Request().Context(), nil)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stores, "Stores retrieved")
}

// ListOwnStores returns the stores assigned to the authenticated owner.
func (h *StoreHandler) ListOwnStores(c echo.Context) error {
	actorID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Missing authenticated user")
	}

	stores, err := h.uc.ListStoresWithRatings(c.Request().Context(), &actorID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stores, "Owned stores retrieved")
}

// GetStore returns a single store with its derived rating aggregates.
func (h *StoreHandler) GetStore(c echo.Context) error {
	storeID, err := pathUUID(c, "id")
	if err != nil {
		return response.BindingError(c, "INVALID_STORE_ID", "Store id must be a valid UUID")
	}

	store, err := h.uc.GetStore(c.Request().Context(), storeID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, store, "Store retrieved")
}
