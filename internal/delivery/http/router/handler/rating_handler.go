package handler

import (
	"log/slog"
	"net/http"

	"rater/internal/delivery/http/response"
	"rater/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RatingHandler holds dependencies for rating-related handlers.
type RatingHandler struct {
	uc     usecase.RatingUsecase
	logger *slog.Logger
}

// NewRatingHandler is the constructor for RatingHandler, injected by Fx.
func NewRatingHandler(uc usecase.RatingUsecase, logger *slog.Logger) *RatingHandler {
	return &RatingHandler{
		uc:     uc,
		logger: logger,
	}
}

type rateStoreRequest struct {
	Score int `json:"score" validate:"required,min=1,max=5"`
}

// RateStore submits or overwrites the caller's rating for a store and
// returns the store's fresh aggregates.
func (h *RatingHandler) RateStore(c echo.Context) error {
	actorID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Missing authenticated user")
	}

	storeID, err := pathUUID(c, "id")
	if err != nil {
		return response.BindingError(c, "INVALID_STORE_ID", "Store id must be a valid UUID")
	}

	var req rateStoreRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid rating input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	store, err := h.uc.RateStore(c.Request().Context(), actorID, &usecase.RateStoreInput{
		StoreID: storeID,
		Score:   req.Score,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, store, "Rating submitted")
}

// GetOwnRating returns the caller's rating for a store. A store the caller
// has not rated yields a success response with null data.
func (h *RatingHandler) GetOwnRating(c echo.Context) error {
	actorID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Missing authenticated user")
	}

	storeID, err := pathUUID(c, "id")
	if err != nil {
		return response.BindingError(c, "INVALID_STORE_ID", "Store id must be a valid UUID")
	}

	rating, err := h.uc.GetOwnRating(c.Request().Context(), actorID, storeID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, rating, "Rating retrieved")
}

// ListStoreRatings returns every rating for a store joined with rater
// details. The usecase enforces that only admins and the assigned owner
// may read them.
func (h *RatingHandler) ListStoreRatings(c echo.Context) error {
	actorID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Missing authenticated user")
	}

	storeID, err := pathUUID(c, "id")
	if err != nil {
		return response.BindingError(c, "INVALID_STORE_ID", "Store id must be a valid UUID")
	}

	ratings, err := h.uc.ListStoreRatings(c.Request().Context(), actorID, storeID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, ratings, "Store ratings retrieved")
}
