package handler

import (
	"log/slog"
	"net/http"

	"rater/internal/delivery/http/response"
	"rater/internal/domain/entity"
	"rater/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminHandler holds dependencies for the administration endpoints.
type AdminHandler struct {
	authUC    usecase.AuthUsecase
	profileUC usecase.ProfileUsecase
	storeUC   usecase.StoreUsecase
	logger    *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(
	authUC usecase.AuthUsecase,
	profileUC usecase.ProfileUsecase,
	storeUC usecase.StoreUsecase,
	logger *slog.Logger,
) *AdminHandler {
	return &AdminHandler{
		authUC:    authUC,
		profileUC: profileUC,
		storeUC:   storeUC,
		logger:    logger,
	}
}

type createUserRequest struct {
	Name     string `json:"name" validate:"required,min=20,max=60"`
	Email    string `json:"email" validate:"required,email"`
	Address  string `json:"address" validate:"max=400"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=admin store_owner user"`
}

// CreateUser registers an account with an explicit role.
func (h *AdminHandler) CreateUser(c echo.Context) error {
	actorID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Missing authenticated user")
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.authUC.CreateUserWithRole(c.Request().Context(), actorID, &usecase.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Address:  req.Address,
		Password: req.Password,
		Role:     entity.Role(req.Role),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output.User, "User created successfully")
}

// ListUsers returns every profile.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	profiles, err := h.profileUC.ListProfiles(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profiles, "Users retrieved")
}

type assignRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin store_owner user"`
}

// AssignRole changes a user's role. Promoting to store owner links any store
// whose contact email matches the user; demoting releases owned stores.
func (h *AdminHandler) AssignRole(c echo.Context) error {
	actorID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Missing authenticated user")
	}

	userID, err := pathUUID(c, "id")
	if err != nil {
		return response.BindingError(c, "INVALID_USER_ID", "User id must be a valid UUID")
	}

	var req assignRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid role input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if err := h.profileUC.AssignRole(c.Request().Context(), actorID, userID, entity.Role(req.Role)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Role assigned"}, "Role assigned successfully")
}

// CreateStore registers a store.
func (h *AdminHandler) CreateStore(c echo.Context) error {
	actorID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Missing authenticated user")
	}

	var input *usecase.CreateStoreInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid store input")
	}

	if err := c.Validate(input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	store, err := h.storeUC.CreateStore(c.Request().Context(), actorID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, store, "Store created successfully")
}

// UpdateStore modifies a store.
func (h *AdminHandler) UpdateStore(c echo.Context) error {
	actorID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Missing authenticated user")
	}

	storeID, err := pathUUID(c, "id")
	if err != nil {
		return response.BindingError(c, "INVALID_STORE_ID", "Store id must be a valid UUID")
	}

	var input *usecase.UpdateStoreInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid store input")
	}

	if err := c.Validate(input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if err := h.storeUC.UpdateStore(c.Request().Context(), actorID, storeID, input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Store updated"}, "Store updated successfully")
}

// DeleteStore removes a store and its ratings.
func (h *AdminHandler) DeleteStore(c echo.Context) error {
	actorID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Missing authenticated user")
	}

	storeID, err := pathUUID(c, "id")
	if err != nil {
		return response.BindingError(c, "INVALID_STORE_ID", "Store id must be a valid UUID")
	}

	if err := h.storeUC.DeleteStore(c.Request().Context(), actorID, storeID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Store deleted"}, "Store deleted successfully")
}
