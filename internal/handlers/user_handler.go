package handlers

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jerome2525/wingz-api/internal/middleware"
	"github.com/jerome2525/wingz-api/internal/models"
	"github.com/jerome2525/wingz-api/internal/permissions"
	"github.com/jerome2525/wingz-api/internal/services"
	"github.com/jerome2525/wingz-api/internal/utils"
	"github.com/jerome2525/wingz-api/internal/validators"
	"github.com/jerome2525/wingz-api/pkg/logger"
)

type UserHandler struct {
	userService services.UserService
	policy      *permissions.Policy
	logger      *logger.Logger
}

func NewUserHandler(userService services.UserService, policy *permissions.Policy, log *logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		policy:      policy,
		logger:      log,
	}
}

// Register creates an account. This is the open onboarding endpoint; no
// principal is required.
// POST /api/v1/users
func (h *UserHandler) Register(c *gin.Context) {
	if principal := middleware.GetPrincipal(c); principal == nil {
		if !h.policy.Evaluate(nil, permissions.ActionCreate, nil).Allowed() {
			utils.UnauthorizedResponse(c)
			return
		}
	}

	var req validators.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	if errs := validators.ValidateUserCreate(&req); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	user, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.CreatedResponse(c, "user registered", user)
}

// List returns users, optionally filtered by role. Admin only.
// GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	h.listWithRole(c, roleFromQuery(c))
}

// ListDrivers is the driver directory shortcut.
// GET /api/v1/users/drivers
func (h *UserHandler) ListDrivers(c *gin.Context) {
	role := models.RoleDriver
	h.listWithRole(c, &role)
}

// ListRiders is the rider directory shortcut.
// GET /api/v1/users/riders
func (h *UserHandler) ListRiders(c *gin.Context) {
	role := models.RoleRider
	h.listWithRole(c, &role)
}

func (h *UserHandler) listWithRole(c *gin.Context, role *models.Role) {
	principal := middleware.GetPrincipal(c)
	if !h.policy.Evaluate(principal, permissions.ActionList, nil).Allowed() {
		respondDenied(c, principal)
		return
	}

	if role != nil && !models.IsValidRole(*role) {
		utils.BadRequestResponse(c, "invalid role filter")
		return
	}

	params, err := utils.GetUserPaginationParams(c)
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	users, total, err := h.userService.ListUsers(c.Request.Context(), role, params)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	if users == nil {
		users = []*models.User{}
	}

	meta := utils.CreatePaginationMeta(params, total)
	utils.PaginatedResponse(c, users, meta, nil)
}

// Get returns one user. Admins may fetch anyone; everyone else only
// themselves.
// GET /api/v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		utils.UnauthorizedResponse(c)
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid user id")
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	if !h.policy.Evaluate(principal, permissions.ActionRetrieve, user).Allowed() {
		utils.ForbiddenResponse(c)
		return
	}

	utils.SuccessResponse(c, "", user)
}

// PUT /api/v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		utils.UnauthorizedResponse(c)
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid user id")
		return
	}

	current, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	if !h.policy.Evaluate(principal, permissions.ActionUpdate, current).Allowed() {
		utils.ForbiddenResponse(c)
		return
	}

	var req validators.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	if errs := validators.ValidateUserUpdate(&req); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	// Only admins may change a user's role.
	if req.Role != "" && principal.Role != models.RoleAdmin {
		utils.ForbiddenResponse(c)
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "user updated", user)
}

// DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		utils.UnauthorizedResponse(c)
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid user id")
		return
	}

	current, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	if !h.policy.Evaluate(principal, permissions.ActionDelete, current).Allowed() {
		utils.ForbiddenResponse(c)
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.NoContentResponse(c)
}

func roleFromQuery(c *gin.Context) *models.Role {
	value := c.Query("role")
	if value == "" {
		return nil
	}
	role := models.Role(value)
	return &role
}
