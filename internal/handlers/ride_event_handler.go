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

type RideEventHandler struct {
	rideEventService services.RideEventService
	policy           *permissions.Policy
	logger           *logger.Logger
}

func NewRideEventHandler(rideEventService services.RideEventService, policy *permissions.Policy, log *logger.Logger) *RideEventHandler {
	return &RideEventHandler{
		rideEventService: rideEventService,
		policy:           policy,
		logger:           log,
	}
}

// List returns events newest first, optionally scoped to one ride. Admin
// only.
// GET /api/v1/ride-events
func (h *RideEventHandler) List(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if !h.policy.Evaluate(principal, permissions.ActionList, nil).Allowed() {
		respondDenied(c, principal)
		return
	}

	var rideID *primitive.ObjectID
	if value := c.Query("ride_id"); value != "" {
		id, err := primitive.ObjectIDFromHex(value)
		if err != nil {
			utils.BadRequestResponse(c, "invalid ride_id filter")
			return
		}
		rideID = &id
	}

	params, err := utils.GetPaginationParams(c)
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	events, total, err := h.rideEventService.ListEvents(c.Request.Context(), rideID, params)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	if events == nil {
		events = []*models.RideEvent{}
	}

	meta := utils.CreatePaginationMeta(params, total)
	utils.PaginatedResponse(c, events, meta, nil)
}

// POST /api/v1/ride-events
func (h *RideEventHandler) Create(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if !h.policy.Evaluate(principal, permissions.ActionCreate, nil).Allowed() {
		respondDenied(c, principal)
		return
	}

	var req validators.RideEventCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	if errs := validators.ValidateRideEventCreate(&req); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	event, err := h.rideEventService.CreateEvent(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.CreatedResponse(c, "ride event created", event)
}
