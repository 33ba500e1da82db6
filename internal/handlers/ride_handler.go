package handlers

import (
	"time"

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

type RideHandler struct {
	rideService services.RideService
	policy      *permissions.Policy
	logger      *logger.Logger
}

func NewRideHandler(rideService services.RideService, policy *permissions.Policy, log *logger.Logger) *RideHandler {
	return &RideHandler{
		rideService: rideService,
		policy:      policy,
		logger:      log,
	}
}

// rideResponse is one listing row on the wire: the ride's own fields plus
// the embedded rider, driver, event history, today's events, and the
// distance annotation (null without query coordinates).
type rideResponse struct {
	*models.Ride
	Rider            *models.User        `json:"rider"`
	Driver           *models.User        `json:"driver"`
	Events           []*models.RideEvent `json:"events"`
	TodaysRideEvents []*models.RideEvent `json:"todays_ride_events"`
	DistanceToPickup *float64            `json:"distance_to_pickup"`
}

func newRideResponse(detail *services.RideDetail) *rideResponse {
	events := detail.Events
	if events == nil {
		events = []*models.RideEvent{}
	}
	todays := detail.TodaysEvents
	if todays == nil {
		todays = []*models.RideEvent{}
	}
	return &rideResponse{
		Ride:             detail.Ride,
		Rider:            detail.Rider,
		Driver:           detail.Driver,
		Events:           events,
		TodaysRideEvents: todays,
		DistanceToPickup: detail.DistanceToPickup,
	}
}

// List runs the ride listing pipeline: compile the filter, gate on the
// policy, plan and execute the query, then wrap the page in the collection
// envelope.
// GET /api/v1/rides
func (h *RideHandler) List(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if !h.policy.Evaluate(principal, permissions.ActionList, nil).Allowed() {
		respondDenied(c, principal)
		return
	}

	params := validators.RideFilterParamsFromQuery(c)
	filter, errs := validators.CompileRideFilter(params)
	if len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	start := time.Now()
	result, err := h.rideService.ListRides(c.Request.Context(), filter)
	if err != nil {
		if dtl, ok := services.AsDatasetTooLarge(err); ok {
			utils.DatasetTooLargeResponse(c, dtl.Count, int64(dtl.Limit))
			return
		}
		respondServiceError(c, h.logger, err)
		return
	}
	elapsed := time.Since(start)

	results := make([]*rideResponse, 0, len(result.Rides))
	for _, detail := range result.Rides {
		results = append(results, newRideResponse(detail))
	}

	pageParams := &utils.PaginationParams{Page: filter.Page, PageSize: filter.PageSize}
	meta := utils.CreatePaginationMeta(pageParams, result.Total)
	metadata := &utils.ListMetadata{
		QueryTimeSeconds: elapsed.Seconds(),
		TotalResults:     result.Total,
		FiltersApplied:   filter.Applied(),
		Timestamp:        time.Now(),
	}

	h.logger.LogListingQuery("rides", string(principal.Role), filter.Applied(), result.Total, len(results), elapsed)

	utils.PaginatedResponse(c, results, meta, metadata)
}

// Get returns a single ride with its embedded relations. Riders and drivers
// may fetch only their own rides.
// GET /api/v1/rides/:id
func (h *RideHandler) Get(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		utils.UnauthorizedResponse(c)
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid ride id")
		return
	}

	detail, err := h.rideService.GetRide(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	if !h.policy.Evaluate(principal, permissions.ActionRetrieve, detail.Ride).Allowed() {
		utils.ForbiddenResponse(c)
		return
	}

	utils.SuccessResponse(c, "", newRideResponse(detail))
}

// POST /api/v1/rides
func (h *RideHandler) Create(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if !h.policy.Evaluate(principal, permissions.ActionCreate, nil).Allowed() {
		respondDenied(c, principal)
		return
	}

	var req validators.RideCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	if errs := validators.ValidateRideCreate(&req); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	ride, err := h.rideService.CreateRide(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.CreatedResponse(c, "ride created", ride)
}

// PUT /api/v1/rides/:id
func (h *RideHandler) Update(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if !h.policy.Evaluate(principal, permissions.ActionUpdate, nil).Allowed() {
		respondDenied(c, principal)
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid ride id")
		return
	}

	var req validators.RideUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	if errs := validators.ValidateRideUpdate(&req); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	ride, err := h.rideService.UpdateRide(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "ride updated", ride)
}

// DELETE /api/v1/rides/:id
func (h *RideHandler) Delete(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if !h.policy.Evaluate(principal, permissions.ActionDelete, nil).Allowed() {
		respondDenied(c, principal)
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid ride id")
		return
	}

	if err := h.rideService.DeleteRide(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.NoContentResponse(c)
}
