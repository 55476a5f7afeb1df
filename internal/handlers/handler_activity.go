package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/erp_ledger/internal/core/ports/services"
	"github.com/SscSPs/erp_ledger/internal/dto"
)

type activityHandler struct {
	activityService portssvc.ActivityLogSvcFacade
}

func registerActivityRoutes(rg *gin.RouterGroup, activityService portssvc.ActivityLogSvcFacade) {
	h := &activityHandler{activityService: activityService}

	activities := rg.Group("/activities")
	{
		activities.GET("", h.listActivities)
		activities.GET("/summary", h.getSummary)
		activities.GET("/:id", h.getActivity)
	}
}

// listActivities godoc
// @Summary List activity log records
// @Description Newest first. Dates are inclusive.
// @Tags activities
// @Produce json
// @Param userID query string false "Only records by this user"
// @Param entityType query string false "Account, JournalEntry or User"
// @Param action query string false "CREATE, UPDATE, DELETE or LOGIN"
// @Param from query string false "Earliest date (YYYY-MM-DD)"
// @Param to query string false "Latest date (YYYY-MM-DD)"
// @Param search query string false "Text to search for"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Records to skip" default(0)
// @Success 200 {object} dto.ListActivitiesResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 500 {object} ErrorResponse "Failed to list activities"
// @Security BearerAuth
// @Router /activities [get]
func (h *activityHandler) listActivities(c *gin.Context) {
	var params dto.ListActivitiesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, "query parameters", err)
		return
	}
	filter, err := params.ToActivityFilter()
	if err != nil {
		respondWithError(c, err, "Invalid query parameters")
		return
	}

	activities, err := h.activityService.ListActivities(c.Request.Context(), filter)
	if err != nil {
		respondWithError(c, err, "Failed to list activities")
		return
	}
	c.JSON(http.StatusOK, dto.ListActivitiesResponse{Activities: activities})
}

// getSummary godoc
// @Summary Summarize the activity log
// @Description Totals, the last 24 hours, counts by action and entity type, the most active user and the 5 newest records.
// @Tags activities
// @Produce json
// @Success 200 {object} domain.ActivitySummary
// @Failure 500 {object} ErrorResponse "Failed to summarize activities"
// @Security BearerAuth
// @Router /activities/summary [get]
func (h *activityHandler) getSummary(c *gin.Context) {
	summary, err := h.activityService.Summary(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Failed to summarize activities")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getActivity godoc
// @Summary Get an activity log record
// @Tags activities
// @Produce json
// @Param id path int true "Activity ID"
// @Success 200 {object} domain.ActivityLog
// @Failure 400 {object} ErrorResponse "Invalid activity ID"
// @Failure 404 {object} ErrorResponse "Activity not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve activity"
// @Security BearerAuth
// @Router /activities/{id} [get]
func (h *activityHandler) getActivity(c *gin.Context) {
	activityID, ok := intParam(c, "id")
	if !ok {
		return
	}

	activity, err := h.activityService.GetActivityByID(c.Request.Context(), activityID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve activity")
		return
	}
	c.JSON(http.StatusOK, activity)
}
