package flight

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripsmith/pkg/apperr"
)

type SelectionRequest struct {
	Destination string `json:"destination" binding:"required"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	GroupID     string `json:"group_id,omitempty"`
	CabinID     string `json:"cabin_id,omitempty"`
}

type FlightHandler struct {
	service    *Service
	selections *SelectionStore
}

func NewFlightHandler(service *Service, selections *SelectionStore) *FlightHandler {
	return &FlightHandler{
		service:    service,
		selections: selections,
	}
}

func (h *FlightHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/flights/groups", h.GroupedOffersHandler)
	group.GET("/flights/selection", h.GetSelectionHandler)
	group.POST("/flights/selection/expand", h.ExpandHandler)
	group.POST("/flights/selection/select", h.SelectHandler)
	group.POST("/flights/selection/confirm", h.ConfirmHandler)
}

// GroupedOffersHandler godoc
// @Summary      Group flight offers by carrier, route and schedule
// @Description  Returns cabin variants per flight with lowest price, lowest emissions and carbon credits
// @Tags         flights
// @Accept       json
// @Produce      json
// @Param        request body GroupRequest true "Search and sort criteria"
// @Success      200 {object} GroupedOffersResponse
// @Failure      400 {object} map[string]string
// @Router       /v1/flights/groups [post]
func (h *FlightHandler) GroupedOffersHandler(c *gin.Context) {
	var req GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid JSON body",
			"code":  apperr.ErrorCodeValidation,
		})
		return
	}

	response, err := h.service.GroupedOffers(c.Request.Context(), req)
	if err != nil {
		apperr.Send(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *FlightHandler) GetSelectionHandler(c *gin.Context) {
	key := ItineraryKey(c.Query("destination"), c.Query("start_date"), c.Query("end_date"))

	state, err := h.selections.Load(c.Request.Context(), userID(c), key)
	if err != nil {
		apperr.Send(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *FlightHandler) ExpandHandler(c *gin.Context) {
	h.mutateSelection(c, func(req SelectionRequest, state *SelectionState) {
		state.ToggleExpand(req.GroupID)
	})
}

func (h *FlightHandler) SelectHandler(c *gin.Context) {
	h.mutateSelection(c, func(req SelectionRequest, state *SelectionState) {
		state.Select(req.CabinID)
	})
}

func (h *FlightHandler) ConfirmHandler(c *gin.Context) {
	h.mutateSelection(c, func(req SelectionRequest, state *SelectionState) {
		state.Confirm()
	})
}

func (h *FlightHandler) mutateSelection(c *gin.Context, apply func(SelectionRequest, *SelectionState)) {
	var req SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid JSON body",
			"code":  apperr.ErrorCodeValidation,
		})
		return
	}

	key := ItineraryKey(req.Destination, req.StartDate, req.EndDate)
	state, err := h.selections.Mutate(c.Request.Context(), userID(c), key, func(s *SelectionState) {
		apply(req, s)
	})
	if err != nil {
		apperr.Send(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

func userID(c *gin.Context) string {
	if id := c.GetString("user_id"); id != "" {
		return id
	}
	return "anonymous"
}
