package itinerary

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripsmith/pkg/apperr"
)

type ItineraryHandler struct {
	service *Service
}

func NewItineraryHandler(service *Service) *ItineraryHandler {
	return &ItineraryHandler{service: service}
}

func (h *ItineraryHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/itineraries/plan", h.PlanHandler)
	group.GET("/itineraries/:id", h.GetPlanHandler)
	group.GET("/itineraries/:id/pdf", h.ExportPDFHandler)
}

// PlanHandler godoc
// @Summary      Generate a full trip plan
// @Description  Fetches weather, flight groups, lodging and POIs and assembles a day-by-day itinerary with budget split and sustainability score
// @Tags         itineraries
// @Accept       json
// @Produce      json
// @Param        request body TripPlanRequest true "Trip parameters"
// @Success      200 {object} TripPlanResponse
// @Failure      400 {object} map[string]string
// @Failure      504 {object} map[string]string
// @Router       /v1/itineraries/plan [post]
func (h *ItineraryHandler) PlanHandler(c *gin.Context) {
	var req TripPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid JSON body",
			"code":  apperr.ErrorCodeValidation,
		})
		return
	}

	plan, err := h.service.BuildPlan(c.Request.Context(), req)
	if err != nil {
		apperr.Send(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *ItineraryHandler) GetPlanHandler(c *gin.Context) {
	plan, err := h.service.GetPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperr.Send(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// ExportPDFHandler godoc
// @Summary      Export a trip plan as PDF
// @Tags         itineraries
// @Produce      application/pdf
// @Param        id path string true "Plan ID"
// @Success      200 {file} binary
// @Failure      404 {object} map[string]string
// @Router       /v1/itineraries/{id}/pdf [get]
func (h *ItineraryHandler) ExportPDFHandler(c *gin.Context) {
	plan, err := h.service.GetPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperr.Send(c, err)
		return
	}

	payload, err := RenderPlanPDF(plan)
	if err != nil {
		apperr.Send(c, err)
		return
	}

	filename := fmt.Sprintf("trip-%s.pdf", plan.ID)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", payload)
}
