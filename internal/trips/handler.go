package trips

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripsmith/pkg/apperr"
)

type SaveTripRequest struct {
	Destination string  `json:"destination" binding:"required"`
	StartDate   string  `json:"start_date" binding:"required"`
	EndDate     string  `json:"end_date" binding:"required"`
	Budget      float64 `json:"budget"`
	PlanID      *string `json:"plan_id,omitempty"`
}

type ShareRequest struct {
	FriendID string `json:"friend_id" binding:"required"`
}

type TripsHandler struct {
	repo *Repository
}

func NewTripsHandler(repo *Repository) *TripsHandler {
	return &TripsHandler{repo: repo}
}

func (h *TripsHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/trips", h.SaveHandler)
	group.GET("/trips", h.ListHandler)
	group.GET("/trips/:id", h.GetHandler)
	group.DELETE("/trips/:id", h.DeleteHandler)
	group.POST("/trips/:id/share", h.ShareHandler)
}

func (h *TripsHandler) SaveHandler(c *gin.Context) {
	var req SaveTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid JSON body",
			"code":  apperr.ErrorCodeValidation,
		})
		return
	}

	trip, err := h.repo.Save(c.Request.Context(), Trip{
		UserID:      userID(c),
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      req.Budget,
		PlanID:      req.PlanID,
	})
	if err != nil {
		apperr.Send(c, err)
		return
	}

	c.JSON(http.StatusCreated, trip)
}

func (h *TripsHandler) ListHandler(c *gin.Context) {
	result, err := h.repo.ListByUser(c.Request.Context(), userID(c))
	if err != nil {
		apperr.Send(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": result})
}

func (h *TripsHandler) GetHandler(c *gin.Context) {
	trip, err := h.repo.Get(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		apperr.Send(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (h *TripsHandler) DeleteHandler(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		apperr.Send(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ShareHandler godoc
// @Summary      Share a trip with an accepted friend
// @Tags         trips
// @Accept       json
// @Produce      json
// @Param        id path string true "Trip ID"
// @Param        request body ShareRequest true "Friend to share with"
// @Success      200 {object} Share
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /v1/trips/{id}/share [post]
func (h *TripsHandler) ShareHandler(c *gin.Context) {
	var req ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid JSON body",
			"code":  apperr.ErrorCodeValidation,
		})
		return
	}

	share, err := h.repo.Share(c.Request.Context(), userID(c), c.Param("id"), req.FriendID)
	if err != nil {
		apperr.Send(c, err)
		return
	}

	c.JSON(http.StatusOK, share)
}

func userID(c *gin.Context) string {
	if id := c.GetString("user_id"); id != "" {
		return id
	}
	return "anonymous"
}
