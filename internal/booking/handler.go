package booking

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tripsmith/internal/flight"
	"tripsmith/pkg/apperr"
	"tripsmith/pkg/idgen"
)

type CreateRequest struct {
	Destination string  `json:"destination" binding:"required"`
	StartDate   string  `json:"start_date" binding:"required"`
	EndDate     string  `json:"end_date" binding:"required"`
	TripID      *string `json:"trip_id,omitempty"`
	PlanID      *string `json:"plan_id,omitempty"`
}

type BookingHandler struct {
	store      *Store
	selections *flight.SelectionStore
	ids        idgen.Generator
}

func NewBookingHandler(store *Store, selections *flight.SelectionStore, ids idgen.Generator) *BookingHandler {
	return &BookingHandler{store: store, selections: selections, ids: ids}
}

func (h *BookingHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/bookings", h.CreateHandler)
	group.GET("/bookings/:reference", h.GetHandler)
}

// CreateHandler godoc
// @Summary      Place a booking for the current itinerary
// @Description  Reads the confirmed flight cabin from the selection state; only a confirmed cabin gets a 72h refund window
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        request body CreateRequest true "Itinerary identity"
// @Success      201 {object} Booking
// @Failure      400 {object} map[string]string
// @Router       /v1/bookings [post]
func (h *BookingHandler) CreateHandler(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid JSON body",
			"code":  apperr.ErrorCodeValidation,
		})
		return
	}

	user := userID(c)
	key := flight.ItineraryKey(req.Destination, req.StartDate, req.EndDate)
	state, err := h.selections.Load(c.Request.Context(), user, key)
	if err != nil {
		apperr.Send(c, err)
		return
	}

	b := NewBooking(h.ids.GenerateString(), user, state.ConfirmedCabinID, time.Now().UTC())
	b.TripID = req.TripID
	b.PlanID = req.PlanID

	if err := h.store.Save(c.Request.Context(), b); err != nil {
		apperr.Send(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

func (h *BookingHandler) GetHandler(c *gin.Context) {
	b, err := h.store.Get(c.Request.Context(), userID(c), c.Param("reference"))
	if err != nil {
		apperr.Send(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func userID(c *gin.Context) string {
	if id := c.GetString("user_id"); id != "" {
		return id
	}
	return "anonymous"
}
