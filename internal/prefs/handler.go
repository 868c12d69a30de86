package prefs

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"tripsmith/pkg/apperr"
	"tripsmith/pkg/logger"
)

type SaveRequest struct {
	Preferences []Preference `json:"preferences" binding:"required"`
}

type PrefsHandler struct {
	store   *Store
	summary *VersionedCache
	logger  logger.Logger
}

func NewPrefsHandler(store *Store, summary *VersionedCache, log logger.Logger) *PrefsHandler {
	return &PrefsHandler{store: store, summary: summary, logger: log}
}

func (h *PrefsHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/preferences", h.ListHandler)
	group.POST("/preferences", h.SaveHandler)
	group.POST("/preferences/promote", h.PromoteHandler)
}

func (h *PrefsHandler) ListHandler(c *gin.Context) {
	preferences, err := h.store.ListByUser(c.Request.Context(), userID(c))
	if err != nil {
		apperr.Send(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"preferences": preferences})
}

// SaveHandler godoc
// @Summary      Save extracted traveler preferences
// @Description  Upserts preferences, bumping frequency on duplicates, and refreshes the cached preference summary
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Param        request body SaveRequest true "Extracted preferences"
// @Success      200 {object} map[string]any
// @Failure      400 {object} map[string]string
// @Router       /v1/preferences [post]
func (h *PrefsHandler) SaveHandler(c *gin.Context) {
	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid JSON body",
			"code":  apperr.ErrorCodeValidation,
		})
		return
	}

	user := userID(c)
	for i := range req.Preferences {
		req.Preferences[i].UserID = user
	}

	if err := h.store.Save(c.Request.Context(), req.Preferences); err != nil {
		apperr.Send(c, err)
		return
	}

	changed, err := h.refreshSummary(c.Request.Context(), user)
	if err != nil {
		// the save succeeded, a stale summary only delays recomputation
		h.logger.Warn("failed to refresh preference summary",
			logger.Field{Key: "user_id", Value: user},
			logger.Field{Key: "err", Value: err},
		)
	}

	c.JSON(http.StatusOK, gin.H{
		"saved":           len(req.Preferences),
		"summary_changed": changed,
	})
}

func (h *PrefsHandler) PromoteHandler(c *gin.Context) {
	promoted, err := h.store.PromoteFrequent(c.Request.Context(), userID(c))
	if err != nil {
		apperr.Send(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"promoted": promoted})
}

// refreshSummary rebuilds the cached one-line summary of a user's stored
// preferences and reports whether its content changed
func (h *PrefsHandler) refreshSummary(ctx context.Context, user string) (bool, error) {
	preferences, err := h.store.ListByUser(ctx, user)
	if err != nil {
		return false, err
	}
	return h.summary.Put(ctx, summaryKey(user), SummarizePreferences(preferences))
}

func summaryKey(user string) string {
	return "prefs:summary:" + user
}

// SummarizePreferences renders a deterministic category:value listing, the
// input to the summary's content hash
func SummarizePreferences(preferences []Preference) string {
	parts := make([]string, 0, len(preferences))
	for _, pref := range preferences {
		parts = append(parts, pref.Category+":"+pref.Value)
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}

func userID(c *gin.Context) string {
	if id := c.GetString("user_id"); id != "" {
		return id
	}
	return "anonymous"
}
