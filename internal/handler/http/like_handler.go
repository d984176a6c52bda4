package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mihretgbr/applaud/internal/handler/http/dto"
	"github.com/mihretgbr/applaud/internal/handler/http/middleware"
	usecasecontract "github.com/mihretgbr/applaud/internal/usecase/contract"
)

// LikeHandler serves the live request path: toggle, counts, statuses.
type LikeHandler struct {
	likeUsecase usecasecontract.ILikeUseCase
}

// NewLikeHandler creates a new LikeHandler.
func NewLikeHandler(likeUsecase usecasecontract.ILikeUseCase) *LikeHandler {
	return &LikeHandler{likeUsecase: likeUsecase}
}

// ToggleLikeHandler flips like state for one item and the acting identity.
func (h *LikeHandler) ToggleLikeHandler(c *gin.Context) {
	itemID := c.Param("itemID")
	sessionID := c.GetString(middleware.SessionIDKey)
	profileID := c.GetString(middleware.ProfileIDKey)

	result := h.likeUsecase.Toggle(c.Request.Context(), itemID, sessionID, profileID)
	if !result.Success {
		ErrorHandler(c, http.StatusBadRequest, result.Error)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToggleResponse{
		IsLiked:  result.IsLiked,
		NewCount: result.NewCount,
	})
}

// GetCountsHandler batch-reads like counts for ?ids=a,b,c.
func (h *LikeHandler) GetCountsHandler(c *gin.Context) {
	ids := SplitIDs(c.Query("ids"))
	counts, err := h.likeUsecase.GetCounts(c.Request.Context(), ids)
	if err != nil {
		ErrorHandler(c, http.StatusBadRequest, err.Error())
		return
	}
	SuccessHandler(c, http.StatusOK, dto.CountsResponse{Counts: counts})
}

// GetStatusesHandler batch-reads liked flags for the acting identity.
func (h *LikeHandler) GetStatusesHandler(c *gin.Context) {
	ids := SplitIDs(c.Query("ids"))
	sessionID := c.GetString(middleware.SessionIDKey)
	profileID := c.GetString(middleware.ProfileIDKey)

	statuses, err := h.likeUsecase.GetLikedStatuses(c.Request.Context(), ids, sessionID, profileID)
	if err != nil {
		ErrorHandler(c, http.StatusBadRequest, err.Error())
		return
	}
	SuccessHandler(c, http.StatusOK, dto.StatusesResponse{Statuses: statuses})
}
