package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mihretgbr/applaud/internal/handler/http/dto"
	"github.com/mihretgbr/applaud/internal/handler/http/middleware"
	usecasecontract "github.com/mihretgbr/applaud/internal/usecase/contract"
)

// AdminHandler serves the maintenance entry points: reconciliation and
// identity migration.
type AdminHandler struct {
	reconcileUsecase usecasecontract.IReconcileUseCase
	migrateUsecase   usecasecontract.IMigrateUseCase
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(reconcileUsecase usecasecontract.IReconcileUseCase,
	migrateUsecase usecasecontract.IMigrateUseCase) *AdminHandler {
	return &AdminHandler{
		reconcileUsecase: reconcileUsecase,
		migrateUsecase:   migrateUsecase,
	}
}

// ReconcileAllHandler rebuilds every counter and membership set from the
// durable store.
func (h *AdminHandler) ReconcileAllHandler(c *gin.Context) {
	if err := h.reconcileUsecase.ReconcileAll(c.Request.Context()); err != nil {
		ErrorHandler(c, http.StatusServiceUnavailable, err.Error())
		return
	}
	MessageHandler(c, http.StatusAccepted, "Reconciliation completed")
}

// ReconcileOneHandler rebuilds one item's counter from the durable store.
func (h *AdminHandler) ReconcileOneHandler(c *gin.Context) {
	itemID := c.Param("itemID")
	if err := h.reconcileUsecase.ReconcileOne(c.Request.Context(), itemID); err != nil {
		ErrorHandler(c, http.StatusServiceUnavailable, err.Error())
		return
	}
	MessageHandler(c, http.StatusAccepted, "Reconciliation completed")
}

// MigrateHandler re-keys the acting session's likes to the given profile,
// called once at login.
func (h *AdminHandler) MigrateHandler(c *gin.Context) {
	sessionID := c.GetString(middleware.SessionIDKey)
	if sessionID == "" {
		ErrorHandler(c, http.StatusBadRequest, "session id is required")
		return
	}

	var req dto.MigrateRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	if err := h.migrateUsecase.Migrate(c.Request.Context(), sessionID, req.ProfileID); err != nil {
		ErrorHandler(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}
