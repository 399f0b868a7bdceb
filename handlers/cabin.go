package handlers

import (
	"errors"
	"net/http"

	cabinRepo "cabanero/database/repository/cabin"
	"cabanero/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CabinHandler serves the read-only cabin catalog the reservation flow
// depends on. Cabin administration lives in a separate back-office service.
type CabinHandler struct {
	Repo   cabinRepo.CabinRepository
	Logger *zap.Logger
}

func NewCabinHandler(repo cabinRepo.CabinRepository, logger *zap.Logger) *CabinHandler {
	return &CabinHandler{Repo: repo, Logger: logger}
}

// ListCabinsHandler handles GET /cabanas/. An optional team_id query narrows
// the listing to one team's cabins.
func (h *CabinHandler) ListCabinsHandler(c *gin.Context) {
	teamID := c.Query("team_id")

	var cabins interface{}
	var err error
	if teamID != "" {
		cabins, err = h.Repo.ListByTeam(c.Request.Context(), teamID)
	} else {
		cabins, err = h.Repo.List(c.Request.Context())
	}
	if err != nil {
		h.Logger.Error("failed to list cabins", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	c.JSON(http.StatusOK, cabins)
}

// GetCabinHandler handles GET /cabanas/:id/.
func (h *CabinHandler) GetCabinHandler(c *gin.Context) {
	cabin, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, cabinRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "cabaña no encontrada", "")
			return
		}
		h.Logger.Error("failed to fetch cabin", zap.String("id", c.Param("id")), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	c.JSON(http.StatusOK, cabin)
}
