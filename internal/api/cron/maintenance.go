package cron

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wildpine/wildpine/internal/logger"
	"github.com/wildpine/wildpine/internal/service"
)

type MaintenanceCronHandler struct {
	logger      *logger.Logger
	cronService service.CronService
}

func NewMaintenanceCronHandler(logger *logger.Logger, cronService service.CronService) *MaintenanceCronHandler {
	return &MaintenanceCronHandler{
		logger:      logger,
		cronService: cronService,
	}
}

// PurgeTrash permanently deletes content trashed longer than the retention
// period
func (h *MaintenanceCronHandler) PurgeTrash(c *gin.Context) {
	h.logger.Infow("starting trash purge cron job", "at", time.Now().UTC().Format(time.RFC3339))

	resp, err := h.cronService.PurgeTrash(c.Request.Context())
	if err != nil {
		h.logger.Errorw("trash purge cron job failed", "error", err)
		c.Error(err)
		return
	}

	h.logger.Infow("trash purge cron job done",
		"processed", resp.Processed,
		"failed", resp.Failed,
	)
	c.JSON(http.StatusOK, resp)
}

// WeeklySummary mails the operator digest for the past seven days
func (h *MaintenanceCronHandler) WeeklySummary(c *gin.Context) {
	h.logger.Infow("starting weekly summary cron job", "at", time.Now().UTC().Format(time.RFC3339))

	resp, err := h.cronService.WeeklySummary(c.Request.Context())
	if err != nil {
		h.logger.Errorw("weekly summary cron job failed", "error", err)
		c.Error(err)
		return
	}

	h.logger.Infow("weekly summary cron job done",
		"bookings", resp.Bookings,
		"revenue", resp.Revenue,
	)
	c.JSON(http.StatusOK, resp)
}
