package cron

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wildpine/wildpine/internal/logger"
	"github.com/wildpine/wildpine/internal/service"
)

type BookingCronHandler struct {
	logger      *logger.Logger
	cronService service.CronService
}

func NewBookingCronHandler(logger *logger.Logger, cronService service.CronService) *BookingCronHandler {
	return &BookingCronHandler{
		logger:      logger,
		cronService: cronService,
	}
}

// Complete closes out confirmed bookings whose retreat has ended and sends
// the follow-up email
func (h *BookingCronHandler) Complete(c *gin.Context) {
	h.logger.Infow("starting booking completion cron job", "at", time.Now().UTC().Format(time.RFC3339))

	resp, err := h.cronService.CompleteBookings(c.Request.Context())
	if err != nil {
		h.logger.Errorw("booking completion cron job failed", "error", err)
		c.Error(err)
		return
	}

	h.logger.Infow("booking completion cron job done",
		"processed", resp.Processed,
		"failed", resp.Failed,
	)
	c.JSON(http.StatusOK, resp)
}
