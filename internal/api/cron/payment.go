package cron

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wildpine/wildpine/internal/logger"
	"github.com/wildpine/wildpine/internal/service"
)

type PaymentCronHandler struct {
	logger      *logger.Logger
	cronService service.CronService
}

func NewPaymentCronHandler(logger *logger.Logger, cronService service.CronService) *PaymentCronHandler {
	return &PaymentCronHandler{
		logger:      logger,
		cronService: cronService,
	}
}

// SendReminders mails customers whose installment falls due within the
// reminder window
func (h *PaymentCronHandler) SendReminders(c *gin.Context) {
	h.logger.Infow("starting payment reminder cron job", "at", time.Now().UTC().Format(time.RFC3339))

	resp, err := h.cronService.SendPaymentReminders(c.Request.Context())
	if err != nil {
		h.logger.Errorw("payment reminder cron job failed", "error", err)
		c.Error(err)
		return
	}

	h.logger.Infow("payment reminder cron job done",
		"processed", resp.Processed,
		"failed", resp.Failed,
	)
	c.JSON(http.StatusOK, resp)
}

// MarkOverdue transitions past-due installments and notifies the customer
func (h *PaymentCronHandler) MarkOverdue(c *gin.Context) {
	h.logger.Infow("starting overdue payment cron job", "at", time.Now().UTC().Format(time.RFC3339))

	resp, err := h.cronService.MarkOverduePayments(c.Request.Context())
	if err != nil {
		h.logger.Errorw("overdue payment cron job failed", "error", err)
		c.Error(err)
		return
	}

	h.logger.Infow("overdue payment cron job done",
		"processed", resp.Processed,
		"failed", resp.Failed,
	)
	c.JSON(http.StatusOK, resp)
}
