package dto

import "github.com/shopspring/decimal"

// CronJobResponse is the shared shape of cron endpoint results
type CronJobResponse struct {
	Processed int      `json:"processed"`
	Failed    int      `json:"failed"`
	Details   []string `json:"details,omitempty"`
}

// WeeklySummaryResponse is the operator digest mailed every week
type WeeklySummaryResponse struct {
	Bookings        int             `json:"bookings"`
	Cancellations   int             `json:"cancellations"`
	Revenue         decimal.Decimal `json:"revenue"`
	Currency        string          `json:"currency"`
	NewSubscribers  int             `json:"new_subscribers"`
	WaitlistJoins   int             `json:"waitlist_joins"`
	EmailDispatched bool            `json:"email_dispatched"`
}
