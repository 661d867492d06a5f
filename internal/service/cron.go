package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wildpine/wildpine/internal/api/dto"
	"github.com/wildpine/wildpine/internal/domain/booking"
	"github.com/wildpine/wildpine/internal/domain/payment"
	"github.com/wildpine/wildpine/internal/domain/retreat"
	"github.com/wildpine/wildpine/internal/domain/translation"
	"github.com/wildpine/wildpine/internal/types"
)

// CronService implements the scheduled jobs behind the /v1/cron routes. An
// external scheduler triggers them; each run is safe to repeat.
type CronService interface {
	// SendPaymentReminders mails customers whose installment falls due
	// within the configured window
	SendPaymentReminders(ctx context.Context) (*dto.CronJobResponse, error)
	// MarkOverduePayments transitions past-due installments and notifies
	// the customer once
	MarkOverduePayments(ctx context.Context) (*dto.CronJobResponse, error)
	// PurgeTrash permanently deletes content trashed longer than the
	// retention period
	PurgeTrash(ctx context.Context) (*dto.CronJobResponse, error)
	// CompleteBookings closes out confirmed bookings whose retreat ended
	// and sends the follow-up email
	CompleteBookings(ctx context.Context) (*dto.CronJobResponse, error)
	// WeeklySummary mails the operator digest for the past seven days
	WeeklySummary(ctx context.Context) (*dto.WeeklySummaryResponse, error)
}

type cronService struct {
	ServiceParams
}

func NewCronService(params ServiceParams) CronService {
	return &cronService{ServiceParams: params}
}

type bookingWithRetreat struct {
	booking *booking.Booking
	retreat *retreat.Retreat
}

// scheduleContext loads the booking and retreat behind an installment
func (s *cronService) scheduleContext(ctx context.Context, sched *payment.Schedule) (bookingWithRetreat, error) {
	var bc bookingWithRetreat
	b, err := s.BookingRepo.Get(ctx, sched.BookingID)
	if err != nil {
		return bc, err
	}
	r, err := s.RetreatRepo.Get(ctx, b.RetreatID)
	if err != nil {
		return bc, err
	}
	bc.booking = b
	bc.retreat = r
	return bc, nil
}

func (s *cronService) SendPaymentReminders(ctx context.Context) (*dto.CronJobResponse, error) {
	now := time.Now().UTC()
	cutoff := now.AddDate(0, 0, s.Config.Cron.ReminderDays)

	schedules, err := s.ScheduleRepo.ListUnremindedDueBefore(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	resp := &dto.CronJobResponse{}
	for _, sched := range schedules {
		bc, err := s.scheduleContext(ctx, sched)
		if err != nil {
			resp.Failed++
			resp.Details = append(resp.Details, fmt.Sprintf("schedule %s: %v", sched.ID, err))
			continue
		}
		if bc.booking.BookingStatus == types.BookingStatusCancelled {
			continue
		}

		if err := s.Email.SendPaymentReminder(ctx, bc.booking, bc.retreat, sched); err != nil {
			resp.Failed++
			resp.Details = append(resp.Details, fmt.Sprintf("schedule %s: %v", sched.ID, err))
			continue
		}

		sched.ScheduleStatus = types.ScheduleStatusReminded
		sched.RemindedAt = &now
		sched.Touch(ctx)
		if err := s.ScheduleRepo.Update(ctx, sched); err != nil {
			resp.Failed++
			resp.Details = append(resp.Details, fmt.Sprintf("schedule %s: %v", sched.ID, err))
			continue
		}
		resp.Processed++
	}

	s.Logger.Infow("payment reminders sent", "processed", resp.Processed, "failed", resp.Failed)
	return resp, nil
}

func (s *cronService) MarkOverduePayments(ctx context.Context) (*dto.CronJobResponse, error) {
	now := time.Now().UTC()

	schedules, err := s.ScheduleRepo.ListOpenDueBefore(ctx, now)
	if err != nil {
		return nil, err
	}

	resp := &dto.CronJobResponse{}
	for _, sched := range schedules {
		if sched.ScheduleStatus == types.ScheduleStatusOverdue {
			continue
		}
		bc, err := s.scheduleContext(ctx, sched)
		if err != nil {
			resp.Failed++
			resp.Details = append(resp.Details, fmt.Sprintf("schedule %s: %v", sched.ID, err))
			continue
		}
		if bc.booking.BookingStatus == types.BookingStatusCancelled {
			continue
		}

		sched.ScheduleStatus = types.ScheduleStatusOverdue
		sched.Touch(ctx)
		if err := s.ScheduleRepo.Update(ctx, sched); err != nil {
			resp.Failed++
			resp.Details = append(resp.Details, fmt.Sprintf("schedule %s: %v", sched.ID, err))
			continue
		}

		// Notify once, on the transition
		if err := s.Email.SendPaymentOverdue(ctx, bc.booking, bc.retreat, sched); err != nil {
			s.Logger.Errorw("overdue notice failed", "error", err, "schedule_id", sched.ID)
		}
		resp.Processed++
	}

	s.Logger.Infow("overdue payments marked", "processed", resp.Processed, "failed", resp.Failed)
	return resp, nil
}

func (s *cronService) PurgeTrash(ctx context.Context) (*dto.CronJobResponse, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -s.Config.Cron.TrashRetentionDays)

	resp := &dto.CronJobResponse{}

	retreats, err := s.RetreatRepo.ListTrashedBefore(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	for _, r := range retreats {
		err := s.DB.WithTx(ctx, func(ctx context.Context) error {
			if err := s.TranslationRepo.DeleteForEntity(ctx, translation.EntityTypeRetreat, r.ID); err != nil {
				return err
			}
			return s.RetreatRepo.Purge(ctx, r.ID)
		})
		if err != nil {
			resp.Failed++
			resp.Details = append(resp.Details, fmt.Sprintf("retreat %s: %v", r.ID, err))
			continue
		}
		resp.Processed++
	}

	posts, err := s.BlogPostRepo.ListTrashedBefore(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		err := s.DB.WithTx(ctx, func(ctx context.Context) error {
			if err := s.TranslationRepo.DeleteForEntity(ctx, translation.EntityTypeBlogPost, p.ID); err != nil {
				return err
			}
			return s.BlogPostRepo.Purge(ctx, p.ID)
		})
		if err != nil {
			resp.Failed++
			resp.Details = append(resp.Details, fmt.Sprintf("post %s: %v", p.ID, err))
			continue
		}
		resp.Processed++
	}

	s.Logger.Infow("trash purged", "processed", resp.Processed, "failed", resp.Failed)
	return resp, nil
}

func (s *cronService) CompleteBookings(ctx context.Context) (*dto.CronJobResponse, error) {
	now := time.Now().UTC()

	bookings, err := s.BookingRepo.ListConfirmedEndedBefore(ctx, now)
	if err != nil {
		return nil, err
	}

	resp := &dto.CronJobResponse{}
	for _, b := range bookings {
		b.BookingStatus = types.BookingStatusCompleted
		b.Touch(ctx)
		if err := s.BookingRepo.Update(ctx, b); err != nil {
			resp.Failed++
			resp.Details = append(resp.Details, fmt.Sprintf("booking %s: %v", b.ID, err))
			continue
		}

		r, err := s.RetreatRepo.Get(ctx, b.RetreatID)
		if err == nil {
			if err := s.Email.SendFollowUp(ctx, b, r); err != nil {
				s.Logger.Errorw("follow-up email failed", "error", err, "booking_id", b.ID)
			}
		}
		resp.Processed++
	}

	s.Logger.Infow("bookings completed", "processed", resp.Processed, "failed", resp.Failed)
	return resp, nil
}

func (s *cronService) WeeklySummary(ctx context.Context) (*dto.WeeklySummaryResponse, error) {
	now := time.Now().UTC()
	weekStart := now.AddDate(0, 0, -7)

	bookings, err := s.BookingRepo.ListCreatedBetween(ctx, weekStart, now)
	if err != nil {
		return nil, err
	}

	resp := &dto.WeeklySummaryResponse{Revenue: decimal.Zero}
	for _, b := range bookings {
		resp.Bookings++
		if b.BookingStatus == types.BookingStatusCancelled {
			resp.Cancellations++
		}
		resp.Revenue = resp.Revenue.Add(b.AmountPaid)
		if resp.Currency == "" {
			resp.Currency = b.Currency
		}
	}
	if resp.Currency == "" {
		resp.Currency = "EUR"
	}

	resp.NewSubscribers, err = s.SubscriberRepo.CountCreatedSince(ctx, weekStart)
	if err != nil {
		return nil, err
	}
	resp.WaitlistJoins, err = s.WaitlistRepo.CountCreatedSince(ctx, weekStart)
	if err != nil {
		return nil, err
	}

	if s.Config.Email.AdminEmail != "" && s.Email.IsEnabled() {
		err := s.Email.SendWeeklySummary(ctx, s.Config.Email.AdminEmail, weekStart,
			resp.Bookings, resp.Cancellations, resp.Revenue, resp.Currency,
			resp.NewSubscribers, resp.WaitlistJoins)
		if err != nil {
			s.Logger.Errorw("weekly summary email failed", "error", err)
		} else {
			resp.EmailDispatched = true
		}
	}

	s.Logger.Infow("weekly summary computed",
		"bookings", resp.Bookings,
		"cancellations", resp.Cancellations,
		"revenue", resp.Revenue.String())
	return resp, nil
}
