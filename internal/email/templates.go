package email

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wildpine/wildpine/internal/domain/booking"
	"github.com/wildpine/wildpine/internal/domain/payment"
	"github.com/wildpine/wildpine/internal/domain/retreat"
)

const dateLayout = "January 2, 2006"

func money(amount decimal.Decimal, currency string) string {
	return fmt.Sprintf("%s %s", amount.StringFixed(2), strings.ToUpper(currency))
}

func bookingConfirmationText(b *booking.Booking, r *retreat.Retreat, schedules []*payment.Schedule) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Hi %s,\n\n", b.CustomerName)
	fmt.Fprintf(&sb, "Your booking for %s is confirmed.\n\n", r.Title)
	fmt.Fprintf(&sb, "Dates: %s to %s\n", r.StartDate.Format(dateLayout), r.EndDate.Format(dateLayout))
	fmt.Fprintf(&sb, "Location: %s\n", r.Location)
	fmt.Fprintf(&sb, "Guests: %d\n", b.Guests)
	fmt.Fprintf(&sb, "Total: %s\n", money(b.AmountTotal, b.Currency))
	if b.DiscountApplied.GreaterThan(decimal.Zero) {
		fmt.Fprintf(&sb, "Discount applied: %s\n", money(b.DiscountApplied, b.Currency))
	}
	if len(schedules) > 0 {
		sb.WriteString("\nPayment schedule:\n")
		for _, s := range schedules {
			fmt.Fprintf(&sb, "  %s: %s due %s\n",
				s.Kind, money(s.Amount, b.Currency), s.DueDate.Format(dateLayout))
		}
	}
	sb.WriteString("\nWe look forward to welcoming you.\n")
	return sb.String()
}

func paymentReminderText(b *booking.Booking, r *retreat.Retreat, s *payment.Schedule) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Hi %s,\n\n", b.CustomerName)
	fmt.Fprintf(&sb, "A payment of %s for %s is due on %s.\n\n",
		money(s.Amount, b.Currency), r.Title, s.DueDate.Format(dateLayout))
	sb.WriteString("Please complete the payment to keep your booking.\n")
	return sb.String()
}

func paymentOverdueText(b *booking.Booking, r *retreat.Retreat, s *payment.Schedule) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Hi %s,\n\n", b.CustomerName)
	fmt.Fprintf(&sb, "The payment of %s for %s was due on %s and is now overdue.\n\n",
		money(s.Amount, b.Currency), r.Title, s.DueDate.Format(dateLayout))
	sb.WriteString("Please settle the balance as soon as possible, or reply to this email if you need help.\n")
	return sb.String()
}

func waitlistSpotText(name string, r *retreat.Retreat) string {
	var sb strings.Builder
	if name == "" {
		name = "there"
	}
	fmt.Fprintf(&sb, "Hi %s,\n\n", name)
	fmt.Fprintf(&sb, "A spot has opened up on %s (%s to %s).\n\n",
		r.Title, r.StartDate.Format(dateLayout), r.EndDate.Format(dateLayout))
	sb.WriteString("Spots are offered in waitlist order, so book soon if you are still interested.\n")
	return sb.String()
}

func subscribeConfirmText(name, confirmURL string) string {
	var sb strings.Builder
	if name == "" {
		name = "there"
	}
	fmt.Fprintf(&sb, "Hi %s,\n\n", name)
	sb.WriteString("Please confirm your newsletter subscription by opening this link:\n\n")
	fmt.Fprintf(&sb, "  %s\n\n", confirmURL)
	sb.WriteString("If you did not sign up, ignore this email.\n")
	return sb.String()
}

func campaignHTML(body, unsubscribeURL string) string {
	var sb strings.Builder
	sb.WriteString(body)
	sb.WriteString(`<p style="font-size:12px;color:#888"><a href="`)
	sb.WriteString(unsubscribeURL)
	sb.WriteString(`">Unsubscribe</a></p>`)
	return sb.String()
}

func campaignText(body, unsubscribeURL string) string {
	var sb strings.Builder
	sb.WriteString(body)
	sb.WriteString("\n\n--\nUnsubscribe: ")
	sb.WriteString(unsubscribeURL)
	sb.WriteString("\n")
	return sb.String()
}

func followUpText(b *booking.Booking, r *retreat.Retreat) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Hi %s,\n\n", b.CustomerName)
	fmt.Fprintf(&sb, "Thank you for joining %s. We hope you had a wonderful time.\n\n", r.Title)
	sb.WriteString("We would love to hear how it went, just reply to this email.\n")
	return sb.String()
}

func weeklySummaryText(weekStart time.Time, bookings, cancellations int, revenue decimal.Decimal, currency string, newSubscribers, waitlistJoins int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Weekly summary for the week of %s\n\n", weekStart.Format(dateLayout))
	fmt.Fprintf(&sb, "New bookings:    %d\n", bookings)
	fmt.Fprintf(&sb, "Cancellations:   %d\n", cancellations)
	fmt.Fprintf(&sb, "Revenue:         %s\n", money(revenue, currency))
	fmt.Fprintf(&sb, "New subscribers: %d\n", newSubscribers)
	fmt.Fprintf(&sb, "Waitlist joins:  %d\n", waitlistJoins)
	return sb.String()
}
