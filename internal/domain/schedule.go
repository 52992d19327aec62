package domain

import "time"

// NextRefresh returns the earliest future instant at which some task
// crosses an availability or urgency threshold: the nearest pending
// available date, or the nearest "becomes urgent" instant (due date
// minus the urgency window). The zero time means nothing is pending
// and no refresh needs to be scheduled.
func NextRefresh(tasks []Task, now time.Time) time.Time {
	var next time.Time
	consider := func(at time.Time) {
		if at.After(now) && (next.IsZero() || at.Before(next)) {
			next = at
		}
	}
	for _, t := range tasks {
		if t.AvailableDate != nil {
			consider(*t.AvailableDate)
		}
		consider(t.DueDate.Add(-UrgencyWindow))
	}
	return next
}
