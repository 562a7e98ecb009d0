package service

import (
	"context"

	"github.com/lieyanc/studypk/internal"
)

// streakLookback bounds the backward walk.
const streakLookback = 365

// Streak counts consecutive days, walking backward from date, on which the
// user completed at least as many check-ins as the catalog currently holds.
//
// The reference day gets grace while it is still in progress: an incomplete
// day 0 is skipped rather than ending the run, while any earlier incomplete
// day stops it. The denominator is always the catalog size at query time,
// so editing the catalog retroactively changes historical streaks; that is
// the documented behavior, not something to correct here.
func (l *Ledger) Streak(ctx context.Context, userID internal.UserID, date string) (int, error) {
	tasks, err := l.catalog.GetDailyTasks(ctx)
	if err != nil {
		return 0, err
	}
	total := len(tasks.Tasks)
	if total == 0 {
		return 0, nil
	}

	ref, err := internal.ParseDate(date)
	if err != nil {
		return 0, err
	}

	streak := 0
	for i := 0; i < streakLookback; i++ {
		checkDate := internal.FormatDate(ref.AddDate(0, 0, -i))
		day, err := l.checkIns.GetDailyCheckIns(ctx, checkDate)
		if err != nil {
			return 0, err
		}
		completed := 0
		for _, c := range day.CheckIns.For(userID) {
			if c.Completed {
				completed++
			}
		}
		if completed >= total {
			streak++
			continue
		}
		if i == 0 {
			continue
		}
		break
	}
	return streak, nil
}

// Streaks computes both users' streaks for a date.
func (l *Ledger) Streaks(ctx context.Context, date string) (internal.PerUser[int], error) {
	var out internal.PerUser[int]
	for _, u := range internal.AllUsers {
		s, err := l.Streak(ctx, u, date)
		if err != nil {
			return out, err
		}
		out.Set(u, s)
	}
	return out, nil
}
