package service

import (
	"github.com/lieyanc/studypk/internal"
)

// Read-only derived views over settings and per-day data. Nothing here
// persists state.

type VacationProgress struct {
	TotalDays     int     `json:"totalDays"`
	DaysPassed    int     `json:"daysPassed"`
	DaysRemaining int     `json:"daysRemaining"`
	Percentage    float64 `json:"percentage"`
}

// CalculateVacationProgress reports how far through an inclusive date range
// today falls. Invalid or inverted ranges yield the zero value.
func CalculateVacationProgress(startDate, endDate, today string) VacationProgress {
	start, err := internal.ParseDate(startDate)
	if err != nil {
		return VacationProgress{}
	}
	end, err := internal.ParseDate(endDate)
	if err != nil {
		return VacationProgress{}
	}
	now, err := internal.ParseDate(today)
	if err != nil {
		return VacationProgress{}
	}

	totalDays := int(end.Sub(start).Hours()/24) + 1
	if totalDays <= 0 {
		return VacationProgress{}
	}
	daysPassed := clamp(int(now.Sub(start).Hours()/24)+1, 0, totalDays)
	return VacationProgress{
		TotalDays:     totalDays,
		DaysPassed:    daysPassed,
		DaysRemaining: totalDays - daysPassed,
		Percentage:    float64(daysPassed) / float64(totalDays) * 100,
	}
}

type HomeworkOverview struct {
	TotalPages     int     `json:"totalPages"`
	CompletedPages int     `json:"completedPages"`
	Percentage     float64 `json:"percentage"`
}

// CalculateHomeworkOverview sums a user's cumulative progress over every
// homework item visible to them. Subjects assigned to the other user are
// absent from the denominator entirely. An empty set is 0%, never NaN.
func CalculateHomeworkOverview(settings *internal.AppSettings, userID internal.UserID) HomeworkOverview {
	var total, done int
	for i := range settings.Subjects {
		subj := &settings.Subjects[i]
		if !subj.VisibleTo(userID) {
			continue
		}
		for j := range subj.Homework {
			total += subj.Homework[j].TotalPages
			done += subj.Homework[j].CompletedPages.For(userID)
		}
	}
	out := HomeworkOverview{TotalPages: total, CompletedPages: done}
	if total > 0 {
		out.Percentage = float64(done) / float64(total) * 100
	}
	return out
}

// CalculateSubjectProgress is the per-subject variant of the overview.
func CalculateSubjectProgress(subject *internal.Subject, userID internal.UserID) HomeworkOverview {
	var total, done int
	for i := range subject.Homework {
		total += subject.Homework[i].TotalPages
		done += subject.Homework[i].CompletedPages.For(userID)
	}
	out := HomeworkOverview{TotalPages: total, CompletedPages: done}
	if total > 0 {
		out.Percentage = float64(done) / float64(total) * 100
	}
	return out
}

// DayStatusFor classifies a user's day for calendar coloring.
func DayStatusFor(day *internal.DayData, userID internal.UserID) internal.DayStatus {
	if day == nil {
		return internal.DayUnplanned
	}
	tasks := day.For(userID).Tasks
	if len(tasks) == 0 {
		return internal.DayUnplanned
	}
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	switch {
	case completed == 0:
		return internal.DayIncomplete
	case completed == len(tasks):
		return internal.DayComplete
	default:
		return internal.DayPartial
	}
}

// CompletedCount counts completed check-ins in a user's day record.
func CompletedCount(checkIns []internal.DailyCheckIn) int {
	n := 0
	for _, c := range checkIns {
		if c.Completed {
			n++
		}
	}
	return n
}

// CalculatePKStats builds the head-to-head view for a date from the day's
// check-ins, the catalog size, and precomputed streaks.
func CalculatePKStats(date string, day *internal.DailyCheckInData, total int, streaks internal.PerUser[int]) internal.PKStats {
	return internal.PKStats{
		Date: date,
		User1: internal.PKUserStats{
			Completed: CompletedCount(day.CheckIns.User1),
			Total:     total,
			Streak:    streaks.User1,
		},
		User2: internal.PKUserStats{
			Completed: CompletedCount(day.CheckIns.User2),
			Total:     total,
			Streak:    streaks.User2,
		},
	}
}
