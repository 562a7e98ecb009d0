package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lieyanc/studypk/internal"
)

func TestVacationProgress(t *testing.T) {
	p := CalculateVacationProgress("2026-01-15", "2026-02-15", "2026-01-15")
	assert.Equal(t, 32, p.TotalDays)
	assert.Equal(t, 1, p.DaysPassed)
	assert.Equal(t, 31, p.DaysRemaining)
	assert.InDelta(t, 3.125, p.Percentage, 0.01)

	// Before the vacation starts nothing has passed.
	p = CalculateVacationProgress("2026-01-15", "2026-02-15", "2026-01-01")
	assert.Equal(t, 0, p.DaysPassed)
	assert.Equal(t, 0.0, p.Percentage)

	// After it ends everything has.
	p = CalculateVacationProgress("2026-01-15", "2026-02-15", "2026-03-01")
	assert.Equal(t, 32, p.DaysPassed)
	assert.Equal(t, 0, p.DaysRemaining)
	assert.InDelta(t, 100.0, p.Percentage, 0.01)
}

func TestVacationProgressDegenerateRanges(t *testing.T) {
	assert.Equal(t, VacationProgress{}, CalculateVacationProgress("2026-02-15", "2026-01-15", "2026-02-01"))
	assert.Equal(t, VacationProgress{}, CalculateVacationProgress("", "", "2026-02-01"))

	p := CalculateVacationProgress("2026-02-01", "2026-02-01", "2026-02-01")
	assert.Equal(t, 1, p.TotalDays)
	assert.InDelta(t, 100.0, p.Percentage, 0.01)
}

func TestHomeworkOverviewZeroItems(t *testing.T) {
	settings := &internal.AppSettings{}
	o := CalculateHomeworkOverview(settings, internal.User1)
	assert.Equal(t, 0.0, o.Percentage)
	assert.Equal(t, 0, o.TotalPages)
}

func TestHomeworkOverviewAssignedToFiltering(t *testing.T) {
	settings := &internal.AppSettings{Subjects: []internal.Subject{
		{ID: "shared", Name: "数学", Homework: []internal.HomeworkItem{
			{ID: "h1", TotalPages: 100, CompletedPages: internal.CompletedPages{User1: 50, User2: 10}},
		}},
		{ID: "only2", Name: "语文", AssignedTo: internal.AssignedUser2, Homework: []internal.HomeworkItem{
			{ID: "h2", TotalPages: 100, CompletedPages: internal.CompletedPages{User2: 100}},
		}},
	}}

	// user1 never sees the user2-only subject, not even as 0 progress.
	o := CalculateHomeworkOverview(settings, internal.User1)
	assert.Equal(t, 100, o.TotalPages)
	assert.Equal(t, 50, o.CompletedPages)
	assert.InDelta(t, 50.0, o.Percentage, 0.01)

	o = CalculateHomeworkOverview(settings, internal.User2)
	assert.Equal(t, 200, o.TotalPages)
	assert.Equal(t, 110, o.CompletedPages)
	assert.InDelta(t, 55.0, o.Percentage, 0.01)
}

func TestSubjectProgress(t *testing.T) {
	subj := &internal.Subject{ID: "english", Homework: []internal.HomeworkItem{
		{ID: "h1", TotalPages: 400, CompletedPages: internal.CompletedPages{User1: 100}},
		{ID: "h2", TotalPages: 100, CompletedPages: internal.CompletedPages{User1: 25}},
	}}
	o := CalculateSubjectProgress(subj, internal.User1)
	assert.Equal(t, 500, o.TotalPages)
	assert.Equal(t, 125, o.CompletedPages)
	assert.InDelta(t, 25.0, o.Percentage, 0.01)
}

func TestDayStatusFor(t *testing.T) {
	assert.Equal(t, internal.DayUnplanned, DayStatusFor(nil, internal.User1))

	day := &internal.DayData{Date: "2026-02-10"}
	assert.Equal(t, internal.DayUnplanned, DayStatusFor(day, internal.User1))

	day.User1.Tasks = []internal.Task{{ID: "1"}, {ID: "2"}}
	assert.Equal(t, internal.DayIncomplete, DayStatusFor(day, internal.User1))

	day.User1.Tasks[0].Completed = true
	assert.Equal(t, internal.DayPartial, DayStatusFor(day, internal.User1))

	day.User1.Tasks[1].Completed = true
	assert.Equal(t, internal.DayComplete, DayStatusFor(day, internal.User1))

	// The other user's day is classified independently.
	assert.Equal(t, internal.DayUnplanned, DayStatusFor(day, internal.User2))
}

func TestCalculatePKStats(t *testing.T) {
	day := internal.EmptyCheckInData("2026-02-10")
	day.CheckIns.User1 = []internal.DailyCheckIn{
		{TaskID: "a", Completed: true},
		{TaskID: "b", Completed: true},
		{TaskID: "c", Completed: false},
	}
	day.CheckIns.User2 = []internal.DailyCheckIn{
		{TaskID: "a", Completed: true},
	}

	stats := CalculatePKStats("2026-02-10", day, 3, internal.PerUser[int]{User1: 4, User2: 0})
	assert.Equal(t, "2026-02-10", stats.Date)
	assert.Equal(t, internal.PKUserStats{Completed: 2, Total: 3, Streak: 4}, stats.User1)
	assert.Equal(t, internal.PKUserStats{Completed: 1, Total: 3, Streak: 0}, stats.User2)
}
