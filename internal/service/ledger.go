package service

import (
	"context"
	"sort"
	"time"

	"github.com/lieyanc/studypk/internal"
	"github.com/lieyanc/studypk/internal/storage"
)

// Ledger owns the check-in state for each (date, user, task) triple and
// keeps the linked homework counters consistent with it. Every unit of
// progress is applied to a counter exactly once: SyncedAmount records what
// has already been pushed, and each operation only applies the difference.
//
// An operation is two whole-document writes (settings, then the day's
// check-in document) with no transaction between them. On a failure of the
// second write the caller re-fetches and re-issues the same operation; the
// delta computed from SyncedAmount makes the retry safe.
type Ledger struct {
	settings storage.SettingsRepository
	catalog  storage.TaskCatalogRepository
	checkIns storage.CheckInRepository
	logger   internal.Logger
	now      func() time.Time
}

func NewLedger(settings storage.SettingsRepository, catalog storage.TaskCatalogRepository, checkIns storage.CheckInRepository, logger internal.Logger) *Ledger {
	return &Ledger{
		settings: settings,
		catalog:  catalog,
		checkIns: checkIns,
		logger:   logger,
		now:      time.Now,
	}
}

// homeworkLink is the resolved state of a task's subject/homework link,
// computed once per operation instead of null-checking throughout.
type homeworkLink struct {
	valid      bool
	subjectID  string
	homeworkID string
}

func resolveLink(settings *internal.AppSettings, task *internal.DailyTask) homeworkLink {
	if task == nil || task.SubjectID == "" || task.HomeworkID == "" {
		return homeworkLink{}
	}
	if settings.FindHomework(task.SubjectID, task.HomeworkID) == nil {
		// Dangling link: the referenced subject or homework no longer
		// exists. Check-in state still updates, sync is skipped.
		return homeworkLink{}
	}
	return homeworkLink{valid: true, subjectID: task.SubjectID, homeworkID: task.HomeworkID}
}

func findTask(list *internal.DailyTaskList, taskID string) *internal.DailyTask {
	for i := range list.Tasks {
		if list.Tasks[i].ID == taskID {
			return &list.Tasks[i]
		}
	}
	return nil
}

func findCheckIn(list []internal.DailyCheckIn, taskID string) int {
	for i := range list {
		if list[i].TaskID == taskID {
			return i
		}
	}
	return -1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// adjustHomework applies delta to the user's completedPages counter for the
// linked homework, clamped to [0, totalPages], and persists the whole
// settings document.
func (l *Ledger) adjustHomework(ctx context.Context, settings *internal.AppSettings, link homeworkLink, userID internal.UserID, delta int) error {
	if delta == 0 {
		return nil
	}
	hw := settings.FindHomework(link.subjectID, link.homeworkID)
	if hw == nil {
		return nil
	}
	hw.CompletedPages.Set(userID, clamp(hw.CompletedPages.For(userID)+delta, 0, hw.TotalPages))
	return l.settings.SaveSettings(ctx, settings)
}

func removeProgressEntry(entries []internal.HomeworkProgressEntry, taskID string) []internal.HomeworkProgressEntry {
	out := entries[:0]
	for _, e := range entries {
		if e.TaskID != taskID {
			out = append(out, e)
		}
	}
	return out
}

// GetDay returns the date's check-in document. Unknown dates read as an
// empty day, never an error.
func (l *Ledger) GetDay(ctx context.Context, date string) (*internal.DailyCheckInData, error) {
	return l.checkIns.GetDailyCheckIns(ctx, date)
}

// ReplaceDay stores a client-supplied day document wholesale.
func (l *Ledger) ReplaceDay(ctx context.Context, data *internal.DailyCheckInData) error {
	return l.checkIns.SaveDailyCheckIns(ctx, data)
}

// ToggleCheckIn flips the completion state of a task for one user.
//
// Completing syncs target - previouslySynced into the linked homework
// counter and records a progress-log entry; un-completing reverses exactly
// the synced amount and removes the entry. Unknown tasks and dangling links
// still flip the check-in state, with no counter mutation.
func (l *Ledger) ToggleCheckIn(ctx context.Context, date string, userID internal.UserID, taskID string, amount *int) (*internal.DailyCheckInData, error) {
	tasks, err := l.catalog.GetDailyTasks(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := l.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	day, err := l.checkIns.GetDailyCheckIns(ctx, date)
	if err != nil {
		return nil, err
	}

	task := findTask(tasks, taskID)
	link := resolveLink(settings, task)
	list := append([]internal.DailyCheckIn{}, day.CheckIns.For(userID)...)
	progress := append([]internal.HomeworkProgressEntry{}, day.HomeworkProgress.For(userID)...)
	idx := findCheckIn(list, taskID)
	now := l.now().Format(time.RFC3339)

	if idx >= 0 && list[idx].Completed {
		// Un-toggle: reverse what this check-in contributed.
		synced := list[idx].SyncedAmount
		if synced > 0 && link.valid {
			if err := l.adjustHomework(ctx, settings, link, userID, -synced); err != nil {
				return nil, err
			}
			progress = removeProgressEntry(progress, taskID)
		}
		list[idx].Completed = false
		list[idx].Amount = 0
		list[idx].SyncedAmount = 0
		list[idx].CompletedAt = ""
	} else {
		target := 0
		switch {
		case amount != nil:
			target = *amount
		case task != nil:
			target = task.Target
		}
		prevSynced := 0
		if idx >= 0 {
			prevSynced = list[idx].SyncedAmount
		}
		delta := target - prevSynced
		if delta > 0 && link.valid {
			if err := l.adjustHomework(ctx, settings, link, userID, delta); err != nil {
				return nil, err
			}
			progress = removeProgressEntry(progress, taskID)
			progress = append(progress, internal.HomeworkProgressEntry{
				SubjectID:  link.subjectID,
				HomeworkID: link.homeworkID,
				Amount:     target,
				Source:     internal.SourceCheckIn,
				TaskID:     taskID,
				Timestamp:  now,
			})
		}
		entry := internal.DailyCheckIn{
			TaskID:       taskID,
			Completed:    true,
			Amount:       target,
			SyncedAmount: target,
			CompletedAt:  now,
		}
		if idx >= 0 {
			list[idx] = entry
		} else {
			list = append(list, entry)
		}
	}

	day.CheckIns.Set(userID, list)
	day.HomeworkProgress.Set(userID, progress)
	if err := l.checkIns.SaveDailyCheckIns(ctx, day); err != nil {
		return nil, err
	}
	return day, nil
}

// SetCheckInAmount records a partial-progress slider value. The check-in is
// completed when amount reaches the task target; homework sync only follows
// the completed state, so calling this twice with the same amount is a
// no-op the second time.
func (l *Ledger) SetCheckInAmount(ctx context.Context, date string, userID internal.UserID, taskID string, amount int) (*internal.DailyCheckInData, error) {
	tasks, err := l.catalog.GetDailyTasks(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := l.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	day, err := l.checkIns.GetDailyCheckIns(ctx, date)
	if err != nil {
		return nil, err
	}

	task := findTask(tasks, taskID)
	link := resolveLink(settings, task)
	target := 0
	if task != nil {
		target = task.Target
	}
	if amount < 0 {
		amount = 0
	}

	list := append([]internal.DailyCheckIn{}, day.CheckIns.For(userID)...)
	progress := append([]internal.HomeworkProgressEntry{}, day.HomeworkProgress.For(userID)...)
	idx := findCheckIn(list, taskID)
	now := l.now().Format(time.RFC3339)

	prevSynced := 0
	if idx >= 0 {
		prevSynced = list[idx].SyncedAmount
	}
	isNowCompleted := amount >= target
	newSynced := prevSynced

	if isNowCompleted && link.valid {
		delta := amount - prevSynced
		if delta != 0 {
			if err := l.adjustHomework(ctx, settings, link, userID, delta); err != nil {
				return nil, err
			}
			newSynced = amount
			progress = removeProgressEntry(progress, taskID)
			progress = append(progress, internal.HomeworkProgressEntry{
				SubjectID:  link.subjectID,
				HomeworkID: link.homeworkID,
				Amount:     amount,
				Source:     internal.SourceCheckIn,
				TaskID:     taskID,
				Timestamp:  now,
			})
		}
	} else if !isNowCompleted && prevSynced > 0 && link.valid {
		// Dropped back below target: take the synced amount out again.
		if err := l.adjustHomework(ctx, settings, link, userID, -prevSynced); err != nil {
			return nil, err
		}
		newSynced = 0
		progress = removeProgressEntry(progress, taskID)
	}

	entry := internal.DailyCheckIn{
		TaskID:       taskID,
		Completed:    isNowCompleted,
		Amount:       amount,
		SyncedAmount: newSynced,
	}
	if isNowCompleted {
		entry.CompletedAt = now
	}
	if idx >= 0 {
		list[idx] = entry
	} else {
		list = append(list, entry)
	}

	day.CheckIns.Set(userID, list)
	day.HomeworkProgress.Set(userID, progress)
	if err := l.checkIns.SaveDailyCheckIns(ctx, day); err != nil {
		return nil, err
	}
	return day, nil
}

// HomeworkHistoryEntry is one homework counter movement, attributed to a
// date and user.
type HomeworkHistoryEntry struct {
	Date      string          `json:"date"`
	UserID    internal.UserID `json:"userId"`
	Amount    int             `json:"amount"`
	Source    string          `json:"source"`
	Timestamp string          `json:"timestamp"`
}

// HomeworkHistory scans every check-in document for progress entries on one
// homework item, newest first.
func (l *Ledger) HomeworkHistory(ctx context.Context, subjectID, homeworkID string) ([]HomeworkHistoryEntry, error) {
	dates, err := l.checkIns.ListCheckInDates(ctx)
	if err != nil {
		return nil, err
	}
	history := []HomeworkHistoryEntry{}
	for _, date := range dates {
		day, err := l.checkIns.GetDailyCheckIns(ctx, date)
		if err != nil {
			return nil, err
		}
		for _, userID := range internal.AllUsers {
			for _, e := range day.HomeworkProgress.For(userID) {
				if e.SubjectID == subjectID && e.HomeworkID == homeworkID {
					history = append(history, HomeworkHistoryEntry{
						Date:      date,
						UserID:    userID,
						Amount:    e.Amount,
						Source:    e.Source,
						Timestamp: e.Timestamp,
					})
				}
			}
		}
	}
	sort.Slice(history, func(i, j int) bool {
		return history[i].Timestamp > history[j].Timestamp
	})
	return history, nil
}
