package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lieyanc/studypk/internal"
)

func newTestStorage(t *testing.T) (*FileStorage, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewFileStorage(dir, internal.NopLogger{})
	assert.NoError(t, err)
	return s, dir
}

func TestSettingsSeededOnFirstAccess(t *testing.T) {
	s, dir := newTestStorage(t)
	settings, err := s.GetSettings(context.Background())
	assert.NoError(t, err)
	assert.NotEmpty(t, settings.Subjects)

	info, err := os.Stat(filepath.Join(dir, "settings.json"))
	assert.NoError(t, err)
	assert.True(t, info.Size() > 0)
}

func TestLegacyCompletedPagesMigration(t *testing.T) {
	s, dir := newTestStorage(t)

	legacy := `{
	  "vacation": {"name": "寒假", "startDate": "2026-01-15", "endDate": "2026-02-15"},
	  "exams": [],
	  "subjects": [
	    {"id": "math", "name": "数学", "color": "#3b82f6", "homework": [
	      {"id": "math-1", "title": "寒假作业本", "totalPages": 60, "completedPages": 40, "unit": "页"}
	    ]}
	  ]
	}`
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), []byte(legacy), 0o644))

	settings, err := s.GetSettings(context.Background())
	assert.NoError(t, err)
	hw := settings.FindHomework("math", "math-1")
	assert.NotNil(t, hw)
	assert.Equal(t, 40, hw.CompletedPages.User1)
	assert.Equal(t, 0, hw.CompletedPages.User2)

	// The corrected shape is written back to disk.
	raw, err := os.ReadFile(filepath.Join(dir, "settings.json"))
	assert.NoError(t, err)
	assert.Contains(t, string(raw), `"user1": 40`)
	assert.Contains(t, string(raw), `"user2": 0`)
}

func TestMissingCheckInDateReadsAsEmptyDay(t *testing.T) {
	s, _ := newTestStorage(t)
	day, err := s.GetDailyCheckIns(context.Background(), "2026-02-10")
	assert.NoError(t, err)
	assert.Equal(t, "2026-02-10", day.Date)
	assert.NotNil(t, day.CheckIns.User1)
	assert.Empty(t, day.CheckIns.User1)
	assert.NotNil(t, day.HomeworkProgress.User2)
}

func TestCorruptCheckInDocumentReadsAsEmptyDay(t *testing.T) {
	s, dir := newTestStorage(t)
	path := filepath.Join(dir, "checkins", "2026-02-10.json")
	assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	day, err := s.GetDailyCheckIns(context.Background(), "2026-02-10")
	assert.NoError(t, err)
	assert.Empty(t, day.CheckIns.User1)
}

func TestCheckInDocumentWithoutProgressLogIsNormalized(t *testing.T) {
	s, dir := newTestStorage(t)
	old := `{"date": "2026-02-10", "checkIns": {"user1": [{"taskId": "dt-1", "completed": true, "amount": 50}], "user2": []}}`
	path := filepath.Join(dir, "checkins", "2026-02-10.json")
	assert.NoError(t, os.WriteFile(path, []byte(old), 0o644))

	day, err := s.GetDailyCheckIns(context.Background(), "2026-02-10")
	assert.NoError(t, err)
	assert.Len(t, day.CheckIns.User1, 1)
	assert.NotNil(t, day.HomeworkProgress.User1)
	assert.NotNil(t, day.HomeworkProgress.User2)
}

func TestSaveAndListCheckInDates(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()
	for _, date := range []string{"2026-02-11", "2026-02-09", "2026-02-10"} {
		day := internal.EmptyCheckInData(date)
		day.CheckIns.User1 = []internal.DailyCheckIn{{TaskID: "dt-1", Completed: true, Amount: 1}}
		assert.NoError(t, s.SaveDailyCheckIns(ctx, day))
	}

	dates, err := s.ListCheckInDates(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"2026-02-09", "2026-02-10", "2026-02-11"}, dates)

	day, err := s.GetDailyCheckIns(ctx, "2026-02-10")
	assert.NoError(t, err)
	assert.Len(t, day.CheckIns.User1, 1)
}

func TestDayDataCreatedFromDefaultTemplate(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()

	day, err := s.GetDayData(ctx, "2026-02-10")
	assert.NoError(t, err)
	assert.Equal(t, "2026-02-10", day.Date)
	assert.NotEmpty(t, day.User1.Schedule)
	assert.Equal(t, day.User1.Schedule, day.User2.Schedule)
	assert.Empty(t, day.User1.Tasks)

	dates, err := s.ListDayDates(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"2026-02-10"}, dates)
}

func TestUsersSeededWithBothSlots(t *testing.T) {
	s, _ := newTestStorage(t)
	users, err := s.ListUsers(context.Background())
	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, internal.User1, users[0].ID)
	assert.Equal(t, internal.User2, users[1].ID)
}

func TestReadsReturnIndependentCopies(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()

	first, err := s.GetSettings(ctx)
	assert.NoError(t, err)
	first.Subjects[0].Name = "changed"

	second, err := s.GetSettings(ctx)
	assert.NoError(t, err)
	assert.NotEqual(t, "changed", second.Subjects[0].Name)
}
