package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/lieyanc/studypk/internal"
)

// FileStorage keeps one JSON document per entity under dataDir:
//
//	users.json, settings.json, daily-tasks.json, templates.json, todos.json
//	checkins/<date>.json, days/<date>.json
//
// Documents are read from disk on every access and replaced wholesale on
// write, so callers always operate on independent copies. A single RWMutex
// serializes writers; the model assumes one active editor (last write wins).
type FileStorage struct {
	dataDir string
	mu      sync.RWMutex
	logger  internal.Logger
}

func NewFileStorage(dataDir string, logger internal.Logger) (*FileStorage, error) {
	for _, dir := range []string{dataDir, filepath.Join(dataDir, "checkins"), filepath.Join(dataDir, "days")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Errorf("storage: failed to create %s: %v", dir, err)
			return nil, err
		}
	}
	return &FileStorage{dataDir: dataDir, logger: logger}, nil
}

func (s *FileStorage) path(name string) string {
	return filepath.Join(s.dataDir, name)
}

func (s *FileStorage) checkInPath(date string) string {
	return filepath.Join(s.dataDir, "checkins", date+".json")
}

func (s *FileStorage) dayPath(date string) string {
	return filepath.Join(s.dataDir, "days", date+".json")
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

// readJSONFile decodes path into v. Returns false with no error when the
// file does not exist or is empty.
func readJSONFile(path string, v any) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, err
	}
	return true, nil
}

func listDateFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	dates := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		dates = append(dates, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(dates)
	return dates, nil
}

// --- UserRepository ---

func (s *FileStorage) ListUsers(ctx context.Context) ([]internal.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var users []internal.User
	ok, err := readJSONFile(s.path("users.json"), &users)
	if err != nil {
		return nil, err
	}
	if !ok {
		users = internal.DefaultUsers()
		if err := atomicWriteFileJSON(s.path("users.json"), users); err != nil {
			return nil, err
		}
	}
	return users, nil
}

func (s *FileStorage) SaveUsers(ctx context.Context, users []internal.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return atomicWriteFileJSON(s.path("users.json"), users)
}

// --- SettingsRepository ---

func (s *FileStorage) GetSettings(ctx context.Context) (*internal.AppSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path("settings.json"))
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if os.IsNotExist(err) || len(bytes.TrimSpace(raw)) == 0 {
		settings := internal.DefaultSettings()
		if err := atomicWriteFileJSON(s.path("settings.json"), settings); err != nil {
			return nil, err
		}
		return settings, nil
	}

	var settings internal.AppSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return nil, err
	}
	// Legacy documents stored completedPages as a bare number; the decoder
	// migrates them, and the corrected document is written back once.
	if hasLegacyCompletedPages(raw) {
		s.logger.Infof("storage: migrating legacy completedPages in settings.json")
		if err := atomicWriteFileJSON(s.path("settings.json"), &settings); err != nil {
			return nil, err
		}
	}
	return &settings, nil
}

func (s *FileStorage) SaveSettings(ctx context.Context, settings *internal.AppSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return atomicWriteFileJSON(s.path("settings.json"), settings)
}

func hasLegacyCompletedPages(raw []byte) bool {
	var probe struct {
		Subjects []struct {
			Homework []struct {
				CompletedPages json.RawMessage `json:"completedPages"`
			} `json:"homework"`
		} `json:"subjects"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	for _, subj := range probe.Subjects {
		for _, hw := range subj.Homework {
			cp := bytes.TrimSpace(hw.CompletedPages)
			if len(cp) > 0 && cp[0] != '{' {
				return true
			}
		}
	}
	return false
}

// --- TaskCatalogRepository ---

func (s *FileStorage) GetDailyTasks(ctx context.Context) (*internal.DailyTaskList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var list internal.DailyTaskList
	ok, err := readJSONFile(s.path("daily-tasks.json"), &list)
	if err != nil {
		return nil, err
	}
	if !ok {
		defaults := internal.DefaultDailyTasks()
		if err := atomicWriteFileJSON(s.path("daily-tasks.json"), defaults); err != nil {
			return nil, err
		}
		return defaults, nil
	}
	if list.Tasks == nil {
		list.Tasks = []internal.DailyTask{}
	}
	return &list, nil
}

func (s *FileStorage) SaveDailyTasks(ctx context.Context, list *internal.DailyTaskList) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return atomicWriteFileJSON(s.path("daily-tasks.json"), list)
}

// --- CheckInRepository ---

func (s *FileStorage) GetDailyCheckIns(ctx context.Context, date string) (*internal.DailyCheckInData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var data internal.DailyCheckInData
	ok, err := readJSONFile(s.checkInPath(date), &data)
	if err != nil {
		// A corrupt day document reads as an empty day; the next write
		// replaces it.
		s.logger.Warnf("storage: unreadable check-in document for %s: %v", date, err)
		return internal.EmptyCheckInData(date), nil
	}
	if !ok {
		return internal.EmptyCheckInData(date), nil
	}
	data.Date = date
	normalizeCheckInData(&data)
	return &data, nil
}

func (s *FileStorage) SaveDailyCheckIns(ctx context.Context, data *internal.DailyCheckInData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	normalizeCheckInData(data)
	return atomicWriteFileJSON(s.checkInPath(data.Date), data)
}

func (s *FileStorage) ListCheckInDates(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listDateFiles(filepath.Join(s.dataDir, "checkins"))
}

// Older day documents predate the homeworkProgress log.
func normalizeCheckInData(data *internal.DailyCheckInData) {
	if data.CheckIns.User1 == nil {
		data.CheckIns.User1 = []internal.DailyCheckIn{}
	}
	if data.CheckIns.User2 == nil {
		data.CheckIns.User2 = []internal.DailyCheckIn{}
	}
	if data.HomeworkProgress.User1 == nil {
		data.HomeworkProgress.User1 = []internal.HomeworkProgressEntry{}
	}
	if data.HomeworkProgress.User2 == nil {
		data.HomeworkProgress.User2 = []internal.HomeworkProgressEntry{}
	}
}

// --- DayRepository ---

func (s *FileStorage) GetDayData(ctx context.Context, date string) (*internal.DayData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var data internal.DayData
	ok, err := readJSONFile(s.dayPath(date), &data)
	if err != nil {
		return nil, err
	}
	if ok {
		return &data, nil
	}

	// New days start from the default schedule template.
	var templates []internal.ScheduleTemplate
	tok, err := readJSONFile(s.path("templates.json"), &templates)
	if err != nil {
		return nil, err
	}
	if !tok {
		templates = internal.DefaultTemplates()
	}
	var blocks []internal.TimeBlock
	for i := range templates {
		if templates[i].IsDefault {
			blocks = templates[i].Blocks
			break
		}
	}
	if blocks == nil && len(templates) > 0 {
		blocks = templates[0].Blocks
	}

	fresh := &internal.DayData{
		Date:  date,
		User1: internal.UserDayData{Schedule: append([]internal.TimeBlock{}, blocks...), Tasks: []internal.Task{}},
		User2: internal.UserDayData{Schedule: append([]internal.TimeBlock{}, blocks...), Tasks: []internal.Task{}},
	}
	if err := atomicWriteFileJSON(s.dayPath(date), fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

func (s *FileStorage) SaveDayData(ctx context.Context, data *internal.DayData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return atomicWriteFileJSON(s.dayPath(data.Date), data)
}

func (s *FileStorage) ListDayDates(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return listDateFiles(filepath.Join(s.dataDir, "days"))
}

// --- TemplateRepository ---

func (s *FileStorage) GetTemplates(ctx context.Context) ([]internal.ScheduleTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var templates []internal.ScheduleTemplate
	ok, err := readJSONFile(s.path("templates.json"), &templates)
	if err != nil {
		return nil, err
	}
	if !ok {
		templates = internal.DefaultTemplates()
		if err := atomicWriteFileJSON(s.path("templates.json"), templates); err != nil {
			return nil, err
		}
	}
	return templates, nil
}

func (s *FileStorage) SaveTemplates(ctx context.Context, templates []internal.ScheduleTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return atomicWriteFileJSON(s.path("templates.json"), templates)
}

// --- TodoRepository ---

func (s *FileStorage) GetTodos(ctx context.Context) (*internal.GlobalTodoList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var todos internal.GlobalTodoList
	ok, err := readJSONFile(s.path("todos.json"), &todos)
	if err != nil {
		return nil, err
	}
	if !ok {
		defaults := internal.DefaultTodos()
		if err := atomicWriteFileJSON(s.path("todos.json"), defaults); err != nil {
			return nil, err
		}
		return defaults, nil
	}
	if todos.User1 == nil {
		todos.User1 = []internal.GlobalTodoItem{}
	}
	if todos.User2 == nil {
		todos.User2 = []internal.GlobalTodoItem{}
	}
	return &todos, nil
}

func (s *FileStorage) SaveTodos(ctx context.Context, todos *internal.GlobalTodoList) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return atomicWriteFileJSON(s.path("todos.json"), todos)
}

func (s *FileStorage) Close() error {
	return nil
}

// --- Compile-time assertions ---
var _ Store = (*FileStorage)(nil)
