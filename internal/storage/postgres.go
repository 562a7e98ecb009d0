package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lieyanc/studypk/internal"
)

// PostgresStorage stores the same whole-replace JSON documents as the file
// backend, one row per document in a jsonb column. Keys are the singleton
// document names plus "checkins/<date>" and "days/<date>".
type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

const (
	keyUsers      = "users"
	keySettings   = "settings"
	keyDailyTasks = "daily-tasks"
	keyTemplates  = "templates"
	keyTodos      = "todos"
)

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	s := &PostgresStorage{pool: pool, logger: logger}
	if _, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS documents (key TEXT PRIMARY KEY, doc JSONB NOT NULL)`); err != nil {
		logger.Errorf("failed to create documents table: %v", err)
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (p *PostgresStorage) getDoc(ctx context.Context, key string, v any) (bool, error) {
	var raw []byte
	err := p.pool.QueryRow(ctx, `SELECT doc FROM documents WHERE key = $1`, key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		p.logger.Errorf("failed to read document %s: %v", key, err)
		return false, err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, err
	}
	return true, nil
}

func (p *PostgresStorage) putDoc(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO documents (key, doc) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc`, key, raw)
	if err != nil {
		p.logger.Errorf("failed to write document %s: %v", key, err)
	}
	return err
}

func (p *PostgresStorage) listKeys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT key FROM documents WHERE key LIKE $1 || '%' ORDER BY key`, prefix)
	if err != nil {
		p.logger.Errorf("failed to list documents %s: %v", prefix, err)
		return nil, err
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k[len(prefix):])
	}
	return keys, rows.Err()
}

// --- UserRepository ---

func (p *PostgresStorage) ListUsers(ctx context.Context) ([]internal.User, error) {
	var users []internal.User
	ok, err := p.getDoc(ctx, keyUsers, &users)
	if err != nil {
		return nil, err
	}
	if !ok {
		users = internal.DefaultUsers()
		if err := p.putDoc(ctx, keyUsers, users); err != nil {
			return nil, err
		}
	}
	return users, nil
}

func (p *PostgresStorage) SaveUsers(ctx context.Context, users []internal.User) error {
	return p.putDoc(ctx, keyUsers, users)
}

// --- SettingsRepository ---

func (p *PostgresStorage) GetSettings(ctx context.Context) (*internal.AppSettings, error) {
	var raw []byte
	err := p.pool.QueryRow(ctx, `SELECT doc FROM documents WHERE key = $1`, keySettings).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		defaults := internal.DefaultSettings()
		if err := p.putDoc(ctx, keySettings, defaults); err != nil {
			return nil, err
		}
		return defaults, nil
	}
	if err != nil {
		p.logger.Errorf("failed to read document %s: %v", keySettings, err)
		return nil, err
	}

	var settings internal.AppSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return nil, err
	}
	// Same legacy completedPages migration as the file backend: the decoder
	// folds bare numbers into the user1 slot, the corrected row is written
	// back once.
	if hasLegacyCompletedPages(raw) {
		p.logger.Infof("storage: migrating legacy completedPages in settings document")
		if err := p.putDoc(ctx, keySettings, &settings); err != nil {
			return nil, err
		}
	}
	return &settings, nil
}

func (p *PostgresStorage) SaveSettings(ctx context.Context, settings *internal.AppSettings) error {
	return p.putDoc(ctx, keySettings, settings)
}

// --- TaskCatalogRepository ---

func (p *PostgresStorage) GetDailyTasks(ctx context.Context) (*internal.DailyTaskList, error) {
	var list internal.DailyTaskList
	ok, err := p.getDoc(ctx, keyDailyTasks, &list)
	if err != nil {
		return nil, err
	}
	if !ok {
		defaults := internal.DefaultDailyTasks()
		if err := p.putDoc(ctx, keyDailyTasks, defaults); err != nil {
			return nil, err
		}
		return defaults, nil
	}
	if list.Tasks == nil {
		list.Tasks = []internal.DailyTask{}
	}
	return &list, nil
}

func (p *PostgresStorage) SaveDailyTasks(ctx context.Context, list *internal.DailyTaskList) error {
	return p.putDoc(ctx, keyDailyTasks, list)
}

// --- CheckInRepository ---

func (p *PostgresStorage) GetDailyCheckIns(ctx context.Context, date string) (*internal.DailyCheckInData, error) {
	var data internal.DailyCheckInData
	ok, err := p.getDoc(ctx, "checkins/"+date, &data)
	if err != nil || !ok {
		return internal.EmptyCheckInData(date), err
	}
	data.Date = date
	normalizeCheckInData(&data)
	return &data, nil
}

func (p *PostgresStorage) SaveDailyCheckIns(ctx context.Context, data *internal.DailyCheckInData) error {
	normalizeCheckInData(data)
	return p.putDoc(ctx, "checkins/"+data.Date, data)
}

func (p *PostgresStorage) ListCheckInDates(ctx context.Context) ([]string, error) {
	return p.listKeys(ctx, "checkins/")
}

// --- DayRepository ---

func (p *PostgresStorage) GetDayData(ctx context.Context, date string) (*internal.DayData, error) {
	var data internal.DayData
	ok, err := p.getDoc(ctx, "days/"+date, &data)
	if err != nil {
		return nil, err
	}
	if ok {
		return &data, nil
	}

	templates, err := p.GetTemplates(ctx)
	if err != nil {
		return nil, err
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
	if err := p.putDoc(ctx, "days/"+date, fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

func (p *PostgresStorage) SaveDayData(ctx context.Context, data *internal.DayData) error {
	return p.putDoc(ctx, "days/"+data.Date, data)
}

func (p *PostgresStorage) ListDayDates(ctx context.Context) ([]string, error) {
	return p.listKeys(ctx, "days/")
}

// --- TemplateRepository ---

func (p *PostgresStorage) GetTemplates(ctx context.Context) ([]internal.ScheduleTemplate, error) {
	var templates []internal.ScheduleTemplate
	ok, err := p.getDoc(ctx, keyTemplates, &templates)
	if err != nil {
		return nil, err
	}
	if !ok {
		templates = internal.DefaultTemplates()
		if err := p.putDoc(ctx, keyTemplates, templates); err != nil {
			return nil, err
		}
	}
	return templates, nil
}

func (p *PostgresStorage) SaveTemplates(ctx context.Context, templates []internal.ScheduleTemplate) error {
	return p.putDoc(ctx, keyTemplates, templates)
}

// --- TodoRepository ---

func (p *PostgresStorage) GetTodos(ctx context.Context) (*internal.GlobalTodoList, error) {
	var todos internal.GlobalTodoList
	ok, err := p.getDoc(ctx, keyTodos, &todos)
	if err != nil {
		return nil, err
	}
	if !ok {
		defaults := internal.DefaultTodos()
		if err := p.putDoc(ctx, keyTodos, defaults); err != nil {
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

func (p *PostgresStorage) SaveTodos(ctx context.Context, todos *internal.GlobalTodoList) error {
	return p.putDoc(ctx, keyTodos, todos)
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// --- Compile-time assertions ---
var _ Store = (*PostgresStorage)(nil)
