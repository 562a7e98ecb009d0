package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/lieyanc/studypk/internal"
	"github.com/lieyanc/studypk/internal/api"
	"github.com/lieyanc/studypk/internal/auth"
	"github.com/lieyanc/studypk/internal/service"
	"github.com/lieyanc/studypk/internal/storage"
)

type testApp struct {
	logger internal.Logger
	store  storage.Store
	ledger *service.Ledger
	auth   auth.Provider
}

func (a *testApp) Logger() internal.Logger { return a.logger }
func (a *testApp) Store() storage.Store    { return a.store }
func (a *testApp) Ledger() *service.Ledger { return a.ledger }
func (a *testApp) Auth() auth.Provider     { return a.auth }

func setupRouter(t *testing.T) (*gin.Engine, storage.Store, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := internal.NopLogger{}

	store, err := storage.NewFileStorage(t.TempDir(), logger)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	provider, err := auth.NewJWTProvider("test-secret", "", "", logger)
	assert.NoError(t, err)

	r := api.NewRouter(&testApp{
		logger: logger,
		store:  store,
		ledger: service.NewLedger(store, store, store, logger),
		auth:   provider,
	})

	// No password configured, so any login yields a session token.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"password":""}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
	var login struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	assert.NotEmpty(t, login.Data.Token)

	return r, store, login.Data.Token
}

func testCtx() context.Context { return context.Background() }

func doJSON(r *gin.Engine, token, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req, _ = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRequestsWithoutTokenAreRejected(t *testing.T) {
	r, _, _ := setupRouter(t)
	w := doJSON(r, "", "GET", "/api/checkins/2026-02-10", "")
	assert.Equal(t, 401, w.Code)

	w = doJSON(r, "bogus-token", "GET", "/api/checkins/2026-02-10", "")
	assert.Equal(t, 401, w.Code)
}

func TestGetCheckInsEmptyDay(t *testing.T) {
	r, _, token := setupRouter(t)
	w := doJSON(r, token, "GET", "/api/checkins/2026-02-10", "")
	assert.Equal(t, 200, w.Code)

	var resp struct {
		Data struct {
			Date     string                        `json:"date"`
			CheckIns internal.UserCheckIns         `json:"checkIns"`
			Streaks  internal.PerUser[int]         `json:"streaks"`
			Tasks    []internal.DailyTask          `json:"tasks"`
			Progress internal.UserHomeworkProgress `json:"homeworkProgress"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2026-02-10", resp.Data.Date)
	assert.Empty(t, resp.Data.CheckIns.User1)
	assert.NotEmpty(t, resp.Data.Tasks)
	assert.Equal(t, 0, resp.Data.Streaks.User1)
}

func TestGetCheckInsInvalidDate(t *testing.T) {
	r, _, token := setupRouter(t)
	w := doJSON(r, token, "GET", "/api/checkins/not-a-date", "")
	assert.Equal(t, 400, w.Code)
}

func TestToggleCheckInSyncsSeededHomework(t *testing.T) {
	r, store, token := setupRouter(t)

	// Seeded dt-1 (背单词, target 50) links english/english-1 (500 词).
	w := doJSON(r, token, "POST", "/api/checkins/2026-02-10/toggle", `{"userId":"user1","taskId":"dt-1"}`)
	assert.Equal(t, 200, w.Code)

	settings, err := store.GetSettings(testCtx())
	assert.NoError(t, err)
	hw := settings.FindHomework("english", "english-1")
	assert.NotNil(t, hw)
	assert.Equal(t, 50, hw.CompletedPages.User1)
	assert.Equal(t, 0, hw.CompletedPages.User2)

	// Toggling back off reverses the sync.
	w = doJSON(r, token, "POST", "/api/checkins/2026-02-10/toggle", `{"userId":"user1","taskId":"dt-1"}`)
	assert.Equal(t, 200, w.Code)
	settings, err = store.GetSettings(testCtx())
	assert.NoError(t, err)
	assert.Equal(t, 0, settings.FindHomework("english", "english-1").CompletedPages.User1)
}

func TestPutCheckInsReplacesDay(t *testing.T) {
	r, store, token := setupRouter(t)

	body := `{
	  "checkIns": {"user1": [{"taskId": "dt-6", "completed": true, "amount": 30}], "user2": []},
	  "homeworkProgress": {"user1": [{"subjectId": "english", "homeworkId": "english-1", "amount": 50, "source": "checkin", "taskId": "dt-1", "timestamp": "2026-02-10T09:30:00Z"}], "user2": []}
	}`
	w := doJSON(r, token, "PUT", "/api/checkins/2026-02-10", body)
	assert.Equal(t, 200, w.Code)

	day, err := store.GetDailyCheckIns(testCtx(), "2026-02-10")
	assert.NoError(t, err)
	assert.Len(t, day.CheckIns.User1, 1)
	assert.Equal(t, "dt-6", day.CheckIns.User1[0].TaskID)
	assert.Len(t, day.HomeworkProgress.User1, 1)
	assert.Equal(t, 50, day.HomeworkProgress.User1[0].Amount)
}

func TestPutCheckInsWithoutProgressKeepsStoredLog(t *testing.T) {
	r, store, token := setupRouter(t)

	// A toggle records a progress-log entry for the synced amount.
	w := doJSON(r, token, "POST", "/api/checkins/2026-02-10/toggle", `{"userId":"user1","taskId":"dt-1"}`)
	assert.Equal(t, 200, w.Code)

	// Replacing the day without a homeworkProgress field must not drop the
	// log; the ledger needs it to reverse the sync later.
	w = doJSON(r, token, "PUT", "/api/checkins/2026-02-10", `{"checkIns":{"user1":[{"taskId":"dt-1","completed":true,"amount":50,"syncedAmount":50}],"user2":[]}}`)
	assert.Equal(t, 200, w.Code)

	day, err := store.GetDailyCheckIns(testCtx(), "2026-02-10")
	assert.NoError(t, err)
	assert.Len(t, day.HomeworkProgress.User1, 1)
	assert.Equal(t, "dt-1", day.HomeworkProgress.User1[0].TaskID)

	// The surviving log still supports reversal.
	w = doJSON(r, token, "POST", "/api/checkins/2026-02-10/toggle", `{"userId":"user1","taskId":"dt-1"}`)
	assert.Equal(t, 200, w.Code)
	settings, err := store.GetSettings(testCtx())
	assert.NoError(t, err)
	assert.Equal(t, 0, settings.FindHomework("english", "english-1").CompletedPages.User1)
}

func TestToggleCheckInValidation(t *testing.T) {
	r, _, token := setupRouter(t)

	w := doJSON(r, token, "POST", "/api/checkins/2026-02-10/toggle", `{"userId":"user3","taskId":"dt-1"}`)
	assert.Equal(t, 400, w.Code)

	w = doJSON(r, token, "POST", "/api/checkins/2026-02-10/toggle", `{"userId":"user1"}`)
	assert.Equal(t, 400, w.Code)
}

func TestSetCheckInAmountEndpoint(t *testing.T) {
	r, store, token := setupRouter(t)

	w := doJSON(r, token, "POST", "/api/checkins/2026-02-10/amount", `{"userId":"user1","taskId":"dt-1","amount":50}`)
	assert.Equal(t, 200, w.Code)

	settings, err := store.GetSettings(testCtx())
	assert.NoError(t, err)
	assert.Equal(t, 50, settings.FindHomework("english", "english-1").CompletedPages.User1)

	// Below-target amount reverts the counter.
	w = doJSON(r, token, "POST", "/api/checkins/2026-02-10/amount", `{"userId":"user1","taskId":"dt-1","amount":20}`)
	assert.Equal(t, 200, w.Code)
	settings, err = store.GetSettings(testCtx())
	assert.NoError(t, err)
	assert.Equal(t, 0, settings.FindHomework("english", "english-1").CompletedPages.User1)
}

func TestPKStatsEndpoint(t *testing.T) {
	r, _, token := setupRouter(t)

	doJSON(r, token, "POST", "/api/checkins/2026-02-10/toggle", `{"userId":"user1","taskId":"dt-1"}`)
	w := doJSON(r, token, "GET", "/api/pk/2026-02-10", "")
	assert.Equal(t, 200, w.Code)

	var resp struct {
		Data internal.PKStats `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.User1.Completed)
	assert.Equal(t, 0, resp.Data.User2.Completed)
	assert.Equal(t, 6, resp.Data.User1.Total)
}

func TestDailyTasksRoundTrip(t *testing.T) {
	r, _, token := setupRouter(t)

	w := doJSON(r, token, "PUT", "/api/daily-tasks", `{"tasks":[{"title":"跳绳","target":-3,"unit":"分钟"}]}`)
	assert.Equal(t, 200, w.Code)

	w = doJSON(r, token, "GET", "/api/daily-tasks", "")
	assert.Equal(t, 200, w.Code)
	var resp struct {
		Data internal.DailyTaskList `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Tasks, 1)
	assert.NotEmpty(t, resp.Data.Tasks[0].ID)
	assert.Equal(t, 0, resp.Data.Tasks[0].Target)
}

func TestHomeworkOverviewEndpoint(t *testing.T) {
	r, _, token := setupRouter(t)

	w := doJSON(r, token, "GET", "/api/stats/homework/user1", "")
	assert.Equal(t, 200, w.Code)

	w = doJSON(r, token, "GET", "/api/stats/homework/nobody", "")
	assert.Equal(t, 400, w.Code)
}

func TestDaysRangeValidation(t *testing.T) {
	r, _, token := setupRouter(t)

	w := doJSON(r, token, "GET", "/api/days?from=2026-02-20&to=2026-02-10", "")
	assert.Equal(t, 400, w.Code)

	w = doJSON(r, token, "GET", "/api/days?from=banana", "")
	assert.Equal(t, 400, w.Code)

	w = doJSON(r, token, "GET", "/api/days", "")
	assert.Equal(t, 200, w.Code)
}

func TestUpdateUserProfile(t *testing.T) {
	r, _, token := setupRouter(t)

	w := doJSON(r, token, "PUT", "/api/users", `{"id":"user2","name":"小明","progressColor":"#22c55e"}`)
	assert.Equal(t, 200, w.Code)

	var resp struct {
		Data struct {
			Users []internal.User `json:"users"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Users, 2)
	assert.Equal(t, "小明", resp.Data.Users[1].Name)
	assert.Equal(t, "#22c55e", resp.Data.Users[1].ProgressColor)
}
