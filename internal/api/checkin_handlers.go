package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/lieyanc/studypk/internal"
	"github.com/lieyanc/studypk/internal/service"
)

var errBadDate = errors.New("expected YYYY-MM-DD")

func dateParam(c *gin.Context) (string, error) {
	date := c.Param("date")
	if !internal.ValidDate(date) {
		return "", errBadDate
	}
	return date, nil
}

// GetCheckIns returns the day's check-in document plus the derived state
// the check-in screen renders alongside it: both streaks and the current
// task catalog.
func GetCheckIns(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		date, err := dateParam(c)
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid date")
			return
		}
		ctx := c.Request.Context()

		day, err := app.Ledger().GetDay(ctx, date)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to load check-ins")
			return
		}
		streaks, err := app.Ledger().Streaks(ctx, date)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to compute streaks")
			return
		}
		tasks, err := app.Store().GetDailyTasks(ctx)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to load daily tasks")
			return
		}

		HandleSuccess(c, app.Logger(), gin.H{
			"date":             day.Date,
			"checkIns":         day.CheckIns,
			"homeworkProgress": day.HomeworkProgress,
			"streaks":          streaks,
			"tasks":            tasks.Tasks,
		}, nil)
	}
}

type putCheckInsRequest struct {
	CheckIns         internal.UserCheckIns          `json:"checkIns"`
	HomeworkProgress *internal.UserHomeworkProgress `json:"homeworkProgress"`
}

// PutCheckIns replaces the whole day document. The progress log is kept
// when the client omits it, since the ledger needs it to reverse syncs.
func PutCheckIns(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		date, err := dateParam(c)
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid date")
			return
		}
		var body putCheckInsRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		ctx := c.Request.Context()

		data := &internal.DailyCheckInData{Date: date, CheckIns: body.CheckIns}
		if body.HomeworkProgress != nil {
			data.HomeworkProgress = *body.HomeworkProgress
		} else {
			current, err := app.Ledger().GetDay(ctx, date)
			if err != nil {
				HandleError(c, app.Logger(), err, 500, "Failed to load check-ins")
				return
			}
			data.HomeworkProgress = current.HomeworkProgress
		}

		if err := app.Ledger().ReplaceDay(ctx, data); err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save check-ins")
			return
		}
		HandleSuccess(c, app.Logger(), gin.H{"success": true}, nil)
	}
}

func PostToggleCheckIn(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		date, err := dateParam(c)
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid date")
			return
		}
		var req service.ToggleCheckInRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateToggleCheckInRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		day, err := app.Ledger().ToggleCheckIn(c.Request.Context(), date, internal.UserID(req.UserID), req.TaskID, req.Amount)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to toggle check-in")
			return
		}
		HandleSuccess(c, app.Logger(), day, nil)
	}
}

func PostCheckInAmount(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		date, err := dateParam(c)
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid date")
			return
		}
		var req service.SetAmountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateSetAmountRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		day, err := app.Ledger().SetCheckInAmount(c.Request.Context(), date, internal.UserID(req.UserID), req.TaskID, req.Amount)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to set check-in amount")
			return
		}
		HandleSuccess(c, app.Logger(), day, nil)
	}
}

func GetPKStats(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		date, err := dateParam(c)
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid date")
			return
		}
		ctx := c.Request.Context()

		day, err := app.Ledger().GetDay(ctx, date)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to load check-ins")
			return
		}
		tasks, err := app.Store().GetDailyTasks(ctx)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to load daily tasks")
			return
		}
		streaks, err := app.Ledger().Streaks(ctx, date)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to compute streaks")
			return
		}

		stats := service.CalculatePKStats(date, day, len(tasks.Tasks), streaks)
		HandleSuccess(c, app.Logger(), stats, nil)
	}
}

func GetHomeworkHistory(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		subjectID := c.Param("subjectId")
		homeworkID := c.Param("homeworkId")
		history, err := app.Ledger().HomeworkHistory(c.Request.Context(), subjectID, homeworkID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to load homework history")
			return
		}
		HandleSuccess(c, app.Logger(), history, nil)
	}
}
