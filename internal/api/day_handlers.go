package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/lieyanc/studypk/internal"
	"github.com/lieyanc/studypk/internal/service"
)

// GetDays lists stored day documents, optionally bounded by from/to dates,
// with each user's day status alongside for calendar coloring.
func GetDays(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		from := c.Query("from")
		to := c.Query("to")
		if from != "" && !internal.ValidDate(from) {
			HandleError(c, app.Logger(), errBadDate, 400, "Invalid from date")
			return
		}
		if to != "" && !internal.ValidDate(to) {
			HandleError(c, app.Logger(), errBadDate, 400, "Invalid to date")
			return
		}
		if from != "" && to != "" && from > to {
			HandleError(c, app.Logger(), errors.New("from must be <= to"), 400, "Invalid range")
			return
		}
		ctx := c.Request.Context()

		dates, err := app.Store().ListDayDates(ctx)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to list days")
			return
		}

		days := []*internal.DayData{}
		statuses := map[string]internal.PerUser[internal.DayStatus]{}
		for _, date := range dates {
			if from != "" && date < from {
				continue
			}
			if to != "" && date > to {
				continue
			}
			day, err := app.Store().GetDayData(ctx, date)
			if err != nil {
				HandleError(c, app.Logger(), err, 500, "Failed to load day")
				return
			}
			days = append(days, day)
			statuses[date] = internal.PerUser[internal.DayStatus]{
				User1: service.DayStatusFor(day, internal.User1),
				User2: service.DayStatusFor(day, internal.User2),
			}
		}
		HandleSuccess(c, app.Logger(), days, map[string]any{"statuses": statuses})
	}
}

func GetDay(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		date, err := dateParam(c)
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid date")
			return
		}
		day, err := app.Store().GetDayData(c.Request.Context(), date)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to load day")
			return
		}
		HandleSuccess(c, app.Logger(), day, nil)
	}
}

func PutDay(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		date, err := dateParam(c)
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid date")
			return
		}
		var day internal.DayData
		if err := c.ShouldBindJSON(&day); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		day.Date = date
		if err := app.Store().SaveDayData(c.Request.Context(), &day); err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save day")
			return
		}
		HandleSuccess(c, app.Logger(), gin.H{"success": true}, nil)
	}
}

func GetTemplates(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		templates, err := app.Store().GetTemplates(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to load templates")
			return
		}
		HandleSuccess(c, app.Logger(), gin.H{"templates": templates}, nil)
	}
}

func PutTemplates(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Templates []internal.ScheduleTemplate `json:"templates"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := app.Store().SaveTemplates(c.Request.Context(), body.Templates); err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save templates")
			return
		}
		HandleSuccess(c, app.Logger(), gin.H{"success": true}, nil)
	}
}

func GetTodos(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		todos, err := app.Store().GetTodos(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to load todos")
			return
		}
		HandleSuccess(c, app.Logger(), gin.H{"todos": todos}, nil)
	}
}

func PutTodos(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var todos internal.GlobalTodoList
		if err := c.ShouldBindJSON(&todos); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := app.Store().SaveTodos(c.Request.Context(), &todos); err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save todos")
			return
		}
		HandleSuccess(c, app.Logger(), gin.H{"success": true}, nil)
	}
}
