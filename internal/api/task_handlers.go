package api

import (
	"github.com/gin-gonic/gin"

	"github.com/lieyanc/studypk/internal"
	"github.com/lieyanc/studypk/internal/service"
)

func GetDailyTasks(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		tasks, err := app.Store().GetDailyTasks(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to load daily tasks")
			return
		}
		HandleSuccess(c, app.Logger(), tasks, nil)
	}
}

func PutDailyTasks(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var list internal.DailyTaskList
		if err := c.ShouldBindJSON(&list); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		service.NormalizeDailyTasks(&list)
		if err := app.Store().SaveDailyTasks(c.Request.Context(), &list); err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save daily tasks")
			return
		}
		HandleSuccess(c, app.Logger(), gin.H{"success": true}, nil)
	}
}
