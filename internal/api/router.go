package api

import (
	"github.com/gin-gonic/gin"

	"github.com/lieyanc/studypk/internal/auth"
)

// NewRouter wires every endpoint. Everything except login sits behind the
// session middleware.
func NewRouter(app App) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestIDMiddleware())

	r.POST("/api/auth/login", PostLogin(app))

	g := r.Group("/api", auth.Middleware(app.Auth()))

	g.GET("/users", GetUsers(app))
	g.PUT("/users", PutUser(app))

	g.GET("/settings", GetSettings(app))
	g.PUT("/settings", PutSettings(app))

	g.GET("/daily-tasks", GetDailyTasks(app))
	g.PUT("/daily-tasks", PutDailyTasks(app))

	g.GET("/checkins/:date", GetCheckIns(app))
	g.PUT("/checkins/:date", PutCheckIns(app))
	g.POST("/checkins/:date/toggle", PostToggleCheckIn(app))
	g.POST("/checkins/:date/amount", PostCheckInAmount(app))

	g.GET("/pk/:date", GetPKStats(app))
	g.GET("/homework/:subjectId/:homeworkId/history", GetHomeworkHistory(app))

	g.GET("/days", GetDays(app))
	g.GET("/days/:date", GetDay(app))
	g.PUT("/days/:date", PutDay(app))

	g.GET("/templates", GetTemplates(app))
	g.PUT("/templates", PutTemplates(app))

	g.GET("/todos", GetTodos(app))
	g.PUT("/todos", PutTodos(app))

	g.GET("/stats/vacation", GetVacationProgress(app))
	g.GET("/stats/homework/:userId", GetHomeworkOverview(app))

	return r
}
