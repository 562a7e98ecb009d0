package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/lieyanc/studypk/internal"
	"github.com/lieyanc/studypk/internal/service"
)

// GetVacationProgress reports how far through the configured vacation the
// given date (default today) falls.
func GetVacationProgress(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.DefaultQuery("date", internal.Today())
		if !internal.ValidDate(date) {
			HandleError(c, app.Logger(), errBadDate, 400, "Invalid date")
			return
		}
		settings, err := app.Store().GetSettings(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to load settings")
			return
		}
		progress := service.CalculateVacationProgress(settings.Vacation.StartDate, settings.Vacation.EndDate, date)
		HandleSuccess(c, app.Logger(), progress, map[string]any{"vacation": settings.Vacation.Name})
	}
}

// GetHomeworkOverview reports a user's overall homework percentage plus the
// per-subject breakdown, counting only subjects visible to that user.
func GetHomeworkOverview(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := internal.UserID(c.Param("userId"))
		if !userID.Valid() {
			HandleError(c, app.Logger(), errors.New("expected user1 or user2"), 400, "Invalid user")
			return
		}
		settings, err := app.Store().GetSettings(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to load settings")
			return
		}

		overall := service.CalculateHomeworkOverview(settings, userID)
		subjects := []gin.H{}
		for i := range settings.Subjects {
			subj := &settings.Subjects[i]
			if !subj.VisibleTo(userID) {
				continue
			}
			subjects = append(subjects, gin.H{
				"subjectId": subj.ID,
				"name":      subj.Name,
				"color":     subj.Color,
				"progress":  service.CalculateSubjectProgress(subj, userID),
			})
		}
		HandleSuccess(c, app.Logger(), gin.H{
			"overall":  overall,
			"subjects": subjects,
		}, nil)
	}
}
