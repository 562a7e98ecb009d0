package api

import (
	"github.com/gin-gonic/gin"

	"github.com/lieyanc/studypk/internal"
	"github.com/lieyanc/studypk/internal/service"
)

func GetSettings(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := app.Store().GetSettings(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to load settings")
			return
		}
		HandleSuccess(c, app.Logger(), gin.H{"settings": settings}, nil)
	}
}

func PutSettings(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var settings internal.AppSettings
		if err := c.ShouldBindJSON(&settings); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		service.NormalizeSettings(&settings)
		if err := app.Store().SaveSettings(c.Request.Context(), &settings); err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save settings")
			return
		}
		HandleSuccess(c, app.Logger(), gin.H{"success": true}, nil)
	}
}

func GetUsers(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := app.Store().ListUsers(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to load users")
			return
		}
		HandleSuccess(c, app.Logger(), gin.H{"users": users}, nil)
	}
}

func PutUser(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.UpdateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateUpdateUserRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}
		ctx := c.Request.Context()

		users, err := app.Store().ListUsers(ctx)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to load users")
			return
		}
		users = service.UpdateUser(users, &req)
		if err := app.Store().SaveUsers(ctx, users); err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save users")
			return
		}
		HandleSuccess(c, app.Logger(), gin.H{"users": users}, nil)
	}
}
