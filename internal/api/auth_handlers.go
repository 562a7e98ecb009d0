package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lieyanc/studypk/internal/auth"
	"github.com/lieyanc/studypk/internal/response"
	"github.com/lieyanc/studypk/internal/service"
)

func PostLogin(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		token, err := app.Auth().Login(c.Request.Context(), req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, response.Unauthorized("Wrong password"))
				return
			}
			HandleError(c, app.Logger(), err, 500, "Login failed")
			return
		}
		HandleSuccess(c, app.Logger(), gin.H{"token": token}, nil)
	}
}
