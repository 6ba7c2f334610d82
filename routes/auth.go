package routes

import (
	authControllers "github.com/XTHN9RF/Foodify-API/controllers/auth"
	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes registers the session endpoints. None of them take a bearer token.
func SetupAuthRoutes(r *gin.Engine, d Deps) {
	r.POST("/register", authControllers.Register(d.Auth, d.Cookies))
	r.POST("/login", authControllers.Login(d.Auth, d.Cookies))
	r.GET("/refresh", authControllers.Refresh(d.Auth))
	r.POST("/logout", authControllers.Logout(d.Cookies))
}
