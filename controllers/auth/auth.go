package authControllers

import (
	"net/http"
	"time"

	"github.com/XTHN9RF/Foodify-API/apperr"
	"github.com/XTHN9RF/Foodify-API/controllers/respond"
	"github.com/XTHN9RF/Foodify-API/services"
	"github.com/gin-gonic/gin"
)

const RefreshCookie = "refresh_token"

// CookieConfig controls the attributes of the refresh cookie.
type CookieConfig struct {
	Secure bool
	Domain string
}

type RegisterInput struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	LastName   string `json:"last_name"`
	Settlement string `json:"settlement"`
	Password   string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// The refresh token goes into an HTTP-only cookie; only the access token is
// readable by client scripts.
func setRefreshCookie(c *gin.Context, cfg CookieConfig, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(RefreshCookie, token, int(ttl.Seconds()), "/", cfg.Domain, cfg.Secure, true)
}

// POST /register
func Register(svc *services.Auth, cookies CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respond.BadInput(c, err)
			return
		}

		sess, err := svc.Register(c.Request.Context(), services.RegisterInput{
			Email:      input.Email,
			Name:       input.Name,
			LastName:   input.LastName,
			Settlement: input.Settlement,
			Password:   input.Password,
		})
		if err != nil {
			respond.Error(c, err)
			return
		}

		setRefreshCookie(c, cookies, sess.RefreshToken, svc.RefreshTTL())
		c.JSON(http.StatusCreated, gin.H{
			"access_token": sess.AccessToken,
			"user":         sess.User,
		})
	}
}

// POST /login
func Login(svc *services.Auth, cookies CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respond.BadInput(c, err)
			return
		}

		sess, err := svc.Login(c.Request.Context(), input.Email, input.Password)
		if err != nil {
			// An unknown email reads exactly like a wrong password.
			if apperr.Is(err, apperr.NotFound) {
				respond.ErrorWithStatus(c, http.StatusForbidden, err)
				return
			}
			respond.Error(c, err)
			return
		}

		setRefreshCookie(c, cookies, sess.RefreshToken, svc.RefreshTTL())
		c.JSON(http.StatusOK, gin.H{"access_token": sess.AccessToken})
	}
}

// GET /refresh
func Refresh(svc *services.Auth) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(RefreshCookie)
		access, err := svc.Refresh(c.Request.Context(), token)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"access_token": access})
	}
}

// POST /logout
func Logout(cookies CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(RefreshCookie, "", -1, "/", cookies.Domain, cookies.Secure, true)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}
