package userControllers

import (
	"net/http"

	"github.com/XTHN9RF/Foodify-API/controllers/respond"
	"github.com/XTHN9RF/Foodify-API/middleware"
	"github.com/XTHN9RF/Foodify-API/services"
	"github.com/gin-gonic/gin"
)

type UpdateUserInput struct {
	Name       *string `json:"name"`
	LastName   *string `json:"last_name"`
	Settlement *string `json:"settlement"`
	Password   *string `json:"password"`
}

// GET /user
func GetUser(profile *services.Profile) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		user, err := profile.Get(c.Request.Context(), userID)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// GET /admin/users
func GetAllUsers(profile *services.Profile) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := profile.List(c.Request.Context())
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// PUT /user
func UpdateUser(profile *services.Profile) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var input UpdateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respond.BadInput(c, err)
			return
		}

		user, err := profile.Update(c.Request.Context(), userID, services.ProfileUpdate{
			Name:       input.Name,
			LastName:   input.LastName,
			Settlement: input.Settlement,
			Password:   input.Password,
		})
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
