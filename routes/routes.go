package routes

import (
	"net/http"
	"time"

	authControllers "github.com/XTHN9RF/Foodify-API/controllers/auth"
	"github.com/XTHN9RF/Foodify-API/feed"
	"github.com/XTHN9RF/Foodify-API/middleware"
	"github.com/XTHN9RF/Foodify-API/services"
	"github.com/XTHN9RF/Foodify-API/uploads"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps carries everything the route groups hand to their controllers.
type Deps struct {
	Auth    *services.Auth
	Profile *services.Profile
	Catalog *services.Catalog
	Cart    *services.Cart
	Orders  *services.Orders
	Feed    *feed.Hub
	Storage *uploads.Storage

	AdminAPIKey  string
	Cookies      authControllers.CookieConfig
	AllowOrigins []string
}

// NewEngine builds the gin engine with CORS, static uploads and every route group.
func NewEngine(d Deps) *gin.Engine {
	r := gin.Default()

	// Product spreadsheets and images come in as multipart bodies.
	r.MaxMultipartMemory = 32 << 20

	corsConfig := cors.Config{
		AllowOrigins:     d.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.APIKeyHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{"*"}
	}
	r.Use(cors.New(corsConfig))

	r.Static(uploads.PublicPrefix, d.Storage.Root())
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	SetupRoutes(r, d)
	return r
}

// SetupRoutes is the single entry-point that wires up Auth, User, Order and Admin route groups.
func SetupRoutes(r *gin.Engine, d Deps) {
	// 1️⃣ Public auth routes (refresh reads its cookie)
	SetupAuthRoutes(r, d)

	// 2️⃣ User routes (bearer token)
	SetupUserRoutes(r, d)

	// 3️⃣ Order routes (bearer token)
	SetupOrderRoutes(r, d)

	// 4️⃣ Admin routes (API key)
	SetupAdminRoutes(r, d)
}
