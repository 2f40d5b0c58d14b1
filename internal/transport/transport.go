package transport

import (
	"time"

	"github.com/athletichub/athletichub/config"
	"github.com/athletichub/athletichub/internal/service"
	"github.com/athletichub/athletichub/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

// InitRoutes wires the page surface and the JSON API. Protected routes are
// wrapped by the authorization guard; unmatched paths render the not-found
// view.
func InitRoutes(
	cfg *config.Config,
	sessions service.SessionService,
	pageHandler *PageHandler,
	authHandler *AuthHandler,
	eventHandler *EventHandler,
	hubHandler *HubHandler,
	bookingHandler *BookingHandler,
) *gin.Engine {

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30 * time.Second))
	router.Use(middleware.SessionID(cfg.Session.CookieName, int(cfg.Session.CookieMaxAge.Seconds())))

	router.Static("/static", "./web/static")
	router.LoadHTMLGlob("web/templates/*.html")

	guard := middleware.RequireSession(sessions)

	// Page routes
	router.GET("/", pageHandler.Home)
	router.GET("/hubs", pageHandler.Hubs)
	router.GET("/hubs/:id", pageHandler.HubDetails)
	router.GET("/events/:id", pageHandler.EventDetails)
	router.GET("/login", pageHandler.Login)
	router.GET("/register", pageHandler.Register)

	// Protected pages
	router.GET("/create-event", guard, pageHandler.CreateEvent)
	router.GET("/updateEvent/:id", guard, pageHandler.UpdateEvent)
	router.GET("/myBookings", guard, pageHandler.MyBookings)
	router.GET("/booking/:id", guard, pageHandler.Booking)
	router.GET("/manageEvents", guard, pageHandler.ManageEvents)

	// API routes
	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/oauth/:provider", authHandler.LoginOAuth)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/session", authHandler.Session)
			auth.PUT("/profile", guard, authHandler.UpdateProfile)
		}

		events := api.Group("/events")
		{
			events.GET("", eventHandler.GetAllEvents)
			events.GET("/:id", eventHandler.GetEvent)
			events.POST("", guard, eventHandler.CreateEvent)
			events.PUT("/:id", guard, eventHandler.UpdateEvent)
			events.DELETE("/:id", guard, eventHandler.DeleteEvent)
		}
		api.GET("/my-events", guard, eventHandler.GetMyEvents)

		hubs := api.Group("/hubs")
		{
			hubs.GET("", hubHandler.GetAllHubs)
			hubs.GET("/:id", hubHandler.GetHub)
		}
		api.GET("/search", hubHandler.Search)

		bookings := api.Group("/bookings", guard)
		{
			bookings.POST("", bookingHandler.CreateBooking)
			bookings.GET("", bookingHandler.GetMyBookings)
			bookings.GET("/status", bookingHandler.BookingStatus)
			bookings.GET("/form/:id", bookingHandler.BookingForm)
			bookings.DELETE("/:id", bookingHandler.CancelBooking)
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Error boundary for everything unmatched.
	router.NoRoute(pageHandler.NotFound)

	return router
}
