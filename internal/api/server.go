package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/afc-website/internal/calendar"
	"github.com/afc-website/internal/config"
	"github.com/afc-website/internal/content"
	"github.com/afc-website/internal/forms"
)

// Dependencies are the services the HTTP API reads from.
type Dependencies struct {
	Catalog   *content.Catalog
	Directory *SermonDirectory
	Submitter *forms.Submitter
	Log       logrus.FieldLogger
	AccessLog logrus.FieldLogger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Server represents the API server
type Server struct {
	router    *gin.Engine
	catalog   *content.Catalog
	directory *SermonDirectory
	calendar  *calendar.Builder
	validator *forms.Validator
	submitter *forms.Submitter
	limiter   *rateLimiter
	log       logrus.FieldLogger
	now       func() time.Time
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, deps Dependencies) *Server {
	if deps.Log == nil {
		deps.Log = logrus.StandardLogger()
	}
	if deps.AccessLog == nil {
		deps.AccessLog = deps.Log
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	loc := deps.Catalog.Location()
	builder := calendar.NewBuilder(loc, deps.Log)
	builder.Now = deps.Now

	router := gin.New()
	router.Use(gin.Recovery(), requestID(), accessLog(deps.AccessLog))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With", requestIDHeader},
		ExposeHeaders:    []string{"Content-Length", requestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	server := &Server{
		router:    router,
		catalog:   deps.Catalog,
		directory: deps.Directory,
		calendar:  builder,
		validator: forms.NewValidator(),
		submitter: deps.Submitter,
		limiter:   newRateLimiter(cfg.FormRateLimit, cfg.FormRateBurst),
		log:       deps.Log,
		now:       deps.Now,
	}

	server.setupRoutes()

	return server
}

// setupRoutes configures all the routes for the server
func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	api := s.router.Group("/api")

	events := api.Group("/events")
	events.GET("", s.listEvents)
	events.GET("/featured", s.featuredEvents)
	events.GET("/calendar", s.calendarMonth)
	events.GET("/calendar.ics", s.calendarFeed)
	events.GET("/:id", s.getEvent)

	api.GET("/sermons", s.listSermons)
	api.GET("/sermons/latest", s.latestSermon)
	api.GET("/sermons/:videoId", s.getSermon)
	api.GET("/playlists", s.listPlaylists)

	api.GET("/ministries", s.listMinistries)
	api.GET("/ministries/:slug", s.getMinistry)
	api.GET("/leadership", s.listLeadership)

	submit := api.Group("", s.limiter.middleware())
	submit.POST("/contact", s.submitContact)
	submit.POST("/giving", s.submitDonation)
	submit.POST("/prayer-requests", s.submitPrayerRequest)
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.router
}
