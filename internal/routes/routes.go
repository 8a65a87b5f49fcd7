package routes

import (
	"io"
	"net/http"

	ginlogger "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	logrus "github.com/sirupsen/logrus"

	"school_transport/internal/controllers"
	"school_transport/internal/middleware"
	"school_transport/internal/services"
	"school_transport/internal/storage"
	"school_transport/internal/validator"
)

// Deps is everything the HTTP layer needs. AccessLog may be nil to disable
// the access log.
type Deps struct {
	Log       *logrus.Logger
	AccessLog io.Writer
	Tokens    *middleware.TokenManager

	Users         *services.UserService
	Drivers       *services.DriverService
	Trips         *services.TripService
	Resets        *services.ResetService
	Incidents     *services.IncidentService
	Notifications *services.NotificationService
	Dashboard     *services.DashboardService
	Schools       *services.SchoolService
	Store         storage.Store
}

func SetupRouter(d Deps) (*gin.Engine, error) {
	if err := validator.Register(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(d.Log))
	if d.AccessLog != nil {
		r.Use(ginlogger.SetLogger(
			ginlogger.WithWriter(d.AccessLog),
			ginlogger.WithUTC(true),
			ginlogger.WithSkipPath([]string{"/health", "/metrics"}),
		))
	}
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics())

	// Preflight requests are answered by the CORS middleware; this catches
	// OPTIONS on any path so they never fall through to 404.
	r.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	AuthRoutes(r, controllers.NewAuthController(d.Users, d.Resets, d.Tokens), d.Tokens)
	UserRoutes(r, controllers.NewUserController(d.Users), d.Tokens)
	DriverRoutes(r, controllers.NewDriverController(d.Drivers), d.Tokens)
	TripRoutes(r, controllers.NewTripController(d.Trips))
	SchoolRoutes(r, controllers.NewSchoolController(d.Schools), d.Tokens)
	ReportRoutes(r,
		controllers.NewIncidentController(d.Incidents),
		controllers.NewNotificationController(d.Notifications),
		controllers.NewDashboardController(d.Dashboard),
	)
	UploadRoutes(r, controllers.NewUploadController(d.Store), d.Tokens)

	return r, nil
}
