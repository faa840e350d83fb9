package api

import (
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/gsc-community/events-api/docs"
	v1 "github.com/gsc-community/events-api/internal/api/handler/v1"
	"github.com/gsc-community/events-api/internal/api/middleware"
	"github.com/gsc-community/events-api/internal/badge"
	"github.com/gsc-community/events-api/internal/config"
	"github.com/gsc-community/events-api/internal/identity"
	"github.com/gsc-community/events-api/internal/notify"
	"github.com/gsc-community/events-api/internal/repository"
	"github.com/gsc-community/events-api/internal/repository/dao"
	"github.com/gsc-community/events-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	store  repository.RecordStore
	mailer notify.Mailer
	redis  *redis.Client
}

func NewServer(conf *config.AppConfig, db *gorm.DB, rdb *redis.Client) *Server {
	if conf.API.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
		store:  dao.NewRecordDAO(db),
		redis:  rdb,
	}
	s.mailer = notify.NewSendGridMailer(
		conf.Mail.SendGridAPIKey,
		conf.Mail.SenderAddress,
		conf.Mail.SenderName,
		conf.API.SiteURL,
	)

	s.MountMiddlewares()

	eventHandler := s.initEventHandler()
	registrationHandler := s.initRegistrationHandler()
	checkInHandler := s.initCheckInHandler()
	badgeHandler := s.initBadgeHandler()
	volunteerHandler := s.initVolunteerHandler()
	ticketHandler := s.initTicketHandler()
	s.MountHandlers(eventHandler, registrationHandler, checkInHandler, badgeHandler, volunteerHandler, ticketHandler)

	return s
}

func (s *Server) initEventHandler() *v1.EventHandler {
	events := repository.NewEventRepository(s.store)
	regs := repository.NewRegistrationRepository(s.store)
	notifier := notify.NewDiscordNotifier(s.Config.Discord.BotToken, s.Config.Discord.NotificationsChannel)
	dispatcher := notify.NewGitHubDispatcher(s.Config.GitHub.Token, s.Config.GitHub.RepoOwner, s.Config.GitHub.RepoName)
	svc := service.NewEventService(events, regs, notifier, dispatcher)

	return v1.NewEventHandler(svc)
}

func (s *Server) initRegistrationHandler() *v1.RegistrationHandler {
	events := repository.NewEventRepository(s.store)
	regs := repository.NewRegistrationRepository(s.store)
	demos := repository.NewDemographicsRepository(s.store)
	svc := service.NewRegistrationService(events, regs, demos, s.mailer)

	return v1.NewRegistrationHandler(svc)
}

func (s *Server) initCheckInHandler() *v1.CheckInHandler {
	regs := repository.NewRegistrationRepository(s.store)
	svc := service.NewCheckInService(regs)

	return v1.NewCheckInHandler(svc)
}

func (s *Server) initBadgeHandler() *v1.BadgeHandler {
	events := repository.NewEventRepository(s.store)
	regs := repository.NewRegistrationRepository(s.store)
	badges := repository.NewBadgeRepository(s.store)
	svc := service.NewBadgeService(events, regs, badges, badge.NewSVGRenderer(), s.mailer)

	return v1.NewBadgeHandler(svc)
}

func (s *Server) initVolunteerHandler() *v1.VolunteerHandler {
	events := repository.NewEventRepository(s.store)
	volunteers := repository.NewVolunteerRepository(s.store)
	svc := service.NewVolunteerService(events, volunteers)

	return v1.NewVolunteerHandler(svc)
}

func (s *Server) initTicketHandler() *v1.TicketHandler {
	events := repository.NewEventRepository(s.store)
	regs := repository.NewRegistrationRepository(s.store)
	svc := service.NewTicketService(events, regs)

	return v1.NewTicketHandler(svc)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))

	apps := repository.NewApplicationRepository(s.store)
	volunteers := repository.NewVolunteerRepository(s.store)
	resolver := identity.NewResolver(apps, volunteers)
	s.Router.Use(middleware.ResolvePrincipal(identity.NewHeaderProvider(), resolver))
}

func (s *Server) MountHandlers(
	eventHandler *v1.EventHandler,
	registrationHandler *v1.RegistrationHandler,
	checkInHandler *v1.CheckInHandler,
	badgeHandler *v1.BadgeHandler,
	volunteerHandler *v1.VolunteerHandler,
	ticketHandler *v1.TicketHandler,
) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.GET("/events/:slug", eventHandler.HandleGetEvent)
	}

	authed := s.Router.Group(basePath, middleware.RequireAuth())
	{
		authed.POST("/registrations",
			middleware.RateLimit(s.redis, "register", 10, 6*time.Minute),
			registrationHandler.HandleRegister)
		authed.POST("/registrations/cancel", registrationHandler.HandleCancel)
		authed.GET("/tickets", ticketHandler.HandleMyTickets)
	}

	door := s.Router.Group(basePath, middleware.RequireRoles("admin", "volunteer"))
	{
		door.POST("/checkin", checkInHandler.HandleCheckIn)
	}

	admin := s.Router.Group(basePath, middleware.RequireRoles("admin"))
	{
		admin.POST("/events", eventHandler.HandleCreateEvent)
		admin.POST("/registrations/admin", registrationHandler.HandleAdminRegister)
		admin.POST("/registrations/roles", registrationHandler.HandleUpdateRoles)
		admin.POST("/badges/issue", badgeHandler.HandleIssueBadges)
		admin.GET("/attendance", eventHandler.HandleListAttendance)
		admin.GET("/attendance/:eventID", eventHandler.HandleAttendanceDetail)
		admin.GET("/attendance/:eventID/csv", eventHandler.HandleAttendanceCSV)
		admin.POST("/attendance/status", eventHandler.HandleUpdateEventStatus)
		admin.GET("/volunteers", volunteerHandler.HandleListVolunteers)
		admin.POST("/volunteers", volunteerHandler.HandleAddVolunteer)
		admin.DELETE("/volunteers/:volunteerID", volunteerHandler.HandleRemoveVolunteer)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Community Events API"
	docs.SwaggerInfo.Description = "Event registration, check-in and badge issuance for community chapters."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
