package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/NavalhaLabs/barber-manager/internal/audit"
	"github.com/NavalhaLabs/barber-manager/internal/config"
	"github.com/NavalhaLabs/barber-manager/internal/handlers"
	infraRepo "github.com/NavalhaLabs/barber-manager/internal/infra/repository"
	"github.com/NavalhaLabs/barber-manager/internal/logger"
	"github.com/NavalhaLabs/barber-manager/internal/middleware"
	"github.com/NavalhaLabs/barber-manager/internal/notification"
	"github.com/NavalhaLabs/barber-manager/internal/payment"
	"github.com/NavalhaLabs/barber-manager/internal/storage"
	"github.com/NavalhaLabs/barber-manager/internal/timezone"
	ucAppointment "github.com/NavalhaLabs/barber-manager/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	clock := timezone.RealClock{}

	auditDispatcher := audit.NewDispatcher(audit.New(db))

	notifySinks := []notification.Sink{notification.LogSink{}}
	if cfg.RedisAddr != "" {
		notifySinks = append(notifySinks,
			notification.NewRedisSink(cfg.RedisAddr, cfg.RedisPassword))
	}
	notifyDispatcher := notification.NewDispatcher(notifySinks...)

	var payments payment.StatusProvider
	if cfg.MPAccessToken != "" {
		provider, err := payment.NewMercadoPagoProvider(cfg.MPAccessToken)
		if err != nil {
			logger.L().Warn("mercado pago desabilitado", zap.Error(err))
		} else {
			payments = provider
		}
	}

	var uploader storage.Uploader
	if cfg.S3Bucket != "" {
		uploader = storage.NewS3Storage(cfg)
	}

	// ======================================================
	// USE CASES: APPOINTMENTS
	// ======================================================
	bookUC := ucAppointment.NewBookAppointment(appointmentRepo, auditDispatcher, clock)
	confirmUC := ucAppointment.NewConfirmAppointment(appointmentRepo, auditDispatcher, notifyDispatcher, clock)
	startUC := ucAppointment.NewStartAppointment(appointmentRepo, auditDispatcher, clock)
	completeUC := ucAppointment.NewCompleteAppointment(appointmentRepo, auditDispatcher, clock)
	cancelUC := ucAppointment.NewCancelAppointment(appointmentRepo, auditDispatcher, notifyDispatcher, clock)
	rescheduleUC := ucAppointment.NewRescheduleAppointment(appointmentRepo, auditDispatcher, notifyDispatcher, clock)

	listByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo)
	listByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo)
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)

	clientListUC := ucAppointment.NewListClientAppointments(appointmentRepo, payments, clock)
	clientCancelUC := ucAppointment.NewClientCancelAppointment(appointmentRepo, auditDispatcher, notifyDispatcher, clock)
	clientRescheduleUC := ucAppointment.NewClientRescheduleAppointment(appointmentRepo, auditDispatcher, notifyDispatcher, clock)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	barbershopHandler := handlers.NewBarbershopHandler(db, uploader)

	barberProductHandler := handlers.NewBarberProductHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		bookUC,
		confirmUC,
		startUC,
		completeUC,
		cancelUC,
		rescheduleUC,
		listByDateUC,
		listByMonthUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, bookUC, availabilityUC)
	clientAppointmentHandler := handlers.NewClientAppointmentHandler(
		clientListUC,
		clientCancelUC,
		clientRescheduleUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA (vitrine)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/products", publicHandler.ListProducts)
			publicAPI.GET("/:slug/availability", publicHandler.AvailabilityForClient)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)

			// autoatendimento do cliente (telefone + código)
			publicAPI.GET("/:slug/my-appointments", clientAppointmentHandler.List)
			publicAPI.PATCH("/:slug/my-appointments/:code/cancel", clientAppointmentHandler.Cancel)
			publicAPI.PATCH("/:slug/my-appointments/:code/reschedule", clientAppointmentHandler.Reschedule)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA (barbeiro)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/barbershop", barbershopHandler.GetMeBarbershop)
			secured.PATCH("/me/barbershop", barbershopHandler.UpdateMeBarbershop)
			secured.POST("/me/barbershop/logo", barbershopHandler.UploadLogo)

			secured.GET("/me/clients", clientHandler.List)
			secured.GET("/me/clients/:id/history", clientHandler.History)

			secured.GET("/me/products", barberProductHandler.List)
			secured.POST("/me/products", barberProductHandler.Create)
			secured.PATCH("/me/products/:id", barberProductHandler.Update)

			secured.GET("/me/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/working-hours", workingHoursHandler.Update)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/me/appointments/:id/start", appointmentHandler.Start)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/reschedule", appointmentHandler.Reschedule)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
