package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
	"github.com/stripe/stripe-go/v74"

	"kiraya_backend/internal/controller"
	"kiraya_backend/internal/middleware"
	"kiraya_backend/internal/model"
	"kiraya_backend/pkg/apperror"
	"kiraya_backend/pkg/config"
	"kiraya_backend/pkg/cron"
	"kiraya_backend/pkg/database"
	"kiraya_backend/pkg/email"
	"kiraya_backend/pkg/seed"
	"kiraya_backend/pkg/utils/storage"
)

func setupRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", controller.Signup)
	auth.Post("/login", controller.Login)
	auth.Post("/verifyOTP", controller.VerifyOTP)
	auth.Post("/resendOTP", controller.ResendOTP)
	auth.Post("/forgotPassword", controller.ForgotPassword)
	auth.Patch("/resetPassword/:token", controller.ResetPassword)

	// User routes
	users := api.Group("/users", middleware.AuthMiddleware())
	users.Get("/me", controller.GetMe)
	users.Patch("/me", controller.UpdateMe)
	users.Delete("/me", controller.DeleteMe)

	// Plan catalog; mutations are admin-only
	plans := api.Group("/plans")
	plans.Get("/", controller.ListPlans)
	plans.Get("/:id", controller.GetPlan)
	plans.Post("/", middleware.AuthMiddleware(), middleware.RestrictTo(model.RoleAdmin), controller.CreatePlan)
	plans.Patch("/:id", middleware.AuthMiddleware(), middleware.RestrictTo(model.RoleAdmin), controller.UpdatePlan)
	plans.Delete("/:id", middleware.AuthMiddleware(), middleware.RestrictTo(model.RoleAdmin), controller.DeletePlan)

	// Listing-fee payments; the bare collection routes are the admin ledger
	payments := api.Group("/payments", middleware.AuthMiddleware(), middleware.RestrictTo(model.RoleOwner, model.RoleAdmin))
	payments.Post("/create-payment-intent", controller.CreatePaymentIntent)
	payments.Post("/record-payment/:planId", controller.RecordPayment)
	payments.Get("/my", controller.MyPayments)
	payments.Get("/", middleware.RestrictTo(model.RoleAdmin), controller.ListAllPayments)
	payments.Get("/:id", middleware.RestrictTo(model.RoleAdmin), controller.GetPayment)
	payments.Patch("/:id", middleware.RestrictTo(model.RoleAdmin), controller.UpdatePayment)
	payments.Delete("/:id", middleware.RestrictTo(model.RoleAdmin), controller.DeletePayment)

	// Property routes
	properties := api.Group("/properties")
	properties.Get("/", controller.ListProperties)
	properties.Get("/my-properties", middleware.AuthMiddleware(), middleware.RestrictTo(model.RoleOwner, model.RoleAdmin), controller.MyProperties)
	properties.Get("/:id", controller.GetProperty)
	properties.Post("/", middleware.AuthMiddleware(), middleware.RestrictTo(model.RoleOwner, model.RoleAdmin), controller.CreateProperty)
	properties.Patch("/verify/:id", middleware.AuthMiddleware(), middleware.RestrictTo(model.RoleAdmin), controller.VerifyProperty)
	properties.Patch("/:id", middleware.AuthMiddleware(), middleware.CheckPropertyOwnership(), controller.UpdateProperty)
	properties.Delete("/:id", middleware.AuthMiddleware(), middleware.CheckPropertyOwnership(), controller.DeleteProperty)

	// Booking routes
	bookings := api.Group("/bookings", middleware.AuthMiddleware())
	bookings.Post("/createBooking/:propertyId", controller.CreateBooking)
	bookings.Get("/my-bookings", controller.MyBookings)
	bookings.Get("/myBooking/:propertyId", controller.MyBookingForProperty)
	bookings.Patch("/approveBooking/:id", middleware.RestrictTo(model.RoleOwner, model.RoleAdmin), controller.ApproveBooking)
	bookings.Patch("/rejectBooking/:id", middleware.RestrictTo(model.RoleOwner, model.RoleAdmin), controller.RejectBooking)

	// Review routes
	reviews := api.Group("/reviews")
	reviews.Get("/property/:propertyId", controller.GetReviewsByProperty)
	reviews.Post("/", middleware.AuthMiddleware(), middleware.RestrictTo(model.RoleTenant), controller.CreateReview)
	reviews.Patch("/:id", middleware.AuthMiddleware(), controller.UpdateReview)
	reviews.Delete("/:id", middleware.AuthMiddleware(), controller.DeleteReview)

	// Rent payment routes
	rent := api.Group("/rent-payments", middleware.AuthMiddleware())
	rent.Post("/create-payment-intent", middleware.RestrictTo(model.RoleTenant), controller.CreateRentPaymentIntent)
	rent.Post("/initiate", middleware.RestrictTo(model.RoleTenant), controller.InitiateRentPayment)
	rent.Get("/check/:propertyId/:tenantId", controller.CheckRentPaymentStatus)
	rent.Patch("/verify/:paymentId", middleware.RestrictTo(model.RoleOwner, model.RoleAdmin), controller.VerifyRentPayment)
	rent.Get("/my", middleware.RestrictTo(model.RoleTenant), controller.MyRentPayments)
	rent.Get("/received", middleware.RestrictTo(model.RoleOwner, model.RoleAdmin), controller.ReceivedRentPayments)
	rent.Get("/property/:propertyId", middleware.RestrictTo(model.RoleOwner, model.RoleAdmin), controller.RentPaymentsByProperty)

	// Chat routes
	chats := api.Group("/chats", middleware.AuthMiddleware())
	chats.Post("/support", controller.SupportChat)
	chats.Post("/booking", controller.BookingChat)
	chats.Post("/message", controller.SendMessage)
	chats.Get("/messages/:conversationId", controller.GetMessages)
	chats.Get("/admin/support", middleware.RestrictTo(model.RoleAdmin), controller.ListSupportConversations)

	// Dashboard routes
	dashboard := api.Group("/dashboard", middleware.AuthMiddleware(), middleware.RestrictTo(model.RoleOwner, model.RoleAdmin))
	dashboard.Get("/stats", controller.GetDashboardStats)

	// Live message feed per conversation; members only
	app.Use("/ws", controller.WebsocketUpgrade)
	app.Get("/ws/:conversationId", middleware.AuthMiddleware(), controller.AuthorizeChatSocket, websocket.New(controller.ChatSocket))
}

func main() {
	cfg := config.Load()

	if cfg.Email.APIKey != "" {
		if err := email.InitEmailService(cfg.Email.APIKey, cfg.Email.From); err != nil {
			log.Fatal("Could not initialize email service:", err)
		}
	} else {
		log.Println("RESEND_API_KEY not set, emails disabled")
	}

	stripe.Key = cfg.Stripe.SecretKey

	if err := storage.InitStorage(cfg.Storage); err != nil {
		log.Printf("Storage init warning: %v", err)
	}

	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is not set in .env")
	}

	database.InitDB(cfg.Database.URL)
	err := database.MigrateDatabase(
		&model.User{},
		&model.Plan{},
		&model.Payment{},
		&model.PropertyListing{},
		&model.Booking{},
		&model.Review{},
		&model.RentPayment{},
		&model.Conversation{},
		&model.Message{},
	)
	if err != nil {
		log.Printf("Migration warning: %v", err)
	}

	seed.SeedPlans(database.GetDB())

	cron.InitListingExpiryCron()
	cron.InitRentOverdueCron()

	app := fiber.New(fiber.Config{
		ErrorHandler: apperror.Handler,
		BodyLimit:    25 * 1024 * 1024,
	})

	app.Use(logger.New())
	app.Use(cors.New())
	app.Use(helmet.New())
	app.Use("/api", limiter.New(limiter.Config{Max: 300}))

	setupRoutes(app)

	log.Printf("Server is running on port %s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
