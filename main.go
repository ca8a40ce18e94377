package main

import (
	"log"

	"gkb/config"
	"gkb/database"
	bookRoutes "gkb/routers/bookRoutes"
	quizRoutes "gkb/routers/quizRoutes"
	subscriptionRoutes "gkb/routers/subscriptionRoutes"
	userRoutes "gkb/routers/userRoutes"
	"gkb/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Liveness probe, no auth
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "OK",
			"message": "Service is running.",
		})
	})

	bookRoutes.SetupBookRoutes(app)
	quizRoutes.SetupQuizRoutes(app)
	userRoutes.SetupUserRoutes(app)
	subscriptionRoutes.SetupSubscriptionRoutes(app)

	utils.InitializeSubscriptionScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
