package main

import (
	"log"
	"time"

	"rplsite/config"
	"rplsite/database"
	"rplsite/middleware"
	"rplsite/revalidate"
	"rplsite/routers"
	"rplsite/utils"

	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	cfg := config.AppConfig

	if _, err := database.SeedAdmin(database.Database.Db, cfg.AdminEmail, cfg.AdminPassword, cfg.SaltRound); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	utils.Mail = utils.NewMailer(cfg.SendgridApiKey, cfg.EmailSender, cfg.EmailSenderName)

	// Cache invalidation: frontend webhook and/or redis page cache
	var notifiers revalidate.Multi
	if cfg.RevalidateURL != "" {
		notifiers = append(notifiers, revalidate.NewWebhook(cfg.RevalidateURL, cfg.RevalidateSecret))
	}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		middleware.Pages = revalidate.NewPageCache(rdb, time.Duration(cfg.PageCacheTTL)*time.Second)
		notifiers = append(notifiers, middleware.Pages)
	}
	if len(notifiers) > 0 {
		revalidate.Default = notifiers
	}

	audit, err := utils.InitializeOrderingAudit(cfg.OrderingAuditCron, database.Database.Db, database.Database.TxOptions, revalidate.Default)
	if err != nil {
		log.Fatalf("Failed to start ordering audit: %v", err)
	}
	defer audit.Stop()

	app := routers.NewApp(
		cors.New(cors.Config{
			AllowOrigins: cfg.CorsOrigins,
			AllowMethods: "GET,POST,PUT,PATCH,DELETE",  // Allowed HTTP methods
			AllowHeaders: "Content-Type,Authorization", // Allowed headers
		}),
		// log all requests
		logger.New(logger.Config{
			Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
		}),
	)

	log.Printf("Server is running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
