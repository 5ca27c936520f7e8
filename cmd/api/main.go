package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/Windi-Fikriyansyah/serviceconnect/internal/config"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/db"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/handlers"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/models"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/realtime"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/services/requests"
	"github.com/Windi-Fikriyansyah/serviceconnect/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	gdb, err := db.Connect(cfg.DBDSN, cfg.DB)
	if err != nil {
		log.Fatal(err)
	}

	if err := models.AutoMigrate(gdb); err != nil {
		log.Fatal(err)
	}

	rdb := realtime.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Printf("[Redis] not reachable, notices stay local: %v", err)
		rdb = nil
	}

	hub := realtime.NewHub()
	go hub.Run()
	notifier := realtime.NewNotifier(hub, rdb)

	st := store.New(gdb)
	svc := requests.NewRequestService(st.Requests, st.Proposals, st.Profiles, notifier)

	app := fiber.New(fiber.Config{AppName: "ServiceConnect"})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))

	handlers.Register(app, handlers.Deps{
		Config:   cfg,
		Stores:   st,
		Service:  svc,
		Hub:      hub,
		Notifier: notifier,
	})

	log.Fatal(app.Listen(":" + cfg.AppPort))
}
