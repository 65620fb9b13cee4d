package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"crm-management-api/internal/chat"
	"crm-management-api/internal/handler"
	"crm-management-api/internal/jobs"
	"crm-management-api/internal/memstore"
	"crm-management-api/internal/middleware"
	"crm-management-api/internal/store"
)

func main() {
	_ = godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	port := env("PORT", "8080")
	corsOrigins := env("CORS_ALLOWED_ORIGINS", "http://localhost:5173")

	// store: postgres when configured, otherwise process memory
	var st store.Store
	var pool *pgxpool.Pool
	if dbURL == "" {
		log.Println("DATABASE_URL not set, using in-memory store")
		st = memstore.New()
	} else {
		var err error
		pool, err = pgxpool.New(context.Background(), dbURL)
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		defer pool.Close()
		if err := pool.Ping(context.Background()); err != nil {
			log.Fatalf("db ping: %v", err)
		}
		log.Println("connected to postgres")

		// run migrations
		if migration, err := os.ReadFile("db/migrations/001_init.sql"); err != nil {
			log.Printf("migration file not found, skipping: %v", err)
		} else if _, err := pool.Exec(context.Background(), string(migration)); err != nil {
			log.Printf("migration warning: %v", err)
		} else {
			log.Println("migration applied")
		}

		st = store.NewPostgres(pool)
	}

	session := chat.NewSession()
	h := handler.New(st, session)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			log.Println("unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal server error",
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	rl := middleware.NewRateLimiter(5, 10)
	api := app.Group("/api", middleware.RateLimit(rl))
	h.Register(api)

	daily := jobs.NewSummaryLogger(st)
	if err := daily.Start(); err != nil {
		log.Fatalf("jobs: %v", err)
	}

	go func() {
		log.Printf("http on :%s", port)
		if err := app.Listen(":" + port); err != nil {
			log.Printf("http: %v", err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	log.Println("shutting down")
	daily.Stop()
	_ = app.Shutdown()
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
