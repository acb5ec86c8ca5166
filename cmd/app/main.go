package main

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/sasyamantra/storefront-backend/internal/cart"
	"github.com/sasyamantra/storefront-backend/internal/config"
	"github.com/sasyamantra/storefront-backend/internal/content"
	"github.com/sasyamantra/storefront-backend/internal/feedback"
	"github.com/sasyamantra/storefront-backend/internal/logger"
	"github.com/sasyamantra/storefront-backend/internal/order"
	"github.com/sasyamantra/storefront-backend/internal/product"
	"github.com/sasyamantra/storefront-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.New("storefront", cfg.LogLevel)

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLogger(log))

	// repositories: Postgres when DATABASE_URL is set, seeded in-memory
	// otherwise so the storefront runs standalone in dev
	var (
		userRepo     user.Repository
		productRepo  product.Repository
		orderRepo    order.Repository
		feedbackRepo feedback.Repository
		contentRepo  content.Repository
		discounts    cart.DiscountRepository
	)
	if cfg.DatabaseURL != "" {
		db := mustOpenDB(cfg.DatabaseURL)
		defer db.Close()
		bootstrapSchema(db, log)

		userRepo = user.NewPostgresRepository(db)
		productRepo = product.NewPostgresRepository(db)
		orderRepo = order.NewPostgresRepository(db)
		feedbackRepo = feedback.NewPostgresRepository(db)
		contentRepo = content.NewPostgresRepository(db)
		discounts = cart.NewPostgresDiscountRepository(db)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		userRepo = user.NewInMemoryRepository(nil)
		productRepo = product.NewInMemoryRepository(product.Seed())
		orderRepo = order.NewInMemoryRepository(nil)
		feedbackRepo = feedback.NewInMemoryRepository()
		contentRepo = content.NewInMemoryRepository(content.Seed())
		discounts = cart.NewStaticDiscountRepository(cart.DefaultDiscounts())
	}

	userHandler := user.NewHandler(user.NewService(userRepo))
	productHandler := product.NewHandler(product.NewService(productRepo))
	orderHandler := order.NewHandler(order.NewService(orderRepo))
	feedbackHandler := feedback.NewHandler(feedback.NewService(feedbackRepo))
	contentHandler := content.NewHandler(contentRepo)
	cartHandler := cart.NewHandler(cart.NewManager(cfg.CartDir, discounts))

	// routes registered before the JWT middleware stay public
	userHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	cartHandler.RegisterPublicRoutes(app)
	contentHandler.RegisterPublicRoutes(app)
	feedbackHandler.RegisterPublicRoutes(app)
	orderHandler.RegisterPublicRoutes(app)

	app.Use(authMiddleware(cfg.JWTSecret))

	userHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	feedbackHandler.RegisterProtectedRoutes(app)

	log.Info("listening", "addr", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Error("server stopped", "err", err)
	}
}

// authMiddleware guards everything registered after it. Missing, expired
// or malformed tokens all answer 401; the library default would answer 400
// for an absent token.
func authMiddleware(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: []byte(secret),
		ErrorHandler: func(c *fiber.Ctx, _ error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		},
	})
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Cart-Session",
	}))
}

func requestLogger(log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Info("request",
			"method", c.Method(),
			"path", c.OriginalURL(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start).String(),
		)
		return err
	}
}

func mustOpenDB(url string) *sql.DB {
	db, err := sql.Open("pgx", url)
	if err != nil {
		panic(err)
	}
	if err := db.Ping(); err != nil {
		panic(err)
	}
	return db
}

// bootstrapSchema creates missing tables and seeds reference data on an
// empty database. Orders and users only ever grow from live traffic.
func bootstrapSchema(db *sql.DB, log *slog.Logger) {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id SERIAL PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL,
			full_name TEXT,
			phone TEXT,
			role TEXT NOT NULL DEFAULT 'user',
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			product_id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			price NUMERIC NOT NULL,
			image TEXT,
			variant TEXT,
			max_quantity INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			user_id INT NOT NULL,
			product_name TEXT NOT NULL,
			quantity INT NOT NULL,
			price NUMERIC NOT NULL,
			total NUMERIC NOT NULL,
			fullname TEXT NOT NULL,
			phone TEXT NOT NULL,
			address TEXT NOT NULL,
			alternate_address TEXT,
			city TEXT,
			state TEXT,
			zip_code TEXT,
			payment_method TEXT,
			status TEXT NOT NULL,
			tracking_number TEXT,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS discount_codes (
			code TEXT PRIMARY KEY,
			amount NUMERIC NOT NULL,
			kind TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS feedback (
			feedback_id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT,
			rating INT NOT NULL,
			message TEXT NOT NULL,
			created_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS content (
			slug TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			body TEXT NOT NULL,
			ord INT NOT NULL DEFAULT 0
		)`,
	}
	for _, stmt := range tables {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}

	var productCount int
	if err := db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&productCount); err == nil && productCount == 0 {
		for _, p := range product.Seed() {
			if _, err := db.Exec(`INSERT INTO products (name, description, price, image, variant, max_quantity)
				VALUES ($1,$2,$3,$4,$5,$6)`,
				p.Name, p.Description, p.Price, p.Image, p.Variant, p.MaxQuantity); err != nil {
				log.Warn("product seed failed", "variant", p.Variant, "err", err)
			}
		}
	}

	for _, d := range cart.DefaultDiscounts() {
		if _, err := db.Exec(`INSERT INTO discount_codes (code, amount, kind)
			VALUES ($1,$2,$3) ON CONFLICT (code) DO NOTHING`,
			d.Code, d.Amount, string(d.Type)); err != nil {
			log.Warn("discount seed failed", "code", d.Code, "err", err)
		}
	}

	for _, p := range content.Seed() {
		if _, err := db.Exec(`INSERT INTO content (slug, title, body, ord)
			VALUES ($1,$2,$3,$4) ON CONFLICT (slug) DO NOTHING`,
			p.Slug, p.Title, p.Body, p.Ord); err != nil {
			log.Warn("content seed failed", "slug", p.Slug, "err", err)
		}
	}
}
