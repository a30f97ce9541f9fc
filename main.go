package main

import (
	"flag"
	"log"
	"os"

	"github.com/shopspring/decimal"

	"finance-tracker-backend/internal/budget"
	"finance-tracker-backend/internal/dashboard"
)

func main() {
	// Check for migrate command
	migrateCmd := flag.Bool("migrate", false, "Run database migrations and seed default categories")
	seedDemoCmd := flag.Bool("seed-demo", false, "Seed demo accounts, transactions, budgets and goals (idempotent)")
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if *migrateCmd {
		if err := setupDatabase(cfg); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Migration completed successfully")
		os.Exit(0)
	}

	// Initialize database
	db, err := openDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if *seedDemoCmd {
		if err := seedDemoData(db); err != nil {
			log.Fatalf("Seeding demo data failed: %v", err)
		}
		log.Printf("Demo data seeded for user %s", demoUserID)
		return
	}

	// Amounts go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	budgetOpts := []budget.Option{budget.WithTrendPeriods(cfg.TrendPeriods)}

	// Initialize Redis
	rdb, err := newRedisClient(cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis: %v", err)
		log.Println("Continuing without Redis cache...")
	} else {
		defer rdb.Close()
		budgetOpts = append(budgetOpts, budget.WithCache(&redisCache{client: rdb}, cfg.CacheTTL))
	}

	store := NewStore(db)
	srv := &server{
		store:  store,
		budget: budget.NewService(store, budgetOpts...),
		dashboard: dashboard.NewService(store,
			dashboard.WithRecentTransactions(cfg.RecentTransactions),
			dashboard.WithTrendPeriods(cfg.TrendPeriods),
		),
	}

	r := newRouter(srv, cfg.CORSAllowOrigins)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
