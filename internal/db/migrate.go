package db

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/diewo77/commerce-api/internal/models"
	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func ConnectAndMigrate() (*gorm.DB, error) {
	dsn := GetNormalizedDSN()
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_DSN is empty, check the environment configuration")
	}
	var db *gorm.DB
	var err error
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}
	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(dsn), cfg)
		if err == nil {
			break
		}
		fmt.Println("Retrying DB connection...", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}

	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	// Print masked DSN once for diagnostics, before migrations for visibility.
	masked := dsn
	if strings.Contains(masked, "password=") {
		re := regexp.MustCompile(`(password=)([^\s]+)`)
		masked = re.ReplaceAllString(masked, `${1}***`)
	}
	fmt.Println("[DB] Using DSN:", masked)

	// MIGRATIONS=1 runs sql migrations via golang-migrate; otherwise AutoMigrate (dev convenience).
	if v := strings.ToLower(os.Getenv("MIGRATIONS")); v == "1" || v == "true" || v == "yes" {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		modelsToMigrate := []interface{}{
			&models.Client{}, &models.Supplier{}, &models.Enterprise{}, &models.Product{}, &models.SuppliedBy{}, &models.Invoice{}, &models.InvoiceLine{},
		}
		for _, m := range modelsToMigrate {
			if migErr := db.AutoMigrate(m); migErr != nil {
				return nil, fmt.Errorf("automigrate %T: %w", m, migErr)
			}
		}
	}

	// sanity check: ensure required core tables exist
	for _, table := range []string{"clients", "enterprises", "products", "invoices", "invoice_lines"} {
		if !db.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}
	// Seeding only when explicitly requested (e.g. development) via DB_SEED=1|true
	if v := strings.ToLower(os.Getenv("DB_SEED")); v == "1" || v == "true" || v == "yes" {
		seed(db)
	}
	return db, nil
}

// seed inserts a minimal demo dataset so a fresh dev instance can
// exercise the invoice endpoints immediately.
func seed(db *gorm.DB) {
	var enterprise models.Enterprise
	if err := db.Where("email = ?", "contact@demo.co").First(&enterprise).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		enterprise = models.Enterprise{
			Capital: 50000, WorkforceCount: 8, Address: "12 Demo Street", PhoneNumber: "0100000000",
			Email: "contact@demo.co", Name: "Demo Enterprise", HeadquartersLocation: "Paris",
			CreationDate: "2020-01-01T00:00:00.000Z", IdentifierNumber: "DEMO-001",
		}
		db.Create(&enterprise)
	}
	var client models.Client
	if err := db.Where("email = ?", "jane.doe@demo.co").First(&client).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		client = models.Client{FirstName: "Jane", LastName: "Doe", Address: "3 Client Road", PhoneNumber: "0200000000", Email: "jane.doe@demo.co"}
		db.Create(&client)
	}
	baseProducts := []models.Product{
		{Name: "Cardboard box", BuyingPrice: 0.4, SellingPrice: 1.2, Dimensions: "40x30x30", Weight: 0.3, ProfitMarginRate: 2},
		{Name: "Packing tape", BuyingPrice: 0.8, SellingPrice: 2, Dimensions: "5x5x10", Weight: 0.1, ProfitMarginRate: 1.5},
	}
	for _, p := range baseProducts {
		var existing models.Product
		if err := db.Where("name = ?", p.Name).First(&existing).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			db.Create(&p)
		}
	}
}

// runSQLMigrations executes migrations in ./migrations using golang-migrate file source.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", ToURLDSN(dsn))
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
