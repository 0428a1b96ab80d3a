package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"rplsite/config"
	"rplsite/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
	// TxOptions is used for every reindexing transaction. nil means driver default.
	TxOptions *sql.TxOptions
}

// Database is the global database instance
var Database DbInstance

// ConnectDb opens the configured database, migrates it and stores it globally
func ConnectDb() {
	cfg := config.AppConfig

	db, err := Open(cfg.DBDriver, BuildDSN(cfg))
	if err != nil {
		log.Fatalf("Failed to connect to %s: %v", cfg.DBDriver, err)
		os.Exit(2)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConn)
	sqlDB.SetMaxIdleConns(cfg.DBMaxOpenConn / 2)
	sqlDB.SetConnMaxLifetime(0)

	if err := Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	Database = DbInstance{Db: db, TxOptions: TxOptions(cfg.DBDriver, cfg.DBIsolation)}
}

// BuildDSN builds the connection string for the configured driver
func BuildDSN(cfg *config.Config) string {
	switch cfg.DBDriver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
	case "sqlite":
		return cfg.DBName
	default:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
	}
}

// Open connects to the database using the given driver name
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	return gorm.Open(dialector, &gorm.Config{
		// duplicate keys surface as gorm.ErrDuplicatedKey
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
}

// TxOptions maps the configured isolation level onto sql.TxOptions.
// sqlite serializes writers on its own and rejects explicit levels.
func TxOptions(driver, level string) *sql.TxOptions {
	if driver == "sqlite" {
		return nil
	}
	switch level {
	case "read committed":
		return &sql.TxOptions{Isolation: sql.LevelReadCommitted}
	case "repeatable read":
		return &sql.TxOptions{Isolation: sql.LevelRepeatableRead}
	case "", "default":
		return nil
	default:
		return &sql.TxOptions{Isolation: sql.LevelSerializable}
	}
}

// Migrate performs database migrations
func Migrate(db *gorm.DB) error {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Section{},
		&models.Course{},
		&models.Review{},
		&models.EligibilityCheck{},
		&models.ContactResponse{},
		&models.Booking{},
		&models.Payment{},
	)
	if err != nil {
		return err
	}

	log.Println("Migrations completed successfully.")
	return nil
}
