package config

import (
	"fmt"

	"github.com/shuchit-srx/stoory-backend-sub003/config/common"
	"github.com/shuchit-srx/stoory-backend-sub003/config/logger"
	"github.com/shuchit-srx/stoory-backend-sub003/entity"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type DBConfig struct {
	*gorm.DB
	*logger.AppLogger
}

func NewDB(config *common.Config, log *logger.AppLogger) *DBConfig {
	db := initDatabase(config, log)
	return &DBConfig{DB: db, AppLogger: log}
}

func (db *DBConfig) GetDB() *gorm.DB {
	return db.DB
}

func (db *DBConfig) Close() {
	conn, err := db.DB.DB()
	if err != nil {
		return
	}
	if err := conn.Close(); err != nil {
		db.AppLogger.DB.Error.Error().Err(err).Msg("failed to close database")
	}
}

func postgresDSN(cfg common.DatabaseConfig) string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode, cfg.TimeZone,
	)
}

// GormConfig is shared by the server and the test databases so duplicate-key
// translation and table naming behave the same everywhere.
func GormConfig(logMode gormlogger.LogLevel) *gorm.Config {
	return &gorm.Config{
		NamingStrategy: entity.NamingStrategy,
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(logMode),
	}
}

// Migrate creates the messaging tables. Reference tables belong to the
// marketplace and are only created when asked, e.g. for local development.
func Migrate(db *gorm.DB, withReference bool) error {
	if err := db.AutoMigrate(entity.MessagingModels()...); err != nil {
		return fmt.Errorf("migrate messaging tables: %w", err)
	}
	if withReference {
		if err := db.AutoMigrate(entity.ReferenceModels()...); err != nil {
			return fmt.Errorf("migrate reference tables: %w", err)
		}
	}
	return nil
}

func initDatabase(cfg *common.Config, log *logger.AppLogger) *gorm.DB {
	dbCfg := cfg.GetDatabaseConfig()

	db, err := gorm.Open(postgres.Open(postgresDSN(dbCfg)), GormConfig(gormlogger.Warn))
	if err != nil {
		log.DB.Error.Error().Err(err).Str("host", dbCfg.Host).Msg("failed to connect to database")
		panic("failed to connect database")
	}
	log.DB.Info.Info().Str("host", dbCfg.Host).Str("database", dbCfg.Name).Msg("connection opened to database")

	conn, err := db.DB()
	if err != nil {
		panic("failed to connect database")
	}

	if err := Migrate(db, dbCfg.AutoMigrate); err != nil {
		log.DB.Error.Error().Err(err).Msg("failed run migration")
		panic("failed run migration")
	}

	conn.SetMaxIdleConns(dbCfg.MaxIdleConns)
	conn.SetMaxOpenConns(dbCfg.MaxOpenConns)
	conn.SetConnMaxLifetime(dbCfg.ConnMaxLifetime)
	return db
}
