package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/williamkalogeropoulos/AegisBank/internal/domain/account"
	"github.com/williamkalogeropoulos/AegisBank/internal/domain/card"
	"github.com/williamkalogeropoulos/AegisBank/internal/domain/loan"
	"github.com/williamkalogeropoulos/AegisBank/internal/domain/transfer"
	"github.com/williamkalogeropoulos/AegisBank/internal/logger"
)

func OpenGorm(dsn string) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn))
}

// OpenGormWithDialector exists so tests can slot in a mocked connection.
func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	logger.Log.Info("gorm: connected", zap.String("dialector", dial.Name()))
	return db, nil
}

// Migrate creates or updates the four ledger tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&account.Account{},
		&card.Card{},
		&loan.Loan{},
		&transfer.Transfer{},
	)
}
