package db

import (
	"fmt"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewMySQL returns a connected GORM DB instance. Driver errors such as
// duplicate keys are translated into gorm's portable error values.
func NewMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}

// MaskDSN returns dsn with its password replaced, suitable for logging.
func MaskDSN(dsn string) string {
	cfg, err := mysqldriver.ParseDSN(dsn)
	if err != nil {
		return "<unparseable dsn>"
	}
	if cfg.Passwd != "" {
		cfg.Passwd = "*****"
	}
	return cfg.FormatDSN()
}
