package content

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migrate applies the content schema using Gorm's AutoMigrate and logs progress.
func Migrate(ctx context.Context, conn *gorm.DB, logger *logrus.Logger) error {
	if conn == nil {
		return eris.New("gorm DB is required")
	}

	logFields := logrus.Fields{"component": "content.migrate"}
	if logger != nil {
		logger.WithFields(logFields).Info("applying content schema")
	}

	if err := conn.WithContext(ctx).AutoMigrate(&User{}, &Post{}, &Project{}); err != nil {
		if logger != nil {
			logger.WithFields(logFields).WithField("error", err.Error()).Error("content schema migration failed")
		}
		return eris.Wrap(err, "auto migrating content schema")
	}

	if logger != nil {
		logger.WithFields(logFields).Info("content schema migration complete")
	}

	return nil
}

// EnsureAdmin creates the initial admin account when the users table is
// empty. The password arrives pre-hashed so this package stays free of
// hashing concerns. Runs once at startup; an existing user short-circuits.
func EnsureAdmin(ctx context.Context, conn *gorm.DB, username, passwordHash string, logger *logrus.Logger) error {
	if conn == nil {
		return eris.New("gorm DB is required")
	}

	username = strings.TrimSpace(username)
	if username == "" {
		return eris.New("admin username is required")
	}
	if passwordHash == "" {
		return eris.New("admin password hash is required")
	}

	var existing User
	err := conn.WithContext(ctx).First(&existing).Error
	if err == nil {
		if logger != nil {
			logger.WithField("username", existing.Username).Info("admin user already exists")
		}
		return nil
	}
	if !eris.Is(err, gorm.ErrRecordNotFound) {
		return eris.Wrap(err, "checking for existing admin user")
	}

	admin := User{Username: username, PasswordHash: passwordHash}
	if err := conn.WithContext(ctx).Create(&admin).Error; err != nil {
		return eris.Wrap(err, "creating initial admin user")
	}

	if logger != nil {
		logger.WithField("username", username).Info("created admin user")
	}

	return nil
}
