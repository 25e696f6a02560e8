package main

import (
	"context"
	"os"

	"usherhub/config"
	"usherhub/internal/entity"
	"usherhub/internal/repository"
	"usherhub/internal/utils"

	"github.com/sirupsen/logrus"
)

// seedadmin creates the bootstrap admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD. It is a no-op when an admin already exists, so it is safe
// to run on every deploy.
func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg := config.Load()
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		logger.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}

	db := config.ConnectionDb(cfg)
	users := repository.NewUserRepository(db)
	ctx := context.Background()

	exists, err := users.AdminExists(ctx)
	if err != nil {
		logger.WithError(err).Fatal("admin lookup failed")
	}
	if exists {
		logger.Info("admin account already exists, nothing to do")
		return
	}

	hash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		logger.WithError(err).Fatal("password hashing failed")
	}

	admin := &entity.User{
		Name:         "Administrator",
		Email:        utils.NormalizeEmail(cfg.AdminEmail),
		PasswordHash: hash,
		Role:         entity.UserRoleAdmin,
		IsActive:     true,
	}
	if err := users.Create(ctx, admin); err != nil {
		logger.WithError(err).Fatal("admin creation failed")
	}

	logger.WithField("email", admin.Email).Info("admin account created")
}
