package config

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"usherhub/internal/entity"
)

func ConnectionDb(cfg Config) *gorm.DB {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseURL,
		PreferSimpleProtocol: true, // Disable prepared statements completely
	}), &gorm.Config{
		PrepareStmt:    false,
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("error connect to database %s", err)
	}

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.SignupCode{},
		&entity.Event{},
		&entity.Request{},
	); err != nil {
		log.Fatalf("error migrate database %s", err)
	}

	fmt.Println("success connect to db")
	return db
}
