package config

import (
	"errors"

	"uni-cmcs/internal/adapters/persistence/models"
	"uni-cmcs/internal/pkg/logger"
	"uni-cmcs/internal/pkg/password"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedMasterData seeds the status and role catalogs. Both are
// insert-once: existing rows are never updated.
func SeedMasterData(db *gorm.DB) error {
	if err := seedClaimStatuses(db); err != nil {
		return err
	}
	if err := seedRoles(db); err != nil {
		return err
	}

	logger.Info("master data seeded")
	return nil
}

func seedClaimStatuses(db *gorm.DB) error {
	statuses := []models.ClaimStatus{
		{Name: "Pending"},
		{Name: "Approved"},
		{Name: "Rejected"},
	}

	for _, status := range statuses {
		var existing models.ClaimStatus
		err := db.Where("name = ?", status.Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&status).Error; err != nil {
				return err
			}
			logger.Info("created claim status", zap.String("name", status.Name))
		}
	}
	return nil
}

func seedRoles(db *gorm.DB) error {
	roles := []models.Role{
		{Name: "Lecturer"},
		{Name: "Coordinator"},
		{Name: "Manager"},
	}

	for _, role := range roles {
		var existing models.Role
		err := db.Where("name = ?", role.Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&role).Error; err != nil {
				return err
			}
			logger.Info("created role", zap.String("name", role.Name))
		}
	}
	return nil
}

// SeedAdminUser creates a default manager account for development.
// In production the first manager is created through a secure process.
func SeedAdminUser(db *gorm.DB) error {
	var role models.Role
	if err := db.Where("name = ?", "Manager").First(&role).Error; err != nil {
		return err
	}

	var count int64
	db.Model(&models.User{}).Where("role_id = ?", role.ID).Count(&count)
	if count > 0 {
		return nil
	}

	hashed, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		RoleID:    role.ID,
		Username:  "admin",
		FirstName: "System",
		LastName:  "Administrator",
		Email:     "admin@cmcs.local",
		Password:  hashed,
	}

	if err := db.Create(admin).Error; err != nil {
		return err
	}

	logger.Info("seeded default manager account", zap.String("username", admin.Username))
	return nil
}
