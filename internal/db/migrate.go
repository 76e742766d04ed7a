package db

import (
	"errors"

	"github.com/Iwamergun/dentalmarket-backend/internal/app/model"
	"github.com/Iwamergun/dentalmarket-backend/pkg/logger"
	"github.com/Iwamergun/dentalmarket-backend/pkg/util"
	"gorm.io/gorm"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Category{},
		&model.Brand{},
		&model.Product{},
		&model.ProductVariant{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.RedirectRule{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database (optional)
func Seed() error {
	return seedInitialData()
}

// seedInitialData creates the root categories and the initial admin account if
// the database is empty. Safe to run on every startup.
func seedInitialData() error {
	logger.Info("Seeding initial data...")

	rootCategories := []string{
		"Dolgu Materyalleri",
		"Ölçü Materyalleri",
		"El Aletleri",
		"Sterilizasyon",
		"Sarf Malzemeleri",
	}

	for i, name := range rootCategories {
		slug := util.Slugify(name)
		var existing model.Category
		err := DB.Where("slug = ?", slug).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		category := &model.Category{
			Name:      name,
			Slug:      slug,
			SortOrder: i,
			IsActive:  true,
		}
		if err := DB.Create(category).Error; err != nil {
			logger.Error("Failed to seed category", err, map[string]interface{}{
				"name": name,
			})
			return err
		}
	}

	var adminCount int64
	if err := DB.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&adminCount).Error; err != nil {
		return err
	}
	if adminCount == 0 {
		hash, err := util.HashPassword("changeme")
		if err != nil {
			return err
		}
		admin := &model.User{
			Email:        "admin@dentalmarket.local",
			PasswordHash: hash,
			Name:         "Sistem Yöneticisi",
			Role:         model.RoleAdmin,
		}
		if err := DB.Create(admin).Error; err != nil {
			logger.Error("Failed to seed admin user", err)
			return err
		}
		logger.Warn("Seeded default admin account, change its password", map[string]interface{}{
			"email": admin.Email,
		})
	}

	logger.Info("Initial data seeding completed")
	return nil
}
