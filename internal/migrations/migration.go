package migrations

import (
	"log"

	"gorm.io/gorm"

	"order_intake/internal/models"
	"order_intake/internal/repository"
)

// RunMigrations migrates the schema and seeds the configuration the
// engine needs on a fresh database: one default capacity per category
// and the free-packaging threshold.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderDiscount{},
		&models.DayConfig{},
		&models.CapacityOverride{},
		&models.DefaultCapacity{},
		&models.DiscountCode{},
		&models.DiscountCategory{},
		&models.PackagingType{},
		&models.ShopSetting{},
	)
	if err != nil {
		return err
	}

	if err := createDefaultData(db); err != nil {
		log.Printf("Warning: Failed to create default data: %v", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

func createDefaultData(db *gorm.DB) error {
	log.Println("Creating default data...")

	settingsRepo := repository.NewSettingsRepository(db)

	// Every category needs a limit; a day with no override falls back
	// to these.
	existing, err := settingsRepo.GetDefaultCapacities()
	if err != nil {
		return err
	}
	seeded := make(map[models.Category]bool, len(existing))
	for _, row := range existing {
		seeded[row.Category] = true
	}

	defaults := map[models.Category]float64{
		models.CategoryWarm:    100,
		models.CategoryCold:    80,
		models.CategoryDessert: 50,
		models.CategoryDrink:   200,
	}
	for category, limit := range defaults {
		if seeded[category] {
			continue
		}
		err := settingsRepo.UpsertDefaultCapacity(&models.DefaultCapacity{
			Category: category,
			Limit:    limit,
		})
		if err != nil {
			return err
		}
	}

	if _, err := settingsRepo.GetSetting(models.SettingPackagingFreeFrom); err != nil {
		err := settingsRepo.UpsertSetting(&models.ShopSetting{
			Name:     models.SettingPackagingFreeFrom,
			Value:    1500,
			IsActive: true,
		})
		if err != nil {
			return err
		}
	}

	types, err := settingsRepo.GetPackagingTypes()
	if err != nil {
		return err
	}
	if len(types) == 0 {
		seedTypes := []models.PackagingType{
			{Name: "small box", Volume: 1000, Price: 10},
			{Name: "large box", Volume: 2500, Price: 20},
		}
		for i := range seedTypes {
			if err := settingsRepo.CreatePackagingType(&seedTypes[i]); err != nil {
				return err
			}
		}
	}

	log.Println("Default data created")
	return nil
}
