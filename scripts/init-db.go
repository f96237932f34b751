package main

import (
	"fmt"
	"log"
	"time"

	"order_intake/internal/config"
	"order_intake/internal/database"
	"order_intake/internal/migrations"
	"order_intake/internal/models"
	"order_intake/internal/repository"
)

// Resets the database and seeds a small demo catalog. Destructive;
// development only.
func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
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
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	fmt.Println("Creating tables...")
	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	fmt.Println("Creating sample products...")
	productRepo := repository.NewProductRepository(db)
	products := []models.Product{
		{Name: "Lasagna tray", Category: models.CategoryWarm, Price: 120,
			Workload: 5, WorkloadOverhead: 2, Volume: 400, LeadTimeDays: 2, IsActive: true},
		{Name: "Pulled pork sliders", Category: models.CategoryWarm, Price: 85,
			Workload: 4, WorkloadOverhead: 3, Volume: 300, LeadTimeDays: 1, IsActive: true},
		{Name: "Caprese platter", Category: models.CategoryCold, Price: 60,
			Workload: 2, WorkloadOverhead: 1, Volume: 250, IsActive: true},
		{Name: "Tiramisu", Category: models.CategoryDessert, Price: 55,
			Workload: 3, WorkloadOverhead: 1, Volume: 200, LeadTimeDays: 1, IsActive: true},
		{Name: "Lemonade carafe", Category: models.CategoryDrink, Price: 18,
			Workload: 1, Volume: 150, IsActive: true},
	}
	for i := range products {
		if err := productRepo.Create(&products[i]); err != nil {
			log.Printf("Warning: Failed to create product %s: %v", products[i].Name, err)
		}
	}

	fmt.Println("Creating sample discount codes...")
	discountRepo := repository.NewDiscountRepository(db)
	validTo := time.Now().AddDate(0, 3, 0)
	codes := []models.DiscountCode{
		{Code: "WELCOME10", Description: "10% off your first look around",
			Type: models.DiscountPercentage, Value: 10, MinOrderValue: 100,
			Stackable: true, Enabled: true, ValidTo: &validTo},
		{Code: "SWEETTOOTH", Description: "15 off desserts",
			Type: models.DiscountFixed, Value: 15, MinOrderValue: 80,
			Stackable: false, Enabled: true,
			Categories: []models.DiscountCategory{{Category: models.CategoryDessert}}},
	}
	for i := range codes {
		if err := discountRepo.Create(&codes[i]); err != nil {
			log.Printf("Warning: Failed to create discount %s: %v", codes[i].Code, err)
		}
	}

	fmt.Println("Database initialization completed successfully!")
}
