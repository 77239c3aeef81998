package database

import (
	"log"
	"time"

	"pp-governance/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(dsn string) {
	var err error

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		log.Printf("trying to connect to DB (attempt %d/%d)...", i, maxAttempts)

		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			log.Println("connected to DB successfully")
			break
		}

		log.Printf("failed to connect to DB: %v", err)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Fatalf("failed to connect to db after %d attempts: %v", maxAttempts, err)
	}

	// migrations
	err = DB.AutoMigrate(
		&models.Client{},
		&models.ProjectRecord{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	seedDemoClients()
}

// a couple of demo clients so the client picker is never empty
func seedDemoClients() {
	clients := []models.Client{
		{Name: "Contoso Ltd", Industry: "Manufacturing", Notes: "Demo tenant"},
		{Name: "Fabrikam Inc", Industry: "Retail", Notes: "Demo tenant"},
	}

	var count int64
	if err := DB.Model(&models.Client{}).Count(&count).Error; err != nil {
		log.Printf("failed to check clients: %v", err)
		return
	}
	if count > 0 {
		return
	}

	for _, c := range clients {
		c := c
		if err := DB.Create(&c).Error; err != nil {
			log.Printf("failed to create demo client %s: %v", c.Name, err)
			continue
		}
		log.Printf("created demo client: %s", c.Name)
	}
}
