package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/clubstack/backend/internal/config"
	"github.com/clubstack/backend/internal/models"
	"github.com/clubstack/backend/internal/services"
	"github.com/clubstack/backend/internal/utils"
	"gorm.io/gorm"
)

// Bootstraps a club with its first administrator. Meant for operators:
//
//	create_tenant -slug lions -name "FC Lions" -email admin@lions.example -password secret123
func main() {
	slug := flag.String("slug", "", "unique club slug")
	name := flag.String("name", "", "club display name")
	email := flag.String("email", "", "administrator email")
	password := flag.String("password", "", "administrator password")
	super := flag.Bool("superadmin", false, "grant platform superadmin instead of club admin")
	flag.Parse()

	if *slug == "" || *name == "" || *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := models.InitDB(&cfg.Database); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	db := models.GetDB()

	tenantService := services.NewTenantService(db)
	tenant, err := tenantService.CreateTenant(&services.CreateTenantRequest{
		Slug: *slug,
		Name: *name,
	})
	if err != nil {
		log.Fatalf("Failed to create club: %v", err)
	}
	fmt.Printf("Created club %q (id=%d) with default evaluation criteria\n", tenant.Slug, tenant.ID)

	hash, err := utils.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	role := models.RoleTenantAdmin
	if *super {
		role = models.RoleSuperadmin
	}

	user := models.User{Email: *email, Password: hash, IsActive: true}
	membership := models.TenantUser{TenantID: tenant.ID, Role: role, Email: *email}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		membership.UserID = user.ID
		return tx.Create(&membership).Error
	})
	if err != nil {
		log.Fatalf("Failed to create administrator: %v", err)
	}

	fmt.Printf("Created %s %q (user id=%d) in club %q\n", role, *email, user.ID, tenant.Slug)
}
