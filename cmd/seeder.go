package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"user_roles", "item_groups", "user_items", "item_requests", "items", "group_codes", "categories", "areas"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		roles := []struct {
			Name     string
			Priority int
		}{
			{"employee", 1},
			{"admin", 2},
			{"owner", 3},
		}

		for _, r := range roles {
			var id int64
			row := db.Raw("SELECT id FROM roles WHERE name = ?", r.Name).Row()
			if err := row.Scan(&id); err != nil {
				if err := db.Exec("INSERT INTO roles (name, priority, created_at) VALUES (?, ?, now())", r.Name, r.Priority).Error; err != nil {
					log.Fatalf("failed to insert role %s: %v", r.Name, err)
				}
				fmt.Printf("Seeded role: %s\n", r.Name)
			}
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		users := []struct {
			Email string
			Name  string
			Role  string
		}{
			{"budi@mail.com", "Budi", "employee"},
			{"sari@mail.com", "Sari Admin", "admin"},
			{"agus@mail.com", "Agus Owner", "owner"},
		}

		for _, u := range users {
			var exists int
			row := db.Raw("SELECT 1 FROM users WHERE email = ?", u.Email).Row()
			if err := row.Scan(&exists); err != nil {
				if err := db.Exec("INSERT INTO users (email, name, password_hash, is_active, created_at, updated_at) VALUES (?, ?, ?, true, now(), now())", u.Email, u.Name, string(hash)).Error; err != nil {
					log.Fatalf("failed to insert user %s: %v", u.Email, err)
				}
				fmt.Println("Seeded user:", u.Email)
			}

			var userID, roleID int64
			if err := db.Raw("SELECT id FROM users WHERE email = ?", u.Email).Row().Scan(&userID); err != nil {
				log.Fatalf("failed to lookup user id for %s: %v", u.Email, err)
			}
			if err := db.Raw("SELECT id FROM roles WHERE name = ?", u.Role).Row().Scan(&roleID); err != nil {
				log.Fatalf("role not found %s: %v", u.Role, err)
			}

			var granted int
			if err := db.Raw("SELECT 1 FROM user_roles WHERE user_id = ? AND role_id = ?", userID, roleID).Row().Scan(&granted); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO user_roles (user_id, role_id, granted_by, created_at) VALUES (?, ?, NULL, now())", userID, roleID).Error; err != nil {
				log.Fatalf("failed to grant role %s to %s: %v", u.Role, u.Email, err)
			}
			fmt.Printf("Granted role %s to %s\n", u.Role, u.Email)
		}

		categories := []struct {
			Name string
			Code string
		}{
			{"elektronik", "ELK"},
			{"furnitur", "FRN"},
			{"alat tulis", "ATK"},
			{"kendaraan", "KND"},
		}

		for _, c := range categories {
			var exists int
			row := db.Raw("SELECT 1 FROM categories WHERE name = ?", c.Name).Row()
			if err := row.Scan(&exists); err != nil {
				if err := db.Exec("INSERT INTO categories (name, code, created_at, updated_at) VALUES (?, ?, now(), now())", c.Name, c.Code).Error; err != nil {
					log.Fatalf("failed to insert category %s: %v", c.Name, err)
				}
				fmt.Printf("Seeded category: %s\n", c.Name)
			}
		}

		areas := []struct {
			Name string
			Code string
		}{
			{"lantai 1", "L1"},
			{"lantai 2", "L2"},
			{"gudang", "GDG"},
		}

		for _, a := range areas {
			var exists int
			row := db.Raw("SELECT 1 FROM areas WHERE name = ?", a.Name).Row()
			if err := row.Scan(&exists); err != nil {
				if err := db.Exec("INSERT INTO areas (name, code, created_at, updated_at) VALUES (?, ?, now(), now())", a.Name, a.Code).Error; err != nil {
					log.Fatalf("failed to insert area %s: %v", a.Name, err)
				}
				fmt.Printf("Seeded area: %s\n", a.Name)
			}
		}

		fmt.Println("Seeding complete")
	},
}
