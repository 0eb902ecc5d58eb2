package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"catalog-service/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type productsFile struct {
	Products []models.Product `json:"products"`
}

type userFile struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Run seeds the database from data/products.json and data/user.json.
// It only writes when both the products and users tables are empty, so a
// restart never re-enters the bootstrap.
func Run(ctx context.Context, db *gorm.DB, dataDir string, logger *zap.Logger) error {
	var userCount, productCount int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&userCount).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if err := db.WithContext(ctx).Model(&models.Product{}).Count(&productCount).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}

	if userCount > 0 || productCount > 0 {
		logger.Info("Database already has data, skipping seeding")
		return nil
	}

	logger.Info("Database is empty, starting seeding")
	if err := seedProducts(ctx, db, dataDir, logger); err != nil {
		return err
	}
	if err := seedUser(ctx, db, dataDir, logger); err != nil {
		return err
	}
	return nil
}

func seedProducts(ctx context.Context, db *gorm.DB, dataDir string, logger *zap.Logger) error {
	raw, err := os.ReadFile(filepath.Join(dataDir, "products.json"))
	if err != nil {
		return fmt.Errorf("failed to read products seed file: %w", err)
	}

	var file productsFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("invalid products seed file: %w", err)
	}

	created := 0
	for _, product := range file.Products {
		if product.ExternalID != "" {
			var count int64
			if err := db.WithContext(ctx).Model(&models.Product{}).
				Where("external_id = ?", product.ExternalID).
				Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check seed product: %w", err)
			}
			if count > 0 {
				continue
			}
		}
		p := product
		if err := db.WithContext(ctx).Create(&p).Error; err != nil {
			return fmt.Errorf("failed to seed product %q: %w", p.SKU, err)
		}
		created++
	}

	logger.Info("Seeded products", zap.Int("count", created))
	return nil
}

func seedUser(ctx context.Context, db *gorm.DB, dataDir string, logger *zap.Logger) error {
	raw, err := os.ReadFile(filepath.Join(dataDir, "user.json"))
	if err != nil {
		return fmt.Errorf("failed to read user seed file: %w", err)
	}

	var file userFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("invalid user seed file: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(file.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed user password: %w", err)
	}

	user := models.User{Email: file.Email, Password: string(hashed)}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return fmt.Errorf("failed to seed user: %w", err)
	}

	logger.Info("Seeded user", zap.String("email", user.Email))
	return nil
}
