package initializers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/Kariqs/justdrops-api/services"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type SeedData struct {
	Categories     []SeedCategory `yaml:"categories"`
	Products       []SeedProduct  `yaml:"products"`
	BlogCategories []SeedCategory `yaml:"blog_categories"`
}

type SeedCategory struct {
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
	ImageUrl    string `yaml:"image_url"`
}

type SeedProduct struct {
	Name           string            `yaml:"name"`
	Slug           string            `yaml:"slug"`
	Description    string            `yaml:"description"`
	Price          string            `yaml:"price"`
	CompareAtPrice string            `yaml:"compare_at_price"`
	ImageUrl       string            `yaml:"image_url"`
	Category       string            `yaml:"category"`
	Inventory      int               `yaml:"inventory"`
	Featured       bool              `yaml:"featured"`
	IsNew          bool              `yaml:"is_new"`
	IsSale         bool              `yaml:"is_sale"`
	Specifications map[string]string `yaml:"specifications"`
	Images         []string          `yaml:"images"`
}

func LoadSeed(path string) (*SeedData, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data := &SeedData{}
	if err := yaml.Unmarshal(file, data); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return data, nil
}

// Seed bootstraps an empty store: the admin account first, then the catalog
// from the seed file. A store that already has users is left untouched.
func Seed(ctx context.Context, svc *services.Services, auth AuthConfig, seedFile string) error {
	created, err := svc.Auth.EnsureAdmin(ctx, auth.AdminUsername, auth.AdminEmail, auth.AdminPassword)
	if err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	if !created {
		log.Println("Database already has data, skipping seed")
		return nil
	}
	log.Printf("Created admin user %q", auth.AdminUsername)

	if seedFile == "" {
		return nil
	}
	data, err := LoadSeed(seedFile)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("Seed file %s not found, starting with an empty catalog", seedFile)
		return nil
	}
	if err != nil {
		return err
	}
	return SeedCatalog(ctx, svc, data)
}

func SeedCatalog(ctx context.Context, svc *services.Services, data *SeedData) error {
	categoryIDs := make(map[string]uint, len(data.Categories))
	for _, c := range data.Categories {
		category, err := svc.Catalog.CreateCategory(ctx, services.CategoryInput{
			Name:        c.Name,
			Slug:        c.Slug,
			Description: c.Description,
			ImageUrl:    c.ImageUrl,
		})
		if err != nil {
			return fmt.Errorf("seed category %q: %w", c.Name, err)
		}
		categoryIDs[category.Slug] = category.ID
	}

	for _, p := range data.Products {
		categoryID, ok := categoryIDs[p.Category]
		if !ok {
			return fmt.Errorf("seed product %q: unknown category %q", p.Name, p.Category)
		}
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return fmt.Errorf("seed product %q: price: %w", p.Name, err)
		}
		in := services.ProductInput{
			Name:        p.Name,
			Slug:        p.Slug,
			Description: p.Description,
			Price:       price,
			ImageUrl:    p.ImageUrl,
			CategoryID:  categoryID,
			Inventory:   p.Inventory,
			Featured:    p.Featured,
			IsNew:       p.IsNew,
			IsSale:      p.IsSale,
		}
		if p.CompareAtPrice != "" {
			compareAt, err := decimal.NewFromString(p.CompareAtPrice)
			if err != nil {
				return fmt.Errorf("seed product %q: compare_at_price: %w", p.Name, err)
			}
			in.CompareAtPrice = &compareAt
		}

		product, err := svc.Catalog.CreateProduct(ctx, in)
		if err != nil {
			return fmt.Errorf("seed product %q: %w", p.Name, err)
		}
		for key, value := range p.Specifications {
			if _, err := svc.Catalog.AddSpecification(ctx, product.ID, services.SpecificationInput{Key: key, Value: value}); err != nil {
				return fmt.Errorf("seed product %q: specification %q: %w", p.Name, key, err)
			}
		}
		for i, url := range p.Images {
			if _, err := svc.Catalog.AddImage(ctx, product.ID, services.ImageInput{Url: url, IsMain: i == 0}); err != nil {
				return fmt.Errorf("seed product %q: image: %w", p.Name, err)
			}
		}
	}

	for _, c := range data.BlogCategories {
		if _, err := svc.Blog.CreateCategory(ctx, services.BlogCategoryInput{Name: c.Name, Slug: c.Slug}); err != nil {
			return fmt.Errorf("seed blog category %q: %w", c.Name, err)
		}
	}

	log.Printf("Seeded %d categories, %d products, %d blog categories",
		len(data.Categories), len(data.Products), len(data.BlogCategories))
	return nil
}
