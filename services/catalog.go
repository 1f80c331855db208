package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"time"

	"github.com/Kariqs/justdrops-api/models"
	"github.com/Kariqs/justdrops-api/store"
	"github.com/Kariqs/justdrops-api/utils"
	"github.com/shopspring/decimal"
)

type ProductQuery struct {
	Category string
	Featured bool
	Search   string
}

type ProductDetail struct {
	Product        *models.Product               `json:"product"`
	Specifications []models.ProductSpecification `json:"specifications"`
	Images         []models.ProductImage         `json:"images"`
	Category       *models.Category              `json:"category"`
}

type CategoryDetail struct {
	Category *models.Category `json:"category"`
	Products []models.Product `json:"products"`
}

type ProductInput struct {
	Name           string           `json:"name" binding:"required"`
	Slug           string           `json:"slug" binding:"omitempty,slug"`
	Description    string           `json:"description" binding:"required"`
	Price          decimal.Decimal  `json:"price"`
	CompareAtPrice *decimal.Decimal `json:"compareAtPrice"`
	ImageUrl       string           `json:"imageUrl" binding:"required"`
	CategoryID     uint             `json:"categoryId" binding:"required"`
	Inventory      int              `json:"inventory" binding:"gte=0"`
	Featured       bool             `json:"featured"`
	IsNew          bool             `json:"isNew"`
	IsSale         bool             `json:"isSale"`
}

// ProductPatch is a partial update: nil fields keep their stored value.
type ProductPatch struct {
	Name           *string          `json:"name" binding:"omitempty,min=1"`
	Slug           *string          `json:"slug" binding:"omitempty,slug"`
	Description    *string          `json:"description"`
	Price          *decimal.Decimal `json:"price"`
	CompareAtPrice *decimal.Decimal `json:"compareAtPrice"`
	ImageUrl       *string          `json:"imageUrl"`
	CategoryID     *uint            `json:"categoryId"`
	Featured       *bool            `json:"featured"`
	IsNew          *bool            `json:"isNew"`
	IsSale         *bool            `json:"isSale"`
}

type SpecificationInput struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value" binding:"required"`
}

type ImageInput struct {
	Url    string `json:"url" binding:"required,url"`
	IsMain bool   `json:"isMain"`
}

type ImageFile struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type CategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"omitempty,slug"`
	Description string `json:"description"`
	ImageUrl    string `json:"imageUrl"`
}

type CatalogService struct {
	store    store.Storage
	uploader utils.Uploader
}

func NewCatalogService(s store.Storage, uploader utils.Uploader) *CatalogService {
	return &CatalogService{store: s, uploader: uploader}
}

// ListProducts filters by category slug, featured flag and a free text
// search. An unknown category yields an empty list.
func (c *CatalogService) ListProducts(ctx context.Context, q ProductQuery) ([]models.Product, error) {
	filter := store.ProductFilter{Search: q.Search}
	if q.Category != "" {
		category, err := c.store.GetCategoryBySlug(ctx, q.Category)
		if errors.Is(err, store.ErrNotFound) {
			return []models.Product{}, nil
		}
		if err != nil {
			return nil, err
		}
		filter.CategoryID = &category.ID
	}
	if q.Featured {
		featured := true
		filter.Featured = &featured
	}
	return c.store.ListProducts(ctx, filter)
}

func (c *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := c.store.GetProduct(ctx, id)
	return product, notFound(err, "Product not found")
}

func (c *CatalogService) ProductDetail(ctx context.Context, slug string) (*ProductDetail, error) {
	product, err := c.store.GetProductBySlug(ctx, slug)
	if err != nil {
		return nil, notFound(err, "Product not found")
	}
	specs, err := c.store.ListSpecifications(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	images, err := c.store.ListImages(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	category, err := c.store.GetCategory(ctx, product.CategoryID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	return &ProductDetail{Product: product, Specifications: specs, Images: images, Category: category}, nil
}

func (c *CatalogService) requireCategory(ctx context.Context, id uint) error {
	if _, err := c.store.GetCategory(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return invalid("Category %d does not exist", id)
		}
		return err
	}
	return nil
}

func (c *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := validateStruct(&in); err != nil {
		return nil, err
	}
	if !in.Price.IsPositive() {
		return nil, invalid("price must be greater than 0")
	}
	slug, err := deriveSlug(in.Slug, in.Name)
	if err != nil {
		return nil, err
	}
	in.Slug = slug
	if err := c.requireCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	if _, err := c.store.GetProductBySlug(ctx, in.Slug); err == nil {
		return nil, newError(ErrConflict, "Product slug %q already exists", in.Slug)
	}

	product := &models.Product{
		Name:           in.Name,
		Slug:           in.Slug,
		Description:    in.Description,
		Price:          in.Price,
		CompareAtPrice: in.CompareAtPrice,
		ImageUrl:       in.ImageUrl,
		CategoryID:     in.CategoryID,
		Inventory:      in.Inventory,
		Featured:       in.Featured,
		IsNew:          in.IsNew,
		IsSale:         in.IsSale,
		Rating:         decimal.Zero,
	}
	if err := c.store.CreateProduct(ctx, product); err != nil {
		return nil, conflict(err, "Product slug %q already exists", in.Slug)
	}
	return product, nil
}

// UpdateProduct merges a validated patch. Inventory is not patchable here;
// stock goes through the audited inventory endpoint.
func (c *CatalogService) UpdateProduct(ctx context.Context, id uint, patch ProductPatch) (*models.Product, error) {
	if err := validateStruct(&patch); err != nil {
		return nil, err
	}
	if patch.Price != nil && !patch.Price.IsPositive() {
		return nil, invalid("price must be greater than 0")
	}

	product, err := c.store.GetProduct(ctx, id)
	if err != nil {
		return nil, notFound(err, "Product not found")
	}
	if patch.CategoryID != nil {
		if err := c.requireCategory(ctx, *patch.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *patch.CategoryID
	}
	if patch.Slug != nil && *patch.Slug != product.Slug {
		if _, err := c.store.GetProductBySlug(ctx, *patch.Slug); err == nil {
			return nil, newError(ErrConflict, "Product slug %q already exists", *patch.Slug)
		}
		product.Slug = *patch.Slug
	}
	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.CompareAtPrice != nil {
		product.CompareAtPrice = patch.CompareAtPrice
	}
	if patch.ImageUrl != nil {
		product.ImageUrl = *patch.ImageUrl
	}
	if patch.Featured != nil {
		product.Featured = *patch.Featured
	}
	if patch.IsNew != nil {
		product.IsNew = *patch.IsNew
	}
	if patch.IsSale != nil {
		product.IsSale = *patch.IsSale
	}

	if err := c.store.UpdateProduct(ctx, product); err != nil {
		return nil, conflict(notFound(err, "Product not found"), "Product slug %q already exists", product.Slug)
	}
	return product, nil
}

func (c *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	return notFound(c.store.DeleteProduct(ctx, id), "Product not found")
}

func (c *CatalogService) AddSpecification(ctx context.Context, productID uint, in SpecificationInput) (*models.ProductSpecification, error) {
	if err := validateStruct(&in); err != nil {
		return nil, err
	}
	if _, err := c.store.GetProduct(ctx, productID); err != nil {
		return nil, notFound(err, "Product not found")
	}
	spec := &models.ProductSpecification{ProductID: productID, Key: in.Key, Value: in.Value}
	if err := c.store.CreateSpecification(ctx, spec); err != nil {
		return nil, err
	}
	return spec, nil
}

func (c *CatalogService) AddImage(ctx context.Context, productID uint, in ImageInput) (*models.ProductImage, error) {
	if err := validateStruct(&in); err != nil {
		return nil, err
	}
	if _, err := c.store.GetProduct(ctx, productID); err != nil {
		return nil, notFound(err, "Product not found")
	}
	image := &models.ProductImage{ProductID: productID, Url: in.Url, IsMain: in.IsMain}
	if err := c.store.CreateImage(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

type UploadResult struct {
	Images []models.ProductImage `json:"images"`
	Failed []string              `json:"failed,omitempty"`
}

// UploadImages pushes each file to object storage and records the ones that
// made it. Individual failures are reported, not fatal.
func (c *CatalogService) UploadImages(ctx context.Context, productID uint, files []ImageFile) (*UploadResult, error) {
	if c.uploader == nil {
		return nil, newError(ErrUnavailable, "Image uploads are not configured")
	}
	if len(files) == 0 {
		return nil, invalid("No files uploaded")
	}
	if _, err := c.store.GetProduct(ctx, productID); err != nil {
		return nil, notFound(err, "Product not found")
	}

	result := &UploadResult{Images: []models.ProductImage{}}
	for _, file := range files {
		key := fmt.Sprintf("products/%d/%s-%s", productID, time.Now().Format("20060102150405"), path.Base(file.Filename))
		url, err := c.uploader.Upload(ctx, key, file.ContentType, file.Body)
		if err != nil {
			log.Printf("upload: product %d file %s: %v", productID, file.Filename, err)
			result.Failed = append(result.Failed, file.Filename)
			continue
		}
		image := models.ProductImage{ProductID: productID, Url: url}
		if err := c.store.CreateImage(ctx, &image); err != nil {
			log.Printf("upload: product %d image row for %s: %v", productID, url, err)
			result.Failed = append(result.Failed, file.Filename)
			continue
		}
		result.Images = append(result.Images, image)
	}
	return result, nil
}

func (c *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return c.store.ListCategories(ctx)
}

func (c *CatalogService) CategoryDetail(ctx context.Context, slug string) (*CategoryDetail, error) {
	category, err := c.store.GetCategoryBySlug(ctx, slug)
	if err != nil {
		return nil, notFound(err, "Category not found")
	}
	products, err := c.store.ListProducts(ctx, store.ProductFilter{CategoryID: &category.ID})
	if err != nil {
		return nil, err
	}
	return &CategoryDetail{Category: category, Products: products}, nil
}

func (c *CatalogService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	if err := validateStruct(&in); err != nil {
		return nil, err
	}
	slug, err := deriveSlug(in.Slug, in.Name)
	if err != nil {
		return nil, err
	}
	in.Slug = slug
	category := &models.Category{Name: in.Name, Slug: in.Slug, Description: in.Description, ImageUrl: in.ImageUrl}
	if _, err := c.store.GetCategoryBySlug(ctx, in.Slug); err == nil {
		return nil, newError(ErrConflict, "Category slug %q already exists", in.Slug)
	}
	if err := c.store.CreateCategory(ctx, category); err != nil {
		return nil, conflict(err, "Category slug %q already exists", in.Slug)
	}
	return category, nil
}

func (c *CatalogService) UpdateCategory(ctx context.Context, id uint, in CategoryInput) (*models.Category, error) {
	if err := validateStruct(&in); err != nil {
		return nil, err
	}
	category, err := c.store.GetCategory(ctx, id)
	if err != nil {
		return nil, notFound(err, "Category not found")
	}
	if in.Slug == "" {
		in.Slug = category.Slug
	}
	category.Name = in.Name
	category.Slug = in.Slug
	category.Description = in.Description
	category.ImageUrl = in.ImageUrl
	if err := c.store.UpdateCategory(ctx, category); err != nil {
		return nil, conflict(notFound(err, "Category not found"), "Category slug %q already exists", in.Slug)
	}
	return category, nil
}

// DeleteCategory refuses to orphan products.
func (c *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	products, err := c.store.ListProducts(ctx, store.ProductFilter{CategoryID: &id})
	if err != nil {
		return err
	}
	if len(products) > 0 {
		return newError(ErrConflict, "Category still has %d products", len(products))
	}
	return notFound(c.store.DeleteCategory(ctx, id), "Category not found")
}
