package controllers

import (
	"log"
	"net/http"

	"github.com/Kariqs/justdrops-api/middlewares"
	"github.com/Kariqs/justdrops-api/services"
	"github.com/gin-gonic/gin"
)

func (h *Handler) GetProducts(ctx *gin.Context) {
	products, err := h.svc.Catalog.ListProducts(ctx.Request.Context(), services.ProductQuery{
		Category: ctx.Query("category"),
		Featured: ctx.Query("featured") == "true",
		Search:   ctx.Query("search"),
	})
	if err != nil {
		handleServiceError(ctx, err, "Error fetching products")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"products": products})
}

func (h *Handler) GetProduct(ctx *gin.Context) {
	detail, err := h.svc.Catalog.ProductDetail(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		handleServiceError(ctx, err, "Error fetching product details")
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

func (h *Handler) GetCategories(ctx *gin.Context) {
	categories, err := h.svc.Catalog.ListCategories(ctx.Request.Context())
	if err != nil {
		handleServiceError(ctx, err, "Error fetching categories")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"categories": categories})
}

func (h *Handler) GetCategory(ctx *gin.Context) {
	detail, err := h.svc.Catalog.CategoryDetail(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		handleServiceError(ctx, err, "Error fetching category details")
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// Admin

func (h *Handler) AdminGetProduct(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	product, err := h.svc.Catalog.GetProduct(ctx.Request.Context(), id)
	if err != nil {
		handleServiceError(ctx, err, "Error fetching product")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"product": product})
}

func (h *Handler) CreateProduct(ctx *gin.Context) {
	var in services.ProductInput
	if !bindJSON(ctx, &in) {
		return
	}
	product, err := h.svc.Catalog.CreateProduct(ctx.Request.Context(), in)
	if err != nil {
		handleServiceError(ctx, err, "Failed to create product")
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"product": product})
}

func (h *Handler) UpdateProduct(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var patch services.ProductPatch
	if !bindJSON(ctx, &patch) {
		return
	}
	product, err := h.svc.Catalog.UpdateProduct(ctx.Request.Context(), id, patch)
	if err != nil {
		handleServiceError(ctx, err, "Failed to update product")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"product": product})
}

func (h *Handler) DeleteProduct(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := h.svc.Catalog.DeleteProduct(ctx.Request.Context(), id); err != nil {
		handleServiceError(ctx, err, "Failed to delete product")
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (h *Handler) CreateProductSpecs(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var in services.SpecificationInput
	if !bindJSON(ctx, &in) {
		return
	}
	spec, err := h.svc.Catalog.AddSpecification(ctx.Request.Context(), id, in)
	if err != nil {
		handleServiceError(ctx, err, "Failed to create product specifications")
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"specification": spec})
}

func (h *Handler) CreateProductImage(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var in services.ImageInput
	if !bindJSON(ctx, &in) {
		return
	}
	image, err := h.svc.Catalog.AddImage(ctx.Request.Context(), id, in)
	if err != nil {
		handleServiceError(ctx, err, "Failed to add product image")
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"image": image})
}

func (h *Handler) UploadProductImages(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	form, err := ctx.MultipartForm()
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid form data")
		return
	}

	headers := form.File["images"]
	files := make([]services.ImageFile, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			log.Printf("Error opening file %s: %v", header.Filename, err)
			continue
		}
		defer f.Close()
		files = append(files, services.ImageFile{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Body:        f,
		})
	}

	result, err := h.svc.Catalog.UploadImages(ctx.Request.Context(), id, files)
	if err != nil {
		handleServiceError(ctx, err, "Failed to upload images")
		return
	}
	ctx.JSON(http.StatusOK, result)
}

func (h *Handler) UpdateInventory(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var in services.InventoryInput
	if !bindJSON(ctx, &in) {
		return
	}
	product, err := h.svc.Inventory.Adjust(ctx.Request.Context(), middlewares.CurrentAdmin(ctx), id, in)
	if err != nil {
		handleServiceError(ctx, err, "Failed to update inventory")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"product": product})
}

func (h *Handler) GetInventoryHistory(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	history, err := h.svc.Inventory.History(ctx.Request.Context(), id)
	if err != nil {
		handleServiceError(ctx, err, "Failed to fetch inventory history")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"adjustments": history})
}

func (h *Handler) CreateCategory(ctx *gin.Context) {
	var in services.CategoryInput
	if !bindJSON(ctx, &in) {
		return
	}
	category, err := h.svc.Catalog.CreateCategory(ctx.Request.Context(), in)
	if err != nil {
		handleServiceError(ctx, err, "Failed to create category")
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{"category": category})
}

func (h *Handler) UpdateCategory(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var in services.CategoryInput
	if !bindJSON(ctx, &in) {
		return
	}
	category, err := h.svc.Catalog.UpdateCategory(ctx.Request.Context(), id, in)
	if err != nil {
		handleServiceError(ctx, err, "Failed to update category")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"category": category})
}

func (h *Handler) DeleteCategory(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := h.svc.Catalog.DeleteCategory(ctx.Request.Context(), id); err != nil {
		handleServiceError(ctx, err, "Failed to delete category")
		return
	}
	ctx.Status(http.StatusNoContent)
}
