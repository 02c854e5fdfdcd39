package handler

import (
	"go-catalog-api/internal/apperr"
	"go-catalog-api/internal/media"
	"go-catalog-api/internal/model"
	"go-catalog-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	service service.CatalogService
	storage media.Storage
}

func NewCatalogHandler(s service.CatalogService, storage media.Storage) *CatalogHandler {
	return &CatalogHandler{service: s, storage: storage}
}

// getActor returns the authenticated user set by RequireAuth
func getActor(c *fiber.Ctx) *model.User {
	actor, _ := c.Locals("actor").(*model.User)
	return actor
}

// respondErr maps service errors onto the shared taxonomy
func respondErr(c *fiber.Ctx, err error) error {
	status := apperr.StatusCode(err)
	if status == 500 {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// UpdateProductRequest is the combined parent+children edit payload
type UpdateProductRequest struct {
	service.ProductUpdate
	Versions []service.VersionRow `json:"versions"`
}

func (h *CatalogHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetActiveProducts()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(products)
}

func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(product)
}

func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateProduct(&product, getActor(c)); err != nil {
		return respondErr(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateProduct(id, &req.ProductUpdate, req.Versions, getActor(c))
	if err != nil {
		return respondErr(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product updated", "data": updated})
}

func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.DeleteProduct(id, getActor(c)); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

func (h *CatalogHandler) ToggleActive(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.ToggleActive(id, getActor(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product activity toggled", "data": product})
}

func (h *CatalogHandler) TogglePublished(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.TogglePublished(id, getActor(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product publication toggled", "data": product})
}

// UploadProductImage stores the image in the object store and saves the
// object key as the product's image path.
func (h *CatalogHandler) UploadProductImage(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Missing 'image' file"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Failed to read uploaded file"})
	}
	defer file.Close()

	objectKey := media.ObjectKey("products", fileHeader.Filename)
	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.storage.Upload(c.Context(), objectKey, file, fileHeader.Size, contentType); err != nil {
		return c.Status(502).JSON(fiber.Map{"error": "Failed to store image"})
	}

	product, err := h.service.SetProductImage(id, objectKey, getActor(c))
	if err != nil {
		return respondErr(c, err)
	}

	return c.JSON(fiber.Map{"message": "Image uploaded", "data": product})
}
