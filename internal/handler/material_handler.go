package handler

import (
	"go-catalog-api/internal/model"
	"go-catalog-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type MaterialHandler struct {
	service service.MaterialService
}

func NewMaterialHandler(s service.MaterialService) *MaterialHandler {
	return &MaterialHandler{service: s}
}

func (h *MaterialHandler) GetMaterials(c *fiber.Ctx) error {
	materials, err := h.service.GetPublishedMaterials()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(materials)
}

func (h *MaterialHandler) GetMaterial(c *fiber.Ctx) error {
	material, err := h.service.GetMaterialBySlug(c.Params("slug"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(material)
}

func (h *MaterialHandler) CreateMaterial(c *fiber.Ctx) error {
	var material model.Material
	if err := c.BodyParser(&material); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateMaterial(&material, getActor(c)); err != nil {
		return respondErr(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Material created", "data": material})
}

func (h *MaterialHandler) UpdateMaterial(c *fiber.Ctx) error {
	var req service.MaterialUpdate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateMaterial(c.Params("slug"), &req, getActor(c))
	if err != nil {
		return respondErr(c, err)
	}

	return c.JSON(fiber.Map{"message": "Material updated", "data": updated})
}

func (h *MaterialHandler) DeleteMaterial(c *fiber.Ctx) error {
	if err := h.service.DeleteMaterial(c.Params("slug"), getActor(c)); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Material deleted"})
}

func (h *MaterialHandler) TogglePublished(c *fiber.Ctx) error {
	material, err := h.service.TogglePublished(c.Params("slug"), getActor(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(fiber.Map{"message": "Material publication toggled", "data": material})
}
