package handlers

import (
	"log"
	"strings"

	"northlink/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ItemHandler handles HTTP requests for wish list items.
type ItemHandler struct {
	itemService *services.ItemService
	validate    *validator.Validate
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemService *services.ItemService) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the item routes with the Fiber app.
func (h *ItemHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/lists/:id/items", h.HandleAddItem)
	itemRoutes := router.Group("/items")
	itemRoutes.Patch("/:id", h.HandleUpdateItem)
	itemRoutes.Post("/:id/purchase", h.HandleTogglePurchased)
	itemRoutes.Delete("/:id", h.HandleDeleteItem)
	router.Get("/purchased-items", h.HandleGetPurchasedItems)
}

// HandleAddItem adds an item to the caller's list. Price and link arrive in
// raw user-entered form and are normalized server-side.
func (h *ItemHandler) HandleAddItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	listID := c.Params("id")

	var input services.AddItemInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	item, err := h.itemService.AddItem(userID, listID, input)
	if err != nil {
		if strings.Contains(err.Error(), "required") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"error":   err.Error(),
			})
		}
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "List not found",
			})
		}
		log.Printf("Error adding item to list %s: %v", listID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add item",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"item": item,
	})
}

// HandleUpdateItem applies a metadata patch to an item on the caller's list.
func (h *ItemHandler) HandleUpdateItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("id")

	var patch services.ItemPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	item, err := h.itemService.UpdateItem(userID, itemID, patch)
	if err != nil {
		if strings.Contains(err.Error(), "cannot be empty") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"error":   err.Error(),
			})
		}
		return h.itemError(c, err, "Could not update item")
	}

	return c.JSON(fiber.Map{
		"item": item,
	})
}

// TogglePurchasedRequest represents the request body for a purchase toggle.
type TogglePurchasedRequest struct {
	Purchased bool `json:"purchased"`
}

// HandleTogglePurchased marks an item purchased or unpurchased on behalf of
// the caller.
func (h *ItemHandler) HandleTogglePurchased(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("id")

	var req TogglePurchasedRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	item, err := h.itemService.TogglePurchased(userID, itemID, req.Purchased)
	if err != nil {
		return h.itemError(c, err, "Could not update purchase status")
	}

	return c.JSON(fiber.Map{
		"item": item,
	})
}

// HandleDeleteItem removes an item from the caller's list.
func (h *ItemHandler) HandleDeleteItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("id")

	if err := h.itemService.DeleteItem(userID, itemID); err != nil {
		return h.itemError(c, err, "Could not delete item")
	}

	return c.JSON(fiber.Map{
		"message": "Item deleted",
	})
}

// HandleGetPurchasedItems returns everything the caller has purchased,
// across all lists they can see.
func (h *ItemHandler) HandleGetPurchasedItems(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	items, err := h.itemService.PurchasedItems(userID)
	if err != nil {
		log.Printf("Error fetching purchased items for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not fetch purchased items",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"items": items,
	})
}

func (h *ItemHandler) itemError(c *fiber.Ctx, err error, message string) error {
	if strings.Contains(err.Error(), "not found") {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Item not found",
		})
	}
	log.Printf("%s: %v", message, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}
