package handlers

import (
	"log"
	"strings"

	"northlink/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ListHandler handles HTTP requests for wish lists.
type ListHandler struct {
	listService *services.ListService
	itemService *services.ItemService
	validate    *validator.Validate
}

// NewListHandler creates a new ListHandler.
func NewListHandler(listService *services.ListService, itemService *services.ItemService) *ListHandler {
	return &ListHandler{
		listService: listService,
		itemService: itemService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the list routes with the Fiber app.
func (h *ListHandler) RegisterRoutes(router fiber.Router) {
	listRoutes := router.Group("/lists")
	listRoutes.Get("/", h.HandleGetOwnLists)
	listRoutes.Get("/shared", h.HandleGetSharedLists)
	listRoutes.Post("/", h.HandleCreateList)
	listRoutes.Get("/:id", h.HandleGetListDetail)
	listRoutes.Put("/:id", h.HandleRenameList)
	listRoutes.Delete("/:id", h.HandleDeleteList)
	listRoutes.Post("/:id/share", h.HandleShareList)
	listRoutes.Delete("/:id/share", h.HandleUnshareList)
	listRoutes.Get("/:id/progress", h.HandleGetProgress)
}

// HandleGetOwnLists returns the caller's own lists.
func (h *ListHandler) HandleGetOwnLists(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	lists, err := h.listService.OwnLists(userID)
	if err != nil {
		log.Printf("Error fetching lists for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not fetch lists",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"lists": lists,
	})
}

// HandleGetSharedLists returns the "shared with me" view: lists shared to
// the caller's group, own lists excluded, deduplicated, each with purchase
// progress.
func (h *ListHandler) HandleGetSharedLists(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	lists, err := h.listService.SharedWithMe(userID)
	if err != nil {
		log.Printf("Error fetching shared lists for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not fetch shared lists",
			"error":   err.Error(),
		})
	}

	type sharedList struct {
		ID               string `json:"id"`
		Title            string `json:"title"`
		OwnerUserID      string `json:"owner_user_id"`
		OwnerDisplayName string `json:"owner_display_name"`
		OwnerAvatarURL   string `json:"owner_avatar_url"`
		Total            int    `json:"total"`
		Purchased        int    `json:"purchased"`
		Percent          int    `json:"percent"`
	}
	out := make([]sharedList, 0, len(lists))
	for _, l := range lists {
		row := sharedList{
			ID:               l.ID,
			Title:            l.Title,
			OwnerUserID:      l.OwnerUserID,
			OwnerDisplayName: l.OwnerDisplayName,
			OwnerAvatarURL:   l.OwnerAvatarURL,
		}
		// Progress enrichment is best effort; a failed count leaves zeros.
		if p, err := h.itemService.GetProgress(userID, l.ID); err == nil {
			row.Total = p.Total
			row.Purchased = p.Purchased
			row.Percent = services.PercentPurchased(p)
		}
		out = append(out, row)
	}

	return c.JSON(fiber.Map{
		"lists": out,
	})
}

// CreateListRequest represents the request body for creating a list.
type CreateListRequest struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
}

// HandleCreateList creates a list owned by the caller.
func (h *ListHandler) HandleCreateList(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var req CreateListRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	list, err := h.listService.CreateList(userID, req.Title)
	if err != nil {
		log.Printf("Error creating list for user %s: %v", userID, err)
		if strings.Contains(err.Error(), "required") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create list",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"list": list,
	})
}

// HandleGetListDetail returns a list with its items. Owners get the
// new-purchase banner count and purchase-redacted items; shared viewers get
// full purchase state. A failed items fetch degrades the view (items_error)
// instead of failing it.
func (h *ListHandler) HandleGetListDetail(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	listID := c.Params("id")

	detail, err := h.listService.GetListDetail(listID, userID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "List not found",
			})
		}
		log.Printf("Error fetching list %s: %v", listID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not fetch list",
			"error":   err.Error(),
		})
	}

	resp := fiber.Map{
		"list":          detail.List,
		"items":         detail.Items,
		"is_owner":      detail.IsOwner,
		"new_purchases": detail.NewPurchases,
		"is_shared":     h.listService.IsShared(listID, userID),
	}
	if detail.ItemsError != "" {
		resp["items_error"] = detail.ItemsError
	}
	return c.JSON(resp)
}

// RenameListRequest represents the request body for renaming a list.
type RenameListRequest struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
}

// HandleRenameList renames the caller's list.
func (h *ListHandler) HandleRenameList(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	listID := c.Params("id")

	var req RenameListRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	if err := h.listService.RenameList(listID, userID, req.Title); err != nil {
		return h.listError(c, listID, err, "Could not rename list")
	}
	return c.JSON(fiber.Map{
		"message": "List renamed",
	})
}

// HandleDeleteList deletes the caller's list.
func (h *ListHandler) HandleDeleteList(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	listID := c.Params("id")

	if err := h.listService.DeleteList(listID, userID); err != nil {
		return h.listError(c, listID, err, "Could not delete list")
	}
	return c.JSON(fiber.Map{
		"message": "List deleted",
	})
}

// HandleShareList shares the caller's list with their family group.
func (h *ListHandler) HandleShareList(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	listID := c.Params("id")

	if err := h.listService.ShareToGroup(listID, userID); err != nil {
		if strings.Contains(err.Error(), "cannot be shared") {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Only the owner of a list in a group can share it",
				"error":   err.Error(),
			})
		}
		return h.listError(c, listID, err, "Could not share list")
	}
	return c.JSON(fiber.Map{
		"message": "List shared",
	})
}

// HandleUnshareList revokes the share of the caller's list to their group.
func (h *ListHandler) HandleUnshareList(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	listID := c.Params("id")

	if err := h.listService.UnshareFromGroup(listID, userID); err != nil {
		if strings.Contains(err.Error(), "cannot be unshared") {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Only the owner of a list in a group can unshare it",
				"error":   err.Error(),
			})
		}
		return h.listError(c, listID, err, "Could not unshare list")
	}
	return c.JSON(fiber.Map{
		"message": "List unshared",
	})
}

// HandleGetProgress returns a visible list's purchase progress.
func (h *ListHandler) HandleGetProgress(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	listID := c.Params("id")

	p, err := h.itemService.GetProgress(userID, listID)
	if err != nil {
		return h.listError(c, listID, err, "Could not fetch progress")
	}
	return c.JSON(fiber.Map{
		"total":     p.Total,
		"purchased": p.Purchased,
		"percent":   services.PercentPurchased(p),
	})
}

func (h *ListHandler) listError(c *fiber.Ctx, listID string, err error, message string) error {
	if strings.Contains(err.Error(), "not found") {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "List not found",
		})
	}
	log.Printf("Error on list %s: %v", listID, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}
