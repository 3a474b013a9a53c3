package handlers

import (
	"log"
	"strings"

	"northlink/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// GroupHandler handles HTTP requests for family groups.
type GroupHandler struct {
	groupService *services.GroupService
	validate     *validator.Validate
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groupService *services.GroupService) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the group routes with the Fiber app.
func (h *GroupHandler) RegisterRoutes(router fiber.Router) {
	groupRoutes := router.Group("/groups")
	groupRoutes.Post("/", h.HandleCreateGroup)
	groupRoutes.Post("/join", h.HandleJoinGroup)
	groupRoutes.Get("/membership", h.HandleGetMembership)
	groupRoutes.Delete("/membership", h.HandleLeaveGroup)
}

// CreateGroupRequest represents the request body for creating a group.
type CreateGroupRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// HandleCreateGroup creates a family group with a generated invite code.
func (h *GroupHandler) HandleCreateGroup(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var req CreateGroupRequest
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

	group, err := h.groupService.CreateGroup(userID, req.Name)
	if err != nil {
		log.Printf("Error creating group for user %s: %v", userID, err)
		if strings.Contains(err.Error(), "already a member") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Could not create group",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create group",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"group":       group,
		"invite_code": group.InviteCode(),
	})
}

// JoinGroupRequest represents the request body for joining a group by code.
type JoinGroupRequest struct {
	InviteCode string `json:"invite_code" validate:"required"`
}

// HandleJoinGroup enrolls the caller in a group by invite code. An unknown
// code is a 404, never a silently dangling membership.
func (h *GroupHandler) HandleJoinGroup(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var req JoinGroupRequest
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

	membership, err := h.groupService.JoinGroup(userID, req.InviteCode)
	if err != nil {
		log.Printf("Error joining group for user %s: %v", userID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Invite code does not match any group",
				"error":   err.Error(),
			})
		}
		if strings.Contains(err.Error(), "already a member") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Could not join group",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not join group",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"membership": membership,
	})
}

// HandleGetMembership returns the caller's group membership, if any.
func (h *GroupHandler) HandleGetMembership(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	membership, err := h.groupService.GetMembership(userID)
	if err != nil {
		log.Printf("Error fetching membership for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not fetch membership",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"membership": membership, // null when the user has no group
	})
}

// HandleLeaveGroup removes the caller from their group.
func (h *GroupHandler) HandleLeaveGroup(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.groupService.LeaveGroup(userID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "No membership to leave",
			})
		}
		log.Printf("Error leaving group for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not leave group",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Left group",
	})
}
