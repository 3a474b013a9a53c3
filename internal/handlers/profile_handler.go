package handlers

import (
	"log"
	"strings"

	"northlink/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProfileHandler handles HTTP requests for user profiles.
type ProfileHandler struct {
	profileService *services.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// RegisterRoutes registers the profile routes with the Fiber app.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/profile", h.HandleGetProfile)
	router.Put("/profile", h.HandleUpsertProfile)
}

// HandleGetProfile returns the caller's profile and whether onboarding is
// complete.
func (h *ProfileHandler) HandleGetProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	profile, err := h.profileService.GetProfile(userID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Profile not found",
			})
		}
		log.Printf("Error fetching profile for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not fetch profile",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"profile":  profile,
		"complete": profile.IsComplete(),
	})
}

// UpsertProfileRequest represents the request body for a profile upsert.
type UpsertProfileRequest struct {
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

// HandleUpsertProfile creates or updates the caller's profile.
func (h *ProfileHandler) HandleUpsertProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var req UpsertProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	profile, err := h.profileService.UpsertProfile(userID, req.DisplayName, req.AvatarURL)
	if err != nil {
		log.Printf("Error upserting profile for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save profile",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"profile":  profile,
		"complete": profile.IsComplete(),
	})
}
