package userController

import (
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	userValidator "lms/validators/user"

	"github.com/gofiber/fiber/v2"
)

func GetProfile(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	profile := *user
	profile.ProfilePicture = utils.GetFileURL(profile.ProfilePicture)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", profile)
}

func UpdateProfile(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedProfile").(*userValidator.UpdateProfileRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var stored models.User
	if err := db.Where("id = ? AND is_deleted = ?", user.ID, false).First(&stored).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if reqData.Name != "" {
		stored.Name = reqData.Name
	}
	if reqData.Bio != "" {
		stored.Bio = reqData.Bio
	}
	if reqData.Email != "" && reqData.Email != stored.Email {
		// New email must stay unique
		if err := db.Where("email = ? AND id <> ?", reqData.Email, stored.ID).First(&models.User{}).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
		}
		stored.Email = reqData.Email
	}

	// Handle profile picture upload
	if file, err := c.FormFile("profileImage"); err == nil {
		if !utils.IsImageFile(file.Filename, "jpg", "jpeg", "png") {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Only image files are allowed!", nil)
		}

		storedPath, err := utils.SaveUploadedFile(file, utils.ProfilePictureDir)
		if err != nil {
			log.Printf("Error saving profile picture: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save profile picture!", nil)
		}

		// Delete old profile picture, best effort
		if stored.ProfilePicture != "" {
			if err := utils.RemoveUploadedFile(stored.ProfilePicture); err != nil {
				log.Printf("Error deleting old profile picture: %v", err)
			}
		}
		stored.ProfilePicture = storedPath
	}

	if err := db.Save(&stored).Error; err != nil {
		log.Printf("Error updating profile: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	stored.Password = ""
	stored.ProfilePicture = utils.GetFileURL(stored.ProfilePicture)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully!", stored)
}

func DeleteProfile(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var stored models.User
	if err := db.Where("id = ? AND is_deleted = ?", user.ID, false).First(&stored).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	stored.IsDeleted = true
	if err := db.Save(&stored).Error; err != nil {
		log.Printf("Error deleting profile: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete profile!", nil)
	}

	// Remove the profile picture from storage, best effort
	if stored.ProfilePicture != "" {
		if err := utils.RemoveUploadedFile(stored.ProfilePicture); err != nil {
			log.Printf("Error deleting profile picture: %v", err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User profile deleted successfully!", nil)
}
