package handler

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"nyn_restaurant/config"
	"nyn_restaurant/constants"
	"nyn_restaurant/database"
	"nyn_restaurant/helper"
	"nyn_restaurant/model"
	"nyn_restaurant/utils"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// GetMenu returns available items grouped by category for the storefront.
func GetMenu(c *fiber.Ctx) error {
	var items model.MenuItems
	if err := database.DB.Where("available = ?", true).Order("category_key, name").Find(&items).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load menu", err)
	}

	grouped := map[string][]model.MenuItem{}
	for _, item := range items {
		grouped[item.CategoryKey] = append(grouped[item.CategoryKey], item)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, grouped)
}

func CreateMenuItem(c *fiber.Ctx) error {
	_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	input, ok := c.Locals("menuItemInput").(model.CreateMenuItemInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing menu item input"))
	}

	var newItem model.MenuItem
	copier.Copy(&newItem, &input)
	if input.Available == nil {
		newItem.Available = true
	}
	newItem.Slug = helper.GenerateUniqueMenuItemSlug(database.DB, input.Name)

	if err := database.DB.Create(&newItem).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create menu item", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, newItem)
}

func EditMenuItem(c *fiber.Ctx) error {
	_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	itemId, err := c.ParamsInt("itemId")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	input, ok := c.Locals("menuItemInput").(model.CreateMenuItemInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing menu item input"))
	}

	var item model.MenuItem
	if err := database.DB.First(&item, itemId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Menu item not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load menu item", err)
	}

	renamed := item.Name != input.Name
	copier.Copy(&item, &input)
	if input.Available != nil {
		item.Available = *input.Available
	}
	if renamed {
		item.Slug = helper.GenerateUniqueMenuItemSlug(database.DB, input.Name)
	}

	if err := database.DB.Save(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update menu item", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

// DeleteMenuItem removes an item and destroys its cloudinary image.
func DeleteMenuItem(c *fiber.Ctx) error {
	_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	itemId, err := c.ParamsInt("itemId")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	var item model.MenuItem
	if err := database.DB.First(&item, itemId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Menu item not found", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load menu item", err)
	}

	if item.Image != "" {
		cld := helper.InitCloudinary()
		invalidate := true
		go func(publicID string) {
			_, err := cld.Upload.Destroy(context.Background(), uploader.DestroyParams{
				PublicID:     publicID,
				ResourceType: "image",
				Invalidate:   &invalidate,
			})
			if err != nil {
				log.Printf("Failed to delete Cloudinary image %s: %v", publicID, err)
			}
		}(helper.ShortImageRef(item.Image))
	}

	if err := database.DB.Delete(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete menu item", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"id": itemId})
}

func SetMenuItemAvailability(c *fiber.Ctx) error {
	itemId, err := c.ParamsInt("itemId")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}
	available := c.Params("available") == "true"

	result := database.DB.Model(&model.MenuItem{}).Where("id = ?", itemId).Update("available", available)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update availability", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Menu item not found", nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"id": itemId, "available": available})
}

// GetInventory lists stock levels with a low-stock flag.
func GetInventory(c *fiber.Ctx) error {
	var items []model.InventoryItem
	if err := database.DB.Order("name").Find(&items).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load inventory", err)
	}

	rows := []map[string]interface{}{}
	for _, item := range items {
		rows = append(rows, map[string]interface{}{
			"id":           item.ID,
			"name":         item.Name,
			"unit":         item.Unit,
			"onHand":       item.OnHand,
			"reorderLevel": item.ReorderLevel,
			"lowStock":     item.OnHand <= item.ReorderLevel,
		})
	}
	return utils.SuccessResponse(c, fiber.StatusOK, rows)
}

func UpdateInventory(c *fiber.Ctx) error {
	itemId, err := c.ParamsInt("itemId")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	input, ok := c.Locals("inventoryInput").(model.UpdateInventoryInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing inventory input"))
	}

	updates := map[string]interface{}{}
	if input.OnHand != nil {
		updates["on_hand"] = *input.OnHand
	}
	if input.ReorderLevel != nil {
		updates["reorder_level"] = *input.ReorderLevel
	}
	if len(updates) == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Nothing to update", nil)
	}

	result := database.DB.Model(&model.InventoryItem{}).Where("id = ?", itemId).Updates(updates)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update inventory", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Inventory item not found", nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"id": itemId})
}

// GetPromotions lists promo codes with usage counters for staff.
func GetPromotions(c *fiber.Ctx) error {
	var promotions model.Promotions
	if err := database.DB.Order("created_at desc").Find(&promotions).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load promotions", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, promotions)
}

// GenerateSignature signs cloudinary upload params so the admin UI can upload
// menu photos directly.
func GenerateSignature(c *fiber.Ctx) error {
	_, isAdmin, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, nil)
	}

	type SigParams struct {
		Folder   string `json:"folder"`
		PublicID string `json:"public_id"`
	}

	var params SigParams
	if err := c.BodyParser(&params); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid params", err)
	}

	timestamp := time.Now().Unix()
	timestampStr := fmt.Sprintf("%d", timestamp)

	paramMap := map[string]string{"timestamp": timestampStr}
	if params.Folder != "" {
		paramMap["folder"] = params.Folder
	}
	if params.PublicID != "" {
		paramMap["public_id"] = params.PublicID
	}

	keys := make([]string, 0, len(paramMap))
	for k := range paramMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var stringToSign strings.Builder
	for i, k := range keys {
		if i > 0 {
			stringToSign.WriteString("&")
		}
		stringToSign.WriteString(k + "=" + paramMap[k])
	}
	stringToSign.WriteString(config.Config("CLOUDINARY_API_SECRET"))

	sum := sha1.Sum([]byte(stringToSign.String()))

	return c.JSON(fiber.Map{
		"signature": hex.EncodeToString(sum[:]),
		"timestamp": timestamp,
		"apiKey":    config.Config("CLOUDINARY_API_KEY"),
		"cloudName": config.Config("CLOUDINARY_CLOUD_NAME"),
	})
}
