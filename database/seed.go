package database

import (
	"log"

	"nyn_restaurant/constants"
	"nyn_restaurant/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("kitchen123"), 10)
	hashPassword := string(bytes)
	if err != nil {
		log.Println("failed to hash seed password:", err)
		return
	}

	accounts := []model.Account{
		{Username: "admin", Password: hashPassword, Active: true, Role: constants.ROLE_ADMIN},
		{Username: "kitchen", Password: hashPassword, Active: true, Role: constants.ROLE_KITCHEN},
	}
	for _, account := range accounts {
		if err := db.Where(model.Account{Username: account.Username}).FirstOrCreate(&account).Error; err != nil {
			log.Println("failed to seed account:", account.Username, "error:", err)
		}
	}

	menuItems := []model.MenuItem{
		{Name: "Borscht", Slug: "borscht", Description: "Beet soup with sour cream and dill", Price: 14, CategoryKey: "soups", Available: true},
		{Name: "Chicken Kyiv", Slug: "chicken-kyiv", Description: "Breaded chicken breast, herb butter", Price: 26, CategoryKey: "mains", Available: true},
		{Name: "Ribeye Steak", Slug: "ribeye-steak", Description: "12oz ribeye, garlic butter", Price: 38, CategoryKey: "mains", Available: true},
		{Name: "Pelmeni", Slug: "pelmeni", Description: "Siberian dumplings, beef and pork", Price: 18, CategoryKey: "mains", Available: true},
		{Name: "Olivier Salad", Slug: "olivier-salad", Description: "Potato salad with peas and pickles", Price: 12, CategoryKey: "sides", Available: true},
		{Name: "Napoleon Cake", Slug: "napoleon-cake", Description: "Layered puff pastry cake", Price: 11, CategoryKey: "desserts", Available: true},
		{Name: "Kompot", Slug: "kompot", Description: "House fruit drink", Price: 5, CategoryKey: "drinks", Available: true},
	}
	for _, item := range menuItems {
		if err := db.Where(model.MenuItem{Slug: item.Slug}).FirstOrCreate(&item).Error; err != nil {
			log.Println("failed to seed menu item:", item.Name, "error:", err)
		}
	}

	minOrder := 20.0
	promotions := []model.Promotion{
		{Code: "SAVE10", Type: constants.PROMO_PERCENT, Value: 10, Active: true, MinOrder: &minOrder},
		{Code: "WELCOME5", Type: constants.PROMO_FIXED, Value: 5, Active: true},
	}
	for _, promo := range promotions {
		if err := db.Where(model.Promotion{Code: promo.Code}).FirstOrCreate(&promo).Error; err != nil {
			log.Println("failed to seed promotion:", promo.Code, "error:", err)
		}
	}

	inventory := []model.InventoryItem{
		{Name: "Beets", Unit: "kg", OnHand: 25, ReorderLevel: 5},
		{Name: "Ribeye", Unit: "pcs", OnHand: 40, ReorderLevel: 10},
		{Name: "Flour", Unit: "kg", OnHand: 50, ReorderLevel: 15},
		{Name: "Sour Cream", Unit: "l", OnHand: 12, ReorderLevel: 4},
	}
	for _, item := range inventory {
		if err := db.Where(model.InventoryItem{Name: item.Name}).FirstOrCreate(&item).Error; err != nil {
			log.Println("failed to seed inventory item:", item.Name, "error:", err)
		}
	}
}
