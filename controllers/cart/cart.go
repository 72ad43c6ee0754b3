package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lostmonster84/slydes-sub006/models"
	"github.com/lostmonster84/slydes-sub006/utils"
)

// cartSession resolves the opaque client-generated cart session ID.
func cartSession(c *gin.Context) string {
	if s := c.GetHeader("X-Cart-Session"); s != "" {
		return s
	}
	return c.Query("session")
}

func requireSession(c *gin.Context) (string, bool) {
	session := cartSession(c)
	if session == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart session is required"})
		return "", false
	}
	return session, true
}

func getOrCreateCart(db *gorm.DB, session string) (*models.Cart, error) {
	var cart models.Cart
	err := db.Preload("Items").Where("session_id = ?", session).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{SessionID: session}
		if err := db.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// cartTotals sums price*quantity and quantities over all lines.
func cartTotals(items []models.CartItem) (totalCents int64, itemCount int) {
	for _, item := range items {
		totalCents += item.PriceCents * int64(item.Quantity)
		itemCount += item.Quantity
	}
	return totalCents, itemCount
}

type AddItemInput struct {
	ItemID       string `json:"item_id" binding:"required"`
	Title        string `json:"title" binding:"required"`
	PriceCents   int64  `json:"price_cents"`
	PriceDisplay string `json:"price_display"`
}

// POST /api/cart/items
// Adding an item that is already in the cart increments its quantity by one.
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := requireSession(c)
		if !ok {
			return
		}

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		price := input.PriceCents
		if price == 0 && input.PriceDisplay != "" {
			price = utils.ParsePriceCents(input.PriceDisplay)
		}
		if price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must not be negative"})
			return
		}

		cart, err := getOrCreateCart(db, session)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		var item models.CartItem
		err = db.Where("cart_id = ? AND item_id = ?", cart.CartID, input.ItemID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			item = models.CartItem{
				CartID:     cart.CartID,
				ItemID:     input.ItemID,
				Title:      input.Title,
				PriceCents: price,
				Quantity:   1,
				AddedAt:    time.Now(),
			}
			if err := db.Create(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
				return
			}
			CartHub.Broadcast(session, "cart.updated")
			c.JSON(http.StatusCreated, item)
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart item"})
			return
		}

		item.Quantity++
		item.AddedAt = time.Now()
		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
		CartHub.Broadcast(session, "cart.updated")
		c.JSON(http.StatusOK, item)
	}
}

type UpdateQuantityInput struct {
	Quantity int `json:"quantity"`
}

// PUT /api/cart/items/:item_id
// A quantity of zero or less removes the line.
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := requireSession(c)
		if !ok {
			return
		}
		itemID := c.Param("item_id")

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var cart models.Cart
		if err := db.Where("session_id = ?", session).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
			return
		}

		if input.Quantity <= 0 {
			if err := db.Where("cart_id = ? AND item_id = ?", cart.CartID, itemID).
				Delete(&models.CartItem{}).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item"})
				return
			}
			CartHub.Broadcast(session, "cart.updated")
			c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
			return
		}

		result := db.Model(&models.CartItem{}).
			Where("cart_id = ? AND item_id = ?", cart.CartID, itemID).
			Update("quantity", input.Quantity)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		CartHub.Broadcast(session, "cart.updated")
		c.JSON(http.StatusOK, gin.H{"message": "Cart item updated"})
	}
}

// DELETE /api/cart/items/:item_id
// Removing an absent item is a no-op success.
func RemoveCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := requireSession(c)
		if !ok {
			return
		}
		itemID := c.Param("item_id")

		var cart models.Cart
		if err := db.Where("session_id = ?", session).First(&cart).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
			return
		}

		if err := db.Where("cart_id = ? AND item_id = ?", cart.CartID, itemID).
			Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item"})
			return
		}

		CartHub.Broadcast(session, "cart.updated")
		c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
	}
}

// GET /api/cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := requireSession(c)
		if !ok {
			return
		}

		var cart models.Cart
		err := db.Preload("Items").Where("session_id = ?", session).First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"items": []models.CartItem{}, "total_cents": 0, "item_count": 0})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		totalCents, itemCount := cartTotals(cart.Items)
		c.JSON(http.StatusOK, gin.H{
			"items":       cart.Items,
			"total_cents": totalCents,
			"item_count":  itemCount,
		})
	}
}

// DELETE /api/cart
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := requireSession(c)
		if !ok {
			return
		}
		if err := ClearCartSession(db, session); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		CartHub.Broadcast(session, "cart.updated")
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// ClearCartSession drops all lines of a session's cart. The webhook handler
// calls this after a confirmed checkout.
func ClearCartSession(db *gorm.DB, session string) error {
	var cart models.Cart
	err := db.Where("session_id = ?", session).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
}
