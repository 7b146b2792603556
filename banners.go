package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bangskull/models"
	"bangskull/pkg/imagestore"
)

var errBannerNotFound = errors.New("banner not found")

func listBannersHandler(c *gin.Context) {
	var banners []models.PromoBanner
	if err := db.Order("order_index asc").Find(&banners).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, banners)
}

// createBannerHandler uploads the image first, then appends the banner at
// rank max+1 inside a locking transaction so two concurrent creates can't
// claim the same rank.
func createBannerHandler(c *gin.Context) {
	user := currentUser(c)

	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is unreadable"})
		return
	}
	saved, err := store.Save(imagestore.BucketBanners, fh.Filename, f)
	f.Close()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	recordUpload(saved, imagestore.BucketBanners, user)

	var linkURL *string
	if v := strings.TrimSpace(c.PostForm("link_url")); v != "" {
		linkURL = &v
	}

	banner := models.PromoBanner{ImageURL: saved.PublicURL, LinkURL: linkURL, IsActive: true}
	err = db.Transaction(func(tx *gorm.DB) error {
		var banners []models.PromoBanner
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Find(&banners).Error; err != nil {
			return err
		}
		banner.OrderIndex = nextOrderIndex(banners)
		return tx.Create(&banner).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, banner)
}

// toggleBannerHandler flips the active flag. Rank is untouched: ordering is
// independent of visibility.
func toggleBannerHandler(c *gin.Context) {
	var banner models.PromoBanner
	if err := db.First(&banner, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "banner not found"})
		return
	}
	if err := db.Model(&banner).Update("is_active", !banner.IsActive).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, banner)
}

// moveBannerHandler swaps the banner's rank with its up/down neighbor. Both
// rows are updated in one transaction under row locks, so no reader ever
// sees a duplicated or missing rank. Moving past the edge is a no-op.
func moveBannerHandler(c *gin.Context) {
	var req struct {
		Direction string `json:"direction" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Direction != MoveUp && req.Direction != MoveDown {
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be up or down"})
		return
	}

	moved := false
	err := db.Transaction(func(tx *gorm.DB) error {
		var banners []models.PromoBanner
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Order("order_index asc").Find(&banners).Error; err != nil {
			return err
		}
		var target *models.PromoBanner
		for i := range banners {
			if idParam(c) == banners[i].ID {
				target = &banners[i]
				break
			}
		}
		if target == nil {
			return errBannerNotFound
		}
		other := adjacentBanner(banners, *target, req.Direction)
		if other == nil {
			return nil // already first or last
		}
		if err := tx.Model(&models.PromoBanner{}).Where("id = ?", target.ID).
			Update("order_index", other.OrderIndex).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.PromoBanner{}).Where("id = ?", other.ID).
			Update("order_index", target.OrderIndex).Error; err != nil {
			return err
		}
		moved = true
		return nil
	})
	if errors.Is(err, errBannerNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "banner not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "move failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"moved": moved})
}

// deleteBannerHandler removes the row and closes the rank gap in the same
// transaction, keeping order_index exactly 1..N after every delete.
func deleteBannerHandler(c *gin.Context) {
	err := db.Transaction(func(tx *gorm.DB) error {
		var banner models.PromoBanner
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&banner, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errBannerNotFound
			}
			return err
		}
		if err := tx.Delete(&banner).Error; err != nil {
			return err
		}
		return tx.Model(&models.PromoBanner{}).
			Where("order_index > ?", banner.OrderIndex).
			UpdateColumn("order_index", gorm.Expr("order_index - 1")).Error
	})
	if errors.Is(err, errBannerNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "banner not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "banner deleted"})
}
