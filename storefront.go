package main

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"bangskull/models"
)

// checkoutInstructions is shown in the modal above the channel list.
const checkoutInstructions = "Silakan transfer ke salah satu metode di bawah. Kirim bukti ke WhatsApp kami setelah bayar."

// homePageLimit caps the "Produk Terbaru" grid.
const homePageLimit = 8

// storefrontHandler aggregates the landing page: active banners in rank
// order, active announcements (newest first, the first one is the marquee)
// and the latest products. The three queries run concurrently and the
// response waits for all of them; a failed section is logged and rendered
// empty rather than failing the page.
func storefrontHandler(c *gin.Context) {
	banners := []models.PromoBanner{}
	announcements := []models.Announcement{}
	products := []models.Product{}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		if err := db.Where("is_active = ?", true).Order("order_index asc").Find(&banners).Error; err != nil {
			log.Warn().Err(err).Msg("storefront: banner query failed")
		}
	}()
	go func() {
		defer wg.Done()
		if err := db.Where("is_active = ?", true).Order("created_at desc").Find(&announcements).Error; err != nil {
			log.Warn().Err(err).Msg("storefront: announcement query failed")
		}
	}()
	go func() {
		defer wg.Done()
		if err := db.Order("created_at desc").Limit(homePageLimit).Find(&products).Error; err != nil {
			log.Warn().Err(err).Msg("storefront: product query failed")
		}
	}()
	wg.Wait()

	c.JSON(http.StatusOK, gin.H{
		"banners":       banners,
		"announcements": announcements,
		"products":      products,
	})
}

// productDetailHandler returns one product plus the active payment channels
// the checkout modal will need. Unknown ids are 404; the client redirects
// home.
func productDetailHandler(c *gin.Context) {
	var product models.Product
	if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	methods, err := activePaymentMethods()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product, "payment_methods": methods})
}

// checkoutHandler is the buy action. No reservation, no stock decrement, no
// order row: payment happens out of band, this only reveals the transfer
// details, and only while the product is in stock.
func checkoutHandler(c *gin.Context) {
	var product models.Product
	if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if !product.InStock() {
		c.JSON(http.StatusConflict, gin.H{"error": "stok habis"})
		return
	}
	methods, err := activePaymentMethods()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"payment_methods": methods,
		"instructions":    checkoutInstructions,
	})
}

func activePaymentMethods() ([]models.PaymentMethod, error) {
	methods := []models.PaymentMethod{}
	err := db.Where("is_active = ?", true).Order("method").Find(&methods).Error
	return methods, err
}
