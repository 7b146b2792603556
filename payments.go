package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bangskull/models"
)

func listPaymentMethodsHandler(c *gin.Context) {
	var methods []models.PaymentMethod
	if err := db.Order("method").Find(&methods).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, methods)
}

// updatePaymentMethodHandler edits one of the four fixed channels. Only the
// account fields and the active flag are writable; the method name is not,
// and there is deliberately no create or delete route.
func updatePaymentMethodHandler(c *gin.Context) {
	var method models.PaymentMethod
	if err := db.First(&method, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "payment method not found"})
		return
	}
	var req struct {
		AccountName   string `json:"account_name" binding:"required"`
		AccountNumber string `json:"account_number" binding:"required"`
		IsActive      bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updates := map[string]any{
		"account_name":   req.AccountName,
		"account_number": req.AccountNumber,
		"is_active":      req.IsActive,
	}
	if err := db.Model(&method).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, method)
}
