package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/time/rate"

	"bangskull/models"
)

func setupRoutes(r *gin.Engine) {
	r.Use(corsMiddleware())
	r.Static("/public", uploadBaseDir())

	r.POST("/login", loginRateLimit(), loginHandler)
	r.POST("/refresh", refreshHandler)
	r.POST("/revoke_refresh", revokeRefreshHandler)

	r.GET("/storefront", storefrontHandler)
	r.GET("/products/:id", productDetailHandler)
	r.POST("/products/:id/checkout", checkoutHandler)

	authGroup := r.Group("")
	authGroup.Use(jwtAuthMiddleware())
	authGroup.GET("/me", meHandler)

	admin := authGroup.Group("/admin")
	admin.Use(adminRequired())
	admin.GET("/summary", adminSummaryHandler)

	admin.GET("/products", listProductsHandler)
	admin.POST("/products", createProductHandler)
	admin.DELETE("/products/:id", deleteProductHandler)

	admin.GET("/payments", listPaymentMethodsHandler)
	admin.PUT("/payments/:id", updatePaymentMethodHandler)

	admin.GET("/announcements", listAnnouncementsHandler)
	admin.POST("/announcements", createAnnouncementHandler)
	admin.PATCH("/announcements/:id/active", toggleAnnouncementHandler)
	admin.DELETE("/announcements/:id", deleteAnnouncementHandler)

	admin.GET("/banners", listBannersHandler)
	admin.POST("/banners", createBannerHandler)
	admin.PATCH("/banners/:id/active", toggleBannerHandler)
	admin.POST("/banners/:id/move", moveBannerHandler)
	admin.DELETE("/banners/:id", deleteBannerHandler)
}

// corsMiddleware is intentionally hand-written: the rs/cors style wrappers
// target net/http handler chains and don't compose with gin's middleware
// stack. The policy is fixed and small.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// loginRateLimit throttles credential guessing across all clients.
func loginRateLimit() gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Every(time.Second), 5)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many login attempts, try again later"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}
		tokenString := authHeader[7:]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		uid, ok := claims["uid"].(float64)
		if !ok || uid <= 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		c.Set("user_id", uint(uid))
		c.Next()
	}
}

// getUserFromContext loads the authenticated user (with role) fresh from
// the database using the id set by jwtAuthMiddleware.
func getUserFromContext(c *gin.Context) (*models.User, bool) {
	idVal, _ := c.Get("user_id")
	id, ok := idVal.(uint)
	if !ok {
		return nil, false
	}
	var user models.User
	if err := db.Preload("Role").First(&user, id).Error; err != nil {
		return nil, false
	}
	return &user, true
}

// adminRequired gates the console routes. The role is re-read from the
// database on every request; token claims are identity only, so a revoked
// admin loses access on their next request. 401 means "no usable session"
// (client goes to login), 403 means "signed in but not admin" (client goes
// home).
func adminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := getUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			c.Abort()
			return
		}
		if !user.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
			c.Abort()
			return
		}
		c.Set("current_user", user)
		c.Next()
	}
}

// currentUser returns the admin resolved by adminRequired.
func currentUser(c *gin.Context) *models.User {
	v, _ := c.Get("current_user")
	u, _ := v.(*models.User)
	return u
}

// idParam parses the :id path segment as a numeric key; 0 matches nothing.
func idParam(c *gin.Context) uint {
	v, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	return uint(v)
}

func loginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := Authenticate(req.Email, req.Password)
	if err != nil {
		// Login is the one place the raw failure text is shown to the user.
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	tokenString, err := signAccessToken(user, 24*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	refreshToken, err := createAndStoreRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "login successful", "token": tokenString, "refresh_token": refreshToken})
}

// refreshHandler exchanges a refresh token for a new access token and rotates the refresh token
func refreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rt, err := findRefreshTokenByRaw(req.RefreshToken)
	if err != nil || rt.Revoked || time.Now().After(rt.ExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired refresh token"})
		return
	}
	var user models.User
	if err := db.First(&user, rt.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	tokenString, err := signAccessToken(user, 15*time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	// rotate refresh token: revoke existing and create new one
	db.Model(&models.RefreshToken{}).Where("id = ?", rt.ID).Update("revoked", true)
	newRT, err := createAndStoreRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rotate refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tokenString, "refresh_token": newRT})
}

// revokeRefreshHandler revokes a given refresh token (useful on logout)
func revokeRefreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rt, err := findRefreshTokenByRaw(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "refresh token not found"})
		return
	}
	rt.Revoked = true
	if err := db.Save(rt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "refresh token revoked"})
}

func meHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": user.Email, "role": user.Role.Name})
}

// adminSummaryHandler backs the console dashboard cards.
func adminSummaryHandler(c *gin.Context) {
	counts := gin.H{}
	for name, m := range map[string]any{
		"products":        &models.Product{},
		"payment_methods": &models.PaymentMethod{},
		"announcements":   &models.Announcement{},
		"promo_banners":   &models.PromoBanner{},
	} {
		var n int64
		if err := db.Model(m).Count(&n).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
			return
		}
		counts[name] = n
	}
	c.JSON(http.StatusOK, counts)
}
