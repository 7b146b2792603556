package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"bangskull/models"
	"bangskull/pkg/imagestore"
)

func listProductsHandler(c *gin.Context) {
	var products []models.Product
	if err := db.Order("created_at desc").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// createProductHandler takes a multipart form: name, description, price,
// stock plus any number of "images" files. Images upload one by one; a file
// that fails is skipped and the ones already stored stay attached, the whole
// product is not rolled back.
func createProductHandler(c *gin.Context) {
	user := currentUser(c)

	name := strings.TrimSpace(c.PostForm("name"))
	description := strings.TrimSpace(c.PostForm("description"))
	if name == "" || description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and description are required"})
		return
	}
	price, err := strconv.ParseInt(c.PostForm("price"), 10, 64)
	if err != nil || price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be a non-negative number"})
		return
	}
	stock, err := strconv.Atoi(c.PostForm("stock"))
	if err != nil || stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stock must be a non-negative number"})
		return
	}

	urls := []string{}
	if form, err := c.MultipartForm(); err == nil {
		for _, fh := range form.File["images"] {
			f, err := fh.Open()
			if err != nil {
				log.Warn().Err(err).Str("file", fh.Filename).Msg("skipping unreadable image")
				continue
			}
			saved, err := store.Save(imagestore.BucketProducts, fh.Filename, f)
			f.Close()
			if err != nil {
				log.Warn().Err(err).Str("file", fh.Filename).Msg("skipping failed image upload")
				continue
			}
			urls = append(urls, saved.PublicURL)
			recordUpload(saved, imagestore.BucketProducts, user)
		}
	}

	product := models.Product{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		Images:      datatypes.NewJSONSlice(urls),
	}
	if err := db.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func deleteProductHandler(c *gin.Context) {
	res := db.Delete(&models.Product{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

// recordUpload keeps a bookkeeping row per stored file so the janitor can
// reconcile buckets against what the live rows reference.
func recordUpload(saved imagestore.Saved, bucket string, user *models.User) {
	up := models.Upload{
		Bucket:      bucket,
		FileName:    saved.FileName,
		StorePath:   saved.StorePath,
		ContentType: saved.ContentType,
	}
	if user != nil {
		up.UploadedBy = user.ID
	}
	if err := db.Create(&up).Error; err != nil {
		log.Warn().Err(err).Str("file", saved.FileName).Msg("failed to record upload")
	}
}
