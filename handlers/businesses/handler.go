package businesses

import (
	"net/http"

	"cee-backend/db"
	"cee-backend/models"
	"cee-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// @Summary Register a business
// @Description Register a new business owned by the connected anunciante
// @Tags businesses
// @Accept json
// @Produce json
// @Param business body models.BusinessCreate true "Business information"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{} "message: Business created successfully, id: business ID"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /businesses [post]
func CreateBusiness(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.BusinessCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	business := models.Business{
		UserID:      userID.(string),
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		City:        input.City,
		Address:     input.Address,
		Phone:       input.Phone,
		Website:     input.Website,
		Enable:      true,
	}

	if err := db.DB.Create(&business).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error al crear el negocio en CreateBusiness")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating the business"})
		return
	}

	utils.LogSuccessWithUser(userID, "Negocio creado en CreateBusiness")
	c.JSON(http.StatusCreated, gin.H{
		"message": "Business created successfully",
		"id":      business.ID,
	})
}

// @Summary List own businesses
// @Description Return the businesses owned by the connected user
// @Tags businesses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Business
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /businesses/mine [get]
func GetMyBusinesses(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var businesses []models.Business
	if err := db.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&businesses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching businesses"})
		return
	}

	c.JSON(http.StatusOK, businesses)
}

// @Summary Public business directory
// @Description Return all enabled businesses, optionally filtered by city or category
// @Tags businesses
// @Produce json
// @Param city query string false "Filter by city"
// @Param category query string false "Filter by category"
// @Success 200 {array} models.Business
// @Router /businesses [get]
func GetAllBusinesses(c *gin.Context) {
	query := db.DB.Where("enable = ?", true)

	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var businesses []models.Business
	if err := query.Order("created_at DESC").Find(&businesses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching businesses"})
		return
	}

	c.JSON(http.StatusOK, businesses)
}

// @Summary Update a business
// @Description Update a business owned by the connected user
// @Tags businesses
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Param business body models.BusinessUpdate true "Business fields"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Business updated successfully"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 403 {object} map[string]string "error: Not the owner"
// @Failure 404 {object} map[string]string "error: Business not found"
// @Router /businesses/{id} [put]
func UpdateBusiness(c *gin.Context) {
	businessID := c.Param("id")
	if _, err := uuid.Parse(businessID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business ID"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var business models.Business
	if err := db.DB.First(&business, "id = ?", businessID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
		return
	}

	if business.UserID != userID && c.GetString("role") != string(models.AdminRole) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the owner of this business"})
		return
	}

	var input models.BusinessUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.Name != "" {
		updates["name"] = input.Name
	}
	if input.Description != "" {
		updates["description"] = input.Description
	}
	if input.Category != "" {
		updates["category"] = input.Category
	}
	if input.City != "" {
		updates["city"] = input.City
	}
	if input.Address != "" {
		updates["address"] = input.Address
	}
	if input.Phone != "" {
		updates["phone"] = input.Phone
	}
	if input.Website != "" {
		updates["website"] = input.Website
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := db.DB.Model(&business).Updates(updates).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error al actualizar el negocio en UpdateBusiness")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating the business"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Business updated successfully"})
}

// @Summary Upload a business logo
// @Description Upload the logo image of a business owned by the connected user
// @Tags businesses
// @Accept mpfd
// @Produce json
// @Param id path string true "Business ID"
// @Param logo formData file true "Logo image"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Logo uploaded successfully, url: logo URL"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 404 {object} map[string]string "error: Business not found"
// @Router /businesses/{id}/logo [post]
func UploadBusinessLogo(c *gin.Context) {
	businessID := c.Param("id")
	if _, err := uuid.Parse(businessID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business ID"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var business models.Business
	if err := db.DB.First(&business, "id = ?", businessID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
		return
	}

	if business.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the owner of this business"})
		return
	}

	file, err := c.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing logo file"})
		return
	}

	url, err := utils.UploadImage(file, "negocios")
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error al subir el logo en UploadBusinessLogo")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := db.DB.Model(&business).Update("logo_url", url).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving the logo URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logo uploaded successfully", "url": url})
}
