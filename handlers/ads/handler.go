package ads

import (
	"errors"
	"net/http"

	"cee-backend/db"
	"cee-backend/handlers/billing"
	"cee-backend/models"
	"cee-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateAdvertisement crea un anuncio en estado PENDING consumiendo un
// crédito del anunciante. El gasto y la creación van en la misma transacción:
// o se descuenta el crédito y existe el anuncio, o ninguna de las dos cosas.
// @Summary Create an advertisement
// @Description Create an advertisement for one of the connected anunciante's businesses. Spends one credit. The ad stays PENDING until an admin approves it.
// @Tags advertisements
// @Accept mpfd
// @Produce json
// @Param advertisement formData models.AdvertisementCreate true "Advertisement information"
// @Param image formData file false "Advertisement image"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{} "message: Advertisement created successfully, id: advertisement ID"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 402 {object} map[string]string "error: Insufficient credits"
// @Failure 403 {object} map[string]string "error: Not the owner of the business"
// @Failure 404 {object} map[string]string "error: Business not found"
// @Router /advertisements [post]
func CreateAdvertisement(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.AdvertisementCreate
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var business models.Business
	if err := db.DB.First(&business, "id = ?", input.BusinessID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
		return
	}
	if business.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the owner of this business"})
		return
	}

	imageURL := ""
	if file, err := c.FormFile("image"); err == nil {
		url, err := utils.UploadImage(file, "anuncios")
		if err != nil {
			utils.LogErrorWithUser(userID, err, "Error al subir la imagen en CreateAdvertisement")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		imageURL = url
	}

	ad := models.Advertisement{
		UserID:     userID.(string),
		BusinessID: business.ID,
		Title:      input.Title,
		Content:    input.Content,
		TargetURL:  input.TargetURL,
		ImageURL:   imageURL,
		Status:     models.AdvertisementPending,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := billing.SpendCredit(tx, userID.(string), "ad creation: "+input.Title); err != nil {
			return err
		}
		return tx.Create(&ad).Error
	})
	if err != nil {
		if errors.Is(err, billing.ErrInsufficientCredits) {
			utils.LogErrorWithUser(userID, nil, "Sin créditos en CreateAdvertisement")
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "Insufficient credits, renew or upgrade your subscription"})
			return
		}
		utils.LogErrorWithUser(userID, err, "Error al crear el anuncio en CreateAdvertisement")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating the advertisement"})
		return
	}

	utils.LogSuccessWithUser(userID, "Anuncio creado en CreateAdvertisement")
	c.JSON(http.StatusCreated, gin.H{
		"message": "Advertisement created successfully",
		"id":      ad.ID,
	})
}

// @Summary Public advertisements
// @Description Return approved advertisements for public display
// @Tags advertisements
// @Produce json
// @Success 200 {array} models.Advertisement
// @Router /advertisements [get]
func GetApprovedAdvertisements(c *gin.Context) {
	var advertisements []models.Advertisement
	if err := db.DB.Where("status = ?", models.AdvertisementApproved).Order("created_at DESC").Find(&advertisements).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching advertisements"})
		return
	}

	c.JSON(http.StatusOK, advertisements)
}

// @Summary List own advertisements
// @Description Return the advertisements of the connected anunciante
// @Tags advertisements
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Advertisement
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /advertisements/mine [get]
func GetMyAdvertisements(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var advertisements []models.Advertisement
	if err := db.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&advertisements).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching advertisements"})
		return
	}

	c.JSON(http.StatusOK, advertisements)
}

// @Summary List pending advertisements
// @Description Return advertisements awaiting moderation (admin only)
// @Tags advertisements
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Advertisement
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /advertisements/pending [get]
func GetPendingAdvertisements(c *gin.Context) {
	var advertisements []models.Advertisement
	if err := db.DB.Where("status = ?", models.AdvertisementPending).Order("created_at ASC").Find(&advertisements).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching advertisements"})
		return
	}

	c.JSON(http.StatusOK, advertisements)
}

// UpdateAdvertisementStatus modera un anuncio. Solo los admins cambian el
// estado; los créditos gastados no se devuelven al rechazar.
// @Summary Moderate an advertisement
// @Description Change an advertisement's status (admin only)
// @Tags advertisements
// @Accept json
// @Produce json
// @Param id path string true "Advertisement ID"
// @Param status body models.AdvertisementStatusUpdate true "New status"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Advertisement status updated"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 404 {object} map[string]string "error: Advertisement not found"
// @Router /advertisements/{id}/status [put]
func UpdateAdvertisementStatus(c *gin.Context) {
	adID := c.Param("id")
	if _, err := uuid.Parse(adID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid advertisement ID"})
		return
	}

	var input models.AdvertisementStatusUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	switch input.Status {
	case models.AdvertisementApproved, models.AdvertisementPaused, models.AdvertisementRejected, models.AdvertisementPending:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status: " + string(input.Status)})
		return
	}

	var ad models.Advertisement
	if err := db.DB.First(&ad, "id = ?", adID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Advertisement not found"})
		return
	}

	if err := db.DB.Model(&ad).Update("status", input.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating the advertisement"})
		return
	}

	utils.LogSuccessWithUser(ad.UserID, "Anuncio "+adID+" moderado a "+string(input.Status))
	c.JSON(http.StatusOK, gin.H{"message": "Advertisement status updated"})
}

// @Summary Delete an advertisement
// @Description Delete an advertisement owned by the connected user. Spent credits are not refunded.
// @Tags advertisements
// @Produce json
// @Param id path string true "Advertisement ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Advertisement deleted"
// @Failure 403 {object} map[string]string "error: Not the owner"
// @Failure 404 {object} map[string]string "error: Advertisement not found"
// @Router /advertisements/{id} [delete]
func DeleteAdvertisement(c *gin.Context) {
	adID := c.Param("id")
	if _, err := uuid.Parse(adID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid advertisement ID"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var ad models.Advertisement
	if err := db.DB.First(&ad, "id = ?", adID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Advertisement not found"})
		return
	}

	if ad.UserID != userID && c.GetString("role") != string(models.AdminRole) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the owner of this advertisement"})
		return
	}

	if err := db.DB.Delete(&ad).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting the advertisement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Advertisement deleted"})
}
