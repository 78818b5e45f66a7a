package users

import (
	"net/http"

	"cee-backend/db"
	"cee-backend/models"
	"cee-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// @Summary Get own profile
// @Description Return the connected user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: User not found"
// @Router /users/me [get]
func GetProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	user.Password = ""
	c.JSON(http.StatusOK, user)
}

// @Summary Update own profile
// @Description Update the connected user's profile fields
// @Tags users
// @Accept json
// @Produce json
// @Param user body models.UserUpdate true "Profile fields"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Profile updated successfully"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /users/me [put]
func UpdateProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.UserUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.Name != "" {
		updates["name"] = input.Name
	}
	if input.Phone != "" {
		updates["phone"] = input.Phone
	}
	if input.ProfilePicture != "" {
		updates["profile_picture"] = input.ProfilePicture
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := db.DB.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error al actualizar el perfil en UpdateProfile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating the profile"})
		return
	}

	utils.LogSuccessWithUser(userID, "Perfil actualizado en UpdateProfile")
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// GetBillingDashboard devuelve el panel de facturación del usuario: plan,
// estado, saldo y los últimos movimientos del libro de créditos.
// @Summary Billing dashboard
// @Description Return the connected user's plan, status, credit balance and recent credit movements
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /users/me/billing [get]
func GetBillingDashboard(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var transactions []models.CreditTransaction
	if err := db.DB.Where("user_id = ?", userID).Order("created_at DESC").Limit(20).Find(&transactions).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error al leer el libro de créditos en GetBillingDashboard")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching the credit history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subscriptionPlan":   user.SubscriptionPlan,
		"subscriptionStatus": user.SubscriptionStatus,
		"credits":            user.Credits,
		"monthlyCredits":     user.MonthlyCredits,
		"creditsResetDate":   user.CreditsResetDate,
		"transactions":       transactions,
	})
}

// @Summary List users
// @Description Return all users (admin only)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Admin role required"
// @Router /users [get]
func GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := db.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching users"})
		return
	}

	for i := range users {
		users[i].Password = ""
	}
	c.JSON(http.StatusOK, users)
}

// UpdateUserRole cambia el rol de un usuario. Acción explícita de admin,
// independiente del estado de facturación.
// @Summary Change a user's role
// @Description Change a user's role (admin only)
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param role body models.UserRoleUpdate true "New role"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Role updated successfully"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 404 {object} map[string]string "error: User not found"
// @Router /users/{id}/role [put]
func UpdateUserRole(c *gin.Context) {
	targetID := c.Param("id")
	if _, err := uuid.Parse(targetID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var input models.UserRoleUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	switch input.Role {
	case models.GuestRole, models.AdminRole, models.AnuncianteRole:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role: " + string(input.Role)})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", targetID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := db.DB.Model(&user).Update("role", input.Role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating the role"})
		return
	}

	utils.LogSuccessWithUser(targetID, "Rol actualizado a "+string(input.Role)+" en UpdateUserRole")
	c.JSON(http.StatusOK, gin.H{"message": "Role updated successfully"})
}
