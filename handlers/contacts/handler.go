package contacts

import (
	"net/http"
	"os"
	"time"

	"cee-backend/db"
	"cee-backend/models"
	"cee-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// @Summary Create a new contact request
// @Description Submit a new contact request (lead) with the provided information
// @Tags contacts
// @Accept json
// @Produce json
// @Param contact body models.ContactCreate true "Contact information"
// @Success 201 {object} utils.Response "message: Contact request submitted successfully, data: contact ID"
// @Failure 400 {object} utils.Response "error: Invalid input"
// @Failure 500 {object} utils.Response "error: Error message"
// @Router /contact [post]
func CreateContact(c *gin.Context) {
	var contactInput models.ContactCreate

	if err := c.ShouldBindJSON(&contactInput); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidateEmail(contactInput.Email) {
		utils.SendError(c, http.StatusBadRequest, "Invalid email format")
		return
	}

	contact := models.Contact{
		Name:        contactInput.Name,
		Email:       contactInput.Email,
		Phone:       contactInput.Phone,
		Subject:     contactInput.Subject,
		Message:     contactInput.Message,
		SubmittedAt: time.Now(),
	}

	result := db.DB.Create(&contact)
	if result.Error != nil {
		utils.SendError(c, http.StatusInternalServerError, result.Error.Error())
		return
	}

	if teamEmail := os.Getenv("LEADS_EMAIL"); teamEmail != "" {
		go utils.SendMail(teamEmail, utils.NewLeadNotification(contact.Name, contact.Email, contact.Subject))
	}

	utils.SendSuccess(c, http.StatusCreated, "Contact request submitted successfully", gin.H{
		"id": contact.ID,
	})
}

// @Summary List contact requests
// @Description Return all contact requests (admin only)
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Response "data: contact list"
// @Failure 401 {object} utils.Response "error: Unauthorized"
// @Router /contact [get]
func GetAllContacts(c *gin.Context) {
	var contacts []models.Contact
	if err := db.DB.Order("submitted_at DESC").Find(&contacts).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Error fetching contacts")
		return
	}

	utils.SendSuccess(c, http.StatusOK, "Contacts fetched successfully", contacts)
}

// @Summary Mark a contact request as processed
// @Description Mark a contact request as processed (admin only)
// @Tags contacts
// @Produce json
// @Param id path string true "Contact ID"
// @Security BearerAuth
// @Success 200 {object} utils.Response "message: Contact marked as processed"
// @Failure 400 {object} utils.Response "error: Invalid contact ID"
// @Failure 404 {object} utils.Response "error: Contact not found"
// @Router /contact/{id}/processed [put]
func MarkContactProcessed(c *gin.Context) {
	contactID := c.Param("id")
	if _, err := uuid.Parse(contactID); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid contact ID")
		return
	}

	var contact models.Contact
	if err := db.DB.First(&contact, "id = ?", contactID).Error; err != nil {
		utils.SendError(c, http.StatusNotFound, "Contact not found")
		return
	}

	if err := db.DB.Model(&contact).Update("processed", true).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Error updating the contact")
		return
	}

	utils.SendSuccess(c, http.StatusOK, "Contact marked as processed", nil)
}
