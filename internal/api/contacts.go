package api

import (
	"fmt"
	"net/http"

	"bakked-marketing/internal/models"
	"bakked-marketing/internal/store"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	Contacts store.ContactStore
}

func NewContactHandler(contacts store.ContactStore) *ContactHandler {
	return &ContactHandler{Contacts: contacts}
}

func (h *ContactHandler) GetContacts(c *gin.Context) {
	contacts, err := h.Contacts.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}
	c.JSON(http.StatusOK, gin.H{"contacts": contacts, "count": len(contacts)})
}

type CreateContactRequest struct {
	Phone       string `json:"phone" binding:"required"`
	Name        string `json:"name"`
	Tags        string `json:"tags"`
	DOB         string `json:"dob"`
	Anniversary string `json:"anniversary"`
	LastVisit   string `json:"last_visit"`
}

func (h *ContactHandler) CreateContact(c *gin.Context) {
	var req CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact, err := h.Contacts.Upsert(c.Request.Context(), &models.Contact{
		Phone:       req.Phone,
		Name:        req.Name,
		Tags:        req.Tags,
		DOB:         req.DOB,
		Anniversary: req.Anniversary,
		LastVisit:   req.LastVisit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save contact"})
		return
	}

	c.JSON(http.StatusCreated, contact)
}

type UpdateContactRequest struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	DOB         *string `json:"dob"`
	Anniversary *string `json:"anniversary"`
	LastVisit   *string `json:"last_visit"`
	IsActive    *bool   `json:"is_active"`
}

func (h *ContactHandler) UpdateContact(c *gin.Context) {
	contactID := c.Param("id")
	var req UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.DOB != nil {
		updates["dob"] = *req.DOB
	}
	if req.Anniversary != nil {
		updates["anniversary"] = *req.Anniversary
	}
	if req.LastVisit != nil {
		updates["last_visit"] = *req.LastVisit
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data to update"})
		return
	}

	contact, err := h.Contacts.Update(c.Request.Context(), contactID, updates)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if contact == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		return
	}

	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) DeleteContact(c *gin.Context) {
	contactID := c.Param("id")

	deleted, err := h.Contacts.Delete(c.Request.Context(), contactID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contact"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Contact deleted"})
}

func (h *ContactHandler) ExportContacts(c *gin.Context) {
	contacts, err := h.Contacts.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	csv := "Phone,Name,Tags,Last Visit,Created At\n"
	for _, contact := range contacts {
		csv += fmt.Sprintf("%s,%s,%s,%s,%s\n",
			contact.Phone, contact.Name, contact.Tags, contact.LastVisit,
			contact.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=contacts.csv")
	c.String(http.StatusOK, csv)
}
