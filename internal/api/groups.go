package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"bakked-marketing/internal/models"
	"bakked-marketing/internal/store"

	"github.com/gin-gonic/gin"
)

type GroupHandler struct {
	Contacts store.ContactStore
	Groups   store.GroupStore
}

func NewGroupHandler(contacts store.ContactStore, groups store.GroupStore) *GroupHandler {
	return &GroupHandler{Contacts: contacts, Groups: groups}
}

func (h *GroupHandler) members(c *gin.Context) ([]models.Contact, bool) {
	groupType := c.Param("type")

	nudgeDays := -1
	if daysParam := c.Query("days"); daysParam != "" {
		days, err := strconv.Atoi(daysParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid days parameter"})
			return nil, false
		}
		nudgeDays = days
	} else if groupType == "nudge" {
		c.JSON(http.StatusOK, gin.H{"members": []models.Contact{}, "count": 0, "error": "Days parameter required for nudge"})
		return nil, false
	}

	all, err := h.Contacts.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"members": []models.Contact{}, "count": 0, "error": err.Error()})
		return nil, false
	}

	return filterAudience(all, groupType, nudgeDays, time.Now()), true
}

// GetGroupMembers lists the contacts a campaign type would target today.
func (h *GroupHandler) GetGroupMembers(c *gin.Context) {
	selected, ok := h.members(c)
	if !ok {
		return
	}
	if selected == nil {
		selected = []models.Contact{}
	}
	c.JSON(http.StatusOK, gin.H{"members": selected, "count": len(selected)})
}

// GetGroupCount returns only the member count for a campaign type.
func (h *GroupHandler) GetGroupCount(c *gin.Context) {
	selected, ok := h.members(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(selected), "type": c.Param("type")})
}

type SaveGroupRequest struct {
	Name      string                 `json:"name" binding:"required"`
	Type      string                 `json:"type" binding:"required"` // manual, dynamic
	Criteria  map[string]interface{} `json:"criteria"`
	MemberIDs []string               `json:"member_ids"`
}

func (h *GroupHandler) CreateRecipientGroup(c *gin.Context) {
	var req SaveGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	criteriaJSON := "{}"
	if req.Criteria != nil {
		if data, err := json.Marshal(req.Criteria); err == nil {
			criteriaJSON = string(data)
		}
	}

	group := models.RecipientGroup{
		Name:        req.Name,
		Type:        req.Type,
		TriggerRule: criteriaJSON,
		Active:      true,
	}

	groupID, err := h.Groups.CreateGroup(c.Request.Context(), &group, req.MemberIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "id": groupID})
}

func (h *GroupHandler) ListRecipientGroups(c *gin.Context) {
	groups, err := h.Groups.ListGroups(c.Request.Context(), c.Query("type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if groups == nil {
		groups = []models.RecipientGroup{}
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups, "count": len(groups)})
}
