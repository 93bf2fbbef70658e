package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact represents a CRM contact keyed by phone number.
type Contact struct {
	ID               string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Phone            string    `gorm:"uniqueIndex;type:varchar(50);not null" json:"phone"`
	Name             string    `gorm:"type:varchar(255)" json:"name"`
	Tags             string    `gorm:"type:text" json:"tags"` // JSON array of strings
	DOB              string    `gorm:"type:varchar(10)" json:"dob"`
	Anniversary      string    `gorm:"type:varchar(10)" json:"anniversary"`
	LastVisit        string    `gorm:"type:varchar(40)" json:"last_visit"` // ISO-8601 timestamp
	LastMessageAt    *time.Time `json:"last_message_at"`
	LastMessageGroup string    `gorm:"type:varchar(50)" json:"last_message_group"`
	IsActive         bool      `gorm:"default:true" json:"is_active"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Contact) TableName() string {
	return "contacts"
}

func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Campaign represents one bulk-send run.
type Campaign struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name            string    `gorm:"type:varchar(255)" json:"name"`
	MessageText     string    `gorm:"type:text" json:"message_text"`
	TotalRecipients int       `json:"total_recipients"`
	SentCount       int       `json:"sent_count"`
	SentAt          time.Time `gorm:"autoCreateTime" json:"sent_at"`
}

func (Campaign) TableName() string {
	return "campaigns"
}

func (c *Campaign) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// MessageLog tracks one outbound message and its delivery status.
type MessageLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ContactID  string    `gorm:"index;type:varchar(36)" json:"contact_id"`
	CampaignID string    `gorm:"index;type:varchar(36)" json:"campaign_id"`
	WaID       string    `gorm:"index;type:varchar(100)" json:"wa_id"` // provider message id
	Status     string    `gorm:"type:varchar(20)" json:"status"`       // sent, delivered, read, failed
	SentAt     time.Time `gorm:"autoCreateTime" json:"sent_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (MessageLog) TableName() string {
	return "message_logs"
}

// Media represents an uploaded asset in storage.
type Media struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	StorageURL string    `gorm:"type:text;not null" json:"storage_url"`
	MetaID     string    `gorm:"type:varchar(255)" json:"meta_id"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (Media) TableName() string {
	return "media"
}

// MessageTemplate is a locally authored template, optionally submitted to Meta.
type MessageTemplate struct {
	ID             string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	MessageText    string    `gorm:"type:text" json:"message_text"`
	Category       string    `gorm:"type:varchar(50)" json:"category"`
	MediaURLs      string    `gorm:"type:text" json:"media_urls"` // JSON array of strings
	Buttons        string    `gorm:"type:text" json:"buttons"`    // JSON array of CTA buttons
	CardBodyText   string    `gorm:"type:text" json:"card_body_text"`
	MetaTemplateID string    `gorm:"type:varchar(100)" json:"meta_template_id"`
	MetaName       string    `gorm:"index;type:varchar(255)" json:"meta_name"`
	MetaStatus     string    `gorm:"type:varchar(50)" json:"meta_status"`
	QualityScore   string    `gorm:"type:varchar(50)" json:"quality_score"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (MessageTemplate) TableName() string {
	return "message_templates"
}

func (t *MessageTemplate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// RecipientGroup is a saved audience, either manual members or a dynamic rule.
type RecipientGroup struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Type        string    `gorm:"type:varchar(20)" json:"type"` // manual, dynamic
	TriggerRule string    `gorm:"type:text" json:"trigger_rule"` // JSON criteria
	Active      bool      `gorm:"default:true" json:"active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (RecipientGroup) TableName() string {
	return "recipient_groups"
}

func (g *RecipientGroup) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

type GroupMember struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	GroupID   string `gorm:"index;type:varchar(36)" json:"group_id"`
	ContactID string `gorm:"type:varchar(36)" json:"contact_id"`
}

func (GroupMember) TableName() string {
	return "group_members"
}
