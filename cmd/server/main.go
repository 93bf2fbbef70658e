package main

import (
	"log"
	"net/http"

	"bakked-marketing/internal/api"
	"bakked-marketing/internal/config"
	"bakked-marketing/internal/database"
	"bakked-marketing/internal/storage"
	"bakked-marketing/internal/store"
	"bakked-marketing/internal/templates"
	"bakked-marketing/internal/webhook"
	"bakked-marketing/internal/whatsapp"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	db, err := database.Init(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	r := gin.Default()

	// CORS Middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	contacts := store.NewContactRepository(db)
	campaigns := store.NewCampaignRepository(db)
	templateStore := store.NewTemplateRepository(db)
	groups := store.NewGroupRepository(db)
	media := store.NewMediaRepository(db)

	client := whatsapp.NewClient(cfg)
	uploader := whatsapp.NewImageUploader(client)
	builder := templates.NewBuilder(uploader)
	supabaseStorage := storage.NewSupabaseStorage(cfg)

	authHandler := api.NewAuthHandler(cfg)
	messageHandler := api.NewMessageHandler(client, contacts, campaigns)
	contactHandler := api.NewContactHandler(contacts)
	campaignHandler := api.NewCampaignHandler(client, contacts, campaigns)
	groupHandler := api.NewGroupHandler(contacts, groups)
	templateHandler := api.NewTemplateHandler(client, builder, templateStore)
	mediaHandler := api.NewMediaHandler(supabaseStorage, media)
	webhookHandler := webhook.NewHandler(cfg, campaigns, templateStore)

	// Health
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Bakked WhatsApp Marketing API",
			"version": "1.0.0",
		})
	})

	// Auth
	r.POST("/auth/verify", authHandler.VerifyPassword)

	// Decision Engine
	r.POST("/send-message", messageHandler.SendMessage)
	r.POST("/test-message", messageHandler.SendTestMessage)

	// Media
	r.POST("/upload-media", mediaHandler.UploadMedia)

	// Webhook
	r.GET("/webhook", webhookHandler.VerifyWebhook)
	r.POST("/webhook", webhookHandler.HandleEvent)

	// Contacts
	r.GET("/contacts", contactHandler.GetContacts)
	r.POST("/contacts", contactHandler.CreateContact)
	r.PUT("/contacts/:id", contactHandler.UpdateContact)
	r.DELETE("/contacts/:id", contactHandler.DeleteContact)
	r.GET("/contacts/export", contactHandler.ExportContacts)

	// Campaigns
	r.POST("/campaigns/send", campaignHandler.SendBulkCampaign)
	r.GET("/campaigns", campaignHandler.GetCampaigns)
	r.GET("/message-logs", campaignHandler.GetMessageLogs)

	// Audience groups
	r.GET("/groups/:type/count", groupHandler.GetGroupCount)
	r.GET("/groups/:type/members", groupHandler.GetGroupMembers)
	r.POST("/recipient-groups", groupHandler.CreateRecipientGroup)
	r.GET("/recipient-groups", groupHandler.ListRecipientGroups)

	// Local templates
	r.POST("/local-templates", templateHandler.CreateLocalTemplate)
	r.GET("/local-templates", templateHandler.GetLocalTemplates)
	r.DELETE("/local-templates/:id", templateHandler.DeleteLocalTemplate)
	r.POST("/local-templates/:id/submit", templateHandler.SubmitTemplate)

	// Meta templates
	r.GET("/templates", templateHandler.ListMetaTemplates)
	r.GET("/templates/:name", templateHandler.GetMetaTemplate)
	r.DELETE("/templates/:name", templateHandler.DeleteMetaTemplate)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
