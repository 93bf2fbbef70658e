package api

import (
	"context"

	"bakked-marketing/internal/whatsapp"
)

// TemplateSender dispatches an assembled template message. Satisfied by
// *whatsapp.Client.
type TemplateSender interface {
	SendTemplate(ctx context.Context, msg whatsapp.GenericMessage) (string, error)
}

// TemplateRegistry is the provider's template-registration surface.
// Satisfied by *whatsapp.Client.
type TemplateRegistry interface {
	CreateTemplate(ctx context.Context, payload whatsapp.TemplatePayload) (*whatsapp.CreateTemplateResponse, error)
	GetTemplates(ctx context.Context) ([]whatsapp.TemplateInfo, error)
	GetTemplateByName(ctx context.Context, name string) (*whatsapp.TemplateInfo, error)
	DeleteTemplate(ctx context.Context, name string) error
}
