package engine

import (
	"strings"

	"bakked-marketing/internal/whatsapp"
)

// Default template names for the three shapes the engine can route to.
const (
	TemplateText     = "bakked_text_v1"
	TemplateImageCTA = "bakked_image_cta_v1"
	TemplateCarousel = "bakked_carousel_v1"
)

// Meta caps carousel templates at 10 cards; extra URLs are dropped.
const maxCarouselCards = 10

// Route maps a send-intent to a template name and its component list:
// 2+ images carousel, 1 image header CTA, 0 images plain text. Pure, no I/O.
func Route(text string, mediaURLs []string, explicitName string) (string, []whatsapp.ComponentObj) {
	var components []whatsapp.ComponentObj

	if text != "" {
		components = append(components, whatsapp.ComponentObj{
			Type:       "body",
			Parameters: []whatsapp.ParameterObj{{Type: "text", Text: text}},
		})
	}

	var templateName string
	switch {
	case len(mediaURLs) >= 2:
		templateName = TemplateCarousel
		urls := mediaURLs
		if len(urls) > maxCarouselCards {
			urls = urls[:maxCarouselCards]
		}
		cards := make([]whatsapp.CardObj, len(urls))
		for i, url := range urls {
			cards[i] = whatsapp.CardObj{
				CardIndex: i,
				Components: []whatsapp.ComponentObj{{
					Type:       "header",
					Parameters: []whatsapp.ParameterObj{{Type: "image", Image: &whatsapp.MediaObj{Link: url}}},
				}},
			}
		}
		components = append(components, whatsapp.ComponentObj{Type: "carousel", Cards: cards})

	case len(mediaURLs) == 1:
		templateName = TemplateImageCTA
		header := whatsapp.ComponentObj{
			Type:       "header",
			Parameters: []whatsapp.ParameterObj{{Type: "image", Image: &whatsapp.MediaObj{Link: mediaURLs[0]}}},
		}
		// Header must precede the body in the component list.
		components = append([]whatsapp.ComponentObj{header}, components...)

	default:
		templateName = TemplateText
	}

	if explicitName != "" {
		templateName = explicitName
	}

	return templateName, components
}

// NormalizeRecipient strips the leading + Meta rejects in the "to" field.
func NormalizeRecipient(phone string) string {
	return strings.TrimPrefix(phone, "+")
}

// BuildTemplateMessage assembles the outbound envelope for a routed intent.
func BuildTemplateMessage(recipient, templateName string, components []whatsapp.ComponentObj) whatsapp.GenericMessage {
	return whatsapp.GenericMessage{
		MessagingProduct: "whatsapp",
		To:               NormalizeRecipient(recipient),
		Type:             "template",
		Template: &whatsapp.TemplateObj{
			Name:       templateName,
			Language:   whatsapp.LanguageObj{Code: "en_US"},
			Components: components,
		},
	}
}
