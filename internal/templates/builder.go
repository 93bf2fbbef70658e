package templates

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"
	"time"

	"bakked-marketing/internal/whatsapp"
)

// CTAButton is a button on a locally authored template.
type CTAButton struct {
	Type  string `json:"type"` // url, phone, quick_reply
	Text  string `json:"text"`
	URL   string `json:"url,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// LocalTemplate is the decoded form of a stored template, ready to build.
type LocalTemplate struct {
	Name         string
	MessageText  string
	Category     string
	MediaURLs    []string
	Buttons      []CTAButton
	CardBodyText string
}

// Uploader yields an asset handle for a remote image, or an error the
// builder treats as a skip signal.
type Uploader interface {
	Upload(ctx context.Context, imageURL string) (string, error)
}

const (
	maxCarouselCards = 10
	maxButtons       = 3
	maxButtonLabel   = 20

	defaultCarouselIntro = "Check out our latest collection!"
	defaultCardBody      = "Tap below to order."
)

var (
	placeholderPattern = regexp.MustCompile(`\{\{(\d+)\}\}`)
	slugInvalidChars   = regexp.MustCompile(`[^a-z0-9_]`)
	slugRepeats        = regexp.MustCompile(`_+`)
)

// Categories that get an opt-out button injected on submission.
var marketingCategories = map[string]bool{
	"MARKETING": true,
	"PROMOTION": true,
}

type Builder struct {
	uploader Uploader
	now      func() time.Time
}

func NewBuilder(uploader Uploader) *Builder {
	return &Builder{uploader: uploader, now: time.Now}
}

// Build converts a local template into Meta's registration payload.
// Image upload failures degrade the shape instead of aborting: a carousel
// drops failed cards and falls back to a standard template when fewer than
// two survive; a standard template drops its header and submits text-only.
func (b *Builder) Build(ctx context.Context, tmpl LocalTemplate) whatsapp.TemplatePayload {
	name := b.GenerateName(tmpl.Name)
	examples := exampleValues(tmpl.MessageText)

	if n := len(tmpl.MediaURLs); n >= 2 && n <= maxCarouselCards {
		if payload, ok := b.buildCarousel(ctx, tmpl, name, examples); ok {
			return payload
		}
		// Fewer than 2 cards survived upload; fall back to standard without
		// re-attempting the failed image set.
		return b.buildStandard(ctx, tmpl, name, examples, false)
	}

	return b.buildStandard(ctx, tmpl, name, examples, true)
}

// GenerateName derives the provider-side template name: a slug of the human
// name plus a second-resolution suffix so resubmissions stay distinct.
func (b *Builder) GenerateName(humanName string) string {
	slug := strings.ToLower(humanName)
	slug = slugInvalidChars.ReplaceAllString(slug, "_")
	slug = slugRepeats.ReplaceAllString(slug, "_")
	if len(slug) > 30 {
		slug = slug[:30]
	}
	if slug == "" {
		slug = "_"
	}
	return fmt.Sprintf("bakked_%s_%05d", slug, b.now().Unix()%100000)
}

// exampleValues returns one "Example" per distinct {{n}} index in text.
// Values are not mapped positionally to the indices, only count-matched.
func exampleValues(text string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(text, -1)
	seen := make(map[string]bool)
	for _, m := range matches {
		seen[m[1]] = true
	}
	if len(seen) == 0 {
		return nil
	}
	indices := make([]string, 0, len(seen))
	for idx := range seen {
		indices = append(indices, idx)
	}
	sort.Strings(indices)
	values := make([]string, len(indices))
	for i := range indices {
		values[i] = "Example"
	}
	return values
}

func bodyComponent(text string, examples []string) whatsapp.TemplateComponent {
	comp := whatsapp.TemplateComponent{Type: "BODY", Text: text}
	if len(examples) > 0 {
		comp.Example = &whatsapp.TemplateExample{BodyText: [][]string{examples}}
	}
	return comp
}

func (b *Builder) buildCarousel(ctx context.Context, tmpl LocalTemplate, name string, examples []string) (whatsapp.TemplatePayload, bool) {
	intro := tmpl.MessageText
	if intro == "" {
		intro = defaultCarouselIntro
	}

	cardBody := tmpl.CardBodyText
	if cardBody == "" {
		cardBody = defaultCardBody
	}
	cardButton := pickCardButton(tmpl.Buttons)

	urls := tmpl.MediaURLs
	if len(urls) > maxCarouselCards {
		urls = urls[:maxCarouselCards]
	}

	var cards []whatsapp.TemplateCard
	for _, url := range urls {
		handle, err := b.uploader.Upload(ctx, url)
		if err != nil {
			log.Printf("Skipping carousel card for %s: %v", url, err)
			continue
		}
		cards = append(cards, whatsapp.TemplateCard{
			Components: []whatsapp.TemplateComponent{
				{
					Type:    "HEADER",
					Format:  "IMAGE",
					Example: &whatsapp.TemplateExample{HeaderHandle: []string{handle}},
				},
				{Type: "BODY", Text: cardBody},
				{Type: "BUTTONS", Buttons: []whatsapp.TemplateButton{cardButton}},
			},
		})
	}

	if len(cards) < 2 {
		log.Printf("Carousel for %q has %d surviving cards, falling back to standard shape", tmpl.Name, len(cards))
		return whatsapp.TemplatePayload{}, false
	}

	return whatsapp.TemplatePayload{
		Name:     name,
		Category: normalizeCategory(tmpl.Category),
		Language: "en_US",
		Components: []whatsapp.TemplateComponent{
			bodyComponent(intro, examples),
			{Type: "CAROUSEL", Cards: cards},
		},
	}, true
}

func (b *Builder) buildStandard(ctx context.Context, tmpl LocalTemplate, name string, examples []string, withHeader bool) whatsapp.TemplatePayload {
	var components []whatsapp.TemplateComponent

	if withHeader && len(tmpl.MediaURLs) > 0 {
		handle, err := b.uploader.Upload(ctx, tmpl.MediaURLs[0])
		if err != nil {
			log.Printf("Header upload failed for %q, submitting text-only: %v", tmpl.Name, err)
		} else {
			components = append(components, whatsapp.TemplateComponent{
				Type:    "HEADER",
				Format:  "IMAGE",
				Example: &whatsapp.TemplateExample{HeaderHandle: []string{handle}},
			})
		}
	}

	components = append(components, bodyComponent(tmpl.MessageText, examples))

	if buttons := b.normalizeButtons(tmpl); len(buttons) > 0 {
		components = append(components, whatsapp.TemplateComponent{Type: "BUTTONS", Buttons: buttons})
	}

	return whatsapp.TemplatePayload{
		Name:       name,
		Category:   normalizeCategory(tmpl.Category),
		Language:   "en_US",
		Components: components,
	}
}

// normalizeButtons maps local button kinds onto Meta's enum and injects an
// opt-out quick reply for marketing templates that lack one.
func (b *Builder) normalizeButtons(tmpl LocalTemplate) []whatsapp.TemplateButton {
	var buttons []whatsapp.TemplateButton
	hasOptOut := false

	for _, btn := range tmpl.Buttons {
		label := strings.ToLower(btn.Text)
		if strings.Contains(label, "stop") || strings.Contains(label, "opt") {
			hasOptOut = true
		}
		switch btn.Type {
		case "url":
			buttons = append(buttons, whatsapp.TemplateButton{Type: "URL", Text: btn.Text, URL: btn.URL})
		case "phone":
			buttons = append(buttons, whatsapp.TemplateButton{Type: "PHONE_NUMBER", Text: btn.Text, PhoneNumber: btn.Phone})
		case "quick_reply":
			buttons = append(buttons, whatsapp.TemplateButton{Type: "QUICK_REPLY", Text: btn.Text})
		}
	}

	if marketingCategories[normalizeCategory(tmpl.Category)] && !hasOptOut && len(buttons) < maxButtons {
		buttons = append(buttons, whatsapp.TemplateButton{Type: "QUICK_REPLY", Text: "Stop Promotions"})
	}

	if len(buttons) > maxButtons {
		buttons = buttons[:maxButtons]
	}
	return buttons
}

// pickCardButton chooses the single button each carousel card carries:
// first url button, else first quick reply, else a default order prompt.
func pickCardButton(buttons []CTAButton) whatsapp.TemplateButton {
	for _, btn := range buttons {
		if btn.Type == "url" {
			return whatsapp.TemplateButton{Type: "URL", Text: truncate(btn.Text, maxButtonLabel), URL: btn.URL}
		}
	}
	for _, btn := range buttons {
		if btn.Type == "quick_reply" {
			return whatsapp.TemplateButton{Type: "QUICK_REPLY", Text: truncate(btn.Text, maxButtonLabel)}
		}
	}
	return whatsapp.TemplateButton{Type: "QUICK_REPLY", Text: "Order Now"}
}

func normalizeCategory(category string) string {
	if category == "" {
		return "MARKETING"
	}
	return strings.ToUpper(category)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) > max {
		return string(runes[:max])
	}
	return s
}
