package templates

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"
	"unicode/utf8"

	"bakked-marketing/internal/whatsapp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	handles map[string]string
	calls   []string
}

func (f *fakeUploader) Upload(_ context.Context, imageURL string) (string, error) {
	f.calls = append(f.calls, imageURL)
	handle, ok := f.handles[imageURL]
	if !ok {
		return "", errors.New("upload rejected")
	}
	return handle, nil
}

func newTestBuilder(uploader Uploader) *Builder {
	b := NewBuilder(uploader)
	b.now = func() time.Time { return time.Unix(1742041234, 0) }
	return b
}

func TestBuildCarouselAllCardsSurvive(t *testing.T) {
	uploader := &fakeUploader{handles: map[string]string{
		"https://cdn.example.com/a.jpg": "h:aaa",
		"https://cdn.example.com/b.jpg": "h:bbb",
		"https://cdn.example.com/c.jpg": "h:ccc",
	}}
	b := newTestBuilder(uploader)

	payload := b.Build(context.Background(), LocalTemplate{
		Name:        "Diwali Specials",
		MessageText: "Festive treats for {{1}}!",
		Category:    "MARKETING",
		MediaURLs: []string{
			"https://cdn.example.com/a.jpg",
			"https://cdn.example.com/b.jpg",
			"https://cdn.example.com/c.jpg",
		},
		CardBodyText: "Limited stock.",
		Buttons:      []CTAButton{{Type: "url", Text: "Order on our website today", URL: "https://bakked.example.com"}},
	})

	assert.Equal(t, "MARKETING", payload.Category)
	assert.Equal(t, "en_US", payload.Language)
	require.Len(t, payload.Components, 2)

	body := payload.Components[0]
	assert.Equal(t, "BODY", body.Type)
	assert.Equal(t, "Festive treats for {{1}}!", body.Text)
	require.NotNil(t, body.Example)
	assert.Equal(t, [][]string{{"Example"}}, body.Example.BodyText)

	carousel := payload.Components[1]
	assert.Equal(t, "CAROUSEL", carousel.Type)
	require.Len(t, carousel.Cards, 3)

	first := carousel.Cards[0]
	require.Len(t, first.Components, 3)
	assert.Equal(t, "HEADER", first.Components[0].Type)
	assert.Equal(t, "IMAGE", first.Components[0].Format)
	assert.Equal(t, []string{"h:aaa"}, first.Components[0].Example.HeaderHandle)
	assert.Equal(t, "Limited stock.", first.Components[1].Text)
	require.Len(t, first.Components[2].Buttons, 1)
	assert.Equal(t, "URL", first.Components[2].Buttons[0].Type)
	assert.Equal(t, "Order on our websit", first.Components[2].Buttons[0].Text[:19])
	assert.Len(t, first.Components[2].Buttons[0].Text, 20)
}

func TestBuildCarouselSkipsFailedCards(t *testing.T) {
	uploader := &fakeUploader{handles: map[string]string{
		"https://cdn.example.com/a.jpg": "h:aaa",
		"https://cdn.example.com/c.jpg": "h:ccc",
	}}
	b := newTestBuilder(uploader)

	payload := b.Build(context.Background(), LocalTemplate{
		Name: "Weekend Menu",
		MediaURLs: []string{
			"https://cdn.example.com/a.jpg",
			"https://cdn.example.com/b.jpg",
			"https://cdn.example.com/c.jpg",
		},
	})

	require.Len(t, payload.Components, 2)
	carousel := payload.Components[1]
	require.Len(t, carousel.Cards, 2)
	assert.Equal(t, []string{"h:aaa"}, carousel.Cards[0].Components[0].Example.HeaderHandle)
	assert.Equal(t, []string{"h:ccc"}, carousel.Cards[1].Components[0].Example.HeaderHandle)
	assert.Equal(t, "Check out our latest collection!", payload.Components[0].Text)
	assert.Equal(t, "Tap below to order.", carousel.Cards[0].Components[1].Text)
}

func TestBuildCarouselFallbackOmitsHeader(t *testing.T) {
	uploader := &fakeUploader{handles: map[string]string{
		"https://cdn.example.com/a.jpg": "h:aaa",
	}}
	b := newTestBuilder(uploader)

	payload := b.Build(context.Background(), LocalTemplate{
		Name:        "Weekend Menu",
		MessageText: "Our weekend menu is live",
		MediaURLs: []string{
			"https://cdn.example.com/a.jpg",
			"https://cdn.example.com/b.jpg",
		},
	})

	// One surviving card is not a carousel; the fallback standard shape must
	// not retry the images as a header either.
	for _, comp := range payload.Components {
		assert.NotEqual(t, "CAROUSEL", comp.Type)
		assert.NotEqual(t, "HEADER", comp.Type)
	}
	assert.Equal(t, "Our weekend menu is live", payload.Components[0].Text)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}, uploader.calls)
}

func TestBuildStandardWithHeader(t *testing.T) {
	uploader := &fakeUploader{handles: map[string]string{
		"https://cdn.example.com/hero.jpg": "h:hero",
	}}
	b := newTestBuilder(uploader)

	payload := b.Build(context.Background(), LocalTemplate{
		Name:        "Single Hero",
		MessageText: "One image only",
		Category:    "utility",
		MediaURLs:   []string{"https://cdn.example.com/hero.jpg"},
	})

	assert.Equal(t, "UTILITY", payload.Category)
	require.Len(t, payload.Components, 2)
	assert.Equal(t, "HEADER", payload.Components[0].Type)
	assert.Equal(t, []string{"h:hero"}, payload.Components[0].Example.HeaderHandle)
	assert.Equal(t, "BODY", payload.Components[1].Type)
}

func TestBuildStandardHeaderFailureDegradesToText(t *testing.T) {
	uploader := &fakeUploader{handles: map[string]string{}}
	b := newTestBuilder(uploader)

	payload := b.Build(context.Background(), LocalTemplate{
		Name:        "Single Hero",
		MessageText: "One image only",
		Category:    "UTILITY",
		MediaURLs:   []string{"https://cdn.example.com/hero.jpg"},
	})

	require.Len(t, payload.Components, 1)
	assert.Equal(t, "BODY", payload.Components[0].Type)
}

func TestBuildTextOnlyNoExamples(t *testing.T) {
	b := newTestBuilder(&fakeUploader{})

	payload := b.Build(context.Background(), LocalTemplate{
		Name:        "Plain Note",
		MessageText: "No placeholders here",
		Category:    "UTILITY",
	})

	require.Len(t, payload.Components, 1)
	assert.Equal(t, "BODY", payload.Components[0].Type)
	assert.Nil(t, payload.Components[0].Example)
}

func TestBuildElevenImagesUsesStandardShape(t *testing.T) {
	uploader := &fakeUploader{handles: map[string]string{
		"u0": "h:0",
	}}
	b := newTestBuilder(uploader)

	urls := []string{"u0", "u1", "u2", "u3", "u4", "u5", "u6", "u7", "u8", "u9", "u10"}
	payload := b.Build(context.Background(), LocalTemplate{
		Name:        "Mega Drop",
		MessageText: "Everything at once",
		MediaURLs:   urls,
	})

	require.NotEmpty(t, payload.Components)
	assert.Equal(t, "HEADER", payload.Components[0].Type)
	assert.Equal(t, []string{"u0"}, uploader.calls)
}

func TestGenerateName(t *testing.T) {
	b := newTestBuilder(&fakeUploader{})

	name := b.GenerateName("Diwali Specials 2025!")
	assert.Regexp(t, regexp.MustCompile(`^bakked_[a-z0-9_]{1,30}_\d{5}$`), name)
	assert.Contains(t, name, "diwali_specials_2025_")

	b.now = func() time.Time { return time.Unix(1742041235, 0) }
	assert.NotEqual(t, name, b.GenerateName("Diwali Specials 2025!"))
}

func TestGenerateNameTruncatesLongSlug(t *testing.T) {
	b := newTestBuilder(&fakeUploader{})

	name := b.GenerateName("An Extremely Long Template Name That Keeps Going")
	assert.Regexp(t, regexp.MustCompile(`^bakked_[a-z0-9_]{30}_\d{5}$`), name)
}

func TestExampleValuesDistinctIndices(t *testing.T) {
	assert.Nil(t, exampleValues("no placeholders"))
	assert.Equal(t, []string{"Example"}, exampleValues("hi {{1}} and {{1}} again"))
	assert.Equal(t, []string{"Example", "Example", "Example"}, exampleValues("{{1}} {{2}} {{3}}"))
}

func TestNormalizeButtonsOptOutInjection(t *testing.T) {
	b := newTestBuilder(&fakeUploader{})

	buttons := b.normalizeButtons(LocalTemplate{
		Category: "MARKETING",
		Buttons:  []CTAButton{{Type: "url", Text: "Order Now", URL: "https://bakked.example.com"}},
	})

	require.Len(t, buttons, 2)
	assert.Equal(t, "URL", buttons[0].Type)
	assert.Equal(t, whatsapp.TemplateButton{Type: "QUICK_REPLY", Text: "Stop Promotions"}, buttons[1])
}

func TestNormalizeButtonsNoInjectionWhenOptOutPresent(t *testing.T) {
	b := newTestBuilder(&fakeUploader{})

	buttons := b.normalizeButtons(LocalTemplate{
		Category: "MARKETING",
		Buttons: []CTAButton{
			{Type: "quick_reply", Text: "STOP messages"},
		},
	})

	require.Len(t, buttons, 1)
	assert.Equal(t, "STOP messages", buttons[0].Text)
}

func TestNormalizeButtonsCapAndMapping(t *testing.T) {
	b := newTestBuilder(&fakeUploader{})

	buttons := b.normalizeButtons(LocalTemplate{
		Category: "UTILITY",
		Buttons: []CTAButton{
			{Type: "url", Text: "Visit", URL: "https://a.example.com"},
			{Type: "phone", Text: "Call us", Phone: "+14155550100"},
			{Type: "quick_reply", Text: "More info"},
			{Type: "url", Text: "Fourth", URL: "https://b.example.com"},
		},
	})

	require.Len(t, buttons, 3)
	assert.Equal(t, "URL", buttons[0].Type)
	assert.Equal(t, "PHONE_NUMBER", buttons[1].Type)
	assert.Equal(t, "+14155550100", buttons[1].PhoneNumber)
	assert.Equal(t, "QUICK_REPLY", buttons[2].Type)
}

func TestNormalizeButtonsSkipsUnknownTypes(t *testing.T) {
	b := newTestBuilder(&fakeUploader{})

	buttons := b.normalizeButtons(LocalTemplate{
		Category: "UTILITY",
		Buttons:  []CTAButton{{Type: "carrier_pigeon", Text: "Coo"}},
	})
	assert.Empty(t, buttons)
}

func TestPickCardButtonMultiByteLabel(t *testing.T) {
	btn := pickCardButton([]CTAButton{
		{Type: "url", Text: "अभी ऑर्डर करें और छूट पाएं आज ही", URL: "https://bakked.example.com"},
	})

	assert.True(t, utf8.ValidString(btn.Text))
	assert.LessOrEqual(t, utf8.RuneCountInString(btn.Text), 20)
}

func TestPickCardButton(t *testing.T) {
	urlFirst := pickCardButton([]CTAButton{
		{Type: "quick_reply", Text: "Maybe"},
		{Type: "url", Text: "Shop", URL: "https://bakked.example.com"},
	})
	assert.Equal(t, "URL", urlFirst.Type)
	assert.Equal(t, "Shop", urlFirst.Text)

	quickReply := pickCardButton([]CTAButton{{Type: "quick_reply", Text: "Maybe"}})
	assert.Equal(t, "QUICK_REPLY", quickReply.Type)

	fallback := pickCardButton(nil)
	assert.Equal(t, whatsapp.TemplateButton{Type: "QUICK_REPLY", Text: "Order Now"}, fallback)
}
