package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bakked-marketing/internal/config"

	"github.com/go-resty/resty/v2"
)

var ErrNotConfigured = errors.New("whatsapp credentials not configured")

const defaultGraphHost = "https://graph.facebook.com"

type Client struct {
	Config  *config.Config
	http    *resty.Client
	baseURL string
}

func NewClient(cfg *config.Config) *Client {
	httpClient := resty.New().
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(cfg.WhatsAppToken)

	return &Client{Config: cfg, http: httpClient, baseURL: defaultGraphHost}
}

func (c *Client) graphURL(path string) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, c.Config.GraphVersion, path)
}

// --- Outbound Message Structures ---

type GenericMessage struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Template         *TemplateObj `json:"template,omitempty"`
}

type TemplateObj struct {
	Name       string         `json:"name"`
	Language   LanguageObj    `json:"language"`
	Components []ComponentObj `json:"components,omitempty"`
}

type LanguageObj struct {
	Code string `json:"code"`
}

type ComponentObj struct {
	Type       string         `json:"type"`
	SubType    string         `json:"sub_type,omitempty"`
	Parameters []ParameterObj `json:"parameters,omitempty"`
	Index      string         `json:"index,omitempty"`
	Cards      []CardObj      `json:"cards,omitempty"`
}

type CardObj struct {
	CardIndex  int            `json:"card_index"`
	Components []ComponentObj `json:"components"`
}

type ParameterObj struct {
	Type  string    `json:"type"`
	Text  string    `json:"text,omitempty"`
	Image *MediaObj `json:"image,omitempty"`
}

type MediaObj struct {
	ID   string `json:"id,omitempty"`
	Link string `json:"link,omitempty"`
}

// --- Template Registration Structures ---

type TemplatePayload struct {
	Name       string              `json:"name"`
	Category   string              `json:"category"`
	Language   string              `json:"language"`
	Components []TemplateComponent `json:"components"`
}

type TemplateComponent struct {
	Type    string           `json:"type"`             // BODY, HEADER, BUTTONS, CAROUSEL
	Format  string           `json:"format,omitempty"` // IMAGE for media headers
	Text    string           `json:"text,omitempty"`
	Example *TemplateExample `json:"example,omitempty"`
	Buttons []TemplateButton `json:"buttons,omitempty"`
	Cards   []TemplateCard   `json:"cards,omitempty"`
}

type TemplateExample struct {
	BodyText     [][]string `json:"body_text,omitempty"`
	HeaderHandle []string   `json:"header_handle,omitempty"`
}

type TemplateButton struct {
	Type        string `json:"type"` // URL, PHONE_NUMBER, QUICK_REPLY
	Text        string `json:"text"`
	URL         string `json:"url,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

type TemplateCard struct {
	Components []TemplateComponent `json:"components"`
}

// --- Responses ---

type SendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

type CreateTemplateResponse struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Category string `json:"category"`
}

type TemplateInfo struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Status     string      `json:"status"`
	Category   string      `json:"category"`
	Language   string      `json:"language"`
	Components interface{} `json:"components,omitempty"`
}

type TemplateListResponse struct {
	Data []TemplateInfo `json:"data"`
}

type GraphError struct {
	Detail struct {
		Message   string `json:"message"`
		Type      string `json:"type"`
		Code      int    `json:"code"`
		FBTraceID string `json:"fbtrace_id"`
	} `json:"error"`
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("graph api error: %s (code %d, type %s)", e.Detail.Message, e.Detail.Code, e.Detail.Type)
}

func graphErrorFrom(resp *resty.Response) error {
	if apiErr, ok := resp.Error().(*GraphError); ok && apiErr.Detail.Message != "" {
		return apiErr
	}
	return fmt.Errorf("graph api error: %s - %s", resp.Status(), resp.String())
}

// --- Messaging ---

// SendTemplate posts a template message and returns the provider message id.
func (c *Client) SendTemplate(ctx context.Context, msg GenericMessage) (string, error) {
	if c.Config.WhatsAppToken == "" || c.Config.PhoneNumberID == "" {
		return "", ErrNotConfigured
	}

	var result SendResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(msg).
		SetResult(&result).
		SetError(&GraphError{}).
		Post(c.graphURL(c.Config.PhoneNumberID + "/messages"))
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", graphErrorFrom(resp)
	}
	if len(result.Messages) == 0 {
		return "", fmt.Errorf("no message id in response: %s", resp.String())
	}
	return result.Messages[0].ID, nil
}

// --- Template Management ---

func (c *Client) CreateTemplate(ctx context.Context, payload TemplatePayload) (*CreateTemplateResponse, error) {
	if c.Config.WhatsAppBusinessAccountID == "" {
		return nil, ErrNotConfigured
	}

	var result CreateTemplateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&result).
		SetError(&GraphError{}).
		Post(c.graphURL(c.Config.WhatsAppBusinessAccountID + "/message_templates"))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, graphErrorFrom(resp)
	}
	return &result, nil
}

func (c *Client) GetTemplates(ctx context.Context) ([]TemplateInfo, error) {
	if c.Config.WhatsAppBusinessAccountID == "" {
		return nil, ErrNotConfigured
	}

	var result TemplateListResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		SetError(&GraphError{}).
		Get(c.graphURL(c.Config.WhatsAppBusinessAccountID + "/message_templates"))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, graphErrorFrom(resp)
	}
	return result.Data, nil
}

func (c *Client) GetTemplateByName(ctx context.Context, name string) (*TemplateInfo, error) {
	if c.Config.WhatsAppBusinessAccountID == "" {
		return nil, ErrNotConfigured
	}

	var result TemplateListResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("name", name).
		SetResult(&result).
		SetError(&GraphError{}).
		Get(c.graphURL(c.Config.WhatsAppBusinessAccountID + "/message_templates"))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, graphErrorFrom(resp)
	}
	if len(result.Data) == 0 {
		return nil, nil
	}
	return &result.Data[0], nil
}

func (c *Client) DeleteTemplate(ctx context.Context, name string) error {
	if c.Config.WhatsAppBusinessAccountID == "" {
		return ErrNotConfigured
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("name", name).
		SetError(&GraphError{}).
		Delete(c.graphURL(c.Config.WhatsAppBusinessAccountID + "/message_templates"))
	if err != nil {
		return err
	}
	if resp.IsError() {
		return graphErrorFrom(resp)
	}
	return nil
}
