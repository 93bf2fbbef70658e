package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"bakked-marketing/internal/models"
	"bakked-marketing/internal/whatsapp"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeSender struct {
	failFor map[string]bool // keyed by normalized recipient
	sent    []whatsapp.GenericMessage
	nextID  int
	err     error
}

func (f *fakeSender) SendTemplate(_ context.Context, msg whatsapp.GenericMessage) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.failFor[msg.To] {
		return "", errors.New("provider rejected recipient")
	}
	f.sent = append(f.sent, msg)
	f.nextID++
	return fmt.Sprintf("wamid.%d", f.nextID), nil
}

type fakeContactStore struct {
	contacts  []models.Contact
	touched   []string
	upserted  []models.Contact
	getAllErr error
	upsertErr error
	touchErr  error
}

func (f *fakeContactStore) Upsert(_ context.Context, contact *models.Contact) (*models.Contact, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	saved := *contact
	if saved.ID == "" {
		saved.ID = "contact-" + saved.Phone
	}
	f.upserted = append(f.upserted, saved)
	return &saved, nil
}

func (f *fakeContactStore) GetAll(_ context.Context) ([]models.Contact, error) {
	return f.contacts, f.getAllErr
}

func (f *fakeContactStore) GetByPhone(_ context.Context, phone string) (*models.Contact, error) {
	for i := range f.contacts {
		if f.contacts[i].Phone == phone {
			return &f.contacts[i], nil
		}
	}
	return nil, nil
}

func (f *fakeContactStore) Update(_ context.Context, id string, _ map[string]interface{}) (*models.Contact, error) {
	for i := range f.contacts {
		if f.contacts[i].ID == id {
			return &f.contacts[i], nil
		}
	}
	return nil, nil
}

func (f *fakeContactStore) Delete(_ context.Context, id string) (bool, error) {
	for i := range f.contacts {
		if f.contacts[i].ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeContactStore) TouchLastMessage(_ context.Context, contactID, _ string) error {
	if f.touchErr != nil {
		return f.touchErr
	}
	f.touched = append(f.touched, contactID)
	return nil
}

type fakeCampaignStore struct {
	campaignID   string
	createdName  string
	createErr    error
	logged       []models.MessageLog
	sentCount    int
	statusByWaID map[string]string
}

func (f *fakeCampaignStore) CreateCampaign(_ context.Context, name, _ string, _ int) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.createdName = name
	return f.campaignID, nil
}

func (f *fakeCampaignStore) UpdateSentCount(_ context.Context, _ string, sent int) error {
	f.sentCount = sent
	return nil
}

func (f *fakeCampaignStore) ListCampaigns(_ context.Context, _ int) ([]models.Campaign, error) {
	return nil, nil
}

func (f *fakeCampaignStore) LogMessage(_ context.Context, contactID, campaignID, waID, status string) error {
	f.logged = append(f.logged, models.MessageLog{ContactID: contactID, CampaignID: campaignID, WaID: waID, Status: status})
	return nil
}

func (f *fakeCampaignStore) UpdateMessageStatus(_ context.Context, waID, status string) error {
	if f.statusByWaID == nil {
		f.statusByWaID = make(map[string]string)
	}
	f.statusByWaID[waID] = status
	return nil
}

func (f *fakeCampaignStore) ListMessageLogs(_ context.Context, _ int) ([]models.MessageLog, error) {
	return f.logged, nil
}

type fakeTemplateStore struct {
	records    map[string]*models.MessageTemplate
	metaStatus map[string]string
}

func (f *fakeTemplateStore) Create(_ context.Context, tmpl *models.MessageTemplate) error {
	if f.records == nil {
		f.records = make(map[string]*models.MessageTemplate)
	}
	if tmpl.ID == "" {
		tmpl.ID = "tmpl-1"
	}
	f.records[tmpl.ID] = tmpl
	return nil
}

func (f *fakeTemplateStore) Get(_ context.Context, id string) (*models.MessageTemplate, error) {
	return f.records[id], nil
}

func (f *fakeTemplateStore) List(_ context.Context, _ string) ([]models.MessageTemplate, error) {
	var out []models.MessageTemplate
	for _, t := range f.records {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTemplateStore) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := f.records[id]; !ok {
		return false, nil
	}
	delete(f.records, id)
	return true, nil
}

func (f *fakeTemplateStore) UpdateMetaStatus(_ context.Context, id, metaTemplateID, metaName, status string) error {
	if t, ok := f.records[id]; ok {
		t.MetaTemplateID = metaTemplateID
		t.MetaName = metaName
		t.MetaStatus = status
	}
	return nil
}

func (f *fakeTemplateStore) UpdateStatusByMetaName(_ context.Context, metaName, status, _ string) (bool, error) {
	if f.metaStatus == nil {
		f.metaStatus = make(map[string]string)
	}
	f.metaStatus[metaName] = status
	return true, nil
}

type fakeRegistry struct {
	created   []whatsapp.TemplatePayload
	createRes *whatsapp.CreateTemplateResponse
	createErr error
}

func (f *fakeRegistry) CreateTemplate(_ context.Context, payload whatsapp.TemplatePayload) (*whatsapp.CreateTemplateResponse, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, payload)
	return f.createRes, nil
}

func (f *fakeRegistry) GetTemplates(_ context.Context) ([]whatsapp.TemplateInfo, error) {
	return nil, nil
}

func (f *fakeRegistry) GetTemplateByName(_ context.Context, _ string) (*whatsapp.TemplateInfo, error) {
	return nil, nil
}

func (f *fakeRegistry) DeleteTemplate(_ context.Context, _ string) error {
	return nil
}

func performJSON(t *testing.T, handler gin.HandlerFunc, method, target string, body interface{}) *httptest.ResponseRecorder {
	return performJSONParams(t, handler, method, target, body, nil)
}

func performJSONParams(t *testing.T, handler gin.HandlerFunc, method, target string, body interface{}, params gin.Params) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = params
	handler(c)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}
