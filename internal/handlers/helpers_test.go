package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/promotora-credito/app-cadastro/internal/middleware"
	"github.com/promotora-credito/app-cadastro/internal/models"
	"github.com/promotora-credito/app-cadastro/internal/services"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// withCaller mimics AuthMiddleware without a token
func withCaller(c *gin.Context) {
	c.Set(middleware.TokenKey, "tok")
	c.Set(middleware.UserIDKey, "operador-1")
	c.Set(middleware.RequestIDKey, "req-1")
	c.Next()
}

func doJSON(t *testing.T, router http.Handler, method, url string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

// stubWizard answers every call with the configured session or error
type stubWizard struct {
	session   *models.WizardSession
	submitted bool
	err       error
	lastCall  string
	caller    services.Caller
	setReq    models.SetFieldRequest
	section   models.SectionID
	list      string
	parent    string
}

func (s *stubWizard) resp(call string) (*models.WizardResponse, error) {
	s.lastCall = call
	if s.err != nil {
		return nil, s.err
	}
	return &models.WizardResponse{Session: s.session}, nil
}

func (s *stubWizard) Start(ctx context.Context, caller services.Caller, req models.StartWizardRequest) (*models.WizardResponse, error) {
	s.caller = caller
	return s.resp("start")
}

func (s *stubWizard) Get(ctx context.Context, id string) (*models.WizardResponse, error) {
	return s.resp("get")
}

func (s *stubWizard) Discard(ctx context.Context, id string) error {
	s.lastCall = "discard"
	return s.err
}

func (s *stubWizard) SetField(ctx context.Context, id string, req models.SetFieldRequest) (*models.WizardResponse, error) {
	s.setReq = req
	return s.resp("set_field")
}

func (s *stubWizard) Next(ctx context.Context, id string) (*models.WizardResponse, error) {
	return s.resp("next")
}

func (s *stubWizard) Previous(ctx context.Context, id string) (*models.WizardResponse, error) {
	return s.resp("previous")
}

func (s *stubWizard) GoTo(ctx context.Context, id string, section models.SectionID) (*models.WizardResponse, error) {
	s.section = section
	return s.resp("goto")
}

func (s *stubWizard) ValidateSection(ctx context.Context, id string, section models.SectionID) (*models.WizardResponse, error) {
	s.section = section
	return s.resp("validate")
}

func (s *stubWizard) Submit(ctx context.Context, caller services.Caller, id string) (*models.SubmitResponse, error) {
	s.lastCall = "submit"
	s.caller = caller
	if s.err != nil {
		return nil, s.err
	}
	return &models.SubmitResponse{Submitted: s.submitted, Session: s.session}, nil
}

func (s *stubWizard) LoadOptions(ctx context.Context, caller services.Caller, id, list, parent string) (*models.OptionsResponse, error) {
	s.lastCall = "options"
	s.list = list
	s.parent = parent
	if s.err != nil {
		return nil, s.err
	}
	return &models.OptionsResponse{List: list, Generation: 1}, nil
}
