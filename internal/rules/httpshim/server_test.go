package httpshim

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"rules.evalgo.org/internal/rules/ports"
)

// recordingPublisher captures every published event for assertions; safe
// for the single-request use each test here makes of it.
type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event ports.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

const minimalDoc = `
schema_version: "1.0.0"
marketplace: mercado_livre
version: "1.0.0"
ccm_mapping:
  - canonical_field: sku
    source_field: SKU
rules:
  - id: sku_required
    field: sku
    type: assert
    condition:
      operator: not_empty
    action:
      stop_on_error: false
    message: "sku is required"
    severity: error
`

func newTestServer() *echo.Echo {
	e := echo.New()
	SetupRoutes(e, NewHandlers(nil))
	return e
}

func TestHandleCompile_ReturnsChecksumForValidDocument(t *testing.T) {
	e := newTestServer()
	body, _ := json.Marshal(compileRequest{Document: minimalDoc})
	req := httptest.NewRequest(http.MethodPost, "/compile", strings.NewReader(string(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp compileResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Checksum)
	assert.Equal(t, "mercado_livre", resp.Marketplace)
}

func TestHandleCompile_RejectsMalformedDocument(t *testing.T) {
	e := newTestServer()
	body, _ := json.Marshal(compileRequest{Document: "not: [valid"})
	req := httptest.NewRequest(http.MethodPost, "/compile", strings.NewReader(string(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.NotEqual(t, http.StatusOK, rec.Code)
}

func TestHandleExecute_ReturnsViolationForMissingField(t *testing.T) {
	e := newTestServer()
	body, _ := json.Marshal(executeRequest{
		Document: minimalDoc,
		Rows:     []map[string]string{{"SKU": ""}},
	})
	req := httptest.NewRequest(http.MethodPost, "/execute", strings.NewReader(string(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sku_required")
}

func TestHandleCompile_PublishesEventWhenPublisherConfigured(t *testing.T) {
	e := echo.New()
	pub := &recordingPublisher{}
	SetupRoutes(e, &Handlers{Model: NewHandlers(nil).Model, Publisher: pub})

	body, _ := json.Marshal(compileRequest{Document: minimalDoc})
	req := httptest.NewRequest(http.MethodPost, "/compile", strings.NewReader(string(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, pub.events, 1)
	assert.Equal(t, ports.EventCompileSucceeded, pub.events[0].Type)
	assert.NotEmpty(t, pub.events[0].Identifier)
}

func TestNewServer_MountsHealthRoute(t *testing.T) {
	e := NewServer(NewHandlers(nil))
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleHealth_ReturnsOK(t *testing.T) {
	e := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK!", rec.Body.String())
}
