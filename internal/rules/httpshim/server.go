// Package httpshim wraps the compiler and runtime entry points behind a
// small echo HTTP surface, following the same handlers-plus-SetupRoutes
// shape used across this codebase's api package. It exists for callers that
// want to drive compilation/execution as a service instead of a CLI
// invocation; cmd/rulesctl remains the primary entry point.
package httpshim

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"rules.evalgo.org/internal/rules/cfm"
	"rules.evalgo.org/internal/rules/compiler"
	"rules.evalgo.org/internal/rules/ir"
	"rules.evalgo.org/internal/rules/ports"
	"rules.evalgo.org/internal/rules/runtime"
	"rules.evalgo.org/internal/rules/table"
)

// Handlers bundles the dependencies HTTP handlers need: the canonical field
// model to compile against, a logger for ambient diagnostics, and an
// optional event publisher. Publisher is nil-safe — no concrete publisher
// ships with this module (spec §1), so handlers skip publishing when unset.
type Handlers struct {
	Model     *cfm.Model
	Logger    *logrus.Logger
	Publisher ports.EventPublisher
}

// NewHandlers builds Handlers with DefaultModel and the given logger. A nil
// logger is accepted; the compiler and runtime treat that as disabled
// logging.
func NewHandlers(logger *logrus.Logger) *Handlers {
	return &Handlers{Model: cfm.DefaultModel(), Logger: logger}
}

// SetupRoutes registers this package's handlers on e.
func SetupRoutes(e *echo.Echo, h *Handlers) {
	e.POST("/compile", h.handleCompile)
	e.POST("/execute", h.handleExecute)
	e.GET("/healthz", h.handleHealth)
}

// NewServer builds an echo instance with the standard request-logging and
// panic-recovery middleware stack and this package's routes mounted,
// mirroring the teacher's runServer middleware setup.
func NewServer(h *Handlers) *echo.Echo {
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	SetupRoutes(e, h)
	return e
}

func (h *Handlers) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "OK!")
}

// compileRequest is the POST /compile body: the raw rule document (YAML or
// JSON, auto-detected by the compiler).
type compileRequest struct {
	Document string `json:"document"`
}

type compileResponse struct {
	Checksum      string          `json:"checksum"`
	SchemaVersion string          `json:"schema_version"`
	Marketplace   string          `json:"marketplace"`
	Stats         ir.CompileStats `json:"stats"`
}

func (h *Handlers) handleCompile(c echo.Context) error {
	var req compileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	rs, err := compiler.Compile([]byte(req.Document), compiler.CompileOptions{
		Model:  h.Model,
		Logger: h.Logger,
	})
	if err != nil {
		if cerr, ok := err.(*ir.CompilationError); ok {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, cerr.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.publish(c, ports.EventCompileSucceeded, map[string]any{"checksum": rs.Checksum, "marketplace": rs.Marketplace})

	return c.JSON(http.StatusOK, compileResponse{
		Checksum:      rs.Checksum,
		SchemaVersion: rs.SchemaVersion,
		Marketplace:   rs.Marketplace,
		Stats:         rs.Stats,
	})
}

// publish forwards an event when a Publisher is configured. Publish errors
// are logged, never surfaced to the HTTP caller — event delivery is a
// best-effort side channel, not part of the request/response contract.
func (h *Handlers) publish(c echo.Context, eventType string, detail map[string]any) {
	if h.Publisher == nil {
		return
	}
	if err := h.Publisher.Publish(c.Request().Context(), ports.NewEvent(eventType, detail)); err != nil && h.Logger != nil {
		h.Logger.WithError(err).Warn("event publish failed")
	}
}

// executeRequest is the POST /execute body: a rule document plus the rows to
// evaluate it against.
type executeRequest struct {
	Document string              `json:"document"`
	Rows     []map[string]string `json:"rows"`
}

func (h *Handlers) handleExecute(c echo.Context) error {
	var req executeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	rs, err := compiler.Compile([]byte(req.Document), compiler.CompileOptions{
		Model:  h.Model,
		Logger: h.Logger,
	})
	if err != nil {
		if cerr, ok := err.(*ir.CompilationError); ok {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, cerr.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	tbl, err := table.FromRecords(req.Rows)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid row data: "+err.Error())
	}

	result, err := runtime.Execute(c.Request().Context(), rs, tbl, runtime.Options{Logger: h.Logger})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	eventType := ports.EventExecuteCompleted
	if result.Stats.Aborted {
		eventType = ports.EventExecuteAborted
	}
	h.publish(c, eventType, map[string]any{"rows": result.Stats.ProcessedRows, "errors": result.Stats.Errors})

	return c.JSON(http.StatusOK, result)
}
