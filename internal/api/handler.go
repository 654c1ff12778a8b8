// Package api exposes the statement transformer over HTTP using fiber.
package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/insightdelivered/statement-transformer/internal/config"
	"github.com/insightdelivered/statement-transformer/internal/logging"
	"github.com/insightdelivered/statement-transformer/internal/models"
	"github.com/insightdelivered/statement-transformer/internal/reader"
	"github.com/insightdelivered/statement-transformer/internal/transform"
	"github.com/insightdelivered/statement-transformer/internal/writer"
)

// Version is reported by the health endpoint.
var Version = "2.0.0"

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// RuleInfo describes one transformation rule.
type RuleInfo struct {
	ID    models.RuleID `json:"id"`
	Alias string        `json:"alias"`
	Name  string        `json:"name"`
}

// PreviewResponse is the JSON response from the /api/preview endpoint.
type PreviewResponse struct {
	Success   bool         `json:"success"`
	FileName  string       `json:"fileName"`
	Format    string       `json:"format"`
	TotalRows int          `json:"totalRows"`
	Rows      models.Sheet `json:"rows"`
}

// TransformResponse is the JSON response from /api/transform?format=json.
type TransformResponse struct {
	Success     bool         `json:"success"`
	Rule        RuleInfo     `json:"rule"`
	FileName    string       `json:"fileName"`
	OutputName  string       `json:"outputName"`
	Rows        models.Sheet `json:"rows"`
	CSV         string       `json:"csv"`
	Count       int          `json:"count"`
	TotalDebit  string       `json:"totalDebit"`
	TotalCredit string       `json:"totalCredit"`
	Net         string       `json:"net"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Config *config.Config
	Log    *logrus.Logger
}

// NewHandler returns a handler using cfg, or the defaults when cfg is nil.
func NewHandler(cfg *config.Config, log *logrus.Logger) *Handler {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Handler{Config: cfg, Log: log}
}

// NewApp builds the fiber application with middleware and routes.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "statement-transformer",
		BodyLimit:             h.Config.MaxUploadBytes,
		DisableStartupMessage: true,
		ErrorHandler:          h.handleError,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))
	app.Use(h.logRequests)

	h.RegisterRoutes(app)
	return app
}

// RegisterRoutes sets up the API routes and, when configured, the static
// front-end.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", HandleHealth)
	app.Get("/api/rules", HandleRules)
	app.Post("/api/preview", h.HandlePreview)
	app.Post("/api/transform", h.HandleTransform)

	if h.Config.StaticDir != "" {
		app.Static("/", h.Config.StaticDir)
		// SPA fallback: unknown non-API paths get index.html.
		app.Get("/*", func(c *fiber.Ctx) error {
			if strings.HasPrefix(c.Path(), "/api/") {
				return fiber.ErrNotFound
			}
			index := filepath.Join(h.Config.StaticDir, "index.html")
			if _, err := os.Stat(index); err != nil {
				return fiber.ErrNotFound
			}
			return c.SendFile(index)
		})
	}
}

// HandleHealth reports liveness.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": Version,
		"engine":  "fiber",
	})
}

// HandleRules lists the available transformation rules.
func HandleRules(c *fiber.Ctx) error {
	rules := transform.All()
	infos := make([]RuleInfo, 0, len(rules))
	for _, r := range rules {
		infos = append(infos, ruleInfo(r))
	}
	return c.JSON(fiber.Map{"rules": infos})
}

// HandlePreview returns the first rows of the uploaded file as parsed.
func (h *Handler) HandlePreview(c *fiber.Ctx) error {
	doc, err := h.readUpload(c)
	if err != nil {
		return err
	}

	return c.JSON(PreviewResponse{
		Success:   true,
		FileName:  doc.FileName,
		Format:    string(doc.Format),
		TotalRows: len(doc.Sheet),
		Rows:      nonNil(doc.Sheet.Head(h.Config.PreviewRows)),
	})
}

// HandleTransform applies the selected rule to the uploaded file and returns
// the normalized CSV as a download. With format=json the rows, the CSV text
// and a summary are returned as JSON instead.
func (h *Handler) HandleTransform(c *fiber.Ctx) error {
	ruleParam := c.FormValue("rule")
	if ruleParam == "" {
		ruleParam = c.Query("rule")
	}
	if ruleParam == "" {
		return writeError(c, fiber.StatusBadRequest, "No rule selected. Use form field 'rule' (1-5).")
	}
	id, err := models.ParseRuleID(ruleParam)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	doc, err := h.readUpload(c)
	if err != nil {
		return err
	}

	rule, err := transform.New(id)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	out, err := transform.Apply(id, doc.Sheet)
	if err != nil {
		h.Log.WithFields(logrus.Fields{
			"file":       doc.FileName,
			"rule":       id,
			"request_id": requestID(c),
		}).WithError(err).Warn("transform failed")
		return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("Transform failed: %v", err))
	}

	var csvBuf bytes.Buffer
	csvWriter := &writer.CSVWriter{}
	if err := csvWriter.Write(&csvBuf, out); err != nil {
		return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("CSV generation failed: %v", err))
	}

	outputName := writer.OutputName(doc.FileName)
	summary := transform.Summarize(out)

	h.Log.WithFields(logrus.Fields{
		"file":       doc.FileName,
		"rule":       id,
		"rows":       summary.Count,
		"request_id": requestID(c),
	}).Info("statement transformed")

	if strings.EqualFold(c.Query("format"), "json") || strings.EqualFold(c.FormValue("format"), "json") {
		return c.JSON(TransformResponse{
			Success:     true,
			Rule:        ruleInfo(rule),
			FileName:    doc.FileName,
			OutputName:  outputName,
			Rows:        out,
			CSV:         csvBuf.String(),
			Count:       summary.Count,
			TotalDebit:  summary.TotalDebit.StringFixed(2),
			TotalCredit: summary.TotalCredit.StringFixed(2),
			Net:         summary.Net().StringFixed(2),
		})
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", outputName))
	c.Set("X-Row-Count", fmt.Sprint(summary.Count))
	return c.Send(csvBuf.Bytes())
}

// readUpload parses the multipart field "file" into a document.
func (h *Handler) readUpload(c *fiber.Ctx) (*models.Document, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}

	if _, err := reader.DetectFormat(fh.Filename); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Only .csv, .xlsx and .xls files are supported.")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to open uploaded file.")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to read uploaded file.")
	}

	doc, err := reader.Read(fh.Filename, data, reader.Options{Charset: h.Config.CSVCharset})
	if err != nil {
		if errors.Is(err, reader.ErrEmptyFile) {
			return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	return doc, nil
}

// handleError converts errors escaping a handler into JSON bodies.
func (h *Handler) handleError(c *fiber.Ctx, err error) error {
	status := statusOf(err)
	if status >= fiber.StatusInternalServerError {
		h.Log.WithField("request_id", requestID(c)).WithError(err).Error("request failed")
	}
	return writeError(c, status, err.Error())
}

// logRequests logs one line per request once the handler chain returns.
func (h *Handler) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		status = statusOf(err)
	}

	h.Log.WithFields(logrus.Fields{
		"method":     c.Method(),
		"path":       c.Path(),
		"status":     status,
		"latency":    time.Since(start).String(),
		"request_id": requestID(c),
	}).Debug("request")
	return err
}

func statusOf(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{Success: false, Error: msg})
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}

func ruleInfo(r transform.Rule) RuleInfo {
	return RuleInfo{ID: r.ID(), Alias: r.ID().Alias(), Name: r.BankName()}
}

func nonNil(s models.Sheet) models.Sheet {
	if s == nil {
		return models.Sheet{}
	}
	return s
}
