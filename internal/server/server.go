// Package server exposes article generation over HTTP.
package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/renatus-madrigal/article-assistant/internal/render"
	"github.com/renatus-madrigal/article-assistant/internal/workflow"
)

// GenerateRequest is the POST /api/articles payload.
type GenerateRequest struct {
	Topic    string `json:"topic"`
	Language string `json:"language,omitempty"`
	Audience string `json:"audience,omitempty"`
}

// GenerateResponse is the finished article.
type GenerateResponse struct {
	RunID    string   `json:"run_id"`
	Topic    string   `json:"topic"`
	Title    string   `json:"title"`
	Keywords []string `json:"keywords"`
	Markdown string   `json:"markdown"`
	HTML     string   `json:"html"`
	Sections int      `json:"sections"`
	Words    int      `json:"words"`
	Review   string   `json:"review,omitempty"`
	Cost     float64  `json:"cost"`
	Tokens   int64    `json:"tokens"`
}

// New builds the echo instance with all routes registered.
func New(w *workflow.Workflow) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	// Unified HTTP error handler with structured JSON and logging
	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	h := &articlesHandler{workflow: w}
	e.POST("/api/articles", h.generate)
	return e
}

// Run serves until the listener fails.
func Run(addr string, w *workflow.Workflow) error {
	return New(w).Start(addr)
}

type articlesHandler struct {
	workflow *workflow.Workflow
}

func (h *articlesHandler) generate(c echo.Context) error {
	var req GenerateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Topic) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "topic is required")
	}

	result, err := h.workflow.Generate(c.Request().Context(), workflow.Request{
		Topic:    req.Topic,
		Language: req.Language,
		Audience: req.Audience,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	html, err := render.HTML(result.Markdown)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, GenerateResponse{
		RunID:    result.RunID,
		Topic:    result.Topic,
		Title:    result.Title,
		Keywords: result.Keywords,
		Markdown: result.Markdown,
		HTML:     html,
		Sections: result.Sections,
		Words:    result.Words,
		Review:   result.Review,
		Cost:     result.Cost,
		Tokens:   result.Tokens,
	})
}
