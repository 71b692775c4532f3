package handlers

import (
	"errors"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/ai-data-analyst-be/internal/models"
	"github.com/MuhamadAgungGumelar/ai-data-analyst-be/internal/services"
)

// AnalyzeHandler serves ad-hoc analysis requests where the dataset travels
// in the request body.
type AnalyzeHandler struct {
	service *services.AnalysisService
	env     string
}

func NewAnalyzeHandler(service *services.AnalysisService, env string) *AnalyzeHandler {
	return &AnalyzeHandler{service: service, env: env}
}

// Analyze godoc
// @Summary Analyze a dataset with a natural-language question
// @Description Classifies the question via the LLM and runs the matching analysis engines
// @Tags Analysis
// @Accept json
// @Produce json
// @Router /analyze [post]
func (h *AnalyzeHandler) Analyze(c *fiber.Ctx) error {
	var req models.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid request body"})
	}

	table := models.Table{Columns: req.Columns, Rows: req.Data}
	return runAnalysis(c, h.service, h.env, req.Query, table)
}

// runAnalysis executes the orchestrator with panic containment and builds
// the response envelope. The diagnostic log travels back on every path so
// clients can debug without server log access.
func runAnalysis(c *fiber.Ctx, service *services.AnalysisService, env, query string, table models.Table) error {
	requestID := uuid.NewString()
	plog := models.NewProcessLog()

	result, err := analyzeSafely(c, service, query, table, plog)
	if err != nil {
		status := statusFor(err)
		log.Error().Err(err).Str("request_id", requestID).Int("status", status).Msg("❌ Analysis failed")

		payload := fiber.Map{
			"success":    false,
			"request_id": requestID,
			"error":      err.Error(),
			"logs":       plog.Entries(),
		}
		if env != "production" {
			var perr *panicError
			if errors.As(err, &perr) {
				payload["stack"] = perr.stack
			}
		}
		return c.Status(status).JSON(payload)
	}

	log.Info().Str("request_id", requestID).Str("type", result.Type).Int("rows", len(table.Rows)).Msg("✅ Analysis complete")

	return c.JSON(fiber.Map{
		"success":    true,
		"request_id": requestID,
		"result":     result,
		"logs":       plog.Entries(),
	})
}

// panicError carries the stack of a recovered panic up to the envelope
// builder; the stack is only exposed outside production mode.
type panicError struct {
	value interface{}
	stack string
}

func (e *panicError) Error() string {
	return "internal error during analysis"
}

func analyzeSafely(c *fiber.Ctx, service *services.AnalysisService, query string, table models.Table, plog *models.ProcessLog) (result *models.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			plog.Error("unexpected internal failure")
			err = &panicError{value: r, stack: string(debug.Stack())}
		}
	}()
	return service.Analyze(c.UserContext(), query, table, plog)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrEmptyQuery), errors.Is(err, services.ErrEmptyData):
		return fiber.StatusBadRequest
	default:
		var perr *panicError
		if errors.As(err, &perr) {
			return fiber.StatusInternalServerError
		}
		// External-service failures (LLM call) surface as bad gateway.
		return fiber.StatusBadGateway
	}
}
