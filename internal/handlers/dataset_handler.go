package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/ai-data-analyst-be/internal/models"
	"github.com/MuhamadAgungGumelar/ai-data-analyst-be/internal/repositories"
	"github.com/MuhamadAgungGumelar/ai-data-analyst-be/internal/services"
)

// DatasetHandler manages the upload-once, query-repeatedly flow backed by
// the in-memory dataset registry.
type DatasetHandler struct {
	repo    *repositories.DatasetRepo
	service *services.AnalysisService
	env     string
}

func NewDatasetHandler(repo *repositories.DatasetRepo, service *services.AnalysisService, env string) *DatasetHandler {
	return &DatasetHandler{repo: repo, service: service, env: env}
}

type createDatasetRequest struct {
	Name    string       `json:"name"`
	Columns []string     `json:"columns,omitempty"`
	Data    []models.Row `json:"data,omitempty"`
	CSV     string       `json:"csv,omitempty"`
}

// Create godoc
// @Summary Register a dataset for repeated querying
// @Description Accepts JSON rows or raw CSV text; the dataset expires after the configured TTL
// @Tags Datasets
// @Accept json
// @Produce json
// @Router /datasets [post]
func (h *DatasetHandler) Create(c *fiber.Ctx) error {
	var req createDatasetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid request body"})
	}

	var table models.Table
	switch {
	case req.CSV != "":
		parsed, err := parseCSVTable(req.CSV)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
		}
		table = parsed
	case len(req.Data) > 0:
		table = models.Table{Columns: req.Columns, Rows: req.Data}
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "either data or csv is required"})
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "untitled dataset"
	}

	ds := h.repo.Save(name, table)
	log.Info().Str("dataset_id", ds.ID).Str("name", ds.Name).Int("rows", ds.RowCount).Msg("📦 Dataset registered")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "dataset": ds})
}

// List godoc
// @Summary List registered datasets
// @Tags Datasets
// @Produce json
// @Router /datasets [get]
func (h *DatasetHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "datasets": h.repo.List()})
}

// Analyze godoc
// @Summary Analyze a stored dataset with a natural-language question
// @Tags Datasets
// @Accept json
// @Produce json
// @Param id path string true "Dataset ID"
// @Router /datasets/{id}/analyze [post]
func (h *DatasetHandler) Analyze(c *fiber.Ctx) error {
	ds, err := h.repo.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrDatasetNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "dataset not found or expired"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "failed to load dataset"})
	}

	var req models.DatasetQueryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid request body"})
	}

	return runAnalysis(c, h.service, h.env, req.Query, ds.Table)
}

// parseCSVTable converts CSV text into a Table. Cell values stay as strings;
// the engines coerce numerics on demand, so "42" still aggregates.
func parseCSVTable(text string) (models.Table, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return models.Table{}, fmt.Errorf("failed to read CSV header: %w", err)
	}

	table := models.Table{Columns: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Ragged or malformed lines are skipped, not fatal.
			continue
		}
		row := make(models.Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		table.Rows = append(table.Rows, row)
	}

	if len(table.Rows) == 0 {
		return models.Table{}, fmt.Errorf("CSV contains no data rows")
	}
	return table, nil
}
