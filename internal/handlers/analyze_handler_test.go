package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/ai-data-analyst-be/internal/core/llm"
	"github.com/MuhamadAgungGumelar/ai-data-analyst-be/internal/repositories"
	"github.com/MuhamadAgungGumelar/ai-data-analyst-be/internal/services"
)

type fakeProvider struct {
	response string
	err      error
}

func (f *fakeProvider) GenerateResponse(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	return f.response, f.err
}

func (f *fakeProvider) GetProviderName() string { return "fake" }

func testApp(response string) (*fiber.App, *repositories.DatasetRepo) {
	service := services.NewAnalysisService(llm.NewServiceWithProvider(&fakeProvider{response: response}))
	repo := repositories.NewDatasetRepo(time.Minute)

	app := fiber.New()
	analyzeHandler := NewAnalyzeHandler(service, "test")
	datasetHandler := NewDatasetHandler(repo, service, "test")

	app.Post("/analyze", analyzeHandler.Analyze)
	app.Post("/datasets", datasetHandler.Create)
	app.Get("/datasets", datasetHandler.List)
	app.Post("/datasets/:id/analyze", datasetHandler.Analyze)
	return app, repo
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, payload
}

func analyzeBody(query string) map[string]interface{} {
	return map[string]interface{}{
		"query":   query,
		"columns": []string{"city", "sales"},
		"data": []map[string]interface{}{
			{"city": "A", "sales": 10},
			{"city": "A", "sales": 30},
			{"city": "B", "sales": 20},
		},
	}
}

func TestAnalyzeEndpointSuccess(t *testing.T) {
	app, _ := testApp(`{"type":"statistics"}`)

	status, payload := postJSON(t, app, "/analyze", analyzeBody("summarize sales"))
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200 (payload %v)", status, payload)
	}
	if payload["success"] != true {
		t.Errorf("success = %v, want true", payload["success"])
	}
	if payload["request_id"] == "" || payload["request_id"] == nil {
		t.Error("missing request_id")
	}
	result, ok := payload["result"].(map[string]interface{})
	if !ok {
		t.Fatalf("result missing: %v", payload)
	}
	if result["type"] != "statistics" {
		t.Errorf("result.type = %v, want statistics", result["type"])
	}
	if _, ok := payload["logs"].([]interface{}); !ok {
		t.Error("diagnostic logs missing from success payload")
	}
}

func TestAnalyzeEndpointRejectsEmptyQuery(t *testing.T) {
	app, _ := testApp(`{"type":"text"}`)

	status, payload := postJSON(t, app, "/analyze", analyzeBody("  "))
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	if payload["success"] != false {
		t.Errorf("success = %v, want false", payload["success"])
	}
	logs, ok := payload["logs"].([]interface{})
	if !ok {
		t.Fatal("diagnostic logs missing from failure payload")
	}
	if len(logs) != 1 {
		t.Errorf("logs has %d entries, want exactly 1 rejection entry", len(logs))
	}
}

func TestAnalyzeEndpointRejectsEmptyData(t *testing.T) {
	app, _ := testApp(`{"type":"text"}`)

	status, _ := postJSON(t, app, "/analyze", map[string]interface{}{"query": "hi", "columns": []string{"a"}})
	if status != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
}

func TestAnalyzeEndpointModelFailureIsBadGateway(t *testing.T) {
	service := services.NewAnalysisService(llm.NewServiceWithProvider(&fakeProvider{err: errors.New("model exploded")}))
	app := fiber.New()
	app.Post("/analyze", NewAnalyzeHandler(service, "test").Analyze)

	status, payload := postJSON(t, app, "/analyze", analyzeBody("average sales"))
	if status != fiber.StatusBadGateway {
		t.Fatalf("status = %d, want 502", status)
	}
	if msg, _ := payload["error"].(string); msg == "" {
		t.Error("failure payload missing error message")
	}
}

func TestDatasetUploadAndAnalyze(t *testing.T) {
	app, _ := testApp(`{"type":"statistics"}`)

	status, payload := postJSON(t, app, "/datasets", map[string]interface{}{
		"name": "sales by city",
		"csv":  "city,sales\nA,10\nA,30\nB,20\n",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("upload status = %d, want 201 (payload %v)", status, payload)
	}
	ds := payload["dataset"].(map[string]interface{})
	id, _ := ds["id"].(string)
	if id == "" {
		t.Fatal("dataset id missing")
	}

	status, payload = postJSON(t, app, "/datasets/"+id+"/analyze", map[string]interface{}{"query": "summarize sales"})
	if status != fiber.StatusOK {
		t.Fatalf("analyze status = %d, want 200 (payload %v)", status, payload)
	}
	result := payload["result"].(map[string]interface{})
	stats, ok := result["statistics"].(map[string]interface{})
	if !ok {
		t.Fatalf("statistics missing: %v", result)
	}
	// CSV cells arrive as strings; coercion must still find the numbers.
	if _, ok := stats["sales"]; !ok {
		t.Errorf("sales statistics missing: %v", stats)
	}
}

func TestDatasetAnalyzeUnknownID(t *testing.T) {
	app, _ := testApp(`{"type":"text"}`)

	status, _ := postJSON(t, app, "/datasets/does-not-exist/analyze", map[string]interface{}{"query": "hello"})
	if status != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
}
