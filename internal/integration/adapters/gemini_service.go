// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/freight-backoffice/backend/internal/application/adapter"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash-lite"

// GeminiService implements adapter.ClassificationAdvisor using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey, modelName string) *GeminiService {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &GeminiService{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

// IsAvailable checks if the Gemini service is available and properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// Suggest asks Gemini to pick a category, cost center and department for each transaction.
func (s *GeminiService) Suggest(ctx context.Context, request adapter.AdvisorRequest) ([]adapter.AdvisorSuggestion, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.2)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(buildAdvisorPrompt(request)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("empty response from gemini")
	}
	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text = string(t)
			break
		}
	}
	if text == "" {
		return nil, fmt.Errorf("no text content in response")
	}

	return parseAdvisorResponse(text, request)
}

func buildAdvisorPrompt(request adapter.AdvisorRequest) string {
	var sb strings.Builder

	sb.WriteString(`Voce e o analista financeiro de uma transportadora. Classifique cada lancamento bancario
abaixo escolhendo UMA categoria, UM centro de custo e UM departamento.

REGRAS:
- Use APENAS valores das listas fornecidas, com a grafia exata.
- Se nenhum valor servir, use "Outros" como categoria e "A definir" como centro de custo e departamento.
- Responda em Portugues Brasileiro.

`)
	writeOptions(&sb, "CATEGORIAS", request.Categories)
	writeOptions(&sb, "CENTROS DE CUSTO", request.CostCenters)
	writeOptions(&sb, "DEPARTAMENTOS", request.Departments)

	sb.WriteString("\nLANCAMENTOS:\n")
	for _, tx := range request.Transactions {
		sb.WriteString(fmt.Sprintf("- ID: %s, Descricao: %q, Valor: %s, Data: %s\n",
			tx.ExternalID, tx.Description, tx.Amount, tx.Date))
	}

	sb.WriteString(`
Responda com um array JSON, um item por lancamento:
{
  "external_id": "ID do lancamento",
  "category": "categoria da lista",
  "cost_center": "centro de custo da lista",
  "department": "departamento da lista",
  "confidence": 0.0-1.0,
  "reasoning": "breve explicacao"
}

FORMATO DE RESPOSTA: Retorne apenas o array JSON, sem texto adicional.
`)
	return sb.String()
}

func writeOptions(sb *strings.Builder, title string, options []string) {
	sb.WriteString(title + ":\n")
	if len(options) == 0 {
		sb.WriteString("(nenhum)\n")
		return
	}
	for _, o := range options {
		sb.WriteString("- " + o + "\n")
	}
}

type geminiSuggestion struct {
	ExternalID string  `json:"external_id"`
	Category   string  `json:"category"`
	CostCenter string  `json:"cost_center"`
	Department string  `json:"department"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// parseAdvisorResponse keeps suggestions for requested transactions only and blanks any
// value outside the known option lists.
func parseAdvisorResponse(text string, request adapter.AdvisorRequest) ([]adapter.AdvisorSuggestion, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var raw []geminiSuggestion
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	requested := make(map[string]bool, len(request.Transactions))
	for _, tx := range request.Transactions {
		requested[tx.ExternalID] = true
	}
	categories := toSet(request.Categories)
	costCenters := toSet(request.CostCenters)
	departments := toSet(request.Departments)

	seen := make(map[string]bool, len(raw))
	suggestions := make([]adapter.AdvisorSuggestion, 0, len(raw))
	for _, r := range raw {
		if !requested[r.ExternalID] || seen[r.ExternalID] {
			continue
		}
		seen[r.ExternalID] = true

		confidence := r.Confidence
		if confidence < 0 {
			confidence = 0
		} else if confidence > 1 {
			confidence = 1
		}
		suggestions = append(suggestions, adapter.AdvisorSuggestion{
			ExternalID: r.ExternalID,
			Category:   pick(categories, r.Category),
			CostCenter: pick(costCenters, r.CostCenter),
			Department: pick(departments, r.Department),
			Confidence: confidence,
			Reasoning:  r.Reasoning,
		})
	}
	return suggestions, nil
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func pick(known map[string]bool, value string) string {
	value = strings.TrimSpace(value)
	if known[value] {
		return value
	}
	return ""
}
