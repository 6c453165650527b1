package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/lithammer/dedent"
	"github.com/rs/zerolog/log"
	"github.com/sora-estate/maisoku/internal/listing"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Gemini Flash pricing (per million tokens)
const (
	geminiInputPricePerMillion  = 0.50 // $0.50 per 1M input tokens (text/image/video)
	geminiOutputPricePerMillion = 3.00 // $3.00 per 1M output tokens (including thinking)
)

// Low temperature keeps the JSON output stable across identical flyers.
const geminiTemperature float32 = 0.1

var flyerPrompt = strings.TrimSpace(dedent.Dedent(`
	Analyze this Japanese real estate flyer (maisoku).

	Extract the key details and translate EVERY value into %s. Do not leave
	any Japanese script in the output; translate or transliterate it.

	Respond in JSON format with these fields:
	- propertyName: the property or building name
	- price: the listing price, with currency as written (e.g. "¥45,000,000")
	- location: the property address
	- access: nearest stations and walking distance
	- layout: the floor plan code (e.g. "2LDK")
	- size: the floor area with unit
	- builtYear: year of construction
	- floor: the unit's floor / total floors
	- managementFee: monthly management fee
	- repairFund: monthly repair reserve fund
	- coverageRatio: building coverage ratio (kenpeiritsu)
	- floorAreaRatio: floor area ratio (yousekiritsu)
	- restrictions: zoning / building restrictions
	- facilities: equipment and facilities, as one free-text string
	- description: a short sales description (2-3 sentences)
	- features: an array of short selling points

	Use an empty string (or empty array for features) for anything the flyer
	does not show. Respond ONLY with the JSON object, no markdown or other
	text.
`))

// recordResponseSchema constrains Gemini's output to the listing record
// shape. It mirrors the JSON schema used for validation on receipt.
var recordResponseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"propertyName":   {Type: genai.TypeString},
		"price":          {Type: genai.TypeString},
		"location":       {Type: genai.TypeString},
		"access":         {Type: genai.TypeString},
		"layout":         {Type: genai.TypeString},
		"size":           {Type: genai.TypeString},
		"builtYear":      {Type: genai.TypeString},
		"floor":          {Type: genai.TypeString},
		"managementFee":  {Type: genai.TypeString},
		"repairFund":     {Type: genai.TypeString},
		"coverageRatio":  {Type: genai.TypeString},
		"floorAreaRatio": {Type: genai.TypeString},
		"restrictions":   {Type: genai.TypeString},
		"facilities":     {Type: genai.TypeString},
		"description":    {Type: genai.TypeString},
		"features":       {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"propertyName", "price", "location"},
}

// GeminiExtractor extracts and translates flyers with the Gemini API.
type GeminiExtractor struct {
	client *genai.Client
	model  string
}

// NewGeminiExtractor creates a Gemini-backed extractor. It fails fast with
// KindConfigurationMissing when apiKey is empty; no network call is made in
// that case. An empty model selects DefaultModel.
func NewGeminiExtractor(ctx context.Context, apiKey, model string) (*GeminiExtractor, error) {
	if apiKey == "" {
		return nil, newError(KindConfigurationMissing, "no API key configured", nil)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &GeminiExtractor{client: client, model: model}, nil
}

// Extract implements the Extractor interface using Gemini.
func (g *GeminiExtractor) Extract(ctx context.Context, imageData []byte, mimeType string, lang listing.Language) (*listing.Record, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(fmt.Sprintf(flyerPrompt, lang.PromptName())),
		{InlineData: &genai.Blob{Data: imageData, MIMEType: mimeType}},
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(geminiTemperature),
		ResponseMIMEType: "application/json",
		ResponseSchema:   recordResponseSchema,
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return nil, classify(err)
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, newError(KindEmptyResponse, "no response from Gemini", nil)
	}

	rec, err := parseRecordText(result.Text())
	if err != nil {
		return nil, err
	}

	usage := usageOf(result)
	log.Info().
		Str("model", g.model).
		Str("language", string(lang)).
		Int64("inputTokens", usage.InputTokens).
		Int64("outputTokens", usage.OutputTokens).
		Float64("costUSD", usage.CostUSD).
		Msg("flyer extraction llm call")

	return rec, nil
}

// Usage contains token usage and cost information for one call.
type Usage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
	CostUSD      float64
}

func usageOf(result *genai.GenerateContentResponse) Usage {
	usage := Usage{}
	if result.UsageMetadata != nil {
		usage.InputTokens = int64(result.UsageMetadata.PromptTokenCount)
		usage.OutputTokens = int64(result.UsageMetadata.CandidatesTokenCount)
		usage.TotalTokens = int64(result.UsageMetadata.TotalTokenCount)
		usage.CostUSD = calculateGeminiCost(usage.InputTokens, usage.OutputTokens)
	}
	return usage
}

func calculateGeminiCost(inputTokens, outputTokens int64) float64 {
	inputCost := float64(inputTokens) / 1_000_000 * geminiInputPricePerMillion
	outputCost := float64(outputTokens) / 1_000_000 * geminiOutputPricePerMillion
	return inputCost + outputCost
}

// parseRecordText turns the model's text payload into a listing record.
// A blank payload is an empty-response failure; anything that does not parse
// and validate as a record is a malformed-response failure.
func parseRecordText(text string) (*listing.Record, error) {
	// Clean up the response - remove markdown code blocks if present
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	if text == "" {
		return nil, newError(KindEmptyResponse, "blank response payload", nil)
	}

	rec, err := listing.ParseRecord([]byte(text))
	if err != nil {
		return nil, newError(KindMalformedResponse, "response is not a valid listing record", err)
	}
	return rec, nil
}
