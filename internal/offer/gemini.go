package offer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	"github.com/goccy/go-json"
	hjson "github.com/hjson/hjson-go/v4"
	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/shopspring/decimal"
	"google.golang.org/genai"
)

// ErrNoExtractor is returned when an LLM extractor is requested without credentials
var ErrNoExtractor = errors.New("offer: no API key configured for LLM extraction")

// aiConfidence is reported for any successful model reading
const aiConfidence = 0.9

const extractionPrompt = `You are an expert at reading job offer letters and extracting compensation details.

Extract the following fields from the offer letter below. The letter may contain tables, formatted text or mixed layouts.

- base_salary: annual base salary in dollars (number only)
- sign_on_bonus: one-time signing bonus in dollars (0 if not mentioned)
- annual_bonus_percent: target annual bonus as a percentage of base (15 for 15%)
- annual_bonus_amount: target annual bonus in dollars when given as an amount (0 otherwise)
- equity_grant: total equity grant value in dollars (0 if not mentioned)
- equity_shares: number of RSUs or shares granted (0 if not mentioned)
- is_public_company: true if the company is publicly traded, false if private or a startup

If equity is given only as a share count, estimate its value at $50 per share.
Use 0 for numbers and false for booleans that are not mentioned.

Offer letter:
{{letter}}

Return ONLY a JSON object with exactly these keys.`

const letterPlaceholder = "{{letter}}"

// buildPrompt places the letter into the extraction prompt. The letter is
// inserted verbatim, so percent signs and dollar amounts survive.
func buildPrompt(text string) string {
	return strings.Replace(extractionPrompt, letterPlaceholder, text, 1)
}

// Generator produces a model completion for a prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type genaiGenerator struct {
	client *genai.Client
	model  string
}

func (g *genaiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(0)),
		ResponseMIMEType: "application/json",
	}
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}
	return result.Text(), nil
}

// GeminiExtractor reads offer letters with a Gemini model
type GeminiExtractor struct {
	gen Generator
}

// NewGeminiExtractor creates an extractor backed by the Gemini API
func NewGeminiExtractor(ctx context.Context, apiKey, model string) (*GeminiExtractor, error) {
	if apiKey == "" {
		return nil, ErrNoExtractor
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiExtractor{gen: &genaiGenerator{client: client, model: model}}, nil
}

// NewGeneratorExtractor wraps any Generator, such as a different model backend
func NewGeneratorExtractor(gen Generator) *GeminiExtractor {
	return &GeminiExtractor{gen: gen}
}

// Extract implements Extractor
func (e *GeminiExtractor) Extract(ctx context.Context, text string) (domain.OfferExtraction, error) {
	raw, err := e.gen.Generate(ctx, buildPrompt(text))
	if err != nil {
		return domain.OfferExtraction{}, err
	}

	var resp aiResponse
	if err := decodeModelJSON(raw, &resp); err != nil {
		return domain.OfferExtraction{}, err
	}
	return resp.extraction(), nil
}

// decodeModelJSON tries strict JSON, then Hjson, which reads comments,
// unquoted keys and trailing commas exactly, then a repaired form for
// truncated or unbalanced output.
func decodeModelJSON(raw string, v interface{}) error {
	cleaned := stripCodeFence(raw)
	if err := json.Unmarshal([]byte(cleaned), v); err == nil {
		return nil
	}

	var loose map[string]interface{}
	if err := hjson.Unmarshal([]byte(cleaned), &loose); err == nil {
		normalized, err := json.Marshal(loose)
		if err != nil {
			return fmt.Errorf("failed to normalize model output: %w", err)
		}
		if err := json.Unmarshal(normalized, v); err != nil {
			return fmt.Errorf("model output does not match schema: %w", err)
		}
		return nil
	}

	repaired, err := jsonrepair.RepairJSON(cleaned)
	if err != nil {
		return fmt.Errorf("model returned unreadable JSON: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("model output does not match schema: %w", err)
	}
	return nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}

// flexNumber accepts numbers, numeric strings and strings like "$150,000"
type flexNumber struct {
	decimal.Decimal
}

func (f *flexNumber) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		f.Decimal = decimal.Zero
		return nil
	}
	s = strings.Trim(s, `"`)
	s = strings.NewReplacer("$", "", ",", "", "%", "", " ", "").Replace(s)
	if s == "" {
		f.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("not a number: %s", string(b))
	}
	f.Decimal = d
	return nil
}

// flexBool accepts booleans and their string forms
type flexBool struct {
	Set   bool
	Value bool
}

func (f *flexBool) UnmarshalJSON(b []byte) error {
	switch strings.ToLower(strings.Trim(strings.TrimSpace(string(b)), `"`)) {
	case "true", "yes", "1":
		f.Set, f.Value = true, true
	case "false", "no", "0":
		f.Set, f.Value = true, false
	}
	return nil
}

type aiResponse struct {
	BaseSalary         flexNumber `json:"base_salary"`
	SignOnBonus        flexNumber `json:"sign_on_bonus"`
	AnnualBonusPercent flexNumber `json:"annual_bonus_percent"`
	AnnualBonusAmount  flexNumber `json:"annual_bonus_amount"`
	EquityGrant        flexNumber `json:"equity_grant"`
	EquityShares       flexNumber `json:"equity_shares"`
	IsPublicCompany    flexBool   `json:"is_public_company"`
}

func (r aiResponse) extraction() domain.OfferExtraction {
	out := domain.OfferExtraction{
		BaseSalary:         r.BaseSalary.Decimal,
		SignOnBonus:        r.SignOnBonus.Decimal,
		AnnualBonusPercent: r.AnnualBonusPercent.Decimal,
		AnnualBonusAmount:  r.AnnualBonusAmount.Decimal,
		EquityGrant:        r.EquityGrant.Decimal,
		EquityShares:       r.EquityShares.IntPart(),
		IsPublicCompany:    !r.IsPublicCompany.Set || r.IsPublicCompany.Value,
		ParsingConfidence:  aiConfidence,
		ParseMethod:        domain.ParseMethodAI,
		ExtractedFields:    []string{},
	}
	if out.EquityGrant.IsZero() && out.EquityShares > 0 {
		out.EquityGrant = decimal.NewFromInt(out.EquityShares).Mul(estimatedSharePrice)
	}

	fields := []struct {
		name string
		v    decimal.Decimal
	}{
		{"base_salary", out.BaseSalary},
		{"sign_on_bonus", out.SignOnBonus},
		{"annual_bonus_percent", out.AnnualBonusPercent},
		{"annual_bonus_amount", out.AnnualBonusAmount},
		{"equity_grant", out.EquityGrant},
		{"equity_shares", decimal.NewFromInt(out.EquityShares)},
	}
	for _, f := range fields {
		if f.v.IsPositive() {
			out.ExtractedFields = append(out.ExtractedFields, f.name)
		}
	}
	return out
}
