// Package offer extracts compensation figures from offer letters, using an
// LLM when one is configured and keyword patterns otherwise.
package offer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rgehrsitz/compme/internal/domain"
	"go.uber.org/zap"
)

// Extractor reads compensation fields from offer-letter text
type Extractor interface {
	Extract(ctx context.Context, text string) (domain.OfferExtraction, error)
}

// Parser runs the primary extractor and falls back to patterns on any failure
type Parser struct {
	primary Extractor
	logger  *zap.Logger
}

// NewParser creates a parser. A nil primary means pattern extraction only.
func NewParser(primary Extractor, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{primary: primary, logger: logger}
}

// NewParserWithKey creates a parser that uses Gemini when apiKey is set
func NewParserWithKey(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Parser, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	gemini, err := NewGeminiExtractor(ctx, apiKey, model)
	switch {
	case errors.Is(err, ErrNoExtractor):
		logger.Info("no API key found, offer parsing will use patterns only", zap.String("op", "offer.new_parser"))
		return NewParser(nil, logger), nil
	case err != nil:
		return nil, fmt.Errorf("failed to create offer extractor: %w", err)
	}
	return NewParser(gemini, logger), nil
}

// Parse extracts an offer. HTML input is reduced to text first. The returned
// RawText is always the caller's original input.
func (p *Parser) Parse(ctx context.Context, text string) (domain.OfferExtraction, error) {
	if strings.TrimSpace(text) == "" {
		out := ExtractWithPatterns("")
		out.RawText = text
		return out, nil
	}

	plain := text
	if LooksLikeHTML(text) {
		extracted, err := ExtractText(text)
		if err != nil {
			return domain.OfferExtraction{}, err
		}
		plain = extracted
	}

	if p.primary != nil {
		out, err := p.primary.Extract(ctx, plain)
		if err == nil {
			p.logger.Debug("offer parsed by model",
				zap.String("op", "offer.parse"),
				zap.Int("fields", len(out.ExtractedFields)))
			out.RawText = text
			return out, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.OfferExtraction{}, ctxErr
		}
		p.logger.Warn("model extraction failed, falling back to patterns",
			zap.String("op", "offer.parse"),
			zap.Error(err))
	}

	out := ExtractWithPatterns(plain)
	out.RawText = text
	return out, nil
}
