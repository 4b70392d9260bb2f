package offer

import (
	"context"
	"regexp"
	"strings"

	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/shopspring/decimal"
)

// estimatedSharePrice values a share count when the letter gives no dollar figure
var estimatedSharePrice = decimal.NewFromInt(50)

// confidenceFields is how many extracted fields count as a complete reading
const confidenceFields = 4

const money = `\$\s?([0-9][0-9,]*(?:\.[0-9]{1,2})?)`

var (
	basePatterns = compileAll(
		`(?:starting\s+)?(?:annual\s+)?base\s+salary[:\s]+(?:of\s+|is\s+)?`+money,
		`annual\s+salary[:\s]+(?:of\s+|is\s+)?`+money,
		`salary\s+of[:\s]+`+money,
		`salary\s+will\s+be\s+`+money,
		money+`\s+(?:per\s+year|per\s+annum|annually|a\s+year)`,
	)
	signOnPatterns = compileAll(
		`sign[- ]?on\s+bonus[:\s]+(?:of\s+)?`+money,
		`signing\s+bonus[:\s]+(?:of\s+)?`+money,
		money+`\s+(?:sign[- ]?on|signing)\s+bonus`,
	)
	bonusPctPatterns = compileAll(
		`(?:annual|target|performance)\s+bonus[:\s]+(?:of\s+)?([0-9]+(?:\.[0-9]+)?)\s?%`,
		`bonus\s+target[:\s]+(?:of\s+)?([0-9]+(?:\.[0-9]+)?)\s?%`,
		`([0-9]+(?:\.[0-9]+)?)\s?%\s+(?:annual|target)\s+bonus`,
	)
	bonusAmountPatterns = compileAll(
		`(?:annual|target|performance)\s+bonus[:\s]+(?:of\s+)?`+money,
	)
	equityPatterns = compileAll(
		`(?:equity|rsu|stock)\s+grant[:\s]+(?:of\s+|valued\s+at\s+)?`+money,
		`equity\s+package[:\s]+(?:of\s+|valued\s+at\s+)?`+money,
		money+`\s+(?:in|of)\s+(?:rsus|restricted\s+stock|equity)`,
	)
	sharePatterns = compileAll(
		`([0-9][0-9,]*)\s+(?:rsus|shares|restricted\s+stock\s+units)`,
	)

	publicHints  = []string{"nyse", "nasdaq", "publicly traded", "public company"}
	privateHints = []string{"private", "startup", "start-up", "pre-ipo"}
)

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

// firstAmount returns the first capture of the first matching pattern
func firstAmount(text string, patterns []*regexp.Regexp) (decimal.Decimal, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		d, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
		if err != nil {
			continue
		}
		return d, true
	}
	return decimal.Zero, false
}

// RegexExtractor reads offer letters with keyword patterns. It never fails
// and is the fallback for every other extractor.
type RegexExtractor struct{}

// Extract implements Extractor
func (RegexExtractor) Extract(_ context.Context, text string) (domain.OfferExtraction, error) {
	return ExtractWithPatterns(text), nil
}

// ExtractWithPatterns is the pattern-based reading of an offer letter
func ExtractWithPatterns(text string) domain.OfferExtraction {
	lower := strings.ToLower(text)
	out := domain.OfferExtraction{
		IsPublicCompany: true,
		ExtractedFields: []string{},
		ParseMethod:     domain.ParseMethodRegex,
	}

	if v, ok := firstAmount(lower, basePatterns); ok {
		out.BaseSalary = v
		out.ExtractedFields = append(out.ExtractedFields, "base_salary")
	}
	if v, ok := firstAmount(lower, signOnPatterns); ok {
		out.SignOnBonus = v
		out.ExtractedFields = append(out.ExtractedFields, "sign_on_bonus")
	}
	if v, ok := firstAmount(lower, bonusPctPatterns); ok {
		out.AnnualBonusPercent = v
		out.ExtractedFields = append(out.ExtractedFields, "annual_bonus_percent")
	} else if v, ok := firstAmount(lower, bonusAmountPatterns); ok {
		out.AnnualBonusAmount = v
		out.ExtractedFields = append(out.ExtractedFields, "annual_bonus_amount")
	}
	if v, ok := firstAmount(lower, equityPatterns); ok {
		out.EquityGrant = v
		out.ExtractedFields = append(out.ExtractedFields, "equity_grant")
	}
	if v, ok := firstAmount(lower, sharePatterns); ok && v.IsPositive() {
		out.EquityShares = v.IntPart()
		out.ExtractedFields = append(out.ExtractedFields, "equity_shares")
		if out.EquityGrant.IsZero() {
			out.EquityGrant = v.Mul(estimatedSharePrice)
			out.ExtractedFields = append(out.ExtractedFields, "equity_grant")
		}
	}

	out.IsPublicCompany = detectPublic(lower)
	out.ParsingConfidence = confidence(len(out.ExtractedFields))
	return out
}

// detectPublic defaults to public; an exchange mention beats a private hint
func detectPublic(lower string) bool {
	for _, h := range publicHints {
		if strings.Contains(lower, h) {
			return true
		}
	}
	for _, h := range privateHints {
		if strings.Contains(lower, h) {
			return false
		}
	}
	return true
}

func confidence(fields int) float64 {
	c := float64(fields) / confidenceFields
	if c > 1 {
		return 1
	}
	return c
}
