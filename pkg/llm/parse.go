package llm

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/vinrisk/vinrisk/pkg/scoring"
)

// parseNarrative extracts summary, risk_score and reasoning from a model
// reply. Code fences are removed, and prose around a single JSON object is
// tolerated.
func parseNarrative(text string) (narrative scoring.Narrative, err error) {
	body := stripMarkdownCodeFences(strings.TrimSpace(text))

	if !gjson.Valid(body) {
		start := strings.Index(body, "{")
		end := strings.LastIndex(body, "}")
		if start < 0 || end <= start {
			err = &scoring.GenerationError{Reason: "no JSON object in response"}
			return narrative, err
		}
		body = body[start : end+1]
		if !gjson.Valid(body) {
			err = &scoring.GenerationError{Reason: "malformed JSON in response"}
			return narrative, err
		}
	}

	root := gjson.Parse(body)
	if !root.IsObject() {
		err = &scoring.GenerationError{Reason: "response is not a JSON object"}
		return narrative, err
	}

	fields := root.Map()
	for _, key := range []string{"summary", "risk_score", "reasoning"} {
		if _, ok := fields[key]; !ok {
			err = &scoring.GenerationError{Reason: "missing " + key + " in response"}
			return narrative, err
		}
	}

	summary, reasoning := fields["summary"], fields["reasoning"]
	if summary.Type != gjson.String || reasoning.Type != gjson.String {
		err = &scoring.GenerationError{Reason: "summary and reasoning must be strings"}
		return narrative, err
	}

	var score int
	score, err = parseScore(fields["risk_score"])
	if err != nil {
		return narrative, err
	}

	narrative = scoring.Narrative{
		Summary:   strings.TrimSpace(summary.Str),
		RiskScore: score,
		Reasoning: strings.TrimSpace(reasoning.Str),
	}
	return narrative, err
}

// parseScore accepts a JSON number or a numeric string. Fractions truncate.
func parseScore(v gjson.Result) (score int, err error) {
	switch v.Type {
	case gjson.Number:
		score = truncateScore(v.Num)
	case gjson.String:
		var f float64
		f, err = strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			err = &scoring.GenerationError{Reason: "risk_score is not numeric", Err: err}
			return score, err
		}
		score = truncateScore(f)
	default:
		err = &scoring.GenerationError{Reason: "risk_score is not numeric"}
	}
	return score, err
}

// truncateScore bounds f to [1,10] before the integer conversion, which is
// undefined for out-of-range floats.
func truncateScore(f float64) int {
	switch {
	case math.IsNaN(f), f < 1:
		return 1
	case f > 10:
		return 10
	}
	return int(f)
}

// stripMarkdownCodeFences removes ```json or ``` fences around a reply.
func stripMarkdownCodeFences(text string) (cleaned string) {
	cleaned = text
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}

	// Drop the opening fence line, including any language tag.
	if nl := strings.IndexByte(cleaned, '\n'); nl >= 0 {
		cleaned = cleaned[nl+1:]
	} else {
		cleaned = strings.TrimPrefix(cleaned, "```")
	}

	cleaned = strings.TrimRight(cleaned, " \r\n")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimRight(cleaned, " \r\n")

	return cleaned
}
