// Package gemini implements the verse resolver using Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/fwojciec/versefill"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// DefaultRequestsPerSecond is the default request quota.
const DefaultRequestsPerSecond = 1.0

// Ensure Resolver implements versefill.Resolver at compile time.
var _ versefill.Resolver = (*Resolver)(nil)

// Resolver implements versefill.Resolver using Google Gemini.
type Resolver struct {
	client  *genai.Client
	model   string
	limiter *rate.Limiter

	// Tokens and MaxInputTokens, when both set, refuse documents larger
	// than the model input budget before any request is made.
	Tokens         versefill.TokenCounter
	MaxInputTokens int
}

// NewResolver creates a new Resolver. Requests are limited to rps per
// second with no bursting.
func NewResolver(client *genai.Client, model string, rps float64) *Resolver {
	if model == "" {
		model = DefaultModel
	}
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}
	return &Resolver{
		client:  client,
		model:   model,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Resolve asks the model for the outline structure and references of text.
func (r *Resolver) Resolve(ctx context.Context, text string) (*versefill.Resolution, error) {
	if strings.TrimSpace(text) == "" {
		return nil, versefill.Errorf(versefill.EINVALID, "text required")
	}

	if r.Tokens != nil && r.MaxInputTokens > 0 {
		n, err := r.Tokens.CountTokens(ctx, text)
		if err != nil {
			return nil, err
		}
		if n > r.MaxInputTokens {
			return nil, versefill.Errorf(versefill.EINVALID, "document has %d tokens, limit is %d", n, r.MaxInputTokens)
		}
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	result, err := r.client.Models.GenerateContent(ctx, r.model,
		[]*genai.Content{genai.NewContentFromText(BuildUserPrompt(text), genai.RoleUser)},
		BuildConfig(),
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, versefill.Errorf(versefill.EUNAVAILABLE, "gemini: %v", err)
	}
	if result == nil {
		return nil, versefill.Errorf(versefill.EINTERNAL, "gemini returned nil result")
	}

	return ParseResolution(result.Text())
}

// BuildConfig returns the GenerateContentConfig for resolver calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You read church message outlines and list every Bible reference they cite. " +
					"Return each outline line with its level, marker and text exactly as written, " +
					"and the references cited on it. Resolve elliptical citations such as \"v. 5\" " +
					"or \"12:1\" from the surrounding outline. Use full English book names.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema:   ResolutionSchema(),
	}
}

// ResolutionSchema returns the response schema mirroring versefill.Resolution.
func ResolutionSchema() *genai.Schema {
	str := &genai.Schema{Type: genai.TypeString}
	integer := &genai.Schema{Type: genai.TypeInteger}

	reference := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"book":       str,
			"chapter":    integer,
			"verseStart": integer,
			"verseEnd":   integer,
			"citation":   str,
		},
		Required: []string{"book", "chapter"},
	}
	node := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"level": {
				Type: genai.TypeString,
				Enum: []string{"title", "subtitle", "scripture_reading", "roman", "letter", "number", "plain"},
			},
			"marker":     str,
			"text":       str,
			"references": {Type: genai.TypeArray, Items: reference},
		},
		Required: []string{"level", "text", "references"},
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":    str,
			"subtitle": str,
			"nodes":    {Type: genai.TypeArray, Items: node},
		},
		Required: []string{"nodes"},
	}
}

// BuildUserPrompt builds the user prompt containing the outline.
func BuildUserPrompt(text string) string {
	var sb strings.Builder
	sb.WriteString("<outline>\n")
	sb.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString("</outline>\n\n")
	sb.WriteString("List every line of the outline above with the Bible references it cites.")
	return sb.String()
}

// ParseResolution decodes a model answer. Answers wrapped in a markdown
// code fence are accepted.
func ParseResolution(answer string) (*versefill.Resolution, error) {
	answer = strings.TrimSpace(answer)
	if strings.HasPrefix(answer, "```") {
		answer = strings.TrimPrefix(answer, "```json")
		answer = strings.TrimPrefix(answer, "```")
		answer = strings.TrimSuffix(answer, "```")
	}

	var res versefill.Resolution
	if err := json.Unmarshal([]byte(answer), &res); err != nil {
		return nil, versefill.Errorf(versefill.EINVALID, "decode resolver answer: %v", err)
	}
	return &res, nil
}
