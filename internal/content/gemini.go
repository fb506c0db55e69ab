package content

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/curialabs/curia/internal/cerr"
	"github.com/curialabs/curia/internal/senator"
)

// Gemini generates speeches with Google's Gemini models. Each call is
// bounded by the caller's context; a hung or failed call is reported as an
// error so the debate can continue without the speech.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini generator. The API key is read from the
// GEMINI_API_KEY environment variable when apiKey is empty.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &Gemini{client: client, model: model}, nil
}

// GenerateSpeech prompts the model for a short senate speech and parses
// stance and key points from a line-oriented response format.
func (g *Gemini) GenerateSpeech(ctx context.Context, s *senator.Senator, topic string, stanceHint senator.Stance, prior []string) (Speech, error) {
	if s == nil {
		return Speech{}, fmt.Errorf("gemini generation: nil senator")
	}

	prompt := g.buildPrompt(s, topic, stanceHint, prior)
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return Speech{}, fmt.Errorf("%w: %v", cerr.ErrGenerationFailed, err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return Speech{}, fmt.Errorf("%w: model returned empty response", cerr.ErrGenerationFailed)
	}

	return parseResponse(text, stanceHint), nil
}

func (g *Gemini) buildPrompt(s *senator.Senator, topic string, stanceHint senator.Stance, prior []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are %s, a Roman senator of the %s faction, rank %d.\n", s.Name, s.Faction, s.Rank)
	fmt.Fprintf(&sb, "Deliver a short senate speech (3-5 sentences) on the topic: %s.\n", topic)
	if stanceHint.Valid() {
		fmt.Fprintf(&sb, "Your stance is: %s.\n", stanceHint)
	}
	if len(prior) > 0 {
		sb.WriteString("Earlier speeches in this debate:\n")
		for _, p := range prior {
			fmt.Fprintf(&sb, "- %s\n", p)
		}
	}
	sb.WriteString("\nRespond in exactly this format:\n")
	sb.WriteString("STANCE: support|oppose|neutral\n")
	sb.WriteString("SPEECH: <the speech text>\n")
	sb.WriteString("KEYPOINT: <first key point>\n")
	sb.WriteString("KEYPOINT: <second key point>\n")
	return sb.String()
}

// parseResponse extracts stance, speech text and key points from the
// line-oriented response. Malformed lines degrade gracefully: the whole
// text becomes the speech and the stance hint is kept.
func parseResponse(text string, stanceHint senator.Stance) Speech {
	speech := Speech{Stance: stanceHint}
	if !speech.Stance.Valid() {
		speech.Stance = senator.StanceNeutral
	}

	var body []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "STANCE:"):
			s := senator.Stance(strings.TrimSpace(strings.TrimPrefix(line, "STANCE:")))
			if s.Valid() {
				speech.Stance = s
			}
		case strings.HasPrefix(line, "SPEECH:"):
			body = append(body, strings.TrimSpace(strings.TrimPrefix(line, "SPEECH:")))
		case strings.HasPrefix(line, "KEYPOINT:"):
			point := strings.TrimSpace(strings.TrimPrefix(line, "KEYPOINT:"))
			if point != "" {
				speech.KeyPoints = append(speech.KeyPoints, point)
			}
		case line != "" && len(body) > 0:
			// Continuation of a multi-line speech.
			body = append(body, line)
		}
	}

	speech.Text = strings.Join(body, " ")
	if speech.Text == "" {
		speech.Text = strings.TrimSpace(text)
	}
	return speech
}
