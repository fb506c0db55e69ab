package content

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/curialabs/curia/internal/senator"
)

func TestCanned_Deterministic(t *testing.T) {
	cato := senator.New("Cato", "Optimates", 4)

	first, err := NewCanned(rand.New(rand.NewSource(42))).
		GenerateSpeech(context.Background(), cato, "Land Reform", senator.StanceOppose, nil)
	if err != nil {
		t.Fatalf("GenerateSpeech() error = %v", err)
	}
	second, err := NewCanned(rand.New(rand.NewSource(42))).
		GenerateSpeech(context.Background(), cato, "Land Reform", senator.StanceOppose, nil)
	if err != nil {
		t.Fatalf("GenerateSpeech() error = %v", err)
	}

	if first.Text != second.Text {
		t.Errorf("same seed produced different speeches:\n%q\n%q", first.Text, second.Text)
	}
}

func TestCanned_HonorsStanceHint(t *testing.T) {
	cato := senator.New("Cato", "Optimates", 4)
	gen := NewCanned(rand.New(rand.NewSource(1)))

	speech, err := gen.GenerateSpeech(context.Background(), cato, "Land Reform", senator.StanceOppose, nil)
	if err != nil {
		t.Fatalf("GenerateSpeech() error = %v", err)
	}

	if speech.Stance != senator.StanceOppose {
		t.Errorf("Stance = %q, want hint %q", speech.Stance, senator.StanceOppose)
	}
	if !strings.Contains(speech.Text, "Land Reform") {
		t.Errorf("speech should mention the topic, got %q", speech.Text)
	}
	if !strings.Contains(speech.Text, "Cato") {
		t.Errorf("speech should mention the speaker, got %q", speech.Text)
	}
	if len(speech.KeyPoints) == 0 {
		t.Error("speech should carry key points")
	}
}

func TestCanned_InvalidHintDrawsStance(t *testing.T) {
	cato := senator.New("Cato", "Optimates", 4)
	gen := NewCanned(rand.New(rand.NewSource(7)))

	speech, err := gen.GenerateSpeech(context.Background(), cato, "Land Reform", senator.Stance(""), nil)
	if err != nil {
		t.Fatalf("GenerateSpeech() error = %v", err)
	}
	if !speech.Stance.Valid() {
		t.Errorf("Stance = %q, want a valid drawn stance", speech.Stance)
	}
}

func TestCanned_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := NewCanned(nil)
	_, err := gen.GenerateSpeech(ctx, senator.New("Cato", "Optimates", 4), "Land Reform", senator.StanceNeutral, nil)
	if err == nil {
		t.Error("GenerateSpeech with canceled context should fail")
	}
}

func TestParseResponse(t *testing.T) {
	text := `STANCE: oppose
SPEECH: The measure must not pass.
It would ruin the treasury.
KEYPOINT: fiscal ruin
KEYPOINT: bad precedent`

	speech := parseResponse(text, senator.StanceNeutral)

	if speech.Stance != senator.StanceOppose {
		t.Errorf("Stance = %q, want oppose", speech.Stance)
	}
	if !strings.Contains(speech.Text, "must not pass") || !strings.Contains(speech.Text, "ruin the treasury") {
		t.Errorf("Text = %q, want joined multi-line speech", speech.Text)
	}
	if len(speech.KeyPoints) != 2 {
		t.Fatalf("KeyPoints = %v, want 2 entries", speech.KeyPoints)
	}
}

func TestParseResponse_Malformed(t *testing.T) {
	speech := parseResponse("The senate must decide.", senator.StanceSupport)

	if speech.Text != "The senate must decide." {
		t.Errorf("Text = %q, want raw text fallback", speech.Text)
	}
	if speech.Stance != senator.StanceSupport {
		t.Errorf("Stance = %q, want kept hint", speech.Stance)
	}
}
