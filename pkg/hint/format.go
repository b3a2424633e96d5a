package hint

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// FallbackText is returned when the model produces nothing usable.
const FallbackText = "Review the underlying logic structure; ensure conditions and relationships reflect the intended meaning."

// noDiagnosisText covers the corner where nothing matched and execution
// gave no usable signal either.
const noDiagnosisText = "No hints applicable; your query may already match or require deeper manual analysis."

// maxModelWords bounds tier-4 output length.
const maxModelWords = 35

// Completer produces free text for a prompt. Implementations are expected
// to bound their own latency; an error or empty string degrades to
// FallbackText.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Formatter renders diagnostics at a requested tier.
type Formatter struct {
	completer Completer
}

// NewFormatter returns a formatter. completer may be nil, in which case
// tier 4 always renders FallbackText.
func NewFormatter(completer Completer) *Formatter {
	return &Formatter{completer: completer}
}

// Format renders the diagnostic at the given tier. Equal results always
// render the fixed correct text, whatever the tier.
func (f *Formatter) Format(ctx context.Context, d *Diagnostic, tier int) (*Hint, error) {
	if tier < TierPointer || tier > TierModel {
		return nil, fmt.Errorf("hint: tier %d out of range 1..4", tier)
	}
	if d.Equal {
		return &Hint{Tier: tier, Text: CorrectText}, nil
	}
	if tier == TierModel {
		return &Hint{Tier: tier, Text: f.modelText(ctx, d), ConstraintID: d.ConstraintID()}, nil
	}

	if d.Matched == nil {
		text := noDiagnosisText
		if d.Classification != nil && d.Classification.Summary != "" {
			text = d.Classification.Summary
		}
		return &Hint{Tier: tier, Text: text}, nil
	}

	c := d.Matched.Constraint
	var text string
	switch tier {
	case TierPointer:
		text = c.Tier1
	case TierTargeted:
		text = renderTemplate(c.Tier2, d.Matched.Evidence)
	case TierConceptual:
		text = c.Tier3
	}
	return &Hint{Tier: tier, Text: text, ConstraintID: c.ID}, nil
}

var placeholderRe = regexp.MustCompile(`\{([a-z_]+)\}`)

// renderTemplate substitutes {key} placeholders with evidence values.
// Unknown keys are left in place so template drift shows up in tests.
func renderTemplate(tmpl string, ev map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(tmpl, func(m string) string {
		key := m[1 : len(m)-1]
		if v, ok := ev[key]; ok {
			return v
		}
		return m
	})
}

func (f *Formatter) modelText(ctx context.Context, d *Diagnostic) string {
	if f.completer == nil {
		return FallbackText
	}
	raw, err := f.completer.Complete(ctx, BuildPrompt(d))
	if err != nil {
		return FallbackText
	}
	text := sanitizeModelOutput(raw)
	if text == "" {
		return FallbackText
	}
	return text
}

// sanitizeModelOutput trims the raw completion to at most two sentences
// and rejects anything empty or over the word ceiling.
func sanitizeModelOutput(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	var sentences []string
	for _, part := range strings.Split(text, ".") {
		if p := strings.TrimSpace(part); p != "" {
			sentences = append(sentences, p)
		}
		if len(sentences) == 2 {
			break
		}
	}
	if len(sentences) == 0 {
		return ""
	}
	text = strings.Join(sentences, ". ") + "."
	if len(strings.Fields(text)) > maxModelWords {
		return ""
	}
	return text
}
