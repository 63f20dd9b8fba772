package narrative

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"ValueSentinel/internal/jsonutil"
	"ValueSentinel/internal/model"
)

// ErrTruncated is returned when a response has unbalanced braces, which
// happens when the model ran out of output tokens.
var ErrTruncated = errors.New("AI response was truncated")

// Verdict is the model's own signal for a report.
type Verdict struct {
	Signal     model.Signal `json:"signal" validate:"oneof=bullish bearish neutral"`
	Confidence float64      `json:"confidence" validate:"gte=0,lte=100"`
	Reasoning  string       `json:"reasoning" validate:"required"`
}

var validate = validator.New()

// ParseVerdict extracts a Verdict from raw model output. Markdown code
// fences are stripped and slightly malformed JSON is repaired.
func ParseVerdict(text string) (Verdict, error) {
	text = stripFences(text)
	if strings.Count(text, "{") != strings.Count(text, "}") {
		return Verdict{}, ErrTruncated
	}

	var v Verdict
	if _, err := jsonutil.Decode([]byte(text), &v); err != nil {
		return Verdict{}, fmt.Errorf("decode verdict: %w", err)
	}
	v.Signal = model.Signal(strings.ToLower(strings.TrimSpace(string(v.Signal))))
	if err := validate.Struct(v); err != nil {
		return Verdict{}, fmt.Errorf("invalid verdict: %w", err)
	}
	return v, nil
}

func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[i+1:]
	} else {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSpace(text)
	return strings.TrimSpace(strings.TrimSuffix(text, "```"))
}
