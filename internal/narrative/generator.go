package narrative

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/phuslu/log"

	"ValueSentinel/internal/model"
)

// Generator produces raw model output for a prompt.
type Generator interface {
	Generate(ctx context.Context, p Prompt) (string, error)
}

// CommandGenerator runs an external command, writing the system prompt, a
// blank line and the user prompt to its stdin and reading the response
// from stdout.
type CommandGenerator struct {
	Command []string
}

// NewCommandGenerator splits command on whitespace.
func NewCommandGenerator(command string) (*CommandGenerator, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty narrative command")
	}
	return &CommandGenerator{Command: fields}, nil
}

func (g *CommandGenerator) Generate(ctx context.Context, p Prompt) (string, error) {
	cmd := exec.CommandContext(ctx, g.Command[0], g.Command[1:]...)
	cmd.Stdin = strings.NewReader(p.System + "\n\n" + p.User)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("run %s: %w: %s", g.Command[0], err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// Narrate asks gen for a verdict on report.
func Narrate(ctx context.Context, gen Generator, ticker string, report model.Report) (Verdict, error) {
	p, err := BuildPrompt(ticker, report)
	if err != nil {
		return Verdict{}, err
	}
	text, err := gen.Generate(ctx, p)
	if err != nil {
		return Verdict{}, fmt.Errorf("generate verdict: %w", err)
	}
	v, err := ParseVerdict(text)
	if err != nil {
		log.Warn().Str("ticker", ticker).Err(err).Int("length", len(text)).Msg("unusable model response")
		return Verdict{}, err
	}
	return v, nil
}
