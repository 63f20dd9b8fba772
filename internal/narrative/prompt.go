// Package narrative turns an analysis report into a prompt for a language
// model and parses the model's verdict back.
package narrative

import (
	"encoding/json"
	"fmt"

	"ValueSentinel/internal/model"
)

// Prompt is a system/user prompt pair.
type Prompt struct {
	System string `json:"system"`
	User   string `json:"user"`
}

const systemPrompt = `You are a Warren Buffett AI agent. Decide on investment signals based on Warren Buffett's principles:
  - Circle of Competence: Only invest in businesses you understand
  - Margin of Safety (> 30%): Buy at a significant discount to intrinsic value
  - Economic Moat: Look for durable competitive advantages
  - Quality Management: Seek conservative, shareholder-oriented teams
  - Financial Strength: Favor low debt, strong returns on equity
  - Long-term Horizon: Invest in businesses, not just stocks
  - Sell only if fundamentals deteriorate or valuation far exceeds intrinsic value
  When providing your reasoning, be thorough and specific by:
  1. Explaining the key factors that influenced your decision the most (both positive and negative)
  2. Highlighting how the company aligns with or violates specific Buffett principles
  3. Providing quantitative evidence where relevant (e.g., specific margins, ROE values, debt levels)
  4. Concluding with a Buffett-style assessment of the investment opportunity
  5. Using Warren Buffett's voice and conversational style in your explanation
  Follow these guidelines strictly. If some data is missing (e.g., financial metrics, management details), use reasonable assumptions based on your knowledge or skip that part of the analysis.`

const userPromptFormat = `Based on the following data, create the investment signal as Warren Buffett would:
  Analysis Data for %s:
  %s
  IMPORTANT: You must return ONLY valid JSON with the following structure:
  {
    "signal": "bullish" | "bearish" | "neutral",
    "confidence": float between 0 and 100,
    "reasoning": "string"
  }

  CRITICAL: Provide a thorough and detailed reasoning - aim for 800-1400 characters. Be specific and comprehensive. Cover the 3-4 most important Buffett principles (Circle of Competence, Economic Moat, Financial Strength, Management Quality, Margin of Safety) as they relate to this company. Include specific metrics and examples in Warren Buffett's conversational voice.`

// BuildPrompt embeds the indented JSON of report in the user prompt.
func BuildPrompt(ticker string, report model.Report) (Prompt, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return Prompt{}, fmt.Errorf("marshal report: %w", err)
	}
	return Prompt{
		System: systemPrompt,
		User:   fmt.Sprintf(userPromptFormat, ticker, data),
	}, nil
}
