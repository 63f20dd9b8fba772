// Package jsonutil decodes JSON written by people or language models,
// which is often almost-but-not-quite valid.
package jsonutil

import (
	"encoding/json"
	"errors"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// ErrUnparseable is returned when every decoding strategy failed.
var ErrUnparseable = errors.New("jsonutil: input is not parseable as JSON, Hjson or repaired JSON")

// Strategy names the decoder that succeeded.
type Strategy string

const (
	StrategyJSON     Strategy = "json"
	StrategyRepaired Strategy = "repaired"
	StrategyHjson    Strategy = "hjson"
)

// Decode unmarshals data into v, trying strict JSON first, then Hjson,
// then a repaired version of the input. Hjson runs before repair because
// json-repair accepts Hjson text but folds unquoted members into strings.
func Decode(data []byte, v any) (Strategy, error) {
	strictErr := json.Unmarshal(data, v)
	if strictErr == nil {
		return StrategyJSON, nil
	}

	if normalized, err := hjsonToJSON(data); err == nil {
		if err := json.Unmarshal(normalized, v); err == nil {
			return StrategyHjson, nil
		}
	}

	if repaired, err := jsonrepair.RepairJSON(string(data)); err == nil {
		if err := json.Unmarshal([]byte(repaired), v); err == nil {
			return StrategyRepaired, nil
		}
	}

	return "", fmt.Errorf("%w: %v", ErrUnparseable, strictErr)
}

// hjsonToJSON routes Hjson through a generic value so the target's own
// UnmarshalJSON methods still apply.
func hjsonToJSON(data []byte) ([]byte, error) {
	var generic any
	if err := hjson.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("parse hjson: %w", err)
	}
	out, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("marshal hjson result: %w", err)
	}
	return out, nil
}
