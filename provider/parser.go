package provider

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"interact/model"
)

// wireToolCall is the JSON shape models emit when they want to act:
// {"tool"|"name": "<tool_name>", "arguments": {"<param>": <value>}}.
type wireToolCall struct {
	Tool      string         `json:"tool"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// ParseLeakedToolCall scans assistant text for a single JSON tool request,
// preferring a fenced code block and falling back to the span between the
// first '{' and the last '}'. Decode failure yields nil, not an error: the
// turn is then treated as a plain-language answer.
//
// The extraction is heuristic by design, so it lives behind this one pure
// function to stay independently testable against adversarial inputs.
func ParseLeakedToolCall(text string) *model.ToolCall {
	region, ok := candidateRegion(text)
	if !ok {
		return nil
	}
	return decodeToolCall(region)
}

// candidateRegion picks the text span most likely to hold the JSON object.
func candidateRegion(text string) (string, bool) {
	if fenced, ok := fencedBlock(text); ok {
		return fenced, true
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// fencedBlock returns the interior of the first pair of triple-backtick
// fences, with any language tag on the opening fence line stripped.
func fencedBlock(text string) (string, bool) {
	open := strings.Index(text, "```")
	if open == -1 {
		return "", false
	}

	rest := text[open+3:]
	closing := strings.Index(rest, "```")
	if closing == -1 {
		return "", false
	}

	inner := rest[:closing]

	// A language tag ("json") may sit on the opening fence line. Only drop
	// that line when the payload has not started on it.
	if nl := strings.Index(inner, "\n"); nl != -1 && !strings.Contains(inner[:nl], "{") {
		inner = inner[nl+1:]
	}

	return inner, true
}

// decodeToolCall decodes a candidate JSON region into a ToolCall.
// Returns nil when the region is not a valid tool request.
func decodeToolCall(region string) *model.ToolCall {
	dec := json.NewDecoder(strings.NewReader(region))
	dec.UseNumber()

	var wire wireToolCall
	if err := dec.Decode(&wire); err != nil {
		return nil
	}

	name := wire.Tool
	if name == "" {
		name = wire.Name
	}
	if name == "" {
		return nil
	}

	return &model.ToolCall{
		Name:      name,
		Arguments: CoerceArguments(wire.Arguments),
	}
}

// DecodeCallArguments decodes one structured tool call's argument JSON.
// A malformed payload reports ok=false so the caller can drop that call
// without failing the whole response.
func DecodeCallArguments(argsJSON string) (map[string]string, bool) {
	if strings.TrimSpace(argsJSON) == "" {
		return map[string]string{}, true
	}

	dec := json.NewDecoder(strings.NewReader(argsJSON))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, false
	}

	return CoerceArguments(raw), true
}

// CoerceArguments converts argument values of any primitive JSON type to
// their canonical string representation. Numbers decoded through
// json.Number keep their source form ("2" stays "2", "2.5" stays "2.5").
// Non-primitive values are re-encoded as JSON text.
func CoerceArguments(raw map[string]any) map[string]string {
	args := make(map[string]string, len(raw))
	for key, value := range raw {
		args[key] = coerceValue(value)
	}
	return args
}

func coerceValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return v.String()
	case float64:
		// Plain json.Unmarshal path (no UseNumber): integral floats
		// render without a fractional part.
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case nil:
		return ""
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(encoded)
	}
}
