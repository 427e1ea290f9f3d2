package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"strings"
)

// SanitizeChunkJSON normalizes a near-miss extraction response so the strict
// schema can still accept it:
//   - renames known singular/synonym keys (risk -> risks, obligations -> responsibilities)
//   - coerces a lone string into a one-element list for the category fields
//   - stringifies non-string list items and drops nulls
//   - removes unknown keys (additionalProperties is false)
//
// It never invents missing required fields; a response without them still
// fails validation afterwards.
func SanitizeChunkJSON(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	dropped := make([]string, 0, 4)
	rename := func(from, to string) {
		if v, ok := m[from]; ok {
			if _, exists := m[to]; !exists {
				m[to] = v
			}
			delete(m, from)
			dropped = append(dropped, from+"->"+to)
		}
	}
	rename("risk", "risks")
	rename("right", "rights")
	rename("responsibility", "responsibilities")
	rename("obligations", "responsibilities")

	for _, k := range []string{"risks", "rights", "responsibilities"} {
		v, ok := m[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case []any:
			items := make([]string, 0, len(t))
			for _, item := range t {
				switch s := item.(type) {
				case string:
					if trimmed := strings.TrimSpace(s); trimmed != "" {
						items = append(items, trimmed)
					}
				case nil:
					dropped = append(dropped, k+"(null item)")
				default:
					items = append(items, fmt.Sprintf("%v", s))
					dropped = append(dropped, k+"(coerced item)")
				}
			}
			m[k] = items
		case string:
			if trimmed := strings.TrimSpace(t); trimmed != "" {
				m[k] = []string{trimmed}
			} else {
				m[k] = []string{}
			}
			dropped = append(dropped, k+"(string->list)")
		case nil:
			m[k] = []string{}
			dropped = append(dropped, k+"(null)")
		}
	}

	if v, ok := m["summary"]; ok {
		switch t := v.(type) {
		case string:
			m["summary"] = strings.TrimSpace(t)
		default:
			m["summary"] = fmt.Sprintf("%v", t)
			dropped = append(dropped, "summary(coerced)")
		}
	}

	allowed := map[string]struct{}{
		"summary": {}, "risks": {}, "rights": {}, "responsibilities": {},
	}
	for k := range maps.Clone(m) {
		if _, ok := allowed[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(dropped) > 0 {
		logger.Warn("llm.analyze.sanitize_applied", "dropped", dropped)
	}
	return out, dropped, nil
}
