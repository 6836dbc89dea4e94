package service

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// NarrativeText son los dos textos libres que aporta el LLM al reporte.
type NarrativeText struct {
	Summary string `json:"summary"`
	Closing string `json:"closing"`
}

var (
	fenceStartRe = regexp.MustCompile("(?is)^\\s*```(?:json)?\\s*")
	fenceEndRe   = regexp.MustCompile("(?is)\\s*```\\s*$")
)

// ParseNarrativeResponse intenta extraer summary y closing de una respuesta sucia del LLM.
// Devuelve lo que pudo rescatar; los campos vacios quedan para el fallback.
func ParseNarrativeResponse(raw string) NarrativeText {
	cleaned := cleanLLMJSONResponse(raw)
	if cleaned == "" {
		return NarrativeText{}
	}

	candidates := []string{}
	if obj := extractFirstJSONObject(cleaned); obj != "" {
		candidates = append(candidates, obj)
	}
	candidates = append(candidates, cleaned)

	for _, c := range candidates {
		if out, ok := unmarshalNarrative(c); ok {
			return out
		}
	}
	for _, c := range candidates {
		repaired, err := jsonrepair.JSONRepair(c)
		if err != nil {
			continue
		}
		if out, ok := unmarshalNarrative(repaired); ok {
			return out
		}
	}

	// ultimo recurso: leer los campos aunque el JSON este roto
	return NarrativeText{
		Summary: extractStringField(cleaned, "summary"),
		Closing: extractStringField(cleaned, "closing"),
	}
}

func unmarshalNarrative(candidate string) (NarrativeText, bool) {
	var tmp map[string]any
	if err := json.Unmarshal([]byte(candidate), &tmp); err != nil {
		return NarrativeText{}, false
	}
	out := NarrativeText{
		Summary: stringField(tmp, "summary"),
		Closing: stringField(tmp, "closing"),
	}
	if out.Summary == "" && out.Closing == "" {
		return NarrativeText{}, false
	}
	return out, true
}

// stringField ignora valores que no sean string (el modelo a veces manda listas u objetos).
func stringField(m map[string]any, key string) string {
	v, ok := m[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(unescapeMaybeDoubleEscaped(v))
}

// cleanLLMJSONResponse quita fences ```json ... ``` y BOM, dejando el contenido usable.
func cleanLLMJSONResponse(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = strings.TrimPrefix(s, "\uFEFF")
	s = fenceStartRe.ReplaceAllString(s, "")
	s = fenceEndRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// extractFirstJSONObject devuelve el primer objeto {...} balanceado, respetando strings.
func extractFirstJSONObject(input string) string {
	start := strings.IndexByte(input, '{')
	if start == -1 {
		return ""
	}

	inString, escaped := false, false
	depth := 0
	for i := start; i < len(input); i++ {
		ch := input[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
		}
	}
	return ""
}

func extractStringField(s, key string) string {
	re := regexp.MustCompile(`(?is)"` + regexp.QuoteMeta(key) + `"\s*:\s*"((?:\\.|[^"\\])*)"`)
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	unq, err := strconv.Unquote(`"` + m[1] + `"`)
	if err != nil {
		unq = unescapeMinimalEscapes(m[1])
	}
	return strings.TrimSpace(unescapeMaybeDoubleEscaped(unq))
}

// unescapeMaybeDoubleEscaped arregla textos que el modelo manda doble-escapados.
func unescapeMaybeDoubleEscaped(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, `\`) {
		return s
	}
	quoted := `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
	if unq, err := strconv.Unquote(quoted); err == nil {
		return strings.TrimSpace(unq)
	}
	return unescapeMinimalEscapes(s)
}

func unescapeMinimalEscapes(s string) string {
	replacer := strings.NewReplacer(
		`\\`, `\`,
		`\"`, `"`,
		`\n`, "\n",
		`\r`, "\r",
		`\t`, "\t",
	)
	return replacer.Replace(s)
}
