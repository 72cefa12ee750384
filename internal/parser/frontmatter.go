package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xirothedev/agent-skills-sub000/internal/model"
	"gopkg.in/yaml.v3"
)

// ParseError é uma falha estrutural de parse em um arquivo de regra.
// Chaves desconhecidas no frontmatter NÃO são ParseError (vão para Extra).
type ParseError struct {
	File   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.File, e.Reason)
}

// Chaves de frontmatter reconhecidas pelo compilador.
const (
	keyTitle             = "title"
	keyImpact            = "impact"
	keySection           = "section"
	keyImpactDescription = "impactDescription"
	keyTags              = "tags"
)

// ParseRule converte o conteúdo de um arquivo de regra em model.Rule.
// Arquivo sem bloco de frontmatter é erro de parse, nunca uma regra
// com campos vazios.
func ParseRule(file string, content []byte) (*model.Rule, error) {
	str := string(content)
	if !strings.HasPrefix(str, "---\n") && !strings.HasPrefix(str, "---\r\n") {
		return nil, &ParseError{File: file, Reason: "bloco de frontmatter ausente"}
	}

	meta, body, err := splitFrontmatter(str)
	if err != nil {
		return nil, &ParseError{File: file, Reason: err.Error()}
	}

	var raw map[string]any
	if err := yaml.Unmarshal([]byte(meta), &raw); err != nil {
		return nil, &ParseError{File: file, Reason: fmt.Sprintf("frontmatter YAML inválido: %v", err)}
	}

	rule := &model.Rule{Body: body, File: file}
	for key, val := range raw {
		switch key {
		case keyTitle:
			rule.Title = asString(val)
		case keyImpact:
			rule.Impact = asString(val)
		case keySection:
			rule.Section = asString(val)
		case keyImpactDescription:
			rule.ImpactDescription = asString(val)
		case keyTags:
			rule.Tags = asTags(val)
		default:
			if rule.Extra == nil {
				rule.Extra = map[string]any{}
			}
			rule.Extra[key] = val
		}
	}
	return rule, nil
}

// splitFrontmatter separa o bloco YAML entre os delimitadores "---"
// do restante do corpo. Retorna erro se o fechamento não existir.
func splitFrontmatter(content string) (meta, body string, err error) {
	const delim = "---"

	start := len(delim)
	if len(content) > start && content[start] == '\r' {
		start++
	}
	if len(content) > start && content[start] == '\n' {
		start++
	}

	closeIdx := strings.Index(content[start:], "\n"+delim)
	if closeIdx == -1 {
		closeIdx = strings.Index(content[start:], "\r\n"+delim)
	}
	if closeIdx == -1 {
		return "", "", fmt.Errorf("delimitador de fechamento do frontmatter ausente")
	}
	meta = content[start : start+closeIdx]

	bodyStart := start + closeIdx + 1 + len(delim)
	for bodyStart < len(content) && (content[bodyStart] == '\n' || content[bodyStart] == '\r') {
		bodyStart++
	}
	if bodyStart < len(content) {
		body = content[bodyStart:]
	}
	return meta, body, nil
}

// asString aceita string ou inteiro (YAML pode entregar `section: 3`
// como int) e normaliza para string.
func asString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.Itoa(int(t))
	}
	return ""
}

// asTags aceita lista YAML ou string separada por vírgulas.
func asTags(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s := asString(e); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(t, ",") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
