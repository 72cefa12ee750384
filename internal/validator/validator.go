package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xirothedev/agent-skills-sub000/internal/model"
	"github.com/xirothedev/agent-skills-sub000/internal/registry"
)

// Validate confere os metadados de todas as regras e acumula todos os
// defeitos encontrados; nunca para no primeiro. Falhas de parse vindas
// da descoberta entram no mesmo relatório. O resultado é ordenado por
// arquivo/campo para saída determinística.
func Validate(rules []model.Rule, parseDefects []model.Defect, reg *registry.Registry) []model.Defect {
	defects := make([]model.Defect, 0, len(parseDefects))
	defects = append(defects, parseDefects...)

	// títulos por seção, para detectar duplicatas (desempate do
	// displayId vira arbitrário; sinalizamos como aviso)
	seenTitles := map[string]string{}

	for _, r := range rules {
		if strings.TrimSpace(r.Title) == "" {
			defects = append(defects, model.Defect{
				File: r.File, Field: "title", Problem: "campo obrigatório ausente ou vazio",
			})
		}
		if strings.TrimSpace(r.Section) == "" {
			defects = append(defects, model.Defect{
				File: r.File, Field: "section", Problem: "campo obrigatório ausente ou vazio",
			})
		} else if _, ok := reg.Resolve(r.Section); !ok {
			defects = append(defects, model.Defect{
				File: r.File, Field: "section", Problem: fmt.Sprintf("seção desconhecida %q", r.Section),
			})
		}
		if r.Impact != "" {
			if _, ok := model.ParseImpact(r.Impact); !ok {
				defects = append(defects, model.Defect{
					File: r.File, Field: "impact",
					Problem: fmt.Sprintf("impacto %q fora da enumeração %v", r.Impact, model.Impacts),
				})
			}
		}
		for _, key := range sortedKeys(r.Extra) {
			defects = append(defects, model.Defect{
				File: r.File, Field: key, Problem: "chave de frontmatter desconhecida", Warning: true,
			})
		}

		if r.Title != "" && r.Section != "" {
			if sec, ok := reg.Resolve(r.Section); ok {
				k := sec.ID + "\x00" + strings.ToLower(r.Title)
				if other, dup := seenTitles[k]; dup {
					defects = append(defects, model.Defect{
						File: r.File, Field: "title", Warning: true,
						Problem: fmt.Sprintf("título duplicado na seção %q (também em %s)", sec.ID, other),
					})
				} else {
					seenTitles[k] = r.File
				}
			}
		}
	}

	sort.Slice(defects, func(i, j int) bool {
		if defects[i].File != defects[j].File {
			return defects[i].File < defects[j].File
		}
		if defects[i].Field != defects[j].Field {
			return defects[i].Field < defects[j].Field
		}
		return defects[i].Problem < defects[j].Problem
	})
	return defects
}

func sortedKeys(m map[string]any) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
