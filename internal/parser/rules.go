package parser

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/xirothedev/agent-skills-sub000/internal/model"
	"github.com/xirothedev/agent-skills-sub000/internal/store"
)

// LoadRules descobre e parseia todos os arquivos de regra sob dir.
// Arquivos cujo nome começa com "_" são templates/metadados auxiliares
// e ficam fora do conjunto, independente do conteúdo.
//
// Falhas de parse não interrompem a carga: viram defeitos para o
// relatório de validação. Erros de I/O continuam fatais.
func LoadRules(fs store.FileStore, dir string) ([]model.Rule, []model.Defect, error) {
	pattern := path.Join(dir, "**", "*.md")
	files, err := fs.Glob(pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("descobrir arquivos de regra em %s: %w", dir, err)
	}

	var rules []model.Rule
	var defects []model.Defect
	for _, f := range files {
		if strings.HasPrefix(path.Base(f), "_") {
			continue
		}
		content, err := fs.ReadFile(f)
		if err != nil {
			return nil, nil, fmt.Errorf("ler arquivo de regra: %w", err)
		}
		rule, err := ParseRule(f, content)
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				defects = append(defects, model.Defect{
					File:    perr.File,
					Field:   "frontmatter",
					Problem: perr.Reason,
				})
				continue
			}
			return nil, nil, err
		}
		rules = append(rules, *rule)
	}
	return rules, defects, nil
}
