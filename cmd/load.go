package cmd

import (
	"fmt"

	"github.com/xirothedev/agent-skills-sub000/internal/model"
	"github.com/xirothedev/agent-skills-sub000/internal/parser"
	"github.com/xirothedev/agent-skills-sub000/internal/registry"
	"github.com/xirothedev/agent-skills-sub000/internal/store"
)

// loadInputs carrega o registro de seções e todas as regras. O registro
// é construído uma vez por execução e passado adiante; falha de
// configuração nele é fatal (nunca se usa registro parcial).
func loadInputs(fs store.FileStore, sectionsPath, rulesDir string) (*registry.Registry, []model.Rule, []model.Defect, error) {
	raw, err := fs.ReadFile(sectionsPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("ler documento de seções: %w", err)
	}
	reg, err := registry.Load(raw)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("carregar registro de seções: %w", err)
	}

	rules, parseDefects, err := parser.LoadRules(fs, rulesDir)
	if err != nil {
		return nil, nil, nil, err
	}
	return reg, rules, parseDefects, nil
}
