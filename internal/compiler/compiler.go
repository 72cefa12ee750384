package compiler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xirothedev/agent-skills-sub000/internal/model"
	"github.com/xirothedev/agent-skills-sub000/internal/registry"
)

// Entry é uma regra com seu número final no documento compilado.
type Entry struct {
	DisplayID string // ex: "3.1"
	Rule      model.Rule
}

// Block agrupa as regras de uma seção, já ordenadas e numeradas.
type Block struct {
	Section model.Section
	Entries []Entry
}

// Build agrupa as regras por seção, ordena por título (case-insensitive,
// desempate pelo caminho do arquivo) e atribui os displayIds. Regra com
// seção desconhecida é erro fatal: a compilação nunca produz documento
// parcial.
func Build(rules []model.Rule, reg *registry.Registry) ([]Block, error) {
	grouped := map[string][]model.Rule{}
	for _, r := range rules {
		sec, ok := reg.Resolve(r.Section)
		if !ok {
			return nil, fmt.Errorf("regra %q (%s): seção desconhecida %q", r.Title, r.File, r.Section)
		}
		grouped[sec.ID] = append(grouped[sec.ID], r)
	}

	sections := reg.Sections()
	blocks := make([]Block, 0, len(sections))
	for _, sec := range sections {
		group := grouped[sec.ID]
		sort.Slice(group, func(i, j int) bool {
			a := strings.ToLower(group[i].Title)
			b := strings.ToLower(group[j].Title)
			if a == b {
				return group[i].File < group[j].File
			}
			return a < b
		})

		entries := make([]Entry, 0, len(group))
		for i, r := range group {
			entries = append(entries, Entry{
				DisplayID: fmt.Sprintf("%d.%d", sec.Number, i+1),
				Rule:      r,
			})
		}
		blocks = append(blocks, Block{Section: sec, Entries: entries})
	}
	return blocks, nil
}

// Render monta o documento final: cabeçalho, índice e os corpos das
// regras, verbatim, na mesma ordem do índice. Saída determinística
// para o mesmo conjunto de regras e seções.
func Render(blocks []Block) string {
	var b strings.Builder

	b.WriteString("# NestJS Best Practices\n\n")
	b.WriteString("<!-- Generated by `agents build`. Do not edit by hand. -->\n\n")

	b.WriteString("## Table of Contents\n\n")
	for _, blk := range blocks {
		b.WriteString(fmt.Sprintf("### %d. %s (Impact: %s)\n\n", blk.Section.Number, blk.Section.Name, blk.Section.Impact))
		if blk.Section.Description != "" {
			b.WriteString(fmt.Sprintf("_%s_\n\n", blk.Section.Description))
		}
		for _, e := range blk.Entries {
			b.WriteString(fmt.Sprintf("- [%s %s](#%s)\n", e.DisplayID, e.Rule.Title, anchor(e.DisplayID, e.Rule.Title)))
		}
		if len(blk.Entries) > 0 {
			b.WriteString("\n")
		}
	}

	b.WriteString("---\n\n")
	for _, blk := range blocks {
		for _, e := range blk.Entries {
			b.WriteString(fmt.Sprintf("## %s %s\n\n", e.DisplayID, e.Rule.Title))
			body := strings.TrimRight(e.Rule.Body, "\n")
			if body != "" {
				b.WriteString(body)
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// Compile é o caminho completo: agrupar, numerar e renderizar.
func Compile(rules []model.Rule, reg *registry.Registry) (string, error) {
	blocks, err := Build(rules, reg)
	if err != nil {
		return "", err
	}
	return Render(blocks), nil
}

// anchor gera o âncora no estilo do GitHub para o heading
// "<displayId> <título>": minúsculas, pontuação removida, espaços
// viram hífen.
func anchor(displayID, title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(displayID + " " + title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	return b.String()
}
