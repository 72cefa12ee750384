package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xirothedev/agent-skills-sub000/internal/model"
	"github.com/xirothedev/agent-skills-sub000/internal/registry"
)

const sectionsDoc = `## 3. Security
Id: security
Impact: CRITICAL
Description: Guards, validation and headers.

## 6. Performance
Id: performance
Impact: MEDIUM
Description: Caching and query efficiency.
`

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.Load([]byte(sectionsDoc))
	require.NoError(t, err)
	return reg
}

func rule(file, title, section, body string) model.Rule {
	return model.Rule{Title: title, Section: section, Body: body, File: file}
}

func TestBuild_OrdenacaoENumeracao(t *testing.T) {
	reg := testRegistry(t)
	rules := []model.Rule{
		rule("rules/security-validate.md", "Validate All Inputs With DTOs", "security", "B"),
		rule("rules/security-helmet.md", "Use Helmet Middleware For Headers", "security", "A"),
		rule("rules/performance-cache.md", "Cache Expensive Queries", "performance", "C"),
	}

	blocks, err := Build(rules, reg)
	require.NoError(t, err)
	require.Len(t, blocks, 2)

	// seções em ordem de displayNumber
	assert.Equal(t, 3, blocks[0].Section.Number)
	assert.Equal(t, 6, blocks[1].Section.Number)

	// ordenação case-insensitive por título: H antes de V
	sec := blocks[0]
	require.Len(t, sec.Entries, 2)
	assert.Equal(t, "Use Helmet Middleware For Headers", sec.Entries[0].Rule.Title)
	assert.Equal(t, "3.1", sec.Entries[0].DisplayID)
	assert.Equal(t, "Validate All Inputs With DTOs", sec.Entries[1].Rule.Title)
	assert.Equal(t, "3.2", sec.Entries[1].DisplayID)

	// seção 6 com uma regra -> "6.1"
	perf := blocks[1]
	require.Len(t, perf.Entries, 1)
	assert.Equal(t, "6.1", perf.Entries[0].DisplayID)
}

func TestBuild_DesempatePorArquivo(t *testing.T) {
	reg := testRegistry(t)
	rules := []model.Rule{
		rule("rules/security-b.md", "Same Title", "security", "segundo"),
		rule("rules/security-a.md", "same title", "security", "primeiro"),
	}

	blocks, err := Build(rules, reg)
	require.NoError(t, err)
	entries := blocks[0].Entries
	require.Len(t, entries, 2)
	assert.Equal(t, "rules/security-a.md", entries[0].Rule.File)
	assert.Equal(t, "rules/security-b.md", entries[1].Rule.File)
}

func TestBuild_SecaoDesconhecida(t *testing.T) {
	reg := testRegistry(t)
	rules := []model.Rule{
		rule("rules/x-rule.md", "Orphan Rule", "nonexistent", "B"),
	}

	_, err := Build(rules, reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent")
	assert.Contains(t, err.Error(), "Orphan Rule")
	assert.Contains(t, err.Error(), "rules/x-rule.md")
}

func TestCompile_Determinismo(t *testing.T) {
	reg := testRegistry(t)
	rules := []model.Rule{
		rule("rules/security-validate.md", "Validate All Inputs", "security", "Corpo V.\n"),
		rule("rules/security-helmet.md", "Use Helmet Middleware", "3", "Corpo H.\n"),
		rule("rules/performance-cache.md", "Cache Expensive Queries", "performance", "Corpo C.\n"),
	}

	first, err := Compile(rules, reg)
	require.NoError(t, err)
	second, err := Compile(rules, reg)
	require.NoError(t, err)
	assert.Equal(t, first, second, "mesma entrada deve produzir bytes idênticos")
}

func TestCompile_Render(t *testing.T) {
	reg := testRegistry(t)
	rules := []model.Rule{
		rule("rules/security-validate.md", "Validate All Inputs", "security", "Corpo V.\n"),
		rule("rules/security-helmet.md", "Use Helmet Middleware", "security", "Corpo H.\n"),
	}

	doc, err := Compile(rules, reg)
	require.NoError(t, err)

	// toda regra válida aparece exatamente uma vez
	assert.Equal(t, 1, strings.Count(doc, "## 3.1 Use Helmet Middleware"))
	assert.Equal(t, 1, strings.Count(doc, "## 3.2 Validate All Inputs"))
	assert.Equal(t, 1, strings.Count(doc, "Corpo H."))
	assert.Equal(t, 1, strings.Count(doc, "Corpo V."))

	// índice com rótulo de impacto e âncoras
	assert.Contains(t, doc, "### 3. Security (Impact: CRITICAL)")
	assert.Contains(t, doc, "[3.1 Use Helmet Middleware](#31-use-helmet-middleware)")

	// seção sem regras continua listada no índice
	assert.Contains(t, doc, "### 6. Performance (Impact: MEDIUM)")

	// índice vem antes dos corpos
	assert.Less(t, strings.Index(doc, "## Table of Contents"), strings.Index(doc, "Corpo H."))
}

func TestAnchor(t *testing.T) {
	assert.Equal(t, "31-use-helmet-middleware", anchor("3.1", "Use Helmet Middleware"))
	assert.Equal(t, "12-avoid-n1-queries", anchor("1.2", "Avoid N+1 Queries"))
}
