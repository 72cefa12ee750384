package parser

import (
	"errors"
	"testing"
)

func TestParseRule(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{
			"regra_completa",
			"---\ntitle: Use Guards\nimpact: HIGH\nsection: security\n---\nBody here.\n",
			false,
		},
		{
			"sem_frontmatter",
			"# Just a heading\n\nNo metadata at all.\n",
			true,
		},
		{
			"frontmatter_sem_fechamento",
			"---\ntitle: Broken\nsection: security\n\nBody without closing delimiter.\n",
			true,
		},
		{
			"yaml_invalido",
			"---\ntitle: [unclosed\n---\nBody.\n",
			true,
		},
		{
			"arquivo_vazio",
			"",
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRule("rules/security-test.md", []byte(tt.content))
			if (err != nil) != tt.wantErr {
				t.Errorf("esperado erro=%v, obtido %v", tt.wantErr, err)
			}
			if err != nil {
				var perr *ParseError
				if !errors.As(err, &perr) {
					t.Errorf("esperado *ParseError, obtido %T", err)
				} else if perr.File != "rules/security-test.md" {
					t.Errorf("esperado arquivo no erro, obtido %q", perr.File)
				}
			}
		})
	}
}

func TestParseRule_Campos(t *testing.T) {
	content := "---\n" +
		"title: Validate All Inputs\n" +
		"impact: CRITICAL\n" +
		"section: 3\n" +
		"impactDescription: Prevents injection attacks\n" +
		"tags:\n  - security\n  - dto\n" +
		"custom_key: anything\n" +
		"---\n" +
		"Use `class-validator` on every DTO.\n"

	rule, err := ParseRule("rules/security-validate.md", []byte(content))
	if err != nil {
		t.Fatal(err)
	}

	if rule.Title != "Validate All Inputs" {
		t.Errorf("title: obtido %q", rule.Title)
	}
	if rule.Impact != "CRITICAL" {
		t.Errorf("impact: obtido %q", rule.Impact)
	}
	// section numérica é normalizada para string
	if rule.Section != "3" {
		t.Errorf("section: obtido %q", rule.Section)
	}
	if rule.ImpactDescription != "Prevents injection attacks" {
		t.Errorf("impactDescription: obtido %q", rule.ImpactDescription)
	}
	if len(rule.Tags) != 2 || rule.Tags[0] != "security" || rule.Tags[1] != "dto" {
		t.Errorf("tags: obtido %v", rule.Tags)
	}
	if _, ok := rule.Extra["custom_key"]; !ok {
		t.Errorf("esperado custom_key em Extra, obtido %v", rule.Extra)
	}
	if rule.Body != "Use `class-validator` on every DTO.\n" {
		t.Errorf("body: obtido %q", rule.Body)
	}
}

func TestParseRule_TagsComoString(t *testing.T) {
	content := "---\ntitle: T\nsection: database\ntags: prisma, migrations\n---\nBody.\n"
	rule, err := ParseRule("rules/database-t.md", []byte(content))
	if err != nil {
		t.Fatal(err)
	}
	if len(rule.Tags) != 2 || rule.Tags[0] != "prisma" || rule.Tags[1] != "migrations" {
		t.Errorf("esperado tags [prisma migrations], obtido %v", rule.Tags)
	}
}
