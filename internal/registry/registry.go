package registry

import (
	"bufio"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/xirothedev/agent-skills-sub000/internal/model"
)

// Registry é o conjunto imutável de seções carregado do documento de
// metadados. Construído uma vez por execução e passado por referência
// ao compilador e ao validador; nunca um singleton de pacote.
type Registry struct {
	ordered  []model.Section
	byID     map[string]int
	byNumber map[int]int
}

// headingRe casa "## <número>. <nome>".
var headingRe = regexp.MustCompile(`^##\s+(\d+)\.\s+(.+?)\s*$`)

// Load parseia o documento de metadados de seções: um heading por
// seção seguido de linhas rotuladas Id:, Impact: e Description:.
// Qualquer inconsistência (número ou id duplicado, impacto fora da
// enumeração, campo obrigatório ausente) é erro fatal de configuração;
// nunca se trabalha com um registro parcial.
func Load(content []byte) (*Registry, error) {
	reg := &Registry{
		byID:     map[string]int{},
		byNumber: map[int]int{},
	}

	var cur *model.Section
	var curImpactRaw string

	flush := func() error {
		if cur == nil {
			return nil
		}
		if cur.ID == "" {
			return fmt.Errorf("seção %d (%s): linha Id: ausente", cur.Number, cur.Name)
		}
		impact, ok := model.ParseImpact(curImpactRaw)
		if !ok {
			return fmt.Errorf("seção %d (%s): impacto inválido %q", cur.Number, cur.Name, curImpactRaw)
		}
		cur.Impact = impact
		if prev, dup := reg.byNumber[cur.Number]; dup {
			return fmt.Errorf("número de seção duplicado %d: %q e %q",
				cur.Number, reg.ordered[prev].Name, cur.Name)
		}
		if prev, dup := reg.byID[cur.ID]; dup {
			return fmt.Errorf("id de seção duplicado %q: %q e %q",
				cur.ID, reg.ordered[prev].Name, cur.Name)
		}
		reg.byNumber[cur.Number] = len(reg.ordered)
		reg.byID[cur.ID] = len(reg.ordered)
		reg.ordered = append(reg.ordered, *cur)
		return nil
	}

	scanner := bufio.NewScanner(strings.NewReader(string(content)))
	for scanner.Scan() {
		line := scanner.Text()
		if m := headingRe.FindStringSubmatch(line); m != nil {
			if err := flush(); err != nil {
				return nil, err
			}
			num, _ := strconv.Atoi(m[1])
			cur = &model.Section{Number: num, Name: m[2]}
			curImpactRaw = ""
			continue
		}
		if cur == nil {
			continue
		}
		label, value, ok := labeledLine(line)
		if !ok {
			continue
		}
		switch label {
		case "id":
			cur.ID = strings.ToLower(value)
		case "impact":
			curImpactRaw = value
		case "description":
			cur.Description = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ler documento de seções: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(reg.ordered) == 0 {
		return nil, fmt.Errorf("documento de seções não contém nenhuma seção")
	}

	// Mantém a ordem de exibição por número, não pela ordem do documento.
	sortSections(reg)
	return reg, nil
}

func sortSections(reg *Registry) {
	sort.Slice(reg.ordered, func(i, j int) bool {
		return reg.ordered[i].Number < reg.ordered[j].Number
	})
	for idx, s := range reg.ordered {
		reg.byNumber[s.Number] = idx
		reg.byID[s.ID] = idx
	}
}

// labeledLine extrai rótulo e valor de linhas como "Impact: HIGH",
// tolerando decoração markdown ("- **Impact:** HIGH").
func labeledLine(line string) (label, value string, ok bool) {
	s := strings.TrimSpace(line)
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimPrefix(s, "*")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "**", "")

	idx := strings.Index(s, ":")
	if idx <= 0 {
		return "", "", false
	}
	label = strings.ToLower(strings.TrimSpace(s[:idx]))
	value = strings.TrimSpace(s[idx+1:])
	switch label {
	case "id", "impact", "description":
		return label, value, true
	}
	return "", "", false
}

// Resolve aceita a chave de seção de uma regra: id ("security") ou
// número de exibição ("3").
func (r *Registry) Resolve(key string) (model.Section, bool) {
	k := strings.ToLower(strings.TrimSpace(key))
	if idx, ok := r.byID[k]; ok {
		return r.ordered[idx], true
	}
	if num, err := strconv.Atoi(k); err == nil {
		if idx, ok := r.byNumber[num]; ok {
			return r.ordered[idx], true
		}
	}
	return model.Section{}, false
}

// Sections retorna as seções em ordem de exibição.
func (r *Registry) Sections() []model.Section {
	out := make([]model.Section, len(r.ordered))
	copy(out, r.ordered)
	return out
}
