package model

import "strings"

type Impact string

const (
	ImpactCritical   Impact = "CRITICAL"
	ImpactHigh       Impact = "HIGH"
	ImpactMediumHigh Impact = "MEDIUM-HIGH"
	ImpactMedium     Impact = "MEDIUM"
	ImpactLowMedium  Impact = "LOW-MEDIUM"
	ImpactLow        Impact = "LOW"
)

// Impacts lista os níveis aceitos, do mais alto para o mais baixo.
var Impacts = []Impact{
	ImpactCritical,
	ImpactHigh,
	ImpactMediumHigh,
	ImpactMedium,
	ImpactLowMedium,
	ImpactLow,
}

// ParseImpact normaliza e valida um rótulo de impacto vindo do frontmatter.
func ParseImpact(s string) (Impact, bool) {
	norm := Impact(strings.ToUpper(strings.TrimSpace(s)))
	for _, i := range Impacts {
		if norm == i {
			return i, true
		}
	}
	return "", false
}

// Rule é uma regra já parseada. Imutável após o parse.
type Rule struct {
	Title             string         // nome legível da regra
	Impact            string         // rótulo cru do frontmatter (validado depois)
	Section           string         // chave da seção (id ou número, normalizado p/ string)
	ImpactDescription string         // justificativa opcional
	Tags              []string       // tags opcionais
	Extra             map[string]any // chaves de frontmatter não reconhecidas
	Body              string         // corpo markdown, copiado verbatim na compilação
	File              string         // caminho do arquivo fonte (só p/ diagnóstico)
}

// Section é uma entrada do registro de seções (documento de metadados).
type Section struct {
	ID          string // chave curta usada como prefixo de nome de arquivo
	Number      int    // ordem de exibição no documento compilado
	Name        string
	Impact      Impact
	Description string
}

// Defect é um problema encontrado em um arquivo de regra.
type Defect struct {
	File    string `json:"file"`
	Field   string `json:"field"`
	Problem string `json:"problem"`
	Warning bool   `json:"warning"`
}

func (d Defect) String() string {
	level := "erro"
	if d.Warning {
		level = "aviso"
	}
	return level + ": " + d.File + " [" + d.Field + "] " + d.Problem
}

// HasErrors indica se há pelo menos um defeito não-aviso na lista.
func HasErrors(defects []Defect) bool {
	for _, d := range defects {
		if !d.Warning {
			return true
		}
	}
	return false
}
