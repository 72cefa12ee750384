package sarif

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xirothedev/agent-skills-sub000/internal/model"
	"github.com/xirothedev/agent-skills-sub000/internal/store"
)

type Log struct {
	Version string `json:"version"`
	Schema  string `json:"$schema"`
	Runs    []Run  `json:"runs"`
}

type Run struct {
	Tool    Tool     `json:"tool"`
	Results []Result `json:"results"`
}

type Tool struct {
	Driver Driver `json:"driver"`
}

type Driver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type Result struct {
	RuleID    string     `json:"ruleId"`
	Message   Message    `json:"message"`
	Level     string     `json:"level"` // error, warning, note
	Locations []Location `json:"locations"`
}

type Message struct {
	Text string `json:"text"`
}

type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           Region           `json:"region"`
}

type ArtifactLocation struct {
	URI string `json:"uri"`
}

type Region struct {
	StartLine int `json:"startLine"`
}

// Export recebe os defeitos do relatório de validação e gera um
// arquivo .sarif 2.1.0 (útil para anotação em CI).
func Export(fs store.FileStore, defects []model.Defect, outPath, toolName, toolVersion string) error {
	SortDefects(defects)

	results := make([]Result, 0, len(defects))
	for _, d := range defects {
		fileURI := toURI(d.File)
		if strings.TrimSpace(fileURI) == "" {
			fileURI = "UNKNOWN"
		}

		results = append(results, Result{
			RuleID: "metadata/" + d.Field,
			Level:  defectLevel(d),
			Message: Message{
				Text: strings.TrimSpace(d.Problem),
			},
			Locations: []Location{
				{
					PhysicalLocation: PhysicalLocation{
						ArtifactLocation: ArtifactLocation{
							URI: fileURI,
						},
						Region: Region{
							// defeito de metadado aponta para o frontmatter
							StartLine: 1,
						},
					},
				},
			},
		})
	}

	log := Log{
		Version: "2.1.0",
		// schema RTM reconhecido por GitHub/VSCode
		Schema: "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json",
		Runs: []Run{
			{
				Tool: Tool{
					Driver: Driver{
						Name:    toolName,
						Version: toolVersion,
					},
				},
				Results: results,
			},
		},
	}

	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sarif: %w", err)
	}
	if err := fs.WriteFile(outPath, data); err != nil {
		return fmt.Errorf("escrever sarif: %w", err)
	}
	return nil
}

// SortDefects ordena o relatório para saída determinística.
func SortDefects(ds []model.Defect) {
	sort.Slice(ds, func(i, j int) bool {
		if ds[i].File == ds[j].File {
			if ds[i].Field == ds[j].Field {
				return ds[i].Problem < ds[j].Problem
			}
			return ds[i].Field < ds[j].Field
		}
		return ds[i].File < ds[j].File
	})
}

func defectLevel(d model.Defect) string {
	if d.Warning {
		return "warning"
	}
	return "error"
}

func toURI(p string) string {
	p = strings.TrimSpace(p)
	p = filepath.ToSlash(p)
	for strings.HasPrefix(p, "../") {
		p = strings.TrimPrefix(p, "../")
	}
	return strings.TrimPrefix(p, "./")
}
