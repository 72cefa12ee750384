package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xirothedev/agent-skills-sub000/internal/compiler"
	"github.com/xirothedev/agent-skills-sub000/internal/logging"
	"github.com/xirothedev/agent-skills-sub000/internal/store"
)

var listRulesDir string
var listSectionsPath string
var listOutput string

type sectionListing struct {
	Number int           `json:"number"`
	Name   string        `json:"name"`
	Impact string        `json:"impact"`
	Rules  []ruleListing `json:"rules"`
}

type ruleListing struct {
	DisplayID string `json:"displayId"`
	Title     string `json:"title"`
	File      string `json:"file"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lista as seções e regras na ordem do documento compilado",
	Run: func(cmd *cobra.Command, args []string) {
		logger, err := logging.New(debugMode)
		if err != nil {
			fmt.Println("Erro ao iniciar logger:", err)
			os.Exit(1)
		}
		defer logger.Sync()

		fs := store.Disk{}

		reg, rules, parseDefects, err := loadInputs(fs, listSectionsPath, listRulesDir)
		if err != nil {
			logger.Errorw("Erro ao carregar entradas", "erro", err)
			os.Exit(1)
		}
		for _, d := range parseDefects {
			logger.Warnf("%s", d)
		}

		blocks, err := compiler.Build(rules, reg)
		if err != nil {
			logger.Errorw("Erro ao agrupar regras", "erro", err)
			os.Exit(1)
		}

		listings := make([]sectionListing, 0, len(blocks))
		for _, blk := range blocks {
			sl := sectionListing{
				Number: blk.Section.Number,
				Name:   blk.Section.Name,
				Impact: string(blk.Section.Impact),
			}
			for _, e := range blk.Entries {
				sl.Rules = append(sl.Rules, ruleListing{
					DisplayID: e.DisplayID,
					Title:     e.Rule.Title,
					File:      e.Rule.File,
				})
			}
			listings = append(listings, sl)
		}

		switch strings.ToLower(listOutput) {
		case "json":
			encoded, err := json.MarshalIndent(listings, "", "  ")
			if err != nil {
				logger.Errorw("Erro ao gerar JSON", "erro", err)
				os.Exit(1)
			}
			fmt.Println(string(encoded))

		case "markdown":
			var builder strings.Builder
			builder.WriteString("## 📋 Índice de regras\n\n")
			for _, sl := range listings {
				builder.WriteString(fmt.Sprintf("### %d. %s (%d regra(s), Impact: %s)\n", sl.Number, sl.Name, len(sl.Rules), sl.Impact))
				for _, r := range sl.Rules {
					builder.WriteString(fmt.Sprintf("- %s %s\n", r.DisplayID, r.Title))
				}
				builder.WriteString("\n")
			}
			fmt.Println(builder.String())

		default:
			for _, sl := range listings {
				fmt.Printf("- %d. %s [%s]: %d regra(s)\n", sl.Number, sl.Name, sl.Impact, len(sl.Rules))
				for _, r := range sl.Rules {
					fmt.Printf("    • %s %s (%s)\n", r.DisplayID, r.Title, r.File)
				}
			}
		}
	},
}

func init() {
	listCmd.Flags().StringVarP(&listRulesDir, "rules", "r", "rules", "Diretório com os arquivos de regras")
	listCmd.Flags().StringVarP(&listSectionsPath, "sections", "s", "rules/_sections.md", "Documento de metadados das seções")
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "", "Formato da saída (table, json, markdown)")
	rootCmd.AddCommand(listCmd)
}
