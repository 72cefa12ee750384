package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xirothedev/agent-skills-sub000/internal/logging"
	"github.com/xirothedev/agent-skills-sub000/internal/model"
	"github.com/xirothedev/agent-skills-sub000/internal/sarif"
	"github.com/xirothedev/agent-skills-sub000/internal/store"
	"github.com/xirothedev/agent-skills-sub000/internal/validator"
)

var validateRulesDir string
var validateSectionsPath string
var validateOutput string
var validateReportPath string
var strictMode bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Valida os metadados de todos os arquivos de regras",
	Run: func(cmd *cobra.Command, args []string) {
		logger, err := logging.New(debugMode)
		if err != nil {
			fmt.Println("Erro ao iniciar logger:", err)
			os.Exit(1)
		}
		defer logger.Sync()

		fs := store.Disk{}

		reg, rules, parseDefects, err := loadInputs(fs, validateSectionsPath, validateRulesDir)
		if err != nil {
			logger.Errorw("Erro ao carregar entradas", "erro", err)
			os.Exit(1)
		}

		// acumula todos os defeitos de todos os arquivos; nunca para no primeiro
		defects := validator.Validate(rules, parseDefects, reg)

		switch strings.ToLower(validateOutput) {
		case "json":
			encoded, err := json.MarshalIndent(defects, "", "  ")
			if err != nil {
				logger.Errorw("Erro ao gerar JSON", "erro", err)
				os.Exit(1)
			}
			fmt.Println(string(encoded))

		case "sarif":
			if err := sarif.Export(fs, defects, validateReportPath, "agents-validate", version); err != nil {
				logger.Errorw("Erro ao gerar SARIF", "erro", err)
				os.Exit(1)
			}
			logger.Infow("Relatório salvo com sucesso", "arquivo", validateReportPath)

		default:
			for _, d := range defects {
				fmt.Println(d)
			}
			errs, warns := countDefects(defects)
			if len(defects) == 0 {
				logger.Infof("✅ %d regra(s) validada(s), nenhum defeito", len(rules))
			} else {
				logger.Infof("%d regra(s) validada(s): %d erro(s), %d aviso(s)", len(rules), errs, warns)
			}
		}

		if model.HasErrors(defects) || (strictMode && len(defects) > 0) {
			os.Exit(1)
		}
	},
}

func countDefects(defects []model.Defect) (errs, warns int) {
	for _, d := range defects {
		if d.Warning {
			warns++
		} else {
			errs++
		}
	}
	return errs, warns
}

func init() {
	validateCmd.Flags().StringVarP(&validateRulesDir, "rules", "r", "rules", "Diretório com os arquivos de regras")
	validateCmd.Flags().StringVarP(&validateSectionsPath, "sections", "s", "rules/_sections.md", "Documento de metadados das seções")
	validateCmd.Flags().StringVarP(&validateOutput, "output", "o", "", "Formato da saída (text, json, sarif)")
	validateCmd.Flags().StringVar(&validateReportPath, "report", ".agents/validate.sarif", "Arquivo de destino do relatório SARIF")
	validateCmd.Flags().BoolVar(&strictMode, "strict", false, "Trata avisos como erros no código de saída")
	rootCmd.AddCommand(validateCmd)
}
