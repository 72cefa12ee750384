package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xirothedev/agent-skills-sub000/internal/compiler"
	"github.com/xirothedev/agent-skills-sub000/internal/logging"
	"github.com/xirothedev/agent-skills-sub000/internal/model"
	"github.com/xirothedev/agent-skills-sub000/internal/store"
	"github.com/xirothedev/agent-skills-sub000/internal/validator"
)

var buildRulesDir string
var buildSectionsPath string
var buildOutPath string
var watchMode bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compila os arquivos de regras em um único AGENTS.md",
	Run: func(cmd *cobra.Command, args []string) {
		logger, err := logging.New(debugMode)
		if err != nil {
			fmt.Println("Erro ao iniciar logger:", err)
			os.Exit(1)
		}
		defer logger.Sync()

		fs := store.Disk{}

		if err := runBuild(fs, logger); err != nil {
			logger.Errorw("Erro na compilação", "erro", err)
			if !watchMode {
				os.Exit(1)
			}
		}

		if watchMode {
			if err := watchAndRebuild(fs, logger); err != nil {
				logger.Errorw("Erro no modo watch", "erro", err)
				os.Exit(1)
			}
		}
	},
}

// runBuild é tudo-ou-nada: qualquer falha de parse, defeito de metadado
// ou referência de seção inválida aborta sem escrever o documento.
func runBuild(fs store.FileStore, logger *zap.SugaredLogger) error {
	logger.Infof("Compilando regras de %s (seções: %s)", buildRulesDir, buildSectionsPath)

	reg, rules, parseDefects, err := loadInputs(fs, buildSectionsPath, buildRulesDir)
	if err != nil {
		return err
	}

	defects := validator.Validate(rules, parseDefects, reg)
	for _, d := range defects {
		if d.Warning {
			logger.Warnf("%s", d)
		} else {
			logger.Errorf("%s", d)
		}
	}
	if model.HasErrors(defects) {
		return fmt.Errorf("compilação abortada: regras com metadados inválidos")
	}

	doc, err := compiler.Compile(rules, reg)
	if err != nil {
		return err
	}
	if err := fs.WriteFile(buildOutPath, []byte(doc)); err != nil {
		return fmt.Errorf("escrever documento compilado: %w", err)
	}

	logger.Infow("Documento compilado com sucesso",
		"regras", len(rules), "seções", len(reg.Sections()), "arquivo", buildOutPath)
	return nil
}

// watchAndRebuild recompila a cada mudança nos arquivos de regra ou no
// documento de seções. Eventos em rajada são agrupados num pequeno
// debounce antes de recompilar.
func watchAndRebuild(fs store.FileStore, logger *zap.SugaredLogger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("criar watcher: %w", err)
	}
	defer watcher.Close()

	err = filepath.WalkDir(filepath.FromSlash(buildRulesDir), func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("observar diretório de regras: %w", err)
	}
	if err := watcher.Add(filepath.Dir(filepath.FromSlash(buildSectionsPath))); err != nil {
		return fmt.Errorf("observar documento de seções: %w", err)
	}

	logger.Infof("Modo watch ativo; aguardando mudanças em %s", buildRulesDir)

	const debounce = 300 * time.Millisecond
	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(ev) {
				continue
			}
			logger.Debugf("Mudança detectada: %s", ev)
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerCh = timer.C
			} else {
				timer.Reset(debounce)
			}

		case <-timerCh:
			timer = nil
			timerCh = nil
			if err := runBuild(fs, logger); err != nil {
				// em watch o erro não derruba o processo; o autor corrige e salva de novo
				logger.Errorw("Erro na recompilação", "erro", err)
			}

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Errorw("Erro do watcher", "erro", werr)
		}
	}
}

func relevantEvent(ev fsnotify.Event) bool {
	if filepath.Ext(ev.Name) != ".md" {
		return false
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) ||
		ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename)
}

func init() {
	buildCmd.Flags().StringVarP(&buildRulesDir, "rules", "r", "rules", "Diretório com os arquivos de regras")
	buildCmd.Flags().StringVarP(&buildSectionsPath, "sections", "s", "rules/_sections.md", "Documento de metadados das seções")
	buildCmd.Flags().StringVarP(&buildOutPath, "out", "o", "AGENTS.md", "Arquivo de saída compilado")
	buildCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Recompila a cada mudança nos arquivos de regra")
	rootCmd.AddCommand(buildCmd)
}
