package cmd

import (
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "agents",
	Short: "agents - Compilador e validador de regras NestJS (AGENTS.md)",
}

var debugMode bool

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Habilita logs em nível debug")
}
