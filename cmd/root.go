package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chordseq",
	Short: "Expands chord progressions into note sequences",
	Long: `chordseq expands a chord progression into a timed sequence of pitched notes
using arpeggio-style pattern templates.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(loadEnv)
}

func loadEnv() {
	// a missing .env is fine, plain environment variables still apply
	_ = godotenv.Load()
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
