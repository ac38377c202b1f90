package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "photopdf",
	Short: "A CLI tool for turning photo collections into paginated PDF documents",
	Long: `Photo PDF renders an ordered collection of photographs into a single
paginated PDF document. Each photo can be rotated in 90-degree steps and is
scaled to fit its page cell without distortion, one per page or in a grid.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
