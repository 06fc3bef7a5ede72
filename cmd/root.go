package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// configDefault 内嵌的默认配置，首次运行时写入 config/config.yaml
var configDefault string

var rootCmd = &cobra.Command{
	Use:   "fast-note-service",
	Short: "Fast Note Service",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.HelpTemplate()
		cmd.Help()
	},
}

func Execute(c string) {
	configDefault = c
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
