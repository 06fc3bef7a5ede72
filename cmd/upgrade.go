package cmd

import (
	"context"
	"fmt"
	"os"

	internalApp "github.com/haierkeys/fast-note-service/internal/app"
	"github.com/haierkeys/fast-note-service/internal/dao"
	"github.com/haierkeys/fast-note-service/internal/upgrade"
	"github.com/haierkeys/fast-note-service/pkg/logger"

	"github.com/spf13/cobra"
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade database schema and data to the latest version",
	Long: `Upgrade database schema and data to the latest version.

This command creates missing tables, then applies every migration recorded
after the last applied entry of the schema_version table.
It is safe to run this command multiple times - already applied migrations will be skipped.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 加载配置
		configPath, _ := cmd.Flags().GetString("config")
		if len(configPath) <= 0 {
			configPath = "config/config.yaml"
		}

		appConfig, configRealpath, err := internalApp.LoadConfig(configPath)
		if err != nil {
			fmt.Printf("Failed to load config: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Loading config from: %s\n", configRealpath)

		// 初始化日志
		lg, err := logger.NewLogger(logger.Config{
			Level:      appConfig.Log.Level,
			File:       appConfig.Log.File,
			Production: appConfig.Log.Production,
		})
		if err != nil {
			fmt.Printf("Failed to init logger: %v\n", err)
			os.Exit(1)
		}
		defer lg.Sync()

		if err := initStorageWithConfig(appConfig); err != nil {
			fmt.Printf("Failed to create storage directories: %v\n", err)
			os.Exit(1)
		}

		db, err := dao.NewDBEngineWithConfig(appConfig.GetDatabaseConfig(), lg)
		if err != nil {
			fmt.Printf("Failed to init database: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Starting database upgrade...")

		if err := upgrade.Execute(context.Background(), db, lg, internalApp.Version); err != nil {
			fmt.Printf("Upgrade failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Database upgrade completed successfully!")
	},
}

func init() {
	rootCmd.AddCommand(upgradeCmd)
	upgradeCmd.Flags().StringP("config", "c", "", "config file path")
}
