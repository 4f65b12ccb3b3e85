package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YangQing-Lin/aichat-setup-cli/internal/settings"
)

var langCmd = &cobra.Command{
	Use:   "lang [zh|en]",
	Short: "查看或设置显示语言",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := resolvePaths()
		if err != nil {
			return fmt.Errorf("解析路径失败: %w", err)
		}

		manager, err := settings.NewManager(paths.SettingsFile())
		if err != nil {
			return err
		}

		if len(args) == 0 {
			fmt.Printf("当前语言: %s\n", manager.GetLanguage())
			return nil
		}

		if err := manager.SetLanguage(args[0]); err != nil {
			return err
		}
		fmt.Printf("✓ 语言已设置为: %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(langCmd)
}
