package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YangQing-Lin/aichat-setup-cli/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "显示版本信息",
	Long:  `显示 aichat-setup 的版本信息`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("aichat-setup 版本: %s\n", version.GetVersion())

		if version.GetBuildDate() != "unknown" {
			fmt.Printf("构建日期: %s\n", version.GetBuildDate())
		}

		if version.GetGitCommit() != "unknown" {
			fmt.Printf("Git 提交: %s\n", version.GetGitCommit())
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
