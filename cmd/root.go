package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/YangQing-Lin/aichat-setup-cli/internal/i18n"
	"github.com/YangQing-Lin/aichat-setup-cli/internal/settings"
)

var rootCmd = &cobra.Command{
	Use:   "aichat-setup",
	Short: "aichat 安装与配置工具",
	Long: `aichat-setup 是一个用于安装和配置 aichat 命令行聊天工具的工具。

使用方法：
  aichat-setup               查看当前安装状态
  aichat-setup install       安装 aichat 并配置 shell 集成
  aichat-setup role          重新生成 local role 文档
  aichat-setup uninstall     移除 shell 集成`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLanguage()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseDir, "dir", "", "自定义根目录（默认使用系统约定路径）")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "输出调试日志")

	// 自定义帮助模板
	rootCmd.SetHelpTemplate(`{{.Long}}

{{if .HasAvailableSubCommands}}可用命令:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}

{{if .HasAvailableLocalFlags}}选项:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}

使用 "{{.CommandPath}} [command] --help" 获取更多关于命令的信息。
`)
}

// initLanguage 按设置文件切换显示语言，失败时保持默认中文
func initLanguage() {
	paths, err := resolvePaths()
	if err != nil {
		return
	}
	manager, err := settings.NewManager(paths.SettingsFile())
	if err != nil {
		return
	}
	i18n.SetLanguage(manager.GetLanguage())
}
