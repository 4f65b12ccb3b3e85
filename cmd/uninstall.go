package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/YangQing-Lin/aichat-setup-cli/internal/i18n"
	"github.com/YangQing-Lin/aichat-setup-cli/internal/installer"
)

var uninstallYes bool

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "移除 shell 集成",
	Long: `从 shell 启动文件移除 aichat-setup 写入的全部块
（键位绑定、补全、wrapper 函数）。

只删除带哨兵标记的托管块，启动文件其他内容不受影响。
aichat 二进制和配置文件不会被删除。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUninstall()
	},
}

func init() {
	rootCmd.AddCommand(uninstallCmd)
	uninstallCmd.Flags().BoolVarP(&uninstallYes, "assume-yes", "y", false, "跳过确认提示")
}

func runUninstall() error {
	ins, err := newInstaller()
	if err != nil {
		return fmt.Errorf("初始化安装器失败: %w", err)
	}

	removed, err := ins.Uninstall(context.Background(), uninstallYes)
	if errors.Is(err, installer.ErrCancelled) {
		fmt.Println(i18n.T("install.cancelled"))
		return nil
	}
	if err != nil {
		return err
	}

	if len(removed) == 0 {
		fmt.Println(i18n.T("uninstall.nothing"))
		return nil
	}

	fmt.Printf("✓ %s: %s\n", i18n.T("uninstall.done"), strings.Join(removed, ", "))
	return nil
}
