package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YangQing-Lin/aichat-setup-cli/internal/i18n"
	"github.com/YangQing-Lin/aichat-setup-cli/internal/inventory"
	"github.com/YangQing-Lin/aichat-setup-cli/internal/logging"
	"github.com/YangQing-Lin/aichat-setup-cli/internal/pkgmgr"
	"github.com/YangQing-Lin/aichat-setup-cli/internal/role"
)

var roleCmd = &cobra.Command{
	Use:   "role",
	Short: "重新生成 local role 文档",
	Long: `重新采集系统信息并整体覆盖 local role 文档。

文档内容包括 CPU、GPU、内存、磁盘、网络、操作系统等实时信息，
aichat 以 "local" role 的形式使用它。每次运行都是全量重新生成，
不与旧内容合并。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRole()
	},
}

func init() {
	rootCmd.AddCommand(roleCmd)
}

func runRole() error {
	paths, err := resolvePaths()
	if err != nil {
		return fmt.Errorf("解析路径失败: %w", err)
	}

	ctx := context.Background()
	logger := logging.New(verbose, paths.LogFile())

	pkgName := ""
	if mgr, err := pkgmgr.Detect(pkgmgr.SystemCommander{}); err == nil {
		pkgName = mgr.Name
	}

	inv := inventory.NewCollector(logger).Collect(ctx, pkgName)
	if err := role.Write(paths.RoleFile(), inv); err != nil {
		return fmt.Errorf("生成 role 文档失败: %w", err)
	}

	fmt.Printf("✓ %s: %s\n", i18n.T("role.regenerated"), paths.RoleFile())
	return nil
}
