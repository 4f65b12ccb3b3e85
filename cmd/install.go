package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YangQing-Lin/aichat-setup-cli/internal/i18n"
	"github.com/YangQing-Lin/aichat-setup-cli/internal/installer"
	"github.com/YangQing-Lin/aichat-setup-cli/internal/plan"
)

var (
	installVersion string
	dryRun         bool
	jsonOutput     bool
	noWrapper      bool
	skipRole       bool
	assumeYes      bool
	forceReinstall bool
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "安装 aichat 并配置 shell 集成",
	Long: `安装 aichat 并完成全部配置：

  1. 通过系统包管理器安装 aichat 二进制
  2. 写入默认配置文件（已有配置不会被覆盖）
  3. 采集系统信息并生成 local role 文档
  4. 向 shell 启动文件写入键位绑定、补全和 wrapper 函数块

示例:
  aichat-setup install                    # 交互式安装
  aichat-setup install -y                 # 跳过全部确认
  aichat-setup install --dry-run          # 只预览，不执行
  aichat-setup install --dry-run --json   # 预览并输出 JSON 计划
  aichat-setup install --force            # 重装已存在的块

注意: --json 只在 --dry-run 下生效，单独使用时被忽略。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInstall()
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
	installCmd.Flags().StringVar(&installVersion, "version", "", "目标版本（默认最新）")
	installCmd.Flags().BoolVar(&dryRun, "dry-run", false, "只计算安装计划，不做任何修改")
	installCmd.Flags().BoolVar(&jsonOutput, "json", false, "预览模式下输出 JSON 计划")
	installCmd.Flags().BoolVar(&noWrapper, "no-wrapper", false, "不安装 wrapper 函数")
	installCmd.Flags().BoolVar(&skipRole, "skip-role", false, "不生成 role 文档")
	installCmd.Flags().BoolVarP(&assumeYes, "assume-yes", "y", false, "跳过全部确认提示")
	installCmd.Flags().BoolVarP(&forceReinstall, "force", "f", false, "无条件重装已存在的块")
}

func runInstall() error {
	ins, err := newInstaller()
	if err != nil {
		return fmt.Errorf("初始化安装器失败: %w", err)
	}

	opts := installer.Options{
		Flags: plan.Flags{
			TargetVersion: installVersion,
			DryRun:        dryRun,
			JSON:          jsonOutput,
			NoWrapper:     noWrapper,
			SkipRole:      skipRole,
			AssumeYes:     assumeYes,
		},
		Force: forceReinstall,
	}

	ctx := context.Background()

	if dryRun {
		p := ins.Plan(ctx, opts)
		if jsonOutput {
			out, err := p.RenderJSON()
			if err != nil {
				return err
			}
			fmt.Println(out)
		} else {
			fmt.Print(p.RenderText())
		}
		return nil
	}

	results, err := ins.Run(ctx, opts)
	printResults(results)

	if errors.Is(err, installer.ErrCancelled) {
		fmt.Println(i18n.T("install.cancelled"))
		return nil // 用户取消不算失败
	}
	if err != nil {
		return fmt.Errorf("%s: %w", i18n.T("install.fatal"), err)
	}

	fmt.Printf("\n✓ %s\n", i18n.T("install.done"))
	return nil
}

func printResults(results []installer.StepResult) {
	for _, r := range results {
		switch r.Status {
		case installer.StatusOK:
			fmt.Printf("✓ %s", r.Name)
		case installer.StatusSkipped:
			fmt.Printf("○ %s (%s)", r.Name, i18n.T("step.skipped"))
		case installer.StatusWarn:
			fmt.Printf("⚠ %s (%s: %v)", r.Name, i18n.T("step.warning"), r.Err)
		case installer.StatusFatal:
			fmt.Printf("✗ %s: %v", r.Name, r.Err)
		}
		if r.Detail != "" && r.Status != installer.StatusWarn {
			fmt.Printf("  [%s]", r.Detail)
		}
		fmt.Println()
	}
}
