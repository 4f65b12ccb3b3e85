package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/YangQing-Lin/aichat-setup-cli/internal/pkgmgr"
	"github.com/YangQing-Lin/aichat-setup-cli/internal/profile"
	"github.com/YangQing-Lin/aichat-setup-cli/internal/shell"
	"github.com/YangQing-Lin/aichat-setup-cli/internal/utils"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "检查系统环境和安装状态",
	Long: `检查系统环境和安装状态，包括：
- aichat 二进制和版本
- 包管理器可用性
- 配置文件和 role 文档状态
- shell 启动文件里的集成块`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck()
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck() error {
	ctx := context.Background()
	cmder := pkgmgr.SystemCommander{}

	fmt.Println("系统环境检查")
	fmt.Println("============")
	fmt.Println()

	// 系统信息
	fmt.Printf("操作系统: %s\n", runtime.GOOS)
	fmt.Printf("架构: %s\n", runtime.GOARCH)
	homeDir, _ := os.UserHomeDir()
	fmt.Printf("用户目录: %s\n", homeDir)
	fmt.Println()

	// aichat 与包管理器
	fmt.Println("aichat 状态")
	fmt.Println("-----------")
	if v := pkgmgr.InstalledVersion(ctx, cmder); v != "" {
		fmt.Printf("✓ aichat 已安装: %s\n", v)
	} else {
		fmt.Println("✗ aichat 未安装")
	}
	if mgr, err := pkgmgr.Detect(cmder); err == nil {
		fmt.Printf("✓ 包管理器: %s (包名 %s)\n", mgr.Name, mgr.PackageID)
	} else {
		fmt.Printf("✗ %v\n", err)
	}
	fmt.Println()

	// 配置文件
	paths, err := resolvePaths()
	if err != nil {
		return fmt.Errorf("解析路径失败: %w", err)
	}

	fmt.Println("配置文件状态")
	fmt.Println("------------")
	checkFile("aichat 配置", paths.ConfigFile())
	checkFile("local role 文档", paths.RoleFile())
	checkFile("aichat-setup 设置", paths.SettingsFile())
	fmt.Println()

	// shell 集成块
	fmt.Println("shell 集成状态")
	fmt.Println("--------------")
	sh := shell.Detect(ctx, paths.Home, cmder)
	fmt.Printf("shell: %s (%s)\n", sh.Name, sh.Version)
	if sh.ProfilePath == "" {
		fmt.Println("✗ 未识别的 shell，无法检查启动文件")
		return nil
	}
	fmt.Printf("启动文件: %s\n", sh.ProfilePath)

	content := ""
	if data, err := os.ReadFile(sh.ProfilePath); err == nil {
		content = string(data)
	}
	for _, tag := range []string{shell.TagKeybinding, shell.TagCompletion, shell.TagWrapper} {
		if profile.Contains(content, tag) {
			fmt.Printf("✓ 块已安装: %s\n", tag)
		} else {
			fmt.Printf("✗ 块未安装: %s\n", tag)
		}
	}
	fmt.Println()

	// 环境建议
	fmt.Println("环境建议")
	fmt.Println("--------")
	if !utils.FileExists(paths.ConfigFile()) {
		fmt.Println("• 运行 'aichat-setup install' 完成安装和配置")
	}

	return nil
}

func checkFile(name string, path string) {
	if utils.FileExists(path) {
		info, err := os.Stat(path)
		if err == nil {
			fmt.Printf("✓ %s: %s (%.1f KB)\n", name, path, float64(info.Size())/1024)
		} else {
			fmt.Printf("✓ %s: %s (无法获取大小)\n", name, path)
		}
	} else {
		fmt.Printf("✗ %s: 不存在\n", name)
	}
}
