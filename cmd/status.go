package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/YangQing-Lin/aichat-setup-cli/internal/pkgmgr"
	"github.com/YangQing-Lin/aichat-setup-cli/internal/profile"
	"github.com/YangQing-Lin/aichat-setup-cli/internal/shell"
	"github.com/YangQing-Lin/aichat-setup-cli/internal/utils"
)

// runStatus 根命令的默认行为：一屏看清装没装、配没配
func runStatus() error {
	ctx := context.Background()
	cmder := pkgmgr.SystemCommander{}

	paths, err := resolvePaths()
	if err != nil {
		return fmt.Errorf("解析路径失败: %w", err)
	}

	fmt.Println("aichat 安装状态:")
	fmt.Println("─────────────")

	if v := pkgmgr.InstalledVersion(ctx, cmder); v != "" {
		fmt.Printf("● aichat %s\n", v)
	} else {
		fmt.Println("○ aichat 未安装")
	}

	statusLine("配置文件", utils.FileExists(paths.ConfigFile()), paths.ConfigFile())
	statusLine("role 文档", utils.FileExists(paths.RoleFile()), paths.RoleFile())

	sh := shell.Detect(ctx, paths.Home, cmder)
	if sh.ProfilePath != "" {
		content := ""
		if data, err := os.ReadFile(sh.ProfilePath); err == nil {
			content = string(data)
		}
		for _, tag := range []string{shell.TagKeybinding, shell.TagCompletion, shell.TagWrapper} {
			statusLine(fmt.Sprintf("%s 块 (%s)", tag, sh.Name), profile.Contains(content, tag), "")
		}
	}

	fmt.Println()
	fmt.Println("使用 'aichat-setup install' 安装，'aichat-setup check' 查看详情")
	return nil
}

func statusLine(name string, ok bool, detail string) {
	mark := "○"
	if ok {
		mark = "●"
	}
	if detail != "" && ok {
		fmt.Printf("%s %s  %s\n", mark, name, detail)
	} else {
		fmt.Printf("%s %s\n", mark, name)
	}
}
