package pkgmgr

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Commander 抽象外部命令执行，测试时注入假实现
type Commander interface {
	LookPath(name string) (string, error)
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// SystemCommander 真实执行命令
type SystemCommander struct{}

func (SystemCommander) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (SystemCommander) Run(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	return string(out), err
}

// Manager 一个可用的包管理器及其 aichat 包信息
type Manager struct {
	Name      string   // 如 "brew"、"winget"
	PackageID string   // aichat 在该管理器下的包名
	installFn func(id string) []string
}

// 探测顺序固定，取第一个在 PATH 里找到的
var known = []Manager{
	{Name: "brew", PackageID: "aichat", installFn: func(id string) []string {
		return []string{"install", id}
	}},
	{Name: "winget", PackageID: "sigoden.aichat", installFn: func(id string) []string {
		return []string{"install", "--id", id, "--silent", "--accept-package-agreements"}
	}},
	{Name: "scoop", PackageID: "aichat", installFn: func(id string) []string {
		return []string{"install", id}
	}},
	{Name: "pacman", PackageID: "aichat", installFn: func(id string) []string {
		return []string{"-S", "--noconfirm", id}
	}},
	{Name: "dnf", PackageID: "aichat", installFn: func(id string) []string {
		return []string{"install", "-y", id}
	}},
	{Name: "apt-get", PackageID: "aichat", installFn: func(id string) []string {
		return []string{"install", "-y", id}
	}},
}

// Detect 探测当前系统可用的包管理器
func Detect(cmder Commander) (Manager, error) {
	for _, m := range known {
		if _, err := cmder.LookPath(m.Name); err == nil {
			return m, nil
		}
	}
	return Manager{}, fmt.Errorf("未找到可用的包管理器（支持: brew/winget/scoop/pacman/dnf/apt-get）")
}

// InstallArgs 返回安装 aichat 的命令参数
func (m Manager) InstallArgs() []string {
	return m.installFn(m.PackageID)
}

// Install 调用包管理器安装 aichat。失败视为致命错误，
// 由编排器中止整个安装流程。
func (m Manager) Install(ctx context.Context, cmder Commander) error {
	out, err := cmder.Run(ctx, m.Name, m.InstallArgs()...)
	if err != nil {
		return fmt.Errorf("包管理器安装失败: %w\n%s", err, strings.TrimSpace(out))
	}
	return nil
}

// InstalledVersion 查询已安装的 aichat 版本，未安装时返回空串。
// 输出形如 "aichat 0.30.0"。
func InstalledVersion(ctx context.Context, cmder Commander) string {
	if _, err := cmder.LookPath("aichat"); err != nil {
		return ""
	}
	out, err := cmder.Run(ctx, "aichat", "--version")
	if err != nil {
		return ""
	}
	return ParseVersion(out)
}

// ParseVersion 从 "aichat X.Y.Z" 形式的输出里取版本号
func ParseVersion(out string) string {
	fields := strings.Fields(strings.TrimSpace(out))
	if len(fields) >= 2 && fields[0] == "aichat" {
		return fields[1]
	}
	if len(fields) == 1 {
		return fields[0]
	}
	return ""
}
