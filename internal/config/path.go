package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths aichat 相关文件的落点。baseDir 非空时所有路径都挂在它下面
// （--dir 参数，测试和便携场景用），否则走系统约定目录。
type Paths struct {
	ConfigDir string // aichat 配置目录
	SetupDir  string // aichat-setup 自己的目录（设置、日志）
	Home      string // 用户主目录（shell 启动文件的落点）
}

// ResolvePaths 计算全部路径
func ResolvePaths(baseDir string) (Paths, error) {
	if baseDir != "" {
		return Paths{
			ConfigDir: filepath.Join(baseDir, "aichat"),
			SetupDir:  filepath.Join(baseDir, ".aichat-setup"),
			Home:      baseDir,
		}, nil
	}

	userConfig, err := os.UserConfigDir()
	if err != nil {
		return Paths{}, fmt.Errorf("获取用户配置目录失败: %w", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, fmt.Errorf("获取用户主目录失败: %w", err)
	}

	return Paths{
		ConfigDir: filepath.Join(userConfig, "aichat"),
		SetupDir:  filepath.Join(home, ".aichat-setup"),
		Home:      home,
	}, nil
}

// ConfigFile aichat 主配置文件
func (p Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "config.yaml")
}

// RoleFile local role 文档
func (p Paths) RoleFile() string {
	return filepath.Join(p.ConfigDir, "roles", "local.md")
}

// CompletionDir 补全脚本目录
func (p Paths) CompletionDir() string {
	return filepath.Join(p.ConfigDir, "completions")
}

// SettingsFile aichat-setup 自己的设置文件
func (p Paths) SettingsFile() string {
	return filepath.Join(p.SetupDir, "settings.json")
}

// LogFile 安装日志
func (p Paths) LogFile() string {
	return filepath.Join(p.SetupDir, "setup.log")
}
