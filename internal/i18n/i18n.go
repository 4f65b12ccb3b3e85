package i18n

import (
	"fmt"
)

var currentLanguage = "zh" // 默认中文

// 多语言消息定义
var messages = map[string]map[string]string{
	"en": {
		// Common
		"success": "Success",
		"failed":  "Failed",
		"warning": "Warning",

		// Install steps
		"step.package":    "Install aichat binary",
		"step.config":     "Write default configuration",
		"step.role":       "Generate local role document",
		"step.keybinding": "Install shell keybinding",
		"step.completion": "Install shell completion",
		"step.wrapper":    "Install wrapper function",

		// Results
		"install.done":       "aichat installation finished",
		"install.cancelled":  "Installation cancelled",
		"install.fatal":      "Installation aborted",
		"step.skipped":       "skipped",
		"step.warning":       "warning",
		"role.regenerated":   "Role document regenerated",
		"uninstall.done":     "Shell integration removed",
		"uninstall.nothing":  "No managed blocks found, nothing to do",
		"confirm.install":    "Proceed with installation? (y/N): ",
		"confirm.reinstall":  "Block '%s' already installed, reinstall? (y/N): ",
		"confirm.uninstall":  "Remove all aichat blocks from the shell profile? (y/N): ",
	},
	"zh": {
		// Common
		"success": "成功",
		"failed":  "失败",
		"warning": "警告",

		// Install steps
		"step.package":    "安装 aichat 二进制",
		"step.config":     "写入默认配置",
		"step.role":       "生成 local role 文档",
		"step.keybinding": "安装 shell 键位绑定",
		"step.completion": "安装 shell 补全",
		"step.wrapper":    "安装 wrapper 函数",

		// Results
		"install.done":       "aichat 安装完成",
		"install.cancelled":  "安装已取消",
		"install.fatal":      "安装中止",
		"step.skipped":       "已跳过",
		"step.warning":       "警告",
		"role.regenerated":   "role 文档已重新生成",
		"uninstall.done":     "shell 集成已移除",
		"uninstall.nothing":  "未找到托管的块，无需处理",
		"confirm.install":    "确定开始安装吗? (y/N): ",
		"confirm.reinstall":  "块 '%s' 已安装，是否重装? (y/N): ",
		"confirm.uninstall":  "确定从 shell 启动文件移除全部 aichat 块吗? (y/N): ",
	},
}

// SetLanguage 设置当前语言
func SetLanguage(lang string) {
	if lang == "en" || lang == "zh" {
		currentLanguage = lang
	}
}

// GetLanguage 获取当前语言
func GetLanguage() string {
	return currentLanguage
}

// T 翻译消息 (Translation)
func T(key string) string {
	langMessages, ok := messages[currentLanguage]
	if !ok {
		langMessages = messages["zh"]
	}
	if msg, ok := langMessages[key]; ok {
		return msg
	}
	// 回退到中文
	if msg, ok := messages["zh"][key]; ok {
		return msg
	}
	return key
}

// Tf 翻译并格式化消息
func Tf(key string, args ...interface{}) string {
	return fmt.Sprintf(T(key), args...)
}
