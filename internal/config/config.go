package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/YangQing-Lin/aichat-setup-cli/internal/utils"
)

// 默认配置。只在配置文件不存在时整体写入，
// 已有配置永远不会被覆盖。
var defaults = map[string]interface{}{
	"model":            "openai:gpt-4o-mini",
	"stream":           true,
	"save":             true,
	"function_calling": true,
	"prelude":          "role:local",
}

// 生成默认配置时的键顺序，map 直接 Marshal 顺序不稳定
var defaultOrder = []string{"model", "stream", "save", "function_calling", "prelude"}

// Action 对配置文件执行的动作，和安装计划里的取值一致
const (
	ActionCreate  = "create"
	ActionAugment = "augment"
	ActionNone    = "none"
)

// HasRoleDefault 配置文件里是否已有 prelude 指向 role
func HasRoleDefault(path string) bool {
	var cfg map[string]interface{}
	if err := utils.ReadYAMLFile(path, &cfg); err != nil {
		return false
	}
	_, ok := cfg["prelude"]
	return ok
}

// Ensure 保证配置文件可用：
//   - 不存在 → 写入默认配置，返回 create
//   - 存在但没有 prelude → 只补这一个键，其余内容原样保留，返回 augment
//   - 存在且完整 → 什么都不做，返回 none
func Ensure(path string) (string, error) {
	if !utils.FileExists(path) {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return "", fmt.Errorf("创建配置目录失败: %w", err)
		}
		if err := os.WriteFile(path, renderDefaults(), 0644); err != nil {
			return "", fmt.Errorf("写入默认配置失败: %w", err)
		}
		return ActionCreate, nil
	}

	if HasRoleDefault(path) {
		return ActionNone, nil
	}

	var cfg map[string]interface{}
	if err := utils.ReadYAMLFile(path, &cfg); err != nil {
		return "", fmt.Errorf("解析已有配置失败: %w", err)
	}
	if cfg == nil {
		cfg = map[string]interface{}{}
	}
	cfg["prelude"] = defaults["prelude"]

	if err := utils.BackupFile(path); err != nil {
		return "", fmt.Errorf("备份配置文件失败: %w", err)
	}
	if err := utils.WriteYAMLFile(path, cfg, 0644); err != nil {
		return "", err
	}
	return ActionAugment, nil
}

func renderDefaults() []byte {
	var root yaml.Node
	root.Kind = yaml.MappingNode
	for _, key := range defaultOrder {
		var k, v yaml.Node
		k.SetString(key)
		if err := v.Encode(defaults[key]); err != nil {
			continue
		}
		root.Content = append(root.Content, &k, &v)
	}
	data, err := yaml.Marshal(&root)
	if err != nil {
		// defaults 是常量数据，失败只可能是编码器本身的问题
		panic(err)
	}
	return data
}
