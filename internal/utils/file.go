package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// FileExists 检查文件是否存在
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// WriteJSONFile 写入 JSON 文件
func WriteJSONFile(path string, data interface{}, perm os.FileMode) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化 JSON 失败: %w", err)
	}

	if err := os.WriteFile(path, jsonData, perm); err != nil {
		return fmt.Errorf("写入文件失败: %w", err)
	}

	return nil
}

// ReadJSONFile 读取 JSON 文件
func ReadJSONFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取文件失败: %w", err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("解析 JSON 失败: %w", err)
	}

	return nil
}

// WriteYAMLFile 写入 YAML 文件
func WriteYAMLFile(path string, data interface{}, perm os.FileMode) error {
	yamlData, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("序列化 YAML 失败: %w", err)
	}

	if err := os.WriteFile(path, yamlData, perm); err != nil {
		return fmt.Errorf("写入文件失败: %w", err)
	}

	return nil
}

// ReadYAMLFile 读取 YAML 文件
func ReadYAMLFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取文件失败: %w", err)
	}

	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("解析 YAML 失败: %w", err)
	}

	return nil
}

// BackupFile 备份文件，备份名带时间戳和随机后缀，避免覆盖上一次备份
func BackupFile(path string) error {
	if !FileExists(path) {
		return nil // 原文件不存在不算错误
	}

	suffix := uuid.NewString()[:8]
	backupPath := fmt.Sprintf("%s.%s-%s.bak", path, time.Now().Format("20060102150405"), suffix)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取原文件失败: %w", err)
	}

	if err := os.WriteFile(backupPath, data, 0644); err != nil {
		return fmt.Errorf("创建备份失败: %w", err)
	}

	return nil
}
