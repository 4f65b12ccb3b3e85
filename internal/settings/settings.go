package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/YangQing-Lin/aichat-setup-cli/internal/utils"
)

// AppSettings aichat-setup 自己的设置
type AppSettings struct {
	Language string `json:"language"` // 语言: "en" 或 "zh"
}

// Manager 设置管理器
type Manager struct {
	settings     *AppSettings
	settingsPath string
}

// NewManager 创建设置管理器，settingsPath 由调用方解析好传入
func NewManager(settingsPath string) (*Manager, error) {
	manager := &Manager{
		settingsPath: settingsPath,
	}

	if err := manager.Load(); err != nil {
		return nil, err
	}

	return manager, nil
}

// Load 加载设置文件
func (m *Manager) Load() error {
	// 设置文件不存在时用默认值，不落盘（首次保存时才建目录）
	if !utils.FileExists(m.settingsPath) {
		m.settings = &AppSettings{
			Language: "zh", // 默认中文
		}
		return nil
	}

	m.settings = &AppSettings{}
	if err := utils.ReadJSONFile(m.settingsPath, m.settings); err != nil {
		return fmt.Errorf("加载设置文件失败: %w", err)
	}

	return nil
}

// Save 保存设置文件
func (m *Manager) Save() error {
	dir := filepath.Dir(m.settingsPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("创建设置目录失败: %w", err)
	}

	return utils.WriteJSONFile(m.settingsPath, m.settings, 0644)
}

// GetLanguage 获取语言设置
func (m *Manager) GetLanguage() string {
	return m.settings.Language
}

// SetLanguage 设置语言并保存
func (m *Manager) SetLanguage(lang string) error {
	if lang != "en" && lang != "zh" {
		return fmt.Errorf("不支持的语言: %s（支持 en/zh）", lang)
	}
	m.settings.Language = lang
	return m.Save()
}
