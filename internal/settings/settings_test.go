package settings

import (
	"path/filepath"
	"testing"

	"github.com/YangQing-Lin/aichat-setup-cli/internal/testutil"
)

func TestDefaultLanguage(t *testing.T) {
	dir := testutil.CreateTempDir(t)

	manager, err := NewManager(filepath.Join(dir, "settings.json"))
	if err != nil {
		t.Fatalf("NewManager 失败: %v", err)
	}

	if manager.GetLanguage() != "zh" {
		t.Errorf("默认语言应为 zh，实际: %s", manager.GetLanguage())
	}
	// 默认设置不落盘
	testutil.AssertFileNotExists(t, filepath.Join(dir, "settings.json"))
}

func TestSetLanguagePersists(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	path := filepath.Join(dir, "settings.json")

	manager, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager 失败: %v", err)
	}

	if err := manager.SetLanguage("en"); err != nil {
		t.Fatalf("SetLanguage 失败: %v", err)
	}
	testutil.AssertFileExists(t, path)

	// 重新加载仍是 en
	reloaded, err := NewManager(path)
	if err != nil {
		t.Fatalf("重新加载失败: %v", err)
	}
	if reloaded.GetLanguage() != "en" {
		t.Errorf("语言未持久化，实际: %s", reloaded.GetLanguage())
	}
}

func TestSetLanguageRejectsUnknown(t *testing.T) {
	dir := testutil.CreateTempDir(t)

	manager, err := NewManager(filepath.Join(dir, "settings.json"))
	if err != nil {
		t.Fatalf("NewManager 失败: %v", err)
	}

	if err := manager.SetLanguage("fr"); err == nil {
		t.Errorf("不支持的语言应报错")
	}
}
