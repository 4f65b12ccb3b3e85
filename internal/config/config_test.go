package config

import (
	"path/filepath"
	"testing"

	"github.com/YangQing-Lin/aichat-setup-cli/internal/testutil"
	"github.com/YangQing-Lin/aichat-setup-cli/internal/utils"
)

func TestEnsureCreates(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	path := filepath.Join(dir, "aichat", "config.yaml")

	action, err := Ensure(path)
	if err != nil {
		t.Fatalf("Ensure 失败: %v", err)
	}
	if action != ActionCreate {
		t.Errorf("action 不正确，期望: %s, 实际: %s", ActionCreate, action)
	}

	content := testutil.ReadFile(t, path)
	for _, want := range []string{
		"model: openai:gpt-4o-mini",
		"stream: true",
		"function_calling: true",
		"prelude: role:local",
	} {
		testutil.AssertContains(t, content, want)
	}
}

func TestEnsureNeverOverwrites(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	path := testutil.CreateTempFile(t, dir, "config.yaml",
		"model: claude:claude-sonnet-4\nstream: false\nprelude: role:local\n")

	action, err := Ensure(path)
	if err != nil {
		t.Fatalf("Ensure 失败: %v", err)
	}
	if action != ActionNone {
		t.Errorf("完整配置应返回 none，实际: %s", action)
	}

	// 用户自己的配置逐字节保留
	content := testutil.ReadFile(t, path)
	testutil.AssertContains(t, content, "model: claude:claude-sonnet-4")
	testutil.AssertContains(t, content, "stream: false")
}

func TestEnsureAugments(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	path := testutil.CreateTempFile(t, dir, "config.yaml",
		"model: claude:claude-sonnet-4\ntemperature: 0.3\n")

	action, err := Ensure(path)
	if err != nil {
		t.Fatalf("Ensure 失败: %v", err)
	}
	if action != ActionAugment {
		t.Errorf("缺 prelude 时应返回 augment，实际: %s", action)
	}

	content := testutil.ReadFile(t, path)
	// 补了 prelude，用户的其他键不丢
	testutil.AssertContains(t, content, "prelude: role:local")
	testutil.AssertContains(t, content, "model: claude:claude-sonnet-4")
	testutil.AssertContains(t, content, "temperature: 0.3")
}

func TestHasRoleDefault(t *testing.T) {
	dir := testutil.CreateTempDir(t)

	withRole := testutil.CreateTempFile(t, dir, "a.yaml", "prelude: role:local\n")
	withoutRole := testutil.CreateTempFile(t, dir, "b.yaml", "model: x\n")

	if !HasRoleDefault(withRole) {
		t.Errorf("有 prelude 的配置应返回 true")
	}
	if HasRoleDefault(withoutRole) {
		t.Errorf("无 prelude 的配置应返回 false")
	}
	if HasRoleDefault(filepath.Join(dir, "missing.yaml")) {
		t.Errorf("文件不存在应返回 false")
	}
}

func TestResolvePathsWithBaseDir(t *testing.T) {
	paths, err := ResolvePaths("/tmp/base")
	if err != nil {
		t.Fatalf("ResolvePaths 失败: %v", err)
	}

	if paths.ConfigFile() != filepath.Join("/tmp/base", "aichat", "config.yaml") {
		t.Errorf("配置文件路径不正确: %s", paths.ConfigFile())
	}
	if paths.RoleFile() != filepath.Join("/tmp/base", "aichat", "roles", "local.md") {
		t.Errorf("role 文档路径不正确: %s", paths.RoleFile())
	}
	if paths.Home != "/tmp/base" {
		t.Errorf("Home 不正确: %s", paths.Home)
	}
}

func TestResolvePathsDefault(t *testing.T) {
	paths, err := ResolvePaths("")
	if err != nil {
		t.Fatalf("ResolvePaths 失败: %v", err)
	}
	if paths.ConfigDir == "" || paths.SetupDir == "" || paths.Home == "" {
		t.Errorf("默认路径不应为空: %+v", paths)
	}
	if !utils.FileExists(paths.Home) {
		t.Errorf("Home 应该指向真实目录: %s", paths.Home)
	}
}
