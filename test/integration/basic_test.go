package integration

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/YangQing-Lin/aichat-setup-cli/internal/config"
	"github.com/YangQing-Lin/aichat-setup-cli/internal/installer"
	"github.com/YangQing-Lin/aichat-setup-cli/internal/logging"
	"github.com/YangQing-Lin/aichat-setup-cli/internal/plan"
	"github.com/YangQing-Lin/aichat-setup-cli/internal/profile"
	"github.com/YangQing-Lin/aichat-setup-cli/internal/shell"
	"github.com/YangQing-Lin/aichat-setup-cli/internal/testutil"
)

type fakeCommander struct {
	available map[string]bool
	outputs   map[string]string
}

func (f *fakeCommander) LookPath(name string) (string, error) {
	if f.available[name] {
		return "/usr/bin/" + name, nil
	}
	return "", errors.New("not found")
}

func (f *fakeCommander) Run(ctx context.Context, name string, args ...string) (string, error) {
	return f.outputs[strings.TrimSpace(name+" "+strings.Join(args, " "))], nil
}

// TestInstallLifecycle 完整生命周期：预览 → 安装 → 重复安装 → 卸载
func TestInstallLifecycle(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("测试依赖 $SHELL 探测")
	}
	t.Setenv("SHELL", "/bin/zsh")

	tmpDir := t.TempDir()
	paths, err := config.ResolvePaths(tmpDir)
	if err != nil {
		t.Fatalf("解析路径失败: %v", err)
	}

	cmder := &fakeCommander{
		available: map[string]bool{"brew": true, "zsh": true, "aichat": true},
		outputs: map[string]string{
			"zsh --version":    "zsh 5.9 (x86_64-pc-linux-gnu)",
			"aichat --version": "aichat 0.30.0",
		},
	}
	ins := installer.New(paths, cmder, logging.Nop())

	ctx := context.Background()
	opts := installer.Options{Flags: plan.Flags{AssumeYes: true}}

	// 预览：产出计划但不落盘
	t.Run("DryRun", func(t *testing.T) {
		p := ins.Plan(ctx, installer.Options{
			Flags: plan.Flags{DryRun: true, JSON: true, AssumeYes: true},
		})

		if p.CurrentVersion == nil || *p.CurrentVersion != "0.30.0" {
			t.Errorf("current_version 不正确: %v", p.CurrentVersion)
		}
		if p.PackageManager != "brew" {
			t.Errorf("包管理器不正确: %s", p.PackageManager)
		}
		if p.Config.Action != plan.ConfigActionCreate {
			t.Errorf("config.action 不正确: %s", p.Config.Action)
		}

		out, err := p.RenderJSON()
		if err != nil {
			t.Fatalf("RenderJSON 失败: %v", err)
		}
		testutil.AssertContains(t, out, `"mode": "dry-run"`)
		testutil.AssertFileNotExists(t, paths.ConfigFile())
	})

	// 正式安装
	t.Run("Install", func(t *testing.T) {
		results, err := ins.Run(ctx, opts)
		if err != nil {
			t.Fatalf("安装失败: %v", err)
		}
		for _, r := range results {
			if r.Status == installer.StatusFatal {
				t.Errorf("出现致命步骤: %+v", r)
			}
		}

		testutil.AssertFileExists(t, paths.ConfigFile())
		testutil.AssertFileExists(t, paths.RoleFile())

		doc := testutil.ReadFile(t, paths.RoleFile())
		testutil.AssertContains(t, doc, "# local")
		testutil.AssertContains(t, doc, "```yaml")
	})

	// 重复安装：块不会翻倍
	t.Run("Reinstall", func(t *testing.T) {
		if _, err := ins.Run(ctx, opts); err != nil {
			t.Fatalf("重复安装失败: %v", err)
		}

		content := testutil.ReadFile(t, filepath.Join(tmpDir, ".zshrc"))
		for _, tag := range []string{shell.TagKeybinding, shell.TagCompletion, shell.TagWrapper} {
			testutil.AssertCount(t, content, profile.BeginMarker(tag), 1)
		}
	})

	// 卸载：托管块清空，配置保留
	t.Run("Uninstall", func(t *testing.T) {
		removed, err := ins.Uninstall(ctx, true)
		if err != nil {
			t.Fatalf("卸载失败: %v", err)
		}
		if len(removed) != 3 {
			t.Errorf("应移除 3 个块，实际: %v", removed)
		}

		content := testutil.ReadFile(t, filepath.Join(tmpDir, ".zshrc"))
		testutil.AssertCount(t, content, "aichat-setup:", 0)
		testutil.AssertFileExists(t, paths.ConfigFile())
	})
}
