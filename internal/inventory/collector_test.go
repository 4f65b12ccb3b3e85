package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/YangQing-Lin/aichat-setup-cli/internal/logging"
)

func TestCollectBestEffort(t *testing.T) {
	c := NewCollector(logging.Nop())
	inv := c.Collect(context.Background(), "brew")

	if inv == nil {
		t.Fatalf("Collect 永远不应返回 nil")
	}
	if inv.Timestamp == "" {
		t.Errorf("时间戳不应为空")
	}
	if inv.PkgMgr != "brew" {
		t.Errorf("包管理器应原样透传，实际: %s", inv.PkgMgr)
	}
	if inv.OS.Arch == "" {
		t.Errorf("架构字段不应为空")
	}
	if inv.CPU.Cores <= 0 {
		t.Errorf("核数不正确: %d", inv.CPU.Cores)
	}
}

// GPU 枚举失败只影响 GPU 字段，整体快照照常返回
func TestCollectGPUFailure(t *testing.T) {
	c := NewCollector(logging.Nop())
	c.gpuProbe = func(ctx context.Context) ([]string, error) {
		return nil, errors.New("no probe tool")
	}

	inv := c.Collect(context.Background(), "")
	if inv == nil {
		t.Fatalf("GPU 失败时 Collect 不应返回 nil")
	}
	if len(inv.GPUs) != 0 {
		t.Errorf("GPU 列表应为空: %v", inv.GPUs)
	}
	if inv.Timestamp == "" {
		t.Errorf("其余字段应照常采集")
	}
}

func TestFormatZone(t *testing.T) {
	tests := []struct {
		zone   string
		offset int
		want   string
	}{
		{"CST", 8 * 3600, "CST (UTC+08:00)"},
		{"PST", -8 * 3600, "PST (UTC-08:00)"},
		{"UTC", 0, "UTC (UTC+00:00)"},
		{"", 5*3600 + 30*60, "Local (UTC+05:30)"},
	}

	for _, tt := range tests {
		if got := formatZone(tt.zone, tt.offset); got != tt.want {
			t.Errorf("formatZone(%q, %d) = %q, 期望 %q", tt.zone, tt.offset, got, tt.want)
		}
	}
}

func TestHasFlag(t *testing.T) {
	flags := []string{"up", "broadcast", "multicast"}
	if !hasFlag(flags, "up") || !hasFlag(flags, "UP") {
		t.Errorf("hasFlag 应忽略大小写")
	}
	if hasFlag(flags, "loopback") {
		t.Errorf("不存在的 flag 应返回 false")
	}
}
