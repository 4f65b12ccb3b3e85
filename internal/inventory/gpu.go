package inventory

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// probeGPUs 按平台尽力枚举 GPU 型号。没有任何探测工具可用时
// 返回错误，由调用方降级为占位符。
func probeGPUs(ctx context.Context) ([]string, error) {
	switch runtime.GOOS {
	case "linux":
		return probeLspci(ctx)
	case "darwin":
		return probeSystemProfiler(ctx)
	case "windows":
		return probeWMIC(ctx)
	default:
		return nil, fmt.Errorf("平台 %s 不支持 GPU 枚举", runtime.GOOS)
	}
}

func probeLspci(ctx context.Context) ([]string, error) {
	out, err := exec.CommandContext(ctx, "lspci").Output()
	if err != nil {
		return nil, fmt.Errorf("执行 lspci 失败: %w", err)
	}

	var gpus []string
	for _, line := range strings.Split(string(out), "\n") {
		if strings.Contains(line, "VGA compatible controller") ||
			strings.Contains(line, "3D controller") {
			if idx := strings.Index(line, ": "); idx >= 0 {
				gpus = append(gpus, strings.TrimSpace(line[idx+2:]))
			}
		}
	}
	return gpus, nil
}

func probeSystemProfiler(ctx context.Context) ([]string, error) {
	out, err := exec.CommandContext(ctx, "system_profiler", "SPDisplaysDataType").Output()
	if err != nil {
		return nil, fmt.Errorf("执行 system_profiler 失败: %w", err)
	}

	var gpus []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "Chipset Model:") {
			gpus = append(gpus, strings.TrimSpace(strings.TrimPrefix(line, "Chipset Model:")))
		}
	}
	return gpus, nil
}

func probeWMIC(ctx context.Context) ([]string, error) {
	out, err := exec.CommandContext(ctx, "wmic", "path", "win32_VideoController", "get", "Name").Output()
	if err != nil {
		return nil, fmt.Errorf("执行 wmic 失败: %w", err)
	}

	var gpus []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.EqualFold(line, "Name") {
			continue
		}
		gpus = append(gpus, line)
	}
	return gpus, nil
}
