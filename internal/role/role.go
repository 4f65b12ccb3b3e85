package role

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/YangQing-Lin/aichat-setup-cli/internal/inventory"
)

// 缺失数据的占位符。渲染永远不会因为某项采集失败而报错
const (
	placeholderUnknown = "Unknown"
	placeholderNoGPU   = "None detected"
	placeholderNoNet   = "none detected"
)

// docData 文档里 fenced 数据块的内容。字段顺序即输出顺序。
type docData struct {
	Hostname       string   `yaml:"hostname"`
	OS             string   `yaml:"os"`
	Kernel         string   `yaml:"kernel"`
	Arch           string   `yaml:"arch"`
	CPU            string   `yaml:"cpu"`
	GPU            string   `yaml:"gpu"`
	Memory         string   `yaml:"memory"`
	Disks          []string `yaml:"disks"`
	Network        []string `yaml:"network"`
	Timezone       string   `yaml:"timezone"`
	Locale         string   `yaml:"locale"`
	Virtualization string   `yaml:"virtualization"`
	PackageManager string   `yaml:"package_manager"`
	Updated        string   `yaml:"updated"`
}

// Generate 把主机快照渲染成 local role 文档。纯格式化，
// 除了"有值/用占位符"之外没有任何分支逻辑。
func Generate(inv *inventory.Inventory) (string, error) {
	data, err := yaml.Marshal(buildData(inv))
	if err != nil {
		return "", fmt.Errorf("渲染数据块失败: %w", err)
	}

	var b strings.Builder
	b.WriteString("# local\n\n")
	b.WriteString("You are a technical assistant running directly on the user's machine.\n")
	b.WriteString("Tailor every answer to the environment described below: prefer the\n")
	b.WriteString("detected package manager and shell, respect the OS and architecture,\n")
	b.WriteString("and never suggest commands for a different platform.\n\n")
	b.WriteString("```yaml\n")
	b.Write(data)
	b.WriteString("```\n")
	return b.String(), nil
}

// Write 整体覆盖写入 role 文档，不与旧内容合并
func Write(path string, inv *inventory.Inventory) error {
	doc, err := Generate(inv)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("创建 roles 目录失败: %w", err)
	}
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return fmt.Errorf("写入 role 文档失败: %w", err)
	}
	return nil
}

func buildData(inv *inventory.Inventory) docData {
	d := docData{
		Hostname:       orUnknown(inv.Hostname),
		OS:             orUnknown(strings.TrimSpace(inv.OS.Name + " " + inv.OS.Version)),
		Kernel:         orUnknown(inv.OS.Build),
		Arch:           orUnknown(inv.OS.Arch),
		CPU:            cpuLine(inv.CPU),
		GPU:            gpuLine(inv.GPUs),
		Memory:         memoryLine(inv.Memory),
		Timezone:       orUnknown(inv.Timezone),
		Locale:         orUnknown(inv.Locale),
		Virtualization: valueOr(inv.Virtual, "none"),
		PackageManager: orUnknown(inv.PkgMgr),
		Updated:        orUnknown(inv.Timestamp),
	}

	for _, disk := range inv.Disks {
		d.Disks = append(d.Disks,
			fmt.Sprintf("%s: %.2f GB total, %.2f GB free", disk.Mount, disk.TotalGB, disk.FreeGB))
	}
	if len(d.Disks) == 0 {
		d.Disks = []string{placeholderUnknown}
	}

	for _, a := range inv.Network {
		d.Network = append(d.Network, fmt.Sprintf("%s: %s", a.Name, a.IPv4))
	}
	if len(d.Network) == 0 {
		d.Network = []string{placeholderNoNet}
	}

	return d
}

func cpuLine(cpu inventory.CPUInfo) string {
	if cpu.Model == "" && cpu.Cores == 0 {
		return placeholderUnknown
	}
	model := orUnknown(cpu.Model)
	if cpu.ClockMHz > 0 {
		return fmt.Sprintf("%s, %d cores @ %.0f MHz", model, cpu.Cores, cpu.ClockMHz)
	}
	return fmt.Sprintf("%s, %d cores", model, cpu.Cores)
}

func gpuLine(gpus []string) string {
	if len(gpus) == 0 {
		return placeholderNoGPU
	}
	return strings.Join(gpus, "; ")
}

func memoryLine(mem inventory.MemoryInfo) string {
	if mem.TotalGB == 0 {
		return placeholderUnknown
	}
	return fmt.Sprintf("%.2f GB total, %.2f GB available", mem.TotalGB, mem.AvailableGB)
}

func orUnknown(v string) string {
	return valueOr(v, placeholderUnknown)
}

func valueOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
