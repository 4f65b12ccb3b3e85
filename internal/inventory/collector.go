package inventory

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	gopsnet "github.com/shirou/gopsutil/v3/net"
	"go.uber.org/zap"

	"github.com/YangQing-Lin/aichat-setup-cli/internal/utils"
)

// Collector 采集器。各个子查询互相独立，失败只记 warn，
// 最终总能返回一个（可能不完整的）快照。
type Collector struct {
	logger *zap.Logger

	// 测试时替换，模拟某一项枚举失败
	gpuProbe func(ctx context.Context) ([]string, error)
}

// NewCollector 创建采集器
func NewCollector(logger *zap.Logger) *Collector {
	return &Collector{
		logger:   logger,
		gpuProbe: probeGPUs,
	}
}

// Collect 采集一次完整快照。pkgMgr 由调用方探测后传入，
// 采集器自己不重复探测。
func (c *Collector) Collect(ctx context.Context, pkgMgr string) *Inventory {
	inv := &Inventory{
		PkgMgr:    pkgMgr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if info, err := host.InfoWithContext(ctx); err != nil {
		c.logger.Warn("采集操作系统信息失败", zap.Error(err))
	} else {
		inv.Hostname = info.Hostname
		inv.OS = OSInfo{
			Name:    info.Platform,
			Version: info.PlatformVersion,
			Build:   info.KernelVersion,
			Arch:    runtime.GOARCH,
		}
		if info.VirtualizationSystem != "" && info.VirtualizationRole == "guest" {
			inv.Virtual = info.VirtualizationSystem
		}
	}
	if inv.OS.Arch == "" {
		inv.OS.Arch = runtime.GOARCH
	}

	if infos, err := cpu.InfoWithContext(ctx); err != nil || len(infos) == 0 {
		c.logger.Warn("采集 CPU 信息失败", zap.Error(err))
	} else {
		inv.CPU.Model = strings.TrimSpace(infos[0].ModelName)
		inv.CPU.ClockMHz = utils.Round2(infos[0].Mhz)
	}
	if cores, err := cpu.CountsWithContext(ctx, true); err != nil {
		c.logger.Warn("采集 CPU 核数失败", zap.Error(err))
		inv.CPU.Cores = runtime.NumCPU()
	} else {
		inv.CPU.Cores = cores
	}

	if gpus, err := c.gpuProbe(ctx); err != nil {
		c.logger.Warn("枚举 GPU 失败", zap.Error(err))
	} else {
		inv.GPUs = gpus
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		c.logger.Warn("采集内存信息失败", zap.Error(err))
	} else {
		inv.Memory = MemoryInfo{
			TotalGB:     utils.RoundGB(vm.Total),
			AvailableGB: utils.RoundGB(vm.Available),
		}
	}

	if disks, err := c.collectDisks(ctx); err != nil {
		c.logger.Warn("采集磁盘信息失败", zap.Error(err))
	} else {
		inv.Disks = disks
	}

	if adapters, err := collectAdapters(ctx); err != nil {
		c.logger.Warn("采集网卡信息失败", zap.Error(err))
	} else {
		inv.Network = adapters
	}

	zone, offset := time.Now().Zone()
	inv.Timezone = formatZone(zone, offset)
	inv.Locale = os.Getenv("LANG")

	return inv
}

func (c *Collector) collectDisks(ctx context.Context) ([]DiskInfo, error) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, err
	}

	var disks []DiskInfo
	seen := make(map[string]bool)
	for _, p := range parts {
		if seen[p.Mountpoint] {
			continue
		}
		usage, err := disk.UsageWithContext(ctx, p.Mountpoint)
		if err != nil {
			c.logger.Warn("读取挂载点容量失败",
				zap.String("mount", p.Mountpoint), zap.Error(err))
			continue
		}
		// 1GB 以下的特殊分区不进文档
		if usage.Total < 1024*1024*1024 {
			continue
		}
		disks = append(disks, DiskInfo{
			Mount:   p.Mountpoint,
			TotalGB: utils.RoundGB(usage.Total),
			FreeGB:  utils.RoundGB(usage.Free),
		})
		seen[p.Mountpoint] = true
	}
	return disks, nil
}

func collectAdapters(ctx context.Context) ([]Adapter, error) {
	ifaces, err := gopsnet.InterfacesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	var adapters []Adapter
	for _, iface := range ifaces {
		if !hasFlag(iface.Flags, "up") || hasFlag(iface.Flags, "loopback") {
			continue
		}
		for _, addr := range iface.Addrs {
			ip := strings.Split(addr.Addr, "/")[0]
			// 只收 IPv4
			if strings.Count(ip, ".") == 3 {
				adapters = append(adapters, Adapter{Name: iface.Name, IPv4: ip})
				break
			}
		}
	}
	return adapters, nil
}

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if strings.EqualFold(f, want) {
			return true
		}
	}
	return false
}

func formatZone(zone string, offsetSec int) string {
	sign := "+"
	if offsetSec < 0 {
		sign = "-"
		offsetSec = -offsetSec
	}
	if zone == "" {
		zone = "Local"
	}
	return fmt.Sprintf("%s (UTC%s%02d:%02d)", zone, sign, offsetSec/3600, offsetSec%3600/60)
}
