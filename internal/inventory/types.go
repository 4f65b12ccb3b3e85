package inventory

// Inventory 一次完整的主机快照。所有字段都是尽力采集：
// 某一项查不到不影响整体，渲染时用占位符表示缺失。
type Inventory struct {
	Hostname  string      `json:"hostname" yaml:"hostname"`
	OS        OSInfo      `json:"os" yaml:"os"`
	CPU       CPUInfo     `json:"cpu" yaml:"cpu"`
	GPUs      []string    `json:"gpus" yaml:"gpus"`
	Memory    MemoryInfo  `json:"memory" yaml:"memory"`
	Disks     []DiskInfo  `json:"disks" yaml:"disks"`
	Network   []Adapter   `json:"network" yaml:"network"`
	Timezone  string      `json:"timezone" yaml:"timezone"`
	Locale    string      `json:"locale" yaml:"locale"`
	Virtual   string      `json:"virtualization" yaml:"virtualization"`
	PkgMgr    string      `json:"package_manager" yaml:"package_manager"`
	Timestamp string      `json:"timestamp" yaml:"timestamp"`
}

// OSInfo 操作系统信息
type OSInfo struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
	Build   string `json:"build" yaml:"build"`
	Arch    string `json:"arch" yaml:"arch"`
}

// CPUInfo 处理器信息
type CPUInfo struct {
	Model    string  `json:"model" yaml:"model"`
	Cores    int     `json:"cores" yaml:"cores"`
	ClockMHz float64 `json:"clock_mhz" yaml:"clock_mhz"`
}

// MemoryInfo 内存信息（GB，两位小数）
type MemoryInfo struct {
	TotalGB     float64 `json:"total_gb" yaml:"total_gb"`
	AvailableGB float64 `json:"available_gb" yaml:"available_gb"`
}

// DiskInfo 单个磁盘/挂载点
type DiskInfo struct {
	Mount   string  `json:"mount" yaml:"mount"`
	TotalGB float64 `json:"total_gb" yaml:"total_gb"`
	FreeGB  float64 `json:"free_gb" yaml:"free_gb"`
}

// Adapter 活动网卡及其 IPv4 地址
type Adapter struct {
	Name string `json:"name" yaml:"name"`
	IPv4 string `json:"ipv4" yaml:"ipv4"`
}
