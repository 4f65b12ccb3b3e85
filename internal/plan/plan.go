package plan

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Flags 调用方提供的全部开关，构造计划时原样快照进 flags 字段
type Flags struct {
	TargetVersion string
	DryRun        bool
	JSON          bool
	NoWrapper     bool
	SkipRole      bool
	AssumeYes     bool
}

// Facts 已探测好的环境事实。计划构造只读取这里的值，
// 自己不做任何探测，保证相同输入产出相同计划。
type Facts struct {
	CurrentVersion       string // 空串表示未安装
	Arch                 string
	PackageManager       string
	PackageID            string
	ConfigPath           string
	ConfigExists         bool
	ConfigHasRoleDefault bool
	Shell                string
	ShellVersion         string
	ProfilePath          string
	Completions          []string
}

// 跳过原因必须是固定文案，外部工具按字面匹配
const (
	SkipReasonNoWrapper = "--no-wrapper flag set"
	SkipReasonSkipRole  = "--skip-role flag set"
)

// 配置文件动作
const (
	ConfigActionCreate  = "create"
	ConfigActionAugment = "augment"
	ConfigActionNone    = "none"
)

// PlannedStep 带可选跳过原因的计划项
type PlannedStep struct {
	Planned    bool    `json:"planned"`
	SkipReason *string `json:"skip_reason"`
}

// ShellPlan 送往终端集成的计划描述
type ShellPlan struct {
	Detected           string `json:"detected"`
	Version            string `json:"version"`
	IntegrationPlanned bool   `json:"integration_planned"`
}

// ConfigPlan 配置文件的计划动作
type ConfigPlan struct {
	Path   string `json:"path"`
	Action string `json:"action"`
}

// FlagSnapshot 调用方开关的原样快照
type FlagSnapshot struct {
	DryRun    bool `json:"dry_run"`
	JSON      bool `json:"json"`
	NoWrapper bool `json:"no_wrapper"`
	SkipRole  bool `json:"skip_role"`
	AssumeYes bool `json:"assume_yes"`
}

// InstallPlan 描述一次安装将要执行的全部动作，纯数据。
// 构造过程不允许接触文件系统和网络，预览模式下构造一次、
// 序列化后即丢弃。
type InstallPlan struct {
	Mode           string       `json:"mode"`
	TargetVersion  string       `json:"target_version"`
	CurrentVersion *string      `json:"current_version"`
	Architecture   string       `json:"architecture"`
	PackageManager string       `json:"package_manager"`
	PackageID      string       `json:"package_id"`
	ConfigPath     string       `json:"config_path"`
	Wrapper        PlannedStep  `json:"wrapper"`
	RoleGenerator  PlannedStep  `json:"role_generator"`
	Shell          ShellPlan    `json:"shell"`
	Completions    []string     `json:"completions"`
	Config         ConfigPlan   `json:"config"`
	Flags          FlagSnapshot `json:"flags"`
}

// Build 根据开关和已探测事实构造安装计划。无副作用。
func Build(flags Flags, facts Facts) *InstallPlan {
	target := flags.TargetVersion
	if target == "" {
		target = "latest"
	}

	var current *string
	if facts.CurrentVersion != "" {
		v := facts.CurrentVersion
		current = &v
	}

	wrapper := PlannedStep{Planned: true}
	if flags.NoWrapper {
		reason := SkipReasonNoWrapper
		wrapper = PlannedStep{Planned: false, SkipReason: &reason}
	}

	role := PlannedStep{Planned: true}
	if flags.SkipRole {
		reason := SkipReasonSkipRole
		role = PlannedStep{Planned: false, SkipReason: &reason}
	}

	completions := facts.Completions
	if completions == nil {
		completions = []string{}
	}

	return &InstallPlan{
		Mode:           "dry-run",
		TargetVersion:  target,
		CurrentVersion: current,
		Architecture:   facts.Arch,
		PackageManager: facts.PackageManager,
		PackageID:      facts.PackageID,
		ConfigPath:     facts.ConfigPath,
		Wrapper:        wrapper,
		RoleGenerator:  role,
		Shell: ShellPlan{
			Detected:           facts.Shell,
			Version:            facts.ShellVersion,
			IntegrationPlanned: facts.Shell != "" && facts.Shell != "unknown",
		},
		Completions: completions,
		Config:      configPlan(facts),
		Flags: FlagSnapshot{
			DryRun:    flags.DryRun,
			JSON:      flags.JSON,
			NoWrapper: flags.NoWrapper,
			SkipRole:  flags.SkipRole,
			AssumeYes: flags.AssumeYes,
		},
	}
}

func configPlan(facts Facts) ConfigPlan {
	action := ConfigActionNone
	if !facts.ConfigExists {
		action = ConfigActionCreate
	} else if !facts.ConfigHasRoleDefault {
		action = ConfigActionAugment
	}
	return ConfigPlan{Path: facts.ConfigPath, Action: action}
}

// RenderJSON 输出固定 schema 的 JSON 文档
func (p *InstallPlan) RenderJSON() (string, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("序列化安装计划失败: %w", err)
	}
	return string(data), nil
}

// RenderText 输出给人看的多行摘要
func (p *InstallPlan) RenderText() string {
	var b strings.Builder

	b.WriteString("安装计划（预览模式，不做任何修改）\n")
	b.WriteString("────────────────────────────────\n")
	fmt.Fprintf(&b, "目标版本:   %s\n", p.TargetVersion)
	if p.CurrentVersion != nil {
		fmt.Fprintf(&b, "已装版本:   %s\n", *p.CurrentVersion)
	} else {
		b.WriteString("已装版本:   未安装\n")
	}
	fmt.Fprintf(&b, "系统架构:   %s\n", p.Architecture)
	fmt.Fprintf(&b, "包管理器:   %s (%s)\n", p.PackageManager, p.PackageID)
	fmt.Fprintf(&b, "配置文件:   %s (%s)\n", p.Config.Path, p.Config.Action)
	b.WriteString(renderStep("wrapper 函数", p.Wrapper))
	b.WriteString(renderStep("role 生成", p.RoleGenerator))
	if p.Shell.IntegrationPlanned {
		fmt.Fprintf(&b, "终端集成:   %s %s (Alt+E 键位绑定)\n", p.Shell.Detected, p.Shell.Version)
	} else {
		fmt.Fprintf(&b, "终端集成:   跳过（未识别的 shell: %s）\n", p.Shell.Detected)
	}
	if len(p.Completions) > 0 {
		fmt.Fprintf(&b, "补全脚本:   %s\n", strings.Join(p.Completions, ", "))
	}

	return b.String()
}

func renderStep(name string, step PlannedStep) string {
	if step.Planned {
		return fmt.Sprintf("%s:  计划安装\n", name)
	}
	return fmt.Sprintf("%s:  跳过 (%s)\n", name, *step.SkipReason)
}
