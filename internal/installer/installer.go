package installer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/YangQing-Lin/aichat-setup-cli/internal/config"
	"github.com/YangQing-Lin/aichat-setup-cli/internal/i18n"
	"github.com/YangQing-Lin/aichat-setup-cli/internal/inventory"
	"github.com/YangQing-Lin/aichat-setup-cli/internal/pkgmgr"
	"github.com/YangQing-Lin/aichat-setup-cli/internal/plan"
	"github.com/YangQing-Lin/aichat-setup-cli/internal/profile"
	"github.com/YangQing-Lin/aichat-setup-cli/internal/role"
	"github.com/YangQing-Lin/aichat-setup-cli/internal/shell"
	"github.com/YangQing-Lin/aichat-setup-cli/internal/utils"
)

// ErrCancelled 用户在确认提示里选择了放弃。不算失败，退出码 0。
var ErrCancelled = errors.New("用户取消安装")

// StepStatus 单个安装步骤的结果等级。包管理器之外的步骤
// 失败一律降级为 warn，不中断后续步骤。
type StepStatus string

const (
	StatusOK      StepStatus = "ok"
	StatusWarn    StepStatus = "warn"
	StatusSkipped StepStatus = "skipped"
	StatusFatal   StepStatus = "fatal"
)

// StepResult 一个步骤的执行结果
type StepResult struct {
	Name   string
	Status StepStatus
	Detail string
	Err    error
}

// Options 一次安装的全部开关
type Options struct {
	Flags plan.Flags
	Force bool // 无条件重装已存在的块
}

// Installer 安装编排器。所有外部依赖显式注入，
// 没有任何隐藏的全局状态。
type Installer struct {
	Paths     config.Paths
	Cmder     pkgmgr.Commander
	Logger    *zap.Logger
	Collector *inventory.Collector

	// Confirm 询问用户，返回是否继续。AssumeYes 时不会被调用。
	Confirm func(prompt string) bool
}

// New 创建编排器
func New(paths config.Paths, cmder pkgmgr.Commander, logger *zap.Logger) *Installer {
	return &Installer{
		Paths:     paths,
		Cmder:     cmder,
		Logger:    logger.With(zap.String("run_id", uuid.NewString())),
		Collector: inventory.NewCollector(logger),
		Confirm:   func(string) bool { return true },
	}
}

// GatherFacts 探测环境事实。只读操作，供计划构造和正式安装共用。
func (ins *Installer) GatherFacts(ctx context.Context) (plan.Facts, pkgmgr.Manager, shell.Info) {
	var mgr pkgmgr.Manager
	if m, err := pkgmgr.Detect(ins.Cmder); err != nil {
		ins.Logger.Warn("探测包管理器失败", zap.Error(err))
	} else {
		mgr = m
	}

	sh := shell.Detect(ctx, ins.Paths.Home, ins.Cmder)
	configFile := ins.Paths.ConfigFile()

	facts := plan.Facts{
		CurrentVersion:       pkgmgr.InstalledVersion(ctx, ins.Cmder),
		Arch:                 hostArch(),
		PackageManager:       mgr.Name,
		PackageID:            mgr.PackageID,
		ConfigPath:           configFile,
		ConfigExists:         utils.FileExists(configFile),
		ConfigHasRoleDefault: config.HasRoleDefault(configFile),
		Shell:                string(sh.Name),
		ShellVersion:         sh.Version,
		ProfilePath:          sh.ProfilePath,
		Completions:          sh.Completions,
	}
	return facts, mgr, sh
}

// Plan 构造预览计划，不执行任何副作用
func (ins *Installer) Plan(ctx context.Context, opts Options) *plan.InstallPlan {
	facts, _, _ := ins.GatherFacts(ctx)
	return plan.Build(opts.Flags, facts)
}

// Run 执行真实安装。返回每个步骤的结果；
// 只有包管理器失败和用户取消会让 err 非空。
func (ins *Installer) Run(ctx context.Context, opts Options) ([]StepResult, error) {
	facts, mgr, sh := ins.GatherFacts(ctx)
	ins.Logger.Info("开始安装",
		zap.String("package_manager", mgr.Name),
		zap.String("shell", string(sh.Name)),
		zap.Bool("force", opts.Force))

	if mgr.Name == "" {
		return nil, fmt.Errorf("未找到可用的包管理器，无法继续")
	}

	if !opts.Flags.AssumeYes && !ins.Confirm(i18n.T("confirm.install")) {
		return nil, ErrCancelled
	}

	var results []StepResult

	// 包管理器是唯一的致命步骤
	if err := mgr.Install(ctx, ins.Cmder); err != nil {
		ins.Logger.Error("包管理器安装失败", zap.Error(err))
		results = append(results, StepResult{
			Name: i18n.T("step.package"), Status: StatusFatal, Err: err,
		})
		return results, err
	}
	results = append(results, StepResult{
		Name: i18n.T("step.package"), Status: StatusOK,
		Detail: fmt.Sprintf("%s install %s", mgr.Name, mgr.PackageID),
	})

	results = append(results, ins.ensureConfig())
	results = append(results, ins.generateRole(ctx, opts, facts))
	results = append(results, ins.installShellBlocks(opts, sh)...)

	return results, nil
}

func (ins *Installer) ensureConfig() StepResult {
	name := i18n.T("step.config")
	action, err := config.Ensure(ins.Paths.ConfigFile())
	if err != nil {
		ins.Logger.Warn("写入配置失败", zap.Error(err))
		return StepResult{Name: name, Status: StatusWarn, Err: err}
	}
	return StepResult{Name: name, Status: StatusOK, Detail: action}
}

func (ins *Installer) generateRole(ctx context.Context, opts Options, facts plan.Facts) StepResult {
	name := i18n.T("step.role")
	if opts.Flags.SkipRole {
		return StepResult{Name: name, Status: StatusSkipped, Detail: plan.SkipReasonSkipRole}
	}

	inv := ins.Collector.Collect(ctx, facts.PackageManager)
	if err := role.Write(ins.Paths.RoleFile(), inv); err != nil {
		ins.Logger.Warn("生成 role 文档失败", zap.Error(err))
		return StepResult{Name: name, Status: StatusWarn, Err: err}
	}
	return StepResult{Name: name, Status: StatusOK, Detail: ins.Paths.RoleFile()}
}

func (ins *Installer) installShellBlocks(opts Options, sh shell.Info) []StepResult {
	var results []StepResult

	if sh.Name == shell.Unknown || sh.ProfilePath == "" {
		detail := fmt.Sprintf("未识别的 shell: %s", sh.Name)
		for _, key := range []string{"step.keybinding", "step.completion", "step.wrapper"} {
			results = append(results, StepResult{
				Name: i18n.T(key), Status: StatusSkipped, Detail: detail,
			})
		}
		return results
	}

	results = append(results,
		ins.installBlock("step.keybinding", sh.ProfilePath, shell.KeybindingBlock(sh.Name), opts))
	results = append(results,
		ins.installBlock("step.completion", sh.ProfilePath, shell.CompletionBlock(sh.Name, ins.Paths.CompletionDir()), opts))

	if opts.Flags.NoWrapper {
		results = append(results, StepResult{
			Name: i18n.T("step.wrapper"), Status: StatusSkipped, Detail: plan.SkipReasonNoWrapper,
		})
	} else {
		results = append(results,
			ins.installBlock("step.wrapper", sh.ProfilePath, shell.WrapperBlock(sh.Name), opts))
	}

	return results
}

func (ins *Installer) installBlock(nameKey, profilePath string, blk profile.Block, opts Options) StepResult {
	name := i18n.T(nameKey)

	force := opts.Force
	// 块已存在且未指定 --force 时，交互确认是否重装
	if !force && !opts.Flags.AssumeYes {
		if content, err := readProfile(profilePath); err == nil && profile.Contains(content, blk.Tag) {
			force = ins.Confirm(i18n.Tf("confirm.reinstall", blk.Tag))
		}
	}

	action, err := profile.Install(profilePath, blk, force)
	if err != nil {
		ins.Logger.Warn("安装块失败", zap.String("tag", blk.Tag), zap.Error(err))
		return StepResult{Name: name, Status: StatusWarn, Err: err}
	}

	ins.Logger.Debug("块安装完成",
		zap.String("tag", blk.Tag), zap.String("action", string(action)))
	return StepResult{Name: name, Status: StatusOK, Detail: string(action)}
}

// Uninstall 移除全部托管块，返回实际删除的标记
func (ins *Installer) Uninstall(ctx context.Context, assumeYes bool) ([]string, error) {
	sh := shell.Detect(ctx, ins.Paths.Home, ins.Cmder)
	if sh.ProfilePath == "" {
		return nil, nil
	}

	if !assumeYes && !ins.Confirm(i18n.T("confirm.uninstall")) {
		return nil, ErrCancelled
	}

	var removed []string
	for _, tag := range []string{shell.TagKeybinding, shell.TagCompletion, shell.TagWrapper} {
		ok, err := profile.Uninstall(sh.ProfilePath, tag)
		if err != nil {
			ins.Logger.Warn("移除块失败", zap.String("tag", tag), zap.Error(err))
			continue
		}
		if ok {
			removed = append(removed, tag)
		}
	}
	return removed, nil
}

func readProfile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// hostArch 统一架构命名，外部工具按这些字面值匹配
func hostArch() string {
	switch runtime.GOARCH {
	case "amd64":
		return "x86_64"
	case "386":
		return "x86"
	default:
		return runtime.GOARCH
	}
}
