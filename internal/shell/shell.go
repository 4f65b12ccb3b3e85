package shell

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/YangQing-Lin/aichat-setup-cli/internal/pkgmgr"
	"github.com/YangQing-Lin/aichat-setup-cli/internal/profile"
)

// Name 支持的 shell 类型
type Name string

const (
	Zsh        Name = "zsh"
	Bash       Name = "bash"
	Fish       Name = "fish"
	PowerShell Name = "powershell"
	Unknown    Name = "unknown"
)

// Info 探测到的 shell 及其集成落点
type Info struct {
	Name        Name
	Version     string   // 尽力探测，失败为 "Unknown"
	ProfilePath string   // 启动文件路径
	Completions []string // 该 shell 对应的补全脚本名
}

// Detect 根据 $SHELL（Windows 上固定 PowerShell）识别当前 shell，
// 并给出启动文件路径和版本。home 为用户主目录（测试可注入）。
func Detect(ctx context.Context, home string, cmder pkgmgr.Commander) Info {
	name := current()
	info := Info{
		Name:        name,
		Version:     probeVersion(ctx, name, cmder),
		ProfilePath: profilePath(name, home),
		Completions: completions(name),
	}
	return info
}

func current() Name {
	if runtime.GOOS == "windows" {
		return PowerShell
	}
	switch filepath.Base(os.Getenv("SHELL")) {
	case "zsh":
		return Zsh
	case "bash":
		return Bash
	case "fish":
		return Fish
	default:
		return Unknown
	}
}

func probeVersion(ctx context.Context, name Name, cmder pkgmgr.Commander) string {
	var bin, arg string
	switch name {
	case Zsh, Bash, Fish:
		bin, arg = string(name), "--version"
	case PowerShell:
		bin, arg = "pwsh", "--version"
	default:
		return "Unknown"
	}

	out, err := cmder.Run(ctx, bin, arg)
	if err != nil {
		return "Unknown"
	}
	line := strings.SplitN(strings.TrimSpace(out), "\n", 2)[0]
	if line == "" {
		return "Unknown"
	}
	return line
}

func profilePath(name Name, home string) string {
	switch name {
	case Zsh:
		return filepath.Join(home, ".zshrc")
	case Bash:
		return filepath.Join(home, ".bashrc")
	case Fish:
		return filepath.Join(home, ".config", "fish", "config.fish")
	case PowerShell:
		return filepath.Join(home, "Documents", "PowerShell", "Microsoft.PowerShell_profile.ps1")
	default:
		return ""
	}
}

func completions(name Name) []string {
	switch name {
	case Zsh:
		return []string{"aichat.zsh"}
	case Bash:
		return []string{"aichat.bash"}
	case Fish:
		return []string{"aichat.fish"}
	case PowerShell:
		return []string{"aichat.ps1"}
	default:
		return []string{}
	}
}

// 块标记。标记名是稳定约定，改了会导致旧块无法被识别
const (
	TagWrapper    = "wrapper"
	TagKeybinding = "keybinding"
	TagCompletion = "completion"
)

// WrapperBlock ai 函数：用 local role 调 aichat
func WrapperBlock(name Name) profile.Block {
	var body string
	switch name {
	case Fish:
		body = "function ai\n    command aichat --role local $argv\nend"
	case PowerShell:
		body = "function ai { aichat --role local @Args }"
	default: // zsh/bash 相同
		body = "ai() {\n  command aichat --role local \"$@\"\n}"
	}
	return profile.Block{Tag: TagWrapper, Body: body}
}

// KeybindingBlock Alt+E 把当前命令行交给 aichat 改写
func KeybindingBlock(name Name) profile.Block {
	var body string
	switch name {
	case Zsh:
		body = `_aichat_zsh() {
  if [[ -n "$BUFFER" ]]; then
    local _old=$BUFFER
    BUFFER+="⌛"
    zle -I && zle redisplay
    BUFFER=$(aichat -e "$_old")
    zle end-of-line
  fi
}
zle -N _aichat_zsh
bindkey '\ee' _aichat_zsh`
	case Bash:
		body = `_aichat_bash() {
  if [[ -n "$READLINE_LINE" ]]; then
    READLINE_LINE=$(aichat -e "$READLINE_LINE")
    READLINE_POINT=${#READLINE_LINE}
  fi
}
bind -x '"\ee": _aichat_bash'`
	case Fish:
		body = `function _aichat_fish
    set -l _old (commandline)
    if test -n "$_old"
        commandline (aichat -e "$_old")
    end
end
bind \ee _aichat_fish`
	case PowerShell:
		body = `Set-PSReadLineKeyHandler -Chord "Alt+e" -ScriptBlock {
    $line = $null; $cursor = $null
    [Microsoft.PowerShell.PSConsoleReadLine]::GetBufferState([ref]$line, [ref]$cursor)
    if ($line) {
        $new = aichat -e $line
        [Microsoft.PowerShell.PSConsoleReadLine]::Replace(0, $line.Length, $new)
    }
}`
	default:
		body = ""
	}
	return profile.Block{Tag: TagKeybinding, Body: body}
}

// CompletionBlock 补全脚本存在时才加载
func CompletionBlock(name Name, scriptDir string) profile.Block {
	var body string
	switch name {
	case Zsh:
		body = "[[ -f \"" + scriptDir + "/aichat.zsh\" ]] && source \"" + scriptDir + "/aichat.zsh\""
	case Bash:
		body = "[[ -f \"" + scriptDir + "/aichat.bash\" ]] && source \"" + scriptDir + "/aichat.bash\""
	case Fish:
		body = "test -f \"" + scriptDir + "/aichat.fish\"; and source \"" + scriptDir + "/aichat.fish\""
	case PowerShell:
		body = "if (Test-Path \"" + scriptDir + "\\aichat.ps1\") { . \"" + scriptDir + "\\aichat.ps1\" }"
	default:
		body = ""
	}
	return profile.Block{Tag: TagCompletion, Body: body}
}
