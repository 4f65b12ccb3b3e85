package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/YangQing-Lin/aichat-setup-cli/internal/config"
	"github.com/YangQing-Lin/aichat-setup-cli/internal/installer"
	"github.com/YangQing-Lin/aichat-setup-cli/internal/logging"
	"github.com/YangQing-Lin/aichat-setup-cli/internal/pkgmgr"
)

var (
	baseDir string // --dir 参数
	verbose bool   // --verbose 参数
)

// resolvePaths 解析全部落点路径（考虑 --dir 参数）
func resolvePaths() (config.Paths, error) {
	return config.ResolvePaths(baseDir)
}

// newInstaller 组装编排器：路径、日志、真实命令执行器、交互确认
func newInstaller() (*installer.Installer, error) {
	paths, err := resolvePaths()
	if err != nil {
		return nil, err
	}

	logger := logging.New(verbose, paths.LogFile())
	ins := installer.New(paths, pkgmgr.SystemCommander{}, logger)
	ins.Confirm = confirmPrompt
	return ins, nil
}

// confirmPrompt 终端交互确认。stdin 不是终端时直接按"否"处理，
// 调用方应该用 --assume-yes 跳过确认。
func confirmPrompt(prompt string) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false
	}

	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
