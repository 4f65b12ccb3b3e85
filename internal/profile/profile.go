package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/YangQing-Lin/aichat-setup-cli/internal/utils"
)

// Action 表示对启动文件执行的操作类型
type Action string

const (
	ActionCreatedFile Action = "created_file" // 文件不存在，新建
	ActionAppended    Action = "appended"     // 文件存在但没有该块，追加
	ActionReplaced    Action = "replaced"     // 已有旧块，删除后重新追加
	ActionNoOp        Action = "no_op"        // 已有该块且未要求强制重装
)

// Block 表示一个带标记的文本块
// Tag 是稳定的标识（如 "wrapper"、"keybinding"），Body 是块的正文（不含哨兵行）
type Block struct {
	Tag  string
	Body string
}

// 哨兵行格式。删除旧块时按整行精确匹配，避免贪婪正则跨块误删
// （历史版本用 "marker ... 终止符" 的多行正则，用户手工编辑过的块会被误伤）。
const (
	beginFormat = "# ===== aichat-setup: %s ====="
	endFormat   = "# ===== aichat-setup: end %s ====="
)

// BeginMarker 返回块的起始哨兵行
func BeginMarker(tag string) string {
	return fmt.Sprintf(beginFormat, tag)
}

// EndMarker 返回块的结束哨兵行
func EndMarker(tag string) string {
	return fmt.Sprintf(endFormat, tag)
}

// Render 渲染完整的块文本（哨兵行 + 正文），末尾带换行
func (b Block) Render() string {
	body := strings.TrimRight(b.Body, "\n")
	return BeginMarker(b.Tag) + "\n" + body + "\n" + EndMarker(b.Tag) + "\n"
}

// Contains 判断内容中是否已存在指定标记的块
func Contains(content, tag string) bool {
	return findBegin(strings.Split(content, "\n"), tag) >= 0
}

// Apply 计算安装一个块之后的新文件内容。纯文本变换，不接触文件系统。
// exists 表示启动文件当前是否存在；force 表示无条件重装已有块。
func Apply(content string, exists bool, blk Block, force bool) (string, Action) {
	if !exists {
		return blk.Render(), ActionCreatedFile
	}

	if !Contains(content, blk.Tag) {
		return appendBlock(content, blk), ActionAppended
	}

	if !force {
		return content, ActionNoOp
	}

	stripped, _ := Remove(content, blk.Tag)
	return appendBlock(stripped, blk), ActionReplaced
}

// Remove 删除指定标记的块，返回新内容和是否发生了删除。
// 删除范围是起始哨兵行到结束哨兵行（含两端）；若结束哨兵缺失
// （块被手工破坏），删除到文件末尾——已知风险，宁可多删块内内容
// 也不静默留下半个块。
func Remove(content, tag string) (string, bool) {
	lines := strings.Split(content, "\n")
	begin := findBegin(lines, tag)
	if begin < 0 {
		return content, false
	}

	end := len(lines) - 1
	endMarker := EndMarker(tag)
	for i := begin + 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t") == endMarker {
			end = i
			break
		}
	}

	out := append([]string{}, lines[:begin]...)
	out = append(out, lines[end+1:]...)

	result := strings.Join(out, "\n")
	// 收敛删除处多余的空行
	for strings.Contains(result, "\n\n\n") {
		result = strings.ReplaceAll(result, "\n\n\n", "\n\n")
	}
	return result, true
}

// Install 把块写入启动文件：读取现有内容、计算新内容、必要时备份后写回。
// 文件不存在不算错误；只有权限等 I/O 错误会向上传播。
func Install(path string, blk Block, force bool) (Action, error) {
	content, exists, err := readIfExists(path)
	if err != nil {
		return "", err
	}

	newContent, action := Apply(content, exists, blk, force)
	if action == ActionNoOp {
		return action, nil
	}

	if exists {
		if err := utils.BackupFile(path); err != nil {
			return "", fmt.Errorf("备份启动文件失败: %w", err)
		}
	}

	if err := writeFile(path, newContent); err != nil {
		return "", err
	}
	return action, nil
}

// Uninstall 从启动文件里删除指定标记的块
func Uninstall(path, tag string) (bool, error) {
	content, exists, err := readIfExists(path)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	newContent, removed := Remove(content, tag)
	if !removed {
		return false, nil
	}

	if err := utils.BackupFile(path); err != nil {
		return false, fmt.Errorf("备份启动文件失败: %w", err)
	}
	if err := writeFile(path, newContent); err != nil {
		return false, err
	}
	return true, nil
}

func findBegin(lines []string, tag string) int {
	marker := BeginMarker(tag)
	for i, line := range lines {
		if strings.TrimRight(line, " \t") == marker {
			return i
		}
	}
	return -1
}

func appendBlock(content string, blk Block) string {
	content = strings.TrimRight(content, "\n")
	if content == "" {
		return blk.Render()
	}
	return content + "\n\n" + blk.Render()
}

func readIfExists(path string) (string, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("读取启动文件失败: %w", err)
	}
	return string(data), true, nil
}

func writeFile(path string, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("写入启动文件失败: %w", err)
	}
	return nil
}
