package pkgmgr

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeCommander 测试用命令执行器
type fakeCommander struct {
	available map[string]bool   // LookPath 能找到的命令
	outputs   map[string]string // "name args..." -> 输出
	fails     map[string]error  // "name args..." -> 错误
	calls     []string
}

func (f *fakeCommander) LookPath(name string) (string, error) {
	if f.available[name] {
		return "/usr/bin/" + name, nil
	}
	return "", errors.New("not found")
}

func (f *fakeCommander) Run(ctx context.Context, name string, args ...string) (string, error) {
	key := strings.TrimSpace(name + " " + strings.Join(args, " "))
	f.calls = append(f.calls, key)
	if err, ok := f.fails[key]; ok {
		return "", err
	}
	return f.outputs[key], nil
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		available []string
		wantName  string
		wantID    string
		wantErr   bool
	}{
		{"brew 优先", []string{"brew", "apt-get"}, "brew", "aichat", false},
		{"winget", []string{"winget"}, "winget", "sigoden.aichat", false},
		{"apt-get 兜底", []string{"apt-get"}, "apt-get", "aichat", false},
		{"无包管理器", nil, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmder := &fakeCommander{available: map[string]bool{}}
			for _, name := range tt.available {
				cmder.available[name] = true
			}

			mgr, err := Detect(cmder)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("期望报错，实际成功: %+v", mgr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Detect 失败: %v", err)
			}
			if mgr.Name != tt.wantName || mgr.PackageID != tt.wantID {
				t.Errorf("探测结果不正确，期望: %s/%s, 实际: %s/%s",
					tt.wantName, tt.wantID, mgr.Name, mgr.PackageID)
			}
		})
	}
}

func TestInstall(t *testing.T) {
	cmder := &fakeCommander{available: map[string]bool{"brew": true}}
	mgr, err := Detect(cmder)
	if err != nil {
		t.Fatalf("Detect 失败: %v", err)
	}

	if err := mgr.Install(context.Background(), cmder); err != nil {
		t.Fatalf("Install 失败: %v", err)
	}
	if len(cmder.calls) != 1 || cmder.calls[0] != "brew install aichat" {
		t.Errorf("安装命令不正确: %v", cmder.calls)
	}
}

func TestInstallFailure(t *testing.T) {
	cmder := &fakeCommander{
		available: map[string]bool{"brew": true},
		fails:     map[string]error{"brew install aichat": errors.New("exit status 1")},
	}
	mgr, _ := Detect(cmder)

	err := mgr.Install(context.Background(), cmder)
	if err == nil {
		t.Fatalf("包管理器失败时 Install 必须报错")
	}
	if !strings.Contains(err.Error(), "包管理器安装失败") {
		t.Errorf("错误信息不正确: %v", err)
	}
}

func TestInstalledVersion(t *testing.T) {
	tests := []struct {
		name      string
		available bool
		output    string
		runErr    error
		want      string
	}{
		{"正常输出", true, "aichat 0.30.0\n", nil, "0.30.0"},
		{"未安装", false, "", nil, ""},
		{"执行失败", true, "", errors.New("boom"), ""},
		{"裸版本号", true, "0.29.0", nil, "0.29.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmder := &fakeCommander{
				available: map[string]bool{"aichat": tt.available},
				outputs:   map[string]string{"aichat --version": tt.output},
			}
			if tt.runErr != nil {
				cmder.fails = map[string]error{"aichat --version": tt.runErr}
			}

			if got := InstalledVersion(context.Background(), cmder); got != tt.want {
				t.Errorf("版本不正确，期望: %q, 实际: %q", tt.want, got)
			}
		})
	}
}

func TestInstallArgs(t *testing.T) {
	for _, m := range known {
		args := m.InstallArgs()
		if len(args) == 0 {
			t.Errorf("%s 的安装参数为空", m.Name)
		}
		joined := strings.Join(args, " ")
		if !strings.Contains(joined, m.PackageID) {
			t.Errorf("%s 的安装参数缺少包名 %s: %v", m.Name, m.PackageID, args)
		}
	}
}
