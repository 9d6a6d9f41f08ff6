package desktop

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrUnsupported is returned by capabilities the current platform lacks.
var ErrUnsupported = errors.New("not supported on this platform")

// LockScreen sets the lock-screen image from a local file.
type LockScreen interface {
	Supported() bool
	SetImage(ctx context.Context, path string) error
}

// NewLockScreen picks the implementation for goos (normally runtime.GOOS).
// Only Windows exposes a lock-screen API; everything else gets a no-op.
func NewLockScreen(goos string) LockScreen {
	if goos == "windows" {
		return &winrtLockScreen{run: runPowerShell}
	}
	return noopLockScreen{}
}

type noopLockScreen struct{}

func (noopLockScreen) Supported() bool { return false }

func (noopLockScreen) SetImage(context.Context, string) error { return ErrUnsupported }

// lockImageEnv carries the path into the script so it never needs quoting.
const lockImageEnv = "APODBAR_LOCK_IMAGE"

// setLockScreenScript awaits StorageFile.GetFileFromPathAsync and
// LockScreen.SetImageFileAsync through the WinRT projection.
const setLockScreenScript = `
$ErrorActionPreference = 'Stop'
Add-Type -AssemblyName System.Runtime.WindowsRuntime
[Windows.Storage.StorageFile,Windows.Storage,ContentType=WindowsRuntime] | Out-Null
[Windows.System.UserProfile.LockScreen,Windows.System.UserProfile,ContentType=WindowsRuntime] | Out-Null
$methods = [System.WindowsRuntimeSystemExtensions].GetMethods()
$asTaskOp = ($methods | Where-Object { $_.Name -eq 'AsTask' -and $_.GetParameters().Count -eq 1 -and $_.GetParameters()[0].ParameterType.Name -eq 'IAsyncOperation` + "`" + `1' })[0]
$asTaskAction = ($methods | Where-Object { $_.Name -eq 'AsTask' -and $_.GetParameters().Count -eq 1 -and $_.GetParameters()[0].ParameterType.Name -eq 'IAsyncAction' })[0]
$op = [Windows.Storage.StorageFile]::GetFileFromPathAsync($env:APODBAR_LOCK_IMAGE)
$task = $asTaskOp.MakeGenericMethod([Windows.Storage.StorageFile]).Invoke($null, @($op))
$task.Wait(-1) | Out-Null
$action = [Windows.System.UserProfile.LockScreen]::SetImageFileAsync($task.Result)
$asTaskAction.Invoke($null, @($action)).Wait(-1) | Out-Null
`

type winrtLockScreen struct {
	run func(ctx context.Context, script string, env []string) ([]byte, error)
}

func (*winrtLockScreen) Supported() bool { return true }

func (l *winrtLockScreen) SetImage(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("lock screen image path is empty")
	}
	out, err := l.run(ctx, setLockScreenScript, []string{lockImageEnv + "=" + path})
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			return fmt.Errorf("set lock screen: %w", err)
		}
		return fmt.Errorf("set lock screen: %w: %s", err, msg)
	}
	return nil
}

func runPowerShell(ctx context.Context, script string, env []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "powershell.exe", "-NoProfile", "-NonInteractive", "-Command", script)
	cmd.Env = append(os.Environ(), env...)
	return cmd.CombinedOutput()
}
