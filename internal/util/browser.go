package util

import (
	"fmt"
	"os/exec"
	"runtime"
)

// browserCommands 各平台打开 URL 的命令，按优先级排列
func browserCommands(goos, url string) [][]string {
	switch goos {
	case "windows":
		// rundll32 在 Windows 7 上比 cmd /c start 更稳定
		return [][]string{
			{"rundll32", "url.dll,FileProtocolHandler", url},
			{"explorer", url},
		}
	case "darwin":
		return [][]string{{"open", url}}
	default:
		return [][]string{
			{"xdg-open", url},
			{"sensible-browser", url},
			{"google-chrome", url},
			{"firefox", url},
		}
	}
}

// OpenBrowser 用系统默认浏览器打开 url，依次尝试各平台的备选命令
func OpenBrowser(url string) error {
	var lastErr error
	for _, args := range browserCommands(runtime.GOOS, url) {
		lastErr = exec.Command(args[0], args[1:]...).Start()
		if lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("无法打开浏览器: %w", lastErr)
}

// LocalURL 本机访问地址
func LocalURL(port int) string {
	return fmt.Sprintf("http://localhost:%d", port)
}
