package notify

import (
	"fmt"
	"strings"
)

// notificationSeconds is how long popups stay on screen where the tool accepts a duration.
const notificationSeconds = 10

// MethodsFor returns the notification methods for goos in the order they are tried.
func MethodsFor(goos string, run Runner) []Method {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return []Method{
			NewCommandMethod("notify-send", "notify-send", func(title, message string) []string {
				return []string{"--app-name=battery-monitor", title, message}
			}, run),
			NewCommandMethod("zenity", "zenity", func(title, message string) []string {
				return []string{"--notification", "--text=" + title + ": " + message}
			}, run),
			NewCommandMethod("kdialog", "kdialog", func(title, message string) []string {
				return []string{"--passivepopup", message, fmt.Sprint(notificationSeconds), "--title", title}
			}, run),
		}
	case "darwin":
		return []Method{
			NewCommandMethod("osascript", "osascript", func(title, message string) []string {
				return []string{"-e", fmt.Sprintf("display notification %s with title %s",
					appleScriptString(message), appleScriptString(title))}
			}, run),
			NewCommandMethod("terminal-notifier", "terminal-notifier", func(title, message string) []string {
				return []string{"-title", title, "-message", message}
			}, run),
		}
	case "windows":
		return []Method{
			NewCommandMethod("windows-toast", "powershell.exe", func(title, message string) []string {
				return []string{"-NoProfile", "-NonInteractive", "-Command", windowsToastScript(title, message)}
			}, run),
			NewCommandMethod("burnt-toast", "powershell.exe", func(title, message string) []string {
				return []string{"-NoProfile", "-NonInteractive", "-Command", fmt.Sprintf(
					"New-BurntToastNotification -Text %s, %s",
					powerShellString(title), powerShellString(message))}
			}, run),
		}
	default:
		return []Method{unsupportedMethod{goos: goos}}
	}
}

// appleScriptString quotes s as an AppleScript string literal.
func appleScriptString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)

	return `"` + r.Replace(s) + `"`
}

// powerShellString quotes s as a single-quoted PowerShell literal.
func powerShellString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// xmlEscape escapes the characters that are special inside XML text nodes.
func xmlEscape(s string) string {
	r := strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;", `"`, "&quot;", `'`, "&apos;")

	return r.Replace(s)
}

// windowsToastScript builds a PowerShell script showing a WinRT toast notification.
func windowsToastScript(title, message string) string {
	toastXML := fmt.Sprintf(`<toast><visual><binding template="ToastGeneric"><text>%s</text><text>%s</text></binding></visual></toast>`,
		xmlEscape(title), xmlEscape(message))

	return strings.Join([]string{
		`[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] > $null`,
		`[Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom.XmlDocument, ContentType = WindowsRuntime] > $null`,
		`$xml = New-Object Windows.Data.Xml.Dom.XmlDocument`,
		`$xml.LoadXml(` + powerShellString(toastXML) + `)`,
		`$toast = New-Object Windows.UI.Notifications.ToastNotification $xml`,
		`[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier('Battery Monitor').Show($toast)`,
	}, "; ")
}
