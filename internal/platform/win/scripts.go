package win

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/mj1618/desktop-clippy/internal/pwsh"
)

// scriptPrelude forces UTF-8 output so element names survive the pipe.
const scriptPrelude = "[Console]::OutputEncoding = [System.Text.Encoding]::UTF8\n"

const uiaPrelude = scriptPrelude + `Add-Type -AssemblyName UIAutomationClient
Add-Type -AssemblyName UIAutomationTypes
Add-Type -AssemblyName WindowsBase
function ConvertTo-ElementRecord($el) {
  $rec = [ordered]@{}
  try {
    $c = $el.Current
    $rec.name = $c.Name
    $rec.control_type = $c.ControlType.ProgrammaticName
    $r = $c.BoundingRectangle
    if (-not $r.IsEmpty) { $rec.rect = @([int]$r.X, [int]$r.Y, [int]$r.Width, [int]$r.Height) }
    $vp = $null
    if ($el.TryGetCurrentPattern([System.Windows.Automation.ValuePattern]::Pattern, [ref]$vp)) { $rec.value = $vp.Current.Value }
  } catch {
    $rec.error = $_.Exception.Message
  }
  return $rec
}
`

// childrenScript lists the direct children of the window with handle hwnd.
func childrenScript(hwnd uintptr) string {
	return uiaPrelude + fmt.Sprintf(`$root = [System.Windows.Automation.AutomationElement]::FromHandle([IntPtr]%d)
$items = @()
foreach ($el in $root.FindAll([System.Windows.Automation.TreeScope]::Children, [System.Windows.Automation.Condition]::TrueCondition)) {
  $items += ConvertTo-ElementRecord $el
}
ConvertTo-Json -InputObject @($items) -Compress -Depth 3
`, hwnd)
}

// pointScript describes the element at screen coordinates x, y.
func pointScript(x, y int) string {
	return uiaPrelude + fmt.Sprintf(`$el = [System.Windows.Automation.AutomationElement]::FromPoint((New-Object System.Windows.Point(%d, %d)))
if ($el -eq $null) { return }
ConvertTo-Json -InputObject (ConvertTo-ElementRecord $el) -Compress -Depth 3
`, x, y)
}

// appAliases maps common short names to process names and window titles.
var appAliases = map[string][]string{
	"calculator": {"CalculatorApp", "Calculator"},
	"calc":       {"CalculatorApp", "Calculator"},
	"notepad":    {"Notepad"},
	"chrome":     {"chrome", "Google Chrome"},
	"edge":       {"msedge", "Microsoft Edge", "MicrosoftEdge"},
	"firefox":    {"firefox", "Mozilla Firefox"},
	"code":       {"Code", "Visual Studio Code"},
	"vscode":     {"Code", "Visual Studio Code"},
	"explorer":   {"explorer", "File Explorer"},
	"powershell": {"powershell", "Windows PowerShell"},
	"cmd":        {"cmd", "Command Prompt"},
}

// switchScript finds the first process whose name or main window title
// matches name or one of its aliases, restores the window if minimized and
// brings it to the foreground. It prints one SUCCESS:, FAILED:, NOTFOUND:
// or ERROR: line.
func switchScript(name string) string {
	target := strings.ToLower(strings.TrimSpace(name))
	terms := append([]string{target}, appAliases[target]...)
	return scriptPrelude + fmt.Sprintf(`$searchTerms = @(%s)
$candidates = @()
foreach ($term in $searchTerms) {
  $candidates += Get-Process | Where-Object {
    $_.MainWindowTitle -ne "" -and (
      $_.ProcessName -like "*$term*" -or
      $_.MainWindowTitle -like "*$term*" -or
      $_.ProcessName -eq $term
    )
  }
}
$candidates = @($candidates | Sort-Object Id -Unique)
if ($candidates.Count -eq 0) {
  Write-Output "NOTFOUND:No matching window found"
  return
}
$process = $candidates[0]
Add-Type -TypeDefinition @'
using System;
using System.Runtime.InteropServices;
public class ClippyWin32 {
  [DllImport("user32.dll")] public static extern bool SetForegroundWindow(IntPtr hWnd);
  [DllImport("user32.dll")] public static extern bool ShowWindow(IntPtr hWnd, int nCmdShow);
  [DllImport("user32.dll")] public static extern bool IsIconic(IntPtr hWnd);
}
'@
try {
  if ([ClippyWin32]::IsIconic($process.MainWindowHandle)) {
    [ClippyWin32]::ShowWindow($process.MainWindowHandle, 9) | Out-Null
  }
  if ([ClippyWin32]::SetForegroundWindow($process.MainWindowHandle)) {
    Write-Output "SUCCESS:$($process.MainWindowTitle)"
  } else {
    Write-Output "FAILED:Could not set foreground"
  }
} catch {
  Write-Output "ERROR:$($_.Exception.Message)"
}
`, pwsh.QuoteList(terms))
}

// launchScript starts name through the shell's file associations and the
// App Paths registry.
func launchScript(name string) string {
	return scriptPrelude + fmt.Sprintf("Start-Process %s -ErrorAction Stop\n", pwsh.Quote(name))
}

const readClipboardScript = scriptPrelude + "Get-Clipboard -Raw\n"

// writeClipboardScript embeds text as base64 so no quoting is involved.
func writeClipboardScript(text string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	return scriptPrelude + fmt.Sprintf("Set-Clipboard -Value ([System.Text.Encoding]::UTF8.GetString([Convert]::FromBase64String('%s')))\n", encoded)
}
