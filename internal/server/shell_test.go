package server

import (
	"reflect"
	"strings"
	"testing"

	"github.com/mj1618/desktop-clippy/internal/platform"
)

func TestPowershellTool(t *testing.T) {
	f := newFixture(t)
	f.shell.result = platform.ShellResult{Output: "hi", ExitCode: 0}
	res := f.call(t, "Powershell-Tool", map[string]interface{}{"command": "echo hi"})
	if got, want := resultText(res), "Status Code: 0\nResponse: hi"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if !reflect.DeepEqual(f.shell.commands, []string{"echo hi"}) {
		t.Errorf("commands %v", f.shell.commands)
	}

	f.shell.result = platform.ShellResult{Output: "not found", ExitCode: 1}
	res = f.call(t, "Powershell-Tool", map[string]interface{}{"command": "nope"})
	if res.IsError {
		t.Error("a non-zero exit code is a result, not a tool error")
	}
	if got, want := resultText(res), "Status Code: 1\nResponse: not found"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestShellToolsRefusedWhenDisabled(t *testing.T) {
	calls := []struct {
		tool string
		args map[string]interface{}
	}{
		{"Powershell-Tool", map[string]interface{}{"command": "dir"}},
		{"PAC-CLI-Tool", map[string]interface{}{"command": "pac env list"}},
		{"Connect-MGGraph-Tool", map[string]interface{}{}},
		{"Graph-API-Tool", map[string]interface{}{"endpoint": "/me"}},
		{"Power-Automate-Tool", map[string]interface{}{"action": "list"}},
	}
	for _, c := range calls {
		f := newFixture(t)
		f.server.cfg.Shell.Enabled = false
		res := f.call(t, c.tool, c.args)
		if !res.IsError || resultText(res) != ErrShellDisabled.Error() {
			t.Errorf("%s: got error=%v %q", c.tool, res.IsError, resultText(res))
		}
		if len(f.shell.commands) != 0 {
			t.Errorf("%s: shell ran %v", c.tool, f.shell.commands)
		}
	}
}

func TestPACCLITool(t *testing.T) {
	f := newFixture(t)
	res := f.call(t, "PAC-CLI-Tool", map[string]interface{}{"command": "dir C:\\"})
	if !res.IsError || resultText(res) != `Command must start with "pac". Example: pac env list` {
		t.Errorf("got error=%v %q", res.IsError, resultText(res))
	}
	res = f.call(t, "PAC-CLI-Tool", map[string]interface{}{"command": "pacman -S"})
	if !res.IsError {
		t.Error("pacman is not pac")
	}

	f.shell.result = platform.ShellResult{Output: "env1", ExitCode: 0}
	res = f.call(t, "PAC-CLI-Tool", map[string]interface{}{"command": "pac env list"})
	if got, want := resultText(res), "PAC CLI executed successfully:\nenv1"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	f.shell.result = platform.ShellResult{Output: "auth required", ExitCode: 2}
	res = f.call(t, "PAC-CLI-Tool", map[string]interface{}{"command": "pac env list"})
	if got, want := resultText(res), "PAC CLI command failed (Status: 2):\nauth required"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestConnectGraphCommand(t *testing.T) {
	got := connectGraphCommand([]string{"User.Read", "Mail.Read"}, "tenant-1")
	want := "Import-Module Microsoft.Graph; Connect-MgGraph -Scopes 'User.Read','Mail.Read' -TenantId 'tenant-1'" +
		"; Get-MgContext | Select-Object Account, Scopes, Environment | Format-List"
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestConnectMGGraphTool_DefaultScope(t *testing.T) {
	f := newFixture(t)
	f.shell.result = platform.ShellResult{Output: "Account : me", ExitCode: 0}
	res := f.call(t, "Connect-MGGraph-Tool", map[string]interface{}{"scopes": " , "})
	if got, want := resultText(res), "Microsoft Graph connection established:\nAccount : me"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if len(f.shell.commands) != 1 || !strings.Contains(f.shell.commands[0], "-Scopes 'User.Read';") {
		t.Errorf("commands %v", f.shell.commands)
	}
}

func TestGraphCommand(t *testing.T) {
	tests := []struct {
		endpoint, method, body string
		want                   string
	}{
		{"me", "GET", "", "Get-MgUser -UserId me | ConvertTo-Json -Depth 3"},
		{"/groups", "GET", "", "Get-MgGroup -All | ConvertTo-Json -Depth 3"},
		{"/users", "DELETE", "", "Invoke-MgGraphRequest -Uri 'https://graph.microsoft.com/v1.0/users' -Method DELETE | ConvertTo-Json -Depth 3"},
		{"/me/messages", "POST", `{"subject":"it's"}`,
			`Invoke-MgGraphRequest -Uri 'https://graph.microsoft.com/v1.0/me/messages' -Method POST -Body '{"subject":"it''s"}' | ConvertTo-Json -Depth 3`},
		{"/me/drive", "GET", "ignored", "Invoke-MgGraphRequest -Uri 'https://graph.microsoft.com/v1.0/me/drive' -Method GET | ConvertTo-Json -Depth 3"},
	}
	for _, tt := range tests {
		if got := graphCommand(tt.endpoint, tt.method, tt.body); got != tt.want {
			t.Errorf("graphCommand(%q, %q, %q)\ngot  %q\nwant %q", tt.endpoint, tt.method, tt.body, got, tt.want)
		}
	}
}

func TestGraphAPITool(t *testing.T) {
	f := newFixture(t)
	if res := f.call(t, "Graph-API-Tool", map[string]interface{}{"endpoint": "/me", "method": "HEAD"}); !res.IsError {
		t.Error("HEAD should be rejected")
	}
	f.shell.result = platform.ShellResult{Output: "denied", ExitCode: 1}
	res := f.call(t, "Graph-API-Tool", map[string]interface{}{"endpoint": "/me"})
	if got, want := resultText(res), "Graph API call failed (Status: 1):\ndenied"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFlowCommand(t *testing.T) {
	tests := []struct {
		action, flow, params string
		want                 string
		wantErr              bool
	}{
		{"list", "", "", "pac flow list", false},
		{"trigger", "Daily Report", "", "pac flow run --name 'Daily Report'", false},
		{"trigger", "Daily", `{"a":1}`, `pac flow run --name 'Daily' --parameters '{"a":1}'`, false},
		{"status", "Daily", "", "pac flow show --name 'Daily'", false},
		{"trigger", "", "", "", true},
		{"status", "", "", "", true},
		{"create", "x", "", "", true},
	}
	for _, tt := range tests {
		got, err := flowCommand(tt.action, tt.flow, tt.params)
		if (err != nil) != tt.wantErr {
			t.Errorf("flowCommand(%q, %q): err = %v, wantErr %v", tt.action, tt.flow, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("flowCommand(%q, %q) = %q, want %q", tt.action, tt.flow, got, tt.want)
		}
	}
}

func TestPowerAutomateTool(t *testing.T) {
	f := newFixture(t)
	if res := f.call(t, "Power-Automate-Tool", map[string]interface{}{"action": "trigger"}); !res.IsError {
		t.Error("trigger without flow_name should fail")
	}
	f.shell.result = platform.ShellResult{Output: "flows", ExitCode: 0}
	res := f.call(t, "Power-Automate-Tool", map[string]interface{}{"action": "list"})
	if got, want := resultText(res), "Power Automate operation completed:\nflows"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPowershellTool_RunErrorBecomesOutput(t *testing.T) {
	f := newFixture(t)
	f.shell.result = platform.ShellResult{ExitCode: 1}
	f.shell.err = errBoom
	res := f.call(t, "Powershell-Tool", map[string]interface{}{"command": "dir"})
	if got, want := resultText(res), "Status Code: 1\nResponse: boom"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	f.shell.result = platform.ShellResult{}
	if res := f.call(t, "Powershell-Tool", map[string]interface{}{"command": "dir"}); !res.IsError {
		t.Error("an error without an exit code should be a tool error")
	}
}
