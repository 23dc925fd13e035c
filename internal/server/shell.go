package server

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/mj1618/desktop-clippy/internal/platform"
	"github.com/mj1618/desktop-clippy/internal/pwsh"
)

// ErrShellDisabled is reported by every shell-backed tool when shell.enabled
// is off.
var ErrShellDisabled = errors.New("shell access is disabled by configuration (shell.enabled)")

const graphBaseURL = "https://graph.microsoft.com/v1.0"

// runShell runs command through the platform shell with the configured
// timeout. A returned error means the command could not be run at all; a
// failure the shell reports with an exit code is folded into the result.
func (s *Server) runShell(ctx context.Context, command string) (platform.ShellResult, error) {
	if !s.cfg.Shell.Enabled {
		return platform.ShellResult{}, ErrShellDisabled
	}
	if s.provider.Shell == nil {
		return platform.ShellResult{}, errors.New("shell is not available on this platform")
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Shell.Timeout)
	defer cancel()
	s.logger.Debug("running shell command", zap.String("command", command))
	res, err := s.provider.Shell.Run(ctx, command)
	if err != nil {
		if res.ExitCode == 0 {
			return res, err
		}
		if res.Output == "" {
			res.Output = err.Error()
		}
	}
	return res, nil
}

// shellReport runs command and formats the reply with okPrefix on exit code
// 0 and failPrefix (given the code) otherwise.
func (s *Server) shellReport(ctx context.Context, command, okPrefix, failPrefix string) (*mcp.CallToolResult, error) {
	res, err := s.runShell(ctx, command)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if res.ExitCode == 0 {
		return mcp.NewToolResultText(okPrefix + ":\n" + res.Output), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s (Status: %d):\n%s", failPrefix, res.ExitCode, res.Output)), nil
}

func (s *Server) handlePowershell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	command, err := requireString(request.GetArguments(), "command")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := s.runShell(ctx, command)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Status Code: %d\nResponse: %s", res.ExitCode, res.Output)), nil
}

func (s *Server) handlePACCLI(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	command, err := requireString(request.GetArguments(), "command")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	command = strings.TrimSpace(command)
	if first, _, _ := strings.Cut(command, " "); !strings.EqualFold(first, "pac") {
		return mcp.NewToolResultError(`Command must start with "pac". Example: pac env list`), nil
	}

	return s.shellReport(ctx, command, "PAC CLI executed successfully", "PAC CLI command failed")
}

func (s *Server) handleConnectMGGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	var scopes []string
	for _, scope := range strings.Split(stringParam(params, "scopes", ""), ",") {
		if scope = strings.TrimSpace(scope); scope != "" {
			scopes = append(scopes, scope)
		}
	}
	if len(scopes) == 0 {
		scopes = []string{"User.Read"}
	}

	return s.shellReport(ctx, connectGraphCommand(scopes, stringParam(params, "tenant_id", "")),
		"Microsoft Graph connection established", "Failed to connect to Microsoft Graph")
}

func connectGraphCommand(scopes []string, tenantID string) string {
	connect := "Connect-MgGraph -Scopes " + pwsh.QuoteList(scopes)
	if tenantID = strings.TrimSpace(tenantID); tenantID != "" {
		connect += " -TenantId " + pwsh.Quote(tenantID)
	}
	return "Import-Module Microsoft.Graph; " + connect +
		"; Get-MgContext | Select-Object Account, Scopes, Environment | Format-List"
}

func (s *Server) handleGraphAPI(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	endpoint, err := requireString(params, "endpoint")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	method := strings.ToUpper(strings.TrimSpace(stringParam(params, "method", "GET")))
	switch method {
	case "GET", "POST", "PUT", "PATCH", "DELETE":
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unsupported method %q", method)), nil
	}

	return s.shellReport(ctx, graphCommand(endpoint, method, stringParam(params, "body", "")),
		"Graph API call successful", "Graph API call failed")
}

// graphCmdlets maps common read endpoints to their Microsoft.Graph cmdlets.
var graphCmdlets = map[string]string{
	"/me":     "Get-MgUser -UserId me",
	"/users":  "Get-MgUser -All",
	"/groups": "Get-MgGroup -All",
}

func graphCommand(endpoint, method, body string) string {
	endpoint = strings.TrimSpace(endpoint)
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	if cmdlet, ok := graphCmdlets[endpoint]; ok && method == "GET" {
		return cmdlet + " | ConvertTo-Json -Depth 3"
	}
	cmd := fmt.Sprintf("Invoke-MgGraphRequest -Uri %s -Method %s", pwsh.Quote(graphBaseURL+endpoint), method)
	if body != "" && method != "GET" {
		cmd += " -Body " + pwsh.Quote(body)
	}
	return cmd + " | ConvertTo-Json -Depth 3"
}

func (s *Server) handlePowerAutomate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	action, err := requireString(params, "action")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	command, err := flowCommand(strings.ToLower(strings.TrimSpace(action)),
		strings.TrimSpace(stringParam(params, "flow_name", "")),
		stringParam(params, "parameters", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.shellReport(ctx, command, "Power Automate operation completed", "Power Automate operation failed")
}

func flowCommand(action, flowName, parameters string) (string, error) {
	switch action {
	case "list":
		return "pac flow list", nil
	case "trigger":
		if flowName == "" {
			return "", errors.New("flow_name is required for trigger")
		}
		cmd := "pac flow run --name " + pwsh.Quote(flowName)
		if parameters != "" {
			cmd += " --parameters " + pwsh.Quote(parameters)
		}
		return cmd, nil
	case "status":
		if flowName == "" {
			return "", errors.New("flow_name is required for status")
		}
		return "pac flow show --name " + pwsh.Quote(flowName), nil
	default:
		return "", fmt.Errorf("unknown action %q: use list, trigger or status", action)
	}
}
