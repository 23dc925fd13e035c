package server

import (
	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("State-Tool",
			mcp.WithDescription("Capture the desktop state: the focused application, the opened applications, the interactive elements (buttons, text fields, combo boxes, check boxes), the informative text and the scrollable areas of the focused window, with screen coordinates. Set use_vision to also attach a screenshot."),
			mcp.WithBoolean("use_vision", mcp.Description("Attach a PNG screenshot of the primary display"), mcp.DefaultBool(false)),
		),
		s.handleState,
	)

	s.mcp.AddTool(
		mcp.NewTool("Launch-Tool",
			mcp.WithDescription("Launch an application by name (e.g. \"notepad\", \"calculator\", \"chrome\")"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Application name")),
		),
		s.handleLaunch,
	)

	s.mcp.AddTool(
		mcp.NewTool("Switch-Tool",
			mcp.WithDescription("Bring an application window to the foreground by name (e.g. \"notepad\", \"calculator\", \"chrome\")"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Application name or part of its window title")),
		),
		s.handleSwitch,
	)

	s.mcp.AddTool(
		mcp.NewTool("Powershell-Tool",
			mcp.WithDescription("Execute a PowerShell command and return its output with the exit status"),
			mcp.WithString("command", mcp.Required(), mcp.Description("PowerShell command")),
		),
		s.handlePowershell,
	)

	s.mcp.AddTool(
		mcp.NewTool("Clipboard-Tool",
			mcp.WithDescription("Copy text to the clipboard or read the current clipboard content. Use mode \"copy\" with text, or mode \"paste\" to read."),
			mcp.WithString("mode", mcp.Required(), mcp.Enum("copy", "paste"), mcp.Description("copy or paste")),
			mcp.WithString("text", mcp.Description("Text to copy (copy mode only)")),
		),
		s.handleClipboard,
	)

	s.mcp.AddTool(
		mcp.NewTool("Click-Tool",
			mcp.WithDescription("Click at screen coordinates taken from State-Tool output. Supports left, right and middle buttons and single, double or triple clicks."),
			mcp.WithNumber("x", mcp.Required(), mcp.Description("X coordinate")),
			mcp.WithNumber("y", mcp.Required(), mcp.Description("Y coordinate")),
			mcp.WithString("button", mcp.Enum("left", "right", "middle"), mcp.DefaultString("left"), mcp.Description("Mouse button")),
			mcp.WithNumber("clicks", mcp.Min(1), mcp.Max(3), mcp.DefaultNumber(1), mcp.Description("Number of clicks (1-3)")),
		),
		s.handleClick,
	)

	s.mcp.AddTool(
		mcp.NewTool("Type-Tool",
			mcp.WithDescription("Click a text field at the given coordinates and type text. Set clear to replace the existing text instead of appending."),
			mcp.WithNumber("x", mcp.Required(), mcp.Description("X coordinate")),
			mcp.WithNumber("y", mcp.Required(), mcp.Description("Y coordinate")),
			mcp.WithString("text", mcp.Required(), mcp.Description("Text to type")),
			mcp.WithBoolean("clear", mcp.DefaultBool(false), mcp.Description("Select all and delete before typing")),
		),
		s.handleType,
	)

	s.mcp.AddTool(
		mcp.NewTool("Scroll-Tool",
			mcp.WithDescription("Scroll at the given coordinates, or at the current pointer position when none are given. One wheel step is roughly 3 to 5 lines."),
			mcp.WithNumber("x", mcp.Description("X coordinate")),
			mcp.WithNumber("y", mcp.Description("Y coordinate")),
			mcp.WithString("direction", mcp.Enum("up", "down", "left", "right"), mcp.DefaultString("down"), mcp.Description("Scroll direction")),
			mcp.WithNumber("wheel_times", mcp.Min(1), mcp.DefaultNumber(3), mcp.Description("Number of wheel steps")),
		),
		s.handleScroll,
	)

	s.mcp.AddTool(
		mcp.NewTool("Drag-Tool",
			mcp.WithDescription("Drag with the left button from one point to another"),
			mcp.WithNumber("from_x", mcp.Required(), mcp.Description("Start X coordinate")),
			mcp.WithNumber("from_y", mcp.Required(), mcp.Description("Start Y coordinate")),
			mcp.WithNumber("to_x", mcp.Required(), mcp.Description("End X coordinate")),
			mcp.WithNumber("to_y", mcp.Required(), mcp.Description("End Y coordinate")),
		),
		s.handleDrag,
	)

	s.mcp.AddTool(
		mcp.NewTool("Move-Tool",
			mcp.WithDescription("Move the mouse pointer without clicking, e.g. to hover"),
			mcp.WithNumber("x", mcp.Required(), mcp.Description("X coordinate")),
			mcp.WithNumber("y", mcp.Required(), mcp.Description("Y coordinate")),
		),
		s.handleMove,
	)

	s.mcp.AddTool(
		mcp.NewTool("Shortcut-Tool",
			mcp.WithDescription("Press a key combination, e.g. [\"ctrl\", \"c\"] to copy or [\"win\", \"r\"] for the Run dialog"),
			mcp.WithArray("shortcut", mcp.Required(), mcp.WithStringItems(), mcp.Description("Keys pressed together, in order")),
		),
		s.handleShortcut,
	)

	s.mcp.AddTool(
		mcp.NewTool("Key-Tool",
			mcp.WithDescription("Press a single key: enter, escape, tab, space, backspace, delete, up, down, left, right, f1-f12, or a character"),
			mcp.WithString("key", mcp.Required(), mcp.Description("Key name")),
		),
		s.handleKey,
	)

	s.mcp.AddTool(
		mcp.NewTool("Wait-Tool",
			mcp.WithDescription("Pause for a number of seconds, e.g. while an application loads"),
			mcp.WithNumber("duration", mcp.Required(), mcp.Min(0), mcp.Description("Seconds to wait")),
		),
		s.handleWait,
	)

	s.mcp.AddTool(
		mcp.NewTool("Scrape-Tool",
			mcp.WithDescription("Load a web page in a headless browser and return its content as markdown. Provide a full http or https URL."),
			mcp.WithString("url", mcp.Required(), mcp.Description("Page URL")),
		),
		s.handleScrape,
	)

	s.mcp.AddTool(
		mcp.NewTool("Browser-Tool",
			mcp.WithDescription("Launch Microsoft Edge and optionally navigate to a URL"),
			mcp.WithString("url", mcp.Description("URL to open; omit for the home page")),
		),
		s.handleBrowser,
	)

	s.mcp.AddTool(
		mcp.NewTool("PAC-CLI-Tool",
			mcp.WithDescription("Run a Power Platform CLI command, e.g. pac auth list, pac solution list, pac env list"),
			mcp.WithString("command", mcp.Required(), mcp.Description("Command starting with pac")),
		),
		s.handlePACCLI,
	)

	s.mcp.AddTool(
		mcp.NewTool("Connect-MGGraph-Tool",
			mcp.WithDescription("Sign in to Microsoft Graph with Connect-MgGraph and report the connected account"),
			mcp.WithString("scopes", mcp.Description("Comma-separated permission scopes, e.g. User.Read,Mail.Read")),
			mcp.WithString("tenant_id", mcp.Description("Tenant ID")),
		),
		s.handleConnectMGGraph,
	)

	s.mcp.AddTool(
		mcp.NewTool("Graph-API-Tool",
			mcp.WithDescription("Call the Microsoft Graph API (users, groups, mail, files). Requires a prior Connect-MGGraph-Tool call."),
			mcp.WithString("endpoint", mcp.Required(), mcp.Description("Graph endpoint, e.g. /me or /users")),
			mcp.WithString("method", mcp.Enum("GET", "POST", "PUT", "PATCH", "DELETE"), mcp.DefaultString("GET"), mcp.Description("HTTP method")),
			mcp.WithString("body", mcp.Description("JSON request body for non-GET methods")),
		),
		s.handleGraphAPI,
	)

	s.mcp.AddTool(
		mcp.NewTool("Power-Automate-Tool",
			mcp.WithDescription("List, trigger or inspect Power Automate flows through the Power Platform CLI"),
			mcp.WithString("action", mcp.Required(), mcp.Enum("list", "trigger", "status"), mcp.Description("Operation")),
			mcp.WithString("flow_name", mcp.Description("Flow name (trigger and status)")),
			mcp.WithString("parameters", mcp.Description("JSON parameters for trigger")),
		),
		s.handlePowerAutomate,
	)
}
