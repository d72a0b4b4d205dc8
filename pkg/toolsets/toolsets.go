// Package toolsets groups MCP tools into named, individually enableable sets.
package toolsets

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ServerTool pairs a tool descriptor with its handler.
type ServerTool struct {
	Tool    mcp.Tool
	Handler server.ToolHandlerFunc
}

func NewServerTool(tool mcp.Tool, handler server.ToolHandlerFunc) ServerTool {
	return ServerTool{Tool: tool, Handler: handler}
}

// Toolset is a named collection of tools that can be enabled as a unit. Every
// tool this server registers is read-only; there is no write tier.
type Toolset struct {
	Name        string
	Description string
	Enabled     bool
	tools       []ServerTool
}

func NewToolset(name string, description string) *Toolset {
	return &Toolset{
		Name:        name,
		Description: description,
	}
}

// AddReadTools appends tools to the set and returns the set for chaining.
func (t *Toolset) AddReadTools(tools ...ServerTool) *Toolset {
	t.tools = append(t.tools, tools...)
	return t
}

// GetActiveTools returns the tools in this set, or nil when disabled.
func (t *Toolset) GetActiveTools() []ServerTool {
	if !t.Enabled {
		return nil
	}
	return t.tools
}

// RegisterTools adds the set's tools to the MCP server if the set is enabled.
func (t *Toolset) RegisterTools(s *server.MCPServer) {
	if !t.Enabled {
		return
	}
	for _, tool := range t.tools {
		s.AddTool(tool.Tool, tool.Handler)
	}
}

// ToolsetGroup holds all toolsets the server knows about.
type ToolsetGroup struct {
	Toolsets     map[string]*Toolset
	everythingOn bool
}

func NewToolsetGroup() *ToolsetGroup {
	return &ToolsetGroup{
		Toolsets: make(map[string]*Toolset),
	}
}

func (tg *ToolsetGroup) AddToolset(ts *Toolset) {
	tg.Toolsets[ts.Name] = ts
}

func (tg *ToolsetGroup) IsEnabled(name string) bool {
	if tg.everythingOn {
		return true
	}
	ts, ok := tg.Toolsets[name]
	return ok && ts.Enabled
}

// EnableToolsets enables the named toolsets. The special name "all" enables
// every registered set.
func (tg *ToolsetGroup) EnableToolsets(names []string) error {
	for _, name := range names {
		if name == "all" {
			tg.everythingOn = true
			continue
		}
		if err := tg.EnableToolset(name); err != nil {
			return err
		}
	}
	if tg.everythingOn {
		for name := range tg.Toolsets {
			if err := tg.EnableToolset(name); err != nil {
				return err
			}
		}
	}
	return nil
}

func (tg *ToolsetGroup) EnableToolset(name string) error {
	ts, ok := tg.Toolsets[name]
	if !ok {
		return fmt.Errorf("toolset %s does not exist", name)
	}
	ts.Enabled = true
	return nil
}

// RegisterTools adds every enabled toolset's tools to the MCP server.
func (tg *ToolsetGroup) RegisterTools(s *server.MCPServer) {
	for _, ts := range tg.Toolsets {
		ts.RegisterTools(s)
	}
}
