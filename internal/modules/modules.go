package modules

import (
	"context"
)

// registry holds all registered modules, keyed by module name.
var registry = make(map[string]Module)

// RegisterModule adds a module to the registry. Registration happens once at
// startup; the registry is read-only afterwards.
func RegisterModule(m Module) {
	registry[m.Name()] = m
}

// GetModule returns a module by name
func GetModule(name string) (Module, bool) {
	m, ok := registry[name]
	return m, ok
}

// ListModules returns all registered module names
func ListModules() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// AllTools returns every tool from every registered module, for tools/list.
func AllTools() []Tool {
	var tools []Tool
	for _, m := range registry {
		tools = append(tools, m.Tools()...)
	}
	return tools
}

// FindTool locates the module owning a tool name.
func FindTool(toolName string) (Module, Tool, bool) {
	for _, m := range registry {
		if t, ok := findTool(m.Tools(), toolName); ok {
			return m, t, true
		}
	}
	return nil, Tool{}, false
}

func findTool(tools []Tool, name string) (Tool, bool) {
	for _, t := range tools {
		if t.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}

// Run validates params against the tool's schema and executes it. The
// returned string is the tool's rendered result text; errors are *ToolError
// values ready for boundary translation.
func Run(ctx context.Context, m Module, t Tool, params map[string]any) (string, error) {
	validated, err := ValidateParams(t.InputSchema, params)
	if err != nil {
		return "", err
	}
	return m.ExecuteTool(ctx, t.Name, validated)
}
