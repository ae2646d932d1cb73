package main

// Run executes the mcp command. It blocks until the client disconnects.
func (c *MCPCmd) Run(deps *Dependencies) error {
	deps.Logger.Info("serving mcp on stdio")
	return deps.MCP.Run(deps.Ctx)
}
