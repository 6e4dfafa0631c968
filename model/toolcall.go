package model

// ToolCall is a parsed request to execute a named tool. Argument values of
// any primitive JSON type are coerced to their canonical string form at parse
// time, so all providers hand the dispatcher the same shape.
type ToolCall struct {
	Name      string
	Arguments map[string]string
}

// ToolResult is the outcome of executing a tool: a human-readable message
// plus an optional embedded image payload (PNG data URL).
type ToolResult struct {
	Message  string
	ImageURL string
}
