package version

const (
	Name        = "constitution-mcp"
	DisplayName = "Indian Constitution MCP Server"
	Version     = "0.6.0"
	Author      = "Vikhram S"
	License     = "Apache License 2.0"

	ProtocolVersion = "2025-06-18"
)

var SupportedProtocolVersions = []string{
	"2025-06-18",
	"2025-03-26",
	"2024-11-05",
}
