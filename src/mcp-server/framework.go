// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"errors"

	"github.com/H0llyW00dzZ/x509-trust-manager/src/internal/bootstrap"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// serverName is the name reported to MCP clients during initialization.
const serverName = "X509 Trust Manager"

// ErrNoRuntime indicates that Build was called without a runtime.
var ErrNoRuntime = errors.New("mcpserver: runtime is required")

// ToolHandler handles a tool call with access to the trust manager runtime.
type ToolHandler func(ctx context.Context, request mcp.CallToolRequest, rt *bootstrap.Runtime) (*mcp.CallToolResult, error)

// ResourceHandler handles a resource read with access to the trust manager runtime.
type ResourceHandler func(ctx context.Context, request mcp.ReadResourceRequest, rt *bootstrap.Runtime) ([]mcp.ResourceContents, error)

// ToolDefinition defines an MCP tool with its handler.
//
// Role is a short identifier used by the instructions template to refer to
// the tool without hardcoding its name.
type ToolDefinition struct {
	Tool    mcp.Tool
	Handler ToolHandler
	Role    string
}

// ResourceDefinition defines an MCP resource with its handler.
type ResourceDefinition struct {
	Resource mcp.Resource
	Handler  ResourceHandler
}

// ServerBuilder helps construct the [MCP] server with proper dependencies using a fluent interface.
//
// Example:
//
//	s, err := NewServerBuilder().
//	    WithRuntime(rt).
//	    WithVersion("1.0.0").
//	    WithTools(createTools()...).
//	    WithResources(createResources()...).
//	    Build()
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type ServerBuilder struct {
	runtime      *bootstrap.Runtime
	version      string
	tools        []ToolDefinition
	resources    []ResourceDefinition
	instructions string
}

// NewServerBuilder creates a new server builder with no dependencies configured.
func NewServerBuilder() *ServerBuilder { return &ServerBuilder{} }

// WithRuntime sets the trust manager runtime the handlers operate on.
func (b *ServerBuilder) WithRuntime(rt *bootstrap.Runtime) *ServerBuilder {
	b.runtime = rt
	return b
}

// WithVersion sets the server version.
func (b *ServerBuilder) WithVersion(version string) *ServerBuilder {
	b.version = version
	return b
}

// WithTools adds tools to the server.
func (b *ServerBuilder) WithTools(tools ...ToolDefinition) *ServerBuilder {
	b.tools = append(b.tools, tools...)
	return b
}

// WithResources adds resources to the server.
func (b *ServerBuilder) WithResources(resources ...ResourceDefinition) *ServerBuilder {
	b.resources = append(b.resources, resources...)
	return b
}

// WithInstructions sets the instructions sent to clients during initialization.
func (b *ServerBuilder) WithInstructions(instructions string) *ServerBuilder {
	b.instructions = instructions
	return b
}

// ServerTools returns the configured tools with their handlers bound to the runtime.
func (b *ServerBuilder) ServerTools() []server.ServerTool {
	tools := make([]server.ServerTool, 0, len(b.tools))
	for _, tool := range b.tools {
		tools = append(tools, server.ServerTool{
			Tool: tool.Tool,
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return tool.Handler(ctx, request, b.runtime)
			},
		})
	}
	return tools
}

// ServerResources returns the configured resources with their handlers bound to the runtime.
func (b *ServerBuilder) ServerResources() []server.ServerResource {
	resources := make([]server.ServerResource, 0, len(b.resources))
	for _, resource := range b.resources {
		resources = append(resources, server.ServerResource{
			Resource: resource.Resource,
			Handler: func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
				return resource.Handler(ctx, request, b.runtime)
			},
		})
	}
	return resources
}

// Build creates the MCP server.
//
// Returns:
//   - *server.MCPServer: Server with all tools and resources registered
//   - error: ErrNoRuntime if no runtime was configured
func (b *ServerBuilder) Build() (*server.MCPServer, error) {
	if b.runtime == nil {
		return nil, ErrNoRuntime
	}

	opts := []server.ServerOption{
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
	}
	if b.instructions != "" {
		opts = append(opts, server.WithInstructions(b.instructions))
	}

	s := server.NewMCPServer(serverName, b.version, opts...)
	s.AddTools(b.ServerTools()...)
	s.AddResources(b.ServerResources()...)

	return s, nil
}
