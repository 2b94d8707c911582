package schema

type (
	// Command describes a host command.
	Command struct {
		Name        string         `json:"name" yaml:"name"`
		Description string         `json:"description,omitempty" yaml:"description,omitempty"`
		InputSchema map[string]any `json:"inputSchema,omitempty" yaml:"inputSchema,omitempty"`
	}

	ListCommandsRequestParams struct{}

	ListCommandsResult struct {
		Commands []Command `json:"commands"`
	}

	PingRequestParams struct{}

	PingResult struct{}
)
