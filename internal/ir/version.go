package ir

// Version constants for the plugin manifest.
const (
	// PluginName is the name announced in the manifest.
	PluginName = "chalmers-thesis"

	// PluginVersion is the manifest schema version understood by the host.
	PluginVersion = "0.1"
)

// Output formats supported by the transforms.
const (
	FormatHTML  = "html"
	FormatLaTeX = "latex"
)
