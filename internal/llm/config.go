// Package llm provides the LLM client abstraction shared by all pipeline
// stages: a direct Gemini client and an HTTP proxy client behind one
// interface, plus model tier configuration and response cleanup helpers.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: rule normalization, short summaries
	TierLite ModelTier = "lite"
	// TierStandard is for structured extraction and chat
	TierStandard ModelTier = "standard"
	// TierAdvanced is for the combined recommendation pass
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	ProxyURL string // when set, requests go through the language-model proxy
	Models   map[ModelTier]string
}

// DefaultConfig returns the default Gemini configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a given tier, falling back through
// standard and lite when the tier is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithProxy returns a copy of the config routed through the given proxy URL
func (c *Config) WithProxy(url string) *Config {
	out := &Config{
		Provider: c.Provider,
		ProxyURL: url,
		Models:   make(map[ModelTier]string, len(c.Models)),
	}
	for k, v := range c.Models {
		out.Models[k] = v
	}
	return out
}
