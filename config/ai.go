package config

import "fmt"

// AIConfig controls the optional text-completion enhancement of the
// availability predictor. When disabled or incomplete the service runs the
// statistical predictor only.
type AIConfig struct {
	Enabled bool   `json:"enabled"`
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url"`
	Model   string `json:"model"`
	// SiteURL and SiteName are forwarded as attribution headers when the
	// base URL points at OpenRouter.
	SiteURL        string `json:"site_url"`
	SiteName       string `json:"site_name"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

func (c *AIConfig) SetDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.openai.com/v1"
	}
	if c.Model == "" {
		c.Model = "gpt-3.5-turbo"
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 10
	}
}

func (c AIConfig) Validate() error {
	if c.Enabled && c.APIKey == "" {
		return fmt.Errorf("ai api_key is required when ai is enabled")
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("ai timeout_seconds must be positive")
	}
	return nil
}
