package llm

import "net/http"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// NewOpenRouterProvider returns an OpenAIProvider pointed at OpenRouter.
// Model ids are passed through unchanged.
func NewOpenRouterProvider(ep Endpoint) (*OpenAIProvider, error) {
	if ep.BaseURL == "" {
		ep.BaseURL = defaultOpenRouterBaseURL
	}
	client := &http.Client{Transport: &headerTransport{
		base: http.DefaultTransport,
		headers: map[string]string{
			"X-Title":      "PRISM",
			"HTTP-Referer": "https://github.com/abhisek/prism",
		},
	}}
	return newOpenAIProvider(ep, client, nil)
}
