package embed

import "fmt"

// Config contains configuration for creating an embedding provider.
type Config struct {
	// Provider selects which embedding provider to construct ("remote" or "mock").
	Provider string

	// Endpoint is the URL of the remote embedding service (for the "remote" provider).
	Endpoint string

	// Dimensions sets the mock provider's vector width (for the "mock" provider).
	Dimensions int
}

// NewProvider creates an embedding provider based on the configuration.
func NewProvider(config Config) (Provider, error) {
	switch config.Provider {
	case "remote", "": // empty defaults to remote
		return newRemoteProvider(config.Endpoint)

	case "mock": // for testing and offline development
		if config.Dimensions > 0 {
			return NewMockProviderDims(config.Dimensions), nil
		}
		return NewMockProvider(), nil

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s (supported: remote, mock)", config.Provider)
	}
}
