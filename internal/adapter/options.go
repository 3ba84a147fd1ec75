package adapter

import "github.com/MKhiriev/go-note-sync/internal/config"

// OptionsFromConfig extracts the adapter tuning from the client config.
func OptionsFromConfig(cfg config.ClientAdapter) Options {
	return Options{
		RequestTimeout: cfg.RequestTimeout,
		MaxRetries:     cfg.MaxRetries,
		RetryBaseDelay: cfg.RetryBaseDelay,
	}
}
