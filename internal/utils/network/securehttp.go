package network

import (
	"crypto/tls"
	"net/http"
	"time"
)

// DownloadTimeout bounds a whole archive transfer, matching the legacy
// updater's 600-second limit.
const DownloadTimeout = 600 * time.Second

// NewSecureHTTPClient returns an http.Client with a custom TLS configuration.
// Callers reuse this instead of re-defining the TLS settings everywhere.
func NewSecureHTTPClient() *http.Client {
	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
		MaxVersion: tls.VersionTLS13,
	}

	transport := &http.Transport{
		TLSClientConfig:   tlsConfig,
		ForceAttemptHTTP2: true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   DownloadTimeout,
	}
}
