package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tlsConfig(tls TLSConfig) *Config {
	return &Config{Server: ServerConfig{TLS: tls}}
}

func TestValidateTLSConfigModes(t *testing.T) {
	tests := []struct {
		name        string
		tls         TLSConfig
		expectError bool
		errorMsg    string
	}{
		{
			name:        "disabled mode needs nothing",
			tls:         TLSConfig{Mode: "disabled"},
			expectError: false,
		},
		{
			name: "server mode with cert files",
			tls: TLSConfig{
				Mode:     "server",
				CertFile: "/path/to/cert.pem",
				KeyFile:  "/path/to/key.pem",
			},
			expectError: false,
		},
		{
			name: "server mode with inline content",
			tls: TLSConfig{
				Mode:        "server",
				CertContent: "cert-content",
				KeyContent:  "key-content",
			},
			expectError: false,
		},
		{
			name: "mutual mode with CA file",
			tls: TLSConfig{
				Mode:     "mutual",
				CertFile: "/path/to/cert.pem",
				KeyFile:  "/path/to/key.pem",
				CAFile:   "/path/to/ca.pem",
			},
			expectError: false,
		},
		{
			name: "mutual mode with CA content",
			tls: TLSConfig{
				Mode:        "mutual",
				CertContent: "cert-content",
				KeyContent:  "key-content",
				CAContent:   "ca-content",
			},
			expectError: false,
		},
		{
			name:        "unknown mode rejected",
			tls:         TLSConfig{Mode: "tlsv1"},
			expectError: true,
			errorMsg:    "invalid TLS mode: tlsv1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tlsConfig(tt.tls).ValidateTLSConfig()

			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTLSConfigCertSources(t *testing.T) {
	tests := []struct {
		name     string
		tls      TLSConfig
		errorMsg string
	}{
		{
			name: "server mode missing certificate",
			tls: TLSConfig{
				Mode:    "server",
				KeyFile: "/path/to/key.pem",
			},
			errorMsg: "TLS certificate and key are required for server mode",
		},
		{
			name: "server mode missing key",
			tls: TLSConfig{
				Mode:     "server",
				CertFile: "/path/to/cert.pem",
			},
			errorMsg: "TLS certificate and key are required for server mode",
		},
		{
			name: "mutual mode missing both",
			tls: TLSConfig{
				Mode:   "mutual",
				CAFile: "/path/to/ca.pem",
			},
			errorMsg: "TLS certificate and key are required for mutual mode",
		},
		{
			name: "cert from both file and content",
			tls: TLSConfig{
				Mode:        "server",
				CertFile:    "/path/to/cert.pem",
				CertContent: "cert-content",
				KeyFile:     "/path/to/key.pem",
			},
			errorMsg: "cannot specify both certFile and certContent",
		},
		{
			name: "key from both file and content",
			tls: TLSConfig{
				Mode:       "server",
				CertFile:   "/path/to/cert.pem",
				KeyFile:    "/path/to/key.pem",
				KeyContent: "key-content",
			},
			errorMsg: "cannot specify both keyFile and keyContent",
		},
		{
			name: "mutual mode missing CA",
			tls: TLSConfig{
				Mode:     "mutual",
				CertFile: "/path/to/cert.pem",
				KeyFile:  "/path/to/key.pem",
			},
			errorMsg: "CA certificate is required for mutual TLS mode",
		},
		{
			name: "CA from both file and content",
			tls: TLSConfig{
				Mode:      "mutual",
				CertFile:  "/path/to/cert.pem",
				KeyFile:   "/path/to/key.pem",
				CAFile:    "/path/to/ca.pem",
				CAContent: "ca-content",
			},
			errorMsg: "cannot specify both caFile and caContent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tlsConfig(tt.tls).ValidateTLSConfig()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestValidateTLSConfigClientAuthPolicy(t *testing.T) {
	base := TLSConfig{
		Mode:     "mutual",
		CertFile: "/path/to/cert.pem",
		KeyFile:  "/path/to/key.pem",
		CAFile:   "/path/to/ca.pem",
	}

	for _, policy := range []string{"", "require", "request", "verify"} {
		t.Run("accepts "+policy, func(t *testing.T) {
			tls := base
			tls.ClientAuthPolicy = policy
			assert.NoError(t, tlsConfig(tls).ValidateTLSConfig())
		})
	}

	t.Run("rejects unknown policy", func(t *testing.T) {
		tls := base
		tls.ClientAuthPolicy = "optional"
		err := tlsConfig(tls).ValidateTLSConfig()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid clientAuthPolicy: optional")
	})

	t.Run("policy not checked in server mode", func(t *testing.T) {
		tls := TLSConfig{
			Mode:             "server",
			CertFile:         "/path/to/cert.pem",
			KeyFile:          "/path/to/key.pem",
			ClientAuthPolicy: "optional",
		}
		assert.NoError(t, tlsConfig(tls).ValidateTLSConfig())
	})
}

func TestValidateTLSConfigMinVersion(t *testing.T) {
	for _, version := range []string{"", "1.2", "1.3"} {
		t.Run("accepts "+version, func(t *testing.T) {
			tls := TLSConfig{Mode: "disabled", MinVersion: version}
			assert.NoError(t, tlsConfig(tls).ValidateTLSConfig())
		})
	}

	for _, version := range []string{"1.0", "1.1", "ssl3"} {
		t.Run("rejects "+version, func(t *testing.T) {
			tls := TLSConfig{Mode: "disabled", MinVersion: version}
			err := tlsConfig(tls).ValidateTLSConfig()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "invalid TLS minVersion: "+version)
		})
	}
}
