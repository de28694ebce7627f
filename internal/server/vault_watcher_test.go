package server

import (
	"testing"
	"time"

	"careerpilot/internal/config"
)

// MockVaultClient is a mock implementation for testing
type MockVaultClient struct {
	secrets map[string]*config.VaultSecret
}

func (m *MockVaultClient) GetSecretV2(path string) (*config.VaultSecret, error) {
	if secret, exists := m.secrets[path]; exists {
		return secret, nil
	}
	return nil, nil
}

func (m *MockVaultClient) GetStringSecret(path, key string) (string, error) {
	if secret, exists := m.secrets[path]; exists {
		if value, ok := secret.Data[key].(string); ok {
			return value, nil
		}
	}
	return "", nil
}

func (m *MockVaultClient) GetStringSliceSecret(path, key string) ([]string, error) {
	if secret, exists := m.secrets[path]; exists {
		if value, ok := secret.Data[key].([]string); ok {
			return value, nil
		}
	}
	return nil, nil
}

func newTestVaultWatcher(client VaultClientInterface, callback VaultReloadCallback) *VaultWatcher {
	return NewVaultWatcher(client, "secret/data/test", time.Minute, callback, nil)
}

func TestVaultWatcherCheckForUpdates(t *testing.T) {
	mockClient := &MockVaultClient{
		secrets: map[string]*config.VaultSecret{
			"secret/data/test": {
				Data: map[string]any{
					"cert": "new-cert-content",
					"key":  "new-key-content",
					"ca":   "new-ca-content",
				},
				Version: 2,
			},
		},
	}

	vw := newTestVaultWatcher(mockClient, func(data *CertificateData, err error) {})

	// Initial check sees version 0 -> 2 and returns the certificate data
	data, changed, err := vw.checkForUpdates()
	if err != nil {
		t.Fatalf("checkForUpdates failed: %v", err)
	}
	if !changed {
		t.Fatal("Expected change to be detected")
	}
	if data.CertContent != "new-cert-content" {
		t.Errorf("CertContent = %q, want %q", data.CertContent, "new-cert-content")
	}
	if data.KeyContent != "new-key-content" {
		t.Errorf("KeyContent = %q, want %q", data.KeyContent, "new-key-content")
	}
	if data.CAContent != "new-ca-content" {
		t.Errorf("CAContent = %q, want %q", data.CAContent, "new-ca-content")
	}

	// Subsequent check sees the same version and reports no change
	_, changed, err = vw.checkForUpdates()
	if err != nil {
		t.Fatalf("checkForUpdates failed: %v", err)
	}
	if changed {
		t.Error("Expected no change to be detected")
	}
}

func TestVaultWatcherPollInvokesCallback(t *testing.T) {
	mockClient := &MockVaultClient{
		secrets: map[string]*config.VaultSecret{
			"secret/data/test": {
				Data: map[string]any{
					"cert": "cert-v1",
					"key":  "key-v1",
				},
				Version: 1,
			},
		},
	}

	var gotData *CertificateData
	callbacks := 0
	vw := newTestVaultWatcher(mockClient, func(data *CertificateData, err error) {
		if err != nil {
			t.Errorf("unexpected callback error: %v", err)
		}
		gotData = data
		callbacks++
	})

	// First poll fires the callback with the fetched certificate data
	vw.poll()
	if callbacks != 1 {
		t.Fatalf("expected 1 callback, got %d", callbacks)
	}
	if gotData == nil || gotData.CertContent != "cert-v1" || gotData.KeyContent != "key-v1" {
		t.Errorf("callback received wrong data: %+v", gotData)
	}

	// Unchanged version must not fire the callback again
	vw.poll()
	if callbacks != 1 {
		t.Errorf("expected no further callbacks, got %d", callbacks)
	}

	// A new version fires the callback once more
	mockClient.secrets["secret/data/test"].Version = 3
	vw.poll()
	if callbacks != 2 {
		t.Errorf("expected 2 callbacks after version bump, got %d", callbacks)
	}
}
