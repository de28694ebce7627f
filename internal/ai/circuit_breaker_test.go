package ai

import (
	"testing"
	"time"

	"careerpilot/internal/config"
)

func TestIndependentCircuitBreakerConfigurations(t *testing.T) {
	// Each operation gets its own circuit breaker configuration

	interviewConfig := &config.OperationAIConfig{
		Provider: "gemini",
		Model:    "gemini-2.0-flash",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      3,
			Interval:         60 * time.Second,
			Timeout:          60 * time.Second,
			MinRequests:      3,
			FailureThreshold: 0.6,
		},
	}

	resumeConfig := &config.OperationAIConfig{
		Provider: "gemini",
		Model:    "gemini-2.5-pro",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      5,
			Interval:         30 * time.Second,
			Timeout:          45 * time.Second,
			MinRequests:      2,
			FailureThreshold: 0.7,
		},
	}

	insightsConfig := &config.OperationAIConfig{
		Provider: "gemini",
		Model:    "gemini-2.0-flash-lite",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      4,
			Interval:         90 * time.Second,
			Timeout:          75 * time.Second,
			MinRequests:      5,
			FailureThreshold: 0.5,
		},
	}

	interviewCB := NewAICircuitBreaker("interview", interviewConfig, nil)
	resumeCB := NewAICircuitBreaker("resume", resumeConfig, nil)
	insightsCB := NewAICircuitBreaker("insights", insightsConfig, nil)

	t.Run("InterviewCircuitBreaker", func(t *testing.T) {
		stats := interviewCB.GetStats()

		name, ok := stats["name"].(string)
		if !ok {
			t.Fatal("Circuit breaker name not found")
		}
		if name != "ai-interview" {
			t.Errorf("Expected circuit breaker name 'ai-interview', got '%s'", name)
		}

		state, ok := stats["state"].(string)
		if !ok {
			t.Fatal("Circuit breaker state not found")
		}
		if state != "closed" {
			t.Errorf("Expected initial state 'closed', got '%s'", state)
		}

		enabled, ok := stats["enabled"].(bool)
		if !ok {
			t.Fatal("Circuit breaker enabled status not found")
		}
		if !enabled {
			t.Error("Circuit breaker should be enabled")
		}
	})

	t.Run("ResumeCircuitBreaker", func(t *testing.T) {
		stats := resumeCB.GetStats()

		name, ok := stats["name"].(string)
		if !ok {
			t.Fatal("Circuit breaker name not found")
		}
		if name != "ai-resume" {
			t.Errorf("Expected circuit breaker name 'ai-resume', got '%s'", name)
		}
	})

	t.Run("InsightsCircuitBreaker", func(t *testing.T) {
		stats := insightsCB.GetStats()

		name, ok := stats["name"].(string)
		if !ok {
			t.Fatal("Circuit breaker name not found")
		}
		if name != "ai-insights" {
			t.Errorf("Expected circuit breaker name 'ai-insights', got '%s'", name)
		}
	})

	t.Run("IndependentInstances", func(t *testing.T) {
		if interviewCB == resumeCB {
			t.Error("Interview and resume circuit breakers should be different instances")
		}
		if interviewCB == insightsCB {
			t.Error("Interview and insights circuit breakers should be different instances")
		}
		if resumeCB == insightsCB {
			t.Error("Resume and insights circuit breakers should be different instances")
		}
	})

	t.Run("IndependentHealthStates", func(t *testing.T) {
		if !interviewCB.IsHealthy() {
			t.Error("Interview circuit breaker should be healthy initially")
		}
		if !resumeCB.IsHealthy() {
			t.Error("Resume circuit breaker should be healthy initially")
		}
		if !insightsCB.IsHealthy() {
			t.Error("Insights circuit breaker should be healthy initially")
		}
	})
}

func TestCircuitBreakerConfigurationMapping(t *testing.T) {
	customConfig := &config.OperationAIConfig{
		Provider: "gemini",
		Model:    "test-model",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      10,
			Interval:         120 * time.Second,
			Timeout:          90 * time.Second,
			MinRequests:      5,
			FailureThreshold: 0.8,
		},
	}

	cb := NewAICircuitBreaker("test", customConfig, nil)

	if cb == nil {
		t.Fatal("Circuit breaker should not be nil")
	}

	stats := cb.GetStats()
	if stats == nil {
		t.Fatal("Circuit breaker stats should not be nil")
	}

	name, ok := stats["name"].(string)
	if !ok {
		t.Fatal("Circuit breaker name not found")
	}
	if name != "ai-test" {
		t.Errorf("Expected circuit breaker name 'ai-test', got '%s'", name)
	}
}

func TestCircuitBreakerDisabled(t *testing.T) {
	disabledConfig := &config.OperationAIConfig{
		Provider: "gemini",
		Model:    "test-model",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled: false,
		},
	}

	cb := NewAICircuitBreaker("disabled", disabledConfig, nil)

	// Disabled breaker is nil; Execute must still pass calls through
	if cb != nil {
		t.Fatal("Circuit breaker should be nil when disabled")
	}
}
