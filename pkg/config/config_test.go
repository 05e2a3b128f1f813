package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Save original env
	originalURL := os.Getenv("VKFEED_API_URL")
	defer func() {
		if originalURL != "" {
			os.Setenv("VKFEED_API_URL", originalURL)
		} else {
			os.Unsetenv("VKFEED_API_URL")
		}
	}()

	// Test with environment variable
	os.Setenv("VKFEED_API_URL", "https://api.example.com/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.VK.APIURL != "https://api.example.com/" {
		t.Errorf("Expected API URL from env, got: %s", cfg.VK.APIURL)
	}

	if cfg.Feed.TimeOffsetHours != 4 {
		t.Errorf("Expected default time offset 4, got: %d", cfg.Feed.TimeOffsetHours)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		VK: VKConfig{
			APIURL:  "https://api.vk.com/",
			SiteURL: "https://vk.com/",
			Timeout: 10 * time.Second,
		},
		Feed: FeedConfig{
			TimeOffsetHours: 4,
		},
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Valid config should not error: %v", err)
	}

	// Test missing trailing slash
	cfg.VK.SiteURL = "https://vk.com"
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for site_url without trailing slash")
	}
	cfg.VK.SiteURL = "https://vk.com/"

	// Test invalid time offset
	cfg.Feed.TimeOffsetHours = 30
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for invalid time_offset_hours")
	}
}
