package pagebuilder_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-pagebuilder"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := pagebuilder.DefaultConfig().Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
}

func TestConfigValidateExtensionsRequireGoldmark(t *testing.T) {
	cfg := pagebuilder.DefaultConfig()
	cfg.Markdown.Extensions = []string{"table"}

	if err := cfg.Validate(); !errors.Is(err, pagebuilder.ErrMarkdownExtensionsRequireGoldmark) {
		t.Fatalf("expected ErrMarkdownExtensionsRequireGoldmark, got %v", err)
	}
}

func TestConfigValidateNegativeDebounce(t *testing.T) {
	cfg := pagebuilder.DefaultConfig()
	cfg.Editor.DebounceWindow = -1

	if err := cfg.Validate(); !errors.Is(err, pagebuilder.ErrDebounceWindowNegative) {
		t.Fatalf("expected ErrDebounceWindowNegative, got %v", err)
	}
}

func TestConfigValidateHTTPAddrRequired(t *testing.T) {
	cfg := pagebuilder.DefaultConfig()
	cfg.HTTP.Addr = " "

	if err := cfg.Validate(); !errors.Is(err, pagebuilder.ErrHTTPAddrRequired) {
		t.Fatalf("expected ErrHTTPAddrRequired, got %v", err)
	}

	cfg.Features.HTTP = false
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected http address to be optional with the adapter disabled, got %v", err)
	}
}
