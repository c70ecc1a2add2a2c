package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithSkipsEmptyTags(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	With(zap.New(core),
		Tag{Key: "  provider  ", Value: "  groq  "},
		Tag{Key: "ignored", Value: "   "},
		Tag{Key: "   ", Value: "empty key"},
	).Info("test log")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if len(ctx) != 1 || ctx["provider"] != "groq" {
		t.Fatalf("unexpected fields: %v", ctx)
	}
}

func TestWithNilLogger(t *testing.T) {
	for name, l := range map[string]*zap.Logger{
		"with":   With(nil, Tag{Key: "a", Value: "b"}),
		"ai":     WithAI(nil, "anthropic", "claude-test"),
		"run":    WithRun(nil, ""),
		"source": WithSource(nil, "adzuna"),
	} {
		if l == nil {
			t.Fatalf("%s: expected fallback logger when nil provided", name)
		}
		l.Info("does not panic")
	}
}

func TestWithAI(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithAI(zap.New(core), "anthropic", "claude-test").Info("test log")
	WithAI(zap.New(core), "", "").Info("unconfigured")

	entries := observed.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx[FieldProvider] != "anthropic" || ctx[FieldModel] != "claude-test" {
		t.Fatalf("unexpected fields: %v", ctx)
	}
	if len(entries[1].ContextMap()) != 0 {
		t.Fatalf("expected no fields, got %v", entries[1].ContextMap())
	}
}

func TestWithRunAndSource(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	logger := WithSource(WithRun(zap.New(core), " run-1 "), "jsearch")

	logger.Debug("fetched", ListingField("jsearch-1"))

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx[FieldRunID] != "run-1" {
		t.Fatalf("unexpected run id %v", ctx[FieldRunID])
	}
	if ctx[FieldSource] != "jsearch" {
		t.Fatalf("unexpected source %v", ctx[FieldSource])
	}
	if ctx[FieldListingID] != "jsearch-1" {
		t.Fatalf("unexpected listing id %v", ctx[FieldListingID])
	}
}
