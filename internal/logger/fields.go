package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Field keys shared across packages.
const (
	FieldProvider  = "ai_provider"
	FieldModel     = "ai_model"
	FieldRunID     = "run_id"
	FieldListingID = "listing_id"
	FieldSource    = "job_source"
)

// Tag is a string field that is only attached when both key and value are set.
type Tag struct {
	Key   string
	Value string
}

func (t Tag) field() (zap.Field, bool) {
	key, value := strings.TrimSpace(t.Key), strings.TrimSpace(t.Value)
	if key == "" || value == "" {
		return zap.Skip(), false
	}
	return zap.String(key, value), true
}

// With returns l enriched with the usable tags. A nil l becomes a no-op logger.
func With(l *zap.Logger, tags ...Tag) *zap.Logger {
	l = OrNop(l)

	fields := make([]zap.Field, 0, len(tags))
	for _, t := range tags {
		if f, ok := t.field(); ok {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}

// WithAI tags entries with the completion provider and model.
func WithAI(l *zap.Logger, provider, model string) *zap.Logger {
	return With(l, Tag{Key: FieldProvider, Value: provider}, Tag{Key: FieldModel, Value: model})
}

func WithRun(l *zap.Logger, runID string) *zap.Logger {
	return With(l, Tag{Key: FieldRunID, Value: runID})
}

func WithSource(l *zap.Logger, source string) *zap.Logger {
	return With(l, Tag{Key: FieldSource, Value: source})
}

// ListingField is used per entry since one logger serves many listings.
func ListingField(id string) zap.Field {
	return zap.String(FieldListingID, id)
}
