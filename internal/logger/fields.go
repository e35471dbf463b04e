package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Structured field keys shared across packages.
const (
	FieldProvider = "ai_provider"
	FieldModel    = "ai_model"
	FieldProfile  = "profile_id"
	FieldPersona  = "persona"
	FieldDataset  = "dataset"
)

// StringField is a key/value pair rendered as a zap string field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts pairs into zap fields. Pairs with a blank key or
// value are skipped.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		value := strings.TrimSpace(field.Value)
		if key == "" || value == "" {
			continue
		}
		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to logger. A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CommonFields describes the AI provider and model.
func CommonFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, CommonFields(provider, model)...)
}

// SessionFields identifies an assessment run.
func SessionFields(profileID, persona, dataset string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProfile, Value: profileID},
		StringField{Key: FieldPersona, Value: persona},
		StringField{Key: FieldDataset, Value: dataset},
	)
}
