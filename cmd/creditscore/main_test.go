package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/CreditScore/internal/config"
)

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{Logging: config.LoggingConfig{Level: "warn", Format: "json"}}
	logger := newLogger(&buf, cfg)

	logger.Info("dropped")
	logger.Warn("kept", "applicant_id", "acme-01")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "acme-01", entry["applicant_id"])
}

func TestNewLoggerText(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{Logging: config.LoggingConfig{Level: "debug", Format: "text"}}
	logger := newLogger(&buf, cfg)

	logger.Debug("evaluated", "total_score", 51.0)
	assert.True(t, strings.Contains(buf.String(), "msg=evaluated"))
	assert.Contains(t, buf.String(), "total_score=51")
}
