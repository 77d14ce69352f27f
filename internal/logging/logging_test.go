package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

type logLine struct {
	Level     string         `json:"level"`
	Msg       string         `json:"msg"`
	Component string         `json:"component"`
	Fields    map[string]any `json:"fields"`
}

func decodeLine(t *testing.T, buf *bytes.Buffer) logLine {
	t.Helper()
	var line logLine
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &line); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	return line
}

func TestStdoutLogger_WithFieldsAppearOnEveryLine(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := NewStdoutLogger("test")
	logger.out = &buf

	child := logger.With(Field{Key: "fetch_id", Value: "abc-123"})
	child.Debug("fetching url", Field{Key: "url", Value: "http://example.test"})

	line := decodeLine(t, &buf)
	if line.Level != "debug" || line.Msg != "fetching url" {
		t.Errorf("unexpected line %+v", line)
	}
	if got := line.Fields["fetch_id"]; got != "abc-123" {
		t.Errorf("expected persistent fetch_id field 'abc-123', got %v", got)
	}
	if got := line.Fields["url"]; got != "http://example.test" {
		t.Errorf("expected per-call url field, got %v", got)
	}
}

func TestStdoutLogger_WithFieldsAccumulateAcrossChildren(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := NewStdoutLogger("test")
	logger.out = &buf

	grandchild := logger.
		With(Field{Key: "backend", Value: "nethttp"}).
		With(Field{Key: "fetch_id", Value: "abc-123"})
	grandchild.Info("fetched url")

	line := decodeLine(t, &buf)
	if got := line.Fields["backend"]; got != "nethttp" {
		t.Errorf("expected inherited backend field, got %v", got)
	}
	if got := line.Fields["fetch_id"]; got != "abc-123" {
		t.Errorf("expected fetch_id field, got %v", got)
	}
}

func TestStdoutLogger_PerCallFieldOverridesPersistent(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := NewStdoutLogger("test")
	logger.out = &buf

	child := logger.With(Field{Key: "url", Value: "http://old.test"})
	child.Warn("retargeted", Field{Key: "url", Value: "http://new.test"})

	line := decodeLine(t, &buf)
	if got := line.Fields["url"]; got != "http://new.test" {
		t.Errorf("expected per-call field to win, got %v", got)
	}
}

func TestStdoutLogger_WithComponentOverride(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := NewStdoutLogger("parent")
	logger.out = &buf

	logger.With(Field{Key: "component", Value: "child"}).Error("boom")

	line := decodeLine(t, &buf)
	if line.Component != "child" {
		t.Errorf("expected component 'child', got %q", line.Component)
	}
}
