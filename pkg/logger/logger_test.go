package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewJSONFormatIncludesComponent(t *testing.T) {
	log := New(LoggingConfig{Level: "debug", Format: "json"}).Component("assets")
	var buf bytes.Buffer
	log.Entry.Logger.SetOutput(&buf)

	log.WithField("guid", "g-1").Debug("asset created")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v (%s)", err, buf.String())
	}
	if line["component"] != "assets" {
		t.Fatalf("expected component field, got %v", line)
	}
	if line["guid"] != "g-1" {
		t.Fatalf("expected guid field, got %v", line)
	}
	if line["msg"] != "asset created" {
		t.Fatalf("unexpected message %v", line["msg"])
	}
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	log := New(LoggingConfig{Level: "chatty"})
	if log.LevelName() != "info" {
		t.Fatalf("expected info, got %s", log.LevelName())
	}
}

func TestSetLevelAffectsDerivedLoggers(t *testing.T) {
	root := New(LoggingConfig{Level: "info"})
	child := root.Component("profiles")

	if err := root.SetLevel("warn"); err != nil {
		t.Fatalf("set level: %v", err)
	}
	if child.LevelName() != "warning" {
		t.Fatalf("expected derived logger to observe new level, got %s", child.LevelName())
	}
	if err := root.SetLevel("nonsense"); err == nil {
		t.Fatalf("expected error for invalid level")
	}
}
