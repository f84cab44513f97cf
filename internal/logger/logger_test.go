package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInitJSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "debug", Format: "json", Output: &buf})
	t.Cleanup(func() { Init(Options{Level: "info", Format: "text"}) })

	For("test").WithField("depth", 2).Debug("generated")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if entry["component"] != "test" {
		t.Errorf("component = %v, want test", entry["component"])
	}
	if entry["msg"] != "generated" {
		t.Errorf("msg = %v, want generated", entry["msg"])
	}
}

func TestInitLevelFallback(t *testing.T) {
	var buf bytes.Buffer
	t.Setenv("LOG_LEVEL", "")
	Init(Options{Level: "nonsense", Output: &buf})
	t.Cleanup(func() { Init(Options{Level: "info", Format: "text"}) })

	if Log.GetLevel() != logrus.InfoLevel {
		t.Errorf("level = %v, want info", Log.GetLevel())
	}

	For("test").Info("hello")
	if !strings.Contains(buf.String(), "component=test") {
		t.Errorf("text output missing component field: %q", buf.String())
	}
}
