package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew_Level(t *testing.T) {
	tests := []struct {
		input    string
		expected logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"warn", logrus.WarnLevel},
		{"", logrus.InfoLevel},
		{"nonsense", logrus.InfoLevel},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			l := New(Options{Level: test.input})
			if l.GetLevel() != test.expected {
				t.Errorf("Expected level %v, got %v", test.expected, l.GetLevel())
			}
		})
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "info", Format: "JSON", Output: &buf})

	l.WithField("component", "test").Info("hello")

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", buf.String(), err)
	}
	if decoded["msg"] != "hello" {
		t.Errorf("Expected msg 'hello', got %v", decoded["msg"])
	}
	if decoded["component"] != "test" {
		t.Errorf("Expected component 'test', got %v", decoded["component"])
	}
}

func TestInitAndComponent(t *testing.T) {
	original := Log
	defer func() { Log = original }()

	var buf bytes.Buffer
	Init(Options{Level: "debug", Format: "text", Output: &buf})

	Component("runner").Debug("turn applied")

	out := buf.String()
	if !strings.Contains(out, "component=runner") {
		t.Errorf("Expected component field in output, got %q", out)
	}
	if !strings.Contains(out, "turn applied") {
		t.Errorf("Expected message in output, got %q", out)
	}
}

func TestLogUsableBeforeInit(t *testing.T) {
	if Log == nil {
		t.Fatal("Log must not be nil before Init")
	}
}
