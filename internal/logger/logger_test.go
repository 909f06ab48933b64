package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestNew_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&Config{Level: "debug", Format: "json", Output: &buf, ServiceName: "imagetool-test"})
	l.Component("catalog").WithField(FieldQuery, "cat").Info("search issued")

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected json line, got %q: %v", buf.String(), err)
	}
	if line["message"] != "search issued" {
		t.Fatalf("unexpected message: %v", line["message"])
	}
	if line["service"] != "imagetool-test" || line[FieldComponent] != "catalog" || line[FieldQuery] != "cat" {
		t.Fatalf("missing fields: %v", line)
	}
}

func TestFromContext_Fallback(t *testing.T) {
	if FromContext(context.Background()) != GetDefault() {
		t.Fatalf("expected default logger")
	}
	var buf bytes.Buffer
	l := New(&Config{Format: "text", Output: &buf})
	ctx := WithField(l.WithContext(context.Background()), FieldPage, 2)
	FromContext(ctx).Info("paged")
	if !bytes.Contains(buf.Bytes(), []byte("page=2")) {
		t.Fatalf("expected page field in %q", buf.String())
	}
}
