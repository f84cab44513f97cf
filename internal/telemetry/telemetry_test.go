package telemetry

import (
	"context"
	"testing"
)

func TestSetupDisabledRecordsNothing(t *testing.T) {
	ctx := context.Background()
	shutdown, err := Setup(ctx, Options{})
	if err != nil {
		t.Fatalf("Setup() error: %v", err)
	}
	defer shutdown(ctx)

	_, span := Tracer("test").Start(ctx, "noop")
	defer span.End()
	if span.IsRecording() {
		t.Error("span records with tracing disabled")
	}
	if span.SpanContext().IsValid() {
		t.Error("span context valid with tracing disabled")
	}
	if err := shutdown(ctx); err != nil {
		t.Errorf("shutdown() error: %v", err)
	}
}

func TestResourceAttributes(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"1.2.0", "1.2.0"},
		{"", "dev"},
	}

	for _, tt := range tests {
		got := map[string]string{}
		for _, kv := range resourceAttributes(tt.version) {
			got[string(kv.Key)] = kv.Value.AsString()
		}
		if got["service.name"] != serviceName {
			t.Errorf("service.name = %q, want %q", got["service.name"], serviceName)
		}
		if got["service.version"] != tt.want {
			t.Errorf("service.version = %q, want %q", got["service.version"], tt.want)
		}
		if got["host.name"] == "" {
			t.Error("host.name is empty")
		}
	}
}
