package telemetry

import (
	"context"
	"testing"
	"time"
)

func TestInitTracerWithoutCollector(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), "jobboard-api", "")
	if err != nil {
		t.Fatal(err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("no-op shutdown returned %v", err)
	}
}

func TestShutdownReportsErrors(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), "jobboard-api", "127.0.0.1:1")
	if err != nil {
		t.Fatal(err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("first shutdown: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	// 2 回目は gRPC 接続が閉じ済みなのでエラーが返る
	if err := shutdown(ctx); err == nil {
		t.Fatal("second shutdown should report the closed connection")
	}
}
