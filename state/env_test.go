package state

import (
	"context"
	"log"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"csssel/config"
	"csssel/selector"
)

func TestContextWithEnv(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	if ctx == nil {
		t.Fatal("ContextWithEnv() returned nil")
	}

	env := EnvFromContext(ctx)
	if env == nil {
		t.Fatal("EnvFromContext() returned nil")
	}
	if env.start.IsZero() {
		t.Error("Environment start time not set")
	}
	if env.Log == nil {
		t.Error("Environment logger not set")
	}
}

func TestEnvFromContext_Panic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when env not in context")
		}
	}()

	// Use plain context without env
	EnvFromContext(context.Background())
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))

	time.Sleep(10 * time.Millisecond)
	if uptime := env.Uptime(); uptime < 10*time.Millisecond {
		t.Errorf("Uptime() = %v, expected at least 10ms", uptime)
	}
}

func TestLocalEnv_Builder(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))

	if got := env.Builder().PseudoClass("hover").Class("c").String(); got != ":hover.c" {
		t.Errorf("default builder = %q, want :hover.c", got)
	}

	env.Cfg = &config.Config{Builder: config.BuilderConfig{Ordering: selector.OrderingCanonical}}
	if got := env.Builder().PseudoClass("hover").Class("c").String(); got != ".c:hover" {
		t.Errorf("configured builder = %q, want .c:hover", got)
	}
}

func TestLocalEnv_RedirectStdLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	env := EnvFromContext(ContextWithEnv(context.Background()))
	env.Log = zap.New(core)

	env.RedirectStdLog()
	log.Print("from standard logger")
	env.RestoreStdLog()

	if logs.FilterMessage("from standard logger").Len() != 1 {
		t.Errorf("standard log was not redirected, got %v", logs.All())
	}

	// restoring twice is harmless
	env.RestoreStdLog()
}
