package snoop

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"stylesnoop/config"
	"stylesnoop/state"
)

var contosoPath = filepath.Join("..", "module", "testdata", "contoso.xml")

// testContext returns context carrying environment with default
// configuration, the same way program prepares it.
func testContext(t *testing.T) (context.Context, *state.LocalEnv) {
	t.Helper()

	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)

	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	env.Cfg = cfg
	env.Log = zaptest.NewLogger(t)
	return ctx, env
}
