// Package http_check probes an HTTP endpoint after a deployment step, e.g.
// to confirm the application came back up once migrations were applied.
package http_check

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/vk/shipgridgo/internal/ctxlog"
	"github.com/vk/shipgridgo/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the 'http_check' step.
type Input struct {
	URL string `hcl:"url"`
	// ExpectStatus is the required response code. Defaults to 200.
	ExpectStatus int `hcl:"expect_status,optional"`
	// Timeout bounds the whole probe. Defaults to "10s".
	Timeout string `hcl:"timeout,optional"`
}

// OnRunHTTPCheck is the handler for the 'http_check' step's run event.
func OnRunHTTPCheck(ctx context.Context, input *Input) (cty.Value, error) {
	logger := ctxlog.FromContext(ctx)

	expect := input.ExpectStatus
	if expect == 0 {
		expect = http.StatusOK
	}

	timeoutStr := input.Timeout
	if timeoutStr == "" {
		timeoutStr = "10s"
	}
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return cty.NilVal, fmt.Errorf("invalid timeout %q: %w", timeoutStr, err)
	}

	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, input.URL, nil)
	if err != nil {
		return cty.NilVal, fmt.Errorf("failed to create probe request: %w", err)
	}

	logger.Info("Probing endpoint.", "url", input.URL, "expect_status", expect)

	resp, err := client.Do(req)
	if err != nil {
		return cty.NilVal, fmt.Errorf("probe of %s failed: %w", input.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != expect {
		return cty.NilVal, fmt.Errorf("probe of %s returned status %d, expected %d", input.URL, resp.StatusCode, expect)
	}

	logger.Info("Probe succeeded.", "status", resp.Status)

	return cty.ObjectVal(map[string]cty.Value{
		"status_code": cty.NumberIntVal(int64(resp.StatusCode)),
	}), nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterRunner("http_check", &registry.RegisteredRunner{
		NewInput: func() any { return new(Input) },
		Run: func(ctx context.Context, input any) (cty.Value, error) {
			return OnRunHTTPCheck(ctx, input.(*Input))
		},
	})
}
