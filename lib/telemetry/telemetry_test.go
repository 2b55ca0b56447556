package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetupDisabled(t *testing.T) {
	tel, err := Setup(context.Background(), "test", Config{})
	require.NoError(t, err)
	require.Nil(t, tel.TracerProvider)
	require.Nil(t, tel.MeterProvider)
	require.NoError(t, tel.Shutdown(context.Background()))
}

func TestSetupHttpExporters(t *testing.T) {
	// otlp http exporters connect lazily, so an unreachable endpoint is fine
	// until the first export.
	tel, err := Setup(context.Background(), "test", Config{
		Otlp: OtlpConfig{
			Traces:  OtlpConnConfig{HttpEndpoint: "http://127.0.0.1:1/v1/traces"},
			Metrics: OtlpConnConfig{HttpEndpoint: "http://127.0.0.1:1/v1/metrics"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, tel.TracerProvider)
	require.NotNil(t, tel.MeterProvider)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// flushing to a closed port fails, only make sure shutdown returns.
	_ = tel.Shutdown(ctx)
}
