package prometheus

import (
	"io"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{name: "default", config: DefaultConfig()},
		{name: "empty namespace", config: &Config{}, wantErr: true},
		{
			name: "http enabled without addr",
			config: &Config{
				Namespace:  "test",
				HTTPServer: HTTPServerConfig{Enabled: true},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			assert.NoError(t, err)
		})
	}

	cfg := &Config{Namespace: "test", HTTPServer: HTTPServerConfig{Enabled: true, Addr: ":0"}}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "/metrics", cfg.HTTPServer.Path)
	assert.NotZero(t, cfg.HTTPServer.Timeout)
}

func TestClientServe(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableProcessCollector = false
	cfg.HTTPServer.Enabled = true
	cfg.HTTPServer.Addr = "127.0.0.1:0"

	c, err := New(cfg, nil)
	require.NoError(t, err)

	shots := prometheus.NewCounter(prometheus.CounterOpts{Namespace: "paragon", Name: "test_shots_total", Help: "test"})
	require.NoError(t, c.Register(shots))
	assert.Error(t, c.Register(shots), "duplicate registration")
	shots.Add(3)

	require.NoError(t, c.Start())
	require.NotEmpty(t, c.Addr())

	resp, err := http.Get("http://" + c.Addr() + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), "paragon_test_shots_total 3")

	require.NoError(t, c.Stop())
	assert.True(t, c.IsClosed())
	assert.ErrorIs(t, c.Close(), ErrClientClosed)
	assert.ErrorIs(t, c.Start(), ErrClientClosed)
}
