package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	cfg := fromViper(v)

	require.Equal(t, "file", cfg.Store.Driver)
	require.Equal(t, "printRequests", cfg.Store.Key)
	require.Equal(t, "./data", cfg.Store.Dir)
	require.Equal(t, "./exports", cfg.Exports.StorageDir)
	require.Equal(t, 2*time.Second, cfg.Dashboard.ClearDelay)
	require.Equal(t, 16*time.Millisecond, cfg.Capture.ScanInterval)
	require.Equal(t, "Form T1", cfg.Printable.FormCode)
	require.Equal(t, "@hourly", cfg.Exports.CleanupCron)
	require.Equal(t, "@every 10m", cfg.Drafts.SweepCron)
	require.Equal(t, 12*time.Hour, cfg.Dashboard.SessionTTL)
	require.Equal(t, "@every 30m", cfg.Dashboard.SweepCron)
	require.False(t, cfg.Staff.AuthEnabled)
}

func TestOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("STORE_DRIVER", " SQLite ")
	v.Set("DASHBOARD_CLEAR_DELAY", "500ms")
	v.Set("DASHBOARD_SESSION_TTL", "90m")
	v.Set("EXPORTS_SIGNED_URL_TTL", "not-a-duration")
	v.Set("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	cfg := fromViper(v)

	require.Equal(t, "sqlite", cfg.Store.Driver)
	require.Equal(t, 500*time.Millisecond, cfg.Dashboard.ClearDelay)
	require.Equal(t, 90*time.Minute, cfg.Dashboard.SessionTTL)
	require.Equal(t, 24*time.Hour, cfg.Exports.SignedURLTTL)
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}
