package common

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := &Config{Viper: New()}

	server := cfg.GetServerConfig()
	if server.Port != "7720" {
		t.Errorf("port = %q, want 7720", server.Port)
	}
	if server.RequestTimeout != 10*time.Second {
		t.Errorf("request timeout = %v, want 10s", server.RequestTimeout)
	}

	db := cfg.GetDatabaseConfig()
	if db.SSLMode != "disable" || db.MaxOpenConns != 100 || db.ConnMaxLifetime != 300*time.Second {
		t.Errorf("unexpected database defaults: %+v", db)
	}
	if db.AutoMigrate {
		t.Error("reference auto-migrate should default to off")
	}

	if cfg.GetRedisConfig().Enabled {
		t.Error("redis should default to disabled")
	}

	notify := cfg.GetNotificationConfig()
	if notify.DispatchTimeout != 5*time.Second || notify.PresenceTTL != 45*time.Second {
		t.Errorf("unexpected notification defaults: %+v", notify)
	}
	if notify.ChannelPrefix != "notifications" {
		t.Errorf("channel prefix = %q", notify.ChannelPrefix)
	}
}

func TestEnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("PRESENCE_TTL", "2m")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("INTERNAL_API_TOKEN", "payments")

	cfg := &Config{Viper: New()}

	if got := cfg.GetServerConfig().Port; got != "9000" {
		t.Errorf("port = %q, want 9000", got)
	}
	if !cfg.GetRedisConfig().Enabled {
		t.Error("redis should be enabled from env")
	}
	if got := cfg.GetNotificationConfig().PresenceTTL; got != 2*time.Minute {
		t.Errorf("presence ttl = %v, want 2m", got)
	}
	if got := string(cfg.GetJwtConfig()); got != "s3cret" {
		t.Errorf("jwt secret = %q", got)
	}
	if got := cfg.GetInternalToken(); got != "payments" {
		t.Errorf("internal token = %q", got)
	}
}
