package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "NOTIFY_TRANSPORT", "OVERSTAY_INTERVAL", "OVERSTAY_THRESHOLD", "OVERSTAY_INCLUDE_GUESTS", "NOTIFY_SENDER"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, TransportLog, cfg.Notify.Transport)
	assert.Equal(t, "DoNotReply@vms.local", cfg.Notify.Sender)
	assert.Equal(t, 60*time.Second, cfg.OverstayInterval)
	assert.Equal(t, 90*time.Minute, cfg.OverstayThreshold)
	assert.False(t, cfg.OverstayIncludeGuests)
	assert.Equal(t, time.Hour, cfg.PurgeInterval)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("NOTIFY_TRANSPORT", "KAFKA")
	t.Setenv("OVERSTAY_INTERVAL", "30s")
	t.Setenv("OVERSTAY_THRESHOLD", "-5m")
	t.Setenv("OVERSTAY_INCLUDE_GUESTS", "true")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")

	cfg := FromEnv()

	assert.Equal(t, TransportKafka, cfg.Notify.Transport)
	assert.Equal(t, 30*time.Second, cfg.OverstayInterval)
	assert.Equal(t, 90*time.Minute, cfg.OverstayThreshold, "non-positive durations fall back")
	assert.True(t, cfg.OverstayIncludeGuests)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestFromEnv_UnknownTransportFallsBackToLog(t *testing.T) {
	t.Setenv("NOTIFY_TRANSPORT", "pigeon")
	assert.Equal(t, TransportLog, FromEnv().Notify.Transport)
}
