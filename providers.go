package main

import (
	"MysteryBox/internal/config"
	"MysteryBox/internal/metrics"
	"MysteryBox/internal/odds"
	"github.com/prometheus/client_golang/prometheus"
	"os"
)

const defaultConfigPath = "mysterybox.yaml"

func ConfigurationProvider() (*config.Configuration, error) {
	path := os.Getenv("MYSTERYBOX_CONFIG")
	if path == "" {
		path = defaultConfigPath
	}
	return config.LoadConfiguration(path)
}

// RandomSourceProvider seeds the sampler when a seed is configured so draws
// can be replayed; otherwise rolls come from the runtime generator.
func RandomSourceProvider(cfg *config.Configuration) odds.RandomSource {
	if cfg.Unboxing.Seed != 0 {
		return odds.NewSeededSource(cfg.Unboxing.Seed)
	}
	return odds.NewRandomSource()
}

func UnboxMetricsProvider(registry *prometheus.Registry) *metrics.UnboxMetrics {
	return metrics.NewUnboxMetrics(registry)
}

func JobMetricsProvider(registry *prometheus.Registry) *metrics.JobMetrics {
	return metrics.NewJobMetrics(registry)
}
