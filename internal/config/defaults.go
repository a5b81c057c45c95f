package config

import "time"

func DefaultConfig() Config {
	return Config{
		TailLines: 40,
		Stats: StatsConfig{
			BaseURL:   "https://stats.pika-network.net",
			Type:      "bedwars",
			Interval:  "total",
			Mode:      "ALL_MODES",
			UserAgent: "bwoverlay",
		},
		Refresh: RefreshConfig{
			Mode:     RefreshKey,
			Key:      `\`,
			Interval: 30 * time.Second,
		},
		Overlay: OverlayConfig{
			Title:          "Bedwars Stats Overlay",
			Width:          100,
			Height:         16,
			MinColumnWidth: 8,
		},
	}
}
