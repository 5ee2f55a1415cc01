// Package background contains services that run independently of the HTTP
// request-response cycle.
package background

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/user/arcanum-go/config"
)

const (
	healthTickerDuration = 60 * time.Second
	healthProbeTimeout   = 10 * time.Second
)

// StartBackendHealthMonitor launches a goroutine that periodically probes the
// generation backend and logs availability transitions. A failed probe does
// not block readings; requests surface their own backend errors. The monitor
// exits when stopChan closes and signals wg on the way out.
func StartBackendHealthMonitor(cfg *config.AIConfig, stopChan <-chan struct{}, wg *sync.WaitGroup) {
	wg.Add(1)

	go func() {
		defer wg.Done()
		defer log.Info().Msg("Backend health monitor stopped")

		client := &http.Client{Timeout: healthProbeTimeout}
		ticker := time.NewTicker(healthTickerDuration)
		defer ticker.Stop()

		healthy := probeBackend(client, cfg)
		logHealth(cfg.Provider, healthy, true)

		for {
			select {
			case <-stopChan:
				return
			case <-ticker.C:
				now := probeBackend(client, cfg)
				if now != healthy {
					healthy = now
					logHealth(cfg.Provider, healthy, false)
				}
			}
		}
	}()
}

func logHealth(provider string, healthy, initial bool) {
	event := log.Info()
	if !healthy {
		event = log.Warn()
	}
	event.
		Str("provider", provider).
		Bool("healthy", healthy).
		Bool("initial", initial).
		Msg("Generation backend health")
}

// probeBackend issues the cheapest request each backend offers: the model
// list. It proves reachability and authentication without generating text.
func probeBackend(client *http.Client, cfg *config.AIConfig) bool {
	ctx, cancel := context.WithTimeout(context.Background(), healthProbeTimeout)
	defer cancel()

	var req *http.Request
	var err error
	switch cfg.Provider {
	case config.ProviderOpenAI:
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, "https://api.openai.com/v1/models", nil)
		if err == nil {
			req.Header.Set("Authorization", "Bearer "+cfg.OpenAI.APIKey)
		}
	default:
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, cfg.Ollama.APIURL+"/api/tags", nil)
	}
	if err != nil {
		return false
	}

	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
