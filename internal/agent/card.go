// Package agent serves the A2A agent card.
package agent

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed agent.json
var rawAgentCard []byte

// AgentCardData holds the validated card once LoadAgentCard has succeeded.
var AgentCardData []byte

var (
	loadOnce sync.Once
	loadErr  error
)

// LoadAgentCard validates the embedded card and publishes it in AgentCardData.
func LoadAgentCard() error {
	loadOnce.Do(func() {
		var card map[string]any
		if err := json.Unmarshal(rawAgentCard, &card); err != nil {
			loadErr = fmt.Errorf("invalid agent card: %w", err)
			return
		}
		for _, field := range []string{"name", "description", "version", "capabilities", "endpoints", "skills"} {
			if _, ok := card[field]; !ok {
				loadErr = fmt.Errorf("agent card missing field %q", field)
				return
			}
		}
		AgentCardData = rawAgentCard
	})
	return loadErr
}
