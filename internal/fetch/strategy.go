package fetch

import (
	"time"

	"github.com/sells-group/prospect-cli/pkg/firecrawl"
)

// Strategy describes one rung of the escalation ladder: how long to let
// the page settle, what interactions to script, which proxy tier to pay
// for, and whether to fall back to the legacy endpoint.
type Strategy struct {
	Ordinal int
	Name    string
	WaitFor time.Duration
	Actions []firecrawl.Action
	Proxy   string
	Legacy  bool
}

// Ladder returns the fixed strategy escalation order. Each strategy runs
// only after the previous one raised a retryable failure; the first
// success short-circuits the rest.
func Ladder() []Strategy {
	return []Strategy{
		{
			Ordinal: 1,
			Name:    "baseline",
			WaitFor: 3 * time.Second,
			Proxy:   firecrawl.ProxyBasic,
		},
		{
			Ordinal: 2,
			Name:    "interaction",
			WaitFor: 5 * time.Second,
			Proxy:   firecrawl.ProxyBasic,
			// Scroll down and back up to trigger lazy-loaded rosters.
			Actions: []firecrawl.Action{
				firecrawl.WaitAction(2000),
				firecrawl.ScrollAction("down"),
				firecrawl.WaitAction(1500),
				firecrawl.ScrollAction("up"),
				firecrawl.WaitAction(1000),
			},
		},
		{
			Ordinal: 3,
			Name:    "stealth",
			WaitFor: 12 * time.Second,
			Proxy:   firecrawl.ProxyStealth,
		},
		{
			Ordinal: 4,
			Name:    "legacy",
			WaitFor: 8 * time.Second,
			Legacy:  true,
		},
	}
}
