package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resolve outcome labels.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeCorrupt  = "corrupt"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// Resolve format labels.
const (
	FormatShortID = "short_id"
	FormatLegacy  = "legacy"
	FormatUnknown = "unknown"
)

var (
	// ShareLinksCreated counts successfully minted short links.
	ShareLinksCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voicelinks_share_links_created_total",
		Help: "Total short links created",
	})

	// ShareLinkResolves counts resolve attempts by token format and outcome.
	ShareLinkResolves = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voicelinks_share_link_resolves_total",
		Help: "Total share link resolutions by format and outcome",
	}, []string{"format", "outcome"})

	// RepliesAppended counts replies added to threads by type.
	RepliesAppended = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voicelinks_replies_appended_total",
		Help: "Total replies appended to recording threads by type",
	}, []string{"type"})

	// ClickIncrementFailures counts lost click increments. Click counting
	// is best-effort, so failures are observed here rather than surfaced
	// to the caller.
	ClickIncrementFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voicelinks_click_increment_failures_total",
		Help: "Total failed best-effort click counter increments",
	})
)
