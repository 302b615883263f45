// Package metrics defines and registers all custom Prometheus metrics for the
// CityLink issue-reporting API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "citylink"

// ── Account metrics ───────────────────────────────────────────────────────────

// AccountsCreatedTotal counts successfully created accounts.
// Label:
//   - role: "citizen", "city_admin", or "super_admin" (bootstrap)
var AccountsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_created_total",
		Help:      "Total number of accounts created, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Issue metrics ─────────────────────────────────────────────────────────────

// IssuesCreatedTotal counts reported issues.
// Label:
//   - category: the issue category chosen by the reporter
var IssuesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "issues_created_total",
		Help:      "Total number of issues reported, by category.",
	},
	[]string{"category"},
)

// IssueStatusUpdatesTotal counts status mutations.
// Label:
//   - status: the status the issue was set to
var IssueStatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "issue_status_updates_total",
		Help:      "Total number of issue status updates, by target status.",
	},
	[]string{"status"},
)

// IssueAnalysesTotal counts AI analysis attempts.
// Label:
//   - result: "success" or "unavailable"
var IssueAnalysesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "issue_analyses_total",
		Help:      "Total number of issue analysis calls, by result.",
	},
	[]string{"result"},
)
