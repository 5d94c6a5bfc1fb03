// Package metrics defines the custom Prometheus metrics for the admin API.
// It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "admin"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "rejected" (bad credentials), or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenRejectionsTotal counts credentials rejected by the validator.
// Label:
//   - reason: "malformed", "bad_signature", "missing_expiry", "expired", "missing_identity"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of bearer tokens rejected, by decode reason.",
	},
	[]string{"reason"},
)

// ResetChallengesTotal counts password-reset challenges.
// Label:
//   - stage: "issued", "redeemed", or "rejected"
var ResetChallengesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reset_challenges_total",
		Help:      "Total number of password-reset challenges, by lifecycle stage.",
	},
	[]string{"stage"},
)

// ── Resource metrics ──────────────────────────────────────────────────────────

// ResourceOpsTotal counts CRUD operations that completed successfully.
// Labels:
//   - resource: "products" or "users"
//   - op: "create", "update", "delete", or "update_role"
var ResourceOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resource_ops_total",
		Help:      "Total number of successful resource mutations, by resource and operation.",
	},
	[]string{"resource", "op"},
)

// MailQueueDepth tracks notifications waiting in each dispatcher worker.
// Label:
//   - worker_id: numeric worker index
var MailQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mail_queue_depth",
		Help:      "Current number of reset notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
