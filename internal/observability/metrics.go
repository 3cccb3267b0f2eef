package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CareActionsLogged counts care logs written, by action type.
	CareActionsLogged = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "plantcare_care_actions_logged_total",
		Help: "Total number of care actions logged",
	}, []string{"action"})

	// CareActionsIgnored counts care requests dropped because the caller does not own the plant.
	CareActionsIgnored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "plantcare_care_actions_ignored_total",
		Help: "Care requests ignored due to ownership mismatch",
	})

	// ForumPostsCreated counts forum posts created.
	ForumPostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "plantcare_forum_posts_created_total",
		Help: "Total number of forum posts created",
	})

	// AuthAttempts counts login and registration attempts by outcome.
	AuthAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "plantcare_auth_attempts_total",
		Help: "Login and registration attempts by operation and outcome",
	}, []string{"operation", "outcome"})

	// CategoryCacheLookups counts forum category cache lookups by result.
	CategoryCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "plantcare_category_cache_lookups_total",
		Help: "Forum category cache lookups by result (hit, miss)",
	}, []string{"result"})
)
