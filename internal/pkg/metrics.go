package pkg

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	communitiesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "supply_communities_created_total",
		Help: "Total number of communities created",
	})
	membersJoined = promauto.NewCounter(prometheus.CounterOpts{
		Name: "supply_members_joined_total",
		Help: "Total number of community memberships created",
	})
	invitations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "supply_invitations_total",
		Help: "Total number of invitation state changes",
	}, []string{"status"})
	itemsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "supply_items_created_total",
		Help: "Total number of items created",
	})
)

func IncCommunityCreated() { communitiesCreated.Inc() }
func IncMemberJoined()     { membersJoined.Inc() }
func IncItemCreated()      { itemsCreated.Inc() }

func IncInvitation(s string) {
	if s == "" {
		s = "created"
	}
	invitations.WithLabelValues(s).Inc()
}

// MetricsHandler /metrics 的处理器
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
