package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	reactionsApplied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_reactions_total",
			Help: "Reaction transitions applied, by kind (like/dislike/block).",
		},
		[]string{"kind"},
	)

	articlesDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "articles_deleted_total",
			Help: "Owner-confirmed article deletions.",
		},
	)
)

func init() {
	register(reactionsApplied, articlesDeleted)
}

func IncReaction(kind string) { reactionsApplied.WithLabelValues(norm(kind)).Inc() }
func IncArticleDeleted()      { articlesDeleted.Inc() }
