package session

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/robalobadob/yams/internal/game"
	"github.com/robalobadob/yams/internal/score"
)

// Metrics counts game operations. A nil *Metrics records nothing.
type Metrics struct {
	gamesCreated   prometheus.Counter
	gamesCompleted prometheus.Counter
	throws         *prometheus.CounterVec
	selections     prometheus.Counter
	scores         *prometheus.CounterVec
	resets         prometheus.Counter
	rejections     *prometheus.CounterVec
	finalTotals    prometheus.Histogram
}

// NewMetrics registers the game metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		gamesCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: "yams", Name: "games_created_total", Help: "Games started.",
		}),
		gamesCompleted: f.NewCounter(prometheus.CounterOpts{
			Namespace: "yams", Name: "games_completed_total", Help: "Games whose score card was completed.",
		}),
		throws: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "yams", Name: "throws_total", Help: "Dice throws by resulting round.",
		}, []string{"round"}),
		selections: f.NewCounter(prometheus.CounterOpts{
			Namespace: "yams", Name: "selections_total", Help: "Die selection toggles.",
		}),
		scores: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "yams", Name: "scores_total", Help: "Categories scored.",
		}, []string{"category"}),
		resets: f.NewCounter(prometheus.CounterOpts{
			Namespace: "yams", Name: "resets_total", Help: "Games reset by the player.",
		}),
		rejections: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "yams", Name: "rejections_total", Help: "Operations refused by the game rules.",
		}, []string{"op"}),
		finalTotals: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "yams", Name: "final_total", Help: "Total score of completed games.",
			Buckets: prometheus.LinearBuckets(0, 50, 8),
		}),
	}
}

func (m *Metrics) gameCreated() {
	if m != nil {
		m.gamesCreated.Inc()
	}
}

func (m *Metrics) thrown(r game.Round) {
	if m != nil {
		m.throws.WithLabelValues(strconv.Itoa(int(r))).Inc()
	}
}

func (m *Metrics) selected() {
	if m != nil {
		m.selections.Inc()
	}
}

func (m *Metrics) scored(c score.Category) {
	if m != nil {
		m.scores.WithLabelValues(c.String()).Inc()
	}
}

func (m *Metrics) reset() {
	if m != nil {
		m.resets.Inc()
	}
}

func (m *Metrics) rejected(op string) {
	if m != nil {
		m.rejections.WithLabelValues(op).Inc()
	}
}

func (m *Metrics) completed(total int) {
	if m != nil {
		m.gamesCompleted.Inc()
		m.finalTotals.Observe(float64(total))
	}
}
