package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	creditsGrantedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "credits_granted_total",
		Help: "Sum of credits handed out by the daily free grant.",
	})

	creditsSpentTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "credits_spent_total",
		Help: "Sum of credits deducted for metered lookups.",
	})

	insufficientCreditsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "insufficient_credits_total",
		Help: "Lookups refused because the caller's balance was too low.",
	})
)

func init() {
	register(creditsGrantedTotal, creditsSpentTotal, insufficientCreditsTotal)
}

func AddCreditsGranted(n int64) { creditsGrantedTotal.Add(float64(n)) }
func AddCreditsSpent(n int64)   { creditsSpentTotal.Add(float64(n)) }
func IncInsufficientCredits()   { insufficientCreditsTotal.Inc() }
