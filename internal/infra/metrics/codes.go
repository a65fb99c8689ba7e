package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	codesIssuedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "redeem_codes_issued_total",
		Help: "Redeem codes created by privileged users.",
	})

	codeRedemptionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redeem_code_redemptions_total",
			Help: "Redemption attempts by outcome (success/failure).",
		},
		[]string{"status"},
	)
)

func init() {
	register(codesIssuedTotal, codeRedemptionsTotal)
}

func IncCodeIssued() { codesIssuedTotal.Inc() }

func IncCodeRedemption(status string) {
	codeRedemptionsTotal.WithLabelValues(norm(status)).Inc()
}
