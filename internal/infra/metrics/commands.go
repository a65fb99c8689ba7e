package metrics

import "github.com/prometheus/client_golang/prometheus"

var botCommandTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bot_command_total",
		Help: "Bot commands by result status.",
	},
	[]string{"command", "status"}, // status: 'ok', 'error', 'unauthorized'
)

func init() {
	register(botCommandTotal)
}

func IncBotCommand(command, status string) {
	botCommandTotal.WithLabelValues(norm(command), norm(status)).Inc()
}
