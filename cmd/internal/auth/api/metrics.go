package authapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tradebid",
		Subsystem: "auth",
		Name:      "login_attempts_total",
		Help:      "Login attempts by outcome.",
	}, []string{"outcome"})

	requestDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tradebid",
		Subsystem: "auth",
		Name:      "request_decisions_total",
		Help:      "Per-request authentication decisions by channel and outcome.",
	}, []string{"channel", "outcome"})
)

func observeLogin(outcome string) {
	loginAttempts.WithLabelValues(outcome).Inc()
}

func observeDecision(channel, outcome string) {
	requestDecisions.WithLabelValues(channel, outcome).Inc()
}
