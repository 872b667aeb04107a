// Package metrics holds Prometheus instruments that are used across the
// service.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SubmissionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Cumulative number of contact messages persisted.",
		})

	ValidationFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "contact_validation_failures_total",
			Help: "Cumulative number of submissions rejected by validation.",
		})

	AdminAuthFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "admin_auth_failures_total",
			Help: "Cumulative number of rejected admin logins and tokens.",
		})

	MailSentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mail_sent_total",
			Help: "Cumulative number of emails sent, by kind.",
		}, []string{"kind"})

	MailErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mail_errors_total",
			Help: "Cumulative number of failed email sends, by kind.",
		}, []string{"kind"})

	MailDroppedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mail_dropped_total",
			Help: "Cumulative number of mail jobs dropped by a full queue.",
		})

	MailQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "mail_queue_depth",
			Help: "Number of mail jobs waiting in the dispatch queue.",
		})
)

func init() {
	prometheus.MustRegister(
		SubmissionsTotal,
		ValidationFailuresTotal,
		AdminAuthFailuresTotal,
		MailSentTotal,
		MailErrorsTotal,
		MailDroppedTotal,
		MailQueueDepth,
	)
}
