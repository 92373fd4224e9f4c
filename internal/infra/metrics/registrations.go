package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	registrationsStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "signup_flows_started_total",
			Help: "Signup wizards that passed the basic-info step.",
		},
	)

	registrationsCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "signup_flows_completed_total",
			Help: "Signup wizards that committed an account.",
		},
	)

	codesSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verification_codes_sent_total",
			Help: "Verification codes dispatched, by trigger (register/resend).",
		},
		[]string{"trigger"},
	)

	codesChecked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verification_codes_checked_total",
			Help: "Verification code checks by outcome (ok/mismatch/expired).",
		},
		[]string{"outcome"},
	)
)

func init() {
	register(registrationsStarted, registrationsCompleted, codesSent, codesChecked)
}

func IncRegistrationStarted()   { registrationsStarted.Inc() }
func IncRegistrationCompleted() { registrationsCompleted.Inc() }

func IncCodeSent(trigger string)    { codesSent.WithLabelValues(norm(trigger)).Inc() }
func IncCodeChecked(outcome string) { codesChecked.WithLabelValues(norm(outcome)).Inc() }
