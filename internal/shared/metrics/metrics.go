package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors shared by the api and worker processes.
type Metrics struct {
	RecordsCreated       *prometheus.CounterVec
	NotificationsSent    *prometheus.CounterVec
	NotificationFailures *prometheus.CounterVec
	SweepRuns            prometheus.Counter
	SweepScanned         *prometheus.CounterVec
	SweepRecordErrors    prometheus.Counter
	RecordsPurged        prometheus.Counter
}

// New registers all collectors on reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RecordsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vms_records_created_total",
			Help: "Records accepted by intake, by kind",
		}, []string{"kind"}),
		NotificationsSent: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vms_notifications_sent_total",
			Help: "Notifications handed to the transport, by notification kind",
		}, []string{"type"}),
		NotificationFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vms_notification_failures_total",
			Help: "Notifications the transport rejected, by notification kind",
		}, []string{"type"}),
		SweepRuns: f.NewCounter(prometheus.CounterOpts{
			Name: "vms_overstay_sweeps_total",
			Help: "Completed overstay sweeps",
		}),
		SweepScanned: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vms_overstay_scanned_total",
			Help: "Checked-in records examined by the overstay sweep, by kind",
		}, []string{"kind"}),
		SweepRecordErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "vms_overstay_record_errors_total",
			Help: "Records the overstay sweep failed to process",
		}),
		RecordsPurged: f.NewCounter(prometheus.CounterOpts{
			Name: "vms_records_purged_total",
			Help: "Records hard-deleted after delete_at elapsed",
		}),
	}
}

// NewNop returns metrics bound to a throwaway registry.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
