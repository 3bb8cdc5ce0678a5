// Package metrics exports per-owner catalog usage in the Prometheus text
// format, for pickup by node_exporter's textfile collector.
package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"drive-go/internal/drive"
	"drive-go/internal/model"
)

// UserLister lists the accounts to export usage for.
type UserLister interface {
	ListUsers(ctx context.Context) ([]*model.User, error)
}

// UsageReader returns one owner's usage. *drive.Catalog implements it.
type UsageReader interface {
	UsageAnalytics(ctx context.Context, owner drive.Principal) (*model.Usage, error)
}

// UsageExporter holds usage gauges in a private registry so that process
// and Go runtime metrics stay out of the textfile.
type UsageExporter struct {
	registry *prometheus.Registry

	users        prometheus.Gauge
	storageBytes *prometheus.GaugeVec
	files        *prometheus.GaugeVec
	downloads    *prometheus.GaugeVec
}

func NewUsageExporter() *UsageExporter {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &UsageExporter{
		registry: reg,
		users: factory.NewGauge(prometheus.GaugeOpts{
			Name: "drive_users",
			Help: "Number of registered accounts.",
		}),
		storageBytes: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "drive_storage_bytes",
			Help: "Bytes held by the priority revisions of an owner's files.",
		}, []string{"owner"}),
		files: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "drive_files",
			Help: "Logical files per owner and MIME type.",
		}, []string{"owner", "mime_type"}),
		downloads: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "drive_downloads",
			Help: "Owner downloads summed over an owner's files.",
		}, []string{"owner"}),
	}
}

// Record sets the gauges of one owner.
func (e *UsageExporter) Record(owner string, u *model.Usage) {
	e.storageBytes.WithLabelValues(owner).Set(float64(u.TotalBytes))
	for mimeType, n := range u.ByMimeType {
		e.files.WithLabelValues(owner, mimeType).Set(float64(n))
	}
	var total int64
	for _, n := range u.DownloadsByName {
		total += n
	}
	e.downloads.WithLabelValues(owner).Set(float64(total))
}

// Collect resets the gauges and records the usage of every account, labelled
// by email.
func (e *UsageExporter) Collect(ctx context.Context, users UserLister, usage UsageReader) error {
	accounts, err := users.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("listing users: %w", err)
	}

	e.storageBytes.Reset()
	e.files.Reset()
	e.downloads.Reset()
	e.users.Set(float64(len(accounts)))

	for _, u := range accounts {
		owner := drive.Principal{UserID: u.ID, Email: u.Email}
		report, err := usage.UsageAnalytics(ctx, owner)
		if err != nil {
			return fmt.Errorf("usage of %s: %w", u.Email, err)
		}
		e.Record(u.Email, report)
	}
	return nil
}

// WriteTextfile atomically writes the gauges to path.
func (e *UsageExporter) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, e.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}

// Gatherer exposes the registry, e.g. for promhttp.
func (e *UsageExporter) Gatherer() prometheus.Gatherer {
	return e.registry
}
