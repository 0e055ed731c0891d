package prometheus

import (
	"testing"
	"time"

	"backoffice-service/pkg/config"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitMetricsUsesConfiguredPrefix(t *testing.T) {
	cfg := &config.Config{}
	cfg.Metrics.Prefix = "shopadmin"
	InitMetrics(cfg)

	// Exercise the label-carrying collectors so they show up in the gather
	RecordAuthError("user_not_found")
	RecordUploadError("decode")
	HTTPRequestCounter.WithLabelValues("/api/products", "GET", "200").Inc()
	ResourceOperationCounter.WithLabelValues("product", "create").Inc()
	TrackDBOperation("query")(time.Now())

	families, err := prom.DefaultGatherer.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, family := range families {
		names[family.GetName()] = true
	}

	for _, name := range []string{
		"shopadmin_login_total",
		"shopadmin_auth_errors_total",
		"shopadmin_http_requests_total",
		"shopadmin_resource_operations_total",
		"shopadmin_image_uploads_total",
		"shopadmin_image_upload_errors_total",
		"shopadmin_db_operation_duration_seconds",
	} {
		assert.True(t, names[name], "metric %s was not registered", name)
	}
}
