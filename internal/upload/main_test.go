package upload

import (
	"os"
	"testing"

	"backoffice-service/pkg/config"
	"backoffice-service/prometheus"
)

func TestMain(m *testing.M) {
	cfg := &config.Config{}
	cfg.Metrics.Prefix = "backoffice_upload_test"
	prometheus.InitMetrics(cfg)

	os.Exit(m.Run())
}
