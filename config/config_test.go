package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadConfig_Defaults(t *testing.T) {
	config, err := ReadConfig(filepath.Join(t.TempDir(), "config.yml"), false)

	require.NoError(t, err)
	assert.Equal(t, 1000, config.ReportSize)
	assert.Equal(t, "./reports", config.ReportDir)
	assert.Equal(t, "./log", config.LogDir)
	assert.Equal(t, "", config.LogFile)
	assert.InDelta(t, 50, config.ParsingErrorLimit, 1e-9)
	assert.Equal(t, "report.html", config.TemplateFilename)
	assert.Equal(t, "info", config.LoggingLevel)
	assert.Equal(t, "noop", config.Metrics.Driver)
	assert.Nil(t, config.Metrics.InfluxDB)
	assert.Nil(t, config.Publish.S3)
}

func TestReadConfig_MissingRequiredFile(t *testing.T) {
	_, err := ReadConfig(filepath.Join(t.TempDir(), "config.yml"), true)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadConfig_UpperCaseKeys(t *testing.T) {
	path := writeConfig(t, `
REPORT_SIZE: 10
REPORT_DIR: /tmp/reports
LOG_DIR: /var/log/nginx
LOG_FILE: /tmp/analyzer.log
PARSING_ERROR_LIMIT: 12.5
TEMPLATE_FILENAME: /etc/analyzer/report.html
LOGGING_LEVEL: exception
`)

	config, err := ReadConfig(path, true)

	require.NoError(t, err)
	assert.Equal(t, 10, config.ReportSize)
	assert.Equal(t, "/tmp/reports", config.ReportDir)
	assert.Equal(t, "/var/log/nginx", config.LogDir)
	assert.Equal(t, "/tmp/analyzer.log", config.LogFile)
	assert.InDelta(t, 12.5, config.ParsingErrorLimit, 1e-9)
	assert.Equal(t, "/etc/analyzer/report.html", config.TemplateFilename)
	assert.Equal(t, "exception", config.LoggingLevel)
}

func TestReadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "report_size: 5\n")

	config, err := ReadConfig(path, true)

	require.NoError(t, err)
	assert.Equal(t, 5, config.ReportSize)
	assert.Equal(t, "./log", config.LogDir)
}

func TestReadConfig_EmptyFile(t *testing.T) {
	config, err := ReadConfig(writeConfig(t, ""), true)

	require.NoError(t, err)
	assert.Equal(t, 1000, config.ReportSize)
}

func TestReadConfig_EnvironmentOverride(t *testing.T) {
	t.Setenv("LOG_ANALYZER_REPORT_SIZE", "42")
	t.Setenv("LOG_ANALYZER_LOG_DIR", "/srv/logs")

	config, err := ReadConfig(writeConfig(t, "report_size: 5\n"), true)

	require.NoError(t, err)
	assert.Equal(t, 42, config.ReportSize)
	assert.Equal(t, "/srv/logs", config.LogDir)
}

func TestReadConfig_InvalidLoggingLevel(t *testing.T) {
	_, err := ReadConfig(writeConfig(t, "logging_level: debug\n"), true)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "LoggingLevel")
}

func TestReadConfig_InvalidReportSize(t *testing.T) {
	_, err := ReadConfig(writeConfig(t, "report_size: 0\n"), true)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestReadConfig_MalformedYAML(t *testing.T) {
	_, err := ReadConfig(writeConfig(t, "report_size: [1, 2\n"), true)
	assert.Error(t, err)
}

func TestReadConfig_InfluxDB(t *testing.T) {
	t.Run("Required when selected", func(t *testing.T) {
		_, err := ReadConfig(writeConfig(t, "metrics:\n  driver: influxdb\n"), true)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("Fields required", func(t *testing.T) {
		path := writeConfig(t, `
metrics:
  driver: influxdb
  influxdb:
    host: http://localhost:8086
`)
		_, err := ReadConfig(path, true)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("Token from environment", func(t *testing.T) {
		t.Setenv("LOG_ANALYZER_METRICS_INFLUXDB_TOKEN", "secret")
		path := writeConfig(t, `
metrics:
  driver: influxdb
  influxdb:
    host: http://localhost:8086
    org: ops
    bucket: nginx
`)
		config, err := ReadConfig(path, true)

		require.NoError(t, err)
		require.NotNil(t, config.Metrics.InfluxDB)
		assert.Equal(t, "secret", config.Metrics.InfluxDB.Token)
		assert.Equal(t, "http://localhost:8086", config.Metrics.InfluxDB.Host)
	})
}

func TestReadConfig_UnknownMetricsDriver(t *testing.T) {
	_, err := ReadConfig(writeConfig(t, "metrics:\n  driver: prometheus\n"), true)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestReadConfig_PublishS3(t *testing.T) {
	path := writeConfig(t, `
publish:
  s3:
    bucket: reports
    prefix: nginx/ui
    region: eu-west-1
    endpoint: http://localhost:4566
`)

	config, err := ReadConfig(path, true)

	require.NoError(t, err)
	require.NotNil(t, config.Publish.S3)
	assert.Equal(t, S3{
		Bucket:   "reports",
		Prefix:   "nginx/ui",
		Region:   "eu-west-1",
		Endpoint: "http://localhost:4566",
	}, *config.Publish.S3)
}

func TestReadConfig_PublishS3RequiresBucket(t *testing.T) {
	_, err := ReadConfig(writeConfig(t, "publish:\n  s3:\n    prefix: nginx\n"), true)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
