package cmd

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/demonid/crpt-go/batch"
	"github.com/demonid/crpt-go/internal/config"
	"github.com/demonid/crpt-go/logger"
	"github.com/demonid/crpt-go/rate"
	"github.com/demonid/crpt-go/types"
)

const testDocId = "0e85d8b5-28cc-447d-ba1d-d8e63c7459f9"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testConfig(backend string) *config.Config {
	return &config.Config{
		BaseUrl: "https://ismp.example.test/api",
		Timeout: time.Second,
		Rate:    config.RateConfig{Limit: 3, Interval: 1, Unit: "s", Backend: backend},
		Redis:   config.RedisConfig{Key: "crpt:test"},
		Logging: config.LoggingConfig{Level: "info"},
	}
}

func TestReadDocument(t *testing.T) {
	path := writeFile(t, "doc.json", `{"doc_id":"`+testDocId+`","doc_type":"LP_INTRODUCE_GOODS","production_date":"2024-01-15"}`)
	doc, err := readDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "LP_INTRODUCE_GOODS", doc.DocType)
	assert.Equal(t, testDocId, doc.DocId.String())
	assert.Equal(t, "2024-01-15", doc.ProductionDate.String())

	_, err = readDocument(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)

	_, err = readDocument(writeFile(t, "empty.json", "  \n"))
	assert.ErrorContains(t, err, "empty")

	_, err = readDocument(writeFile(t, "broken.json", `{"doc_type":`))
	assert.ErrorContains(t, err, "failed to parse")
}

func TestNewLogger(t *testing.T) {
	testCases := []struct {
		level   string
		verbose bool
		expect  zapcore.Level
	}{
		{level: "info", expect: zapcore.InfoLevel},
		{level: "warn", expect: zapcore.WarnLevel},
		{level: "debug", expect: zapcore.DebugLevel},
		{level: "error", verbose: true, expect: zapcore.DebugLevel},
	}
	for _, tt := range testCases {
		zl, err := newLogger(tt.level, tt.verbose)
		require.NoError(t, err)
		assert.True(t, zl.Core().Enabled(tt.expect), tt.level)
		if tt.expect > zapcore.DebugLevel {
			assert.False(t, zl.Core().Enabled(tt.expect-1), tt.level)
		}
	}

	_, err := newLogger("loud", false)
	assert.ErrorContains(t, err, "logging.level")
}

func TestNewLimiter(t *testing.T) {
	t.Run("sliding window", func(t *testing.T) {
		l, closeFn, err := newLimiter(testConfig(config.BackendSlidingWindow), &logger.Noop{})
		require.NoError(t, err)
		defer closeFn() // nolint:errcheck
		require.IsType(t, &rate.SlidingWindow{}, l)
		assert.Equal(t, 3, l.(*rate.SlidingWindow).Limit())
		assert.Equal(t, time.Second, l.(*rate.SlidingWindow).Window())
	})

	t.Run("token bucket", func(t *testing.T) {
		l, _, err := newLimiter(testConfig(config.BackendTokenBucket), &logger.Noop{})
		require.NoError(t, err)
		require.IsType(t, &rate.TokenBucket{}, l)
		assert.Equal(t, 3, l.(*rate.TokenBucket).Limit())
	})

	t.Run("redis", func(t *testing.T) {
		server := miniredis.RunT(t)
		cfg := testConfig(config.BackendRedis)
		cfg.Redis.Addr = server.Addr()

		l, closeFn, err := newLimiter(cfg, &logger.Noop{})
		require.NoError(t, err)
		defer closeFn() // nolint:errcheck
		require.IsType(t, &rate.RedisWindow{}, l)

		require.NoError(t, l.Acquire(t.Context()))
		members, err := server.ZMembers("crpt:test")
		require.NoError(t, err)
		assert.Len(t, members, 1)
	})

	t.Run("invalid unit", func(t *testing.T) {
		cfg := testConfig(config.BackendSlidingWindow)
		cfg.Rate.Unit = "d"
		_, _, err := newLimiter(cfg, &logger.Noop{})
		assert.ErrorContains(t, err, "rate.unit")
	})
}

func TestPrintResponses(t *testing.T) {
	id := uuid.MustParse(testDocId)
	zl := zap.NewNop()

	var out bytes.Buffer
	single := make(chan batch.Response, 1)
	single <- batch.Response{DocumentId: id, OriginalReq: batch.Message{MetaData: "a.json"}}
	close(single)
	require.NoError(t, printResponses(&out, zl, single, 1))
	assert.Equal(t, testDocId+"\n", out.String())

	out.Reset()
	many := make(chan batch.Response, 2)
	many <- batch.Response{DocumentId: id, OriginalReq: batch.Message{MetaData: "a.json"}}
	many <- batch.Response{Error: assert.AnError, OriginalReq: batch.Message{MetaData: "b.json"}}
	close(many)
	err := printResponses(&out, zl, many, 2)
	assert.EqualError(t, err, "1 of 2 documents were not created")
	assert.Equal(t, "a.json\t"+testDocId+"\n", out.String())
}

func TestCreateCommand(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/api/v3/lk/documents/create", r.URL.Path)
		assert.Equal(t, "shoes", r.URL.Query().Get("pg"))
		assert.Equal(t, "Bearer cli-token", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		var req types.CreateDocumentRequest
		assert.NoError(t, json.Unmarshal(body, &req))
		_, err = base64.StdEncoding.DecodeString(req.ProductDocument)
		assert.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"value":"%s"}`, testDocId)
	}))
	defer server.Close()

	cfgPath := writeFile(t, "crpt.yaml", fmt.Sprintf(`
base_url: %s/api
timeout: 2s
rate:
  limit: 10
  interval: 1
  unit: s
logging:
  level: error
`, server.URL))
	docPath := writeFile(t, "doc.json", `{"doc_type":"LP_INTRODUCE_GOODS","participant_inn":"7700000000"}`)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"create",
		"--config", cfgPath,
		"--file", docPath,
		"--group", "shoes",
		"--signature", "sig",
		"--token", "cli-token",
	})
	require.NoError(t, Execute())

	assert.Equal(t, testDocId+"\n", out.String())
	assert.Equal(t, int32(1), calls.Load())
}
