package logger

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLogBufferConcurrentAccess(t *testing.T) {
	spillFile := filepath.Join(t.TempDir(), "test_spill.log")

	buffer, err := NewLogBuffer(100, spillFile)
	require.NoError(t, err)
	defer buffer.Close()

	done := buffer.StartPeriodicFlush(20*time.Millisecond, zap.NewNop())
	defer close(done)

	var wg sync.WaitGroup
	numGoroutines := 10
	logsPerGoroutine := 100

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < logsPerGoroutine; j++ {
				fields := map[string]interface{}{"goroutine": id, "iteration": j}
				assert.NoError(t, buffer.Add("info", fmt.Sprintf("log %d/%d", id, j), fields))
			}
		}(i)
	}

	go func() {
		for i := 0; i < 20; i++ {
			_ = buffer.GetRecentLogs(10)
			time.Sleep(5 * time.Millisecond)
		}
	}()

	wg.Wait()
	require.NoError(t, buffer.Flush())

	total, spilled := buffer.GetStats()
	assert.Equal(t, uint64(numGoroutines*logsPerGoroutine), total)
	assert.Equal(t, total-100, spilled)

	_, err = os.Stat(spillFile)
	assert.NoError(t, err)
}

func TestLogBufferRingBufferBehavior(t *testing.T) {
	buffer, err := NewLogBuffer(5, "")
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.NoError(t, buffer.Add("info", fmt.Sprintf("Log %d", i), nil))
	}

	logs := buffer.GetRecentLogs(10)
	require.Len(t, logs, 5)
	assert.Equal(t, "Log 5", logs[0].Message)
	assert.Equal(t, "Log 9", logs[4].Message)

	logs = buffer.GetRecentLogs(2)
	require.Len(t, logs, 2)
	assert.Equal(t, "Log 8", logs[0].Message)
	assert.Equal(t, "Log 9", logs[1].Message)
}

func TestLogBufferBeforeWrap(t *testing.T) {
	buffer, err := NewLogBuffer(5, "")
	require.NoError(t, err)

	assert.Empty(t, buffer.GetRecentLogs(0))

	require.NoError(t, buffer.Add("warn", "first", nil))
	require.NoError(t, buffer.Add("info", "second", nil))

	logs := buffer.GetRecentLogs(0)
	require.Len(t, logs, 2)
	assert.Equal(t, "first", logs[0].Message)
}

func TestLogBufferCloseSpillsEverything(t *testing.T) {
	spillFile := filepath.Join(t.TempDir(), "nested", "spill.log")
	buffer, err := NewLogBuffer(3, spillFile)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, buffer.Add("info", fmt.Sprintf("Log %d", i), nil))
	}
	require.NoError(t, buffer.Close())

	data, err := os.ReadFile(spillFile)
	require.NoError(t, err)

	lines := 0
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		lines++
	}
	// two spilled while running, three on close
	assert.Equal(t, 5, lines)
}

func TestTUILoggerWritesToBuffer(t *testing.T) {
	buffer, err := NewLogBuffer(10, "")
	require.NoError(t, err)

	log, err := CreateTUILogger(false, buffer)
	require.NoError(t, err)

	log.Named("ingest").Info("Earnings file imported", zap.Int("games", 2))
	log.Debug("hidden at info level")

	logs := buffer.GetRecentLogs(0)
	require.Len(t, logs, 1)
	assert.Equal(t, "info", logs[0].Level)
	assert.Equal(t, "Earnings file imported", logs[0].Message)
	assert.Equal(t, float64(2), logs[0].Fields["games"])
	assert.Equal(t, "ingest", logs[0].Fields["logger"])
}

func TestTUILoggerRequiresBuffer(t *testing.T) {
	_, err := CreateTUILogger(true, nil)
	assert.Error(t, err)
}

func TestPrettyLogger(t *testing.T) {
	var out bytes.Buffer
	log := NewPrettyLogger(&out, true)

	log.Debug("parsing", zap.String("path", "a.csv"))

	assert.Contains(t, out.String(), "[DEBUG]")
	assert.Contains(t, out.String(), "parsing")
	assert.Contains(t, out.String(), "a.csv")
}
