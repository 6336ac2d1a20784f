package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_CapturesLevels(t *testing.T) {
	mock := &MockLogger{}

	mock.Debug("debug msg")
	mock.Info("info msg")
	mock.Warn("warn msg")
	mock.Error("error msg")
	mock.Fatal("fatal msg")

	assert.Len(t, mock.GetEntries(), 5)
	assert.True(t, mock.HasEntry("DEBUG", "debug msg"))
	assert.True(t, mock.HasEntry("INFO", "info msg"))
	assert.True(t, mock.HasEntry("WARN", "warn msg"))
	assert.True(t, mock.HasEntry("ERROR", "error msg"))
	assert.True(t, mock.HasEntry("FATAL", "fatal msg"))
	assert.False(t, mock.HasEntry("INFO", "never logged"))
}

func TestMockLogger_DerivedLoggersShareEntries(t *testing.T) {
	mock := &MockLogger{}
	testErr := errors.New("boom")

	mock.WithError(testErr).Error("operation failed")
	mock.WithField(FieldLocation, "/statements/april.pdf").Warn("skipping file")

	entries := mock.GetEntries()
	require.Len(t, entries, 2)

	assert.Equal(t, "ERROR", entries[0].Level)
	assert.Equal(t, testErr, entries[0].Error)

	assert.Equal(t, "WARN", entries[1].Level)
	require.Len(t, entries[1].Fields, 1)
	assert.Equal(t, FieldLocation, entries[1].Fields[0].Key)
}

func TestMockLogger_GetEntriesByLevel(t *testing.T) {
	mock := &MockLogger{}

	mock.Info("first")
	mock.Error("second")
	mock.Info("third")

	infos := mock.GetEntriesByLevel("INFO")
	require.Len(t, infos, 2)
	assert.Equal(t, "first", infos[0].Message)
	assert.Equal(t, "third", infos[1].Message)
}

func TestMockLogger_FieldsAccumulate(t *testing.T) {
	mock := &MockLogger{}

	mock.
		WithField(FieldStream, "nomad_transactions").
		WithField(FieldLocation, "gs://bucket/april.pdf").
		Info("processing", Field{Key: FieldCount, Value: 3})

	entries := mock.GetEntries()
	require.Len(t, entries, 1)
	require.Len(t, entries[0].Fields, 3)
	assert.Equal(t, FieldStream, entries[0].Fields[0].Key)
	assert.Equal(t, FieldLocation, entries[0].Fields[1].Key)
	assert.Equal(t, FieldCount, entries[0].Fields[2].Key)
}

func TestMockLogger_Clear(t *testing.T) {
	mock := &MockLogger{}

	mock.Info("entry")
	require.Len(t, mock.GetEntries(), 1)

	mock.Clear()
	assert.Empty(t, mock.GetEntries())
}
