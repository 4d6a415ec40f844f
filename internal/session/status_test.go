package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fermata-player/fermata/internal/engine"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "00:00"},
		{999, "00:00"},
		{1000, "00:01"},
		{61000, "01:01"},
		{3599000, "59:59"},
		{-500, "00:00"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.ms); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestStatus_NothingSelected(t *testing.T) {
	sess, _, _ := newTestSession(t, 0)

	st := sess.Status()
	assert.False(t, st.HasItem)
	assert.Equal(t, -1, st.Index)
	assert.Equal(t, engine.Idle, st.State)
	assert.Equal(t, -1, st.LyricIndex)
}

func TestStatus_Snapshot(t *testing.T) {
	sess, mock, paths := newTestSession(t, 2)
	require.NoError(t, sess.PlayIndex(1))
	mock.SetPosition(42 * time.Second)
	mock.SetDuration(3 * time.Minute)

	st := sess.Status()
	assert.True(t, st.HasItem)
	assert.Equal(t, 1, st.Index)
	assert.Equal(t, paths[1], st.Item.MainPath)
	assert.Equal(t, engine.Playing, st.State)
	assert.Equal(t, "00:42", st.Elapsed)
	assert.Equal(t, "03:00", st.Total)
	assert.Equal(t, 0.5, st.Volume)
	assert.Equal(t, 1.0, st.Rate)
	assert.Equal(t, Sequential, st.Mode)
}
