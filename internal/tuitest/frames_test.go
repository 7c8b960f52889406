package tuitest

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFramesSplitsOnClear(t *testing.T) {
	raw := []byte("\x1b[2J\x1b[HLoading skip options...\r\n\x1b[2J\x1b[H\x1b[1mChoose Your\x1b[0m Perfect Skip   \r\n\r\n")
	frames := parseFrames(raw)
	require.Len(t, frames, 2)
	assert.Equal(t, "Loading skip options...", frames[0].Plain)
	assert.Equal(t, "Choose Your Perfect Skip", frames[1].Plain)
	assert.Equal(t, 1, frames[1].Index)
}

func TestParseFramesWithoutClearKeepsStream(t *testing.T) {
	frames := parseFrames([]byte("plain output\n"))
	require.Len(t, frames, 1)
	assert.Equal(t, "plain output", frames[0].Plain)
}

func TestRecordingSearch(t *testing.T) {
	rec := &Recording{
		Raw: []byte("\x1b]0;title\x07Page 1/2\r\nSelected skip: 16-yard\r\n"),
		Frames: []Frame{
			{Index: 0, Plain: "Loading skip options..."},
			{Index: 1, Plain: "Page 1/2"},
			{Index: 2, Plain: "Page 2/2"},
			{Index: 3, Plain: "Page 1/2"},
		},
	}

	frame, ok := rec.FindFrame("Page 1/2")
	require.True(t, ok)
	assert.Equal(t, 1, frame.Index)

	frame, ok = rec.LastFrameContaining("Page 1/2")
	require.True(t, ok)
	assert.Equal(t, 3, frame.Index)

	assert.True(t, rec.Contains("Page 2/2"))
	assert.False(t, rec.Contains("Page 3/2"))
	assert.Equal(t, "Page 1/2\nSelected skip: 16-yard", rec.Output())

	final, ok := rec.FinalFrame()
	require.True(t, ok)
	assert.Equal(t, 3, final.Index)

	var empty *Recording
	assert.False(t, empty.Contains("anything"))
	_, ok = empty.FinalFrame()
	assert.False(t, ok)
}

func TestBackgroundResponderAnswersSplitQuery(t *testing.T) {
	var out bytes.Buffer
	responder := &backgroundResponder{w: &out}
	responder.Process([]byte("frame\x1b]11;"))
	assert.Empty(t, out.String(), "partial query should wait for the next chunk")
	responder.Process([]byte("?\x1b\\\x1b[6n"))
	assert.Equal(t, string(backgroundReply), out.String())

	responder.Process([]byte("\x1b]10;?\x1b\\\x1b[6n"))
	assert.Equal(t, string(backgroundReply), out.String(), "only background queries are answered")
}

func TestWaitForStep(t *testing.T) {
	step := WaitFor("Page 1/2", KeyEnter)
	assert.Equal(t, "Page 1/2", step.WaitFor)
	assert.Equal(t, KeyEnter, step.Input)
	assert.Zero(t, step.Delay)
}

func TestWaitForTextSeesLaterOutput(t *testing.T) {
	var output lockedBuffer
	go func() {
		time.Sleep(3 * pollInterval)
		_, _ = output.Write([]byte("\x1b[1mPage 2/2\x1b[0m\r\n"))
	}()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, waitForText(ctx, &output, "Page 2/2"))
	assert.Equal(t, "Page 2/2\n", output.Plain())
}

func TestWaitForTextTimesOut(t *testing.T) {
	var output lockedBuffer
	ctx, cancel := context.WithTimeout(context.Background(), 5*pollInterval)
	defer cancel()
	err := waitForText(ctx, &output, "never")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
