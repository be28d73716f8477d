package go_func_utils

import (
	"bytes"
	"log"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeCall_RecoversAndLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	recovered := SafeCall(logger, func() { panic("speaker unplugged") })

	assert.True(t, recovered)
	assert.Contains(t, buf.String(), "speaker unplugged")
}

func TestSafeCall_NoPanic(t *testing.T) {
	ran := false
	assert.False(t, SafeCall(nil, func() { ran = true }))
	assert.True(t, ran)
}

func TestSafeCall_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.True(t, SafeCall(nil, func() { panic("boom") }))
	})
}

func TestSafeGo_RunsFunction(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	done := false
	SafeGo(log.New(&bytes.Buffer{}, "", 0), func() {
		defer wg.Done()
		done = true
	})
	wg.Wait()
	assert.True(t, done)
}
