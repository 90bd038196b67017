package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sehyunkim/tacscreen/pkg/logger"
)

type fakeJob struct {
	name     string
	schedule string
	err      error
	panics   bool
	runs     int
}

func (j *fakeJob) Name() string     { return j.name }
func (j *fakeJob) Schedule() string { return j.schedule }
func (j *fakeJob) Run(context.Context) error {
	j.runs++
	if j.panics {
		panic("boom")
	}
	return j.err
}

func newTestScheduler() *Scheduler {
	s := New(logger.NewNop())
	s.maxRetries = 0
	s.retryDelay = 0
	return s
}

func TestAddJob(t *testing.T) {
	s := newTestScheduler()

	require.NoError(t, s.AddJob(&fakeJob{name: "a", schedule: "@daily"}))
	assert.Error(t, s.AddJob(&fakeJob{name: "a", schedule: "@daily"}), "duplicate name")
	assert.Error(t, s.AddJob(&fakeJob{name: "b", schedule: "not a cron expr"}))
}

func TestRunJob_RecordsHistory(t *testing.T) {
	s := newTestScheduler()
	job := &fakeJob{name: "ok", schedule: "@daily"}
	require.NoError(t, s.AddJob(job))

	s.runJob(job)

	history, err := s.GetJobHistory("ok")
	require.NoError(t, err)
	require.Len(t, history.Results, 1)
	assert.True(t, history.Results[0].Success)
	assert.Equal(t, 1.0, history.SuccessRate())
}

func TestRunJob_FailureAndPanicContained(t *testing.T) {
	s := newTestScheduler()

	failing := &fakeJob{name: "fail", schedule: "@daily", err: errors.New("nope")}
	require.NoError(t, s.AddJob(failing))
	s.runJob(failing)

	panicking := &fakeJob{name: "panic", schedule: "@daily", panics: true}
	require.NoError(t, s.AddJob(panicking))
	s.runJob(panicking) // must not crash the test

	history, err := s.GetJobHistory("fail")
	require.NoError(t, err)
	assert.False(t, history.Results[0].Success)
	assert.Equal(t, "nope", history.Results[0].Error)

	history, err = s.GetJobHistory("panic")
	require.NoError(t, err)
	assert.False(t, history.Results[0].Success)
	assert.Contains(t, history.Results[0].Error, "panicked")
}

func TestRunJob_Retries(t *testing.T) {
	s := newTestScheduler()
	s.maxRetries = 2

	job := &fakeJob{name: "flaky", schedule: "@daily", err: errors.New("always")}
	require.NoError(t, s.AddJob(job))
	s.runJob(job)

	assert.Equal(t, 3, job.runs)
}

func TestJobHistory_Bounded(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < 150; i++ {
		h.AddResult(JobResult{JobName: "x", StartTime: time.Now(), Success: i%2 == 0})
	}
	assert.Len(t, h.Results, 100)
}
