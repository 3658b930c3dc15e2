package sched

import (
	"errors"
	"testing"
	"time"

	"github.com/dshills/relay/notify"
)

func TestCall_Execute(t *testing.T) {
	c := NewCall(func() (any, error) { return 42, nil }, WithSyncResult())

	if c.State() != CallPending {
		t.Fatalf("expected pending state, got %v", c.State())
	}
	c.Execute()
	if c.State() != CallDone {
		t.Errorf("expected done state, got %v", c.State())
	}

	v, err := c.Result(time.Second)
	if err != nil {
		t.Fatalf("unexpected result error: %v", err)
	}
	if v != 42 {
		t.Errorf("expected result 42, got %v", v)
	}
}

func TestCall_ExecuteOnce(t *testing.T) {
	runs := 0
	c := NewCall(func() (any, error) {
		runs++
		return nil, nil
	})

	c.Execute()
	c.Execute()
	if runs != 1 {
		t.Errorf("expected exactly one execution, got %d", runs)
	}
}

func TestCall_ExecuteError(t *testing.T) {
	boom := errors.New("boom")
	c := NewCall(func() (any, error) { return nil, boom }, WithSyncResult())

	c.Execute()
	if !errors.Is(c.Err(), boom) {
		t.Errorf("expected function error, got %v", c.Err())
	}
	if _, err := c.Result(time.Second); !errors.Is(err, boom) {
		t.Errorf("expected function error from Result, got %v", err)
	}
}

func TestCall_Cancel(t *testing.T) {
	c := NewCall(func() (any, error) {
		t.Error("cancelled call must not run")
		return nil, nil
	}, WithSyncResult())

	if !c.Cancel() {
		t.Fatal("expected cancel of pending call to succeed")
	}
	if c.State() != CallCancelled {
		t.Errorf("expected cancelled state, got %v", c.State())
	}
	if c.Cancel() {
		t.Error("expected second cancel to be a no-op")
	}

	c.Execute()

	if _, err := c.Result(time.Second); !errors.Is(err, ErrCancelled) {
		t.Errorf("expected ErrCancelled, got %v", err)
	}
}

func TestCall_CancelAfterExecute(t *testing.T) {
	c := NewCall(func() (any, error) { return 1, nil })

	c.Execute()
	if c.Cancel() {
		t.Error("expected cancel of completed call to fail")
	}
	if c.State() != CallDone {
		t.Errorf("expected done state, got %v", c.State())
	}
}

func TestCall_ResultWithoutSync(t *testing.T) {
	c := NewCall(func() (any, error) { return 1, nil })

	c.Execute()
	if _, err := c.Result(time.Second); !errors.Is(err, ErrNoResult) {
		t.Errorf("expected ErrNoResult, got %v", err)
	}
}

func TestCall_ResultBlocksUntilExecuted(t *testing.T) {
	c := NewCall(func() (any, error) { return "done", nil }, WithSyncResult())

	go func() {
		time.Sleep(10 * time.Millisecond)
		c.Execute()
	}()

	v, err := c.Result(time.Second)
	if err != nil {
		t.Fatalf("unexpected result error: %v", err)
	}
	if v != "done" {
		t.Errorf("expected %q, got %v", "done", v)
	}
}

func TestCall_ResultTimeout(t *testing.T) {
	c := NewCall(func() (any, error) { return nil, nil }, WithSyncResult())

	if _, err := c.Result(20 * time.Millisecond); !errors.Is(err, notify.ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
}

func TestCall_Finalizer(t *testing.T) {
	finalized := 0
	c := NewCall(func() (any, error) { return nil, nil },
		WithFinalizer(func() { finalized++ }))

	c.Execute()
	c.Execute()
	if finalized != 1 {
		t.Errorf("expected finalizer to run once on execute, got %d", finalized)
	}

	finalized = 0
	c = NewCall(func() (any, error) { return nil, nil },
		WithFinalizer(func() { finalized++ }))
	c.Cancel()
	c.Cancel()
	if finalized != 1 {
		t.Errorf("expected finalizer to run once on cancel, got %d", finalized)
	}
}

func TestCallState_String(t *testing.T) {
	tests := []struct {
		state CallState
		want  string
	}{
		{CallPending, "pending"},
		{CallRunning, "running"},
		{CallDone, "done"},
		{CallCancelled, "cancelled"},
		{CallState(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("CallState(%d).String(): expected %q, got %q", tt.state, tt.want, got)
		}
	}
}
