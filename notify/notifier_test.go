package notify

import (
	"errors"
	"testing"
	"time"
)

func TestNotifier_WaitThenNotify(t *testing.T) {
	n := NewNotifier(true)

	go func() {
		time.Sleep(10 * time.Millisecond)
		if err := n.Notify("payload"); err != nil {
			t.Errorf("unexpected notify error: %v", err)
		}
	}()

	ok, err := n.Wait(time.Second)
	if err != nil {
		t.Fatalf("unexpected wait error: %v", err)
	}
	if !ok {
		t.Fatal("expected wait to succeed, got timeout")
	}
	if got := n.Value(); got != "payload" {
		t.Errorf("expected value %q, got %v", "payload", got)
	}
}

func TestNotifier_SkipPath(t *testing.T) {
	n := NewNotifier(true)

	if err := n.Notify(42); err != nil {
		t.Fatalf("unexpected notify error: %v", err)
	}

	// The notification is pending, so the wait must not block.
	start := time.Now()
	ok, err := n.Wait(time.Second)
	if err != nil {
		t.Fatalf("unexpected wait error: %v", err)
	}
	if !ok {
		t.Fatal("expected immediate success on skip path")
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("expected immediate return, waited %v", elapsed)
	}
	if got := n.Value(); got != 42 {
		t.Errorf("expected value 42, got %v", got)
	}
}

func TestNotifier_Timeout(t *testing.T) {
	n := NewNotifier(true)

	ok, err := n.Wait(20 * time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected wait error: %v", err)
	}
	if ok {
		t.Fatal("expected timeout, got success")
	}
}

func TestNotifier_DoubleWait(t *testing.T) {
	n := NewNotifier(true)

	if err := n.Notify(nil); err != nil {
		t.Fatalf("unexpected notify error: %v", err)
	}
	if _, err := n.Wait(time.Second); err != nil {
		t.Fatalf("unexpected wait error: %v", err)
	}

	if _, err := n.Wait(time.Second); !errors.Is(err, ErrAlreadyCalled) {
		t.Errorf("expected ErrAlreadyCalled, got %v", err)
	}
}

func TestNotifier_DoubleNotify(t *testing.T) {
	n := NewNotifier(false)

	if err := n.Notify(1); err != nil {
		t.Fatalf("unexpected notify error: %v", err)
	}
	if err := n.Notify(2); !errors.Is(err, ErrAlreadyCalled) {
		t.Errorf("expected ErrAlreadyCalled, got %v", err)
	}
	if got := n.Value(); got != 1 {
		t.Errorf("expected first value to stick, got %v", got)
	}
}

func TestNotifier_NotifyAfterTimeout(t *testing.T) {
	n := NewNotifier(true)

	if ok, _ := n.Wait(10 * time.Millisecond); ok {
		t.Fatal("expected timeout")
	}

	// A late notify still succeeds and the value remains retrievable.
	if err := n.Notify("late"); err != nil {
		t.Fatalf("unexpected notify error: %v", err)
	}
	if got := n.Value(); got != "late" {
		t.Errorf("expected value %q, got %v", "late", got)
	}
}

func TestNotifier_ValueSync(t *testing.T) {
	n := NewNotifier(true)

	go func() {
		time.Sleep(10 * time.Millisecond)
		_ = n.Notify("result")
	}()

	v, err := n.ValueSync(time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "result" {
		t.Errorf("expected %q, got %v", "result", v)
	}

	// A second ValueSync after completion returns the same value.
	v, err = n.ValueSync(time.Second)
	if err != nil {
		t.Fatalf("unexpected error on repeat: %v", err)
	}
	if v != "result" {
		t.Errorf("expected %q on repeat, got %v", "result", v)
	}
}

func TestNotifier_DoneAccessors(t *testing.T) {
	n := NewNotifier(true)

	if n.DoneWait() {
		t.Error("expected DoneWait false before wait")
	}
	if n.DoneNotify() {
		t.Error("expected DoneNotify false before notify")
	}

	_ = n.Notify(nil)
	if !n.DoneNotify() {
		t.Error("expected DoneNotify true after notify")
	}

	_, _ = n.Wait(time.Second)
	if !n.DoneWait() {
		t.Error("expected DoneWait true after wait")
	}
}
