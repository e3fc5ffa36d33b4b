package application

import (
	"testing"
	"time"
)

func TestRefresherCycle(t *testing.T) {
	r := NewRefresher(20 * time.Millisecond)

	if r.State() != RefreshIdle {
		t.Fatalf("initial state = %v, want idle", r.State())
	}

	r.Begin()
	if r.State() != Refreshing {
		t.Fatalf("state = %v, want refreshing", r.State())
	}

	r.Complete()
	if r.State() != RefreshCompleted {
		t.Fatalf("state = %v, want completed", r.State())
	}

	deadline := time.After(time.Second)
	for r.State() != RefreshIdle {
		select {
		case <-deadline:
			t.Fatal("completed state never timed back to idle")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestRefresherFailSkipsCompleted(t *testing.T) {
	r := NewRefresher(20 * time.Millisecond)
	r.Begin()
	r.Fail()

	if r.State() != RefreshIdle {
		t.Errorf("state = %v, want idle", r.State())
	}
}

func TestBeginCancelsPendingTimer(t *testing.T) {
	r := NewRefresher(20 * time.Millisecond)
	r.Begin()
	r.Complete()
	r.Begin() // new cycle while the completion timer is pending

	time.Sleep(50 * time.Millisecond)
	if r.State() != Refreshing {
		t.Errorf("state = %v, the stale timer must not fire into the new cycle", r.State())
	}
}

func TestStopCancelsTimer(t *testing.T) {
	r := NewRefresher(20 * time.Millisecond)
	var fired []RefreshState
	done := make(chan struct{}, 8)
	r.SetNotify(func(s RefreshState) {
		fired = append(fired, s)
		done <- struct{}{}
	})

	r.Begin()
	<-done
	r.Complete()
	<-done
	r.Stop()

	time.Sleep(50 * time.Millisecond)
	select {
	case <-done:
		t.Error("timer callback fired after Stop")
	default:
	}
	if len(fired) != 2 || fired[0] != Refreshing || fired[1] != RefreshCompleted {
		t.Errorf("transitions = %v", fired)
	}
}

func TestRefreshStateString(t *testing.T) {
	tests := []struct {
		state RefreshState
		want  string
	}{
		{RefreshIdle, "idle"},
		{Refreshing, "refreshing"},
		{RefreshCompleted, "completed"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", tt.state, got, tt.want)
		}
	}
}
