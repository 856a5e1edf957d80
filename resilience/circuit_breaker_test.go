package resilience

import (
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(cfg CircuitBreakerConfig) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	cb := NewCircuitBreaker(cfg)
	cb.now = clock.now
	return cb, clock
}

var errTest = errors.New("test error")

func fail() error    { return errTest }
func succeed() error { return nil }

func TestCircuitBreaker_StartsClosed(t *testing.T) {
	cb := NewCircuitBreaker(DefaultCircuitBreakerConfig("test"))
	if cb.State() != StateClosed {
		t.Errorf("expected StateClosed, got %s", cb.State())
	}
}

func TestCircuitBreaker_OpensAfterMaxFailures(t *testing.T) {
	cb, _ := newTestBreaker(CircuitBreakerConfig{Name: "test", MaxFailures: 3, Timeout: time.Second})

	for i := 0; i < 3; i++ {
		_ = cb.Execute(fail)
	}
	if cb.State() != StateOpen {
		t.Fatalf("expected StateOpen, got %s", cb.State())
	}

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("expected ErrCircuitOpen, got %v", err)
	}
	if called {
		t.Error("function should not run while open")
	}
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	cb, _ := newTestBreaker(CircuitBreakerConfig{MaxFailures: 3})

	_ = cb.Execute(fail)
	_ = cb.Execute(fail)
	_ = cb.Execute(succeed)
	if cb.Failures() != 0 {
		t.Errorf("expected failures reset, got %d", cb.Failures())
	}
	_ = cb.Execute(fail)
	if cb.State() != StateClosed {
		t.Errorf("expected StateClosed, got %s", cb.State())
	}
}

func TestCircuitBreaker_HalfOpenThenClose(t *testing.T) {
	cb, clock := newTestBreaker(CircuitBreakerConfig{MaxFailures: 1, Timeout: time.Second})

	_ = cb.Execute(fail)
	clock.advance(time.Second)
	if cb.State() != StateHalfOpen {
		t.Fatalf("expected StateHalfOpen, got %s", cb.State())
	}

	if err := cb.Execute(succeed); err != nil {
		t.Fatalf("probe should pass, got %v", err)
	}
	if cb.State() != StateClosed {
		t.Errorf("expected StateClosed, got %s", cb.State())
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb, clock := newTestBreaker(CircuitBreakerConfig{MaxFailures: 1, Timeout: time.Second})

	_ = cb.Execute(fail)
	clock.advance(time.Second)
	_ = cb.Execute(fail)

	if cb.State() != StateOpen {
		t.Errorf("expected StateOpen, got %s", cb.State())
	}
}

func TestCircuitBreaker_HalfOpenLimitsProbes(t *testing.T) {
	cb, clock := newTestBreaker(CircuitBreakerConfig{MaxFailures: 1, Timeout: time.Second, HalfOpenMaxCalls: 1})

	_ = cb.Execute(fail)
	clock.advance(time.Second)

	if !cb.allow() {
		t.Fatal("first probe should be allowed")
	}
	if cb.allow() {
		t.Error("second probe should be rejected")
	}
}

func TestCircuitBreaker_IsFailureFilter(t *testing.T) {
	ignored := errors.New("client error")
	cb, _ := newTestBreaker(CircuitBreakerConfig{
		MaxFailures: 1,
		IsFailure:   func(err error) bool { return err != nil && !errors.Is(err, ignored) },
	})

	if err := cb.Execute(func() error { return ignored }); !errors.Is(err, ignored) {
		t.Fatalf("expected error passthrough, got %v", err)
	}
	if cb.State() != StateClosed {
		t.Errorf("ignored errors should not open the circuit, got %s", cb.State())
	}
}

func TestCircuitBreaker_StateChangeCallback(t *testing.T) {
	var transitions []string
	cb, clock := newTestBreaker(CircuitBreakerConfig{
		Name:        "booking",
		MaxFailures: 1,
		Timeout:     time.Second,
		OnStateChange: func(name string, from, to State) {
			if name != "booking" {
				t.Errorf("unexpected name %q", name)
			}
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	_ = cb.Execute(fail)
	clock.advance(time.Second)
	_ = cb.Execute(succeed)

	want := []string{"closed->open", "open->half-open", "half-open->closed"}
	if len(transitions) != len(want) {
		t.Fatalf("transitions = %v, want %v", transitions, want)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Errorf("transition %d = %s, want %s", i, transitions[i], want[i])
		}
	}
}

func TestCircuitBreaker_Reset(t *testing.T) {
	cb, _ := newTestBreaker(CircuitBreakerConfig{MaxFailures: 1})
	_ = cb.Execute(fail)
	cb.Reset()
	if cb.State() != StateClosed || cb.Failures() != 0 {
		t.Errorf("expected closed with no failures, got %s/%d", cb.State(), cb.Failures())
	}
}

func TestCircuitBreaker_ConcurrentAccess(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{MaxFailures: 1000})
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_ = cb.Execute(fail)
			} else {
				_ = cb.Execute(succeed)
			}
			_ = cb.State()
		}(i)
	}
	wg.Wait()
}

func TestState_String(t *testing.T) {
	tests := map[State]string{
		StateClosed:   "closed",
		StateOpen:     "open",
		StateHalfOpen: "half-open",
		State(42):     "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", s, got, want)
		}
	}
}
