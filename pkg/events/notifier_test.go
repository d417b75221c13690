package events

import (
	"reflect"
	"sync"
	"testing"
)

func TestRaiseEventOrderAndArgs(t *testing.T) {
	n := New()
	var got []string

	n.On("rangeSelected", func(args ...any) {
		got = append(got, "first:"+args[0].(string))
	})
	n.On("rangeSelected", func(args ...any) {
		got = append(got, "second:"+args[1].(string))
	})
	n.On("other", func(args ...any) {
		got = append(got, "other")
	})

	n.RaiseEvent("rangeSelected", "a", "b")

	want := []string{"first:a", "second:b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
}

func TestRaiseEventWithoutListeners(t *testing.T) {
	var n Notifier
	// Must not panic on a zero-value notifier or an unknown event.
	n.RaiseEvent("nothing", 1, 2, 3)
	New().RaiseEvent("nothing")
}

func TestSubscriptionDestroyRemovesOnlyThatHandler(t *testing.T) {
	n := New()
	calls := 0
	h := func(args ...any) { calls++ }

	a := n.On("e", h)
	n.On("e", h)

	a.Destroy()
	n.RaiseEvent("e")
	if calls != 1 {
		t.Errorf("calls = %d, want 1 after destroying one of two registrations", calls)
	}

	// Destroying twice is harmless.
	a.Destroy()
	if n.Count("e") != 1 {
		t.Errorf("Count = %d, want 1", n.Count("e"))
	}
}

func TestOffAbsentIsNoOp(t *testing.T) {
	n := New()
	other := New().On("e", func(args ...any) {})

	n.Off("e", other)
	n.Off("missing", nil)

	sub := n.On("e", func(args ...any) {})
	n.Off("wrong-name", sub)
	if n.Count("e") != 1 {
		t.Errorf("Count = %d, want 1 (Off with wrong name must not remove)", n.Count("e"))
	}
	n.Off("e", sub)
	if n.Count("e") != 0 {
		t.Errorf("Count = %d, want 0", n.Count("e"))
	}
}

func TestHandlerRemovingItselfDuringRaise(t *testing.T) {
	n := New()
	var order []int
	var self *Subscription

	self = n.On("e", func(args ...any) {
		order = append(order, 1)
		self.Destroy()
	})
	n.On("e", func(args ...any) {
		order = append(order, 2)
	})

	n.RaiseEvent("e")
	n.RaiseEvent("e")

	want := []int{1, 2, 2}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestNilHandlerIgnored(t *testing.T) {
	n := New()
	sub := n.On("e", nil)
	if n.Count("e") != 0 {
		t.Errorf("Count = %d, want 0 for nil handler", n.Count("e"))
	}
	sub.Destroy()
	n.RaiseEvent("e")
}

func TestSubscriptionIDsUnique(t *testing.T) {
	n := New()
	a := n.On("e", func(args ...any) {})
	b := n.On("e", func(args ...any) {})
	if a.ID() == b.ID() {
		t.Error("expected distinct subscription IDs")
	}
}

func TestConcurrentRaiseAndSubscribe(t *testing.T) {
	n := New()
	var mu sync.Mutex
	total := 0

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			sub := n.On("e", func(args ...any) {
				mu.Lock()
				total++
				mu.Unlock()
			})
			sub.Destroy()
		}()
		go func() {
			defer wg.Done()
			n.RaiseEvent("e")
		}()
	}
	wg.Wait()

	if n.Count("e") != 0 {
		t.Errorf("Count = %d, want 0 after all subscriptions destroyed", n.Count("e"))
	}
}
