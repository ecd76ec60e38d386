package broker

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

type vehicle struct {
	Speed float64
	Gear  int
}

func TestFirstSubscriberNotReplayed(t *testing.T) {
	b := New[vehicle]()
	calls := 0
	b.Subscribe(func(vehicle) { calls++ })
	if calls != 0 {
		t.Errorf("first subscriber invoked %d times, want 0", calls)
	}
}

func TestLateSubscriberReplayedOnce(t *testing.T) {
	b := New[vehicle]()
	b.Subscribe(func(vehicle) {})
	b.Publish(vehicle{Speed: 120, Gear: 5})

	var got []vehicle
	b.Subscribe(func(v vehicle) { got = append(got, v) })
	if len(got) != 1 {
		t.Fatalf("late subscriber invoked %d times, want 1", len(got))
	}
	if got[0].Speed != 120 || got[0].Gear != 5 {
		t.Errorf("replayed %+v, want {Speed:120 Gear:5}", got[0])
	}
}

func TestReplayBeforeAnyPublishDeliversZeroValue(t *testing.T) {
	b := New[vehicle]()
	b.Subscribe(func(vehicle) {})
	var got *vehicle
	b.Subscribe(func(v vehicle) { got = &v })
	if got == nil {
		t.Fatal("second subscriber was not replayed")
	}
	if *got != (vehicle{}) {
		t.Errorf("replayed %+v, want zero value", *got)
	}
}

func TestReplayAfterAllUnsubscribed(t *testing.T) {
	b := New[vehicle]()
	id := b.Subscribe(func(vehicle) {})
	b.Publish(vehicle{Speed: 10})
	b.Unsubscribe(id)

	calls := 0
	b.Subscribe(func(vehicle) { calls++ })
	if calls != 0 {
		t.Errorf("subscriber into empty broker invoked %d times, want 0", calls)
	}
}

func TestEndToEndReplayScenario(t *testing.T) {
	b := New[vehicle]()
	b.Publish(vehicle{Speed: 94})

	first := 0
	b.Subscribe(func(vehicle) { first++ })
	if first != 0 {
		t.Errorf("cb invoked %d times, want 0", first)
	}
	if got := b.Latest().Speed; got != 94 {
		t.Errorf("Latest().Speed = %v, want 94", got)
	}

	var second []vehicle
	b.Subscribe(func(v vehicle) { second = append(second, v) })
	if len(second) != 1 || second[0].Speed != 94 {
		t.Errorf("cb2 received %+v, want one {Speed:94}", second)
	}
	if first != 0 {
		t.Errorf("cb invoked %d times after cb2 subscribed, want 0", first)
	}
}

func TestPublishFanOutInOrder(t *testing.T) {
	b := New[int]()
	var order []int
	for i := 0; i < 4; i++ {
		b.Subscribe(func(v int) { order = append(order, i*100+v) })
	}
	order = nil // drop replays
	b.Publish(7)

	want := []int{7, 107, 207, 307}
	if len(order) != len(want) {
		t.Fatalf("callbacks = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("callbacks[%d] = %d, want %d", i, order[i], want[i])
		}
	}
	if b.Latest() != 7 {
		t.Errorf("Latest() = %d, want 7", b.Latest())
	}
}

func TestUnsubscribe(t *testing.T) {
	b := New[int]()
	calls := 0
	id := b.Subscribe(func(int) { calls++ })
	b.Unsubscribe(id)
	b.Publish(1)
	if calls != 0 {
		t.Errorf("unsubscribed callback invoked %d times", calls)
	}
	if n := b.SubscriberCount(); n != 0 {
		t.Errorf("SubscriberCount() = %d, want 0", n)
	}

	// Unknown and repeated ids are no-ops.
	b.Unsubscribe(id)
	b.Unsubscribe(9999)
}

func TestSubscriptionIDsMonotonic(t *testing.T) {
	b := New[int]()
	a := b.Subscribe(func(int) {})
	b.Unsubscribe(a)
	c := b.Subscribe(func(int) {})
	d := b.Subscribe(func(int) {})
	if !(a < c && c < d) {
		t.Errorf("ids = %d, %d, %d, want strictly increasing", a, c, d)
	}
}

func TestLatestZeroBeforePublish(t *testing.T) {
	var b Broker[vehicle]
	if got := b.Latest(); got != (vehicle{}) {
		t.Errorf("Latest() = %+v, want zero value", got)
	}
}

func TestUnsubscribeFromCallback(t *testing.T) {
	b := New[int]()
	var id SubscriptionID
	calls := 0
	id = b.Subscribe(func(int) {
		calls++
		b.Unsubscribe(id)
	})
	b.Publish(1)
	b.Publish(2)
	if calls != 1 {
		t.Errorf("self-unsubscribing callback invoked %d times, want 1", calls)
	}
}

func TestPublishFanOutProperty(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("every subscriber sees each publish exactly once", prop.ForAll(
		func(n int, v int) bool {
			b := New[int]()
			counts := make([]int, n)
			for i := 0; i < n; i++ {
				b.Subscribe(func(got int) {
					if got == v {
						counts[i]++
					}
				})
			}
			for i := range counts {
				counts[i] = 0
			}
			b.Publish(v)
			for _, c := range counts {
				if c != 1 {
					return false
				}
			}
			return b.Latest() == v
		},
		gen.IntRange(1, 32),
		gen.IntRange(1, 1<<20),
	))

	properties.TestingRun(t)
}
