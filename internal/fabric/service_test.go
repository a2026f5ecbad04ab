package fabric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Key string
	Val int
}

type recordingListener struct {
	NopListener[entry]
	name string
	log  *[]string
}

func (l *recordingListener) OnAdd(e entry) {
	*l.log = append(*l.log, l.name+":"+e.Key)
}

func TestStoreGetMiss(t *testing.T) {
	s := NewStore(func(e entry) string { return e.Key })

	_, err := s.Get("absent")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStoreUpsertLastWriteWins(t *testing.T) {
	s := NewStore(func(e entry) string { return e.Key })

	s.OnMessage(entry{Key: "a", Val: 1})
	s.OnMessage(entry{Key: "a", Val: 2})

	got, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Val)
	assert.Equal(t, 1, s.Len())
}

func TestStoreNotifiesInRegistrationOrder(t *testing.T) {
	s := NewStore(func(e entry) string { return e.Key })

	var log []string
	s.AddListener(&recordingListener{name: "first", log: &log})
	s.AddListener(&recordingListener{name: "second", log: &log})

	s.OnMessage(entry{Key: "x", Val: 7})

	require.Equal(t, []string{"first:x", "second:x"}, log)
}

func TestStoreIgnoresNilListener(t *testing.T) {
	s := NewStore(func(e entry) string { return e.Key })
	s.AddListener(nil)
	assert.Empty(t, s.Listeners())
}

// chainListener forwards every entry it sees into a second store, the way
// one service feeds the next in a listener chain.
type chainListener struct {
	NopListener[entry]
	next *Store[string, entry]
}

func (l *chainListener) OnAdd(e entry) {
	l.next.OnMessage(entry{Key: e.Key, Val: e.Val * 10})
}

func TestListenerChainAcrossStores(t *testing.T) {
	upstream := NewStore(func(e entry) string { return e.Key })
	downstream := NewStore(func(e entry) string { return e.Key })
	upstream.AddListener(&chainListener{next: downstream})

	upstream.OnMessage(entry{Key: "p", Val: 3})

	got, err := downstream.Get("p")
	require.NoError(t, err)
	assert.Equal(t, 30, got.Val)
}

// reenterListener writes a follow-up value into its own store, mirroring
// the inquiry quote/complete round trip.
type reenterListener struct {
	NopListener[entry]
	store *Store[string, entry]
}

func (l *reenterListener) OnAdd(e entry) {
	if e.Val < 3 {
		l.store.OnMessage(entry{Key: e.Key, Val: e.Val + 1})
	}
}

func TestListenerMayReenterOwnStore(t *testing.T) {
	s := NewStore(func(e entry) string { return e.Key })
	s.AddListener(&reenterListener{store: s})

	s.OnMessage(entry{Key: "q", Val: 1})

	got, err := s.Get("q")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Val)
}

func TestStoreNotifiesWithStoredValue(t *testing.T) {
	s := NewStore(func(e entry) string { return e.Key })

	var seen []entry
	s.AddListener(&captureListener{out: &seen})

	s.OnMessage(entry{Key: "k", Val: 42})
	require.Len(t, seen, 1)

	stored, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, stored, seen[0])
}

type captureListener struct {
	NopListener[entry]
	out *[]entry
}

func (l *captureListener) OnAdd(e entry) { *l.out = append(*l.out, e) }
