package histdata

import (
	"github.com/yanun0323/logs"

	"main/internal/fabric"
)

// Recorder archives every update a store publishes. keyOf and render turn
// the domain value into the archive row; one recorder per archived stream.
type Recorder[V any] struct {
	fabric.NopListener[V]
	sink   Sink
	kind   Kind
	keyOf  func(V) string
	render func(V) string
}

func NewRecorder[V any](sink Sink, kind Kind, keyOf func(V) string, render func(V) string) *Recorder[V] {
	return &Recorder[V]{sink: sink, kind: kind, keyOf: keyOf, render: render}
}

func (r *Recorder[V]) OnAdd(v V) {
	rec := Record{Kind: r.kind, Key: r.keyOf(v), Payload: r.render(v)}
	if err := r.sink.Persist(rec); err != nil {
		logs.Errorf("histdata: archive %s record %s: %v", r.kind, rec.Key, err)
	}
}
