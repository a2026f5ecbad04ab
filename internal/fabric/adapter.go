package fabric

import (
	"context"
	"io"
)

// Subscriber drains decoded records from an external source into a store,
// calling OnMessage once per record. Data flows inbound only. A subscriber
// that hits an undecodable record drops it and keeps reading; it never
// aborts the remaining stream.
type Subscriber interface {
	Subscribe(ctx context.Context, r io.Reader) error
}

// Publisher pushes a value to an external sink. Publication is always an
// explicit call by a service, never something a store does on its own.
// The core does not care whether the sink is a file, a log, or an
// in-memory buffer.
type Publisher[V any] interface {
	Publish(v V) error
}
