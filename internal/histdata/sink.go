// Package histdata archives what the desk computes: positions, risk,
// executions, streamed quotes and completed inquiries, one record per
// update, to a file tree or a Postgres table.
package histdata

import (
	"time"

	"gorm.io/gorm"

	"main/pkg/conn"
)

// Kind labels the archive stream a record belongs to.
type Kind string

const (
	KindPosition  Kind = "positions"
	KindRisk      Kind = "risk"
	KindExecution Kind = "executions"
	KindStreaming Kind = "streaming"
	KindInquiry   Kind = "all_inquiries"
)

// Record is one archived row. Key is the domain key of the archived value
// and Payload its flat rendering.
type Record struct {
	ID        uint      `gorm:"primaryKey"`
	Kind      Kind      `gorm:"index;size:32"`
	Key       string    `gorm:"index;size:64"`
	Payload   string    `gorm:"size:512"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Sink persists archive records.
type Sink interface {
	Persist(rec Record) error
}

// PGSink archives records to a Postgres table through the shared
// connection client.
type PGSink struct {
	client *conn.Client
}

// NewPGSink connects and migrates the archive table.
func NewPGSink(opt conn.Option) (*PGSink, error) {
	client, err := conn.New(opt)
	if err != nil {
		return nil, err
	}
	if err := client.DB().AutoMigrate(&Record{}); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &PGSink{client: client}, nil
}

func (s *PGSink) Persist(rec Record) error {
	return s.client.DB().Create(&rec).Error
}

// Close releases the connection pool.
func (s *PGSink) Close() error {
	return s.client.Close()
}

// DB exposes the underlying handle for ad-hoc queries.
func (s *PGSink) DB() *gorm.DB {
	return s.client.DB()
}
