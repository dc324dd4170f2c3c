package core

import "github.com/dkeye/chathub/internal/domain"

// PublishResult reports delivery stats/backpressure of one fan-out.
type PublishResult struct {
	SendTo  int
	Dropped []domain.ConnID
}
