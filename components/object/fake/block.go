// Package fake implements a static block that stays where it was put.
package fake

import (
	"context"
	"sync"

	"github.com/trifinger/sim/spatialmath"
)

// Block is an object whose state only changes through SetState.
type Block struct {
	CloseCount int

	mu   sync.Mutex
	pose spatialmath.Pose
}

// NewBlock returns a block at the given pose. The orientation is normalized.
func NewBlock(pose spatialmath.Pose) *Block {
	pose.Orientation = spatialmath.Normalize(pose.Orientation)
	return &Block{pose: pose}
}

// State returns the current pose.
func (b *Block) State(ctx context.Context) (spatialmath.Pose, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pose, nil
}

// SetState moves the block.
func (b *Block) SetState(pose spatialmath.Pose) {
	b.mu.Lock()
	defer b.mu.Unlock()
	pose.Orientation = spatialmath.Normalize(pose.Orientation)
	b.pose = pose
}

// Close counts the calls made to it.
func (b *Block) Close(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.CloseCount++
	return nil
}
