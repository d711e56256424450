package pkguid

import (
	"crypto/rand"
	"encoding/binary"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// epochMillis is Wed Jan 01 2025 00:00:00.000 UTC.
const epochMillis = 1735689600000

//nolint:gochecknoglobals // snowflake.Epoch is package state in the library
var setEpoch sync.Once

// Snowflake generates numeric IDs using the Snowflake algorithm.
type Snowflake struct {
	node *snowflake.Node
}

func generateRandomNodeID() (int64, error) {
	var nodeID int64
	err := binary.Read(rand.Reader, binary.BigEndian, &nodeID)
	if err != nil {
		return 0, err
	}

	return nodeID & (1<<10 - 1), nil // Limiting to 10 bits for node ID
}

// NewSnowflake constructs a Snowflake generator with a random node ID.
func NewSnowflake() (*Snowflake, error) {
	nodeID, err := generateRandomNodeID()
	if err != nil {
		return nil, err
	}

	return NewSnowflakeNode(nodeID)
}

// NewSnowflakeNode constructs a Snowflake generator for a fixed node ID (0..1023).
func NewSnowflakeNode(nodeID int64) (*Snowflake, error) {
	setEpoch.Do(func() {
		snowflake.Epoch = epochMillis
	})

	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: node}, nil
}

// Generate returns a new unique numeric ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
