package services

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"sync"

	"stakemax/domain/interfaces"
)

// fairSource is a provably-fair RandSource. Each draw is derived from
// HMAC-SHA256(serverSeed, "clientSeed:nonce") with a monotonically increasing
// nonce. The server seed is disclosed only as its SHA-256 commitment until
// rotation, so players can verify after the fact that draws were not chosen
// against them.
type fairSource struct {
	mu         sync.Mutex
	serverSeed string
	clientSeed string
	nonce      int
}

// NewFairSource creates a provably-fair random source from explicit seeds
func NewFairSource(serverSeed, clientSeed string) interfaces.RandSource {
	return &fairSource{serverSeed: serverSeed, clientSeed: clientSeed}
}

// GenerateServerSeed produces a new random server seed
func GenerateServerSeed() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate server seed: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// SeedCommitment returns the SHA-256 commitment for a server seed
func SeedCommitment(serverSeed string) string {
	sum := sha256.Sum256([]byte(serverSeed))
	return hex.EncodeToString(sum[:])
}

func (f *fairSource) Float64() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	h := hmac.New(sha256.New, []byte(f.serverSeed))
	h.Write([]byte(f.clientSeed + ":" + strconv.Itoa(f.nonce)))
	f.nonce++

	digest := hex.EncodeToString(h.Sum(nil))

	// First 52 bits of the digest map uniformly onto [0,1)
	num, _ := strconv.ParseUint(digest[:13], 16, 64)
	return float64(num) / float64(uint64(1)<<52)
}
