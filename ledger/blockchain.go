package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/luca-patrignani/mental-rpsls/domain/rpsls"
)

type Blockchain struct {
	mu     sync.RWMutex
	blocks []Block
	now    func() time.Time
}

// NewBlockchain creates a new blockchain with an initialized genesis block.
// The genesis block has index 0, previous hash "0" and no action.
func NewBlockchain() *Blockchain {
	bc := &Blockchain{
		blocks: make([]Block, 0),
		now:    time.Now,
	}

	genesis := Block{
		Index:     0,
		Timestamp: bc.now().Unix(),
		PrevHash:  "0",
		Action:    rpsls.Action{Type: "genesis"},
		Events:    []rpsls.Event{},
		Metadata:  Metadata{Phase: rpsls.Idle},
	}
	genesis.Hash = calculateHash(genesis)
	bc.blocks = append(bc.blocks, genesis)

	return bc
}

// Append adds a block for an accepted action and returns it. The block gets a
// fresh action identifier, is linked to the latest block and validated before
// being stored.
func (bc *Blockchain) Append(action rpsls.Action, events []rpsls.Event, meta Metadata) (Block, error) {
	bc.mu.Lock()
	defer bc.mu.Unlock()

	latest := bc.blocks[len(bc.blocks)-1]

	newBlock := Block{
		Index:     latest.Index + 1,
		Timestamp: bc.now().Unix(),
		PrevHash:  latest.Hash,
		ActionID:  uuid.NewString(),
		Action:    action,
		Events:    events,
		Metadata:  meta,
	}
	newBlock.Hash = calculateHash(newBlock)

	if err := validateBlock(newBlock, latest); err != nil {
		return Block{}, fmt.Errorf("invalid block: %w", err)
	}

	bc.blocks = append(bc.blocks, newBlock)
	return newBlock, nil
}

// GetLatest returns the most recently added block.
func (bc *Blockchain) GetLatest() Block {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return bc.blocks[len(bc.blocks)-1]
}

// GetByIndex retrieves a block by its index in the chain. Returns an error if the index
// is out of range.
func (bc *Blockchain) GetByIndex(index int) (Block, error) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	if index < 0 || index >= len(bc.blocks) {
		return Block{}, fmt.Errorf("index %d out of range", index)
	}
	return bc.blocks[index], nil
}

// Len returns the number of blocks, genesis included.
func (bc *Blockchain) Len() int {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return len(bc.blocks)
}

// Since returns a copy of the blocks with index >= from.
func (bc *Blockchain) Since(from int) []Block {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	if from < 0 {
		from = 0
	}
	if from >= len(bc.blocks) {
		return nil
	}
	out := make([]Block, len(bc.blocks)-from)
	copy(out, bc.blocks[from:])
	return out
}

// Verify validates the integrity of the entire blockchain by checking the genesis block
// and verifying each subsequent block's hash, index continuity, and previous hash linkage.
func (bc *Blockchain) Verify() error {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	if len(bc.blocks) == 0 {
		return fmt.Errorf("empty blockchain")
	}
	if bc.blocks[0].PrevHash != "0" || bc.blocks[0].Hash != calculateHash(bc.blocks[0]) {
		return fmt.Errorf("invalid genesis block")
	}

	for i := 1; i < len(bc.blocks); i++ {
		if err := validateBlock(bc.blocks[i], bc.blocks[i-1]); err != nil {
			return fmt.Errorf("block %d invalid: %w", i, err)
		}
	}
	return nil
}

// validateBlock verifies that a block is valid relative to the previous block. It checks
// index continuity, previous hash linkage and current hash validity.
func validateBlock(current, previous Block) error {
	if current.Index != previous.Index+1 {
		return fmt.Errorf("invalid index: expected %d, got %d", previous.Index+1, current.Index)
	}
	if current.PrevHash != previous.Hash {
		return fmt.Errorf("invalid prev hash: expected %s, got %s", previous.Hash, current.PrevHash)
	}
	if expected := calculateHash(current); current.Hash != expected {
		return fmt.Errorf("invalid hash: expected %s, got %s", expected, current.Hash)
	}
	return nil
}

// calculateHash computes the SHA256 hash of a block from every field but the
// hash itself. Action, events and metadata are JSON marshaled before hashing.
func calculateHash(block Block) string {
	actionBytes, _ := json.Marshal(block.Action)
	eventsBytes, _ := json.Marshal(block.Events)
	metaBytes, _ := json.Marshal(block.Metadata)

	data := fmt.Sprintf("%d%d%s%s%s%s%s",
		block.Index,
		block.Timestamp,
		block.PrevHash,
		block.ActionID,
		string(actionBytes),
		string(eventsBytes),
		string(metaBytes),
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
