// Package ledger implements an append-only, hash-chained log of the actions
// accepted by the game engine together with the events they produced.
//
// # Core Components
//
// Blockchain: the ordered log. Each block carries the SHA-256 hash of its
// predecessor so any later modification is detected by Verify.
//
// Block: one accepted action, its events and the game phase it left behind.
//
// # Usage
//
// Create a blockchain, append a block for every accepted action and call
// Verify to check the integrity of the whole chain. The log lives in memory
// only.
package ledger
