// Package genesis maintains access to the genesis file.
package genesis

import (
	"encoding/json"
	"os"
	"time"
)

// Genesis represents the genesis file. The difficulty here is only the
// initial value for the chain; it can be changed at runtime and affects
// future mining only.
type Genesis struct {
	Date         time.Time `json:"date"`
	ChainName    string    `json:"chain_name"`    // A human readable name for this running instance.
	Difficulty   uint      `json:"difficulty"`    // Number of leading hex 0's needed to solve the work problem.
	MiningReward uint64    `json:"mining_reward"` // Reward for mining a block, credited into the next pool.
}

// =============================================================================

// Load opens and consumes the genesis file.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}
