package enclavechat

import "github.com/enclavechat/e2ee-go/internal/crypto"

// Argon2Params holds the Argon2id cost parameters used to wrap a private
// key. They travel with the stored material so unlock reproduces the exact
// derivation. Tampering with stored parameters can only change derivation
// cost, not forge a valid key; the AEAD tag still gates success.
type Argon2Params struct {
	// TimeCost is the number of passes over memory.
	TimeCost uint32 `json:"time_cost"`
	// MemoryCostKB is the memory usage in KiB.
	MemoryCostKB uint32 `json:"memory_cost_kb"`
	// Parallelism is the number of lanes.
	Parallelism uint8 `json:"parallelism"`
}

func (p Argon2Params) internal() crypto.Argon2Params {
	return crypto.Argon2Params{
		TimeCost:     p.TimeCost,
		MemoryCostKB: p.MemoryCostKB,
		Parallelism:  p.Parallelism,
	}
}

func (p Argon2Params) isZero() bool {
	return p.TimeCost == 0 && p.MemoryCostKB == 0 && p.Parallelism == 0
}

// defaultArgon2Params mirrors the web client's wrap parameters.
func defaultArgon2Params() Argon2Params {
	return Argon2Params{
		TimeCost:     crypto.DefaultArgon2Params.TimeCost,
		MemoryCostKB: crypto.DefaultArgon2Params.MemoryCostKB,
		Parallelism:  crypto.DefaultArgon2Params.Parallelism,
	}
}

// keyConfig holds configuration for key wrapping.
type keyConfig struct {
	params Argon2Params
}

// Option configures key wrapping.
type Option func(*keyConfig)

// WithArgon2Params overrides the Argon2id cost parameters used for the
// passcode and recovery wraps.
func WithArgon2Params(p Argon2Params) Option {
	return func(c *keyConfig) {
		c.params = p
	}
}

func applyOptions(opts []Option) *keyConfig {
	cfg := &keyConfig{params: defaultArgon2Params()}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
