package codec

import (
	"runtime"

	"github.com/lessw2020/cuda-float-compress/errs"
	"github.com/lessw2020/cuda-float-compress/internal/options"
)

const (
	// DefaultBlockSize is the default number of elements per block.
	DefaultBlockSize = 256

	// DefaultCodeBits is the default signed quantization code width. One
	// byte fits the vast majority of residuals for normalized parameter
	// data; wider codes trade stream size for fewer outliers.
	DefaultCodeBits = 8

	// DefaultVerbatimThreshold is the outlier density above which a block
	// degrades to verbatim storage, avoiding bitmap overhead.
	DefaultVerbatimThreshold = 0.5

	// MaxBlockSize bounds the configurable block size. Larger blocks win
	// nothing: block records carry a single byte of overhead each.
	MaxBlockSize = 1 << 20
)

// Config holds the tunable parameters of a compress or decompress call.
// The zero value is not usable; newConfig applies the defaults.
type Config struct {
	blockSize         int
	codeBits          int
	verbatimThreshold float64
	workers           int
}

// Option represents a functional option for configuring a compress or
// decompress call.
type Option = options.Option[*Config]

func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		blockSize:         DefaultBlockSize,
		codeBits:          DefaultCodeBits,
		verbatimThreshold: DefaultVerbatimThreshold,
		workers:           runtime.GOMAXPROCS(0),
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithBlockSize sets the number of elements per block. The final block of a
// stream may be shorter. Must be in [1, MaxBlockSize].
func WithBlockSize(size int) Option {
	return options.New(func(c *Config) error {
		if size <= 0 || size > MaxBlockSize {
			return errs.ErrInvalidBlockSizeConfig
		}
		c.blockSize = size

		return nil
	})
}

// WithCodeBits sets the signed quantization code width in bits.
// Supported widths are 4, 8, 12 and 16; the width used is recorded in each
// block's mode byte, so decoding needs no matching option.
func WithCodeBits(bits int) Option {
	return options.New(func(c *Config) error {
		if _, ok := widthCodeOf(bits); !ok {
			return errs.ErrInvalidCodeBits
		}
		c.codeBits = bits

		return nil
	})
}

// WithVerbatimThreshold sets the outlier density in (0, 1] above which a
// block is stored verbatim instead of mixed.
func WithVerbatimThreshold(threshold float64) Option {
	return options.New(func(c *Config) error {
		if !(threshold > 0 && threshold <= 1) {
			return errs.ErrInvalidThreshold
		}
		c.verbatimThreshold = threshold

		return nil
	})
}

// WithWorkers sets the number of goroutines used for block-parallel encoding
// and decoding. Defaults to runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return options.New(func(c *Config) error {
		if n <= 0 {
			return errs.ErrInvalidWorkers
		}
		c.workers = n

		return nil
	})
}

// Code width selectors stored in bits 2-3 of the block mode byte.
var widthBits = [4]int{4, 8, 12, 16}

// widthCodeOf maps a code width in bits to its mode byte selector.
func widthCodeOf(bits int) (uint8, bool) {
	for code, w := range widthBits {
		if w == bits {
			return uint8(code), true //nolint:gosec
		}
	}

	return 0, false
}
