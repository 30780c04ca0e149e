// Package parserpool provides a pool of gnparser instances for
// normalizing bird names. Birds follow the zoological code, so every
// parser of the pool is configured for it.
// This is a pure package - parsing is computation, not I/O.
package parserpool

import (
	"runtime"
	"strings"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
	"github.com/gnames/gnparser/ent/parsed"
)

// Pool provides gnparser instances that are safe to share between
// goroutines.
type Pool interface {
	// Parse parses a scientific name string. It takes a parser from the
	// pool, parses the name, and returns the parser to the pool.
	Parse(nameString string) parsed.Parsed

	// Canonical returns the simple canonical form of a name with two or
	// more words. Uninomials and names that cannot be parsed are returned
	// with normalized spaces.
	Canonical(nameString string) string

	// Close shuts down the parser pool and releases resources.
	// After calling Close, the pool should not be used.
	Close()
}

// PoolImpl implements the Pool interface using gnparser.NewPool.
type PoolImpl struct {
	ch       chan gnparser.GNparser
	poolSize int
}

// NewPool creates a new parser pool with the specified number of parsers.
// If jobsNum is 0, it defaults to runtime.NumCPU().
func NewPool(jobsNum int) Pool {
	poolSize := jobsNum
	if poolSize <= 0 {
		poolSize = runtime.NumCPU()
	}

	cfg := gnparser.NewConfig(gnparser.OptCode(nomcode.Zoological))
	return &PoolImpl{
		ch:       gnparser.NewPool(cfg, poolSize),
		poolSize: poolSize,
	}
}

// Parse parses a scientific name string with the zoological code.
func (p *PoolImpl) Parse(nameString string) parsed.Parsed {
	parser := <-p.ch
	res := parser.ParseName(nameString)
	p.ch <- parser
	return res
}

// Canonical normalizes a scientific name to its simple canonical form.
// Authorships and extra spaces are removed from binomials and trinomials,
// single words are kept as they are, so all-capital order names survive.
func (p *PoolImpl) Canonical(nameString string) string {
	fields := strings.Fields(nameString)
	norm := strings.Join(fields, " ")
	if len(fields) < 2 {
		return norm
	}

	res := p.Parse(norm)
	if !res.Parsed || res.Canonical == nil || res.Canonical.Simple == "" {
		return norm
	}
	return res.Canonical.Simple
}

// Close shuts down the parser pool.
func (p *PoolImpl) Close() {
	if p.ch != nil {
		close(p.ch)
		for range p.ch {
		}
		p.ch = nil
	}
}
