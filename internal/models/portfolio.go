package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Sentinel portfolio keys that denote non-price-tracked categories.
const (
	SymbolStable = "USDT"
	SymbolNFT    = "NFT"
)

// HoldingCategory selects the reply template for a portfolio entry.
type HoldingCategory int

const (
	CategoryStandard HoldingCategory = iota
	CategoryStable
	CategoryNFT
)

// Holding is one entry of the persisted portfolio record. Field presence is
// category-dependent: standard assets carry buy_usd, the stable entry carries
// staking, the NFT entry carries name and buy_floor_sol.
type Holding struct {
	Symbol      string  `json:"-"`
	Amount      float64 `json:"amount,omitempty"`
	BuyUSD      float64 `json:"buy_usd,omitempty"`
	Staking     float64 `json:"staking,omitempty"`
	Name        string  `json:"name,omitempty"`
	BuyFloorSOL float64 `json:"buy_floor_sol,omitempty"`
}

// Category returns the formatting category for this holding.
func (h *Holding) Category() HoldingCategory {
	switch h.Symbol {
	case SymbolStable:
		return CategoryStable
	case SymbolNFT:
		return CategoryNFT
	default:
		return CategoryStandard
	}
}

// Portfolio is the holdings record, read-only at runtime. Entries keep the
// document order of the underlying JSON object so replies are deterministic.
type Portfolio struct {
	Entries []Holding
}

// Get returns the holding for a symbol, or nil if absent.
func (p *Portfolio) Get(symbol string) *Holding {
	for i := range p.Entries {
		if p.Entries[i].Symbol == symbol {
			return &p.Entries[i]
		}
	}
	return nil
}

// UnmarshalJSON decodes a top-level JSON object keyed by symbol, preserving
// key order. encoding/json map decoding would lose it.
func (p *Portfolio) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("portfolio: expected JSON object, got %v", tok)
	}

	p.Entries = nil
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		symbol, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("portfolio: unexpected key token %v", keyTok)
		}

		var h Holding
		if err := dec.Decode(&h); err != nil {
			return fmt.Errorf("portfolio: entry %q: %w", symbol, err)
		}
		h.Symbol = symbol
		p.Entries = append(p.Entries, h)
	}

	// Consume closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}

	return nil
}

// MarshalJSON encodes the portfolio back to a symbol-keyed object in entry order.
func (p *Portfolio) MarshalJSON() ([]byte, error) {
	var buf []byte
	buf = append(buf, '{')
	for i := range p.Entries {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(p.Entries[i].Symbol)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(&p.Entries[i])
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, val...)
	}
	buf = append(buf, '}')
	return buf, nil
}
