package anker

import (
	"bytes"
)

var marketAccountDiscriminator = []byte{
	219, 190, 213, 55, 0, 227, 198, 154,
}

const (
	MarketAccountSize = (8 + // discriminator
		1 + // active
		8) // price
)

// MarketAccount is the on-chain escrow record for a market. The locked item
// balance itself lives in the market's item custody account, not here.
type MarketAccount struct {
	Active bool
	Price  uint64
}

func (m *MarketAccount) Marshal() []byte {
	data := make([]byte, MarketAccountSize)

	var offset int
	putDiscriminator(data, marketAccountDiscriminator, &offset)
	if m.Active {
		data[offset] = 1
	}
	offset += 1
	putUint64(data, m.Price, &offset)

	return data
}

func (m *MarketAccount) Unmarshal(data []byte) error {
	if len(data) != MarketAccountSize {
		return ErrInvalidAccountData
	}

	var offset int
	var discriminator []byte
	getDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, marketAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	m.Active = data[offset] == 1
	offset += 1
	getUint64(data, &m.Price, &offset)

	return nil
}
