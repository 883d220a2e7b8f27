package anker

import (
	"crypto/ed25519"

	"github.com/rogue-markets/anker-go/pkg/solana"
)

// MarketPrefix is the fixed domain tag for market account derivation.
var MarketPrefix = []byte("rogue_swapper")

type GetMarketAddressArgs struct {
	// Program defaults to PROGRAM_ID when nil.
	Program ed25519.PublicKey
	Creator ed25519.PublicKey
	Item    ed25519.PublicKey
	Token   ed25519.PublicKey
}

// GetMarketAddress derives the market account address and bump for the
// (creator, item, token) identity.
//
// Two identical identities always resolve to the identical address, and the
// bump returned here is the one the program expects as the first instruction
// argument of every market operation.
func GetMarketAddress(args *GetMarketAddressArgs) (ed25519.PublicKey, uint8, error) {
	program := args.Program
	if program == nil {
		program = PROGRAM_ID
	}

	return solana.FindProgramAddressAndBump(
		program,
		MarketPrefix,
		args.Creator,
		args.Item,
		args.Token,
	)
}
