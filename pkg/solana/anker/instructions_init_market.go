package anker

import (
	"crypto/ed25519"

	"github.com/rogue-markets/anker-go/pkg/solana"
)

// sha256("global:init_market")[:8]
var initMarketInstructionDiscriminator = []byte{
	33, 253, 15, 116, 89, 25, 127, 236,
}

const (
	InitMarketInstructionArgsSize = (1 + // bump
		8 + // item_quantity
		8) // per_item_price
)

type InitMarketInstructionArgs struct {
	Bump         uint8
	ItemQuantity uint64
	PerItemPrice uint64
}

type InitMarketInstructionAccounts struct {
	Creator ed25519.PublicKey
	Item    ed25519.PublicKey
	Token   ed25519.PublicKey
	Market  ed25519.PublicKey

	// The market's item custody account, owned by the market address.
	MarketItemAccount ed25519.PublicKey
	// The creator's token custody account, where purchase payments land.
	CreatorTokenAccount ed25519.PublicKey
	// The creator's item custody account, the source of the locked quantity.
	CreatorItemAccount ed25519.PublicKey
}

// NewInitMarketInstruction builds the instruction that creates the market
// account and moves ItemQuantity units of the item mint from the creator's
// custody account into the market's custody account. Both effects are applied
// atomically by the program, or not at all.
//
// The account order and flags below are the program's binary contract; any
// deviation causes outright rejection.
func NewInitMarketInstruction(
	program ed25519.PublicKey,
	accounts *InitMarketInstructionAccounts,
	args *InitMarketInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte,
		len(initMarketInstructionDiscriminator)+
			InitMarketInstructionArgsSize)

	putDiscriminator(data, initMarketInstructionDiscriminator, &offset)
	putUint8(data, args.Bump, &offset)
	putUint64(data, args.ItemQuantity, &offset)
	putUint64(data, args.PerItemPrice, &offset)

	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Creator,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Item,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Token,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Market,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.MarketItemAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.CreatorTokenAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.CreatorItemAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  SPL_TOKEN_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SPL_ASSOCIATED_TOKEN_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SYSVAR_RENT_PUBKEY,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SYSTEM_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}
