package anker

import (
	"crypto/ed25519"

	"github.com/rogue-markets/anker-go/pkg/solana"
)

// sha256("global:buy_item")[:8]
var buyItemInstructionDiscriminator = []byte{
	80, 82, 193, 201, 216, 27, 70, 184,
}

const (
	BuyItemInstructionArgsSize = 1 + // bump
		8 // item_quantity
)

type BuyItemInstructionArgs struct {
	Bump         uint8
	ItemQuantity uint64
}

type BuyItemInstructionAccounts struct {
	Buyer   ed25519.PublicKey
	Creator ed25519.PublicKey
	Item    ed25519.PublicKey
	Token   ed25519.PublicKey

	Market            ed25519.PublicKey
	MarketItemAccount ed25519.PublicKey

	CreatorTokenAccount ed25519.PublicKey

	BuyerTokenAccount ed25519.PublicKey
	BuyerItemAccount  ed25519.PublicKey
}

// NewBuyItemInstruction builds the instruction that pays the creator from
// the buyer's payment account and releases item tokens from market custody.
// The buyer's item account is created on chain if it does not exist yet,
// which is why the associated token and rent accounts ride along.
func NewBuyItemInstruction(
	program ed25519.PublicKey,
	accounts *BuyItemInstructionAccounts,
	args *BuyItemInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte,
		len(buyItemInstructionDiscriminator)+
			BuyItemInstructionArgsSize)

	putDiscriminator(data, buyItemInstructionDiscriminator, &offset)
	putUint8(data, args.Bump, &offset)
	putUint64(data, args.ItemQuantity, &offset)

	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Buyer,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Creator,
				IsWritable: false,
				IsSigner:   false,
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
				PublicKey:  accounts.BuyerTokenAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.BuyerItemAccount,
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
