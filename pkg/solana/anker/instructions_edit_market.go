package anker

import (
	"crypto/ed25519"

	"github.com/rogue-markets/anker-go/pkg/solana"
)

// sha256("global:edit_market")[:8]
var editMarketInstructionDiscriminator = []byte{
	77, 92, 29, 5, 217, 159, 214, 32,
}

type EditMarketInstructionArgs struct {
	Bump uint8
	// Active toggles whether purchases are allowed. Nil leaves the current
	// value unchanged.
	Active *bool
	// PerItemPrice reprices the market. Nil leaves the current value
	// unchanged.
	PerItemPrice *uint64
}

type EditMarketInstructionAccounts struct {
	Creator ed25519.PublicKey
	Item    ed25519.PublicKey
	Token   ed25519.PublicKey
	Market  ed25519.PublicKey
}

// NewEditMarketInstruction builds the instruction that activates,
// deactivates, or reprices a market. The program rejects it when the signer
// does not match the market's recorded creator.
func NewEditMarketInstruction(
	program ed25519.PublicKey,
	accounts *EditMarketInstructionAccounts,
	args *EditMarketInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte,
		len(editMarketInstructionDiscriminator)+
			1+ // bump
			optionalBoolSize(args.Active)+
			optionalUint64Size(args.PerItemPrice))

	putDiscriminator(data, editMarketInstructionDiscriminator, &offset)
	putUint8(data, args.Bump, &offset)
	putOptionalBool(data, args.Active, &offset)
	putOptionalUint64(data, args.PerItemPrice, &offset)

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
		},
	}
}
