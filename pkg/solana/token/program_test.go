package token

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogue-markets/anker-go/pkg/solana"
	"github.com/rogue-markets/anker-go/pkg/solana/system"
)

func TestInitializeAccount(t *testing.T) {
	keys := generateKeys(t, 3)

	instruction := InitializeAccount(keys[0], keys[1], keys[2])

	assert.EqualValues(t, ProgramKey, instruction.Program)
	require.Len(t, instruction.Accounts, 4)
	assert.Equal(t, byte(CommandInitializeAccount), instruction.Data[0])

	assert.True(t, instruction.Accounts[0].IsWritable)
	assert.False(t, instruction.Accounts[0].IsSigner)
	for i := 1; i < 4; i++ {
		assert.False(t, instruction.Accounts[i].IsWritable)
		assert.False(t, instruction.Accounts[i].IsSigner)
	}
	assert.EqualValues(t, system.RentSysVar, instruction.Accounts[3].PublicKey)
}

func TestTransfer(t *testing.T) {
	keys := generateKeys(t, 3)

	instruction := Transfer(keys[0], keys[1], keys[2], 123456789)

	assert.EqualValues(t, ProgramKey, instruction.Program)
	require.Len(t, instruction.Accounts, 3)
	assert.Equal(t, byte(CommandTransfer), instruction.Data[0])

	assert.True(t, instruction.Accounts[0].IsWritable)
	assert.False(t, instruction.Accounts[0].IsSigner)
	assert.True(t, instruction.Accounts[1].IsWritable)
	assert.False(t, instruction.Accounts[1].IsSigner)
	assert.False(t, instruction.Accounts[2].IsWritable)
	assert.True(t, instruction.Accounts[2].IsSigner)

	decompiled, err := DecompileTransfer(solana.NewTransaction(keys[2], instruction).Message, 0)
	require.NoError(t, err)
	assert.Equal(t, keys[0], decompiled.Source)
	assert.Equal(t, keys[1], decompiled.Destination)
	assert.Equal(t, keys[2], decompiled.Owner)
	assert.EqualValues(t, 123456789, decompiled.Amount)
}

func TestAccountState_RoundTrip(t *testing.T) {
	keys := generateKeys(t, 2)

	expected := Account{
		Mint:   keys[0],
		Owner:  keys[1],
		Amount: 42,
		State:  AccountStateInitialized,
	}

	var actual Account
	require.True(t, actual.Unmarshal(expected.Marshal()))
	assert.Equal(t, expected.Mint, actual.Mint)
	assert.Equal(t, expected.Owner, actual.Owner)
	assert.Equal(t, expected.Amount, actual.Amount)
	assert.Equal(t, expected.State, actual.State)

	assert.False(t, actual.Unmarshal(make([]byte, AccountSize-1)))
}

func generateKeys(t *testing.T, amount int) []ed25519.PublicKey {
	keys := make([]ed25519.PublicKey, amount)

	for i := 0; i < amount; i++ {
		pub, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)
		keys[i] = pub
	}

	return keys
}
