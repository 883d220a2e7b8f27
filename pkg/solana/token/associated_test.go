package token

import (
	"testing"

	"github.com/mr-tron/base58/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogue-markets/anker-go/pkg/solana/system"
)

func TestGetAssociatedAccount(t *testing.T) {
	// Values generated from the spl reference code.
	wallet, err := base58.Decode("4uQeVj5tqViQh7yWWGStvkEG1Zmhx6uasJtWCJziofM")
	require.NoError(t, err)
	mint, err := base58.Decode("8opHzTAnfzRpPEx21XtnrVTX28YQuCpAjcn1PczScKh")
	require.NoError(t, err)
	addr, err := base58.Decode("H7MQwEzt97tUJryocn3qaEoy2ymWstwyEk1i9Yv3EmuZ")
	require.NoError(t, err)

	actual, err := GetAssociatedAccount(wallet, mint)
	require.NoError(t, err)
	assert.EqualValues(t, addr, actual)
}

func TestGetAssociatedAccount_Deterministic(t *testing.T) {
	keys := generateKeys(t, 3)
	wallet, mintA, mintB := keys[0], keys[1], keys[2]

	first, err := GetAssociatedAccount(wallet, mintA)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		repeat, err := GetAssociatedAccount(wallet, mintA)
		require.NoError(t, err)
		assert.Equal(t, first, repeat)
	}

	other, err := GetAssociatedAccount(wallet, mintB)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)

	otherOwner, err := GetAssociatedAccount(mintB, mintA)
	require.NoError(t, err)
	assert.NotEqual(t, first, otherOwner)
}

func TestCreateAssociatedTokenAccount(t *testing.T) {
	keys := generateKeys(t, 3)

	expectedAddr, err := GetAssociatedAccount(keys[1], keys[2])
	require.NoError(t, err)

	instruction, addr, err := CreateAssociatedTokenAccount(keys[0], keys[1], keys[2])
	require.NoError(t, err)
	assert.Equal(t, expectedAddr, addr)

	assert.Empty(t, instruction.Data)
	require.Len(t, instruction.Accounts, 7)
	assert.True(t, instruction.Accounts[0].IsSigner)
	assert.True(t, instruction.Accounts[0].IsWritable)
	assert.False(t, instruction.Accounts[1].IsSigner)
	assert.True(t, instruction.Accounts[1].IsWritable)
	for i := 2; i < len(instruction.Accounts); i++ {
		assert.False(t, instruction.Accounts[i].IsSigner)
		assert.False(t, instruction.Accounts[i].IsWritable)
	}

	assert.EqualValues(t, system.ProgramKey[:], instruction.Accounts[4].PublicKey)
	assert.EqualValues(t, ProgramKey, instruction.Accounts[5].PublicKey)
	assert.EqualValues(t, system.RentSysVar, instruction.Accounts[6].PublicKey)
}
