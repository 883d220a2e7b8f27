package anker

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInitMarketInstruction(t *testing.T) {
	keys := generateKeys(t, 7)

	instruction := NewInitMarketInstruction(
		PROGRAM_ID,
		&InitMarketInstructionAccounts{
			Creator:             keys[0],
			Item:                keys[1],
			Token:               keys[2],
			Market:              keys[3],
			MarketItemAccount:   keys[4],
			CreatorTokenAccount: keys[5],
			CreatorItemAccount:  keys[6],
		},
		&InitMarketInstructionArgs{
			Bump:         253,
			ItemQuantity: 1000,
			PerItemPrice: 250000,
		},
	)

	assert.Equal(t, PROGRAM_ID, instruction.Program)

	require.Len(t, instruction.Data, 25)
	assert.Equal(t, initMarketInstructionDiscriminator, instruction.Data[:8])
	assert.EqualValues(t, 253, instruction.Data[8])
	assert.EqualValues(t, 1000, binary.LittleEndian.Uint64(instruction.Data[9:17]))
	assert.EqualValues(t, 250000, binary.LittleEndian.Uint64(instruction.Data[17:25]))

	require.Len(t, instruction.Accounts, 11)
	for i, key := range keys {
		assert.EqualValues(t, key, instruction.Accounts[i].PublicKey)
	}
	assert.EqualValues(t, SPL_TOKEN_PROGRAM_ID, instruction.Accounts[7].PublicKey)
	assert.EqualValues(t, SPL_ASSOCIATED_TOKEN_PROGRAM_ID, instruction.Accounts[8].PublicKey)
	assert.EqualValues(t, SYSVAR_RENT_PUBKEY, instruction.Accounts[9].PublicKey)
	assert.EqualValues(t, SYSTEM_PROGRAM_ID, instruction.Accounts[10].PublicKey)

	assert.True(t, instruction.Accounts[0].IsSigner)
	assert.True(t, instruction.Accounts[0].IsWritable)
	for _, i := range []int{1, 2, 7, 8, 9, 10} {
		assert.False(t, instruction.Accounts[i].IsSigner)
		assert.False(t, instruction.Accounts[i].IsWritable)
	}
	for _, i := range []int{3, 4, 5, 6} {
		assert.False(t, instruction.Accounts[i].IsSigner)
		assert.True(t, instruction.Accounts[i].IsWritable)
	}
}

func TestNewEditMarketInstruction(t *testing.T) {
	keys := generateKeys(t, 4)
	accounts := &EditMarketInstructionAccounts{
		Creator: keys[0],
		Item:    keys[1],
		Token:   keys[2],
		Market:  keys[3],
	}

	for _, tc := range []struct {
		name     string
		args     *EditMarketInstructionArgs
		expected []byte
	}{
		{
			name:     "no changes",
			args:     &EditMarketInstructionArgs{Bump: 255},
			expected: []byte{255, 0, 0},
		},
		{
			name:     "activate",
			args:     &EditMarketInstructionArgs{Bump: 255, Active: boolPtr(true)},
			expected: []byte{255, 1, 1, 0},
		},
		{
			name:     "deactivate",
			args:     &EditMarketInstructionArgs{Bump: 255, Active: boolPtr(false)},
			expected: []byte{255, 1, 0, 0},
		},
		{
			name:     "reprice",
			args:     &EditMarketInstructionArgs{Bump: 254, PerItemPrice: uint64Ptr(0x1122334455667788)},
			expected: []byte{254, 0, 1, 0x88, 0x77, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11},
		},
		{
			name: "activate and reprice",
			args: &EditMarketInstructionArgs{
				Bump:         253,
				Active:       boolPtr(true),
				PerItemPrice: uint64Ptr(42),
			},
			expected: []byte{253, 1, 1, 1, 42, 0, 0, 0, 0, 0, 0, 0},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			instruction := NewEditMarketInstruction(PROGRAM_ID, accounts, tc.args)

			assert.Equal(t, PROGRAM_ID, instruction.Program)
			assert.Equal(t, editMarketInstructionDiscriminator, instruction.Data[:8])
			assert.Equal(t, tc.expected, instruction.Data[8:])

			require.Len(t, instruction.Accounts, 4)
			for i, key := range keys {
				assert.EqualValues(t, key, instruction.Accounts[i].PublicKey)
			}
			assert.True(t, instruction.Accounts[0].IsSigner)
			assert.True(t, instruction.Accounts[0].IsWritable)
			assert.False(t, instruction.Accounts[1].IsWritable)
			assert.False(t, instruction.Accounts[2].IsWritable)
			assert.True(t, instruction.Accounts[3].IsWritable)
			assert.False(t, instruction.Accounts[3].IsSigner)
		})
	}
}

func TestNewBuyItemInstruction(t *testing.T) {
	keys := generateKeys(t, 9)

	instruction := NewBuyItemInstruction(
		PROGRAM_ID,
		&BuyItemInstructionAccounts{
			Buyer:               keys[0],
			Creator:             keys[1],
			Item:                keys[2],
			Token:               keys[3],
			Market:              keys[4],
			MarketItemAccount:   keys[5],
			CreatorTokenAccount: keys[6],
			BuyerTokenAccount:   keys[7],
			BuyerItemAccount:    keys[8],
		},
		&BuyItemInstructionArgs{
			Bump:         252,
			ItemQuantity: 3,
		},
	)

	assert.Equal(t, PROGRAM_ID, instruction.Program)

	require.Len(t, instruction.Data, 17)
	assert.Equal(t, buyItemInstructionDiscriminator, instruction.Data[:8])
	assert.EqualValues(t, 252, instruction.Data[8])
	assert.EqualValues(t, 3, binary.LittleEndian.Uint64(instruction.Data[9:17]))

	require.Len(t, instruction.Accounts, 13)
	for i, key := range keys {
		assert.EqualValues(t, key, instruction.Accounts[i].PublicKey)
	}
	assert.EqualValues(t, SPL_TOKEN_PROGRAM_ID, instruction.Accounts[9].PublicKey)
	assert.EqualValues(t, SPL_ASSOCIATED_TOKEN_PROGRAM_ID, instruction.Accounts[10].PublicKey)
	assert.EqualValues(t, SYSVAR_RENT_PUBKEY, instruction.Accounts[11].PublicKey)
	assert.EqualValues(t, SYSTEM_PROGRAM_ID, instruction.Accounts[12].PublicKey)

	assert.True(t, instruction.Accounts[0].IsSigner)
	assert.True(t, instruction.Accounts[0].IsWritable)
	for _, i := range []int{1, 2, 3, 9, 10, 11, 12} {
		assert.False(t, instruction.Accounts[i].IsSigner)
		assert.False(t, instruction.Accounts[i].IsWritable)
	}
	for _, i := range []int{4, 5, 6, 7, 8} {
		assert.False(t, instruction.Accounts[i].IsSigner)
		assert.True(t, instruction.Accounts[i].IsWritable)
	}
}

func TestMarketAccountRoundTrip(t *testing.T) {
	expected := &MarketAccount{
		Active: true,
		Price:  123456789,
	}

	data := expected.Marshal()
	require.Len(t, data, MarketAccountSize)
	assert.Equal(t, marketAccountDiscriminator, data[:8])

	var actual MarketAccount
	require.NoError(t, actual.Unmarshal(data))
	assert.Equal(t, expected.Active, actual.Active)
	assert.Equal(t, expected.Price, actual.Price)
}

func TestMarketAccount_InvalidData(t *testing.T) {
	var account MarketAccount
	assert.Equal(t, ErrInvalidAccountData, account.Unmarshal(nil))
	assert.Equal(t, ErrInvalidAccountData, account.Unmarshal(make([]byte, MarketAccountSize-1)))

	data := (&MarketAccount{Price: 1}).Marshal()
	data[0] += 1
	assert.Equal(t, ErrInvalidAccountData, account.Unmarshal(data))
}

func generateKeys(t *testing.T, amount int) []ed25519.PublicKey {
	keys := make([]ed25519.PublicKey, amount)

	for i := 0; i < amount; i++ {
		pub, _, err := ed25519.GenerateKey(rand.Reader)
		require.NoError(t, err)

		keys[i] = pub
	}

	return keys
}

func boolPtr(v bool) *bool {
	return &v
}

func uint64Ptr(v uint64) *uint64 {
	return &v
}
