package market

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogue-markets/anker-go/pkg/solana"
	"github.com/rogue-markets/anker-go/pkg/solana/anker"
	"github.com/rogue-markets/anker-go/pkg/solana/token"
)

type fakeRPC struct {
	submitted []solana.Transaction

	submitErr error
	status    *solana.SignatureStatus
	statusErr error

	accounts map[string]solana.AccountInfo
}

func (f *fakeRPC) setAccount(key ed25519.PublicKey, info solana.AccountInfo) {
	if f.accounts == nil {
		f.accounts = make(map[string]solana.AccountInfo)
	}
	f.accounts[string(key)] = info
}

func (f *fakeRPC) GetAccountInfo(key ed25519.PublicKey, _ solana.Commitment) (solana.AccountInfo, error) {
	if info, ok := f.accounts[string(key)]; ok {
		return info, nil
	}
	return solana.AccountInfo{}, solana.ErrNoAccountInfo
}
func (f *fakeRPC) GetBalance(ed25519.PublicKey) (uint64, error) { return 0, nil }
func (f *fakeRPC) GetLatestBlockhash() (solana.Blockhash, error) {
	var bh solana.Blockhash
	bh[0] = 42
	return bh, nil
}
func (f *fakeRPC) GetMinimumBalanceForRentExemption(uint64) (uint64, error) { return 0, nil }
func (f *fakeRPC) GetSignatureStatus(solana.Signature, solana.Commitment) (*solana.SignatureStatus, error) {
	return f.status, f.statusErr
}
func (f *fakeRPC) GetSignatureStatuses([]solana.Signature) ([]*solana.SignatureStatus, error) {
	return []*solana.SignatureStatus{f.status}, f.statusErr
}
func (f *fakeRPC) GetSlot(solana.Commitment) (uint64, error)                        { return 0, nil }
func (f *fakeRPC) GetTokenAccountBalance(ed25519.PublicKey) (uint64, uint64, error) { return 0, 0, nil }
func (f *fakeRPC) RequestAirdrop(ed25519.PublicKey, uint64, solana.Commitment) (solana.Signature, error) {
	return solana.Signature{}, nil
}
func (f *fakeRPC) SubmitTransaction(txn solana.Transaction, _ solana.Commitment) (solana.Signature, error) {
	f.submitted = append(f.submitted, txn)
	return txn.Signatures[0], f.submitErr
}

func testClient(t *testing.T) (*Client, *fakeRPC, ed25519.PrivateKey, []ed25519.PublicKey) {
	rpc := &fakeRPC{
		status: &solana.SignatureStatus{Slot: 12345},
	}
	client := NewClientWithRPC(Config{Endpoint: "http://localhost:8899"}, rpc)

	_, creator, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	mints := make([]ed25519.PublicKey, 2)
	for i := range mints {
		mints[i], _, err = ed25519.GenerateKey(rand.Reader)
		require.NoError(t, err)
	}

	return client, rpc, creator, mints
}

func TestCreateMarket(t *testing.T) {
	client, rpc, creator, mints := testClient(t)
	creatorPub := creator.Public().(ed25519.PublicKey)

	receipt, err := client.CreateMarket(creator, mints[0], mints[1], 2, 100)
	require.NoError(t, err)

	accounts, err := ResolveMarketAccounts(anker.PROGRAM_ID, creatorPub, mints[0], mints[1])
	require.NoError(t, err)

	assert.EqualValues(t, 12345, receipt.Slot)
	assert.EqualValues(t, accounts.Market, receipt.Market)
	assert.Equal(t, accounts.Bump, receipt.Bump)

	require.Len(t, rpc.submitted, 1)
	txn := rpc.submitted[0]

	// Exactly one instruction, signed by the creator over the final message.
	require.Len(t, txn.Message.Instructions, 1)
	assert.Equal(t, receipt.Signature, txn.Signatures[0])
	assert.True(t, ed25519.Verify(creatorPub, txn.Message.Marshal(), txn.Signatures[0][:]))
	assert.EqualValues(t, creatorPub, txn.Message.Accounts[0])

	instruction := txn.Message.Instructions[0]
	assert.Equal(t, Sighash("init_market"), instruction.Data[:8])
	assert.Len(t, instruction.Accounts, 11)
}

func TestEditMarket(t *testing.T) {
	client, rpc, creator, mints := testClient(t)

	active := true
	_, err := client.EditMarket(creator, mints[0], mints[1], &active, nil)
	require.NoError(t, err)

	require.Len(t, rpc.submitted, 1)
	instruction := rpc.submitted[0].Message.Instructions[0]
	assert.Equal(t, Sighash("edit_market"), instruction.Data[:8])
	assert.Len(t, instruction.Accounts, 4)
}

func TestBuyItem(t *testing.T) {
	client, rpc, _, mints := testClient(t)

	_, buyer, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	creator, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	_, err = client.BuyItem(buyer, creator, mints[0], mints[1], 4)
	require.NoError(t, err)

	require.Len(t, rpc.submitted, 1)
	txn := rpc.submitted[0]
	assert.EqualValues(t, buyer.Public().(ed25519.PublicKey), txn.Message.Accounts[0])

	instruction := txn.Message.Instructions[0]
	assert.Equal(t, Sighash("buy_item"), instruction.Data[:8])
	assert.Len(t, instruction.Accounts, 13)
}

func TestSubmit_Rejected(t *testing.T) {
	client, rpc, creator, mints := testClient(t)
	rpc.submitErr = solana.NewTransactionError(solana.TransactionErrorBlockhashNotFound)

	_, err := client.CreateMarket(creator, mints[0], mints[1], 2, 100)

	var rejected *SubmissionRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.NotEqual(t, solana.Signature{}, rejected.Signature)
	assert.Contains(t, rejected.Error(), "BlockhashNotFound")
}

func TestSubmit_RejectedByProgram(t *testing.T) {
	client, rpc, creator, mints := testClient(t)

	// The program's rejection surfaces on the signature status rather than
	// the submission response.
	instructionErr, err := solana.TransactionErrorFromInstructionError(&solana.InstructionError{
		Index: 0,
		Err:   errors.New(string(solana.InstructionErrorInsufficientFunds)),
	})
	require.NoError(t, err)
	rpc.status = &solana.SignatureStatus{Slot: 1, ErrorResult: instructionErr}

	quantity := uint64(4)
	_, err = client.BuyItem(creator, creator.Public().(ed25519.PublicKey), mints[0], mints[1], quantity)

	var rejected *SubmissionRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Contains(t, rejected.Error(), "InsufficientFunds")
}

func TestSubmit_ConfirmationUnknown(t *testing.T) {
	client, rpc, creator, mints := testClient(t)
	rpc.status = nil
	rpc.statusErr = solana.ErrSignatureNotFound

	_, err := client.CreateMarket(creator, mints[0], mints[1], 2, 100)

	var unknown *ConfirmationUnknownError
	require.ErrorAs(t, err, &unknown)
	assert.NotEqual(t, solana.Signature{}, unknown.Signature)

	// The transaction was sent; the signature must allow out of band
	// recovery.
	require.Len(t, rpc.submitted, 1)
	assert.Equal(t, rpc.submitted[0].Signatures[0], unknown.Signature)
}

func TestGetMarket(t *testing.T) {
	client, rpc, creator, mints := testClient(t)
	creatorPub := creator.Public().(ed25519.PublicKey)

	accounts, err := ResolveMarketAccounts(anker.PROGRAM_ID, creatorPub, mints[0], mints[1])
	require.NoError(t, err)

	expected := &anker.MarketAccount{Active: true, Price: 100}
	rpc.setAccount(accounts.Market, solana.AccountInfo{
		Data:  expected.Marshal(),
		Owner: anker.PROGRAM_ID,
	})

	actual, err := client.GetMarket(creatorPub, mints[0], mints[1])
	require.NoError(t, err)
	assert.Equal(t, expected, actual)
}

func TestGetInventory(t *testing.T) {
	client, rpc, creator, mints := testClient(t)
	creatorPub := creator.Public().(ed25519.PublicKey)

	accounts, err := ResolveMarketAccounts(anker.PROGRAM_ID, creatorPub, mints[0], mints[1])
	require.NoError(t, err)

	custody := token.Account{
		Mint:   mints[0],
		Owner:  accounts.Market,
		Amount: 7,
		State:  token.AccountStateInitialized,
	}
	rpc.setAccount(accounts.ItemCustody, solana.AccountInfo{
		Data:  custody.Marshal(),
		Owner: token.ProgramKey,
	})

	remaining, err := client.GetInventory(creatorPub, mints[0], mints[1])
	require.NoError(t, err)
	assert.EqualValues(t, 7, remaining)
}

func TestOperations_LocalErrorsPrecedeNetwork(t *testing.T) {
	client, rpc, creator, mints := testClient(t)

	_, err := client.CreateMarket(creator, []byte{1}, mints[1], 2, 100)
	var mismatch *AccountMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Empty(t, rpc.submitted)
}
