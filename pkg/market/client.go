// Package market is the operation layer for the anker market program. It
// derives every account an operation touches, assembles the instruction,
// submits a single signed transaction, and blocks until the network reports a
// terminal outcome.
package market

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rogue-markets/anker-go/pkg/solana"
	"github.com/rogue-markets/anker-go/pkg/solana/anker"
	"github.com/rogue-markets/anker-go/pkg/solana/token"
)

// Config carries the explicit configuration for a Client. Nothing here is
// read from globals.
type Config struct {
	// Endpoint is the JSON RPC endpoint of a Solana node.
	Endpoint string

	// Program is the market program id. Defaults to anker.PROGRAM_ID.
	Program ed25519.PublicKey

	// Commitment is the level a transaction must reach before an operation
	// returns. Defaults to solana.CommitmentFinalized.
	Commitment solana.Commitment
}

// Receipt is the outcome of a successfully confirmed operation. Every
// derived account an operation used is logged before submission; the ones a
// caller needs for followup operations are surfaced here.
type Receipt struct {
	Signature solana.Signature
	Slot      uint64
	Market    ed25519.PublicKey
	Bump      uint8
}

type Client struct {
	log        *logrus.Entry
	sol        solana.Client
	program    ed25519.PublicKey
	commitment solana.Commitment
}

// NewClient returns a Client for the configured endpoint.
func NewClient(config Config) *Client {
	return NewClientWithRPC(config, solana.New(config.Endpoint))
}

// NewClientWithRPC returns a Client using the provided RPC client.
func NewClientWithRPC(config Config, sol solana.Client) *Client {
	program := config.Program
	if program == nil {
		program = anker.PROGRAM_ID
	}

	commitment := config.Commitment
	if commitment == (solana.Commitment{}) {
		commitment = solana.CommitmentFinalized
	}

	return &Client{
		log:        logrus.StandardLogger().WithField("type", "market/client"),
		sol:        sol,
		program:    program,
		commitment: commitment,
	}
}

// CreateMarket creates a market selling quantity units of the item mint at
// price units of the token mint apiece. The escrowed quantity is moved from
// the creator's item custody account atomically with market creation.
//
// Markets are created inactive; see EditMarket.
func (c *Client) CreateMarket(creator ed25519.PrivateKey, itemMint, tokenMint ed25519.PublicKey, quantity, price uint64) (*Receipt, error) {
	creatorPub := creator.Public().(ed25519.PublicKey)

	accounts, err := ResolveMarketAccounts(c.program, creatorPub, itemMint, tokenMint)
	if err != nil {
		return nil, err
	}

	c.logAccounts("create_market", accounts).Info("assembling market creation")

	instruction := anker.NewInitMarketInstruction(
		c.program,
		&anker.InitMarketInstructionAccounts{
			Creator:             creatorPub,
			Item:                itemMint,
			Token:               tokenMint,
			Market:              accounts.Market,
			MarketItemAccount:   accounts.ItemCustody,
			CreatorTokenAccount: accounts.CreatorTokenCustody,
			CreatorItemAccount:  accounts.CreatorItemCustody,
		},
		&anker.InitMarketInstructionArgs{
			Bump:         accounts.Bump,
			ItemQuantity: quantity,
			PerItemPrice: price,
		},
	)

	return c.submit(creator, accounts, instruction)
}

// EditMarket activates, deactivates, or reprices an existing market. A nil
// field leaves the current value unchanged. The program rejects the
// transaction if the signer is not the market's recorded creator.
func (c *Client) EditMarket(creator ed25519.PrivateKey, itemMint, tokenMint ed25519.PublicKey, active *bool, price *uint64) (*Receipt, error) {
	creatorPub := creator.Public().(ed25519.PublicKey)

	accounts, err := ResolveMarketAccounts(c.program, creatorPub, itemMint, tokenMint)
	if err != nil {
		return nil, err
	}

	c.logAccounts("edit_market", accounts).Info("assembling market edit")

	instruction := anker.NewEditMarketInstruction(
		c.program,
		&anker.EditMarketInstructionAccounts{
			Creator: creatorPub,
			Item:    itemMint,
			Token:   tokenMint,
			Market:  accounts.Market,
		},
		&anker.EditMarketInstructionArgs{
			Bump:         accounts.Bump,
			Active:       active,
			PerItemPrice: price,
		},
	)

	return c.submit(creator, accounts, instruction)
}

// BuyItem purchases quantity units from the market identified by (creator,
// itemMint, tokenMint), paying quantity times the market price from the
// buyer's token custody account. Inactive markets, insufficient custody
// balance, and insufficient payment balance are all rejected by the program;
// the rejection reason is relayed in a SubmissionRejectedError.
func (c *Client) BuyItem(buyer ed25519.PrivateKey, creator, itemMint, tokenMint ed25519.PublicKey, quantity uint64) (*Receipt, error) {
	buyerPub := buyer.Public().(ed25519.PublicKey)

	accounts, err := ResolveMarketAccounts(c.program, creator, itemMint, tokenMint)
	if err != nil {
		return nil, err
	}
	buyerAccounts, err := ResolveBuyerAccounts(buyerPub, itemMint, tokenMint)
	if err != nil {
		return nil, err
	}

	c.logAccounts("buy_item", accounts).WithFields(logrus.Fields{
		"buyer_token_custody": base58.Encode(buyerAccounts.TokenCustody),
		"buyer_item_custody":  base58.Encode(buyerAccounts.ItemCustody),
	}).Info("assembling purchase")

	instruction := anker.NewBuyItemInstruction(
		c.program,
		&anker.BuyItemInstructionAccounts{
			Buyer:               buyerPub,
			Creator:             creator,
			Item:                itemMint,
			Token:               tokenMint,
			Market:              accounts.Market,
			MarketItemAccount:   accounts.ItemCustody,
			CreatorTokenAccount: accounts.CreatorTokenCustody,
			BuyerTokenAccount:   buyerAccounts.TokenCustody,
			BuyerItemAccount:    buyerAccounts.ItemCustody,
		},
		&anker.BuyItemInstructionArgs{
			Bump:         accounts.Bump,
			ItemQuantity: quantity,
		},
	)

	return c.submit(buyer, accounts, instruction)
}

// GetMarket fetches and decodes the market account for the (creator, item,
// token) identity.
func (c *Client) GetMarket(creator, itemMint, tokenMint ed25519.PublicKey) (*anker.MarketAccount, error) {
	accounts, err := ResolveMarketAccounts(c.program, creator, itemMint, tokenMint)
	if err != nil {
		return nil, err
	}

	info, err := c.sol.GetAccountInfo(accounts.Market, c.commitment)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get market account")
	}

	var account anker.MarketAccount
	if err := account.Unmarshal(info.Data); err != nil {
		return nil, err
	}

	return &account, nil
}

// GetInventory returns the quantity of the item mint remaining in the
// market's custody account.
func (c *Client) GetInventory(creator, itemMint, tokenMint ed25519.PublicKey) (uint64, error) {
	accounts, err := ResolveMarketAccounts(c.program, creator, itemMint, tokenMint)
	if err != nil {
		return 0, err
	}

	return token.NewClient(c.sol, itemMint).GetBalance(accounts.ItemCustody, c.commitment)
}

// submit wraps the instruction into a single signed transaction, sends it
// exactly once, and waits for the configured commitment. The signature is
// always surfaced, including on failure, so the outcome of an ambiguous
// submission can be queried out of band.
func (c *Client) submit(signer ed25519.PrivateKey, accounts *MarketAccounts, instruction solana.Instruction) (*Receipt, error) {
	payer := signer.Public().(ed25519.PublicKey)

	txn := solana.NewTransaction(payer, instruction)

	blockhash, err := c.sol.GetLatestBlockhash()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get latest blockhash")
	}
	txn.SetBlockhash(blockhash)

	if err := txn.Sign(signer); err != nil {
		return nil, errors.Wrap(err, "failed to sign transaction")
	}

	log := c.log.WithField("signature", base58.Encode(txn.Signature()))
	log.Info("submitting transaction")

	sig, err := c.sol.SubmitTransaction(txn, c.commitment)
	if err != nil {
		if txErr, ok := err.(*solana.TransactionError); ok {
			return nil, &SubmissionRejectedError{Signature: sig, Cause: txErr}
		}
		return nil, errors.Wrap(err, "failed to submit transaction")
	}

	status, err := c.sol.GetSignatureStatus(sig, c.commitment)
	if err != nil {
		return nil, &ConfirmationUnknownError{Signature: sig, Cause: err}
	}
	if status.ErrorResult != nil {
		return nil, &SubmissionRejectedError{Signature: sig, Cause: status.ErrorResult}
	}

	log.WithField("slot", status.Slot).Info("transaction confirmed")

	return &Receipt{
		Signature: sig,
		Slot:      status.Slot,
		Market:    accounts.Market,
		Bump:      accounts.Bump,
	}, nil
}

func (c *Client) logAccounts(operation string, accounts *MarketAccounts) *logrus.Entry {
	return c.log.WithFields(logrus.Fields{
		"operation":             operation,
		"market":                base58.Encode(accounts.Market),
		"bump":                  accounts.Bump,
		"market_item_custody":   base58.Encode(accounts.ItemCustody),
		"creator_token_custody": base58.Encode(accounts.CreatorTokenCustody),
		"creator_item_custody":  base58.Encode(accounts.CreatorItemCustody),
	})
}
