package market

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/rogue-markets/anker-go/pkg/solana/anker"
	"github.com/rogue-markets/anker-go/pkg/solana/token"
)

// MarketAccounts is the full set of derived accounts for a market identity.
// Resolution is a pure function of (program, creator, item, token): it never
// performs network I/O and always yields the same result for the same inputs.
type MarketAccounts struct {
	Market ed25519.PublicKey
	Bump   uint8

	// ItemCustody is the market's item custody account, holding the escrowed
	// quantity.
	ItemCustody ed25519.PublicKey

	// CreatorTokenCustody receives purchase payments.
	CreatorTokenCustody ed25519.PublicKey

	// CreatorItemCustody is the source of the escrowed quantity at creation.
	CreatorItemCustody ed25519.PublicKey
}

// BuyerAccounts is the set of custody accounts the buyer side of a purchase
// touches.
type BuyerAccounts struct {
	// TokenCustody is the buyer's payment custody account, debited by a
	// purchase.
	TokenCustody ed25519.PublicKey

	// ItemCustody is the buyer's item custody account, credited by a
	// purchase. Created on chain on first purchase.
	ItemCustody ed25519.PublicKey
}

// ResolveMarketAccounts derives the market address and every custody account
// for the (creator, item, token) identity.
func ResolveMarketAccounts(program, creator, itemMint, tokenMint ed25519.PublicKey) (*MarketAccounts, error) {
	for _, v := range []struct {
		name string
		key  ed25519.PublicKey
	}{
		{"creator", creator},
		{"item", itemMint},
		{"token", tokenMint},
	} {
		if len(v.key) != ed25519.PublicKeySize {
			return nil, &AccountMismatchError{
				Account: v.name,
				Cause:   errors.Errorf("invalid public key size: %d", len(v.key)),
			}
		}
	}

	marketAddress, bump, err := anker.GetMarketAddress(&anker.GetMarketAddressArgs{
		Program: program,
		Creator: creator,
		Item:    itemMint,
		Token:   tokenMint,
	})
	if err != nil {
		return nil, err
	}

	itemCustody, err := token.GetAssociatedAccount(marketAddress, itemMint)
	if err != nil {
		return nil, &AccountMismatchError{Account: "market item custody", Cause: err}
	}

	creatorTokenCustody, err := token.GetAssociatedAccount(creator, tokenMint)
	if err != nil {
		return nil, &AccountMismatchError{Account: "creator token custody", Cause: err}
	}

	creatorItemCustody, err := token.GetAssociatedAccount(creator, itemMint)
	if err != nil {
		return nil, &AccountMismatchError{Account: "creator item custody", Cause: err}
	}

	return &MarketAccounts{
		Market:              marketAddress,
		Bump:                bump,
		ItemCustody:         itemCustody,
		CreatorTokenCustody: creatorTokenCustody,
		CreatorItemCustody:  creatorItemCustody,
	}, nil
}

// ResolveBuyerAccounts derives the buyer's custody accounts for a purchase.
func ResolveBuyerAccounts(buyer, itemMint, tokenMint ed25519.PublicKey) (*BuyerAccounts, error) {
	if len(buyer) != ed25519.PublicKeySize {
		return nil, &AccountMismatchError{
			Account: "buyer",
			Cause:   errors.Errorf("invalid public key size: %d", len(buyer)),
		}
	}

	tokenCustody, err := token.GetAssociatedAccount(buyer, tokenMint)
	if err != nil {
		return nil, &AccountMismatchError{Account: "buyer token custody", Cause: err}
	}

	itemCustody, err := token.GetAssociatedAccount(buyer, itemMint)
	if err != nil {
		return nil, &AccountMismatchError{Account: "buyer item custody", Cause: err}
	}

	return &BuyerAccounts{
		TokenCustody: tokenCustody,
		ItemCustody:  itemCustody,
	}, nil
}
