package main

import (
	"crypto/ed25519"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/rogue-markets/anker-go/pkg/market"
	"github.com/rogue-markets/anker-go/pkg/solana"
	"github.com/rogue-markets/anker-go/pkg/solana/anker"
)

type config struct {
	LogLevel string `mapstructure:"log_level"`

	Endpoint   string `mapstructure:"endpoint"`
	Commitment string `mapstructure:"commitment"`

	// Program overrides the default market program id.
	Program string `mapstructure:"program"`

	Keypair string `mapstructure:"keypair"`
	IDL     string `mapstructure:"idl"`

	// Creator identifies whose market to buy from; defaults to the keypair's
	// public key for creator-side operations.
	Creator string `mapstructure:"creator"`
	Item    string `mapstructure:"item"`
	Token   string `mapstructure:"token"`
}

const usage = `usage: anker [-config <path>] <command> [args]

commands:
  init <quantity> <price>   create a market escrowing <quantity> items at <price> each
  activate                  open the market for purchases
  deactivate                close the market for purchases
  price <new price>         reprice the market
  buy <quantity>            purchase <quantity> items
  show                      print the derived market and custody accounts (no network)
`

func main() {
	configPath := flag.String("config", "anker.yaml", "path to the configuration file")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	log := logrus.StandardLogger().WithField("type", "cmd/anker")

	viper.SetDefault("log_level", "info")
	viper.SetDefault("endpoint", string(solana.EnvironmentLocal))
	viper.SetDefault("commitment", "finalized")
	viper.SetEnvPrefix("anker")
	viper.AutomaticEnv()

	viper.SetConfigFile(*configPath)
	if err := viper.ReadInConfig(); err != nil {
		log.WithError(err).Fatal("failed to read configuration")
	}

	var conf config
	if err := viper.Unmarshal(&conf); err != nil {
		log.WithError(err).Fatal("failed to parse configuration")
	}

	if level, err := logrus.ParseLevel(strings.ToLower(conf.LogLevel)); err != nil {
		log.WithField("log_level", conf.LogLevel).Warn("unknown log level, ignoring")
	} else {
		logrus.SetLevel(level)
	}

	if err := run(log, conf, flag.Args()); err != nil {
		log.WithError(err).Fatal("operation failed")
	}
}

func run(log *logrus.Entry, conf config, args []string) error {
	item, err := decodeKey("item", conf.Item)
	if err != nil {
		return err
	}
	token, err := decodeKey("token", conf.Token)
	if err != nil {
		return err
	}

	program := anker.PROGRAM_ID
	if conf.Program != "" {
		if program, err = decodeKey("program", conf.Program); err != nil {
			return err
		}
	}

	if args[0] == "show" {
		creator, err := creatorKey(conf)
		if err != nil {
			return err
		}
		return show(program, creator, item, token)
	}

	commitment, err := parseCommitment(conf.Commitment)
	if err != nil {
		return err
	}

	// Local inputs are loaded and validated in full before any network
	// interaction.
	keypair, err := market.LoadKeypair(conf.Keypair)
	if err != nil {
		return err
	}
	if _, err := market.LoadIDL(conf.IDL); err != nil {
		return err
	}

	client := market.NewClient(market.Config{
		Endpoint:   conf.Endpoint,
		Program:    program,
		Commitment: commitment,
	})

	var receipt *market.Receipt
	switch args[0] {
	case "init":
		if len(args) != 3 {
			return errors.New("usage: anker init <quantity> <price>")
		}
		quantity, err := parseAmount("quantity", args[1])
		if err != nil {
			return err
		}
		price, err := parseAmount("price", args[2])
		if err != nil {
			return err
		}
		receipt, err = client.CreateMarket(keypair, item, token, quantity, price)
		if err != nil {
			return err
		}
	case "activate", "deactivate":
		active := args[0] == "activate"
		receipt, err = client.EditMarket(keypair, item, token, &active, nil)
		if err != nil {
			return err
		}
	case "price":
		if len(args) != 2 {
			return errors.New("usage: anker price <new price>")
		}
		price, err := parseAmount("price", args[1])
		if err != nil {
			return err
		}
		receipt, err = client.EditMarket(keypair, item, token, nil, &price)
		if err != nil {
			return err
		}
	case "buy":
		if len(args) != 2 {
			return errors.New("usage: anker buy <quantity>")
		}
		quantity, err := parseAmount("quantity", args[1])
		if err != nil {
			return err
		}
		creator, err := creatorKey(conf)
		if err != nil {
			return err
		}
		receipt, err = client.BuyItem(keypair, creator, item, token, quantity)
		if err != nil {
			return err
		}
	default:
		return errors.Errorf("unknown command: %s", args[0])
	}

	log.WithFields(logrus.Fields{
		"signature": base58.Encode(receipt.Signature[:]),
		"slot":      receipt.Slot,
		"market":    base58.Encode(receipt.Market),
	}).Info("confirmed")

	fmt.Println(base58.Encode(receipt.Signature[:]))
	return nil
}

// show prints every derived account for the configured market identity. It
// performs no network I/O, so operators can verify addresses before funding
// or submitting anything.
func show(program, creator, item, token ed25519.PublicKey) error {
	accounts, err := market.ResolveMarketAccounts(program, creator, item, token)
	if err != nil {
		return err
	}

	fmt.Printf("market:                %s (bump %d)\n", base58.Encode(accounts.Market), accounts.Bump)
	fmt.Printf("market item custody:   %s\n", base58.Encode(accounts.ItemCustody))
	fmt.Printf("creator token custody: %s\n", base58.Encode(accounts.CreatorTokenCustody))
	fmt.Printf("creator item custody:  %s\n", base58.Encode(accounts.CreatorItemCustody))
	return nil
}

// creatorKey returns the configured creator key, falling back to the
// configured keypair's public key when none is set.
func creatorKey(conf config) (ed25519.PublicKey, error) {
	if conf.Creator != "" {
		return decodeKey("creator", conf.Creator)
	}

	keypair, err := market.LoadKeypair(conf.Keypair)
	if err != nil {
		return nil, err
	}
	return keypair.Public().(ed25519.PublicKey), nil
}

func decodeKey(name, value string) (ed25519.PublicKey, error) {
	if value == "" {
		return nil, errors.Errorf("missing configuration value: %s", name)
	}

	decoded, err := base58.Decode(value)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s key", name)
	}
	if len(decoded) != ed25519.PublicKeySize {
		return nil, errors.Errorf("invalid %s key size: %d", name, len(decoded))
	}

	return decoded, nil
}

func parseCommitment(value string) (solana.Commitment, error) {
	switch strings.ToLower(value) {
	case "processed":
		return solana.CommitmentProcessed, nil
	case "confirmed":
		return solana.CommitmentConfirmed, nil
	case "finalized":
		return solana.CommitmentFinalized, nil
	default:
		return solana.Commitment{}, errors.Errorf("unknown commitment level: %s", value)
	}
}

func parseAmount(name, value string) (uint64, error) {
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", name)
	}
	return parsed, nil
}
