package market

import (
	"crypto/sha256"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// IDL is the machine-readable interface description an Anchor build emits
// for a program. Only the fields needed for sanity checking are decoded.
type IDL struct {
	Version      string `json:"version"`
	Name         string `json:"name"`
	Instructions []struct {
		Name string `json:"name"`
		Args []struct {
			Name string          `json:"name"`
			Type json.RawMessage `json:"type"`
		} `json:"args"`
	} `json:"instructions"`
}

// Instruction discriminators are the first 8 bytes of
// sha256("global:<snake_case name>"), so an interface description naming the
// right instructions is guaranteed to agree with the compiled-in instruction
// builders. Anchor emits camel case names in some versions and snake case in
// others; both are accepted.
var requiredInstructions = [][]string{
	{"initMarket", "init_market"},
	{"editMarket", "edit_market"},
	{"buyItem", "buy_item"},
}

// LoadIDL reads and sanity-checks the program's interface description. Any
// failure, including a description that does not cover the market program's
// instruction set, is reported as an InterfaceLoadError before any network
// interaction.
func LoadIDL(path string) (*IDL, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &InterfaceLoadError{Path: path, Cause: err}
	}

	var idl IDL
	if err := json.Unmarshal(raw, &idl); err != nil {
		return nil, &InterfaceLoadError{Path: path, Cause: errors.Wrap(err, "malformed interface description")}
	}

	if idl.Name == "" {
		return nil, &InterfaceLoadError{Path: path, Cause: errors.New("missing program name")}
	}

	declared := make(map[string]struct{}, len(idl.Instructions))
	for _, instruction := range idl.Instructions {
		declared[instruction.Name] = struct{}{}
	}

	for _, names := range requiredInstructions {
		var found bool
		for _, name := range names {
			if _, ok := declared[name]; ok {
				found = true
				break
			}
		}
		if !found {
			return nil, &InterfaceLoadError{
				Path:  path,
				Cause: errors.Errorf("interface does not declare instruction %q", names[0]),
			}
		}
	}

	return &idl, nil
}

// Sighash returns the 8-byte discriminator for a global instruction name.
func Sighash(name string) []byte {
	h := sha256.Sum256([]byte("global:" + name))
	return h[:8]
}
