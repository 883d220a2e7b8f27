package market

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIDL = `{
	"version": "0.0.0",
	"name": "anker",
	"instructions": [
		{"name": "initMarket", "args": [
			{"name": "nonce", "type": "u8"},
			{"name": "itemQuantity", "type": "u64"},
			{"name": "perItemPrice", "type": "u64"}
		]},
		{"name": "editMarket", "args": [
			{"name": "nonce", "type": "u8"},
			{"name": "active", "type": {"option": "bool"}},
			{"name": "price", "type": {"option": "u64"}}
		]},
		{"name": "buyItem", "args": [
			{"name": "nonce", "type": "u8"},
			{"name": "itemQuantity", "type": "u64"}
		]}
	]
}`

func writeIDLFile(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "anker.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadIDL(t *testing.T) {
	idl, err := LoadIDL(writeIDLFile(t, testIDL))
	require.NoError(t, err)

	assert.Equal(t, "anker", idl.Name)
	require.Len(t, idl.Instructions, 3)
	assert.Len(t, idl.Instructions[0].Args, 3)
}

func TestLoadIDL_Errors(t *testing.T) {
	var ifaceErr *InterfaceLoadError

	_, err := LoadIDL(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorAs(t, err, &ifaceErr)

	_, err = LoadIDL(writeIDLFile(t, "not json"))
	require.ErrorAs(t, err, &ifaceErr)

	_, err = LoadIDL(writeIDLFile(t, `{"version": "0.0.0", "instructions": []}`))
	require.ErrorAs(t, err, &ifaceErr)
	assert.Contains(t, ifaceErr.Error(), "missing program name")

	_, err = LoadIDL(writeIDLFile(t, `{
		"version": "0.0.0",
		"name": "anker",
		"instructions": [{"name": "initMarket"}, {"name": "editMarket"}]
	}`))
	require.ErrorAs(t, err, &ifaceErr)
	assert.Contains(t, ifaceErr.Error(), "buyItem")
}

func TestSighash(t *testing.T) {
	assert.Equal(t, []byte{33, 253, 15, 116, 89, 25, 127, 236}, Sighash("init_market"))
	assert.Equal(t, []byte{77, 92, 29, 5, 217, 159, 214, 32}, Sighash("edit_market"))
	assert.Equal(t, []byte{80, 82, 193, 201, 216, 27, 70, 184}, Sighash("buy_item"))
}
