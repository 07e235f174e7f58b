package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chests-genuine/zk-slot-timeline-soundness/testing/assert"
	"github.com/chests-genuine/zk-slot-timeline-soundness/testing/require"
	"github.com/ethereum/go-ethereum/common"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "slots.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestParseSlotIndex(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    common.Hash
		wantErr string
	}{
		{name: "small index", raw: "0x0", want: common.Hash{}},
		{name: "odd length hex", raw: "0x1", want: common.HexToHash("0x01")},
		{name: "eip1967 implementation slot",
			raw:  "0x360894a13ba1a3210667c828492db98dca3e2076cc3735a920a3ca505d382bbc",
			want: common.HexToHash("0x360894a13ba1a3210667c828492db98dca3e2076cc3735a920a3ca505d382bbc")},
		{name: "uppercase accepted", raw: "0xAB", want: common.HexToHash("0xab")},
		{name: "surrounding whitespace", raw: " 0x2 ", want: common.HexToHash("0x02")},
		{name: "missing prefix", raw: "360894a1", wantErr: "0x-prefixed"},
		{name: "empty hex", raw: "0x", wantErr: "invalid slot hex"},
		{name: "not hex", raw: "0xzz", wantErr: "invalid slot hex"},
		{name: "too wide", raw: "0x10000000000000000000000000000000000000000000000000000000000000000", wantErr: "256 bits"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSlotIndex(tt.raw)
			if tt.wantErr != "" {
				require.ErrorContains(t, tt.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSlotArg(t *testing.T) {
	spec, err := ParseSlotArg("impl:0x360894a13ba1a3210667c828492db98dca3e2076cc3735a920a3ca505d382bbc")
	require.NoError(t, err)
	assert.Equal(t, "impl", spec.Label)
	assert.Equal(t, common.HexToHash("0x360894a13ba1a3210667c828492db98dca3e2076cc3735a920a3ca505d382bbc"), spec.Index)

	spec, err = ParseSlotArg("0x5")
	require.NoError(t, err)
	assert.Equal(t, "0x5", spec.Label, "unlabeled slots are labeled by their hex form")
	assert.Equal(t, common.HexToHash("0x05"), spec.Index)

	_, err = ParseSlotArg("impl:5")
	require.ErrorContains(t, "0x-prefixed", err)
}

func TestParseManifest_ListForm(t *testing.T) {
	path := writeManifest(t, `["0x1", "0x2"]`)
	specs, err := ParseManifest(path)
	require.NoError(t, err)
	require.Equal(t, 2, len(specs))
	assert.Equal(t, "0x1", specs[0].Label)
	assert.Equal(t, common.HexToHash("0x01"), specs[0].Index)
	assert.Equal(t, "0x2", specs[1].Label)
}

func TestParseManifest_MapForm(t *testing.T) {
	path := writeManifest(t, `{"impl": "0x1", "admin": "0x2"}`)
	specs, err := ParseManifest(path)
	require.NoError(t, err)
	require.Equal(t, 2, len(specs))
	// Map entries are ordered by label for deterministic reports.
	assert.Equal(t, "admin", specs[0].Label)
	assert.Equal(t, "impl", specs[1].Label)
}

func TestParseManifest_Rejects(t *testing.T) {
	_, err := ParseManifest(filepath.Join(t.TempDir(), "absent.json"))
	require.ErrorContains(t, "could not read slot manifest", err)

	_, err = ParseManifest(writeManifest(t, `"0x1"`))
	require.ErrorContains(t, "manifest must be a list", err)

	_, err = ParseManifest(writeManifest(t, `["no-prefix"]`))
	require.ErrorContains(t, "0x-prefixed", err)
}

func TestResolve(t *testing.T) {
	specs, err := Resolve([]string{"impl:0x1", "admin:0x2"}, "")
	require.NoError(t, err)
	require.Equal(t, 2, len(specs))
	assert.Equal(t, "impl", specs[0].Label)

	// Slot arguments win over a manifest.
	path := writeManifest(t, `["0x9"]`)
	specs, err = Resolve([]string{"impl:0x1"}, path)
	require.NoError(t, err)
	require.Equal(t, 1, len(specs))
	assert.Equal(t, "impl", specs[0].Label)

	specs, err = Resolve(nil, path)
	require.NoError(t, err)
	assert.Equal(t, "0x9", specs[0].Label)

	_, err = Resolve(nil, "")
	require.Equal(t, ErrNoSlots, err)

	_, err = Resolve(nil, writeManifest(t, `[]`))
	require.Equal(t, ErrNoSlots, err)

	_, err = Resolve([]string{"impl:0x1", "impl:0x2"}, "")
	require.ErrorContains(t, "duplicate slot label", err)

	_, err = Resolve([]string{":0x1"}, "")
	require.ErrorContains(t, "label must not be empty", err)
}

func TestNormalizeAddress(t *testing.T) {
	addr, err := NormalizeAddress("0x5fbdb2315678afecb367f032d93f642f64180aa3")
	require.NoError(t, err)
	assert.Equal(t, "0x5FbDB2315678afecb367f032d93F642f64180aa3", addr.Hex())

	_, err = NormalizeAddress("0x123")
	require.ErrorContains(t, "invalid Ethereum address", err)
	_, err = NormalizeAddress("not-an-address")
	require.ErrorContains(t, "invalid Ethereum address", err)
}
