// Package manifest resolves the monitored storage slots from command
// line arguments or a JSON manifest file, and normalizes contract
// addresses. It owns the input invariants the audit core relies on:
// labels are unique and non-empty, slot indices fit in 256 bits.
package manifest

import (
	"encoding/json"
	"math/big"
	"os"
	"sort"
	"strings"

	"github.com/chests-genuine/zk-slot-timeline-soundness/audit"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// ErrNoSlots is returned when neither slot arguments nor a manifest
// are provided, or when a manifest resolves to an empty set.
var ErrNoSlots = errors.New("no storage slots provided, use --slot or --manifest")

// ParseSlotIndex converts a 0x-prefixed hex string into a 32-byte
// storage key.
func ParseSlotIndex(raw string) (common.Hash, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if !strings.HasPrefix(s, "0x") {
		return common.Hash{}, errors.Errorf("slot must be 0x-prefixed hex: %s", raw)
	}
	n, ok := new(big.Int).SetString(s[2:], 16)
	if !ok {
		return common.Hash{}, errors.Errorf("invalid slot hex: %s", raw)
	}
	if n.BitLen() > 256 {
		return common.Hash{}, errors.Errorf("slot does not fit in 256 bits: %s", raw)
	}
	return common.BigToHash(n), nil
}

// ParseSlotArg parses one --slot argument. The accepted forms are
// "label:0xSLOT" and a bare "0xSLOT", where the label defaults to the
// hex string itself.
func ParseSlotArg(arg string) (audit.SlotSpec, error) {
	label, raw := arg, arg
	if i := strings.Index(arg, ":"); i >= 0 {
		label, raw = arg[:i], arg[i+1:]
	}
	index, err := ParseSlotIndex(raw)
	if err != nil {
		return audit.SlotSpec{}, err
	}
	return audit.SlotSpec{Label: label, Index: index}, nil
}

// ParseManifest reads a JSON slot manifest. Two shapes are accepted: a
// list of 0x-hex slots, labeled by their own hex strings, or a map of
// label to 0x-hex slot. Map entries are ordered by label so that runs
// against the same manifest report in the same order.
func ParseManifest(path string) ([]audit.SlotSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not read slot manifest")
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		specs := make([]audit.SlotSpec, 0, len(list))
		for _, raw := range list {
			index, err := ParseSlotIndex(raw)
			if err != nil {
				return nil, err
			}
			specs = append(specs, audit.SlotSpec{Label: raw, Index: index})
		}
		return specs, nil
	}

	var byLabel map[string]string
	if err := json.Unmarshal(data, &byLabel); err == nil {
		labels := make([]string, 0, len(byLabel))
		for label := range byLabel {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		specs := make([]audit.SlotSpec, 0, len(labels))
		for _, label := range labels {
			index, err := ParseSlotIndex(byLabel[label])
			if err != nil {
				return nil, err
			}
			specs = append(specs, audit.SlotSpec{Label: label, Index: index})
		}
		return specs, nil
	}

	return nil, errors.New("manifest must be a list of 0x-hex slots or a mapping of label to 0x-hex slot")
}

// Resolve produces the final slot set from repeated --slot arguments
// or a manifest path. Explicit arguments win over the manifest. The
// result is non-empty with unique, non-empty labels in first-seen
// order.
func Resolve(slotArgs []string, manifestPath string) ([]audit.SlotSpec, error) {
	var specs []audit.SlotSpec
	switch {
	case len(slotArgs) > 0:
		specs = make([]audit.SlotSpec, 0, len(slotArgs))
		for _, arg := range slotArgs {
			spec, err := ParseSlotArg(arg)
			if err != nil {
				return nil, err
			}
			specs = append(specs, spec)
		}
	case manifestPath != "":
		var err error
		specs, err = ParseManifest(manifestPath)
		if err != nil {
			return nil, err
		}
	}
	if len(specs) == 0 {
		return nil, ErrNoSlots
	}

	seen := make(map[string]struct{}, len(specs))
	for _, spec := range specs {
		if spec.Label == "" {
			return nil, errors.New("slot label must not be empty")
		}
		if _, dup := seen[spec.Label]; dup {
			return nil, errors.Errorf("duplicate slot label: %s", spec.Label)
		}
		seen[spec.Label] = struct{}{}
	}
	return specs, nil
}
