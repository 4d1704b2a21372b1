package beacon_test

import (
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	fieldparams "github.com/prysmaticlabs/eraauth/config/fieldparams"
	"github.com/prysmaticlabs/eraauth/config/params"
	"github.com/prysmaticlabs/eraauth/consensus-types/beacon"
	"github.com/prysmaticlabs/eraauth/consensus-types/primitives"
	"github.com/prysmaticlabs/eraauth/container/trie"
	"github.com/prysmaticlabs/eraauth/crypto/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBlock(slot primitives.Slot) *beacon.BeaconBlock {
	return &beacon.BeaconBlock{
		Slot:          slot,
		ProposerIndex: 4242,
		ParentRoot:    common.Hash(hash.Hash([]byte("parent"))),
		StateRoot:     common.Hash(hash.Hash([]byte("state"))),
		BodyRoot:      common.Hash(hash.Hash([]byte("body"))),
	}
}

// withExecutionPayload commits execHash to the block body through a synthetic
// body branch and fills the block's execution fields.
func withExecutionPayload(t *testing.T, b *beacon.BeaconBlock, execHash common.Hash) {
	gindex, depth := beacon.ExecutionBlockHashGindex(params.MainnetConfig(), b.Slot)
	bodyDepth := depth - 3
	bodyBranch := make([][32]byte, bodyDepth)
	for i := range bodyBranch {
		bodyBranch[i] = hash.Hash([]byte{byte(i), 0xbb})
	}
	index := gindex - uint64(1)<<uint(depth)
	b.BodyRoot = trie.FoldBranch(execHash, index, bodyBranch)
	b.ExecutionBlockHash = &execHash
	headerBranch, err := b.HeaderBranch()
	require.NoError(t, err)
	b.ExecutionBranch = append(bodyBranch, headerBranch...)
	require.Equal(t, depth, len(b.ExecutionBranch))
}

func TestBeaconBlock_HashTreeRoot(t *testing.T) {
	b := testBlock(100)
	fields := [][32]byte{
		{100},
		{0x92, 0x10},
		b.ParentRoot,
		b.StateRoot,
		b.BodyRoot,
		{}, {}, {},
	}
	m, err := trie.GenerateTrieFromItems(fields, 3)
	require.NoError(t, err)
	root, err := b.HashTreeRoot()
	require.NoError(t, err)
	assert.Equal(t, m.Root(), root)
}

func TestBeaconBlock_HeaderBranch(t *testing.T) {
	b := testBlock(7)
	root, err := b.HashTreeRoot()
	require.NoError(t, err)
	branch, err := b.HeaderBranch()
	require.NoError(t, err)
	assert.Equal(t, true, trie.VerifyMerkleProof(root, b.BodyRoot, 12, branch))

	tree, err := b.GetTree()
	require.NoError(t, err)
	proof, err := tree.Prove(12)
	require.NoError(t, err)
	require.Equal(t, 3, len(proof.Hashes))
	for i, h := range branch {
		assert.Equal(t, h[:], proof.Hashes[i], "sibling %d", i)
	}
}

func TestBeaconBlock_SSZRoundTrip(t *testing.T) {
	b := testBlock(6209536)
	enc, err := b.MarshalSSZ()
	require.NoError(t, err)
	require.Equal(t, b.SizeSSZ(), len(enc))
	dec := &beacon.BeaconBlock{}
	require.NoError(t, dec.UnmarshalSSZ(enc))
	assert.Equal(t, b, dec)
	require.Error(t, dec.UnmarshalSSZ(enc[1:]))
}

func TestBeaconBlock_JSONRoundTrip(t *testing.T) {
	b := testBlock(6209536)
	withExecutionPayload(t, b, common.HexToHash("0x1234"))
	enc, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Contains(t, string(enc), `"slot":"6209536"`)
	dec := &beacon.BeaconBlock{}
	require.NoError(t, json.Unmarshal(enc, dec))
	assert.Equal(t, b, dec)
}

func TestBeaconBlock_VerifyExecutionBlockHash(t *testing.T) {
	cfg := params.MainnetConfig()
	tests := []struct {
		name  string
		slot  primitives.Slot
		depth int
	}{
		{name: "bellatrix", slot: cfg.BellatrixForkSlot() + 1, depth: fieldparams.ExecutionBranchDepth},
		{name: "capella", slot: cfg.CapellaForkSlot(), depth: fieldparams.ExecutionBranchDepth},
		{name: "deneb", slot: cfg.DenebForkSlot(), depth: fieldparams.ExecutionBranchDepthDeneb},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testBlock(tt.slot)
			withExecutionPayload(t, b, common.HexToHash("0xabcdef"))
			require.Equal(t, tt.depth, len(b.ExecutionBranch))
			require.NoError(t, b.VerifyExecutionBlockHash(cfg))

			wrong := common.HexToHash("0xabcdee")
			b.ExecutionBlockHash = &wrong
			require.ErrorIs(t, b.VerifyExecutionBlockHash(cfg), beacon.ErrExecutionBranch)
		})
	}
}

func TestBeaconBlock_VerifyExecutionBlockHash_Malformed(t *testing.T) {
	cfg := params.MainnetConfig()
	b := testBlock(cfg.CapellaForkSlot())
	require.ErrorIs(t, b.VerifyExecutionBlockHash(cfg), beacon.ErrNoExecutionPayload)

	withExecutionPayload(t, b, common.HexToHash("0x01"))
	b.ExecutionBranch = b.ExecutionBranch[1:]
	err := b.VerifyExecutionBlockHash(cfg)
	require.ErrorIs(t, err, beacon.ErrExecutionBranch)
	assert.Contains(t, err.Error(), "branch of length 10, want 11")
}

func testEra(era primitives.EraIndex) []*beacon.BeaconBlock {
	blocks := make([]*beacon.BeaconBlock, fieldparams.SlotsPerHistoricalRoot)
	for i := range blocks {
		blocks[i] = testBlock(era.FirstSlot() + primitives.Slot(i))
	}
	return blocks
}

func TestBlockRoots(t *testing.T) {
	blocks := testEra(600)
	blocks[5] = nil
	blocks[6] = nil

	roots, err := beacon.BlockRoots(blocks)
	require.NoError(t, err)
	require.Equal(t, fieldparams.SlotsPerHistoricalRoot, len(roots))
	want, err := blocks[4].HashTreeRoot()
	require.NoError(t, err)
	assert.Equal(t, want, roots[5])
	assert.Equal(t, want, roots[6])
	want, err = blocks[7].HashTreeRoot()
	require.NoError(t, err)
	assert.Equal(t, want, roots[7])

	tr, err := beacon.BlockRootsTrie(blocks)
	require.NoError(t, err)
	proof, err := tr.MerkleProof(7)
	require.NoError(t, err)
	assert.True(t, trie.VerifyMerkleProofWithDepth(tr.Root(), roots[7], 7, proof, fieldparams.BlockRootsTreeDepth))
}

func TestBlockRoots_Malformed(t *testing.T) {
	blocks := testEra(600)
	_, err := beacon.BlockRoots(blocks[1:])
	require.ErrorIs(t, err, beacon.ErrIncompleteEra)

	blocks[0] = nil
	_, err = beacon.BlockRoots(blocks)
	require.ErrorIs(t, err, beacon.ErrIncompleteEra)

	blocks = testEra(600)
	blocks[10].Slot++
	_, err = beacon.BlockRoots(blocks)
	require.ErrorIs(t, err, beacon.ErrSlotMisaligned)

	shifted := testEra(600)
	for _, b := range shifted {
		b.Slot++
	}
	_, err = beacon.BlockRoots(shifted)
	require.ErrorIs(t, err, beacon.ErrSlotMisaligned)
}
