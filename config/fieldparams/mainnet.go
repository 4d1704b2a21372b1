package field_params

const (
	Preset                        = "mainnet"
	EpochSize                     = 8192     // Number of header records committed to by one epoch accumulator.
	EpochTreeDepth                = 13       // Log_2 of EpochSize.
	MaxHistoricalEpochs           = 131072   // Limit of the historical_epochs list of the pre-merge accumulator (2**17).
	PortalProofLength             = 15       // Total difficulty sibling, EpochTreeDepth levels and the length mix-in.
	SlotsPerHistoricalRoot        = 8192     // SLOTS_PER_HISTORICAL_ROOT
	BlockRootsTreeDepth           = 13       // Log_2 of SlotsPerHistoricalRoot.
	HistoricalRootsProofDepth     = 14       // BlockRootsTreeDepth plus the state_roots sibling of a HistoricalBatch.
	HistoricalSummaryProofDepth   = 13       // Depth of a block root below a block_summary_root.
	HistoricalRootsLength         = 16777216 // HISTORICAL_ROOTS_LIMIT
	ExecutionBranchDepth          = 11       // Depth of the execution block hash below a beacon block root (Bellatrix to Capella).
	ExecutionBranchDepthDeneb     = 12       // Depth of the execution block hash below a beacon block root (Deneb onwards).
	ExecutionBlockHashGindex      = 3228     // Generalized index of body.execution_payload.block_hash in a BeaconBlock.
	ExecutionBlockHashGindexDeneb = 6444     // Same path with the wider Deneb execution payload.
	BeaconBlockHeaderFieldCount   = 5        // slot, proposer_index, parent_root, state_root, body_root
	SolanaEpochLength             = 432000   // Slots per Solana epoch.
	SolanaTreeDepth               = 19       // Smallest depth whose tree holds SolanaEpochLength leaves.
	RootLength                    = 32       // RootLength defines the byte length of a Merkle root.
	TotalDifficultyLength         = 32       // Byte length of a serialized uint256 total difficulty.
	HeaderRecordLength            = 64       // Serialized size of a HeaderRecord.
)
