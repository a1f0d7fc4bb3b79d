package scanner

import "time"

const (
	defaultCallTimeout      = 10 * time.Second
	defaultBatchSize        = 50
	defaultBatchConcurrency = 4
	defaultTopK             = 10
)

const (
	opGetHeight            = "get_height"
	opGetBlock             = "get_block"
	opGetMempool           = "get_mempool"
	opGetTransactionsBatch = "get_transactions_batch"
)
