package domain

const (
	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"

	// Collection defaults, taken from the Toon Survival collection
	DEFAULT_TOKEN_NAME             = "Toon Survival"
	DEFAULT_TOKEN_SYMBOL           = "TSV"
	DEFAULT_COST_WEI               = "100000000000000000" // 0.1 ether
	DEFAULT_MAX_SUPPLY             = 100
	DEFAULT_MAX_MINT_AMOUNT        = 5
	DEFAULT_MAX_MINT_AMOUNT_PER_TX = 2
	DEFAULT_MAX_WHITELIST_MINT     = 1
)
