package domain

type TokenInfo struct {
	Balance          string `json:"balance"` // raw integer amount in token units
	BalanceFormatted string `json:"balance_formatted"`
	Symbol           string `json:"symbol"`
	Decimals         int    `json:"decimals"`
}

type TransferRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"` // decimal string, e.g. "1.25"
}

type Transaction struct {
	Hash        string `json:"hash"`
	From        string `json:"from"`
	To          string `json:"to"`
	Value       string `json:"value"`
	BlockNumber string `json:"block_number"`
	Incoming    bool   `json:"incoming"`
}

type TransactionReceipt struct {
	TransactionHash string `json:"transactionHash"`
	BlockNumber     string `json:"blockNumber"`
	Status          string `json:"status"`
}
