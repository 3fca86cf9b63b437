package service

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"quickbite/internal/domain"
)

// ERC-20 function selectors and the Transfer event signature.
const (
	selectorBalanceOf = "0x70a08231"
	selectorSymbol    = "0x95d89b41"
	selectorDecimals  = "0x313ce567"
	selectorTransfer  = "0xa9059cbb"

	transferEventTopic = "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"

	minimumGasEth       = 0.001
	receiptPollInterval = 2 * time.Second
)

var (
	ErrInvalidRecipient    = errors.New("invalid recipient address")
	ErrInvalidAmount       = errors.New("please enter a valid positive number")
	ErrTooManyDecimals     = errors.New("amount has more decimal places than the token allows")
	ErrTokenInfoMissing    = errors.New("token information not loaded")
	ErrInsufficientBalance = errors.New("insufficient token balance")
	ErrNoGasFunds          = errors.New("no ETH available for transaction gas fees")
	ErrHistoryTimeout      = errors.New("transaction history request timed out")
)

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// WalletService is a thin pass-through to the token contract: it
// validates inputs locally and forwards everything else to the node.
type WalletService struct {
	rpc            RPCClient
	contract       string
	historyTimeout time.Duration
}

func NewWalletService(rpc RPCClient, contract string, historyTimeout time.Duration) *WalletService {
	return &WalletService{
		rpc:            rpc,
		contract:       contract,
		historyTimeout: historyTimeout,
	}
}

// TokenInfo fetches balance, symbol and decimals concurrently.
func (s *WalletService) TokenInfo(ctx context.Context, wallet string) (*domain.TokenInfo, error) {
	if !addressPattern.MatchString(wallet) {
		return nil, ErrInvalidRecipient
	}

	var (
		balanceHex  string
		symbolHex   string
		decimalsHex string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.ethCall(gctx, selectorBalanceOf+padAddress(wallet), &balanceHex)
	})
	g.Go(func() error {
		return s.ethCall(gctx, selectorSymbol, &symbolHex)
	})
	g.Go(func() error {
		return s.ethCall(gctx, selectorDecimals, &decimalsHex)
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch token info: %w", err)
	}

	balance, err := hexToBig(balanceHex)
	if err != nil {
		return nil, fmt.Errorf("bad balance response: %w", err)
	}
	decimalsBig, err := hexToBig(decimalsHex)
	if err != nil {
		return nil, fmt.Errorf("bad decimals response: %w", err)
	}
	decimals := int(decimalsBig.Int64())

	return &domain.TokenInfo{
		Balance:          balance.String(),
		BalanceFormatted: formatUnits(balance, decimals),
		Symbol:           decodeABIString(symbolHex),
		Decimals:         decimals,
	}, nil
}

// ValidateTransfer checks the request against the loaded token info and
// the wallet's gas balance. Each failure is a distinct error and leaves
// no state behind.
func (s *WalletService) ValidateTransfer(req domain.TransferRequest, token *domain.TokenInfo, ethBalance float64) error {
	recipient := strings.TrimSpace(req.To)
	if recipient == "" || !addressPattern.MatchString(recipient) {
		return ErrInvalidRecipient
	}

	amount := strings.ReplaceAll(strings.TrimSpace(req.Amount), ",", "")
	numeric, err := strconv.ParseFloat(amount, 64)
	if err != nil || math.IsNaN(numeric) || math.IsInf(numeric, 0) || numeric <= 0 {
		return ErrInvalidAmount
	}

	if token == nil {
		return ErrTokenInfoMissing
	}

	if dot := strings.Index(amount, "."); dot >= 0 && len(amount)-dot-1 > token.Decimals {
		return ErrTooManyDecimals
	}

	amountUnits, err := parseUnits(amount, token.Decimals)
	if err != nil {
		return ErrInvalidAmount
	}
	balance, ok := new(big.Int).SetString(token.Balance, 10)
	if !ok || amountUnits.Cmp(balance) > 0 {
		return ErrInsufficientBalance
	}

	if ethBalance == 0 {
		return ErrNoGasFunds
	}
	if ethBalance < minimumGasEth {
		// Low but non-zero gas is allowed; the node decides.
		return nil
	}
	return nil
}

// Transfer validates, submits transfer(address,uint256) and polls for
// the receipt until the transaction is mined or the context expires.
func (s *WalletService) Transfer(ctx context.Context, req domain.TransferRequest) (string, error) {
	token, err := s.TokenInfo(ctx, req.From)
	if err != nil {
		return "", err
	}
	ethBalance, err := s.ethBalance(ctx, req.From)
	if err != nil {
		return "", fmt.Errorf("failed to fetch gas balance: %w", err)
	}
	if err := s.ValidateTransfer(req, token, ethBalance); err != nil {
		return "", err
	}

	amount := strings.ReplaceAll(strings.TrimSpace(req.Amount), ",", "")
	amountUnits, err := parseUnits(amount, token.Decimals)
	if err != nil {
		return "", ErrInvalidAmount
	}

	data := selectorTransfer + padAddress(req.To) + padUint(amountUnits)
	var hash string
	err = s.rpc.Call(ctx, "eth_sendTransaction", []interface{}{
		map[string]string{
			"from": req.From,
			"to":   s.contract,
			"data": data,
		},
	}, &hash)
	if err != nil {
		return "", fmt.Errorf("transaction submission failed: %w", err)
	}

	if err := s.waitReceipt(ctx, hash); err != nil {
		return hash, err
	}
	return hash, nil
}

// History issues the incoming and outgoing transfer-log queries
// concurrently and races their combined completion against a fixed
// timeout. A timeout is reported distinctly from a request failure.
func (s *WalletService) History(ctx context.Context, wallet string) ([]domain.Transaction, error) {
	if !addressPattern.MatchString(wallet) {
		return nil, ErrInvalidRecipient
	}

	ctx, cancel := context.WithTimeout(ctx, s.historyTimeout)
	defer cancel()

	var incoming, outgoing []TransferLog
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.transferLogs(gctx, "", wallet, &incoming)
	})
	g.Go(func() error {
		return s.transferLogs(gctx, wallet, "", &outgoing)
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrHistoryTimeout
		}
		return nil, fmt.Errorf("failed to fetch transaction history: %w", err)
	}

	walletTopic := strings.ToLower(padAddress(wallet))
	transactions := make([]domain.Transaction, 0, len(incoming)+len(outgoing))
	seen := map[string]bool{}
	for _, entry := range append(incoming, outgoing...) {
		if seen[entry.TransactionHash] {
			continue
		}
		seen[entry.TransactionHash] = true
		transactions = append(transactions, entry.toTransaction(walletTopic))
	}

	sort.Slice(transactions, func(i, j int) bool {
		return blockNumber(transactions[i].BlockNumber) > blockNumber(transactions[j].BlockNumber)
	})
	return transactions, nil
}

type TransferLog struct {
	TransactionHash string   `json:"transactionHash"`
	BlockNumber     string   `json:"blockNumber"`
	Data            string   `json:"data"`
	Topics          []string `json:"topics"`
}

func (e TransferLog) toTransaction(walletTopic string) domain.Transaction {
	tx := domain.Transaction{
		Hash:        e.TransactionHash,
		BlockNumber: e.BlockNumber,
	}
	if len(e.Topics) >= 3 {
		tx.From = topicToAddress(e.Topics[1])
		tx.To = topicToAddress(e.Topics[2])
		tx.Incoming = strings.EqualFold(strings.TrimPrefix(e.Topics[2], "0x"), walletTopic)
	}
	if value, err := hexToBig(e.Data); err == nil {
		tx.Value = value.String()
	}
	return tx
}

func (s *WalletService) transferLogs(ctx context.Context, from, to string, out *[]TransferLog) error {
	topics := []interface{}{transferEventTopic}
	if from != "" {
		topics = append(topics, "0x"+padAddress(from))
	} else {
		topics = append(topics, nil)
	}
	if to != "" {
		topics = append(topics, "0x"+padAddress(to))
	}

	return s.rpc.Call(ctx, "eth_getLogs", []interface{}{
		map[string]interface{}{
			"address":   s.contract,
			"fromBlock": "0x0",
			"toBlock":   "latest",
			"topics":    topics,
		},
	}, out)
}

func (s *WalletService) waitReceipt(ctx context.Context, hash string) error {
	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		var receipt *domain.TransactionReceipt
		if err := s.rpc.Call(ctx, "eth_getTransactionReceipt", []interface{}{hash}, &receipt); err != nil {
			return fmt.Errorf("receipt poll failed: %w", err)
		}
		if receipt != nil && receipt.BlockNumber != "" {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("transaction %s not mined: %w", hash, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (s *WalletService) ethCall(ctx context.Context, data string, result *string) error {
	return s.rpc.Call(ctx, "eth_call", []interface{}{
		map[string]string{"to": s.contract, "data": data},
		"latest",
	}, result)
}

func (s *WalletService) ethBalance(ctx context.Context, wallet string) (float64, error) {
	var balanceHex string
	if err := s.rpc.Call(ctx, "eth_getBalance", []interface{}{wallet, "latest"}, &balanceHex); err != nil {
		return 0, err
	}
	wei, err := hexToBig(balanceHex)
	if err != nil {
		return 0, err
	}
	eth, _ := new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(1e18)).Float64()
	return eth, nil
}

func padAddress(address string) string {
	addr := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(address), "0x"))
	return strings.Repeat("0", 64-len(addr)) + addr
}

func padUint(value *big.Int) string {
	s := value.Text(16)
	return strings.Repeat("0", 64-len(s)) + s
}

func topicToAddress(topic string) string {
	t := strings.TrimPrefix(topic, "0x")
	if len(t) < 40 {
		return topic
	}
	return "0x" + t[len(t)-40:]
}

func hexToBig(value string) (*big.Int, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(value), "0x")
	if trimmed == "" {
		return big.NewInt(0), nil
	}
	result, ok := new(big.Int).SetString(trimmed, 16)
	if !ok {
		return nil, fmt.Errorf("invalid hex value %q", value)
	}
	return result, nil
}

// decodeABIString decodes a single ABI-encoded string return value
// (offset, length, bytes).
func decodeABIString(value string) string {
	raw, err := hex.DecodeString(strings.TrimPrefix(value, "0x"))
	if err != nil || len(raw) < 64 {
		return ""
	}
	length := new(big.Int).SetBytes(raw[32:64]).Int64()
	if length <= 0 || 64+int(length) > len(raw) {
		return ""
	}
	return string(raw[64 : 64+length])
}

func parseUnits(amount string, decimals int) (*big.Int, error) {
	whole, frac := amount, ""
	if dot := strings.Index(amount, "."); dot >= 0 {
		whole, frac = amount[:dot], amount[dot+1:]
	}
	if len(frac) > decimals {
		return nil, fmt.Errorf("too many decimal places")
	}
	frac += strings.Repeat("0", decimals-len(frac))
	units, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", amount)
	}
	return units, nil
}

func formatUnits(value *big.Int, decimals int) string {
	s := value.String()
	if decimals == 0 {
		return s
	}
	if len(s) <= decimals {
		s = strings.Repeat("0", decimals-len(s)+1) + s
	}
	whole, frac := s[:len(s)-decimals], s[len(s)-decimals:]
	frac = strings.TrimRight(frac, "0")
	if frac == "" {
		return whole
	}
	return whole + "." + frac
}

func blockNumber(hexValue string) int64 {
	n, err := hexToBig(hexValue)
	if err != nil {
		return 0
	}
	return n.Int64()
}

var _ WalletServiceInterface = (*WalletService)(nil)
