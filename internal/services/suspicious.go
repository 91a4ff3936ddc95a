package services

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ysekkat/bank-ledger/internal/models"
)

// Thresholds used by the combined suspicious-activity report.
var (
	largeAmountThreshold = decimal.NewFromInt(10000)
)

const repeatedMinOccurrences = 3

// SuspiciousActivityService flags transactions likely indicating fraud or
// abuse, scanning the full transaction store.
type SuspiciousActivityService struct {
	reader TransactionReader
}

// NewSuspiciousActivityService creates a new SuspiciousActivityService.
func NewSuspiciousActivityService(reader TransactionReader) *SuspiciousActivityService {
	return &SuspiciousActivityService{reader: reader}
}

// LargeAmountTransactions returns every transaction whose amount is strictly
// greater than threshold. A transaction at exactly the threshold is not
// flagged.
func (s *SuspiciousActivityService) LargeAmountTransactions(ctx context.Context, threshold decimal.Decimal) ([]*models.Transaction, error) {
	transactions, err := s.reader.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var out []*models.Transaction
	for _, txn := range transactions {
		if txn.Amount.GreaterThan(threshold) {
			out = append(out, txn)
		}
	}
	return out, nil
}

// repetitionKey groups transactions by owning client, type and amount.
// Amounts are compared as 2-decimal strings, so values that round to the
// same currency representation fall into the same group.
func repetitionKey(txn *models.Transaction) string {
	return strings.Join([]string{
		txn.Source.Client().ClientID.String(),
		string(txn.Type),
		txn.Amount.StringFixed(2),
	}, "|")
}

// RepeatedTransactions groups transactions with a known source account and
// owning client by (client, type, amount to 2 decimals) and returns every
// member of each group whose size is strictly greater than minOccurrences.
// Groups are reported in first-occurrence order.
func (s *SuspiciousActivityService) RepeatedTransactions(ctx context.Context, minOccurrences int) ([]*models.Transaction, error) {
	transactions, err := s.reader.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]*models.Transaction)
	var keys []string
	for _, txn := range transactions {
		if txn.Source == nil || txn.Source.Client() == nil {
			continue
		}
		key := repetitionKey(txn)
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], txn)
	}

	var out []*models.Transaction
	for _, key := range keys {
		if group := groups[key]; len(group) > minOccurrences {
			out = append(out, group...)
		}
	}
	return out, nil
}

// SuspiciousTransactions returns the union of large-amount transactions
// (above 10000 DH) and repeated transactions (more than 3 occurrences),
// deduplicated by transaction id and sorted newest first.
func (s *SuspiciousActivityService) SuspiciousTransactions(ctx context.Context) ([]*models.Transaction, error) {
	large, err := s.LargeAmountTransactions(ctx, largeAmountThreshold)
	if err != nil {
		return nil, err
	}
	repeated, err := s.RepeatedTransactions(ctx, repeatedMinOccurrences)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{})
	var out []*models.Transaction
	for _, txn := range append(large, repeated...) {
		if _, ok := seen[txn.TransactionID]; ok {
			continue
		}
		seen[txn.TransactionID] = struct{}{}
		out = append(out, txn)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}
