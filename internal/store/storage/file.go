package storage

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// FileRepository stores records as comma-joined fields, one record per
// line. Embedded commas are not escaped; that is a known limitation of the
// format, carried over from the original data files.
//
//	accounts file:  username,password,balance
//	products file:  name,price,imageRef,description
type FileRepository struct {
	accountsPath string
	productsPath string
}

func NewFileRepository(accountsPath, productsPath string) *FileRepository {
	return &FileRepository{
		accountsPath: accountsPath,
		productsPath: productsPath,
	}
}

// LoadAccounts reads every account record from the accounts file. A missing
// file surfaces as the wrapped fs error so callers can choose to start
// with an empty directory.
func (r *FileRepository) LoadAccounts(_ context.Context) ([]AccountRecord, error) {
	data, err := os.ReadFile(r.accountsPath)
	if err != nil {
		return nil, fmt.Errorf("reading accounts file: %w", err)
	}

	var records []AccountRecord
	for n, line := range splitLines(string(data)) {
		parts := strings.Split(line, ",")
		if len(parts) != 3 {
			return nil, fmt.Errorf("accounts file line %d: expected 3 fields, got %d", n+1, len(parts))
		}
		balance, err := decimal.NewFromString(parts[2])
		if err != nil {
			return nil, fmt.Errorf("accounts file line %d: bad balance: %w", n+1, err)
		}
		records = append(records, AccountRecord{
			Username: parts[0],
			Password: parts[1],
			Balance:  balance,
		})
	}
	return records, nil
}

// LoadProducts reads every product record from the products file.
func (r *FileRepository) LoadProducts(_ context.Context) ([]ProductRecord, error) {
	data, err := os.ReadFile(r.productsPath)
	if err != nil {
		return nil, fmt.Errorf("reading products file: %w", err)
	}

	var records []ProductRecord
	for n, line := range splitLines(string(data)) {
		parts := strings.Split(line, ",")
		if len(parts) != 4 {
			return nil, fmt.Errorf("products file line %d: expected 4 fields, got %d", n+1, len(parts))
		}
		price, err := decimal.NewFromString(parts[1])
		if err != nil {
			return nil, fmt.Errorf("products file line %d: bad price: %w", n+1, err)
		}
		records = append(records, ProductRecord{
			Name:        parts[0],
			Price:       price,
			ImageRef:    parts[2],
			Description: parts[3],
		})
	}
	return records, nil
}

// SaveAccounts rewrites the whole accounts file. Balances are written with
// exactly two decimal places.
func (r *FileRepository) SaveAccounts(_ context.Context, accounts []AccountRecord) error {
	var b strings.Builder
	for _, a := range accounts {
		fmt.Fprintf(&b, "%s,%s,%s\n", a.Username, a.Password, a.Balance.StringFixed(2))
	}
	if err := os.WriteFile(r.accountsPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing accounts file: %w", err)
	}
	return nil
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
