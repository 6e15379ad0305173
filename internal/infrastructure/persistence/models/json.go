package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/goldfin/backend/internal/domain/lending"
	"github.com/goldfin/backend/internal/domain/org"
	"github.com/goldfin/backend/internal/domain/shared/valueobject"
)

// The ledger embeds a handful of value objects as JSONB columns instead of
// join tables: they are read and written atomically with their row and are
// never queried by field. Each wrapper implements driver.Valuer and
// sql.Scanner so GORM round-trips them transparently.

func scanJSON(src any, dest any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dest)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported JSON column source type %T", src)
	}
}

// PaymentDetailJSON stores a cash/bank payment split as a JSONB column
type PaymentDetailJSON valueobject.PaymentDetail

// Value implements driver.Valuer
func (p PaymentDetailJSON) Value() (driver.Value, error) {
	b, err := json.Marshal(valueobject.PaymentDetail(p))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (p *PaymentDetailJSON) Scan(src any) error {
	return scanJSON(src, (*valueobject.PaymentDetail)(p))
}

// GoldItemsJSON stores a pledged-item list as a JSONB column
type GoldItemsJSON []lending.GoldItem

// Value implements driver.Valuer
func (g GoldItemsJSON) Value() (driver.Value, error) {
	if g == nil {
		g = GoldItemsJSON{}
	}
	b, err := json.Marshal([]lending.GoldItem(g))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (g *GoldItemsJSON) Scan(src any) error {
	return scanJSON(src, (*[]lending.GoldItem)(g))
}

// BankAccountsJSON stores a company's configured bank accounts as a JSONB column
type BankAccountsJSON []org.BankAccount

// Value implements driver.Valuer
func (b BankAccountsJSON) Value() (driver.Value, error) {
	if b == nil {
		b = BankAccountsJSON{}
	}
	raw, err := json.Marshal([]org.BankAccount(b))
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan implements sql.Scanner
func (b *BankAccountsJSON) Scan(src any) error {
	return scanJSON(src, (*[]org.BankAccount)(b))
}
