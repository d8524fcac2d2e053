package ingest

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"patrimonio/internal/model"
)

// severityRegex fixes mixed-case SEVERITY values some banks emit; ofxgo only
// accepts INFO, WARN and ERROR.
var severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)

// ParseOFX reads an OFX/QFX statement and converts it into the same
// transaction model the CSV path produces. Each statement's account ID
// becomes the institution label, so a multi-account export pivots into one
// column per account.
func ParseOFX(r io.Reader) ([]model.Transaction, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	content := strings.TrimLeft(string(raw), " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	resp, err := ofxgo.ParseResponse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var transactions []model.Transaction

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		institution := string(stmt.BankAcctFrom.AcctID)
		for _, ofxTx := range stmt.BankTranList.Transactions {
			transactions = append(transactions, convertOFX(ofxTx, institution))
		}
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		institution := string(stmt.CCAcctFrom.AcctID)
		for _, ofxTx := range stmt.BankTranList.Transactions {
			transactions = append(transactions, convertOFX(ofxTx, institution))
		}
	}

	slog.Debug("parsed OFX statement", "transactions", len(transactions))
	return transactions, nil
}

// convertOFX maps one OFX transaction onto the date/institution/amount
// model. The sign is kept as-is: debits stay negative so that daily totals
// reflect net movement.
func convertOFX(ofxTx ofxgo.Transaction, institution string) model.Transaction {
	amount, _ := ofxTx.TrnAmt.Float64()
	return model.Transaction{
		Date:        model.Day(ofxTx.DtPosted.Time),
		Institution: institution,
		Amount:      amount,
	}
}
