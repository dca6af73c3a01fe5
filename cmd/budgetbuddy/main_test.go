package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/budgetbuddy/internal/cli"
	"github.com/Veraticus/budgetbuddy/internal/common"
	"github.com/Veraticus/budgetbuddy/internal/model"
	"github.com/Veraticus/budgetbuddy/internal/storage"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, dataFile string, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(append([]string{"--data-file", dataFile, "--log-level", "error"}, args...))

	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func loadData(t *testing.T, dataFile string) model.Collection {
	t.Helper()
	profiles, err := storage.NewRepository(dataFile).LoadProfiles(context.Background())
	require.NoError(t, err)
	return profiles
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	names := make(map[string]*cobra.Command)
	for _, sub := range root.Commands() {
		names[sub.Name()] = sub
	}

	for _, want := range []string{"profiles", "add", "show", "export", "import-ofx", "version"} {
		assert.Contains(t, names, want)
	}

	flag := root.PersistentFlags().Lookup("log-format")
	require.NotNil(t, flag)
	assert.Equal(t, "console", flag.DefValue)
}

func TestProfilesLifecycle(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "data.json")

	out, err := runCmd(t, dataFile, "profiles", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "(no profiles yet)")

	_, err = runCmd(t, dataFile, "profiles", "create", "janet")
	require.NoError(t, err)
	_, err = runCmd(t, dataFile, "profiles", "create", "trip")
	require.NoError(t, err)

	_, err = runCmd(t, dataFile, "profiles", "create", "janet")
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)

	out, err = runCmd(t, dataFile, "profiles", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "[0] janet")
	assert.Contains(t, out, "[1] trip")

	_, err = runCmd(t, dataFile, "profiles", "rename", "trip", "holiday")
	require.NoError(t, err)

	_, err = runCmd(t, dataFile, "profiles", "rename", "holiday", "janet")
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)

	_, err = runCmd(t, dataFile, "profiles", "delete", "janet")
	require.NoError(t, err)

	_, err = runCmd(t, dataFile, "profiles", "delete", "janet")
	assert.ErrorIs(t, err, common.ErrNotFound)

	profiles := loadData(t, dataFile)
	assert.Equal(t, []string{"holiday"}, profiles.Names())
	assert.Equal(t, "holiday", profiles["holiday"].Name)
}

func TestAddShowAndExport(t *testing.T) {
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "data.json")

	_, err := runCmd(t, dataFile, "profiles", "create", "janet")
	require.NoError(t, err)

	_, err = runCmd(t, dataFile, "add", "income", "janet",
		"--date", "2025-01-10", "--amount", "200", "--category", "Salary", "--notes", "Part-time job")
	require.NoError(t, err)
	_, err = runCmd(t, dataFile, "add", "expense", "janet",
		"--date", "2025-01-11", "--amount", "50", "--category", "Food", "--notes", "Groceries")
	require.NoError(t, err)

	profiles := loadData(t, dataFile)
	require.Len(t, profiles["janet"].Transactions, 2)
	assert.Equal(t, 150.0, profiles["janet"].Balance())

	out, err := runCmd(t, dataFile, "show", "janet")
	require.NoError(t, err)
	assert.Contains(t, out, "Salary")
	assert.Contains(t, out, "150.00")
	assert.Contains(t, out, "+200.00")
	assert.Contains(t, out, "-50.00")

	csvPath := filepath.Join(dir, "janet.csv")
	_, err = runCmd(t, dataFile, "export", "janet", csvPath)
	require.NoError(t, err)

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, []string{
		"date,type,category,amount,notes",
		"2025-01-10,Income,Salary,200.0,Part-time job",
		"2025-01-11,Expense,Food,50.0,Groceries",
	}, lines)
}

func TestAddRejectsInvalidInput(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "data.json")
	_, err := runCmd(t, dataFile, "profiles", "create", "janet")
	require.NoError(t, err)

	_, err = runCmd(t, dataFile, "add", "expense", "janet", "--amount=-5", "--category", "Food")
	assert.ErrorIs(t, err, model.ErrNegativeAmount)

	_, err = runCmd(t, dataFile, "add", "expense", "janet", "--date", "11/01/2025", "--amount", "5", "--category", "Food")
	assert.ErrorContains(t, err, "invalid date")

	_, err = runCmd(t, dataFile, "add", "income", "nobody", "--amount", "5", "--category", "Gift")
	assert.ErrorIs(t, err, common.ErrNotFound)

	assert.Empty(t, loadData(t, dataFile)["janet"].Transactions)
}

func TestCorruptDataFile(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(dataFile, []byte("{not json"), 0600))

	_, err := runCmd(t, dataFile, "profiles", "create", "janet")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrCorruptData)

	var userErr *common.UserError
	assert.ErrorAs(t, err, &userErr)

	data, err := os.ReadFile(dataFile)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}

const importOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>STARBUCKS STORE #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>INT
<DTPOSTED>20240131120000[0:GMT]
<TRNAMT>1.25
<FITID>2024013101
<NAME>INTEREST PAYMENT
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func TestImportOFX(t *testing.T) {
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "data.json")
	statement := filepath.Join(dir, "checking.qfx")
	require.NoError(t, os.WriteFile(statement, []byte(importOFX), 0600))

	_, err := runCmd(t, dataFile, "profiles", "create", "janet")
	require.NoError(t, err)

	_, err = runCmd(t, dataFile, "import-ofx", "janet", statement, "--dry-run")
	require.NoError(t, err)
	assert.Empty(t, loadData(t, dataFile)["janet"].Transactions)

	_, err = runCmd(t, dataFile, "import-ofx", "janet", statement)
	require.NoError(t, err)
	_, err = runCmd(t, dataFile, "import-ofx", "janet", statement)
	require.NoError(t, err)

	janet := loadData(t, dataFile)["janet"]
	require.Len(t, janet.Transactions, 2)
	assert.Equal(t, model.KindExpense, janet.Transactions[0].Kind)
	assert.Equal(t, model.KindIncome, janet.Transactions[1].Kind)
	assert.Equal(t, "Interest", janet.Transactions[1].Category)

	_, err = runCmd(t, dataFile, "import-ofx", "janet", filepath.Join(dir, "missing-*.qfx"))
	assert.ErrorContains(t, err, "no files found")
}

func TestVersionCmd(t *testing.T) {
	out, err := runCmd(t, filepath.Join(t.TempDir(), "data.json"), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "budgetbuddy dev")
}

func TestImportOFX_NoTransactions(t *testing.T) {
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "data.json")
	statement := filepath.Join(dir, "broken.qfx")
	require.NoError(t, os.WriteFile(statement, []byte("not an OFX statement"), 0600))

	_, err := runCmd(t, dataFile, "profiles", "create", "janet")
	require.NoError(t, err)

	out, err := runCmd(t, dataFile, "import-ofx", "janet", statement)
	require.NoError(t, err)
	assert.Contains(t, out, "No transactions found in any file")
	assert.Empty(t, loadData(t, dataFile)["janet"].Transactions)
}

func TestFormatCommandError(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "data.json")

	_, err := runCmd(t, dataFile, "profiles", "delete", "nobody")
	require.Error(t, err)
	assert.Equal(t, cli.FormatWarning(err.Error()), formatCommandError(err))

	ioErr := errors.New("disk full")
	assert.Equal(t, cli.FormatError("disk full"), formatCommandError(ioErr))
}
