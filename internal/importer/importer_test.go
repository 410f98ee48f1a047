package importer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/rkap/internal/transaction"
)

func TestCSVParser_Parse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []transaction.ImportRow
	}{
		{
			name: "Comma Separated",
			input: "date,itemName,payee,amount,balanceSheetName\n" +
				"2024-01-02,Dell XPS 15,Toko Maju,-1500,BANK\n",
			want: []transaction.ImportRow{{
				"date": "2024-01-02", "itemName": "Dell XPS 15", "payee": "Toko Maju",
				"amount": "-1500", "balanceSheetName": "BANK",
			}},
		},
		{
			name: "Semicolon With Aliases And Grouped Amount",
			input: "Tanggal;Item Name;Payee;Jumlah;Balance Sheet;Notes\n" +
				"02/01/2024;Printer Paper;Stationer;-1.250.000,50;Petty Cash;ignored\n" +
				";;;;;\n",
			want: []transaction.ImportRow{
				{
					"date": "02/01/2024", "itemName": "Printer Paper", "payee": "Stationer",
					"amount": "-1250000.50", "balanceSheetName": "Petty Cash",
				},
				{
					"date": "", "itemName": "", "payee": "", "amount": "", "balanceSheetName": "",
				},
			},
		},
		{
			name:  "Short Record Leaves Keys Absent",
			input: "date,payee,amount\n2024-01-02\n",
			want:  []transaction.ImportRow{{"date": "2024-01-02"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewCSVParser().Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCSVParser_NoHeader(t *testing.T) {
	_, err := NewCSVParser().Parse(strings.NewReader("foo,bar\n1,2\n"))
	assert.ErrorIs(t, err, ErrNoHeader)

	_, err = NewCSVParser().Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestCSVParser_FeedsReconcile(t *testing.T) {
	input := "date,itemName,payee,amount,balanceSheetName\n" +
		"2024-01-02,Dell XPS 15,Toko Maju,-1500,BANK\n" +
		"2024-01-03,Dell XPS 15,,-10,BANK\n" +
		"2024-01-04,dell xps 15,Toko Maju,\"-2.000,00\",bank\n"

	rows, err := NewCSVParser().Parse(strings.NewReader(input))
	require.NoError(t, err)

	accepted, skipped := transaction.Reconcile(rows, &transaction.Catalog{
		Items:         []transaction.ItemRef{{ID: 1, CategoryID: 1, Name: "Dell XPS 15"}},
		BalanceSheets: []transaction.SheetRef{{ID: 1, Name: "BANK"}},
	})

	require.Len(t, accepted, 2)
	assert.Equal(t, int64(-2000), accepted[1].Params.Amount)
	assert.Equal(t, 4, accepted[1].Line)
	assert.Equal(t, []transaction.SkippedRow{{Row: 3, Reason: "Payee is missing."}}, skipped)
}

func TestCSVParser_BlankLinesKeepLineNumbers(t *testing.T) {
	input := "date,itemName,payee,amount,balanceSheetName\n" +
		"2024-01-02,Dell XPS 15,Toko Maju,-1500,BANK\n" +
		"\n" +
		"2024-01-03,Dell XPS 15,Toko Maju,-10,BANK\n" +
		"2024-01-04,Dell XPS 15,,-10,BANK\n" +
		"\n"

	rows, err := NewCSVParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 4)

	accepted, skipped := transaction.Reconcile(rows, &transaction.Catalog{
		Items:         []transaction.ItemRef{{ID: 1, CategoryID: 1, Name: "Dell XPS 15"}},
		BalanceSheets: []transaction.SheetRef{{ID: 1, Name: "BANK"}},
	})

	require.Len(t, accepted, 2)
	assert.Equal(t, []int{2, 4}, []int{accepted[0].Line, accepted[1].Line})
	assert.Equal(t, []transaction.SkippedRow{
		{Row: 3, Reason: "Date is missing."},
		{Row: 5, Reason: "Payee is missing."},
	}, skipped)
}

func TestCSVParser_ThousandsGrouping(t *testing.T) {
	input := "date,itemName,payee,amount,balanceSheetName\n" +
		"2024-01-01,Laptop,x,-15.000,BANK\n" +
		"2024-01-01,Laptop,x,-1.500.000,BANK\n"

	rows, err := NewCSVParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "-15000", rows[0]["amount"])
	assert.Equal(t, "-1500000", rows[1]["amount"])
}

func TestXLSXParser_Parse(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Date", "Item", "Payee", "Amount", "Balance Sheet Name"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{
		time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), "Dell XPS 15", "Toko Maju", -1500, "BANK",
	}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"2024-03-10", "Printer Paper", "Stationer", 25, "Petty Cash"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := NewXLSXParser().Parse(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2024-03-09", rows[0]["date"])
	assert.Equal(t, "-1500", rows[0]["amount"])
	assert.Equal(t, "BANK", rows[0]["balanceSheetName"])
	assert.Equal(t, "2024-03-10", rows[1]["date"])
	assert.Equal(t, "Stationer", rows[1]["payee"])
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		explicit, filename string
		want               Format
		wantErr            bool
	}{
		{filename: "ledger.CSV", want: FormatCSV},
		{filename: "ledger.xlsx", want: FormatXLSX},
		{explicit: "xlsx", filename: "upload.bin", want: FormatXLSX},
		{filename: "ledger.pdf", wantErr: true},
	}

	for _, tt := range tests {
		got, err := FormatOf(tt.explicit, tt.filename)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnknownFormat)
			continue
		}

		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestNormalizeAmount(t *testing.T) {
	tests := map[string]string{
		"-1500":        "-1500",
		"1.234.567,50": "1234567.50",
		"1,234,567.50": "1234567.50",
		"12,5":         "12.5",
		"1,234,567":    "1234567",
		"1.234.567":    "1234567",
		"10.5":         "10.5",
		"15.000":       "15000",
		"-15.000":      "-15000",
		"15,000":       "15000",
		"-1.500.000":   "-1500000",
		"1.5000":       "1.5000",
		" -2 000 ":     "-2000",
		"abc":          "abc",
	}

	for in, want := range tests {
		assert.Equal(t, want, normalizeAmount(in), in)
	}
}
