package transaction_test

import (
	"context"
	"errors"
	"maps"
	"sort"
	"time"

	"github.com/MrJamesThe3rd/rkap/internal/transaction"
)

// memLedger is an in-memory Repository whose LedgerTx works on a copy of
// the state and publishes it only on Commit.
type memLedger struct {
	sheets  map[int64]int64
	names   map[int64]string
	items   map[int64]transaction.ItemRef
	rows    map[int64]transaction.Transaction
	nextID  int64
	failOn  string
	commits int
}

func newMemLedger() *memLedger {
	return &memLedger{
		sheets: map[int64]int64{},
		names:  map[int64]string{},
		items:  map[int64]transaction.ItemRef{},
		rows:   map[int64]transaction.Transaction{},
		nextID: 1,
	}
}

func (m *memLedger) addSheet(id int64, name string, balance int64) {
	m.sheets[id] = balance
	m.names[id] = name
}

func (m *memLedger) addItem(id, categoryID int64, name string) {
	m.items[id] = transaction.ItemRef{ID: id, CategoryID: categoryID, Name: name}
}

// sumFor is the expected balance contribution of all rows on a sheet.
func (m *memLedger) sumFor(sheetID int64) int64 {
	var sum int64

	for _, r := range m.rows {
		if r.BalanceSheetID != nil && *r.BalanceSheetID == sheetID {
			sum += r.Amount
		}
	}

	return sum
}

func (m *memLedger) GetTransaction(_ context.Context, id int64) (*transaction.Transaction, error) {
	r, ok := m.rows[id]
	if !ok {
		return nil, transaction.ErrNotFound
	}

	return &r, nil
}

func (m *memLedger) ListTransactions(_ context.Context, _ transaction.ListFilter) ([]*transaction.Transaction, error) {
	ids := make([]int64, 0, len(m.rows))
	for id := range m.rows {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]*transaction.Transaction, 0, len(ids))
	for _, id := range ids {
		r := m.rows[id]
		out = append(out, &r)
	}

	return out, nil
}

func (m *memLedger) Begin(_ context.Context) (transaction.LedgerTx, error) {
	return &memTx{
		parent: m,
		sheets: maps.Clone(m.sheets),
		rows:   maps.Clone(m.rows),
		nextID: m.nextID,
	}, nil
}

type memTx struct {
	parent *memLedger
	sheets map[int64]int64
	rows   map[int64]transaction.Transaction
	nextID int64
	done   bool
}

var errInjected = errors.New("injected storage fault")

func (t *memTx) fail(op string) error {
	if t.parent.failOn == op {
		return errInjected
	}

	return nil
}

func (t *memTx) LockTransaction(_ context.Context, id int64) (*transaction.Transaction, error) {
	r, ok := t.rows[id]
	if !ok {
		return nil, transaction.ErrNotFound
	}

	return &r, nil
}

func (t *memTx) ItemCategory(_ context.Context, itemID int64) (int64, error) {
	it, ok := t.parent.items[itemID]
	if !ok {
		return 0, transaction.ErrItemNotFound
	}

	return it.CategoryID, nil
}

func (t *memTx) ImportCatalog(_ context.Context) (*transaction.Catalog, error) {
	var c transaction.Catalog

	for _, it := range t.parent.items {
		c.Items = append(c.Items, it)
	}

	for id, name := range t.parent.names {
		c.BalanceSheets = append(c.BalanceSheets, transaction.SheetRef{ID: id, Name: name})
	}

	return &c, nil
}

func (t *memTx) InsertTransaction(_ context.Context, tx *transaction.Transaction) error {
	if err := t.fail("insert"); err != nil {
		return err
	}

	tx.ID = t.nextID
	tx.CreatedAt = time.Now()
	t.nextID++
	t.rows[tx.ID] = *tx

	return nil
}

func (t *memTx) UpdateTransaction(_ context.Context, tx *transaction.Transaction) error {
	if err := t.fail("update"); err != nil {
		return err
	}

	if _, ok := t.rows[tx.ID]; !ok {
		return transaction.ErrNotFound
	}

	t.rows[tx.ID] = *tx

	return nil
}

func (t *memTx) DeleteTransaction(_ context.Context, id int64) error {
	if err := t.fail("delete"); err != nil {
		return err
	}

	delete(t.rows, id)

	return nil
}

func (t *memTx) ApplyBalanceDelta(_ context.Context, sheetID, delta int64) error {
	if _, ok := t.sheets[sheetID]; !ok {
		return transaction.ErrBalanceSheetNotFound
	}

	t.sheets[sheetID] += delta

	return nil
}

func (t *memTx) Commit() error {
	if err := t.fail("commit"); err != nil {
		return err
	}

	t.parent.sheets = t.sheets
	t.parent.rows = t.rows
	t.parent.nextID = t.nextID
	t.parent.commits++
	t.done = true

	return nil
}

func (t *memTx) Rollback() error {
	t.done = true
	return nil
}

type failingRemover struct {
	calls []string
}

func (f *failingRemover) Remove(_ context.Context, ref string) error {
	f.calls = append(f.calls, ref)
	return errors.New("file not found")
}
