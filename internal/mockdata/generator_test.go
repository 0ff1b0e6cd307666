package mockdata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finsight/internal/models"
)

func TestSpendingHistory(t *testing.T) {
	transactions := NewGenerator(1).SpendingHistory(90)

	// 1 to 3 expenses per day plus a monthly salary deposit.
	require.GreaterOrEqual(t, len(transactions), 93)
	require.LessOrEqual(t, len(transactions), 273)

	var incomes int
	for _, tx := range transactions {
		assert.True(t, strings.HasPrefix(tx.ID, "txn_"))
		assert.Equal(t, "USD", tx.Currency)
		assert.False(t, tx.Date.IsZero())

		switch tx.Type {
		case models.TypeIncome:
			incomes++
			assert.Equal(t, "salary", tx.Category)
			assert.Equal(t, 5000.0, tx.Amount)
		case models.TypeExpense:
			assert.GreaterOrEqual(t, tx.Amount, 10.0)
			assert.Less(t, tx.Amount, 200.0)
		default:
			t.Fatalf("unexpected transaction type %q", tx.Type)
		}
	}
	assert.Equal(t, 3, incomes)
}

func TestSpendingHistory_SeedIsDeterministic(t *testing.T) {
	a := NewGenerator(42).SpendingHistory(30)
	b := NewGenerator(42).SpendingHistory(30)

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Category, b[i].Category)
		assert.Equal(t, a[i].Amount, b[i].Amount)
		assert.Equal(t, a[i].Type, b[i].Type)
	}
}

func TestSpendingHistory_ZeroDays(t *testing.T) {
	assert.Empty(t, NewGenerator(7).SpendingHistory(0))
}
