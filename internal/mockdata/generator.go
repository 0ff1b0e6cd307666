// Package mockdata produces sample transaction histories for the CLI and
// example flows, standing in for a real transaction source.
package mockdata

import (
	"encoding/hex"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"finsight/internal/models"
)

var expenseCategories = []string{"groceries", "dining", "entertainment", "shopping", "utilities"}

type Generator struct {
	rng *rand.Rand
	now time.Time
}

// NewGenerator seeds the generator; the same seed yields the same history.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now().UTC().Truncate(24 * time.Hour),
	}
}

// SpendingHistory generates days of categorized expenses (1-3 per day,
// $10-$200 each) plus a monthly salary income of $5000.
func (g *Generator) SpendingHistory(days int) []models.Transaction {
	var transactions []models.Transaction
	for i := 0; i < days; i++ {
		date := g.now.AddDate(0, 0, -i)

		for n := g.rng.Intn(3) + 1; n > 0; n-- {
			amount := 10 + g.rng.Float64()*190
			transactions = append(transactions, models.Transaction{
				ID:       transactionID(),
				Type:     models.TypeExpense,
				Category: expenseCategories[g.rng.Intn(len(expenseCategories))],
				Amount:   float64(int(amount*100)) / 100,
				Currency: "USD",
				Date:     date,
			})
		}

		if i%30 == 0 {
			transactions = append(transactions, models.Transaction{
				ID:       transactionID(),
				Type:     models.TypeIncome,
				Category: "salary",
				Amount:   5000,
				Currency: "USD",
				Date:     date,
			})
		}
	}
	return transactions
}

func transactionID() string {
	id := uuid.New()
	return "txn_" + hex.EncodeToString(id[:])[:6]
}
