package test

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/polkiloo/foodorders/internal/domain/model"
)

const asciiLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomASCIIString returns a pseudo-random ASCII string within the provided bounds.
func RandomASCIIString(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	length := minLen + randomIntn(maxLen-minLen+1)
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = asciiLetters[randomIntn(len(asciiLetters))]
	}
	return string(buf)
}

// RandomEmail returns a unique-looking customer address.
func RandomEmail() string {
	return fmt.Sprintf("%s@example.com", RandomASCIIString(6, 12))
}

// RandomBasket returns n line items with random names, prices in
// [1, 5000] cents and quantities in [1, 5].
func RandomBasket(n int) []model.LineItem {
	items := make([]model.LineItem, n)
	for i := range items {
		items[i] = model.LineItem{
			Name:       RandomASCIIString(3, 16),
			PriceCents: int64(1 + randomIntn(5000)),
			Qty:        1 + randomIntn(5),
		}
	}
	return items
}

func randomIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}
