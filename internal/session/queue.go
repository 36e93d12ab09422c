package session

import (
	"math/rand"
	"time"

	"github.com/derya/frtutor/internal/models"
	"github.com/derya/frtutor/internal/srs"
)

const (
	// MasteryThreshold retires a card from the session once its
	// know-count reaches it.
	MasteryThreshold = 2
	// ReinsertionOffset is how many cards an unknown card is pushed
	// back before it reappears.
	ReinsertionOffset = 3

	// Retrievability tiers for the initial ordering.
	atRiskBelow = 0.4
	safeFrom    = 0.75
)

// Counter tracks per-card answers within a single session. It is reset
// every session; only the memory state outlives the session.
type Counter struct {
	KnowCount    int `json:"know_count"`
	UnknownCount int `json:"unknown_count"`
}

// Counters maps card id to its session counter. A missing id reads as
// a zero counter.
type Counters map[string]Counter

// Get returns the counter for a card id, zero-valued when absent.
func (c Counters) Get(id string) Counter {
	return c[id]
}

// Queue is the ordered working set of cards for one session. All
// operations return a new queue; the input is never mutated.
type Queue []models.Card

// IsComplete reports whether the session is over.
func IsComplete(q Queue) bool {
	return len(q) == 0
}

// InitialOrder partitions cards into at-risk (r < 0.4), uncertain
// (0.4 ≤ r < 0.75) and safe (r ≥ 0.75) tiers by current retrievability,
// shuffles each tier independently, and concatenates them most-at-risk
// first. Cards with no stored state use the 0.5 unseen prior and land
// in the uncertain tier. Shuffling within a tier keeps the learner from
// memorizing positional order.
func InitialOrder(cards []models.Card, states map[string]srs.MemoryState, now time.Time, rng *rand.Rand) Queue {
	var atRisk, uncertain, safe []models.Card
	for _, card := range cards {
		r := srs.UnseenRetrievability
		if state, ok := states[card.ID]; ok {
			r = srs.CurrentRetrievability(state, now)
		}
		switch {
		case r < atRiskBelow:
			atRisk = append(atRisk, card)
		case r < safeFrom:
			uncertain = append(uncertain, card)
		default:
			safe = append(safe, card)
		}
	}

	queue := make(Queue, 0, len(cards))
	queue = append(queue, shuffle(atRisk, rng)...)
	queue = append(queue, shuffle(uncertain, rng)...)
	queue = append(queue, shuffle(safe, rng)...)
	return queue
}

// OnKnown records a correct answer. The card is retired once its
// know-count reaches MasteryThreshold, otherwise it moves to the tail
// for one more spaced exposure. An empty queue is a no-op.
func (q Queue) OnKnown(counters Counters, card models.Card) (Queue, Counters) {
	if len(q) == 0 {
		return q, counters
	}

	next := counters.clone()
	counter := next.Get(card.ID)
	counter.KnowCount++
	next[card.ID] = counter

	rest := q.without(card.ID)
	if counter.KnowCount >= MasteryThreshold {
		return rest, next
	}
	return append(rest, card), next
}

// OnUnknown records a failed answer and reinserts the card at
// min(ReinsertionOffset, len(rest)). With exactly one other card left
// the position is forced to 1 so the same card never reappears on the
// very next draw; with nothing else left it goes back to position 0.
// An empty queue is a no-op.
func (q Queue) OnUnknown(counters Counters, card models.Card) (Queue, Counters) {
	if len(q) == 0 {
		return q, counters
	}

	next := counters.clone()
	counter := next.Get(card.ID)
	counter.UnknownCount++
	next[card.ID] = counter

	rest := q.without(card.ID)
	insertAt := ReinsertionOffset
	switch {
	case len(rest) == 0:
		insertAt = 0
	case len(rest) == 1:
		insertAt = 1
	case insertAt > len(rest):
		insertAt = len(rest)
	}

	out := make(Queue, 0, len(rest)+1)
	out = append(out, rest[:insertAt]...)
	out = append(out, card)
	out = append(out, rest[insertAt:]...)
	return out, next
}

// without returns a copy of the queue with the first occurrence of id
// removed.
func (q Queue) without(id string) Queue {
	out := make(Queue, 0, len(q))
	removed := false
	for _, card := range q {
		if !removed && card.ID == id {
			removed = true
			continue
		}
		out = append(out, card)
	}
	return out
}

func (c Counters) clone() Counters {
	out := make(Counters, len(c)+1)
	for id, counter := range c {
		out[id] = counter
	}
	return out
}

// shuffle is a Fisher-Yates shuffle over a copy of cards, driven by the
// injected random source so tests can seed it.
func shuffle(cards []models.Card, rng *rand.Rand) []models.Card {
	out := make([]models.Card, len(cards))
	copy(out, cards)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
