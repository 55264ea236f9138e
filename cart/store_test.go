package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sess = "sess_test"

func newTestStore() *Store {
	return NewStore(24 * time.Hour)
}

func TestAddItemMergesSameProduct(t *testing.T) {
	s := newTestStore()

	s.AddItem(sess, Item{ProductID: "p1", Name: "Pan Francés", Price: 1000})
	s.AddItem(sess, Item{ProductID: "p1", Name: "Pan Francés", Price: 1000})

	items := s.Items(sess)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 2000.0, s.Total(sess))
}

func TestAddItemKeepsInsertionOrder(t *testing.T) {
	s := newTestStore()

	s.AddItem(sess, Item{ProductID: "p1", Name: "Pan Francés", Price: 1000})
	s.AddItem(sess, Item{ProductID: "c1", Name: "Torta de Chocolate", Price: 35000})
	s.AddItem(sess, Item{ProductID: "b1", Name: "Café Americano", Price: 2500})
	s.AddItem(sess, Item{ProductID: "c1", Name: "Torta de Chocolate", Price: 35000})

	items := s.Items(sess)
	require.Len(t, items, 3)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, "c1", items[1].ProductID)
	assert.Equal(t, "b1", items[2].ProductID)
}

func TestUpdateQuantity(t *testing.T) {
	s := newTestStore()
	s.AddItem(sess, Item{ProductID: "p1", Price: 1000})

	s.UpdateQuantity(sess, "p1", 5)

	items := s.Items(sess)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 5000.0, s.Total(sess))
}

func TestUpdateQuantityNonPositiveRemoves(t *testing.T) {
	for _, q := range []int{0, -1} {
		s := newTestStore()
		s.AddItem(sess, Item{ProductID: "p1", Price: 1000})

		s.UpdateQuantity(sess, "p1", q)

		assert.Empty(t, s.Items(sess), "quantity %d should remove the item", q)
		assert.Equal(t, 0.0, s.Total(sess))
	}
}

func TestUpdateQuantityUnknownProductIsNoop(t *testing.T) {
	s := newTestStore()
	s.AddItem(sess, Item{ProductID: "p1", Price: 1000})

	s.UpdateQuantity(sess, "missing", 3)

	items := s.Items(sess)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	s := newTestStore()
	s.AddItem(sess, Item{ProductID: "p1", Price: 1000})
	s.AddItem(sess, Item{ProductID: "p2", Price: 2000})

	s.RemoveItem(sess, "p1")
	s.RemoveItem(sess, "missing")

	items := s.Items(sess)
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ProductID)
}

func TestClear(t *testing.T) {
	s := newTestStore()
	s.AddItem(sess, Item{ProductID: "p1", Price: 1000})
	s.AddItem(sess, Item{ProductID: "p2", Price: 2000})

	s.Clear(sess)

	assert.Empty(t, s.Items(sess))
	assert.Equal(t, 0.0, s.Total(sess))
}

// Total must track price*quantity across any mutation sequence, and no
// retained line may ever carry a non-positive quantity.
func TestTotalInvariantAcrossMutations(t *testing.T) {
	s := newTestStore()

	ops := []func(){
		func() { s.AddItem(sess, Item{ProductID: "p1", Price: 1000}) },
		func() { s.AddItem(sess, Item{ProductID: "c1", Price: 35000}) },
		func() { s.AddItem(sess, Item{ProductID: "p1", Price: 1000}) },
		func() { s.UpdateQuantity(sess, "c1", 3) },
		func() { s.AddItem(sess, Item{ProductID: "b1", Price: 2500}) },
		func() { s.UpdateQuantity(sess, "p1", 0) },
		func() { s.RemoveItem(sess, "missing") },
		func() { s.UpdateQuantity(sess, "b1", -4) },
		func() { s.AddItem(sess, Item{ProductID: "r1", Price: 1500}) },
	}

	for _, op := range ops {
		op()

		var want float64
		for _, item := range s.Items(sess) {
			require.Greater(t, item.Quantity, 0)
			want += item.Price * float64(item.Quantity)
		}
		assert.Equal(t, want, s.Total(sess))
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	s := newTestStore()

	s.AddItem("sess_a", Item{ProductID: "p1", Price: 1000})
	s.AddItem("sess_b", Item{ProductID: "c1", Price: 35000})

	require.Len(t, s.Items("sess_a"), 1)
	require.Len(t, s.Items("sess_b"), 1)
	assert.Equal(t, "p1", s.Items("sess_a")[0].ProductID)
	assert.Equal(t, "c1", s.Items("sess_b")[0].ProductID)
}

func TestItemsReturnsACopy(t *testing.T) {
	s := newTestStore()
	s.AddItem(sess, Item{ProductID: "p1", Price: 1000})

	snapshot := s.Items(sess)
	s.UpdateQuantity(sess, "p1", 7)

	assert.Equal(t, 1, snapshot[0].Quantity)
}

func TestExpiredSessionStartsEmpty(t *testing.T) {
	s := NewStore(time.Millisecond)
	s.AddItem(sess, Item{ProductID: "p1", Price: 1000})

	time.Sleep(5 * time.Millisecond)

	assert.Empty(t, s.Items(sess))
}
