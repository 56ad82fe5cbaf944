package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// CartCapacity is the number of slots every cart carries, one per item id.
const CartCapacity = 300

var ErrSlotOutOfRange = errors.New("cart slot out of range")

// Cart is a dense quantity table indexed by item id. It is stored and served
// as an object keyed by the decimal item id ("0" ... "299").
type Cart [CartCapacity]int64

func NewCart() Cart {
	return Cart{}
}

func ValidateItemID(itemID int) error {
	if itemID < 0 || itemID >= CartCapacity {
		return fmt.Errorf("%w: %d", ErrSlotOutOfRange, itemID)
	}

	return nil
}

// SlotKey is the document key of a slot inside cartData.
func SlotKey(itemID int) string {
	return strconv.Itoa(itemID)
}

func (c Cart) Quantity(itemID int) (int64, error) {
	if err := ValidateItemID(itemID); err != nil {
		return 0, err
	}

	return c[itemID], nil
}

// Add has no upper bound.
func (c *Cart) Add(itemID int) error {
	if err := ValidateItemID(itemID); err != nil {
		return err
	}

	c[itemID]++
	return nil
}

// Remove is a no-op on an empty slot.
func (c *Cart) Remove(itemID int) error {
	if err := ValidateItemID(itemID); err != nil {
		return err
	}

	if c[itemID] > 0 {
		c[itemID]--
	}
	return nil
}

func (c Cart) toMap() map[string]int64 {
	m := make(map[string]int64, CartCapacity)
	for i, q := range c {
		m[SlotKey(i)] = q
	}
	return m
}

func (c *Cart) fromMap(m map[string]int64) error {
	*c = Cart{}
	for k, q := range m {
		i, err := strconv.Atoi(k)
		if err != nil {
			return fmt.Errorf("cart slot key %q: %w", k, err)
		}
		if err := ValidateItemID(i); err != nil {
			return err
		}
		if q < 0 {
			q = 0
		}
		c[i] = q
	}
	return nil
}

func (c Cart) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.toMap())
}

func (c *Cart) UnmarshalJSON(data []byte) error {
	m := map[string]int64{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	return c.fromMap(m)
}

func (c Cart) MarshalBSONValue() (bsontype.Type, []byte, error) {
	doc := make(bson.D, 0, CartCapacity)
	for i, q := range c {
		doc = append(doc, bson.E{Key: SlotKey(i), Value: q})
	}
	return bson.MarshalValue(doc)
}

func (c *Cart) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	if t == bsontype.Null || t == bsontype.Undefined {
		*c = Cart{}
		return nil
	}
	if t != bsontype.EmbeddedDocument {
		return fmt.Errorf("cannot decode %v into a cart", t)
	}

	m := map[string]int64{}
	if err := bson.Unmarshal(data, &m); err != nil {
		return err
	}
	return c.fromMap(m)
}
