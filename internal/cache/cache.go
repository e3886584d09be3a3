// Package cache provides a small read-through cache port used by the
// services. Entries are JSON-encoded; a miss is never an error.
package cache

import (
	"context"
	"fmt"
	"time"
)

// TTLs per entity group. Orders change status, so they stay fresh for
// only a minute; products and customers tolerate longer staleness.
const (
	ProductTTL  = 30 * time.Minute
	CustomerTTL = 15 * time.Minute
	OrderTTL    = 1 * time.Minute
)

// Cache is the store-agnostic port. Implementations must treat Get on a
// missing key as (false, nil) and Evict on a missing key as a no-op.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Put(ctx context.Context, key string, value any, ttl time.Duration) error
	Evict(ctx context.Context, keys ...string) error
	EvictPrefix(ctx context.Context, prefix string) error
}

// ProductCategoryPrefix keys every per-category product listing. Catalogue
// mutations evict the whole family through EvictPrefix.
const ProductCategoryPrefix = "product:categoryId:"

// Key builders. Keys are namespaced by entity and lookup field so that a
// single entity update can evict every alias it was cached under.

func CustomerIDKey(id int64) string        { return fmt.Sprintf("customer:id:%d", id) }
func CustomerUsernameKey(u string) string  { return "customer:username:" + u }
func CustomerEmailKey(e string) string     { return "customer:email:" + e }
func ProductIDKey(id int64) string         { return fmt.Sprintf("product:id:%d", id) }
func ProductCategoryKey(id int64) string   { return fmt.Sprintf(ProductCategoryPrefix+"%d", id) }
func OrderIDKey(id int64) string           { return fmt.Sprintf("order:id:%d", id) }
func OrderCustomerKey(id int64) string     { return fmt.Sprintf("order:customerId:%d", id) }
func OrderDetailOrderKey(id int64) string  { return fmt.Sprintf("order_detail:orderId:%d", id) }
