// Package cache implements the two-tier read cache used by the shop
// edge client.
//
// # Tiers
//
// The first tier is an in-process map (Memory) with a fixed 5 minute
// TTL and an injected clock. It is consulted for every read operation
// and is the only tier the client writes to.
//
// The second tier is a durable cross-session store (Redis-backed Store)
// holding a single product snapshot blob under the well-known key
// "shop_products_cache". The blob is written by an external
// collaborator; this package only reads it, and deletes it once
// expired. It is consulted for single-entity lookups only, after a
// Memory miss.
//
// # Resolution order
//
//	Memory -> durable snapshot -> caller falls through to the gateway
//
// A durable hit is promoted into Memory by the caller so subsequent
// lookups hit the faster tier. Store access errors (unavailable
// backend, corrupt blob) are swallowed and reported as a miss; a cache
// problem must never fail a read request.
//
// # Keys
//
// Cache keys are derived deterministically from the operation name and
// its normalized query parameters (see key.go). Memory.Clear accepts a
// substring pattern so a whole key family (one operation) can be
// invalidated together.
package cache
