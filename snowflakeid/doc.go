// Package snowflakeid generates and parses 64 bit snowflake identifiers.
//
// An id packs three fields, most significant first: the millisecond offset
// from a fixed epoch (41 bits), a worker id (10 bits) and a per millisecond
// sequence counter (12 bits). The following properties hold for ids issued
// by a single generator:
//
//   - Successive ids are strictly increasing as integers.
//   - No two ids share the same (timestamp, sequence) pair.
//   - The integer ordering of the ids matches the order they were issued in.
//   - A clock that moves backwards surfaces as an error, it is never
//     absorbed into a duplicate or out of order id.
//
// Worker ids are assigned by the caller, either directly or derived from
// the node's private ip address with WorkerIDFromCIDR. Generators with
// distinct worker ids are fully independent and need no coordination.
package snowflakeid
