/*
Package coll implements general-purpose containers over dynamically typed
values, plus an out-of-core list that keeps its values on disk.

We implement:

1. Lists: List (array-backed) and LinkedList (singly linked, arena-allocated),
each with a Mutable variant.

2. Maps: Map and MutableMap, keyed by integers or strings and iterating in
insertion order.

3. Sets: hash and ordered flavors of Set and MutableSet, plus set algebra
(Union, Intersection, Difference, CartesianProduct, PowerSet and friends).

4. Stack, Queue and Deque views over the lists.

5. StoredList, an append-mostly list whose records live in a temporary file,
a Bolt database or memory, encoded as MessagePack or JSON.

6. Converters between nested containers and flat dotted-path maps, YAML and
plain Go values. Package bitfield packs named fields into a machine word.

# Technical Details

**Identity.**
Every value has an Identity Key (see Classify). Membership, IndexOf and set
uniqueness compare Identity Keys, never Go equality. Scalars, sequences, maps
and sets are compared by content: two lists with equal elements in the same
order are the same value, and so are two maps or sets with equal entries in
any order. Values implementing Object are compared by instance. Composite
keys are xxhash digests of a canonical encoding, so a collision is possible
in theory and ignored in practice.

**Keys.**
Map keys are normalized on entry: decimal strings in canonical form become
integers, so "5" and 5 address the same entry. Booleans become 0 and 1.
Anything that is not an integer, a string or an integral float is rejected.

**Immutability.**
Immutable containers have no mutating methods except the Accessor ones (Put
and Delete), which fail with ErrUnsupported. Mutable variants embed their
immutable counterpart; Immutable() returns an independent copy.

**Errors.**
All failures are *Error values whose Kind is one of the Err* sentinels, so
callers match them with errors.Is. Corrupted stored records surface as
*DataError.

**Stored lists.**
Appends cost one encode and one buffered write. Every read decodes a fresh
copy. Mutations other than appends rewrite the whole store into a fresh
backing file, which then replaces the old one. Close deletes the backing
files; use WithStoredList to tie a list to a scope.
*/
package coll
