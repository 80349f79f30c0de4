// Package intern implements a dense-identifier perfect hash for byte
// sequences, backed by a path-compressed trie in a single flat uint32
// arena.
//
// Every distinct byte sequence handed to Intern receives a small integer
// identifier. Identifiers are dense and assigned in first-seen order:
// the empty sequence is 0 by construction, the first distinct non-empty
// sequence is 1, and so on. The ordered table of distinct contents is
// the inverse mapping and can be taken over by the caller with Freeze.
//
// The arena keeps the allocation count at N + O(log N) for N distinct
// values: one allocation per distinct content, plus the amortized
// doubling of the arena itself. Nodes are records inside the arena, and
// node references are plain indices, so splitting a node is an in-place
// rewrite plus an append.
package intern

// A node occupies nodeHeader + H slots in the arena, where H is the size
// of its child hash table:
//   - nodeFirst: the first up to four bytes of the compressed edge,
//     packed little-endian into one uint32 (high bytes zero when the
//     edge is shorter). Matching short prefixes never touches the
//     content table.
//   - nodeBuffer: index of the content entry backing the edge. Content
//     entries hold full sequences from the root, so the edge is
//     content[nodeBuffer][nodeStart:nodeEnd] and nodeStart doubles as
//     the edge's depth.
//   - nodeRef: the identifier of the sequence terminating at this node;
//     0 when no sequence ends here.
//   - nodeSibling: next node in the parent's hash chain; 0 ends the
//     chain.
//   - child slots: arena indices of children; 0 means empty. The table
//     is sized by hashSize of the depth at which the children's edges
//     start — the end offset of this node's own edge, which a split
//     never moves.
const (
	nodeFirst   = 0
	nodeBuffer  = 1
	nodeStart   = 2
	nodeEnd     = 3
	nodeRef     = 4
	nodeSibling = 5
	nodeHeader  = 6
)

// rootNode is preallocated at arena index 0 with an empty edge and a
// full 256-way child table. The root is never a child, so child slot
// value 0 can mean "empty".
const rootNode = 0

// hashSize returns the child-table size for children whose edges start
// at the given depth. Shallow nodes fan out widely and get full 256-way
// dispatch; deep nodes are sparse and chain through siblings instead.
func hashSize(depth int) int {
	switch {
	case depth < 2:
		return 256
	case depth < 7:
		return 256 >> depth
	default:
		return 1
	}
}

// Trie is the interning structure. The zero value is not usable; create
// instances with New.
//
// A Trie is single-threaded and exists only for the duration of one
// parse: Intern cells, then Freeze to take the content table and drop
// the arena.
type Trie struct {
	arena   []uint32
	content [][]byte
	bytes   int // total content bytes, for stats only
}

// New returns an empty trie whose content table already holds the empty
// sequence at identifier 0.
func New() *Trie {
	t := &Trie{
		arena:   make([]uint32, nodeHeader+256, 4096),
		content: make([][]byte, 1, 64),
	}
	t.content[0] = []byte{}
	return t
}

// Count returns the number of distinct contents seen so far, including
// the empty sequence at identifier 0.
func (t *Trie) Count() int {
	return len(t.content)
}

// Content returns the byte sequence behind an identifier. The slice is
// owned by the trie; callers must not modify it.
func (t *Trie) Content(id uint32) []byte {
	return t.content[id]
}

// Freeze hands the content table over to the caller and discards the
// arena. The trie must not be used afterwards.
func (t *Trie) Freeze() [][]byte {
	tracer().Debugf("interning trie frozen: %d distinct contents, %d bytes, arena %d slots",
		len(t.content), t.bytes, len(t.arena))
	c := t.content
	t.content = nil
	t.arena = nil
	return c
}

// Intern looks up in, inserting it if absent, and returns its
// identifier. The empty sequence is always 0. The input slice is copied
// on insertion and may be reused by the caller.
func (t *Trie) Intern(in []byte) uint32 {
	if len(in) == 0 {
		return 0
	}
	node := uint32(rootNode)
	cell := uint32(0) // arena cell holding node; unused while node is the root
	p := 0
	for {
		start := int(t.arena[node+nodeStart])
		end := int(t.arena[node+nodeEnd])
		m := 0
		for m < end-start && p < len(in) && t.edgeByte(node, m) == in[p] {
			m++
			p++
		}
		if m < end-start {
			// diverged inside the edge, or the input ran out mid-edge
			return t.split(node, cell, m, in, p)
		}
		if p == len(in) {
			if ref := t.arena[node+nodeRef]; ref != 0 {
				return ref
			}
			id := t.newContent(in)
			t.arena[node+nodeRef] = id
			return id
		}
		h := uint32(hashSize(end))
		slot := node + nodeHeader + uint32(in[p])%h
		cell = slot
		child := t.arena[slot]
		for child != 0 && byte(t.arena[child+nodeFirst]) != in[p] {
			cell = child + nodeSibling
			child = t.arena[cell]
		}
		if child == 0 {
			id, leaf := t.newLeaf(in, p)
			t.arena[cell] = leaf
			return id
		}
		node = child
	}
}

// edgeByte reads byte m of a node's edge. Offsets below four come out of
// the packed nodeFirst word; deeper offsets read the backing content.
func (t *Trie) edgeByte(node uint32, m int) byte {
	if m < 4 {
		return byte(t.arena[node+nodeFirst] >> (8 * m))
	}
	return t.content[t.arena[node+nodeBuffer]][int(t.arena[node+nodeStart])+m]
}

// split divides node at edge offset m. A middle node takes over the
// matched front of the edge and the parent's chain cell; the old node is
// shortened in place and rehung under the middle node. The remaining
// input, if any, becomes a fresh child of the middle node; otherwise the
// middle node itself becomes terminal.
func (t *Trie) split(node, cell uint32, m int, in []byte, p int) uint32 {
	oldBuf := t.arena[node+nodeBuffer]
	oldStart := int(t.arena[node+nodeStart])
	oldEnd := int(t.arena[node+nodeEnd])
	splitAt := oldStart + m
	h := uint32(hashSize(splitAt))

	mid := t.newNode(packFirst(t.content[oldBuf][oldStart:splitAt]), oldBuf, uint32(oldStart), uint32(splitAt), 0, hashSize(splitAt))
	t.arena[mid+nodeSibling] = t.arena[node+nodeSibling]
	t.arena[cell] = mid

	edge := t.content[oldBuf]
	t.arena[node+nodeStart] = uint32(splitAt)
	t.arena[node+nodeFirst] = packFirst(edge[splitAt:oldEnd])
	t.arena[node+nodeSibling] = 0
	t.arena[mid+nodeHeader+uint32(edge[splitAt])%h] = node

	if p == len(in) {
		// the input is a proper prefix of the old edge
		id := t.newContent(in)
		t.arena[mid+nodeRef] = id
		return id
	}
	id, leaf := t.newLeaf(in, p)
	slot := mid + nodeHeader + uint32(in[p])%h
	if t.arena[slot] == 0 {
		t.arena[slot] = leaf
		return id
	}
	tail := t.arena[slot]
	for t.arena[tail+nodeSibling] != 0 {
		tail = t.arena[tail+nodeSibling]
	}
	t.arena[tail+nodeSibling] = leaf
	return id
}

// newLeaf allocates a content entry for the full input and a node whose
// edge is the unmatched tail in[p:]. It returns the new identifier and
// the node's arena index.
func (t *Trie) newLeaf(in []byte, p int) (uint32, uint32) {
	id := t.newContent(in)
	c := t.content[id]
	leaf := t.newNode(packFirst(c[p:]), id, uint32(p), uint32(len(c)), id, hashSize(len(c)))
	return id, leaf
}

// newNode appends a node record with a child table of tableSize slots
// and returns its arena index.
func (t *Trie) newNode(first, buffer, start, end, ref uint32, tableSize int) uint32 {
	idx := uint32(len(t.arena))
	t.arena = append(t.arena, first, buffer, start, end, ref, 0)
	t.arena = append(t.arena, make([]uint32, tableSize)...)
	return idx
}

// newContent copies in into the content table and returns its new
// identifier.
func (t *Trie) newContent(in []byte) uint32 {
	c := make([]byte, len(in))
	copy(c, in)
	id := uint32(len(t.content))
	t.content = append(t.content, c)
	t.bytes += len(c)
	return id
}

// packFirst packs the first up to four bytes of an edge little-endian
// into one word.
func packFirst(edge []byte) uint32 {
	var v uint32
	for i := 0; i < 4 && i < len(edge); i++ {
		v |= uint32(edge[i]) << (8 * i)
	}
	return v
}
