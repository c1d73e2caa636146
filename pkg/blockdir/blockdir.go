// Package blockdir tracks the set of live sub-blocks for one relation,
// ordered by a dense block id, the way XuPeng-SH-tae_design's catalog
// layer orders its block and segment entries. It has no notion of
// transactions, segments, or persistence — just "which sub-blocks exist
// and in what order to sweep them".
package blockdir

import (
	"fmt"
	"sync"

	"github.com/google/btree"

	"rowstore/pkg/subblock"
)

// BlockID is a dense integer identifier assigned at Register time.
type BlockID uint64

type dirEntry struct {
	id BlockID
	sb *subblock.SubBlock
}

func (e *dirEntry) Less(than btree.Item) bool {
	return e.id < than.(*dirEntry).id
}

// Directory is an ordered, concurrency-safe collection of sub-blocks.
type Directory struct {
	mu   sync.RWMutex
	tree *btree.BTree
	next BlockID
}

// New returns an empty directory.
func New() *Directory {
	return &Directory{tree: btree.New(32)}
}

// Register assigns the next BlockID to sb and returns it.
func (d *Directory) Register(sb *subblock.SubBlock) BlockID {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.next
	d.next++
	d.tree.ReplaceOrInsert(&dirEntry{id: id, sb: sb})
	return id
}

// Get returns the sub-block registered under id.
func (d *Directory) Get(id BlockID) (*subblock.SubBlock, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	item := d.tree.Get(&dirEntry{id: id})
	if item == nil {
		return nil, fmt.Errorf("blockdir: no block with id %d", id)
	}
	return item.(*dirEntry).sb, nil
}

// Remove drops id from the directory. The underlying sub-block and its
// region are not touched; callers that want to reclaim the memory do so
// themselves.
func (d *Directory) Remove(id BlockID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tree.Delete(&dirEntry{id: id})
}

// Len returns the number of registered sub-blocks.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.tree.Len()
}

// Ascend visits every sub-block in ascending BlockID order, stopping
// early if fn returns false.
func (d *Directory) Ascend(fn func(id BlockID, sb *subblock.SubBlock) bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	d.tree.Ascend(func(item btree.Item) bool {
		e := item.(*dirEntry)
		return fn(e.id, e.sb)
	})
}

// LastNonFull returns the highest-id sub-block with room for at least
// minFree more tuples, or ok=false if no registered block has that much
// room.
func (d *Directory) LastNonFull(minFree int) (BlockID, *subblock.SubBlock, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var foundID BlockID
	var foundSB *subblock.SubBlock
	found := false
	d.tree.Descend(func(item btree.Item) bool {
		e := item.(*dirEntry)
		if e.sb.HasSpaceToInsert(minFree) {
			foundID, foundSB, found = e.id, e.sb, true
			return false
		}
		return true
	})
	return foundID, foundSB, found
}
