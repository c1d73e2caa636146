// Command rowstoreloader is a demo harness: it builds a relation from a
// TOML schema file, then fans a configurable number of random tuples out
// across a worker pool, each worker filling its own freshly allocated
// sub-block and registering it in a shared block directory.
package main

import (
	"flag"
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"

	"rowstore/pkg/blockdir"
	"rowstore/pkg/schema"
	"rowstore/pkg/subblock"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML relation schema config")
	flag.Parse()
	if *configPath == "" {
		logrus.Fatal("rowstoreloader: -config is required")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logrus.Fatal(err)
	}

	relation, err := cfg.buildRelation()
	if err != nil {
		logrus.Fatal(err)
	}
	logrus.Infof("relation has %d attributes, fixed width %d bytes, %d nullable",
		relation.AttributeCount(), relation.FixedByteLength(), relation.NumNullableAttributes())

	dir := blockdir.New()

	pool, err := ants.NewPool(cfg.Workers)
	if err != nil {
		logrus.Fatal(err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	var totalInserted uint64

	remaining := cfg.NumTuples
	batch := 0
	for remaining > 0 {
		n := cfg.BatchSize
		if n > remaining {
			n = remaining
		}
		remaining -= n

		batchSeed := int64(batch)
		batch++

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			inserted := loadBatch(dir, relation, cfg.RegionSizeBytes, n, rand.New(rand.NewSource(batchSeed)))
			atomic.AddUint64(&totalInserted, uint64(inserted))
		})
		if submitErr != nil {
			logrus.Errorf("rowstoreloader: submitting batch: %v", submitErr)
			wg.Done()
		}
	}

	wg.Wait()
	logrus.Infof("inserted %d tuples across %d blocks", totalInserted, dir.Len())
}

// loadBatch writes n tuples into a single fresh sub-block and registers
// it in dir. A production loader would instead look for an existing
// non-full block via dir.LastNonFull before allocating a new one; this
// harness allocates one block per batch to keep worker goroutines from
// contending on the same region.
func loadBatch(dir *blockdir.Directory, relation *schema.Relation, regionSize, n int, rnd *rand.Rand) int {
	region := make([]byte, regionSize)
	sb, err := subblock.New(relation, subblock.PackedRowStoreDescriptor(), true, region)
	if err != nil {
		logrus.Errorf("rowstoreloader: allocating block: %v", err)
		return 0
	}

	acc := newGeneratorAccessor(relation, rnd, n)
	inserted := sb.BulkInsertTuples(acc)
	if inserted < n {
		logrus.Warnf("rowstoreloader: block held only %d of %d requested tuples", inserted, n)
	}

	id := dir.Register(sb)
	logrus.Debugf("block %d: %d tuples, capacity %d", id, sb.NumTuples(), sb.RowCapacity())
	return inserted
}
