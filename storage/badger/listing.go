package badger

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/aracbul/aracbul/core"
	"github.com/aracbul/aracbul/storage"
)

// ListingRepository implements storage.ListingRepository for BadgerDB.
type ListingRepository struct {
	backend  *Backend
	orderSeq *badger.Sequence
}

var _ storage.ListingRepository = (*ListingRepository)(nil)

// NewListingRepository creates a new ListingRepository.
func NewListingRepository(backend *Backend) (storage.ListingRepository, error) {
	return newListingRepository(backend)
}

func newListingRepository(backend *Backend) (*ListingRepository, error) {
	orderSeq, err := backend.GetSequence(listingOrderSeq)
	if err != nil {
		return nil, err
	}

	return &ListingRepository{
		backend:  backend,
		orderSeq: orderSeq,
	}, nil
}

// Close releases the order sequence.
func (r *ListingRepository) Close() error {
	return r.orderSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *ListingRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddListings adds one or more listings to the catalog.
func (r *ListingRepository) AddListings(ctx context.Context, listings ...*core.Listing) ([]*core.Listing, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, listing := range listings {
			if listing.Id == "" {
				listing.Id = contentID(listing)
			}

			key := makeListingKey(listing.Id)

			// New listings get an order-index entry; existing ones are
			// overwritten in place and keep their position.
			_, err := tx.Get(key)
			if err == badger.ErrKeyNotFound {
				seq, seqErr := r.orderSeq.Next()
				if seqErr != nil {
					return seqErr
				}
				if err := tx.Set(makeListingOrderKey(seq), []byte(listing.Id)); err != nil {
					return err
				}
			} else if err != nil {
				return err
			}

			if err := tx.Set(key, storage.MarshalListing(listing)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return listings, err
}

// GetListing retrieves a single listing by ID.
func (r *ListingRepository) GetListing(ctx context.Context, id string) (*core.Listing, error) {
	var result *core.Listing
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeListingKey(id))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			result, unmarshalErr = storage.UnmarshalListing(val)
			return unmarshalErr
		})
	}, false)
	return result, err
}

// GetAllListings retrieves the full catalog in insertion order.
// The whole read happens inside one transaction, so the caller observes a
// single consistent snapshot even while a concurrent refresh is running.
func (r *ListingRepository) GetAllListings(ctx context.Context) ([]*core.Listing, error) {
	var results []*core.Listing
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		ids, err := r.orderedIDs(tx)
		if err != nil {
			return err
		}

		for _, id := range ids {
			item, err := tx.Get(makeListingKey(id))
			if err != nil {
				if err == badger.ErrKeyNotFound {
					// Dangling order entry; skip rather than fail the load.
					r.backend.logger.Warn("order index references missing listing", "id", id)
					continue
				}
				return err
			}
			err = item.Value(func(val []byte) error {
				listing, unmarshalErr := storage.UnmarshalListing(val)
				if unmarshalErr != nil {
					return unmarshalErr
				}
				results = append(results, listing)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []*core.Listing{}
	}
	return results, nil
}

// CountListings returns the number of listings in the catalog.
func (r *ListingRepository) CountListings(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(listingOrderPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// DeleteListings removes listings by their IDs.
func (r *ListingRepository) DeleteListings(ctx context.Context, ids ...string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeListingKey(id)
			if _, err := tx.Get(key); err != nil {
				if err == badger.ErrKeyNotFound {
					return storage.ErrNotFound
				}
				return err
			}

			orderKey, err := r.findOrderKey(tx, id)
			if err != nil {
				return err
			}
			if orderKey != nil {
				if err := tx.Delete(orderKey); err != nil {
					return err
				}
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// ReplaceAll atomically replaces the whole catalog.
func (r *ListingRepository) ReplaceAll(ctx context.Context, listings []*core.Listing) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		// Drop current records and order index.
		for _, prefix := range []string{listingPrefix + ":", listingOrderPrefix + ":"} {
			keys, err := collectKeys(tx, prefix)
			if err != nil {
				return err
			}
			for _, key := range keys {
				if err := tx.Delete(key); err != nil {
					return err
				}
			}
		}

		for _, listing := range listings {
			if listing.Id == "" {
				listing.Id = contentID(listing)
			}
			seq, err := r.orderSeq.Next()
			if err != nil {
				return err
			}
			if err := tx.Set(makeListingOrderKey(seq), []byte(listing.Id)); err != nil {
				return err
			}
			if err := tx.Set(makeListingKey(listing.Id), storage.MarshalListing(listing)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// orderedIDs returns all listing IDs in insertion order.
func (r *ListingRepository) orderedIDs(tx *badger.Txn) ([]string, error) {
	var ids []string
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(listingOrderPrefix + ":")
	iter := tx.NewIterator(opts)
	defer iter.Close()

	for iter.Rewind(); iter.Valid(); iter.Next() {
		err := iter.Item().Value(func(val []byte) error {
			ids = append(ids, string(val))
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return ids, nil
}

// findOrderKey scans the order index for the entry pointing at id.
// Returns nil, nil when no entry exists.
func (r *ListingRepository) findOrderKey(tx *badger.Txn, id string) ([]byte, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(listingOrderPrefix + ":")
	iter := tx.NewIterator(opts)
	defer iter.Close()

	for iter.Rewind(); iter.Valid(); iter.Next() {
		item := iter.Item()
		var found []byte
		err := item.Value(func(val []byte) error {
			if string(val) == id {
				found = item.KeyCopy(nil)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		if found != nil {
			return found, nil
		}
	}
	return nil, nil
}

// collectKeys gathers all keys under a prefix.
func collectKeys(tx *badger.Txn, prefix string) ([][]byte, error) {
	var keys [][]byte
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefix)
	opts.PrefetchValues = false
	iter := tx.NewIterator(opts)
	defer iter.Close()

	for iter.Rewind(); iter.Valid(); iter.Next() {
		keys = append(keys, iter.Item().KeyCopy(nil))
	}
	return keys, nil
}

// contentID derives a deterministic ID from the listing's identifying fields.
func contentID(listing *core.Listing) string {
	return core.IDFromContent(fmt.Sprintf("%s|%d|%s|%d",
		listing.Title, listing.Price, listing.City, listing.Year))
}
