// Package ingestion loads scraped vehicle listings into catalog storage.
//
// The Pipeline decodes a scraped listings file (an array of objects with
// id, title, url, price, year, km, location, date, and image fields),
// normalizes the display strings into comparable integers, derives the
// brand from the title, validates each record, and writes the survivors
// in concurrent batches through a worker pool.
//
// Every successful run records a checkpoint carrying a digest of the raw
// input, so re-running ingestion over an unchanged file is a cheap no-op.
// Records that fail validation are logged and counted but never abort the
// run.
package ingestion
