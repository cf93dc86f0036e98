// Package repositories implements the durable state behind a sweep.
//
// Two stores live here:
//   - [UploadsCache] : JSON file mapping channel IDs to their uploads playlist IDs
//   - [AdditionRepository] : SQLite history of every video a sweep filed into a smart playlist
//
// Sequence numbers provide stable, human-readable ordering for history rows independent of UUIDs and timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
