// Package tasks runs the smart playlist sweep.
//
// # Components
//
//   - [Resolver] : channel ID to uploads playlist ID, memoized in an [UploadsStore]
//   - [Manager] : subscription listing, today's uploads for a channel, and idempotent playlist inserts
//   - [Sweeper] : one pass over every rule, filing today's uploads into each rule's playlist
//   - [Scheduler] : repeats the sweep with a fixed delay and never lets two sweeps overlap
//
// # Progress Reporting
//
// A [Sweeper] with a Progress channel emits [ProgressUpdate] values.
// Updates use select with default so a slow reader never blocks a sweep.
//
// # History
//
// The optional [AdditionRecorder] interface receives every successful addition (repositories.AdditionRepository).
// Recording failures are logged and never abort a sweep.
package tasks
