// Package tasks runs long artist roster exports with progress reporting.
//
// # Roster Export
//
// [RosterEngine.Export] fetches the artist directory (optionally filtered), then for each artist:
//   - waits on a shared [rate.Limiter] and fetches the artist's reviews
//   - hands the artist to a pool of 1 to 10 workers
//   - writes one file per artist in the requested [formatter.Format]
//
// Finally an export_manifest.json summarizing every artist is written to the output directory.
// Failures are recorded per artist and never abort the export, except an expired session which
// stops fetching.
//
// # Progress Reporting
//
// Updates are sent over a channel with select/default so a slow or absent reader never blocks the
// export. [ProgressUpdate] carries the phase, step counters and a display message.
package tasks
