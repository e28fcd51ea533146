// Package workflow orchestrates the two-phase correction protocol the CLI
// exposes: the compute pass (parse, plan, persist, emit the actions file) and
// the finalize pass (reconcile edits, serialize the fixed subtitle file).
//
// Both passes are plain functions over the session store and the filesystem;
// no state survives in memory between them, which is what lets review happen
// at human pace across separate processes. The finalize pass re-runs the
// deterministic engine pass from the source file using the tuning recorded
// in the session, then reapplies the reviewer's rows on top.
package workflow
