// Package sessions persists correction sessions between the compute pass and
// the finalize pass.
//
// The review cycle is human-paced: `subfix plan` writes an actions file and
// exits, the user edits it whenever they like, and `subfix apply` runs in a
// later process. The SQLite-backed store keeps the bookkeeping for that
// hand-off (where the actions file lives, which threshold produced it, what
// state the session is in) so every pending review is discoverable from the
// CLI. Apply-phase exclusivity is enforced with a per-session file lock.
package sessions
