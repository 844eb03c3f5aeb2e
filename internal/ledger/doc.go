package ledger

// Package ledger persists the last-known health of the monitored service.
//
// The ledger is the sole source of truth for alert deduplication:
//   - last status and check time (every cycle)
//   - last successfully delivered alert time (cooldown suppression)
//   - consecutive failure count
//
// Loads never fail: a missing or corrupt backing store yields a fresh
// zero-value ledger so monitoring keeps running after a wipe or a bad write.
