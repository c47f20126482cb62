// Package state shares the latest connection status between the background
// poller and the TUI.
//
// The poller is the single writer; the UI reads snapshots on its own tick.
//
//	Poller:                          UI:
//	DiscoverConnection()             store.Snapshot()
//	store.Update(&conn, err) ──────→ render
//
// Update semantics:
//
//	store.Update(&Connection{OK: true, Port: p}, nil)
//	→ Connection = conn, LastConnected = now, ConsecutiveFailures = 0
//
//	store.Update(nil, err)  // or a Connection with OK == false
//	→ Connection.OK = false, LastError = err, ConsecutiveFailures++
//	→ LastConnected unchanged
//
// IsOffline reports two or more failures in a row, which lets the UI ride
// out a single missed poll while the client restarts.
//
// The zero Store is ready to use. Snapshot returns values and clones the
// error so the UI never shares state with the poller.
package state
