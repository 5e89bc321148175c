// Package entries persists diary data in the client SQLite database.
//
// SQLiteRepository implements diary.Repository over a dbx.DBTX, so it works
// with either *sql.DB or *sql.Tx. Check-ins and diary entries keep their
// insertion order through an autoincrement sequence column; timestamps are
// stored as Unix nanoseconds in UTC. Checklist state is one row per
// (user, task) pair.
//
// Typical usage
//
//	repo := entries.NewSQLiteRepository(db)
//	store := diary.NewStore(userID, repo)
//	_ = store.Load(ctx)
package entries
