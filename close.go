package ucdchart

// Close releases the mapped category index. Loaders and indexes obtained
// from the database must not be used afterwards. Close is idempotent.
func (db *Database) Close() error {
	if db == nil || db.closed.Swap(true) {
		return nil
	}
	if db.blob != nil {
		err := db.blob.Close()
		db.blob = nil
		return err
	}
	return nil
}
