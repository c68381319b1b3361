/*
Package catalog persists animal record collections in SQLite.

A catalog holds any number of named datasets. Importing a dataset stores
every record as a JSON document together with its position, so reading it
back yields exactly the collection that was imported, in the same order and
with the same absent fields. The package only needs a *sql.DB; the driver
(modernc.org/sqlite or github.com/mattn/go-sqlite3) is chosen by the caller.
*/
package catalog
