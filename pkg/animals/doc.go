/*
Package animals provides the in-memory model of an animal record and the
loader that builds a record collection from a JSON data file.

Every attribute of a record is optional. Absent attributes are represented
explicitly with the Text type rather than by missing map keys, so callers
never need to guard lookups: an absent value simply reports that it is not
present. Loaded collections keep the order of the data source.
*/
package animals
