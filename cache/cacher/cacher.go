package cacher

import "time"

// Entry is the cached outcome of a short-code lookup: the record's id and
// destination, or the error the lookup produced. Misses are cached too.
type Entry struct {
	Id      string
	LongUrl string
	Err     error
}

type Engine interface {
	Get(code string) (*Entry, bool)
	Set(code string, entry *Entry, expiration time.Duration)
	Delete(code string)
}
