package redis

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"time"

	"goshortly/cache/cacher"
	"goshortly/repository"

	redigo "github.com/gomodule/redigo/redis"
	"go.uber.org/zap"
)

// A degraded cache must not take the redirect path down with it, so every
// redis failure is logged and treated as a miss.
type redis struct {
	pool   *redigo.Pool
	logger *zap.Logger
}

func New(host string, port int, logger *zap.Logger) cacher.Engine {
	pool := &redigo.Pool{
		Dial: func() (redigo.Conn, error) {
			return redigo.Dial("tcp", fmt.Sprintf("%s:%d", host, port))
		},
		// Periodic check
		TestOnBorrow: func(c redigo.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
	return &redis{pool: pool, logger: logger}
}

// gob cannot encode an error interface, so the entry crosses the wire with
// the error flattened to its message.
type serializable struct {
	Id      string
	LongUrl string
	Errmsg  string
}

func entry2serializable(entry *cacher.Entry) serializable {
	s := serializable{Id: entry.Id, LongUrl: entry.LongUrl}
	if entry.Err != nil {
		s.Errmsg = entry.Err.Error()
	}
	return s
}

func serializable2entry(s serializable) cacher.Entry {
	entry := cacher.Entry{Id: s.Id, LongUrl: s.LongUrl}
	if s.Errmsg != "" {
		entry.Err = errors.New(s.Errmsg)
		if s.Errmsg == repository.ErrRecordNotFound.Error() {
			entry.Err = repository.ErrRecordNotFound
		}
	}
	return entry
}

func serialize(entry *cacher.Entry) (*bytes.Buffer, error) {
	var buffer bytes.Buffer
	err := gob.NewEncoder(&buffer).Encode(entry2serializable(entry))
	return &buffer, err
}

func deserialize(valBytes []byte) (*cacher.Entry, error) {
	var s serializable
	err := gob.NewDecoder(bytes.NewReader(valBytes)).Decode(&s)
	entry := serializable2entry(s)
	return &entry, err
}

func (r *redis) Get(code string) (*cacher.Entry, bool) {
	reply, err := r.do("GET", code)
	if err != nil {
		r.logger.Warn("redis GET failed", zap.Error(err))
		return nil, false
	}
	if reply == nil {
		return nil, false
	}
	data, err := redigo.Bytes(reply, nil)
	if err != nil {
		r.logger.Warn("redis reply not bytes", zap.Error(err))
		return nil, false
	}
	entry, err := deserialize(data)
	if err != nil {
		r.logger.Warn("failed to decode cache entry", zap.Error(err))
		return nil, false
	}
	return entry, true
}

func (r *redis) Set(code string, entry *cacher.Entry, expiration time.Duration) {
	buffer, err := serialize(entry)
	if err != nil {
		r.logger.Warn("failed to encode cache entry", zap.Error(err))
		return
	}
	if _, err := r.do("SET", code, buffer.Bytes(), "EX", uint64(expiration.Seconds())); err != nil {
		r.logger.Warn("redis SET failed", zap.Error(err))
	}
}

func (r *redis) Delete(code string) {
	if _, err := r.do("DEL", code); err != nil {
		r.logger.Warn("redis DEL failed", zap.Error(err))
	}
}

func (r *redis) do(commandName string, args ...interface{}) (reply interface{}, err error) {
	c := r.pool.Get()
	defer c.Close()
	return c.Do(commandName, args...)
}
