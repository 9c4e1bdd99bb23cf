package triggers

import (
	"time"
)

// State tracks which keys were already notified
type State map[string]int64

// Retain removes every key that is not in the given list
func (s State) Retain(keys []string) {
	keep := map[string]bool{}
	for _, k := range keys {
		keep[k] = true
	}
	for k := range s {
		if !keep[k] {
			delete(s, k)
		}
	}
}

// AlreadyNotified reports whether the key is present
func (s State) AlreadyNotified(key string) bool {
	_, ok := s[key]
	return ok
}

// SetAlreadyNotified set the state of given key and return if state has been changed
func (s State) SetAlreadyNotified(key string, isNotified bool) bool {
	if _, alreadyNotified := s[key]; alreadyNotified == isNotified {
		return false
	}
	if isNotified {
		s[key] = time.Now().Unix()
	} else {
		delete(s, key)
	}
	return true
}
