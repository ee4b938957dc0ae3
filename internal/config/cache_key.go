package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key for a user's login session.
func (r *CacheKeyStruct) UserSessionKey(userID int) string {
	return fmt.Sprintf("login:%d", userID)
}

// UserActiveQuizKey returns the cache key tracking which quiz session a
// user currently has open.
func (r *CacheKeyStruct) UserActiveQuizKey(userID int) string {
	return fmt.Sprintf("user:%d:active_quiz", userID)
}

// SubjectTopicsKey returns the cache key for a subject's topic listing.
func (r *CacheKeyStruct) SubjectTopicsKey(subject string) string {
	return fmt.Sprintf("subject:%s:topics", subject)
}

var CacheKey = NewCacheKeyStruct()
