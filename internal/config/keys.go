package config

import "fmt"

// Redis key builders. Centralized so the session middleware, the notifier
// and the worker never drift on key names.

type KeyStruct struct{}

// UserSessionKey returns the key holding a user's active login JTI.
func (KeyStruct) UserSessionKey(userID int) string {
	return fmt.Sprintf("login:%d", userID)
}

// AssignmentNotifyQueue is the Redis list consumed by the notification worker.
func (KeyStruct) AssignmentNotifyQueue() string {
	return "notify:assignments"
}

var Key = KeyStruct{}
