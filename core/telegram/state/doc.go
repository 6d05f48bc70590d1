// Package state provides conversation state management for Telegram bots.
// The default manager persists states through a Store so conversations
// survive restarts; an in-memory manager is provided for tests and
// development.
package state
