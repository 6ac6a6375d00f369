// Package state provides a lightweight in-memory session store for Telegram
// conversations. It knows nothing about a particular bot's steps: callers own
// the State values and the meaning of the answers they accumulate.
package state
