// Package events defines the immutable event envelope shared by posts, likes
// and reposts, and the Log interface the command handlers append to.
//
// State is never stored directly. A post exists if folding its post stream
// yields a value; like and repost membership is derived by folding the like
// and repost streams keyed by the same post id.
package events
