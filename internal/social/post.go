// Copyright (c) 2026 Parity. All rights reserved.
// Author: backend@parityhq.io

// Package social implements the anonymous peer-support feed: posts, the like
// toggle, comments, and caring gestures.
//
// # Anonymity
//
// Nothing in this package ever stores or returns a real user ID. Authorship
// is attributed to the caller's derived anonymous ID, and there is no reverse
// mapping from an anonymous ID to an account.
package social

import "time"

// GestureType classifies a caring gesture.
type GestureType string

const (
	GestureHug           GestureType = "hug"
	GestureEncouragement GestureType = "encouragement"
	GestureComfort       GestureType = "comfort"
	GestureMindfulness   GestureType = "mindfulness"
)

// GestureTypes lists every accepted gesture type, for boundary validation.
var GestureTypes = []string{
	string(GestureHug),
	string(GestureEncouragement),
	string(GestureComfort),
	string(GestureMindfulness),
}

// Post is an anonymous feed entry.
//
// # Counters
//
// LikeCount, CommentCount, and CaringGestureCount are denormalized so the
// feed renders without joins. Every write that touches a child row updates
// the counter in the same transaction, so the numbers never drift.
type Post struct {
	ID                 string    `json:"id"`
	Content            string    `json:"content"`
	AnonymousUserID    string    `json:"anonymous_user_id"`
	LikeCount          int       `json:"like_count"`
	CommentCount       int       `json:"comment_count"`
	CaringGestureCount int       `json:"caring_gesture_count"`
	IsModerated        bool      `json:"is_moderated"`
	CreatedAt          time.Time `json:"created_at"`
}

// Comment is an anonymous reply to a post.
type Comment struct {
	ID              string    `json:"id"`
	PostID          string    `json:"post_id"`
	Content         string    `json:"content"`
	AnonymousUserID string    `json:"anonymous_user_id"`
	CreatedAt       time.Time `json:"created_at"`
}

// CaringGesture is a lightweight supportive reaction to a post.
//
// Unlike likes, gestures are not unique per caller: sending two hugs is two
// rows and bumps the counter twice.
type CaringGesture struct {
	ID              string      `json:"id"`
	PostID          string      `json:"post_id"`
	GestureType     GestureType `json:"gesture_type"`
	AnonymousUserID string      `json:"anonymous_user_id"`
	CreatedAt       time.Time   `json:"created_at"`
}
