package messages

import (
	"folio/internal/blog"
)

type ErrorMsg struct {
	Err error
}

// TimerMsg delivers a palette timeout back to the update loop.
type TimerMsg struct {
	Fire func()
}

type PostsLoadedMsg struct {
	Posts []blog.Post
	Err   error
}

type PostLoadedMsg struct {
	Post     blog.Post
	Content  string
	Adjacent blog.Adjacent
	Err      error
}

// SearchResultsMsg answers the search for Query.
type SearchResultsMsg struct {
	Query string
	Posts []blog.Post
	Err   error
}

type ReloadMsg struct {
	Event blog.ReloadEvent
}
