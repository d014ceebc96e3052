// Package chatbot is a thin, policy-free consumer of the index engine: a
// context-free question/answer retriever that matches input text against
// previously indexed entries and returns the best-scoring entry's key.
//
// It carries no synonym table and no avoid-list persistence of its own —
// callers supply synonym rules when opening a Bot and the avoid list on
// each Input call. The adapter exists only to exercise
// insert/query/get_key end to end, never to grow its own policy.
package chatbot
